/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package repo

import (
    "context"
    "errors"
    "time"

    "github.com/jackc/pgx/v5"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/rs/zerolog"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/config"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

type DB struct {
    Pool *pgxpool.Pool
    log  zerolog.Logger
}

func MustOpen(ctx context.Context, cfg config.Config, log zerolog.Logger) *DB {
    pool, err := pgxpool.New(ctx, cfg.DBDSN)
    if err != nil { log.Fatal().Err(err).Msg("db connect failed") }
    ctx2, cancel := context.WithTimeout(ctx, 10*time.Second); defer cancel()
    if err := pool.Ping(ctx2); err != nil { log.Fatal().Err(err).Msg("db ping failed") }
    return &DB{Pool: pool, log: log}
}

func (d *DB) Close() { d.Pool.Close() }

type Repository struct {
    db  *DB
    log zerolog.Logger
}

func NewRepository(d *DB, log zerolog.Logger) *Repository { return &Repository{db: d, log: log} }

// EnsureSchema creates the archive tables when missing. The archive is
// append-only so there is nothing to migrate in place.
func (r *Repository) EnsureSchema(ctx context.Context) error {
    const q = `
        CREATE TABLE IF NOT EXISTS report_runs (
            id            BIGSERIAL PRIMARY KEY,
            started_at    TIMESTAMPTZ NOT NULL,
            finished_at   TIMESTAMPTZ,
            projects      TEXT NOT NULL DEFAULT '',
            teams         TEXT NOT NULL DEFAULT '',
            reports       INT NOT NULL DEFAULT 0,
            success       BOOLEAN NOT NULL DEFAULT false,
            error         TEXT NOT NULL DEFAULT ''
        );
        CREATE TABLE IF NOT EXISTS sprint_metrics_history (
            id              BIGSERIAL PRIMARY KEY,
            run_id          BIGINT REFERENCES report_runs(id),
            project_key     TEXT NOT NULL,
            team_label      TEXT NOT NULL DEFAULT '',
            sprint_id       BIGINT NOT NULL,
            sprint_name     TEXT NOT NULL,
            total_issues    INT NOT NULL,
            completed       INT NOT NULL,
            in_progress     INT NOT NULL,
            todo            INT NOT NULL,
            blocked         INT NOT NULL,
            total_points    DOUBLE PRECISION NOT NULL,
            completed_points DOUBLE PRECISION NOT NULL,
            velocity        INT NOT NULL,
            completion_rate DOUBLE PRECISION NOT NULL,
            overall_health  TEXT NOT NULL,
            recorded_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
            UNIQUE (project_key, team_label, sprint_id)
        );`
    _, err := r.db.Pool.Exec(ctx, q)
    return err
}

func (r *Repository) TryAdvisoryLock(ctx context.Context, key int64) (bool, error) {
    var ok bool
    err := r.db.Pool.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", key).Scan(&ok)
    return ok, err
}

func (r *Repository) AdvisoryUnlock(ctx context.Context, key int64) error {
    var ok bool
    err := r.db.Pool.QueryRow(ctx, "SELECT pg_advisory_unlock($1)", key).Scan(&ok)
    if !ok && err == nil { return errors.New("advisory unlock returned false") }
    return err
}

func (r *Repository) StartRun(ctx context.Context, projects, teams string) (int64, error) {
    const q = `INSERT INTO report_runs(started_at, projects, teams, success) VALUES(now(), $1, $2, false) RETURNING id`
    var id int64
    if err := r.db.Pool.QueryRow(ctx, q, projects, teams).Scan(&id); err != nil { return 0, err }
    return id, nil
}

func (r *Repository) FinishRun(ctx context.Context, id int64, reports int, success bool, errStr string) error {
    const q = `UPDATE report_runs SET finished_at=now(), reports=$2, success=$3, error=$4 WHERE id=$1`
    _, err := r.db.Pool.Exec(ctx, q, id, reports, success, errStr)
    return err
}

// SaveSprintMetrics archives one sprint's metric row; re-running the
// same sprint overwrites the previous row rather than duplicating it.
func (r *Repository) SaveSprintMetrics(ctx context.Context, runID int64, data domain.SprintData, m domain.Metrics, overall domain.HealthStatus) error {
    const q = `
        INSERT INTO sprint_metrics_history(
            run_id, project_key, team_label, sprint_id, sprint_name,
            total_issues, completed, in_progress, todo, blocked,
            total_points, completed_points, velocity, completion_rate, overall_health)
        VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        ON CONFLICT (project_key, team_label, sprint_id) DO UPDATE SET
            run_id=EXCLUDED.run_id,
            sprint_name=EXCLUDED.sprint_name,
            total_issues=EXCLUDED.total_issues,
            completed=EXCLUDED.completed,
            in_progress=EXCLUDED.in_progress,
            todo=EXCLUDED.todo,
            blocked=EXCLUDED.blocked,
            total_points=EXCLUDED.total_points,
            completed_points=EXCLUDED.completed_points,
            velocity=EXCLUDED.velocity,
            completion_rate=EXCLUDED.completion_rate,
            overall_health=EXCLUDED.overall_health,
            recorded_at=now()`
    _, err := r.db.Pool.Exec(ctx, q,
        runID, data.ProjectKey, data.TeamLabel, data.Sprint.ID, data.Sprint.Name,
        m.TotalIssues, m.CompletedIssues, m.InProgressIssues, m.TodoIssues, m.BlockedIssues,
        m.TotalStoryPoints, m.CompletedStoryPoints, m.Velocity, m.CompletionRate, string(overall))
    return err
}

type LastRun struct {
    StartedAt  time.Time  `json:"started_at"`
    FinishedAt *time.Time `json:"finished_at"`
    Projects   string     `json:"projects"`
    Teams      string     `json:"teams"`
    Reports    int        `json:"reports"`
    Success    bool       `json:"success"`
    Error      string     `json:"error"`
}

func (r *Repository) GetLastRun(ctx context.Context) (*LastRun, error) {
    const q = `SELECT started_at, finished_at, projects, teams,
        coalesce(reports,0), coalesce(success,false), coalesce(error,'')
        FROM report_runs ORDER BY id DESC LIMIT 1`
    row := r.db.Pool.QueryRow(ctx, q)
    lr := &LastRun{}
    if err := row.Scan(&lr.StartedAt, &lr.FinishedAt, &lr.Projects, &lr.Teams, &lr.Reports, &lr.Success, &lr.Error); err != nil {
        if errors.Is(err, pgx.ErrNoRows) { return nil, nil }
        return nil, err
    }
    return lr, nil
}

// VelocityHistory returns the archived velocity for the team's most
// recent sprints, newest first, capped at limit.
func (r *Repository) VelocityHistory(ctx context.Context, projectKey, teamLabel string, limit int) ([]int, error) {
    const q = `SELECT velocity FROM sprint_metrics_history
        WHERE project_key=$1 AND team_label=$2
        ORDER BY sprint_id DESC LIMIT $3`
    rows, err := r.db.Pool.Query(ctx, q, projectKey, teamLabel, limit)
    if err != nil { return nil, err }
    defer rows.Close()
    var out []int
    for rows.Next() {
        var v int
        if err := rows.Scan(&v); err != nil { return nil, err }
        out = append(out, v)
    }
    return out, rows.Err()
}
