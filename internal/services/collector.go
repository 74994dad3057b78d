/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */

// Package services holds the collection and generation pipeline between
// the Jira adapter and the report renderers.
package services

import (
    "context"
    "fmt"
    "sort"
    "strings"
    "time"

    "github.com/rs/zerolog"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/analysis"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

// JiraAPI is the slice of the Jira adapter the collector consumes.
type JiraAPI interface {
    Boards(ctx context.Context, projectKey string) ([]domain.Board, error)
    ClosedSprints(ctx context.Context, boardID int64) ([]domain.Sprint, error)
    SprintIssues(ctx context.Context, sprintID int64) ([]domain.Issue, error)
    Project(ctx context.Context, key string) (*domain.Project, error)
}

type Collector struct {
    jira JiraAPI
    log  zerolog.Logger
}

func NewCollector(jira JiraAPI, log zerolog.Logger) *Collector {
    return &Collector{jira: jira, log: log}
}

type sprintCandidate struct {
    sprint    domain.Sprint
    boardID   int64
    boardName string
    project   string
    endsAt    time.Time
}

// boardsForProjects gathers the boards of every project, warning and
// skipping projects whose board lookup fails.
func (c *Collector) boardsForProjects(ctx context.Context, projectKeys []string) []domain.Board {
    var out []domain.Board
    for _, key := range projectKeys {
        boards, err := c.jira.Boards(ctx, key)
        if err != nil {
            c.log.Warn().Err(err).Str("project", key).Msg("could not fetch boards")
            continue
        }
        out = append(out, boards...)
    }
    return out
}

func sprintEnd(s domain.Sprint) time.Time {
    if t := analysis.ParseTime(s.EndDate); t != nil { return *t }
    return time.Time{}
}

// CollectForTeam finds the team's most recently closed sprint across
// every board of every project, matching the team label against sprint
// names case-insensitively, then keeps only the issues labelled with the
// team label (exact match, as Jira labels are case-sensitive).
func (c *Collector) CollectForTeam(ctx context.Context, projectKeys []string, teamLabel string) (domain.SprintData, error) {
    boards := c.boardsForProjects(ctx, projectKeys)
    if len(boards) == 0 {
        return domain.SprintData{}, fmt.Errorf("no boards found for projects: %s", strings.Join(projectKeys, ", "))
    }

    var candidates []sprintCandidate
    needle := strings.ToLower(teamLabel)
    for _, board := range boards {
        sprints, err := c.jira.ClosedSprints(ctx, board.ID)
        if err != nil {
            c.log.Warn().Err(err).Str("board", board.Name).Msg("could not fetch sprints")
            continue
        }
        for _, s := range sprints {
            if !strings.Contains(strings.ToLower(s.Name), needle) { continue }
            candidates = append(candidates, sprintCandidate{
                sprint: s, boardID: board.ID, boardName: board.Name,
                project: board.ProjectKey, endsAt: sprintEnd(s),
            })
        }
    }
    if len(candidates) == 0 {
        return domain.SprintData{}, fmt.Errorf("no closed sprints found with team name %q across projects: %s",
            teamLabel, strings.Join(projectKeys, ", "))
    }
    sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].endsAt.After(candidates[j].endsAt) })
    best := candidates[0]

    issues, err := c.jira.SprintIssues(ctx, best.sprint.ID)
    if err != nil { return domain.SprintData{}, err }
    issues = filterByLabel(issues, teamLabel)

    project, err := c.jira.Project(ctx, best.project)
    if err != nil { return domain.SprintData{}, err }

    c.log.Info().Str("sprint", best.sprint.Name).Str("project", best.project).
        Str("team", teamLabel).Int("issues", len(issues)).Msg("collected sprint data")

    return domain.SprintData{
        Sprint:      best.sprint,
        BoardID:     best.boardID,
        BoardName:   best.boardName,
        Issues:      issues,
        TeamMembers: TeamMembers(issues),
        Project:     *project,
        ProjectKey:  best.project,
        TeamLabel:   teamLabel,
    }, nil
}

// CollectProject takes the project's first board and its most recently
// closed sprint, with no team filtering.
func (c *Collector) CollectProject(ctx context.Context, projectKey string) (domain.SprintData, error) {
    boards, err := c.jira.Boards(ctx, projectKey)
    if err != nil { return domain.SprintData{}, err }
    if len(boards) == 0 {
        return domain.SprintData{}, fmt.Errorf("no boards found for project %s", projectKey)
    }
    board := boards[0]

    sprints, err := c.jira.ClosedSprints(ctx, board.ID)
    if err != nil { return domain.SprintData{}, err }
    if len(sprints) == 0 {
        return domain.SprintData{}, fmt.Errorf("no closed sprints found for project %s", projectKey)
    }
    sort.SliceStable(sprints, func(i, j int) bool { return sprintEnd(sprints[i]).After(sprintEnd(sprints[j])) })
    sprint := sprints[0]

    issues, err := c.jira.SprintIssues(ctx, sprint.ID)
    if err != nil { return domain.SprintData{}, err }

    project, err := c.jira.Project(ctx, projectKey)
    if err != nil { return domain.SprintData{}, err }

    c.log.Info().Str("sprint", sprint.Name).Str("project", projectKey).
        Int("issues", len(issues)).Msg("collected sprint data")

    return domain.SprintData{
        Sprint:      sprint,
        BoardID:     board.ID,
        BoardName:   board.Name,
        Issues:      issues,
        TeamMembers: TeamMembers(issues),
        Project:     *project,
        ProjectKey:  projectKey,
    }, nil
}

// CollectAll gathers one batch per team label, or one per project when no
// labels are configured. Failures and empty sprints are logged and
// skipped so one team cannot sink the whole run.
func (c *Collector) CollectAll(ctx context.Context, projectKeys, teamLabels []string) []domain.SprintData {
    var out []domain.SprintData

    if len(teamLabels) == 0 {
        for _, key := range projectKeys {
            data, err := c.CollectProject(ctx, key)
            if err != nil {
                c.log.Warn().Err(err).Str("project", key).Msg("could not collect sprint data")
                continue
            }
            if len(data.Issues) == 0 {
                c.log.Info().Str("project", key).Msg("no issues in latest sprint, skipping")
                continue
            }
            out = append(out, data)
        }
        return out
    }

    for _, label := range teamLabels {
        data, err := c.CollectForTeam(ctx, projectKeys, label)
        if err != nil {
            c.log.Warn().Err(err).Str("team", label).Msg("could not collect sprint data")
            continue
        }
        if len(data.Issues) == 0 {
            c.log.Info().Str("team", label).Msg("no issues for team, skipping")
            continue
        }
        out = append(out, data)
    }
    return out
}

func filterByLabel(issues []domain.Issue, label string) []domain.Issue {
    out := make([]domain.Issue, 0, len(issues))
    for _, is := range issues {
        for _, l := range is.Fields.Labels {
            if l == label {
                out = append(out, is)
                break
            }
        }
    }
    return out
}

// TeamMembers lists the unique assignees across the sprint's issues,
// keyed by account id, in first-seen order.
func TeamMembers(issues []domain.Issue) []domain.TeamMember {
    seen := map[string]bool{}
    var out []domain.TeamMember
    for _, is := range issues {
        a := is.Fields.Assignee
        if a == nil || a.AccountID == "" || seen[a.AccountID] { continue }
        seen[a.AccountID] = true
        name := a.DisplayName
        if name == "" { name = "Unknown" }
        email := a.EmailAddress
        if email == "" { email = "N/A" }
        out = append(out, domain.TeamMember{
            AccountID:    a.AccountID,
            DisplayName:  name,
            EmailAddress: email,
            AvatarURL:    a.AvatarURLs["48x48"],
        })
    }
    return out
}
