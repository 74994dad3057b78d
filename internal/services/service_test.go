package services

import (
    "context"
    "encoding/json"
    "os"
    "path/filepath"
    "testing"

    "github.com/rs/zerolog"
    "github.com/stretchr/testify/require"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/config"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/report"
)

type memoryArchive struct {
    started  int
    finished bool
    success  bool
    rows     int
}

func (a *memoryArchive) StartRun(context.Context, string, string) (int64, error) {
    a.started++
    return 7, nil
}

func (a *memoryArchive) FinishRun(_ context.Context, _ int64, _ int, success bool, _ string) error {
    a.finished = true
    a.success = success
    return nil
}

func (a *memoryArchive) SaveSprintMetrics(context.Context, int64, domain.SprintData, domain.Metrics, domain.HealthStatus) error {
    a.rows++
    return nil
}

func sprintFixture(f *fakeJira) {
    done := domain.Issue{Key: "PLAT-1", Fields: domain.IssueFields{
        Summary: "Ship billing",
        Labels:  []string{"alpha"},
        Status:  domain.Status{Name: "Done", StatusCategory: domain.StatusCategory{Name: "done"}},
    }}
    open := domain.Issue{Key: "PLAT-2", Fields: domain.IssueFields{
        Summary: "Fix flaky test",
        Labels:  []string{"alpha"},
        Status:  domain.Status{Name: "In Progress", StatusCategory: domain.StatusCategory{Name: "indeterminate"}},
    }}
    f.issues[11] = []domain.Issue{done, open}
    f.issues[21] = []domain.Issue{{Key: "CORE-1", Fields: domain.IssueFields{
        Summary: "Core work",
        Labels:  []string{"beta"},
        Status:  domain.Status{Name: "Done", StatusCategory: domain.StatusCategory{Name: "done"}},
    }}}
}

func TestRunReportsEndToEnd(t *testing.T) {
    dir := t.TempDir()
    f := testJira()
    sprintFixture(f)
    // team sprints need parseable dates for duration and selection
    log := zerolog.Nop()

    cfg := config.Config{
        JiraProjects:    []string{"PLAT", "CORE"},
        TeamLabels:      []string{"alpha", "beta"},
        OutputDir:       dir,
        CombinedSummary: true,
    }
    archive := &memoryArchive{}
    svc := NewService(cfg,
        NewCollector(f, log),
        NewRecommender(nil, log),
        NewSlideWriter(nil, log),
        report.NewWriter(dir, log),
        archive, nil, log)

    n, err := svc.RunReports(context.Background())
    require.NoError(t, err)
    require.Equal(t, 2, n)

    for _, name := range []string{
        "sprint-summary-PLAT-alpha.json",
        "sprint-summary-PLAT-alpha.md",
        "sprint-summary-CORE-beta.json",
        "sprint-summary-combined.json",
        "sprint-summary-combined.md",
        "sprint-summary-deck.json",
    } {
        _, statErr := os.Stat(filepath.Join(dir, name))
        require.NoError(t, statErr, name)
    }

    raw, err := os.ReadFile(filepath.Join(dir, "sprint-summary-PLAT-alpha.json"))
    require.NoError(t, err)
    var s domain.Summary
    require.NoError(t, json.Unmarshal(raw, &s))
    require.Equal(t, "alpha", s.TeamInfo.Label)
    require.Equal(t, 2, s.SprintHealthMetrics.TotalIssues)
    require.Equal(t, 1, s.SprintHealthMetrics.CompletedIssues)
    require.NotEmpty(t, s.Recommendations)

    var deck domain.Deck
    raw, err = os.ReadFile(filepath.Join(dir, "sprint-summary-deck.json"))
    require.NoError(t, err)
    require.NoError(t, json.Unmarshal(raw, &deck))
    require.Len(t, deck.Slides, 2)
    require.Equal(t, "alpha", deck.Slides[0].Team)

    require.Equal(t, 1, archive.started)
    require.True(t, archive.finished)
    require.True(t, archive.success)
    require.Equal(t, 2, archive.rows)
}

func TestRunReportsNoData(t *testing.T) {
    f := testJira()
    f.issues = map[int64][]domain.Issue{}
    dir := t.TempDir()
    log := zerolog.Nop()
    cfg := config.Config{JiraProjects: []string{"PLAT"}, TeamLabels: []string{"alpha"}, OutputDir: dir}

    svc := NewService(cfg, NewCollector(f, log), NewRecommender(nil, log),
        NewSlideWriter(nil, log), report.NewWriter(dir, log), nil, nil, log)

    n, err := svc.RunReports(context.Background())
    require.Error(t, err)
    require.Zero(t, n)
}
