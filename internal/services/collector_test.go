package services

import (
    "context"
    "errors"
    "testing"

    "github.com/rs/zerolog"
    "github.com/stretchr/testify/require"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

type fakeJira struct {
    boards   map[string][]domain.Board
    sprints  map[int64][]domain.Sprint
    issues   map[int64][]domain.Issue
    projects map[string]domain.Project
    fail     map[string]error
}

func (f *fakeJira) Boards(_ context.Context, projectKey string) ([]domain.Board, error) {
    if err := f.fail["boards:"+projectKey]; err != nil { return nil, err }
    return f.boards[projectKey], nil
}

func (f *fakeJira) ClosedSprints(_ context.Context, boardID int64) ([]domain.Sprint, error) {
    return f.sprints[boardID], nil
}

func (f *fakeJira) SprintIssues(_ context.Context, sprintID int64) ([]domain.Issue, error) {
    return f.issues[sprintID], nil
}

func (f *fakeJira) Project(_ context.Context, key string) (*domain.Project, error) {
    p, ok := f.projects[key]
    if !ok { return nil, errors.New("project not found") }
    return &p, nil
}

func labelled(key string, labels ...string) domain.Issue {
    return domain.Issue{Key: key, Fields: domain.IssueFields{Labels: labels}}
}

func testJira() *fakeJira {
    return &fakeJira{
        boards: map[string][]domain.Board{
            "PLAT": {{ID: 1, Name: "PLAT board", ProjectKey: "PLAT"}},
            "CORE": {{ID: 2, Name: "CORE board", ProjectKey: "CORE"}},
        },
        sprints: map[int64][]domain.Sprint{
            1: {
                {ID: 10, Name: "Alpha Sprint 1", State: "closed", EndDate: "2025-02-17T09:00:00.000Z"},
                {ID: 11, Name: "Alpha Sprint 2", State: "closed", EndDate: "2025-03-17T09:00:00.000Z"},
            },
            2: {
                {ID: 20, Name: "alpha sprint 3", State: "closed", EndDate: "2025-03-10T09:00:00.000Z"},
                {ID: 21, Name: "Beta Sprint 4", State: "closed", EndDate: "2025-03-24T09:00:00.000Z"},
            },
        },
        issues: map[int64][]domain.Issue{
            11: {labelled("PLAT-1", "alpha"), labelled("PLAT-2", "Alpha"), labelled("PLAT-3", "alpha", "blocked")},
            21: {labelled("CORE-1", "beta")},
        },
        projects: map[string]domain.Project{
            "PLAT": {Key: "PLAT", Name: "Platform"},
            "CORE": {Key: "CORE", Name: "Core"},
        },
        fail: map[string]error{},
    }
}

func newTestCollector(f *fakeJira) *Collector {
    return NewCollector(f, zerolog.Nop())
}

func TestCollectForTeamPicksLatestMatchingSprint(t *testing.T) {
    c := newTestCollector(testJira())

    data, err := c.CollectForTeam(context.Background(), []string{"PLAT", "CORE"}, "alpha")
    require.NoError(t, err)
    // sprint name matching is case-insensitive; sprint 11 ends latest
    require.Equal(t, int64(11), data.Sprint.ID)
    require.Equal(t, "PLAT", data.ProjectKey)
    require.Equal(t, "PLAT board", data.BoardName)
    require.Equal(t, "alpha", data.TeamLabel)
    // issue label filtering is an exact match, so "Alpha" is excluded
    keys := make([]string, 0, len(data.Issues))
    for _, is := range data.Issues { keys = append(keys, is.Key) }
    require.Equal(t, []string{"PLAT-1", "PLAT-3"}, keys)
}

func TestCollectForTeamNoMatch(t *testing.T) {
    c := newTestCollector(testJira())
    _, err := c.CollectForTeam(context.Background(), []string{"PLAT"}, "gamma")
    require.ErrorContains(t, err, `no closed sprints found with team name "gamma"`)
}

func TestCollectProjectUsesFirstBoardLatestSprint(t *testing.T) {
    c := newTestCollector(testJira())
    data, err := c.CollectProject(context.Background(), "CORE")
    require.NoError(t, err)
    require.Equal(t, int64(21), data.Sprint.ID)
    require.Empty(t, data.TeamLabel)
    require.Len(t, data.Issues, 1)
}

func TestCollectAllSkipsFailuresAndEmptySprints(t *testing.T) {
    f := testJira()
    f.fail["boards:PLAT"] = errors.New("jira down")
    c := newTestCollector(f)

    got := c.CollectAll(context.Background(), []string{"PLAT", "CORE"}, nil)
    require.Len(t, got, 1)
    require.Equal(t, "CORE", got[0].ProjectKey)

    // with team labels: beta resolves, gamma silently skipped
    f2 := testJira()
    got = newTestCollector(f2).CollectAll(context.Background(), []string{"PLAT", "CORE"}, []string{"beta", "gamma"})
    require.Len(t, got, 1)
    require.Equal(t, "beta", got[0].TeamLabel)
}

func TestTeamMembersUniqueByAccountID(t *testing.T) {
    dana := &domain.User{AccountID: "a1", DisplayName: "Dana", EmailAddress: "dana@example.com"}
    anon := &domain.User{AccountID: "a2"}
    issues := []domain.Issue{
        {Key: "X-1", Fields: domain.IssueFields{Assignee: dana}},
        {Key: "X-2", Fields: domain.IssueFields{Assignee: dana}},
        {Key: "X-3", Fields: domain.IssueFields{Assignee: anon}},
        {Key: "X-4"},
    }

    members := TeamMembers(issues)
    require.Len(t, members, 2)
    require.Equal(t, "Dana", members[0].DisplayName)
    require.Equal(t, "Unknown", members[1].DisplayName)
    require.Equal(t, "N/A", members[1].EmailAddress)
}
