package analysis

import (
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

func sprintDates(start, end string) domain.Sprint {
    return domain.Sprint{ID: 42, Name: "Sprint 42", State: "closed", StartDate: start, EndDate: end}
}

func batch(done, inProgress, todo int) []domain.Issue {
    var out []domain.Issue
    for i := 0; i < done; i++ {
        out = append(out, makeIssue("D-1", "Done", "Done"))
    }
    for i := 0; i < inProgress; i++ {
        out = append(out, makeIssue("P-1", "In Progress", "In Progress"))
    }
    for i := 0; i < todo; i++ {
        out = append(out, makeIssue("T-1", "To Do", "To Do"))
    }
    return out
}

func TestCalculateMetricsPartitionIsExhaustive(t *testing.T) {
    issues := batch(3, 4, 5)
    m := CalculateMetrics(issues, sprintDates("2025-03-03T09:00:00.000Z", "2025-03-17T09:00:00.000Z"))

    require.Equal(t, 12, m.TotalIssues)
    require.Equal(t, m.TotalIssues, m.CompletedIssues+m.InProgressIssues+m.TodoIssues)
    require.Equal(t, 3, m.CompletedIssues)
    require.Equal(t, 4, m.InProgressIssues)
    require.Equal(t, 5, m.TodoIssues)
    require.Equal(t, 14, m.DurationDays)
}

func TestCalculateMetricsRatesAreCountBased(t *testing.T) {
    issues := batch(8, 1, 1)
    // points should not leak into the percentage fields
    for i := range issues {
        issues[i].Fields.PointsLegacy = fp(13)
    }
    m := CalculateMetrics(issues, sprintDates("2025-03-03T09:00:00.000Z", "2025-03-17T09:00:00.000Z"))

    require.Equal(t, 80.0, m.CompletionRate)
    require.Equal(t, 80.0, m.VelocityPercentage)
    require.Equal(t, 8, m.Velocity, "velocity counts completed issues, not points")
    require.Equal(t, 130.0, m.TotalStoryPoints)
    require.Equal(t, 104.0, m.CompletedStoryPoints)
}

func TestCalculateMetricsEmptyBatch(t *testing.T) {
    m := CalculateMetrics(nil, sprintDates("2025-03-03T09:00:00.000Z", "2025-03-17T09:00:00.000Z"))
    require.Zero(t, m.TotalIssues)
    require.Zero(t, m.CompletedIssues)
    require.Equal(t, 0.0, m.CompletionRate)
    require.Equal(t, 0.0, m.VelocityPercentage)
    require.Zero(t, m.IssueTypes.Len())
}

func TestCalculateMetricsRounding(t *testing.T) {
    // 1 of 3 completed: 33.333... rounds to 33.3
    m := CalculateMetrics(batch(1, 1, 1), sprintDates("2025-03-03T09:00:00.000Z", "2025-03-10T09:00:00.000Z"))
    require.Equal(t, 33.3, m.CompletionRate)

    // 2 of 3 completed: 66.666... rounds to 66.7
    m = CalculateMetrics(batch(2, 0, 1), sprintDates("2025-03-03T09:00:00.000Z", "2025-03-10T09:00:00.000Z"))
    require.Equal(t, 66.7, m.CompletionRate)
}

func TestCalculateMetricsBlockedOverlapsBuckets(t *testing.T) {
    done := makeIssue("A-1", "Done", "Done")
    done.Fields.Labels = []string{"blocked"}
    stuck := makeIssue("A-2", "To Do", "Blocked")
    clean := makeIssue("A-3", "Done", "Done")

    m := CalculateMetrics([]domain.Issue{done, stuck, clean}, sprintDates("2025-03-03T09:00:00.000Z", "2025-03-17T09:00:00.000Z"))
    require.Equal(t, 2, m.BlockedIssues)
    require.Equal(t, 2, m.CompletedIssues)
    require.Equal(t, 1, m.TodoIssues)
    require.Equal(t, 3, m.CompletedIssues+m.InProgressIssues+m.TodoIssues)
}

func TestCalculateMetricsFrequencyTablesKeepFirstSeenOrder(t *testing.T) {
    bug := makeIssue("B-1", "Done", "Done")
    bug.Fields.IssueType.Name = "Bug"
    story := makeIssue("B-2", "To Do", "To Do")
    story.Fields.IssueType.Name = "Story"
    bug2 := makeIssue("B-3", "To Do", "To Do")
    bug2.Fields.IssueType.Name = "Bug"

    m := CalculateMetrics([]domain.Issue{bug, story, bug2}, sprintDates("2025-03-03T09:00:00.000Z", "2025-03-17T09:00:00.000Z"))
    require.Equal(t, []string{"Bug", "Story"}, m.IssueTypes.Keys())
    require.Equal(t, 2, m.IssueTypes.Get("Bug"))
    require.Equal(t, 1, m.IssueTypes.Get("Story"))
    require.Equal(t, []string{"None"}, m.Priorities.Keys())
    require.Equal(t, 3, m.Priorities.Get("None"))
}

func TestDurationDaysNormalizesToUTCAndTruncates(t *testing.T) {
    // offsets that straddle UTC midnight must not shift the day count
    require.Equal(t, 14, durationDays("2025-03-03T20:00:00.000-0500", "2025-03-18T01:00:00.000Z"))
    // partial days truncate, never round up
    require.Equal(t, 13, durationDays("2025-03-03T09:00:00.000Z", "2025-03-17T08:59:00.000Z"))
    // unparseable input degrades to zero
    require.Equal(t, 0, durationDays("not-a-date", "2025-03-17T09:00:00.000Z"))
    require.Equal(t, 0, durationDays("", ""))
}
