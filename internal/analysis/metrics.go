/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package analysis

import (
    "math"
    "time"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

// CalculateMetrics folds one sprint's issue batch into an immutable metrics
// snapshot in a single pass. An empty batch yields a zero snapshot with both
// rates at 0; there are no error conditions.
func CalculateMetrics(issues []domain.Issue, sprint domain.Sprint) domain.Metrics {
    groups := domain.StatusGroups{}
    issueTypes := domain.NewFrequency()
    priorities := domain.NewFrequency()
    var totalPoints, completedPoints float64

    for _, is := range issues {
        c := Classify(is)

        switch c.Bucket {
        case BucketCompleted:
            groups.Completed = append(groups.Completed, is)
            completedPoints += c.Points
        case BucketInProgress:
            groups.InProgress = append(groups.InProgress, is)
        default:
            groups.Todo = append(groups.Todo, is)
        }
        if c.Blocked {
            groups.Blocked = append(groups.Blocked, is)
        }

        totalPoints += c.Points
        issueTypes.Add(c.Type)
        priorities.Add(c.Priority)
    }

    completionRate := 0.0
    velocityPct := 0.0
    if len(issues) > 0 {
        completionRate = round1(float64(len(groups.Completed)) / float64(len(issues)) * 100)
        // Deliberately the same count-based ratio as completionRate; the
        // point-based figures are tracked separately and do not feed it.
        velocityPct = completionRate
    }

    return domain.Metrics{
        TotalIssues:          len(issues),
        CompletedIssues:      len(groups.Completed),
        InProgressIssues:     len(groups.InProgress),
        TodoIssues:           len(groups.Todo),
        BlockedIssues:        len(groups.Blocked),
        TotalStoryPoints:     totalPoints,
        CompletedStoryPoints: completedPoints,
        Velocity:             len(groups.Completed),
        VelocityPercentage:   velocityPct,
        CompletionRate:       completionRate,
        DurationDays:         durationDays(sprint.StartDate, sprint.EndDate),
        StartDate:            sprint.StartDate,
        EndDate:              sprint.EndDate,
        IssueTypes:           issueTypes,
        Priorities:           priorities,
        StatusGroups:         groups,
    }
}

// durationDays is whole days between the sprint timestamps, truncated, after
// normalizing both to UTC. Unparseable timestamps degrade to 0.
func durationDays(startDate, endDate string) int {
    start := ParseTime(startDate)
    end := ParseTime(endDate)
    if start == nil || end == nil {
        return 0
    }
    return int(end.UTC().Sub(start.UTC()).Hours() / 24)
}

// ParseTime accepts the ISO-8601 variants Jira emits and returns UTC.
func ParseTime(s string) *time.Time {
    if s == "" {
        return nil
    }
    layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000-0700", "2006-01-02T15:04:05-0700"}
    for _, l := range layouts {
        if t, err := time.Parse(l, s); err == nil {
            tt := t.UTC()
            return &tt
        }
    }
    return nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
