/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package analysis

import (
    "sort"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

const maxAccomplishments = 10

// priorityRank is the fixed total order used to rank accomplishments.
// Anything unrecognized, including "None", sorts last.
func priorityRank(name string) int {
    switch name {
    case "Highest":
        return 0
    case "High":
        return 1
    case "Medium":
        return 2
    case "Low":
        return 3
    case "Lowest":
        return 4
    default:
        return 5
    }
}

// ExtractAccomplishments ranks the completed bucket by priority (stable, so
// ties keep their original order) and caps the list at ten. Story points are
// read with the report slot order, not the aggregator's.
func ExtractAccomplishments(m domain.Metrics) []domain.Accomplishment {
    completed := make([]domain.Issue, len(m.StatusGroups.Completed))
    copy(completed, m.StatusGroups.Completed)

    sort.SliceStable(completed, func(i, j int) bool {
        return priorityRank(PriorityName(completed[i].Fields)) < priorityRank(PriorityName(completed[j].Fields))
    })
    if len(completed) > maxAccomplishments {
        completed = completed[:maxAccomplishments]
    }

    out := make([]domain.Accomplishment, 0, len(completed))
    for _, is := range completed {
        f := is.Fields
        out = append(out, domain.Accomplishment{
            Key:         is.Key,
            Summary:     f.Summary,
            Type:        issueTypeName(f),
            Priority:    PriorityName(f),
            Assignee:    AssigneeName(f),
            StoryPoints: ReportPoints(f),
        })
    }
    return out
}

// ExtractBlockers projects the blocked bucket as-is; any display cap is the
// rendering layer's concern.
func ExtractBlockers(m domain.Metrics) []domain.Blocker {
    out := make([]domain.Blocker, 0, len(m.StatusGroups.Blocked))
    for _, is := range m.StatusGroups.Blocked {
        f := is.Fields
        status := f.Status.Name
        if status == "" {
            status = "Unknown"
        }
        out = append(out, domain.Blocker{
            Key:      is.Key,
            Summary:  f.Summary,
            Type:     issueTypeName(f),
            Priority: PriorityName(f),
            Assignee: AssigneeName(f),
            Status:   status,
        })
    }
    return out
}
