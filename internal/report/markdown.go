/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package report

import (
    "fmt"
    "strings"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/analysis"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

// dateOnly and timestamp accept the Jira timestamp variants as well as
// our own RFC3339 generatedAt values.
func dateOnly(iso string) string {
    t := analysis.ParseTime(iso)
    if t == nil { return iso }
    return t.Format("2006-01-02")
}

func timestamp(iso string) string {
    t := analysis.ParseTime(iso)
    if t == nil { return iso }
    return t.Format("2006-01-02 15:04:05")
}

// RenderMarkdown produces the narrative per-team report.
func RenderMarkdown(s domain.Summary) string {
    var b strings.Builder
    m := s.SprintHealthMetrics

    fmt.Fprintf(&b, "# Sprint Summary: %s\n\n", s.SprintInfo.Name)
    fmt.Fprintf(&b, "**Project:** %s (%s)\n", s.ProjectInfo.Name, s.ProjectInfo.Key)
    fmt.Fprintf(&b, "**Team:** %s\n", s.TeamInfo.Label)
    fmt.Fprintf(&b, "**Sprint Duration:** %s - %s (%d days)\n",
        dateOnly(s.SprintInfo.StartDate), dateOnly(s.SprintInfo.EndDate), m.SprintDurationDays)
    fmt.Fprintf(&b, "**Sprint Goal:** %s\n", s.SprintInfo.Goal)
    fmt.Fprintf(&b, "**Generated:** %s\n\n---\n\n", timestamp(s.GeneratedAt))

    b.WriteString("## 📊 Sprint Health Metrics\n\n")
    b.WriteString("| Metric | Value |\n|--------|-------|\n")
    fmt.Fprintf(&b, "| **Overall Health** | **%s** |\n", m.OverallHealth)
    fmt.Fprintf(&b, "| Total Issues | %d |\n", m.TotalIssues)
    fmt.Fprintf(&b, "| Completed Issues | %d |\n", m.CompletedIssues)
    fmt.Fprintf(&b, "| In Progress | %d |\n", m.InProgressIssues)
    fmt.Fprintf(&b, "| Not Started | %d |\n", m.TodoIssues)
    fmt.Fprintf(&b, "| Blocked | %d |\n", m.BlockedIssues)
    fmt.Fprintf(&b, "| **Completion Rate** | **%s** |\n", m.CompletionRate)
    fmt.Fprintf(&b, "| **Velocity (Issues)** | **%d completed** |\n", m.Velocity)
    fmt.Fprintf(&b, "| Total Story Points | %s |\n", trimFloat(m.TotalStoryPoints))
    fmt.Fprintf(&b, "| Completed Story Points | %s |\n", trimFloat(m.CompletedStoryPoints))
    fmt.Fprintf(&b, "| Story Points Completion | %s |\n", m.VelocityPercentage)

    b.WriteString("\n---\n\n## 🏥 Sprint Health Analysis\n\n")
    fmt.Fprintf(&b, "**Overall Status:** %s\n\n", s.SprintHealthAnalysis.OverallHealth)
    for _, ind := range s.SprintHealthAnalysis.HealthIndicators {
        fmt.Fprintf(&b, "- **%s:** %s - %s\n", ind.Indicator, ind.Status, ind.Message)
    }

    b.WriteString("\n---\n\n## 💼 What the Team Worked On\n\n### Issues by Type\n")
    for _, k := range s.WhatTheTeamWorkedOn.IssuesByType.Keys() {
        fmt.Fprintf(&b, "- %s: %d\n", k, s.WhatTheTeamWorkedOn.IssuesByType.Get(k))
    }
    b.WriteString("\n### Issues by Priority\n")
    for _, k := range s.WhatTheTeamWorkedOn.IssuesByPriority.Keys() {
        fmt.Fprintf(&b, "- %s: %d\n", k, s.WhatTheTeamWorkedOn.IssuesByPriority.Get(k))
    }
    b.WriteString("\n### Work Distribution\n")
    fmt.Fprintf(&b, "- ✅ Completed: %d issues\n", s.WhatTheTeamWorkedOn.CompletedWork)
    fmt.Fprintf(&b, "- 🔄 In Progress: %d issues\n", s.WhatTheTeamWorkedOn.InProgressWork)

    b.WriteString("\n---\n\n## 🚧 Current Blockers\n\n")
    if len(s.CurrentBlockers) == 0 {
        b.WriteString("*No blockers identified*\n")
    } else {
        for _, bl := range s.CurrentBlockers {
            fmt.Fprintf(&b, "### %s: %s\n", bl.Key, bl.Summary)
            fmt.Fprintf(&b, "- **Type:** %s\n- **Priority:** %s\n- **Assignee:** %s\n- **Status:** %s\n\n",
                bl.Type, bl.Priority, bl.Assignee, bl.Status)
        }
    }

    b.WriteString("---\n\n## 🎯 Key Accomplishments\n\n")
    for i, a := range s.KeyAccomplishments {
        fmt.Fprintf(&b, "%d. **%s:** %s\n", i+1, a.Key, a.Summary)
        fmt.Fprintf(&b, "   - Type: %s\n   - Priority: %s\n   - Assignee: %s\n   - Story Points: %s\n\n",
            a.Type, a.Priority, a.Assignee, trimFloat(a.StoryPoints))
    }

    b.WriteString("---\n\n## 📋 Next Sprint Priorities\n\n")
    for i, p := range s.NextSprintPriorities {
        fmt.Fprintf(&b, "%d. **[%s]** %s\n", i+1, p.Priority, p.Item)
    }

    b.WriteString("\n---\n\n## 👥 Team Composition\n\n")
    fmt.Fprintf(&b, "**Total Team Members:** %d\n\n", s.TeamComposition.TotalMembers)
    for _, mm := range s.TeamComposition.Members {
        fmt.Fprintf(&b, "- %s (%s)\n", mm.DisplayName, mm.Email)
    }

    b.WriteString("\n---\n\n## 📈 Sprint Status\n\n")
    fmt.Fprintf(&b, "**Status:** %s\n\n", s.SprintStatus.Status)
    fmt.Fprintf(&b, "- %s\n- %s\n", s.SprintStatus.CompletionSummary, s.SprintStatus.VelocitySummary)

    b.WriteString("\n---\n\n## 💡 Recommendations\n\n")
    for i, r := range s.Recommendations {
        fmt.Fprintf(&b, "%d. **[%s] %s**\n   %s\n\n", i+1, r.Priority, r.Category, r.Recommendation)
    }

    b.WriteString("---\n\n*Report generated by Sprint Summary Agent*\n")
    return b.String()
}

// RenderCombinedMarkdown produces the cross-team rollup report.
func RenderCombinedMarkdown(c domain.CombinedSummary) string {
    var b strings.Builder
    m := c.SprintHealthMetrics

    fmt.Fprintf(&b, "# %s\n\n**Generated:** %s\n\n---\n\n", c.Title, timestamp(c.GeneratedAt))

    b.WriteString("## 📊 Overall Metrics Across All Teams\n\n")
    b.WriteString("| Metric | Value |\n|--------|-------|\n")
    keys := make([]string, 0, len(c.Projects))
    for _, p := range c.Projects { keys = append(keys, p.Key) }
    fmt.Fprintf(&b, "| **Projects** | %d (%s) |\n", len(c.Projects), strings.Join(keys, ", "))
    fmt.Fprintf(&b, "| **Teams** | %d (%s) |\n", len(c.Teams), strings.Join(c.Teams, ", "))
    fmt.Fprintf(&b, "| **Total Issues** | %d |\n", m.TotalIssues)
    fmt.Fprintf(&b, "| **Completed Issues** | %d |\n", m.CompletedIssues)
    fmt.Fprintf(&b, "| **Completion Rate** | %s |\n", m.CompletionRate)
    fmt.Fprintf(&b, "| **Velocity (Issues)** | %s completed |\n", trimFloat(m.Velocity))
    fmt.Fprintf(&b, "| **Total Story Points** | %s |\n", trimFloat(m.TotalStoryPoints))
    fmt.Fprintf(&b, "| **Completed Story Points** | %s |\n", trimFloat(m.CompletedStoryPoints))
    fmt.Fprintf(&b, "| **Story Points Completion** | %s |\n", m.VelocityPercentage)
    fmt.Fprintf(&b, "| **Blocked Issues** | %d |\n", m.BlockedIssues)
    fmt.Fprintf(&b, "| **Total Team Members** | %d |\n", m.TotalTeamMembers)

    b.WriteString("\n---\n\n## 👥 Team Summary\n\n")
    for _, t := range c.TeamSummaries {
        fmt.Fprintf(&b, "- **%s** (%s): %s - Completion: %s, Velocity: %d\n",
            t.Team, t.Project, t.Health, t.CompletionRate, t.Velocity)
    }

    b.WriteString("\n---\n\n## 🚧 All Blockers (Top 20)\n\n")
    if len(c.CurrentBlockers) == 0 {
        b.WriteString("*No blockers identified*\n")
    } else {
        for _, bl := range c.CurrentBlockers {
            fmt.Fprintf(&b, "### %s: %s\n", bl.Key, bl.Summary)
            fmt.Fprintf(&b, "- **Team:** %s (%s)\n- **Type:** %s\n- **Priority:** %s\n- **Assignee:** %s\n- **Status:** %s\n\n",
                bl.Team, bl.Project, bl.Type, bl.Priority, bl.Assignee, bl.Status)
        }
    }

    b.WriteString("---\n\n## 🎯 Top Accomplishments (Top 20)\n\n")
    for i, a := range c.KeyAccomplishments {
        fmt.Fprintf(&b, "%d. **%s:** %s\n", i+1, a.Key, a.Summary)
        fmt.Fprintf(&b, "   - Team: %s (%s)\n   - Type: %s\n   - Priority: %s\n   - Assignee: %s\n   - Story Points: %s\n\n",
            a.Team, a.Project, a.Type, a.Priority, a.Assignee, trimFloat(a.StoryPoints))
    }

    b.WriteString("---\n\n*Combined report generated by Sprint Summary Agent*\n")
    return b.String()
}
