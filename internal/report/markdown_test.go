package report

import (
    "strings"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

func TestRenderMarkdownSections(t *testing.T) {
    fixedNow(t)
    m := sampleMetrics()
    health := domain.HealthAnalysis{
        OverallHealth: domain.HealthGood,
        HealthIndicators: []domain.HealthIndicator{
            {Indicator: "Velocity", Status: domain.HealthGood, Message: "80.0% of story points completed"},
        },
    }
    acc := []domain.Accomplishment{{Key: "PLAT-1", Summary: "Shipped billing", Type: "Story", Priority: "High", Assignee: "Dana", StoryPoints: 5}}
    recs := []domain.Recommendation{{Category: "General", Priority: "Low", Recommendation: "Keep going"}}
    s := BuildSummary(sampleData(), m, health, acc, nil, recs)

    md := RenderMarkdown(s)

    require.True(t, strings.HasPrefix(md, "# Sprint Summary: Platform Sprint 7\n"))
    require.Contains(t, md, "**Sprint Duration:** 2025-03-03 - 2025-03-17 (14 days)")
    require.Contains(t, md, "| **Overall Health** | **Good** |")
    require.Contains(t, md, "| **Completion Rate** | **80.0%** |")
    require.Contains(t, md, "- **Velocity:** Good - 80.0% of story points completed")
    require.Contains(t, md, "- Story: 1\n- Bug: 1\n")
    require.Contains(t, md, "*No blockers identified*")
    require.Contains(t, md, "1. **PLAT-1:** Shipped billing")
    require.Contains(t, md, "   - Story Points: 5\n")
    require.Contains(t, md, "1. **[Low] General**\n   Keep going")
    require.Contains(t, md, "- Dana (dana@example.com)")
    require.True(t, strings.HasSuffix(md, "*Report generated by Sprint Summary Agent*\n"))
}

func TestRenderMarkdownBlockers(t *testing.T) {
    fixedNow(t)
    s := BuildSummary(sampleData(), sampleMetrics(), domain.HealthAnalysis{OverallHealth: domain.HealthFair},
        nil, []domain.Blocker{{Key: "PLAT-9", Summary: "Stuck on vendor", Type: "Bug", Priority: "High", Assignee: "Lee", Status: "Blocked"}}, nil)

    md := RenderMarkdown(s)
    require.Contains(t, md, "### PLAT-9: Stuck on vendor")
    require.Contains(t, md, "- **Status:** Blocked")
    require.NotContains(t, md, "*No blockers identified*")
}

func TestRenderCombinedMarkdown(t *testing.T) {
    fixedNow(t)
    a := teamSummary("alpha", "PLAT", 10, 8, 30, 24, domain.HealthGood)
    b := teamSummary("beta", "CORE", 10, 2, 30, 6, domain.HealthPoor)
    c := BuildCombined([]domain.Summary{a, b})

    md := RenderCombinedMarkdown(*c)
    require.True(t, strings.HasPrefix(md, "# Combined Sprint Summary - All Teams\n"))
    require.Contains(t, md, "| **Projects** | 2 (PLAT, CORE) |")
    require.Contains(t, md, "| **Teams** | 2 (alpha, beta) |")
    require.Contains(t, md, "- **alpha** (PLAT): Good - Completion: 50.0%, Velocity: 8")
    require.Contains(t, md, "*No blockers identified*")
    require.True(t, strings.HasSuffix(md, "*Combined report generated by Sprint Summary Agent*\n"))
}
