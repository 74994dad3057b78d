/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package analysis

import (
    "fmt"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

// AnalyzeHealth applies the threshold rules over a metrics snapshot. Rule
// order fixes the indicator list order; the overall tier is worst-wins and
// never improves. The two Warning rules are asymmetric on purpose: blockers
// can drag Good to Fair but never Poor, and the WIP rule is informational
// only.
func AnalyzeHealth(m domain.Metrics) domain.HealthAnalysis {
    overall := domain.HealthGood
    var indicators []domain.HealthIndicator

    switch v := m.VelocityPercentage; {
    case v < 60:
        indicators = append(indicators, domain.HealthIndicator{
            Indicator: "Velocity",
            Status:    domain.HealthPoor,
            Message:   fmt.Sprintf("Only %.1f%% of story points completed", v),
        })
        overall = domain.HealthPoor
    case v < 80:
        indicators = append(indicators, domain.HealthIndicator{
            Indicator: "Velocity",
            Status:    domain.HealthFair,
            Message:   fmt.Sprintf("%.1f%% of story points completed", v),
        })
        if overall == domain.HealthGood {
            overall = domain.HealthFair
        }
    default:
        indicators = append(indicators, domain.HealthIndicator{
            Indicator: "Velocity",
            Status:    domain.HealthGood,
            Message:   fmt.Sprintf("%.1f%% of story points completed", v),
        })
    }

    switch r := m.CompletionRate; {
    case r < 60:
        indicators = append(indicators, domain.HealthIndicator{
            Indicator: "Completion Rate",
            Status:    domain.HealthPoor,
            Message:   fmt.Sprintf("Only %.1f%% of issues completed", r),
        })
        overall = domain.HealthPoor
    case r < 80:
        indicators = append(indicators, domain.HealthIndicator{
            Indicator: "Completion Rate",
            Status:    domain.HealthFair,
            Message:   fmt.Sprintf("%.1f%% of issues completed", r),
        })
        if overall == domain.HealthGood {
            overall = domain.HealthFair
        }
    default:
        indicators = append(indicators, domain.HealthIndicator{
            Indicator: "Completion Rate",
            Status:    domain.HealthGood,
            Message:   fmt.Sprintf("%.1f%% of issues completed", r),
        })
    }

    if m.BlockedIssues > 0 {
        indicators = append(indicators, domain.HealthIndicator{
            Indicator: "Blockers",
            Status:    domain.HealthWarning,
            Message:   fmt.Sprintf("%d blocked issue(s) detected", m.BlockedIssues),
        })
        if overall == domain.HealthGood {
            overall = domain.HealthFair
        }
    }

    if m.InProgressIssues > m.CompletedIssues {
        indicators = append(indicators, domain.HealthIndicator{
            Indicator: "Work in Progress",
            Status:    domain.HealthWarning,
            Message:   "More issues in progress than completed",
        })
    }

    return domain.HealthAnalysis{OverallHealth: overall, HealthIndicators: indicators}
}
