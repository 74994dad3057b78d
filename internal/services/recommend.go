/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import (
    "context"
    "encoding/json"
    "fmt"
    "strings"

    "github.com/rs/zerolog"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/adapters/llm"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

const recommendSystemPrompt = "You are an expert Agile coach analyzing a sprint retrospective. " +
    "Generate 3-5 actionable recommendations based on the sprint data you are given. " +
    "Prioritize by impact (High/Medium/Low). Respond with ONLY a JSON array of objects " +
    `with keys "category", "priority" and "recommendation", no additional text.`

// Recommender drafts sprint recommendations with the configured LLM and
// falls back to rule-based output when no provider is set or the call fails.
type Recommender struct {
    provider llm.Provider
    log      zerolog.Logger
}

func NewRecommender(provider llm.Provider, log zerolog.Logger) *Recommender {
    return &Recommender{provider: provider, log: log}
}

func (r *Recommender) Generate(ctx context.Context, data domain.SprintData, m domain.Metrics,
    health domain.HealthAnalysis, accomplishments []domain.Accomplishment,
    blockers []domain.Blocker) []domain.Recommendation {

    if r.provider == nil {
        return RuleRecommendations(m)
    }
    out, err := r.generateLLM(ctx, data, m, health, accomplishments, blockers)
    if err != nil {
        r.log.Warn().Err(err).Str("provider", r.provider.Name()).Msg("llm recommendations failed, using rules")
        return RuleRecommendations(m)
    }
    return out
}

func (r *Recommender) generateLLM(ctx context.Context, data domain.SprintData, m domain.Metrics,
    health domain.HealthAnalysis, accomplishments []domain.Accomplishment,
    blockers []domain.Blocker) ([]domain.Recommendation, error) {

    text, err := r.provider.Complete(ctx, recommendSystemPrompt,
        buildContextPrompt(data, m, health, accomplishments, blockers))
    if err != nil { return nil, err }

    var raw []struct {
        Category       string `json:"category"`
        Priority       string `json:"priority"`
        Recommendation string `json:"recommendation"`
    }
    if err := json.Unmarshal([]byte(llm.StripFences(text)), &raw); err != nil {
        return nil, fmt.Errorf("parse recommendations: %w", err)
    }
    out := make([]domain.Recommendation, 0, len(raw))
    for _, rec := range raw {
        if rec.Category == "" { rec.Category = "General" }
        if rec.Priority == "" { rec.Priority = "Medium" }
        out = append(out, domain.Recommendation{
            Category:       rec.Category,
            Priority:       rec.Priority,
            Recommendation: rec.Recommendation,
        })
    }
    return out, nil
}

// buildContextPrompt renders the sprint facts shared by the
// recommendation and slide prompts.
func buildContextPrompt(data domain.SprintData, m domain.Metrics, health domain.HealthAnalysis,
    accomplishments []domain.Accomplishment, blockers []domain.Blocker) string {

    var b strings.Builder
    team := data.TeamLabel
    if team == "" { team = "All Teams" }
    goal := data.Sprint.Goal
    if goal == "" { goal = "No goal set" }

    fmt.Fprintf(&b, "**Sprint Information:**\n- Team: %s\n- Project: %s\n- Sprint: %s\n- Sprint Goal: %s\n- Duration: %d days\n\n",
        team, data.Project.Name, data.Sprint.Name, goal, m.DurationDays)
    fmt.Fprintf(&b, "**Sprint Metrics:**\n- Total Issues: %d\n- Completed Issues: %d (%.1f%%)\n- In Progress: %d\n- Not Started: %d\n- Blocked: %d\n- Total Story Points: %g\n- Completed Story Points: %g (%.1f%%)\n- Velocity: %d\n\n",
        m.TotalIssues, m.CompletedIssues, m.CompletionRate, m.InProgressIssues, m.TodoIssues,
        m.BlockedIssues, m.TotalStoryPoints, m.CompletedStoryPoints, m.VelocityPercentage, m.Velocity)

    fmt.Fprintf(&b, "**Sprint Health:**\n- Overall Health: %s\n", health.OverallHealth)
    for _, ind := range health.HealthIndicators {
        fmt.Fprintf(&b, "- %s: %s - %s\n", ind.Indicator, ind.Status, ind.Message)
    }

    b.WriteString("\n**Current Blockers:**\n")
    if len(blockers) == 0 {
        b.WriteString("- No blockers\n")
    } else {
        for i, bl := range blockers {
            if i == 3 { break }
            fmt.Fprintf(&b, "- %s: %s (Priority: %s)\n", bl.Key, bl.Summary, bl.Priority)
        }
    }

    b.WriteString("\n**Key Accomplishments:**\n")
    for i, a := range accomplishments {
        if i == 5 { break }
        fmt.Fprintf(&b, "- %s: %s\n", a.Key, a.Summary)
    }
    return b.String()
}

// RuleRecommendations is the deterministic fallback used when no LLM is
// configured.
func RuleRecommendations(m domain.Metrics) []domain.Recommendation {
    var out []domain.Recommendation

    if m.VelocityPercentage < 80 {
        out = append(out, domain.Recommendation{
            Category: "Velocity", Priority: "High",
            Recommendation: "Consider reducing sprint commitment or identifying impediments affecting team velocity",
        })
    }
    if m.BlockedIssues > 0 {
        out = append(out, domain.Recommendation{
            Category: "Blockers", Priority: "High",
            Recommendation: fmt.Sprintf("Address %d blocked issue(s) immediately to prevent future sprint delays", m.BlockedIssues),
        })
    }
    if m.InProgressIssues > m.CompletedIssues {
        out = append(out, domain.Recommendation{
            Category: "WIP Limit", Priority: "Medium",
            Recommendation: "Too much work in progress. Consider implementing WIP limits to improve flow",
        })
    }
    if m.TodoIssues > 0 {
        out = append(out, domain.Recommendation{
            Category: "Sprint Planning", Priority: "Medium",
            Recommendation: fmt.Sprintf("%d issue(s) not started. Review sprint planning and capacity", m.TodoIssues),
        })
    }
    if len(out) == 0 {
        out = append(out, domain.Recommendation{
            Category: "General", Priority: "Low",
            Recommendation: "Sprint executed well. Continue current practices and look for incremental improvements",
        })
    }
    return out
}
