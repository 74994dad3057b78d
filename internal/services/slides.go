/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import (
    "context"
    "encoding/json"
    "fmt"

    "github.com/rs/zerolog"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/adapters/llm"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

const slideSystemPrompt = "You are an expert Agile coach creating a concise, executive-level sprint summary " +
    "for a presentation slide laid out as a 2x2 grid. Generate four sections: a sprint health summary " +
    "(3-4 bullets, max 50 chars each), key accomplishments (3-5 bullets, max 45 chars), blockers and risks " +
    "(3-4 bullets, max 45 chars) and actionable recommendations prefixed with [High]/[Medium]/[Low] " +
    "(3-4 bullets, max 55 chars). Use active voice and focus on insights, not just data. " +
    `Respond with ONLY a JSON object with keys "healthSummary", "accomplishments", "blockers" and ` +
    `"recommendations", each holding {"title": string, "bullets": [string]}.`

// SlideWriter produces the narrative 2x2 deck content for one team.
type SlideWriter struct {
    provider llm.Provider
    log      zerolog.Logger
}

func NewSlideWriter(provider llm.Provider, log zerolog.Logger) *SlideWriter {
    return &SlideWriter{provider: provider, log: log}
}

func (w *SlideWriter) Generate(ctx context.Context, data domain.SprintData, m domain.Metrics,
    health domain.HealthAnalysis, accomplishments []domain.Accomplishment,
    blockers []domain.Blocker) domain.SlideContent {

    if w.provider == nil {
        return FallbackSlideContent(m, health, accomplishments, blockers)
    }
    text, err := w.provider.Complete(ctx, slideSystemPrompt,
        buildContextPrompt(data, m, health, accomplishments, blockers))
    if err == nil {
        var content domain.SlideContent
        if jsonErr := json.Unmarshal([]byte(llm.StripFences(text)), &content); jsonErr == nil && slideContentValid(content) {
            return content
        } else if jsonErr != nil {
            err = jsonErr
        } else {
            err = fmt.Errorf("incomplete slide content")
        }
    }
    w.log.Warn().Err(err).Str("provider", w.provider.Name()).Msg("llm slide content failed, using fallback")
    return FallbackSlideContent(m, health, accomplishments, blockers)
}

func slideContentValid(c domain.SlideContent) bool {
    return len(c.HealthSummary.Bullets) > 0 && len(c.Accomplishments.Bullets) > 0 &&
        len(c.Blockers.Bullets) > 0 && len(c.Recommendations.Bullets) > 0
}

func truncate(s string, n int) string {
    if len(s) <= n { return s }
    return s[:n] + "..."
}

// FallbackSlideContent renders the grid straight from the structured
// data when no LLM is available.
func FallbackSlideContent(m domain.Metrics, health domain.HealthAnalysis,
    accomplishments []domain.Accomplishment, blockers []domain.Blocker) domain.SlideContent {

    healthBullets := []string{
        fmt.Sprintf("Health: %s", health.OverallHealth),
        fmt.Sprintf("Done: %d/%d (%.1f%%)", m.CompletedIssues, m.TotalIssues, m.CompletionRate),
        fmt.Sprintf("Velocity: %d issues", m.Velocity),
        fmt.Sprintf("Blocked: %d", m.BlockedIssues),
    }

    accBullets := make([]string, 0, 4)
    for i, a := range accomplishments {
        if i == 4 { break }
        accBullets = append(accBullets, fmt.Sprintf("%s: %s", a.Key, truncate(a.Summary, 38)))
    }
    if len(accBullets) == 0 { accBullets = []string{"No completed items"} }

    blockerBullets := make([]string, 0, 4)
    for i, b := range blockers {
        if i == 4 { break }
        blockerBullets = append(blockerBullets, fmt.Sprintf("%s: %s", b.Key, truncate(b.Summary, 35)))
    }
    if len(blockerBullets) == 0 { blockerBullets = []string{"No blockers - clear path ahead ✓"} }

    var recBullets []string
    if m.VelocityPercentage < 80 {
        recBullets = append(recBullets, "[High] Review sprint capacity")
    } else {
        recBullets = append(recBullets, "[Low] Maintain velocity")
    }
    if m.BlockedIssues > 0 {
        recBullets = append(recBullets, fmt.Sprintf("[High] Clear %d blockers", m.BlockedIssues))
    } else {
        recBullets = append(recBullets, "[Low] Keep momentum")
    }
    if m.TodoIssues > 0 {
        recBullets = append(recBullets, fmt.Sprintf("[Medium] Review %d unstarted", m.TodoIssues))
    } else {
        recBullets = append(recBullets, "[Low] Good planning")
    }

    return domain.SlideContent{
        HealthSummary:   domain.SlideSection{Title: "Sprint Health Metrics", Bullets: healthBullets},
        Accomplishments: domain.SlideSection{Title: "What We Delivered", Bullets: accBullets},
        Blockers:        domain.SlideSection{Title: "What's Blocking Us", Bullets: blockerBullets},
        Recommendations: domain.SlideSection{Title: "Next Sprint Focus", Bullets: recBullets},
    }
}
