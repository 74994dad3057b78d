/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import (
    "context"
    "fmt"
    "strings"
    "time"

    "github.com/rs/zerolog"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/analysis"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/config"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/report"
)

// Archive is the optional Postgres history sink. A nil Archive disables
// persistence without changing the pipeline.
type Archive interface {
    StartRun(ctx context.Context, projects, teams string) (int64, error)
    FinishRun(ctx context.Context, id int64, reports int, success bool, errStr string) error
    SaveSprintMetrics(ctx context.Context, runID int64, data domain.SprintData, m domain.Metrics, overall domain.HealthStatus) error
}

// Notifier posts the executive digest after a run. Nil disables it.
type Notifier interface {
    Broadcast(ctx context.Context, text string)
}

type Service struct {
    cfg         config.Config
    collector   *Collector
    recommender *Recommender
    slides      *SlideWriter
    writer      *report.Writer
    archive     Archive
    notifier    Notifier
    log         zerolog.Logger
}

func NewService(cfg config.Config, collector *Collector, recommender *Recommender,
    slides *SlideWriter, writer *report.Writer, archive Archive, notifier Notifier,
    log zerolog.Logger) *Service {
    return &Service{
        cfg: cfg, collector: collector, recommender: recommender, slides: slides,
        writer: writer, archive: archive, notifier: notifier, log: log,
    }
}

// RunReports executes the whole pipeline: collect each team's last
// closed sprint, compute metrics and health, render and save the
// per-team reports, then the combined rollup and the deck. Returns the
// number of team reports written.
func (s *Service) RunReports(ctx context.Context) (int, error) {
    started := time.Now()

    var runID int64
    if s.archive != nil {
        id, err := s.archive.StartRun(ctx, strings.Join(s.cfg.JiraProjects, ","), strings.Join(s.cfg.TeamLabels, ","))
        if err != nil {
            s.log.Warn().Err(err).Msg("could not record run start")
        } else {
            runID = id
        }
    }

    batches := s.collector.CollectAll(ctx, s.cfg.JiraProjects, s.cfg.TeamLabels)
    if len(batches) == 0 {
        err := fmt.Errorf("no sprint data found for any project/team combination")
        s.finishRun(ctx, runID, 0, err)
        return 0, err
    }

    var summaries []domain.Summary
    var slides []domain.DeckSlide

    for _, data := range batches {
        m := analysis.CalculateMetrics(data.Issues, data.Sprint)
        health := analysis.AnalyzeHealth(m)
        accomplishments := analysis.ExtractAccomplishments(m)
        blockers := analysis.ExtractBlockers(m)
        recs := s.recommender.Generate(ctx, data, m, health, accomplishments, blockers)

        summary := report.BuildSummary(data, m, health, accomplishments, blockers, recs)
        if err := s.writer.SaveSummary(summary); err != nil {
            s.finishRun(ctx, runID, len(summaries), err)
            return len(summaries), err
        }
        summaries = append(summaries, summary)

        slides = append(slides, domain.DeckSlide{
            Team:    summary.TeamInfo.Label,
            Project: summary.ProjectInfo.Key,
            Sprint:  summary.SprintInfo.Name,
            Content: s.slides.Generate(ctx, data, m, health, accomplishments, blockers),
        })

        if s.archive != nil && runID != 0 {
            if err := s.archive.SaveSprintMetrics(ctx, runID, data, m, health.OverallHealth); err != nil {
                s.log.Warn().Err(err).Str("team", summary.TeamInfo.Label).Msg("could not archive sprint metrics")
            }
        }

        s.log.Info().
            Str("project", summary.ProjectInfo.Key).
            Str("team", summary.TeamInfo.Label).
            Str("health", string(health.OverallHealth)).
            Int("completed", m.CompletedIssues).
            Int("total", m.TotalIssues).
            Msg("team report generated")
    }

    if s.cfg.CombinedSummary && len(summaries) > 1 {
        if err := s.writer.SaveCombined(report.BuildCombined(summaries)); err != nil {
            s.finishRun(ctx, runID, len(summaries), err)
            return len(summaries), err
        }
    }

    deck := domain.Deck{
        Title:       "Sprint Summary",
        Slides:      slides,
        GeneratedAt: time.Now().UTC().Format(time.RFC3339),
    }
    if err := s.writer.SaveDeck(deck); err != nil {
        s.finishRun(ctx, runID, len(summaries), err)
        return len(summaries), err
    }

    if s.notifier != nil {
        s.notifier.Broadcast(ctx, digestText(summaries))
    }

    s.finishRun(ctx, runID, len(summaries), nil)
    s.log.Info().Int("reports", len(summaries)).Dur("took", time.Since(started)).Msg("report run finished")
    return len(summaries), nil
}

func (s *Service) finishRun(ctx context.Context, runID int64, reports int, runErr error) {
    if s.archive == nil || runID == 0 { return }
    errStr := ""
    if runErr != nil { errStr = runErr.Error() }
    if err := s.archive.FinishRun(ctx, runID, reports, runErr == nil, errStr); err != nil {
        s.log.Warn().Err(err).Msg("could not record run finish")
    }
}

// digestText renders the short per-team digest posted to chat.
func digestText(summaries []domain.Summary) string {
    var b strings.Builder
    b.WriteString("*Sprint Summary*\n")
    for _, s := range summaries {
        hm := s.SprintHealthMetrics
        fmt.Fprintf(&b, "%s `%s` (%s): %d/%d issues, %s complete, velocity %d\n",
            healthEmoji(s.SprintHealthAnalysis.OverallHealth), s.TeamInfo.Label, s.ProjectInfo.Key,
            hm.CompletedIssues, hm.TotalIssues, hm.CompletionRate, hm.Velocity)
    }
    return b.String()
}

func healthEmoji(h domain.HealthStatus) string {
    switch h {
    case domain.HealthGood:
        return "🟢"
    case domain.HealthFair:
        return "🟡"
    default:
        return "🔴"
    }
}
