/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "context"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/adapters/jira"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/adapters/llm"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/adapters/telegram"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/config"
    httpserver "github.com/derekschatz/Sprint-Summary-Agent/internal/http"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/jobs"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/logger"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/report"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/repo"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/services"
)

func main() {
    cfg := config.Load()
    log := logger.New(cfg)
    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()

    // Archive is optional: without DB_DSN the service runs stateless.
    var repository *repo.Repository
    if cfg.DBDSN != "" {
        db := repo.MustOpen(ctx, cfg, log)
        defer db.Close()
        repository = repo.NewRepository(db, log)
        if err := repository.EnsureSchema(ctx); err != nil {
            log.Fatal().Err(err).Msg("schema setup failed")
        }
    }

    jc := jira.NewClient(cfg, log)
    provider, err := llm.New(cfg, log)
    if err != nil { log.Fatal().Err(err).Msg("llm setup failed") }
    if provider == nil {
        log.Info().Msg("no llm provider configured, using rule-based output")
    }

    collector := services.NewCollector(jc, log)
    recommender := services.NewRecommender(provider, log)
    slides := services.NewSlideWriter(provider, log)
    writer := report.NewWriter(cfg.OutputDir, log)

    var archive services.Archive
    if repository != nil { archive = repository }
    var notifier services.Notifier
    if tg := telegram.NewClient(cfg, log); tg.Enabled() { notifier = tg }

    svc := services.NewService(cfg, collector, recommender, slides, writer, archive, notifier, log)

    if cfg.RunOnce {
        n, err := svc.RunReports(ctx)
        if err != nil { log.Fatal().Err(err).Msg("report run failed") }
        log.Info().Int("reports", n).Msg("report run complete")
        return
    }

    var lastRun httpserver.LastRunSource
    if repository != nil { lastRun = lastRunAdapter{repository} }
    router := httpserver.NewRouter(cfg, log, svc, lastRun)

    cr := jobs.NewCron(cfg, log, svc, repository)
    cr.Start()
    defer cr.Stop()

    errCh := make(chan error, 1)
    go func() { errCh <- router.Run(cfg.HTTPAddr) }()

    sigCh := make(chan os.Signal, 1)
    signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

    select {
    case <-sigCh:
        log.Info().Msg("shutting down...")
    case err := <-errCh:
        if err != nil { log.Error().Err(err).Msg("http server error") }
    }

    time.Sleep(500 * time.Millisecond)
}

// lastRunAdapter widens the repository's typed result to the untyped
// shape the handlers expose.
type lastRunAdapter struct {
    repo *repo.Repository
}

func (a lastRunAdapter) GetLastRun(ctx context.Context) (any, error) {
    lr, err := a.repo.GetLastRun(ctx)
    if err != nil { return nil, err }
    if lr == nil { return nil, nil }
    return lr, nil
}
