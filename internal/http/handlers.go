/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
    "context"
    "net/http"

    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/config"
)

type Service interface {
    RunReports(ctx context.Context) (int, error)
}

type LastRunSource interface {
    GetLastRun(ctx context.Context) (any, error)
}

type Handlers struct {
    cfg     config.Config
    log     zerolog.Logger
    svc     Service
    lastRun LastRunSource
}

func NewHandlers(cfg config.Config, log zerolog.Logger, svc Service, lastRun LastRunSource) *Handlers {
    return &Handlers{cfg: cfg, log: log, svc: svc, lastRun: lastRun}
}

func (h *Handlers) Healthz(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handlers) LastRun(c *gin.Context) {
    if h.lastRun == nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "run archive not configured"})
        return
    }
    lr, err := h.lastRun.GetLastRun(c.Request.Context())
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    if lr == nil {
        c.JSON(http.StatusNotFound, gin.H{"error": "no runs recorded"})
        return
    }
    c.JSON(http.StatusOK, lr)
}

func (h *Handlers) RunNow(c *gin.Context) {
    // detached from the request context so a closed connection cannot
    // cancel a run in flight
    go func() {
        if _, err := h.svc.RunReports(context.Background()); err != nil {
            h.log.Error().Err(err).Msg("on-demand report run failed")
        }
    }()
    c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}
