/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package llm

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "strings"

    "github.com/rs/zerolog"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/config"
)

type anthropicProvider struct {
    key   string
    model string
    http  *http.Client
    log   zerolog.Logger
}

func newAnthropic(cfg config.Config, log zerolog.Logger) *anthropicProvider {
    model := cfg.LLMModel
    if strings.TrimSpace(model) == "" { model = "claude-3-5-sonnet-20241022" }
    return &anthropicProvider{key: cfg.LLMAPIKey, model: model, http: &http.Client{Timeout: cfg.LLMTimeout}, log: log}
}

func (c *anthropicProvider) Name() string { return "anthropic" }

func (c *anthropicProvider) Complete(ctx context.Context, system, user string) (string, error) {
    if strings.TrimSpace(c.key) == "" { return "", errors.New("anthropic: missing key") }
    body := map[string]any{
        "model":      c.model,
        "max_tokens": 2048,
        "system":     system,
        "messages": []map[string]string{
            {"role": "user", "content": user},
        },
    }
    b, _ := json.Marshal(body)
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.anthropic.com/v1/messages", bytes.NewReader(b))
    if err != nil { return "", err }
    req.Header.Set("x-api-key", c.key)
    req.Header.Set("anthropic-version", "2023-06-01")
    req.Header.Set("Content-Type", "application/json")
    resp, err := c.http.Do(req)
    if err != nil { return "", err }
    defer resp.Body.Close()
    if resp.StatusCode >= 300 { return "", fmt.Errorf("anthropic status=%d", resp.StatusCode) }
    var out struct {
        Content []struct {
            Text string `json:"text"`
        } `json:"content"`
    }
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil { return "", err }
    if len(out.Content) == 0 { return "", errors.New("anthropic: empty content") }
    return out.Content[0].Text, nil
}
