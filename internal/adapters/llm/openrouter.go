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

type openRouterProvider struct {
    key   string
    model string
    http  *http.Client
    log   zerolog.Logger
}

func newOpenRouter(cfg config.Config, log zerolog.Logger) *openRouterProvider {
    model := cfg.LLMModel
    if strings.TrimSpace(model) == "" { model = "openai/gpt-4o-mini" }
    return &openRouterProvider{key: cfg.LLMAPIKey, model: model, http: &http.Client{Timeout: cfg.LLMTimeout}, log: log}
}

func (c *openRouterProvider) Name() string { return "openrouter" }

func (c *openRouterProvider) Complete(ctx context.Context, system, user string) (string, error) {
    if strings.TrimSpace(c.key) == "" { return "", errors.New("openrouter: missing key") }
    body := map[string]any{
        "model": c.model,
        "messages": []map[string]string{
            {"role": "system", "content": system},
            {"role": "user", "content": user},
        },
    }
    b, _ := json.Marshal(body)
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://openrouter.ai/api/v1/chat/completions", bytes.NewReader(b))
    if err != nil { return "", err }
    req.Header.Set("Authorization", "Bearer "+c.key)
    req.Header.Set("Content-Type", "application/json")
    resp, err := c.http.Do(req)
    if err != nil { return "", err }
    defer resp.Body.Close()
    if resp.StatusCode >= 300 { return "", fmt.Errorf("openrouter status=%d", resp.StatusCode) }
    var out struct {
        Choices []struct {
            Message struct {
                Content string `json:"content"`
            } `json:"message"`
        } `json:"choices"`
    }
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil { return "", err }
    if len(out.Choices) == 0 { return "", errors.New("openrouter: no choices") }
    return out.Choices[0].Message.Content, nil
}
