/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */

// Package llm abstracts the chat-completion providers used to draft
// sprint recommendations. When no provider is configured the callers
// fall back to rule-based output, so every constructor failure here is
// soft by design of the call sites.
package llm

import (
    "context"
    "fmt"
    "strings"

    "github.com/rs/zerolog"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/config"
)

// Provider is a single-turn chat completion.
type Provider interface {
    Complete(ctx context.Context, system, user string) (string, error)
    Name() string
}

// New builds the provider named by the config, or (nil, nil) when no
// provider is configured at all.
func New(cfg config.Config, log zerolog.Logger) (Provider, error) {
    switch cfg.LLMProvider {
    case "":
        return nil, nil
    case "openai":
        return newOpenAI(cfg, log), nil
    case "anthropic":
        return newAnthropic(cfg, log), nil
    case "openrouter":
        return newOpenRouter(cfg, log), nil
    default:
        return nil, fmt.Errorf("llm: unknown provider %q", cfg.LLMProvider)
    }
}

// StripFences removes a markdown code fence wrapper, which chat models
// routinely add around JSON even when told not to.
func StripFences(s string) string {
    s = strings.TrimSpace(s)
    if strings.HasPrefix(s, "```") {
        s = strings.TrimPrefix(s, "```json")
        s = strings.TrimPrefix(s, "```")
        if i := strings.LastIndex(s, "```"); i >= 0 {
            s = s[:i]
        }
    }
    return strings.TrimSpace(s)
}
