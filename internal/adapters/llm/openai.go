/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package llm

import (
    "context"
    "errors"
    "strings"

    openai "github.com/openai/openai-go/v2"
    "github.com/openai/openai-go/v2/option"
    "github.com/openai/openai-go/v2/shared"
    "github.com/rs/zerolog"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/config"
)

type openAIProvider struct {
    key   string
    model string
    cli   openai.Client
    log   zerolog.Logger
}

func newOpenAI(cfg config.Config, log zerolog.Logger) *openAIProvider {
    model := cfg.LLMModel
    if strings.TrimSpace(model) == "" { model = "gpt-4o-mini" }
    cli := openai.NewClient(option.WithAPIKey(cfg.LLMAPIKey), option.WithRequestTimeout(cfg.LLMTimeout))
    return &openAIProvider{key: cfg.LLMAPIKey, model: model, cli: cli, log: log}
}

func (c *openAIProvider) Name() string { return "openai" }

func (c *openAIProvider) Complete(ctx context.Context, system, user string) (string, error) {
    if strings.TrimSpace(c.key) == "" { return "", errors.New("openai: missing key") }
    c.log.Debug().Str("model", c.model).Msg("openai completion call")
    params := openai.ChatCompletionNewParams{
        Model: shared.ChatModel(c.model),
        Messages: []openai.ChatCompletionMessageParamUnion{
            openai.SystemMessage(system),
            openai.UserMessage(user),
        },
    }
    resp, err := c.cli.Chat.Completions.New(ctx, params)
    if err != nil { return "", err }
    if len(resp.Choices) == 0 { return "", errors.New("openai: no choices") }
    return resp.Choices[0].Message.Content, nil
}
