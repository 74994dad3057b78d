/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package config

import (
    "log"
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/joho/godotenv"
)

type Config struct {
    AppEnv   string
    TZ       string
    HTTPAddr string

    DBDSN string

    JiraHost     string
    JiraEmail    string
    JiraAPIToken string
    JiraPAT      string
    JiraProjects []string
    TeamLabels   []string

    OutputDir       string
    CombinedSummary bool

    LLMProvider string
    LLMAPIKey   string
    LLMModel    string
    LLMTimeout  time.Duration

    TelegramToken   string
    TelegramChatIDs []int64

    ReportCron  string
    RunOnce     bool
    HTTPTimeout time.Duration
}

func getenv(key, def string) string {
    v := os.Getenv(key)
    if v == "" { return def }
    return v
}

func dur(key string, def time.Duration) time.Duration {
    v := os.Getenv(key)
    if v == "" { return def }
    d, err := time.ParseDuration(v)
    if err != nil { return def }
    return d
}

func boolenv(key string, def bool) bool {
    v := os.Getenv(key)
    if v == "" { return def }
    b, err := strconv.ParseBool(v)
    if err != nil { return def }
    return b
}

func parseInt64s(csv string) []int64 {
    if csv == "" { return nil }
    parts := strings.Split(csv, ",")
    out := make([]int64, 0, len(parts))
    for _, p := range parts {
        p = strings.TrimSpace(p)
        if p == "" { continue }
        n, err := strconv.ParseInt(p, 10, 64)
        if err == nil { out = append(out, n) }
    }
    return out
}

func parseStrings(csv string) []string {
    if csv == "" { return nil }
    parts := strings.Split(csv, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        p = strings.TrimSpace(p)
        if p == "" { continue }
        out = append(out, p)
    }
    return out
}

// Load reads the environment into a Config. A .env file in the working
// directory is merged in first when present; real environment wins.
func Load() Config {
    _ = godotenv.Load()

    cfg := Config{
        AppEnv:   getenv("APP_ENV", "dev"),
        TZ:       getenv("APP_TZ", "UTC"),
        HTTPAddr: getenv("HTTP_ADDR", ":8080"),

        DBDSN: getenv("DB_DSN", ""),

        JiraHost:     strings.TrimSuffix(getenv("JIRA_HOST", ""), "/"),
        JiraEmail:    getenv("JIRA_EMAIL", ""),
        JiraAPIToken: getenv("JIRA_API_TOKEN", ""),
        JiraPAT:      getenv("JIRA_PAT", ""),
        JiraProjects: parseStrings(getenv("JIRA_PROJECT_KEYS", "")),
        TeamLabels:   parseStrings(getenv("TEAM_LABELS", "")),

        OutputDir:       getenv("OUTPUT_DIR", "output"),
        CombinedSummary: boolenv("GENERATE_COMBINED_SUMMARY", true),

        LLMProvider: strings.ToLower(getenv("LLM_PROVIDER", "")),
        LLMAPIKey:   getenv("LLM_API_KEY", ""),
        LLMModel:    getenv("LLM_MODEL", ""),
        LLMTimeout:  dur("LLM_TIMEOUT", 60*time.Second),

        TelegramToken:   getenv("TELEGRAM_BOT_TOKEN", ""),
        TelegramChatIDs: parseInt64s(getenv("TELEGRAM_CHAT_IDS", "")),

        ReportCron:  getenv("CRON_SPEC", "0 9 * * MON"),
        RunOnce:     boolenv("RUN_ONCE", false),
        HTTPTimeout: dur("HTTP_TIMEOUT", 30*time.Second),
    }

    // provider-specific key fallbacks so existing deployments keep working
    if cfg.LLMAPIKey == "" {
        switch cfg.LLMProvider {
        case "openai":
            cfg.LLMAPIKey = getenv("OPENAI_API_KEY", "")
        case "anthropic":
            cfg.LLMAPIKey = getenv("ANTHROPIC_API_KEY", "")
        case "openrouter":
            cfg.LLMAPIKey = getenv("OPENROUTER_API_KEY", "")
        }
    }

    if loc, err := time.LoadLocation(cfg.TZ); err == nil {
        time.Local = loc
    } else {
        log.Printf("warning: cannot load TZ %s: %v", cfg.TZ, err)
    }

    return cfg
}
