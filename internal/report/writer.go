/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package report

import (
    "encoding/json"
    "fmt"
    "os"
    "path/filepath"
    "strings"

    "github.com/rs/zerolog"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

// Writer persists the report documents under the output directory.
type Writer struct {
    dir string
    log zerolog.Logger
}

func NewWriter(dir string, log zerolog.Logger) *Writer {
    return &Writer{dir: dir, log: log}
}

// Filename builds the per-team file name. Non-alphanumeric runes in the
// team label are flattened to underscores so the label is filesystem-safe.
func Filename(s domain.Summary, ext string) string {
    return fmt.Sprintf("sprint-summary-%s-%s.%s", s.ProjectInfo.Key, sanitize(s.TeamInfo.Label), ext)
}

func sanitize(label string) string {
    var b strings.Builder
    for _, r := range label {
        if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
            b.WriteRune(r)
        } else {
            b.WriteByte('_')
        }
    }
    return b.String()
}

func (w *Writer) write(name string, data []byte) (string, error) {
    if err := os.MkdirAll(w.dir, 0o755); err != nil { return "", err }
    path := filepath.Join(w.dir, name)
    if err := os.WriteFile(path, data, 0o644); err != nil { return "", err }
    w.log.Info().Str("path", path).Msg("report saved")
    return path, nil
}

func (w *Writer) writeJSON(name string, v any) (string, error) {
    data, err := json.MarshalIndent(v, "", "  ")
    if err != nil { return "", err }
    return w.write(name, append(data, '\n'))
}

// SaveSummary writes the JSON and Markdown renditions of one team's report.
func (w *Writer) SaveSummary(s domain.Summary) error {
    if _, err := w.writeJSON(Filename(s, "json"), s); err != nil { return err }
    _, err := w.write(Filename(s, "md"), []byte(RenderMarkdown(s)))
    return err
}

// SaveCombined writes the cross-team rollup.
func (w *Writer) SaveCombined(c *domain.CombinedSummary) error {
    if c == nil { return nil }
    if _, err := w.writeJSON("sprint-summary-combined.json", c); err != nil { return err }
    _, err := w.write("sprint-summary-combined.md", []byte(RenderCombinedMarkdown(*c)))
    return err
}

// SaveDeck writes the presentation deck content, one 2x2 slide per team.
func (w *Writer) SaveDeck(deck domain.Deck) error {
    if len(deck.Slides) == 0 { return nil }
    _, err := w.writeJSON("sprint-summary-deck.json", deck)
    return err
}
