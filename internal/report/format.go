package report

import (
    "fmt"
    "math"
    "strconv"
)

// pct renders a percentage with a single decimal, matching the rate
// rounding done by the metrics pass.
func pct(v float64) string { return fmt.Sprintf("%.1f%%", v) }

// trimFloat drops the trailing ".0" from whole story-point totals.
func trimFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
