package exporter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// formatFloat formats a float64 value with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatPercent formats a ratio as a percentage, e.g. 0.1892 → "18.92".
func formatPercent(ratio float64) string {
	return formatFloat(ratio * 100)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatDate renders a filing date as YYYY-MM-DD, or "" for the null marker
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// round2 rounds to two decimals for numeric spreadsheet cells
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func joinLabels(labels []string) string {
	return strings.Join(labels, "; ")
}
