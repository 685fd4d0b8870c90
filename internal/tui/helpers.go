package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/solveigbr/holidaze/pkg/domain"
)

// formatDate renders a calendar date for list rows.
func formatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// formatRange renders a stay like "Feb 15 → Feb 20, 2026".
func formatRange(from, to time.Time) string {
	if from.Year() == to.Year() {
		return fmt.Sprintf("%s → %s", from.Format("Jan 2"), to.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s → %s", from.Format("Jan 2, 2006"), to.Format("Jan 2, 2006"))
}

// formatTime renders a relative timestamp.
func formatTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// formatPrice renders a nightly price like "$450 / night".
func formatPrice(price float64) string {
	if price == float64(int64(price)) {
		return fmt.Sprintf("$%d / night", int64(price))
	}
	return fmt.Sprintf("$%.2f / night", price)
}

// formatLocation renders "City, Country" with whichever parts exist.
func formatLocation(loc domain.Location) string {
	parts := []string{}
	if loc.City != "" {
		parts = append(parts, loc.City)
	}
	if loc.Country != "" {
		parts = append(parts, loc.Country)
	}
	return strings.Join(parts, ", ")
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// wrapText wraps words to the given width, for venue descriptions.
func wrapText(s string, width int) []string {
	if width < 10 {
		width = 10
	}
	words := strings.Fields(s)
	var lines []string
	var cur string
	for _, w := range words {
		if cur == "" {
			cur = w
			continue
		}
		if utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(w) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
