package report

import (
	"strings"
	"unicode/utf8"

	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
)

const (
	// DigestMaxChars is the hard cap on a WhatsApp digest so it stays a
	// glanceable message rather than a scrollable wall of text.
	DigestMaxChars = 500

	// DigestItemsPerGroup limits how many rows a group contributes before
	// the remainder collapses to a "+K more" line.
	DigestItemsPerGroup = 5
)

// DigestFormat describes how a report is rendered to a short text digest.
// Line builders return the line without a trailing newline; empty strings
// are skipped.
type DigestFormat struct {
	Headline string
	// EmptyMessage replaces the whole body when the report has no rows.
	EmptyMessage string
	GroupLine    func(g domain.Group) string
	ItemLine     func(r domain.Row) string
	MoreLine     func(remaining int) string
	TotalsLine   func(t domain.GrandTotals) string
	Separator    string
	MaxChars     int
	ItemsPerGroup int
}

// BuildDigest renders a report to its text-message form. The output is
// capped at MaxChars runes; when truncation happens it cuts at a line
// boundary so the message never ends mid sentence.
func BuildDigest(rep domain.Report, format DigestFormat) string {
	maxChars := format.MaxChars
	if maxChars <= 0 {
		maxChars = DigestMaxChars
	}
	perGroup := format.ItemsPerGroup
	if perGroup <= 0 {
		perGroup = DigestItemsPerGroup
	}

	lines := make([]string, 0, 16)
	if format.Headline != "" {
		lines = append(lines, format.Headline)
	}

	if rep.Empty() {
		if format.EmptyMessage != "" {
			lines = append(lines, format.EmptyMessage)
		}
		return capLines(lines, maxChars)
	}

	for _, group := range rep.Groups {
		if format.GroupLine != nil {
			if line := format.GroupLine(group); line != "" {
				lines = append(lines, line)
			}
		}
		if format.ItemLine == nil {
			continue
		}
		shown := group.Rows
		if len(shown) > perGroup {
			shown = shown[:perGroup]
		}
		for _, row := range shown {
			if line := format.ItemLine(row); line != "" {
				lines = append(lines, line)
			}
		}
		if remaining := len(group.Rows) - len(shown); remaining > 0 && format.MoreLine != nil {
			if line := format.MoreLine(remaining); line != "" {
				lines = append(lines, line)
			}
		}
	}

	if format.TotalsLine != nil {
		if line := format.TotalsLine(rep.Totals()); line != "" {
			if format.Separator != "" {
				lines = append(lines, format.Separator)
			}
			lines = append(lines, line)
		}
	}

	return capLines(lines, maxChars)
}

// capLines joins lines with newlines, dropping whole trailing lines until
// the result fits within maxChars runes.
func capLines(lines []string, maxChars int) string {
	for len(lines) > 0 {
		joined := strings.Join(lines, "\n")
		if utf8.RuneCountInString(joined) <= maxChars {
			return joined
		}
		lines = lines[:len(lines)-1]
	}
	return ""
}
