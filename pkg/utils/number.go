package utils

import (
	"math"
	"strconv"
	"strings"
)

// CoerceFloat parses a numeric field defensively: missing or non-numeric
// values become 0, never an error.
func CoerceFloat(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}

// FormatThousands renders an integer amount with thousands separators, e.g.
// 1234567 -> "1,234,567". Used in digest lines; spreadsheet cells use the
// workbook number format instead.
func FormatThousands(f float64) string {
	n := int64(math.Round(f))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

// Truncate bounds free text to a display width, rune-safe.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
