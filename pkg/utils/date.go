package utils

import "time"

// Israel returns the business timezone. Falls back to a fixed IST offset when
// the tzdata is unavailable in the runtime image.
func Israel() *time.Location {
	loc, err := time.LoadLocation("Asia/Jerusalem")
	if err != nil {
		return time.FixedZone("IST", 2*60*60)
	}
	return loc
}

// ParseDate parses a YYYY-MM-DD date argument.
func ParseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, dateStr, Israel())
}

// TargetDate resolves the report binaries' single optional argument: a
// YYYY-MM-DD date, defaulting to today in Israel time when absent.
func TargetDate(args []string) (time.Time, error) {
	if len(args) > 0 {
		return ParseDate(args[0])
	}
	return time.Now().In(Israel()), nil
}

// FormatDisplayDate renders a date the way the reports show it: dd.mm.yyyy.
func FormatDisplayDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatShortDate renders dd.mm.yy, used in tight spreadsheet columns.
func FormatShortDate(t time.Time) string {
	return t.Format("02.01.06")
}

// ParseISODate accepts the date shapes the source systems emit: bare
// YYYY-MM-DD, full RFC3339, and RFC3339 with a trailing Z. Returns the zero
// time when nothing matches; callers render that as an empty cell.
func ParseISODate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if len(raw) >= 10 {
		if t, err := time.ParseInLocation(time.DateOnly, raw[:10], Israel()); err == nil && len(raw) == 10 {
			return t
		}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.ParseInLocation(time.DateOnly, raw[:min(10, len(raw))], Israel()); err == nil {
		return t
	}
	return time.Time{}
}
