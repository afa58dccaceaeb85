// Package excel renders styled xlsx workbooks for the reports. Styling is
// driven by a declarative Theme so each report configures colors and fonts
// instead of repeating cell-level styling code.
package excel

// Theme describes a report's visual styling. GroupPalette maps a group or
// status label to a background fill; labels without an entry fall back to
// DefaultGroupColor.
type Theme struct {
	FontName string

	TitleSize  float64
	TitleColor string

	HeaderSize      float64
	HeaderFill      string
	HeaderFontColor string

	DataSize float64

	GroupPalette      map[string]string
	DefaultGroupColor string

	TotalsFill string
	ZebraFill  string
}

// GroupColor resolves the fill for a group label.
func (t Theme) GroupColor(label string) string {
	if color, ok := t.GroupPalette[label]; ok {
		return color
	}
	return t.DefaultGroupColor
}

// DefaultTheme is the house style shared by the delivery reports.
func DefaultTheme() Theme {
	return Theme{
		FontName:          "Arial",
		TitleSize:         14,
		TitleColor:        "2F5496",
		HeaderSize:        11,
		HeaderFill:        "4472C4",
		HeaderFontColor:   "FFFFFF",
		DataSize:          10,
		DefaultGroupColor: "F5F5F5",
		TotalsFill:        "D6E4F0",
		ZebraFill:         "F2F7FC",
	}
}
