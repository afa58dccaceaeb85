package excel

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// numberFormat is the thousands-separated format used for monetary columns.
var numberFormat = "#,##0"

// Workbook wraps one styled sheet. Style IDs are cached per fill color so a
// report with many groups reuses a handful of styles.
type Workbook struct {
	file  *excelize.File
	sheet string
	theme Theme

	titleStyle        int
	headerStyle       int
	totalsStyle       int
	totalsNumberStyle int

	dataStyles   map[string]int // fill color -> bordered data style
	numberStyles map[string]int // fill color -> bordered #,##0 style
	boldStyles   map[string]int // fill color -> bordered bold style
}

// New creates a workbook with a single named sheet. rtl flips the sheet view
// for Hebrew-reading audiences.
func New(sheetTitle string, theme Theme, rtl bool) (*Workbook, error) {
	file := excelize.NewFile()
	if err := file.SetSheetName("Sheet1", sheetTitle); err != nil {
		return nil, errors.Wrap(err, "excel: naming sheet")
	}
	if err := file.SetSheetView(sheetTitle, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return nil, errors.Wrap(err, "excel: setting sheet view")
	}

	w := &Workbook{
		file:         file,
		sheet:        sheetTitle,
		theme:        theme,
		dataStyles:   make(map[string]int),
		numberStyles: make(map[string]int),
		boldStyles:   make(map[string]int),
	}

	if err := w.buildBaseStyles(); err != nil {
		return nil, err
	}

	return w, nil
}

// File exposes the underlying excelize file for report-specific layout that
// the shared helpers do not cover (summary boxes, custom merges).
func (w *Workbook) File() *excelize.File {
	return w.file
}

func (w *Workbook) Sheet() string {
	return w.sheet
}

func thinBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	border := make([]excelize.Border, 0, len(sides))
	for _, side := range sides {
		border = append(border, excelize.Border{Type: side, Style: 1, Color: "000000"})
	}
	return border
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

func (w *Workbook) buildBaseStyles() error {
	var err error

	w.titleStyle, err = w.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: w.theme.FontName, Size: w.theme.TitleSize, Bold: true, Color: w.theme.TitleColor},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return errors.Wrap(err, "excel: building title style")
	}

	w.headerStyle, err = w.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: w.theme.FontName, Size: w.theme.HeaderSize, Bold: true, Color: w.theme.HeaderFontColor},
		Fill:      solidFill(w.theme.HeaderFill),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	})
	if err != nil {
		return errors.Wrap(err, "excel: building header style")
	}

	w.totalsStyle, err = w.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: w.theme.FontName, Size: w.theme.HeaderSize, Bold: true},
		Fill:      solidFill(w.theme.TotalsFill),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return errors.Wrap(err, "excel: building totals style")
	}

	w.totalsNumberStyle, err = w.file.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Family: w.theme.FontName, Size: w.theme.HeaderSize, Bold: true},
		Fill:         solidFill(w.theme.TotalsFill),
		Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:       thinBorder(),
		CustomNumFmt: &numberFormat,
	})
	if err != nil {
		return errors.Wrap(err, "excel: building totals number style")
	}

	return nil
}

func (w *Workbook) dataStyle(fill string) (int, error) {
	if id, ok := w.dataStyles[fill]; ok {
		return id, nil
	}

	style := &excelize.Style{
		Font:      &excelize.Font{Family: w.theme.FontName, Size: w.theme.DataSize},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	}
	if fill != "" {
		style.Fill = solidFill(fill)
	}

	id, err := w.file.NewStyle(style)
	if err != nil {
		return 0, errors.Wrap(err, "excel: building data style")
	}
	w.dataStyles[fill] = id
	return id, nil
}

func (w *Workbook) numberStyle(fill string) (int, error) {
	if id, ok := w.numberStyles[fill]; ok {
		return id, nil
	}

	style := &excelize.Style{
		Font:         &excelize.Font{Family: w.theme.FontName, Size: w.theme.DataSize},
		Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:       thinBorder(),
		CustomNumFmt: &numberFormat,
	}
	if fill != "" {
		style.Fill = solidFill(fill)
	}

	id, err := w.file.NewStyle(style)
	if err != nil {
		return 0, errors.Wrap(err, "excel: building number style")
	}
	w.numberStyles[fill] = id
	return id, nil
}

func (w *Workbook) boldStyle(fill string) (int, error) {
	if id, ok := w.boldStyles[fill]; ok {
		return id, nil
	}

	style := &excelize.Style{
		Font:      &excelize.Font{Family: w.theme.FontName, Size: w.theme.DataSize + 1, Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	}
	if fill != "" {
		style.Fill = solidFill(fill)
	}

	id, err := w.file.NewStyle(style)
	if err != nil {
		return 0, errors.Wrap(err, "excel: building bold style")
	}
	w.boldStyles[fill] = id
	return id, nil
}

// SetColumnWidths assigns widths to columns A, B, C... in order.
func (w *Workbook) SetColumnWidths(widths []float64) error {
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return errors.Wrap(err, "excel: resolving column name")
		}
		if err := w.file.SetColWidth(w.sheet, col, col, width); err != nil {
			return errors.Wrap(err, "excel: setting column width")
		}
	}
	return nil
}

// WriteTitle writes a merged, styled title row spanning the given number of
// columns.
func (w *Workbook) WriteTitle(row, span int, text string) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(span, row)
	if err != nil {
		return err
	}

	if err := w.file.MergeCell(w.sheet, start, end); err != nil {
		return errors.Wrap(err, "excel: merging title row")
	}
	if err := w.file.SetCellValue(w.sheet, start, text); err != nil {
		return errors.Wrap(err, "excel: writing title")
	}
	if err := w.file.SetCellStyle(w.sheet, start, end, w.titleStyle); err != nil {
		return errors.Wrap(err, "excel: styling title")
	}
	return w.file.SetRowHeight(w.sheet, row, 30)
}

// WriteHeader writes the styled header row.
func (w *Workbook) WriteHeader(row int, headers []string) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.sheet, cell, header); err != nil {
			return errors.Wrap(err, "excel: writing header")
		}
		if err := w.file.SetCellStyle(w.sheet, cell, cell, w.headerStyle); err != nil {
			return errors.Wrap(err, "excel: styling header")
		}
	}
	return w.file.SetRowHeight(w.sheet, row, 25)
}

// Cell flags for WriteRow.
const (
	CellText = iota
	CellNumber
	CellBold
)

// Cell is one value of a data row with its formatting flavor.
type Cell struct {
	Value any
	Kind  int
}

func Text(v any) Cell   { return Cell{Value: v, Kind: CellText} }
func Number(v any) Cell { return Cell{Value: v, Kind: CellNumber} }
func Bold(v any) Cell   { return Cell{Value: v, Kind: CellBold} }

// WriteCell writes a single cell with the given background fill ("" for
// none), using the same cached styles as WriteRow.
func (w *Workbook) WriteCell(row, col int, c Cell, fill string) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	var styleID int
	switch c.Kind {
	case CellNumber:
		styleID, err = w.numberStyle(fill)
	case CellBold:
		styleID, err = w.boldStyle(fill)
	default:
		styleID, err = w.dataStyle(fill)
	}
	if err != nil {
		return err
	}

	if err := w.file.SetCellValue(w.sheet, name, c.Value); err != nil {
		return errors.Wrap(err, "excel: writing cell")
	}
	if err := w.file.SetCellStyle(w.sheet, name, name, styleID); err != nil {
		return errors.Wrap(err, "excel: styling cell")
	}
	return nil
}

// WriteRow writes one data row with the given background fill ("" for none).
func (w *Workbook) WriteRow(row int, fill string, cells []Cell) error {
	for i, c := range cells {
		if err := w.WriteCell(row, i+1, c, fill); err != nil {
			return err
		}
	}
	return nil
}

// WriteTotalsRow writes a bold, distinctly filled totals row.
func (w *Workbook) WriteTotalsRow(row int, cells []Cell) error {
	for i, c := range cells {
		name, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.sheet, name, c.Value); err != nil {
			return errors.Wrap(err, "excel: writing totals cell")
		}
		styleID := w.totalsStyle
		if c.Kind == CellNumber {
			styleID = w.totalsNumberStyle
		}
		if err := w.file.SetCellStyle(w.sheet, name, name, styleID); err != nil {
			return errors.Wrap(err, "excel: styling totals cell")
		}
	}
	return w.file.SetRowHeight(w.sheet, row, 25)
}

// MergeWrite merges a cell range, writes a value into it and applies a style
// built from the options. Used for subtotal bands and dashboard boxes.
func (w *Workbook) MergeWrite(startCol, endCol, row int, value any, style *excelize.Style) error {
	start, err := excelize.CoordinatesToCellName(startCol, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(endCol, row)
	if err != nil {
		return err
	}

	if startCol != endCol {
		if err := w.file.MergeCell(w.sheet, start, end); err != nil {
			return errors.Wrap(err, "excel: merging cells")
		}
	}
	if err := w.file.SetCellValue(w.sheet, start, value); err != nil {
		return errors.Wrap(err, "excel: writing merged cell")
	}
	if style != nil {
		styleID, err := w.file.NewStyle(style)
		if err != nil {
			return errors.Wrap(err, "excel: building merged cell style")
		}
		if err := w.file.SetCellStyle(w.sheet, start, end, styleID); err != nil {
			return errors.Wrap(err, "excel: styling merged cell")
		}
	}
	return nil
}

// Style builds an excelize style from theme-level inputs for MergeWrite use.
func (w *Workbook) Style(size float64, bold bool, fontColor, fill string) *excelize.Style {
	style := &excelize.Style{
		Font:      &excelize.Font{Family: w.theme.FontName, Size: size, Bold: bold, Color: fontColor},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}
	if fill != "" {
		style.Fill = solidFill(fill)
	}
	return style
}

// Bytes serializes the workbook.
func (w *Workbook) Bytes() ([]byte, error) {
	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "excel: serializing workbook")
	}
	return buf.Bytes(), nil
}

// Close releases the underlying file resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}
