package containers

import (
	"fmt"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/excel"
	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

var sheetHeaders = []string{"#", "הזמנה", "מכולה", "ETA", "FOB $", "ימים", "סטטוס"}

// Data sits in columns B..H; column A stays a narrow margin, dashboard style.
var columnWidths = []float64{3, 18, 18, 12, 15, 15, 12, 18}

var bandFills = map[string]string{
	BandStuck:    "C0392B",
	BandCritical: "FF6B6B",
	BandWarning:  "FFB347",
	BandOK:       "77DD77",
}

const (
	headerFill   = "4A90D9"
	boxFill      = "E3F2FD"
	alertFill    = "FFCDD2"
	criticalText = "C0392B"
	titleColor   = "1A5276"
)

func theme() excel.Theme {
	t := excel.DefaultTheme()
	t.TitleSize = 24
	t.TitleColor = titleColor
	t.HeaderSize = 12
	t.HeaderFill = headerFill
	t.DataSize = 11
	t.GroupPalette = bandFills
	return t
}

// renderWorkbook writes the containers dashboard: summary boxes, an alert
// band when anything is critical, then the per-container table sorted by
// days in port.
func renderWorkbook(rep domain.Report, criticalCount int) ([]byte, error) {
	wb, err := excel.New("דשבורד מכולות", theme(), true)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	if err := wb.SetColumnWidths(columnWidths); err != nil {
		return nil, err
	}

	totals := rep.Totals()

	if err := wb.MergeWrite(2, 8, 2, "🚢 דוח מכולות בכנ\"מ - Gaya Foods",
		wb.Style(24, true, titleColor, "")); err != nil {
		return nil, err
	}
	subtitle := fmt.Sprintf("📅 תאריך: %s | עדכון אוטומטי יומי", utils.FormatDisplayDate(rep.GeneratedAt))
	if err := wb.MergeWrite(2, 8, 3, subtitle, wb.Style(12, false, "7F8C8D", "")); err != nil {
		return nil, err
	}

	// Summary boxes: count, value, critical.
	boxes := []struct {
		startCol, endCol int
		value            string
		label            string
		valueColor       string
		fill             string
	}{
		{2, 3, fmt.Sprintf("%d", totals.Rows), "סה\"כ מכולות", "2C3E50", boxFill},
		{4, 5, fmt.Sprintf("$%.2fM", totals.Amount/1e6), "שווי כולל", "2C3E50", boxFill},
		{6, 7, fmt.Sprintf("%d 🔴", criticalCount), "קריטי (>30 יום)", criticalText, "FFEBEE"},
	}
	for _, box := range boxes {
		if err := wb.MergeWrite(box.startCol, box.endCol, 5, box.value,
			wb.Style(28, true, box.valueColor, box.fill)); err != nil {
			return nil, err
		}
		if err := wb.MergeWrite(box.startCol, box.endCol, 6, box.label,
			wb.Style(11, true, "", "")); err != nil {
			return nil, err
		}
	}

	if criticalCount > 0 {
		alert := fmt.Sprintf("⚠️ התראה: %d מכולות מעל 30 יום בנמל!", criticalCount)
		if err := wb.MergeWrite(2, 8, 8, alert, wb.Style(14, true, criticalText, alertFill)); err != nil {
			return nil, err
		}
	}

	headerRow := 10
	for i, header := range sheetHeaders {
		if err := wb.MergeWrite(i+2, i+2, headerRow, header,
			wb.Style(12, true, "FFFFFF", headerFill)); err != nil {
			return nil, err
		}
	}

	row := headerRow + 1
	index := 0
	for _, group := range rep.Groups {
		fill := bandFills[group.Key]
		for _, r := range group.Rows {
			index++
			cells := []excel.Cell{
				excel.Number(index),
				excel.Text(r.ID),
				excel.Text(r.Label),
				excel.Text(utils.FormatShortDate(r.Date)),
				excel.Text("$" + utils.FormatThousands(r.Amount)),
			}
			for i, c := range cells {
				if err := wb.WriteCell(row, i+2, c, ""); err != nil {
					return nil, err
				}
			}
			if err := wb.WriteCell(row, 7, excel.Number(int(r.Quantity)), fill); err != nil {
				return nil, err
			}
			if err := wb.WriteCell(row, 8, excel.Text(group.Key), fill); err != nil {
				return nil, err
			}
			row++
		}
	}

	if err := wb.MergeWrite(2, 4, row+1, "סה\"כ", wb.Style(12, true, "FFFFFF", headerFill)); err != nil {
		return nil, err
	}
	if err := wb.MergeWrite(6, 6, row+1, "$"+utils.FormatThousands(totals.Amount),
		wb.Style(12, true, "FFFFFF", headerFill)); err != nil {
		return nil, err
	}

	return wb.Bytes()
}

func digest(rep domain.Report) string {
	return fmt.Sprintf("📊 דוח מכולות בכנ\"מ - Gaya Foods\n📅 %s\n\n🤖 עדכון אוטומטי יומי",
		utils.FormatDisplayDate(rep.GeneratedAt))
}

func filename(rep domain.Report) string {
	return fmt.Sprintf("דוח_מכולות_כנמ_%s.xlsx", rep.GeneratedAt.Format("2006-01-02"))
}
