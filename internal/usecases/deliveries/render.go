package deliveries

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/excel"
	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
	"github.com/ohadbenami/gaya-daily-reports/internal/report"
	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

var sheetHeaders = []string{"#", "נהג", "לקוח", "עיר", "מק\"ט", "מוצר", "משטחים", "הזמנה"}

var columnWidths = []float64{5, 12, 25, 15, 12, 30, 10, 12}

func theme(driverColors map[string]string) excel.Theme {
	t := excel.DefaultTheme()
	t.TitleSize = 18
	t.TitleColor = "1D2D44"
	t.HeaderSize = 14
	t.HeaderFill = "1D2D44"
	t.GroupPalette = driverColors
	t.TotalsFill = "E0E0E0"
	return t
}

// renderWorkbook writes the deliveries sheet: one tinted band per driver with
// a subtotal row after each, and a grand-total line at the bottom.
func renderWorkbook(rep domain.Report, driverColors map[string]string) ([]byte, error) {
	t := theme(driverColors)
	wb, err := excel.New("הפצות", t, true)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	if err := wb.SetColumnWidths(columnWidths); err != nil {
		return nil, err
	}

	title := fmt.Sprintf("🚚 הפצות - %s", utils.FormatDisplayDate(rep.TargetDate))
	if err := wb.WriteTitle(1, len(sheetHeaders), title); err != nil {
		return nil, err
	}
	if err := wb.WriteHeader(3, sheetHeaders); err != nil {
		return nil, err
	}

	row := 4
	for _, group := range rep.Groups {
		fill := t.GroupColor(group.Key)

		for i, r := range group.Rows {
			cells := []excel.Cell{
				excel.Number(i + 1),
				excel.Text(group.Key),
				excel.Text(r.Field("customer")),
				excel.Text(r.Field("city")),
				excel.Text(r.Field("sku")),
				excel.Text(r.Description),
				excel.Number(r.Quantity),
				excel.Text(r.Field("order")),
			}
			if err := wb.WriteRow(row, fill, cells); err != nil {
				return nil, errors.Wrap(err, "writing delivery row")
			}
			row++
		}

		subtotal := fmt.Sprintf("סה\"כ %s: %d עצירות", group.Key, group.Count())
		if err := wb.MergeWrite(1, 6, row, subtotal, wb.Style(11, true, "", t.TotalsFill)); err != nil {
			return nil, err
		}
		if err := wb.MergeWrite(7, 7, row, group.QuantitySum(), wb.Style(11, true, "", t.TotalsFill)); err != nil {
			return nil, err
		}
		if err := wb.MergeWrite(8, 8, row, "", wb.Style(11, true, "", t.TotalsFill)); err != nil {
			return nil, err
		}
		row += 2
	}

	totals := rep.Totals()
	grand := fmt.Sprintf("סה\"כ כללי: %d עצירות | %d נהגים", totals.Rows, totals.Groups)
	row++
	if err := wb.MergeWrite(1, 6, row, grand, wb.Style(14, true, "1D2D44", "")); err != nil {
		return nil, err
	}
	if err := wb.MergeWrite(7, 7, row, totals.Quantity, wb.Style(14, true, "E63946", "")); err != nil {
		return nil, err
	}

	return wb.Bytes()
}

// digestFormat is the WhatsApp rendering of the deliveries report.
func digestFormat(rep domain.Report) report.DigestFormat {
	date := utils.FormatDisplayDate(rep.TargetDate)
	return report.DigestFormat{
		Headline:     fmt.Sprintf("🚚 הפצות היום - %s\n", date),
		EmptyMessage: "✅ אין הפצות מתוכננות להיום.",
		GroupLine: func(g domain.Group) string {
			return fmt.Sprintf("📍 %s (%d עצירות, %d משטחים):", g.Key, g.Count(), int(g.QuantitySum()))
		},
		ItemLine: func(r domain.Row) string {
			customer := r.Field("customer")
			if customer == "" {
				customer = "לקוח"
			}
			line := "  • " + customer
			if city := r.Field("city"); city != "" {
				line += " - " + city
			}
			return fmt.Sprintf("%s (%d מש')", line, int(r.Quantity))
		},
		MoreLine: func(remaining int) string {
			return fmt.Sprintf("  • ... ועוד %d עצירות", remaining)
		},
		TotalsLine: func(t domain.GrandTotals) string {
			return fmt.Sprintf("סה\"כ: %d עצירות | %d משטחים | %d נהגים", t.Rows, int(t.Quantity), t.Groups)
		},
		Separator: "━━━━━━━━━━━━━━━━━━━━━━━━",
	}
}

func filename(rep domain.Report) string {
	return fmt.Sprintf("הפצות_%s.xlsx", rep.TargetDate.Format("02_01_2006"))
}
