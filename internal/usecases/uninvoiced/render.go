package uninvoiced

import (
	"fmt"
	"strconv"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/excel"
	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

var sheetHeaders = []string{"#", "מס' תעודה", "לקוח", "תאריך", "סכום ₪", "קרטונים", "משטחים", "סטטוס"}

var columnWidths = []float64{5, 14, 30, 12, 14, 12, 12, 16}

func theme(statusColors map[string]string) excel.Theme {
	t := excel.DefaultTheme()
	t.GroupPalette = statusColors
	t.DefaultGroupColor = ""
	return t
}

// renderWorkbook writes the open delivery-notes sheet: a flat table in
// source order with zebra striping, the status cell tinted per status, and
// a totals row at the bottom.
func renderWorkbook(rep domain.Report, rows []domain.Row, statusColors map[string]string) ([]byte, error) {
	t := theme(statusColors)
	wb, err := excel.New("תעודות משלוח פתוחות", t, true)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	if err := wb.SetColumnWidths(columnWidths); err != nil {
		return nil, err
	}

	title := fmt.Sprintf("תעודות משלוח ללא חשבונית - %s", rep.GeneratedAt.Format("02.01.2006 15:04"))
	if err := wb.WriteTitle(1, len(sheetHeaders), title); err != nil {
		return nil, err
	}
	if err := wb.WriteHeader(3, sheetHeaders); err != nil {
		return nil, err
	}

	var totalCartons int
	for i, r := range rows {
		rowNum := i + 4
		fill := ""
		if (i+1)%2 == 0 {
			fill = t.ZebraFill
		}

		cartons, _ := strconv.Atoi(r.Field("cartons"))
		totalCartons += cartons

		cells := []excel.Cell{
			excel.Number(i + 1),
			excel.Text(r.ID),
			excel.Text(r.Label),
			excel.Text(utils.FormatDisplayDate(r.Date)),
			excel.Number(r.Amount),
			excel.Number(cartons),
			excel.Number(r.Quantity),
		}
		if err := wb.WriteRow(rowNum, fill, cells); err != nil {
			return nil, err
		}

		statusFill := t.GroupColor(r.GroupKey)
		if statusFill == "" {
			statusFill = fill
		}
		if err := wb.WriteCell(rowNum, 8, excel.Text(r.GroupKey), statusFill); err != nil {
			return nil, err
		}
	}

	totals := rep.Totals()
	if err := wb.WriteTotalsRow(len(rows)+4, []excel.Cell{
		excel.Bold(""),
		excel.Bold("סה\"כ"),
		excel.Bold(fmt.Sprintf("%d תעודות", totals.Rows)),
		excel.Bold(""),
		excel.Number(totals.Amount),
		excel.Bold(totalCartons),
		excel.Bold(totals.Quantity),
		excel.Bold(""),
	}); err != nil {
		return nil, err
	}

	return wb.Bytes()
}

// digest is the one-line WhatsApp caption sent with the workbook.
func digest(rep domain.Report) string {
	totals := rep.Totals()
	return fmt.Sprintf("תעודות משלוח פתוחות - %s\n%d תעודות | %d משטחים | %s ₪",
		utils.FormatDisplayDate(rep.GeneratedAt),
		totals.Rows,
		int(totals.Quantity),
		utils.FormatThousands(totals.Amount),
	)
}

func filename(rep domain.Report) string {
	return fmt.Sprintf("תעודות_משלוח_פתוחות_%s.xlsx", rep.GeneratedAt.Format("2006-01-02"))
}
