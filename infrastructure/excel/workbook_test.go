package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func reopen(t *testing.T, wb *Workbook) *excelize.File {
	t.Helper()

	data, err := wb.Bytes()
	require.NoError(t, err)
	require.NoError(t, wb.Close())

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })
	return file
}

func TestWorkbook_RoundTrip(t *testing.T) {
	wb, err := New("דוח בדיקה", DefaultTheme(), true)
	require.NoError(t, err)

	require.NoError(t, wb.SetColumnWidths([]float64{5, 20, 12}))
	require.NoError(t, wb.WriteTitle(1, 3, "כותרת הדוח"))
	require.NoError(t, wb.WriteHeader(3, []string{"#", "לקוח", "סכום"}))
	require.NoError(t, wb.WriteRow(4, "", []Cell{Text(1), Text("שופרסל"), Number(12500.0)}))
	require.NoError(t, wb.WriteRow(5, "F2F7FC", []Cell{Text(2), Text("רמי לוי"), Number(8000.0)}))
	require.NoError(t, wb.WriteTotalsRow(7, []Cell{Bold("סה\"כ"), Bold(""), Number(20500.0)}))

	file := reopen(t, wb)

	sheets := file.GetSheetList()
	require.Equal(t, []string{"דוח בדיקה"}, sheets)

	title, err := file.GetCellValue("דוח בדיקה", "A1")
	require.NoError(t, err)
	assert.Equal(t, "כותרת הדוח", title)

	header, err := file.GetCellValue("דוח בדיקה", "B3")
	require.NoError(t, err)
	assert.Equal(t, "לקוח", header)

	customer, err := file.GetCellValue("דוח בדיקה", "B5")
	require.NoError(t, err)
	assert.Equal(t, "רמי לוי", customer)

	merged, err := file.GetMergeCells("דוח בדיקה")
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "A1", merged[0].GetStartAxis())
	assert.Equal(t, "C1", merged[0].GetEndAxis())
}

func TestWorkbook_MergeWrite(t *testing.T) {
	wb, err := New("לוח", DefaultTheme(), true)
	require.NoError(t, err)

	require.NoError(t, wb.MergeWrite(2, 5, 2, "תיבת סיכום", wb.Style(18, true, "FFFFFF", "1D2D44")))
	require.NoError(t, wb.MergeWrite(7, 7, 2, "בודד", nil))

	file := reopen(t, wb)

	value, err := file.GetCellValue("לוח", "B2")
	require.NoError(t, err)
	assert.Equal(t, "תיבת סיכום", value)

	single, err := file.GetCellValue("לוח", "G2")
	require.NoError(t, err)
	assert.Equal(t, "בודד", single)

	// Only the box range is merged, the single-cell write is not.
	merged, err := file.GetMergeCells("לוח")
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "B2", merged[0].GetStartAxis())
	assert.Equal(t, "E2", merged[0].GetEndAxis())
}

func TestWorkbook_TotalsRowNumberFormat(t *testing.T) {
	wb, err := New("סיכום", DefaultTheme(), true)
	require.NoError(t, err)

	require.NoError(t, wb.WriteTotalsRow(1, []Cell{Bold("סה\"כ"), Number(20500.0), Text("2 תעודות")}))

	file := reopen(t, wb)

	// The amount cell keeps the thousands format in the totals row; the
	// formatted value is what GetCellValue returns.
	amount, err := file.GetCellValue("סיכום", "B1")
	require.NoError(t, err)
	assert.Equal(t, "20,500", amount)

	label, err := file.GetCellValue("סיכום", "A1")
	require.NoError(t, err)
	assert.Equal(t, "סה\"כ", label)
}

func TestTheme_GroupColor(t *testing.T) {
	theme := DefaultTheme()
	theme.GroupPalette = map[string]string{"אבי": "FFE0B2"}

	assert.Equal(t, "FFE0B2", theme.GroupColor("אבי"))
	assert.Equal(t, theme.DefaultGroupColor, theme.GroupColor("נהג אחר"))
}
