package deliveries

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/monday"
	"github.com/ohadbenami/gaya-daily-reports/internal/config"
	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

// UnassignedDriver labels rows whose driver column is empty or carries a
// status index missing from the lookup table.
const UnassignedDriver = "לא משויך"

// statusValue is the raw JSON a status column stores; only the index matters.
type statusValue struct {
	Index *int `json:"index"`
}

// resolveDriver maps the driver status column to a display label. Order of
// preference: configured label for the stored index, then the column's own
// rendered text, then the unassigned fallback. Never fails.
func resolveDriver(cv monday.ColumnValue, labels map[int]string) string {
	if cv.Value != "" && cv.Value != "{}" {
		var sv statusValue
		if err := json.Unmarshal([]byte(cv.Value), &sv); err == nil && sv.Index != nil {
			if label, ok := labels[*sv.Index]; ok {
				return label
			}
		}
	}
	if text := strings.TrimSpace(cv.Text); text != "" {
		return text
	}
	return UnassignedDriver
}

// matchesDate reports whether a date column's text falls on the target day.
// The board renders dates as YYYY-MM-DD, sometimes with a time suffix.
func matchesDate(raw string, target time.Time) bool {
	raw = strings.TrimSpace(raw)
	if len(raw) < 10 {
		return false
	}
	return raw[:10] == target.Format("2006-01-02")
}

// normalizeItem flattens one board item into a row. Quantity carries the
// pallet count, coerced to zero when the column is empty or non-numeric.
func normalizeItem(item monday.Item, columns config.DeliveryColumns, labels map[int]string) domain.Row {
	cells := item.Columns()

	return domain.Row{
		ID:          item.ID,
		GroupKey:    resolveDriver(cells[columns.Driver], labels),
		Label:       item.Name,
		Date:        utils.ParseISODate(cells[columns.Date].Text),
		Quantity:    utils.CoerceFloat(cells[columns.Pallets].Text),
		Description: cells[columns.Description].Text,
		Fields: map[string]string{
			"customer": cells[columns.Customer].Text,
			"city":     cells[columns.City].Text,
			"sku":      cells[columns.SKU].Text,
			"order":    cells[columns.Order].Text,
		},
	}
}

// normalizeItems keeps only the items scheduled for the target date.
func normalizeItems(items []monday.Item, columns config.DeliveryColumns, labels map[int]string, target time.Time) []domain.Row {
	rows := make([]domain.Row, 0, len(items))
	for _, item := range items {
		if !matchesDate(item.Columns()[columns.Date].Text, target) {
			continue
		}
		rows = append(rows, normalizeItem(item, columns, labels))
	}
	return rows
}
