package containers

import (
	"strings"
	"time"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/priority"
	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

// Port-dwell bands. A container's band is its grouping key, so the report
// partitions by severity.
const (
	BandStuck    = "🔴🔴 קריטי!"
	BandCritical = "🔴 קריטי"
	BandWarning  = "🟠 אזהרה"
	BandOK       = "🟢 תקין"
)

func band(days int) string {
	switch {
	case days > 100:
		return BandStuck
	case days > 30:
		return BandCritical
	case days > 14:
		return BandWarning
	default:
		return BandOK
	}
}

// daysInPort counts full days since the ETA, floored at zero. A missing or
// unparsable ETA counts as zero days rather than an error.
func daysInPort(eta string, now time.Time) int {
	parsed := utils.ParseISODate(eta)
	if parsed.IsZero() {
		return 0
	}
	days := int(now.Sub(parsed).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// containerRef prefers the container number and falls back to the import
// file number, which older orders carry instead.
func containerRef(order priority.ContainerOrder) string {
	if ref := strings.TrimSpace(order.Container); ref != "" {
		return ref
	}
	return strings.TrimSpace(order.ImportFile)
}

func normalizeOrder(order priority.ContainerOrder, now time.Time) domain.Row {
	days := daysInPort(order.ETA, now)

	return domain.Row{
		ID:       order.OrderName,
		GroupKey: band(days),
		Label:    containerRef(order),
		Date:     utils.ParseISODate(order.ETA),
		Amount:   order.Price,
		Quantity: float64(days),
		Fields: map[string]string{
			"supplier": order.SupplierDesc,
		},
	}
}

func normalizeOrders(orders []priority.ContainerOrder, now time.Time) []domain.Row {
	rows := make([]domain.Row, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, normalizeOrder(order, now))
	}
	return rows
}
