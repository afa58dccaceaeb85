package uninvoiced

import (
	"strconv"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/priority"
	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

// normalizeNote flattens one delivery note. Quantity carries the pallet
// count (one subform line per pallet); cartons arrive as the sum of line
// quantities and travel as a display field.
func normalizeNote(note priority.DeliveryNote) domain.Row {
	var cartons float64
	for _, line := range note.Lines {
		cartons += line.Quantity
	}

	return domain.Row{
		ID:       note.DocumentNumber,
		GroupKey: note.Status,
		Label:    note.CustomerName,
		Date:     utils.ParseISODate(note.Date),
		Amount:   note.Price,
		Quantity: float64(len(note.Lines)),
		Fields: map[string]string{
			"cartons": strconv.Itoa(int(cartons)),
		},
	}
}

func normalizeNotes(notes []priority.DeliveryNote) []domain.Row {
	rows := make([]domain.Row, 0, len(notes))
	for _, note := range notes {
		rows = append(rows, normalizeNote(note))
	}
	return rows
}
