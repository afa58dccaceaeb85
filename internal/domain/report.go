package domain

import "time"

// Row is one normalized reporting record. Numeric fields default to zero so
// downstream sums are always well-defined; a Row never carries nulls.
type Row struct {
	ID          string
	GroupKey    string
	Label       string
	Date        time.Time
	Amount      float64
	Quantity    float64
	Description string

	// Fields holds report-specific display values (city, SKU, order number...)
	// consumed by the renderer. Absent keys render as empty cells.
	Fields map[string]string
}

// Field returns a display field or the empty string when absent.
func (r Row) Field(key string) string {
	if r.Fields == nil {
		return ""
	}
	return r.Fields[key]
}

// Group is a named partition of rows sharing a key. Subtotals are recomputed
// on every call, never cached across runs.
type Group struct {
	Key  string
	Rows []Row
}

func (g Group) Count() int {
	return len(g.Rows)
}

func (g Group) QuantitySum() float64 {
	var total float64
	for _, row := range g.Rows {
		total += row.Quantity
	}
	return total
}

func (g Group) AmountSum() float64 {
	var total float64
	for _, row := range g.Rows {
		total += row.Amount
	}
	return total
}

// GrandTotals aggregates a full report run.
type GrandTotals struct {
	Rows     int
	Groups   int
	Quantity float64
	Amount   float64
}

// Report is the full output unit of one run: ordered groups plus grand totals
// and a generation timestamp. Nothing is retained after the run ends.
type Report struct {
	Title       string
	TargetDate  time.Time
	GeneratedAt time.Time
	Groups      []Group
}

func (r Report) Totals() GrandTotals {
	totals := GrandTotals{Groups: len(r.Groups)}
	for _, group := range r.Groups {
		totals.Rows += group.Count()
		totals.Quantity += group.QuantitySum()
		totals.Amount += group.AmountSum()
	}
	return totals
}

func (r Report) Empty() bool {
	return len(r.Groups) == 0
}

// FetchStatus distinguishes "nothing to report" from "could not determine what
// to report", which the old scripts conflated.
type FetchStatus string

const (
	FetchOK     FetchStatus = "ok"
	FetchEmpty  FetchStatus = "empty"
	FetchFailed FetchStatus = "failed"
)

// FetchResult summarizes the fetch stage of a run.
type FetchResult struct {
	Status  FetchStatus
	Records int
	Reason  string
}

// DeliveryTarget is a fixed (name, phone) recipient pair from configuration.
type DeliveryTarget struct {
	Name  string
	Phone string
}

// SendOutcome records the delivery attempt for a single target. One failed
// target never aborts the remaining targets.
type SendOutcome struct {
	Target DeliveryTarget
	Sent   bool
	Err    error
}
