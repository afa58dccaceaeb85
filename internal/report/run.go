package report

import "github.com/ohadbenami/gaya-daily-reports/internal/domain"

// Summary is what one report run hands back to its caller for the final log
// line and the reportd status endpoint. A run that delivered nothing because
// the fetch failed still produces a Summary; the process exit code stays 0.
type Summary struct {
	Fetch    domain.FetchResult
	Totals   domain.GrandTotals
	Outcomes []domain.SendOutcome
}

// Delivered reports how many targets received the message.
func (s Summary) Delivered() int {
	return SentCount(s.Outcomes)
}
