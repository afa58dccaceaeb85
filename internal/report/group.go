// Package report holds the pipeline pieces shared by every reporting job:
// grouping with explicit ordering, text digests and relay delivery.
package report

import (
	"sort"

	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
)

// Ordering selects how groups are ordered in the final report. The old
// scripts disagreed on this (some preserved first-seen order, some sorted
// alphabetically), so the rule is now an explicit per-report parameter.
type Ordering int

const (
	// OrderFirstSeen preserves the order in which group keys first appear
	// in the row sequence, which in turn preserves source ordering.
	OrderFirstSeen Ordering = iota
	// OrderAlphabetical sorts groups lexicographically by key.
	OrderAlphabetical
)

// GroupRows partitions rows by their group key. Every row lands in exactly
// one group; rows with an empty key form their own group under the empty key.
func GroupRows(rows []domain.Row, ordering Ordering) []domain.Group {
	index := make(map[string]int)
	groups := make([]domain.Group, 0)

	for _, row := range rows {
		at, seen := index[row.GroupKey]
		if !seen {
			index[row.GroupKey] = len(groups)
			groups = append(groups, domain.Group{Key: row.GroupKey})
			at = len(groups) - 1
		}
		groups[at].Rows = append(groups[at].Rows, row)
	}

	if ordering == OrderAlphabetical {
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].Key < groups[j].Key
		})
	}

	return groups
}

// SortRows orders rows in place with a report-specific comparator, applied
// before grouping when the source ordering is not the desired one.
func SortRows(rows []domain.Row, less func(a, b domain.Row) bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		return less(rows[i], rows[j])
	})
}
