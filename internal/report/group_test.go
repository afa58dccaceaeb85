package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ohadbenami/gaya-daily-reports/internal/domain"
)

func TestGroupRows(t *testing.T) {
	rows := []domain.Row{
		{ID: "1", GroupKey: "שי", Quantity: 2},
		{ID: "2", GroupKey: "אורי", Quantity: 1},
		{ID: "3", GroupKey: "שי", Quantity: 3},
		{ID: "4", GroupKey: "לא משויך", Quantity: 1},
		{ID: "5", GroupKey: "אורי", Quantity: 4},
	}

	t.Run("every row lands in exactly one group", func(t *testing.T) {
		groups := GroupRows(rows, OrderFirstSeen)

		total := 0
		seen := map[string]bool{}
		for _, g := range groups {
			total += len(g.Rows)
			for _, r := range g.Rows {
				assert.False(t, seen[r.ID], "row %s appears twice", r.ID)
				seen[r.ID] = true
				assert.Equal(t, g.Key, r.GroupKey)
			}
		}
		assert.Equal(t, len(rows), total)
	})

	t.Run("first-seen ordering preserves source order", func(t *testing.T) {
		groups := GroupRows(rows, OrderFirstSeen)

		keys := make([]string, 0, len(groups))
		for _, g := range groups {
			keys = append(keys, g.Key)
		}
		assert.Equal(t, []string{"שי", "אורי", "לא משויך"}, keys)
	})

	t.Run("alphabetical ordering sorts by key", func(t *testing.T) {
		groups := GroupRows(rows, OrderAlphabetical)

		keys := make([]string, 0, len(groups))
		for _, g := range groups {
			keys = append(keys, g.Key)
		}
		assert.Equal(t, []string{"אורי", "לא משויך", "שי"}, keys)
	})

	t.Run("grouping is deterministic", func(t *testing.T) {
		first := GroupRows(rows, OrderAlphabetical)
		second := GroupRows(rows, OrderAlphabetical)
		assert.Equal(t, first, second)
	})

	t.Run("empty input produces no groups", func(t *testing.T) {
		assert.Empty(t, GroupRows(nil, OrderFirstSeen))
	})

	t.Run("empty key forms its own group", func(t *testing.T) {
		groups := GroupRows([]domain.Row{{ID: "1"}, {ID: "2", GroupKey: "a"}}, OrderFirstSeen)
		assert.Len(t, groups, 2)
		assert.Equal(t, "", groups[0].Key)
		assert.Len(t, groups[0].Rows, 1)
	})
}

func TestGroupAggregates(t *testing.T) {
	groups := GroupRows([]domain.Row{
		{ID: "1", GroupKey: "a", Quantity: 2, Amount: 100.5},
		{ID: "2", GroupKey: "a", Quantity: 3, Amount: 49.5},
		{ID: "3", GroupKey: "b", Quantity: 1, Amount: 10},
	}, OrderAlphabetical)

	assert.Equal(t, 2, groups[0].Count())
	assert.Equal(t, 5.0, groups[0].QuantitySum())
	assert.Equal(t, 150.0, groups[0].AmountSum())
	assert.Equal(t, 1, groups[1].Count())

	rep := domain.Report{Groups: groups}
	totals := rep.Totals()
	assert.Equal(t, 3, totals.Rows)
	assert.Equal(t, 2, totals.Groups)
	assert.Equal(t, 6.0, totals.Quantity)
	assert.Equal(t, 160.0, totals.Amount)
}

func TestSortRows(t *testing.T) {
	rows := []domain.Row{
		{ID: "1", Quantity: 2},
		{ID: "2", Quantity: 9},
		{ID: "3", Quantity: 5},
	}

	SortRows(rows, func(a, b domain.Row) bool { return a.Quantity > b.Quantity })

	assert.Equal(t, "2", rows[0].ID)
	assert.Equal(t, "3", rows[1].ID)
	assert.Equal(t, "1", rows[2].ID)
}
