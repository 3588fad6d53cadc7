package syncer

import (
	"sort"

	"trip-expense-tracker/models"
)

// Merge reconciles the device cache with the cloud list. Cloud entries are
// the base; a local entry with the same identifier replaces it when its date
// is the same or newer (last write wins, ties favor the local edit). The
// result is ordered by date descending; the sort is stable over first-seen
// order so merging a list with itself returns it unchanged.
func Merge(local, cloud []models.Expense) []models.Expense {
	merged := make(map[string]models.Expense, len(cloud)+len(local))
	order := make([]string, 0, len(cloud)+len(local))

	for _, expense := range cloud {
		if _, seen := merged[expense.ID]; !seen {
			order = append(order, expense.ID)
		}
		merged[expense.ID] = expense
	}

	for _, expense := range local {
		existing, seen := merged[expense.ID]
		if !seen {
			order = append(order, expense.ID)
			merged[expense.ID] = expense
			continue
		}
		if !expense.Date.Before(existing.Date) {
			merged[expense.ID] = expense
		}
	}

	result := make([]models.Expense, 0, len(order))
	for _, id := range order {
		result = append(result, merged[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result
}
