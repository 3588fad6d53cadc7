// Package budget tracks the trip budget on the device. The server never
// stores it; remaining is recomputed from whatever expense list is loaded.
package budget

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"trip-expense-tracker/internal/localstore"
	"trip-expense-tracker/models"
)

const budgetKey = "budget"

type Tracker struct {
	store localstore.Store
}

func NewTracker(store localstore.Store) *Tracker {
	return &Tracker{store: store}
}

// Set replaces the total and resets remaining to it.
func (t *Tracker) Set(total float64) (models.Budget, error) {
	b := models.Budget{Total: total, Remaining: total}
	return b, t.save(b)
}

// Get returns the stored budget; ok is false when none was set yet.
func (t *Tracker) Get() (models.Budget, bool, error) {
	value, ok, err := t.store.Get(budgetKey)
	if err != nil || !ok || value == "" {
		return models.Budget{}, false, err
	}
	var b models.Budget
	if err := json.Unmarshal([]byte(value), &b); err != nil {
		return models.Budget{}, false, fmt.Errorf("corrupt budget record: %w", err)
	}
	return b, true, nil
}

// Recompute sets remaining to total minus the sum of the given expenses and
// persists the result. Decimal arithmetic keeps repeated recomputation from
// accumulating float error.
func (t *Tracker) Recompute(expenses []models.Expense) (models.Budget, error) {
	b, ok, err := t.Get()
	if err != nil {
		return models.Budget{}, err
	}
	if !ok {
		return models.Budget{}, nil
	}

	spent := decimal.Zero
	for _, expense := range expenses {
		spent = spent.Add(decimal.NewFromFloat(expense.Amount))
	}
	remaining := decimal.NewFromFloat(b.Total).Sub(spent)
	b.Remaining, _ = remaining.Float64()

	return b, t.save(b)
}

func (t *Tracker) save(b models.Budget) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return t.store.Set(budgetKey, string(data))
}
