package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-expense-tracker/internal/localstore"
	"trip-expense-tracker/models"
)

func expenseOf(amount float64) models.Expense {
	return models.Expense{
		Amount:   amount,
		Category: models.CategoryFood,
		Date:     time.Now(),
	}
}

func TestSetResetsRemaining(t *testing.T) {
	tracker := NewTracker(localstore.NewMemoryStore())

	b, err := tracker.Set(1000)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, b.Total)
	assert.Equal(t, 1000.0, b.Remaining)
}

func TestRecomputeSubtractsExpenses(t *testing.T) {
	tracker := NewTracker(localstore.NewMemoryStore())
	_, err := tracker.Set(500)
	require.NoError(t, err)

	b, err := tracker.Recompute([]models.Expense{expenseOf(120.25), expenseOf(79.75)})
	require.NoError(t, err)
	assert.Equal(t, 500.0, b.Total)
	assert.Equal(t, 300.0, b.Remaining)
}

func TestRecomputeAvoidsFloatDrift(t *testing.T) {
	tracker := NewTracker(localstore.NewMemoryStore())
	_, err := tracker.Set(1)
	require.NoError(t, err)

	// 10 x 0.1 is not 1.0 in binary floats; decimal math keeps it exact.
	expenses := make([]models.Expense, 10)
	for i := range expenses {
		expenses[i] = expenseOf(0.1)
	}

	b, err := tracker.Recompute(expenses)
	require.NoError(t, err)
	assert.Equal(t, 0.0, b.Remaining)
}

func TestRecomputeWithoutBudgetIsZero(t *testing.T) {
	tracker := NewTracker(localstore.NewMemoryStore())

	b, err := tracker.Recompute([]models.Expense{expenseOf(10)})
	require.NoError(t, err)
	assert.Zero(t, b.Total)
	assert.Zero(t, b.Remaining)
}

func TestBudgetPersistsAcrossTrackers(t *testing.T) {
	store := localstore.NewMemoryStore()

	_, err := NewTracker(store).Set(250)
	require.NoError(t, err)

	b, ok, err := NewTracker(store).Get()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 250.0, b.Total)
}

func TestRecomputeCanGoNegative(t *testing.T) {
	tracker := NewTracker(localstore.NewMemoryStore())
	_, err := tracker.Set(50)
	require.NoError(t, err)

	b, err := tracker.Recompute([]models.Expense{expenseOf(80)})
	require.NoError(t, err)
	assert.Equal(t, -30.0, b.Remaining)
}
