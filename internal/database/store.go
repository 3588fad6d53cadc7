package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"trip-expense-tracker/models"
)

// Store adapts the query functions to the handler-facing persistence port.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) ListExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	return GetAllExpenses(ctx, s.pool, userID)
}

func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	return CreateExpense(ctx, s.pool, expense)
}

func (s *Store) UpdateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	return UpdateExpense(ctx, s.pool, expense)
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	return DeleteExpense(ctx, s.pool, id)
}
