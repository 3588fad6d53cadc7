package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"trip-expense-tracker/models"
)

const expenseColumns = `id, amount, category, description, date, receipt_photo, food_photo, user_id, device_id`

// CreateExpense inserts one row and returns it as stored, including the
// server-assigned identifier. A zero date is replaced with the current time.
func CreateExpense(ctx context.Context, pool *pgxpool.Pool, expense *models.Expense) (*models.Expense, error) {
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}

	query := `
		INSERT INTO expenses (amount, category, description, date, receipt_photo, food_photo, user_id, device_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + expenseColumns

	row := pool.QueryRow(ctx, query,
		expense.Amount,
		expense.Category,
		expense.Description,
		expense.Date,
		nullable(expense.ReceiptPhotos.EncodeColumn()),
		nullable(expense.FoodPhotos.EncodeColumn()),
		nullable(expense.UserID),
		nullable(expense.DeviceID))

	created, err := scanExpense(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}
	return created, nil
}

// GetAllExpenses returns every row ordered by date descending, optionally
// restricted to one user. There is no pagination.
func GetAllExpenses(ctx context.Context, pool *pgxpool.Pool, userID string) ([]models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses ORDER BY date DESC`
	args := []any{}
	if userID != "" {
		query = `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1 ORDER BY date DESC`
		args = append(args, userID)
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	return expenses, rows.Err()
}

// UpdateExpense replaces every mutable column of the row matching the
// identifier. pgx.ErrNoRows comes back when the identifier is unknown.
func UpdateExpense(ctx context.Context, pool *pgxpool.Pool, expense *models.Expense) (*models.Expense, error) {
	query := `
		UPDATE expenses
		SET amount = $1,
		    category = $2,
		    description = $3,
		    date = $4,
		    receipt_photo = $5,
		    food_photo = $6,
		    user_id = $7,
		    device_id = $8,
		    updated_at = NOW()
		WHERE id = $9
		RETURNING ` + expenseColumns

	row := pool.QueryRow(ctx, query,
		expense.Amount,
		expense.Category,
		expense.Description,
		expense.Date,
		nullable(expense.ReceiptPhotos.EncodeColumn()),
		nullable(expense.FoodPhotos.EncodeColumn()),
		nullable(expense.UserID),
		nullable(expense.DeviceID),
		expense.ID)

	updated, err := scanExpense(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense %s: %w", expense.ID, err)
	}
	return updated, nil
}

// DeleteExpense removes the row matching the identifier. Deleting an unknown
// identifier is not an error.
func DeleteExpense(ctx context.Context, pool *pgxpool.Pool, id string) error {
	if _, err := pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", id, err)
	}
	return nil
}

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var (
		expense                    models.Expense
		description, receipt, food *string
		userID, deviceID           *string
	)
	err := row.Scan(
		&expense.ID,
		&expense.Amount,
		&expense.Category,
		&description,
		&expense.Date,
		&receipt,
		&food,
		&userID,
		&deviceID)
	if err != nil {
		return nil, err
	}

	expense.Description = deref(description)
	expense.UserID = deref(userID)
	expense.DeviceID = deref(deviceID)
	if expense.ReceiptPhotos, err = models.DecodePhotoColumn(deref(receipt)); err != nil {
		return nil, err
	}
	if expense.FoodPhotos, err = models.DecodePhotoColumn(deref(food)); err != nil {
		return nil, err
	}
	return &expense, nil
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
