package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InitializeSchema creates the expenses table when it is missing and brings
// pre-existing tables up to date.
func InitializeSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS expenses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			amount DECIMAL(10,2) NOT NULL,
			category VARCHAR(50) NOT NULL,
			description TEXT,
			date TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			receipt_photo TEXT,
			food_photo TEXT,
			user_id VARCHAR(255),
			device_id VARCHAR(255),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create expenses table: %w", err)
	}
	return MigrateOwnerColumns(ctx, pool)
}

// MigrateOwnerColumns adds user_id/device_id to tables created before device
// sync existed. It consults information_schema first so reruns are no-ops.
func MigrateOwnerColumns(ctx context.Context, pool *pgxpool.Pool) error {
	for _, column := range []string{"user_id", "device_id"} {
		exists, err := columnExists(ctx, pool, "expenses", column)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		alter := fmt.Sprintf(`ALTER TABLE expenses ADD COLUMN %s VARCHAR(255)`, column)
		if _, err := pool.Exec(ctx, alter); err != nil {
			return fmt.Errorf("failed to add column %s: %w", column, err)
		}
	}
	return nil
}

func columnExists(ctx context.Context, pool *pgxpool.Pool, table, column string) (bool, error) {
	var name string
	err := pool.QueryRow(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = $1 AND column_name = $2`, table, column).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to inspect %s.%s: %w", table, column, err)
	}
	return true, nil
}
