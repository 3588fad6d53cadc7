package database

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// ConnectDB opens a pool against the configured Postgres instance. The
// connection string comes from DATABASE_URL, falling back to
// NETLIFY_DATABASE_URL for deployments that inject the Neon one.
func ConnectDB(ctx context.Context) (*pgxpool.Pool, error) {
	// .env is optional outside local development.
	_ = godotenv.Load()

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = os.Getenv("NETLIFY_DATABASE_URL")
	}
	if connStr == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return pool, nil
}
