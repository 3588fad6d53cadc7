package utils

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"

	"trip-expense-tracker/internal/database"
	"trip-expense-tracker/models"
)

// GenerateTestExpenses fills a development database with fake rows owned by
// the given identity, dated within the past thirty days.
func GenerateTestExpenses(pool *pgxpool.Pool, identity models.DeviceIdentity, numExpenses int) {
	for i := 0; i < numExpenses; i++ {
		expense := &models.Expense{
			Amount:      gofakeit.Price(1, 500),
			Category:    models.Categories[rand.Intn(len(models.Categories))],
			Description: gofakeit.Sentence(4),
			Date:        time.Now().AddDate(0, 0, -rand.Intn(30)),
			UserID:      identity.UserID,
			DeviceID:    identity.DeviceID,
		}
		if _, err := database.CreateExpense(context.Background(), pool, expense); err != nil {
			log.Fatalf("failed to insert fake expense: %v", err)
		}
	}
}
