package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"trip-expense-tracker/internal/database"
	"trip-expense-tracker/models"
	"trip-expense-tracker/utils"
)

func main() {
	count := flag.Int("n", 25, "number of fake expenses to insert")
	userID := flag.String("user", "", "user id to tag rows with (optional)")
	deviceID := flag.String("device", "", "device id to tag rows with (optional)")
	flag.Parse()

	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := database.ConnectDB(ctx)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.InitializeSchema(ctx, pool); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	identity := models.DeviceIdentity{UserID: *userID, DeviceID: *deviceID}
	utils.GenerateTestExpenses(pool, identity, *count)
	log.Printf("inserted %d fake expenses", *count)
}
