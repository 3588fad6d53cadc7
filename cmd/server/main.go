package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"trip-expense-tracker/internal/database"
	"trip-expense-tracker/internal/routes"
)

func main() {
	// .env is for local development; deployments set real env vars.
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

	router := routes.SetupRouter(database.NewStore(pool))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("expense API listening on :%s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
