package routes

import (
	"github.com/gorilla/mux"

	"trip-expense-tracker/internal/handlers"
)

func SetupRouter(store handlers.ExpenseStore) *mux.Router {
	r := mux.NewRouter()
	r.Use(handlers.CORSMiddleware)

	expenses := handlers.ExpensesHandler(store)
	r.HandleFunc("/api/expenses", expenses)
	// Path the first web client was built against.
	r.HandleFunc("/.netlify/functions/expenses-neon", expenses)

	return r
}
