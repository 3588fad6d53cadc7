package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"trip-expense-tracker/models"
)

// ExpenseStore is the persistence port the expense endpoint talks to. The
// production implementation wraps a pgx pool; tests substitute an in-memory
// one.
type ExpenseStore interface {
	ListExpenses(ctx context.Context, userID string) ([]models.Expense, error)
	CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}

// CORSMiddleware answers preflight requests and opens the endpoint to any
// origin, matching the deployed function's headers.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ExpensesHandler serves the whole expense API from one path, multiplexed by
// HTTP method. Errors of any origin surface as a 500 carrying the message.
func ExpensesHandler(store ExpenseStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)

		case http.MethodGet:
			expenses, err := store.ListExpenses(r.Context(), r.URL.Query().Get("userId"))
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, expenses)

		case http.MethodPost:
			var expense models.Expense
			if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
				writeError(w, err)
				return
			}
			created, err := store.CreateExpense(r.Context(), &expense)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, created)

		case http.MethodPut:
			var expense models.Expense
			if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
				writeError(w, err)
				return
			}
			updated, err := store.UpdateExpense(r.Context(), &expense)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, updated)

		case http.MethodDelete:
			var body struct {
				ID string `json:"id"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeError(w, err)
				return
			}
			if err := store.DeleteExpense(r.Context(), body.ID); err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]bool{"success": true})

		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
