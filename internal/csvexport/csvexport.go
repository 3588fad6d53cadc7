// Package csvexport renders the expense list in the export format the web
// client produced. The description column is always quoted, whether or not
// it needs to be, so rows are built by hand rather than with encoding/csv.
package csvexport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"trip-expense-tracker/models"
)

var ErrNoExpenses = errors.New("no expenses to export")

const header = "Date,Amount,Category,Description,Has Receipt,Has Food Photo"

// Render returns the CSV document for a non-empty expense list.
func Render(expenses []models.Expense) (string, error) {
	if len(expenses) == 0 {
		return "", ErrNoExpenses
	}

	lines := make([]string, 0, len(expenses)+1)
	lines = append(lines, header)
	for _, expense := range expenses {
		lines = append(lines, strings.Join([]string{
			expense.Date.Format("01/02/2006"),
			decimal.NewFromFloat(expense.Amount).StringFixed(2),
			expense.Category,
			`"` + strings.ReplaceAll(expense.Description, `"`, `""`) + `"`,
			yesNo(len(expense.ReceiptPhotos) > 0),
			yesNo(len(expense.FoodPhotos) > 0),
		}, ","))
	}
	return strings.Join(lines, "\n"), nil
}

// Filename returns the dated export name, e.g. trip-expenses-2024-01-01.csv.
func Filename(now time.Time) string {
	return fmt.Sprintf("trip-expenses-%s.csv", now.Format("2006-01-02"))
}

// WriteFile renders the list into dir and returns the written path. An empty
// list writes nothing and returns ErrNoExpenses.
func WriteFile(dir string, expenses []models.Expense, now time.Time) (string, error) {
	content, err := Render(expenses)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, Filename(now))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
