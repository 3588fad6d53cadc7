// Package client wraps the four HTTP calls against the expense endpoint.
// There is deliberately no retry, backoff or idempotency key: a failed call
// is reported to the caller once and that is all.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"trip-expense-tracker/models"
)

const apiPath = "/api/expenses"

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// FetchExpenses returns the full cloud list, filtered to one user when
// userID is non-empty.
func (c *Client) FetchExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	endpoint := c.baseURL + apiPath
	if userID != "" {
		endpoint += "?userId=" + url.QueryEscape(userID)
	}

	var expenses []models.Expense
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &expenses); err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}
	return expenses, nil
}

// CreateExpense uploads a new record and returns it as stored, including the
// server-assigned identifier.
func (c *Client) CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	var created models.Expense
	if err := c.do(ctx, http.MethodPost, c.baseURL+apiPath, expense, &created); err != nil {
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}
	return &created, nil
}

// UpdateExpense replaces the record matching expense.ID in full.
func (c *Client) UpdateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	var updated models.Expense
	if err := c.do(ctx, http.MethodPut, c.baseURL+apiPath, expense, &updated); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return &updated, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	body := map[string]string{"id": id}
	if err := c.do(ctx, http.MethodDelete, c.baseURL+apiPath, body, nil); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(message)))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
