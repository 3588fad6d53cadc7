// Package syncer reconciles the device's cached expense list with the cloud
// copy. Conflict resolution is date-based last-write-wins: two
// near-simultaneous edits on different devices can silently drop one side.
package syncer

import (
	"context"
	"log"
	"time"

	"trip-expense-tracker/internal/identity"
	"trip-expense-tracker/models"
)

// ExpenseAPI is the slice of the remote client the syncer needs.
type ExpenseAPI interface {
	FetchExpenses(ctx context.Context, userID string) ([]models.Expense, error)
}

type Syncer struct {
	api      ExpenseAPI
	identity *identity.Manager
	now      func() time.Time
}

func New(api ExpenseAPI, identity *identity.Manager) *Syncer {
	return &Syncer{api: api, identity: identity, now: time.Now}
}

// Sync fetches the cloud list for this user, merges it with the local cache,
// persists the result and stamps the last-sync time. A failed fetch is not
// fatal: the cached list is returned instead, matching the offline behavior
// of the web client.
func (s *Syncer) Sync(ctx context.Context) ([]models.Expense, error) {
	userID, err := s.identity.UserID()
	if err != nil {
		return nil, err
	}
	local, err := s.identity.LocalExpenses()
	if err != nil {
		return nil, err
	}

	cloud, err := s.api.FetchExpenses(ctx, userID)
	if err != nil {
		log.Printf("fetch failed, falling back to cached expenses: %v", err)
		return local, nil
	}

	merged := Merge(local, cloud)
	if err := s.identity.SetLocalExpenses(merged); err != nil {
		return nil, err
	}
	if err := s.identity.SetLastSync(s.now()); err != nil {
		return nil, err
	}
	return merged, nil
}
