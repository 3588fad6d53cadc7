package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-expense-tracker/internal/localstore"
	"trip-expense-tracker/models"
)

func TestInitializeDeviceIsStable(t *testing.T) {
	store := localstore.NewMemoryStore()
	manager := NewManager(store, []byte("secret"))

	first, err := manager.InitializeDevice()
	require.NoError(t, err)
	assert.NotEmpty(t, first.UserID)
	assert.NotEmpty(t, first.DeviceID)
	assert.NotEqual(t, first.UserID, first.DeviceID)

	second, err := manager.InitializeDevice()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A fresh manager over the same store sees the same identity.
	again, err := NewManager(store, []byte("secret")).InitializeDevice()
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestDistinctStoresGetDistinctIdentities(t *testing.T) {
	a, err := NewManager(localstore.NewMemoryStore(), []byte("secret")).InitializeDevice()
	require.NoError(t, err)
	b, err := NewManager(localstore.NewMemoryStore(), []byte("secret")).InitializeDevice()
	require.NoError(t, err)
	assert.NotEqual(t, a.UserID, b.UserID)
}

func TestSyncCodeLinksDevices(t *testing.T) {
	secret := []byte("shared")
	source := NewManager(localstore.NewMemoryStore(), secret)
	target := NewManager(localstore.NewMemoryStore(), secret)

	sourceID, err := source.InitializeDevice()
	require.NoError(t, err)
	targetID, err := target.InitializeDevice()
	require.NoError(t, err)

	code, err := source.GenerateSyncCode()
	require.NoError(t, err)
	require.NoError(t, target.LinkWithSyncCode(code))

	linked, err := target.InitializeDevice()
	require.NoError(t, err)
	assert.Equal(t, sourceID.UserID, linked.UserID, "linking adopts the peer's user id")
	assert.Equal(t, targetID.DeviceID, linked.DeviceID, "linking keeps the local device id")
}

func TestSyncCodeRejectsGarbage(t *testing.T) {
	manager := NewManager(localstore.NewMemoryStore(), []byte("secret"))
	assert.ErrorIs(t, manager.LinkWithSyncCode("not a code"), ErrInvalidSyncCode)
	assert.ErrorIs(t, manager.LinkWithSyncCode(""), ErrInvalidSyncCode)
}

func TestSyncCodeRejectsWrongSecret(t *testing.T) {
	source := NewManager(localstore.NewMemoryStore(), []byte("secret-a"))
	target := NewManager(localstore.NewMemoryStore(), []byte("secret-b"))

	code, err := source.GenerateSyncCode()
	require.NoError(t, err)
	assert.ErrorIs(t, target.LinkWithSyncCode(code), ErrInvalidSyncCode)
}

func TestSyncCodeExpires(t *testing.T) {
	secret := []byte("shared")
	source := NewManager(localstore.NewMemoryStore(), secret)
	target := NewManager(localstore.NewMemoryStore(), secret)

	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	source.now = func() time.Time { return issued }
	code, err := source.GenerateSyncCode()
	require.NoError(t, err)

	target.now = func() time.Time { return issued.Add(syncCodeTTL + time.Minute) }
	assert.ErrorIs(t, target.LinkWithSyncCode(code), ErrSyncCodeExpired)

	target.now = func() time.Time { return issued.Add(syncCodeTTL - time.Minute) }
	assert.NoError(t, target.LinkWithSyncCode(code))
}

func TestLocalExpenseCacheRoundTrip(t *testing.T) {
	manager := NewManager(localstore.NewMemoryStore(), []byte("secret"))

	empty, err := manager.LocalExpenses()
	require.NoError(t, err)
	assert.Empty(t, empty)

	expenses := []models.Expense{{
		ID:          "e1",
		Amount:      42.5,
		Category:    models.CategoryTransport,
		Description: "airport taxi",
		Date:        time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
	}}
	require.NoError(t, manager.SetLocalExpenses(expenses))

	cached, err := manager.LocalExpenses()
	require.NoError(t, err)
	assert.Equal(t, expenses, cached)
}

func TestLastSyncRoundTrip(t *testing.T) {
	manager := NewManager(localstore.NewMemoryStore(), []byte("secret"))

	_, ok, err := manager.LastSync()
	require.NoError(t, err)
	assert.False(t, ok)

	stamp := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	require.NoError(t, manager.SetLastSync(stamp))

	got, ok, err := manager.LastSync()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Equal(stamp))
}
