// Package identity manages the user/device identifier pair and everything
// else a device remembers between syncs: the cached expense list, the
// last-sync timestamp and sync codes for linking another device.
package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"trip-expense-tracker/internal/localstore"
	"trip-expense-tracker/models"
)

// Store keys, kept identical to the web client's localStorage keys so a
// migrated store keeps working.
const (
	userIDKey   = "expense_tracker_user_id"
	deviceIDKey = "expense_tracker_device_id"
	lastSyncKey = "expense_tracker_last_sync"
	expensesKey = "expenses"
)

// syncCodeTTL bounds how long a pasted sync code stays valid.
const syncCodeTTL = 24 * time.Hour

// syncCodeTagLen is the length of the truncated hex HMAC tag.
const syncCodeTagLen = 16

var (
	ErrInvalidSyncCode = errors.New("invalid sync code")
	ErrSyncCodeExpired = errors.New("sync code expired")
)

type Manager struct {
	store  localstore.Store
	secret []byte
	now    func() time.Time
}

// NewManager wires the manager to a persistence port. The secret signs sync
// codes; devices that should link must share it.
func NewManager(store localstore.Store, secret []byte) *Manager {
	return &Manager{store: store, secret: secret, now: time.Now}
}

// InitializeDevice returns the stored identity, generating and persisting
// either identifier the first time it is asked for.
func (m *Manager) InitializeDevice() (models.DeviceIdentity, error) {
	userID, err := m.getOrCreate(userIDKey)
	if err != nil {
		return models.DeviceIdentity{}, err
	}
	deviceID, err := m.getOrCreate(deviceIDKey)
	if err != nil {
		return models.DeviceIdentity{}, err
	}
	return models.DeviceIdentity{UserID: userID, DeviceID: deviceID}, nil
}

func (m *Manager) getOrCreate(key string) (string, error) {
	value, ok, err := m.store.Get(key)
	if err != nil {
		return "", err
	}
	if ok && value != "" {
		return value, nil
	}
	value = uuid.NewString()
	if err := m.store.Set(key, value); err != nil {
		return "", err
	}
	return value, nil
}

func (m *Manager) UserID() (string, error) {
	id, err := m.InitializeDevice()
	return id.UserID, err
}

func (m *Manager) DeviceID() (string, error) {
	id, err := m.InitializeDevice()
	return id.DeviceID, err
}

// LastSync reports when the device last reconciled with the cloud; ok is
// false before the first sync.
func (m *Manager) LastSync() (time.Time, bool, error) {
	value, ok, err := m.store.Get(lastSyncKey)
	if err != nil || !ok || value == "" {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("corrupt last-sync timestamp: %w", err)
	}
	return t, true, nil
}

func (m *Manager) SetLastSync(t time.Time) error {
	return m.store.Set(lastSyncKey, t.Format(time.RFC3339))
}

// LocalExpenses returns the cached list, empty when nothing was cached yet.
func (m *Manager) LocalExpenses() ([]models.Expense, error) {
	value, ok, err := m.store.Get(expensesKey)
	if err != nil || !ok || value == "" {
		return []models.Expense{}, err
	}
	var expenses []models.Expense
	if err := json.Unmarshal([]byte(value), &expenses); err != nil {
		return nil, fmt.Errorf("corrupt expense cache: %w", err)
	}
	return expenses, nil
}

func (m *Manager) SetLocalExpenses(expenses []models.Expense) error {
	data, err := json.Marshal(expenses)
	if err != nil {
		return err
	}
	return m.store.Set(expensesKey, string(data))
}

// GenerateSyncCode encodes this device's identity into a signed, expiring
// code another device can paste to read and write the same data.
func (m *Manager) GenerateSyncCode() (string, error) {
	id, err := m.InitializeDevice()
	if err != nil {
		return "", err
	}
	payload := fmt.Sprintf("%s|%s|%d", id.UserID, id.DeviceID, m.now().Unix())
	signed := payload + "|" + m.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(signed)), nil
}

// LinkWithSyncCode verifies a peer's code and adopts its user identifier, so
// subsequent fetches are scoped to the peer's data. The local device
// identifier is kept.
func (m *Manager) LinkWithSyncCode(code string) error {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(code))
	if err != nil {
		return ErrInvalidSyncCode
	}
	parts := strings.Split(string(raw), "|")
	if len(parts) != 4 {
		return ErrInvalidSyncCode
	}
	userID, deviceID, issuedAt, tag := parts[0], parts[1], parts[2], parts[3]

	payload := fmt.Sprintf("%s|%s|%s", userID, deviceID, issuedAt)
	if !hmac.Equal([]byte(tag), []byte(m.sign(payload))) {
		return ErrInvalidSyncCode
	}

	issuedUnix, err := strconv.ParseInt(issuedAt, 10, 64)
	if err != nil {
		return ErrInvalidSyncCode
	}
	if m.now().Sub(time.Unix(issuedUnix, 0)) > syncCodeTTL {
		return ErrSyncCodeExpired
	}

	if userID == "" {
		return ErrInvalidSyncCode
	}
	return m.store.Set(userIDKey, userID)
}

func (m *Manager) sign(payload string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))[:syncCodeTagLen]
}
