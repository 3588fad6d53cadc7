package models

// DeviceIdentity tags expenses with their origin. Both identifiers are
// generated once per local store and never rotated.
type DeviceIdentity struct {
	UserID   string `json:"user_id"`
	DeviceID string `json:"device_id"`
}

// SyncData is a snapshot of everything the device tracks between syncs.
type SyncData struct {
	UserID   string    `json:"userId"`
	DeviceID string    `json:"deviceId"`
	LastSync string    `json:"lastSync"`
	Expenses []Expense `json:"expenses"`
}
