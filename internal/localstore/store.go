// Package localstore is the device-side persistence port: a flat string
// keyspace standing in for the browser's local storage. The CLI uses the
// SQLite implementation; tests use the in-memory one.
package localstore

type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Clear() error
}
