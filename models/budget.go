package models

// Budget lives only on the device; the server never sees it.
type Budget struct {
	Total     float64 `json:"total"`
	Remaining float64 `json:"remaining"`
}
