package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Categories an expense may belong to. The set is fixed; anything else is
// rejected before the record leaves the device.
const (
	CategoryFood          = "food"
	CategoryTransport     = "transport"
	CategoryAccommodation = "accommodation"
	CategoryEntertainment = "entertainment"
	CategoryShopping      = "shopping"
	CategoryBusiness      = "business"
	CategoryOther         = "other"
)

var Categories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryAccommodation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryBusiness,
	CategoryOther,
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Expense struct {
	ID            string    `json:"id" db:"id"`
	Amount        float64   `json:"amount" db:"amount"`
	Category      string    `json:"category" db:"category"`
	Description   string    `json:"description" db:"description"`
	Date          time.Time `json:"date" db:"date"`
	ReceiptPhotos PhotoList `json:"receipt_photos,omitempty" db:"receipt_photo"`
	FoodPhotos    PhotoList `json:"food_photos,omitempty" db:"food_photo"`
	UserID        string    `json:"user_id,omitempty" db:"user_id"`
	DeviceID      string    `json:"device_id,omitempty" db:"device_id"`
}

func (e *Expense) Validate() error {
	if e.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %v", e.Amount)
	}
	if !ValidCategory(e.Category) {
		return fmt.Errorf("unknown category %q", e.Category)
	}
	return nil
}

// PhotoList is an ordered list of inline photo attachments. On the wire it is
// a JSON array, but older clients sent a single data string or several joined
// with "|", so both decode too.
type PhotoList []string

func (p *PhotoList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*p = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("photo list must be an array or string: %w", err)
	}
	*p = splitPhotos(single)
	return nil
}

// photoColumnVersion prefixes the current database encoding of a photo list.
const photoColumnVersion = "v1:"

// EncodeColumn serializes the list for the text column. Empty lists encode to
// the empty string so legacy NULL semantics are preserved.
func (p PhotoList) EncodeColumn() string {
	if len(p) == 0 {
		return ""
	}
	data, _ := json.Marshal([]string(p))
	return photoColumnVersion + string(data)
}

// DecodePhotoColumn parses a photo column value. Rows written before the
// versioned format hold "|"-joined (or single) data strings.
func DecodePhotoColumn(value string) (PhotoList, error) {
	if value == "" {
		return nil, nil
	}
	if strings.HasPrefix(value, photoColumnVersion) {
		var list []string
		if err := json.Unmarshal([]byte(value[len(photoColumnVersion):]), &list); err != nil {
			return nil, fmt.Errorf("corrupt photo column: %w", err)
		}
		return list, nil
	}
	return splitPhotos(value), nil
}

func splitPhotos(value string) PhotoList {
	if value == "" {
		return nil
	}
	var list PhotoList
	for _, part := range strings.Split(value, "|") {
		if part != "" {
			list = append(list, part)
		}
	}
	return list
}
