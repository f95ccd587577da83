package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
)

// Listing represents a normalized property listing ready for display
type Listing struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Location    string     `json:"location,omitempty"`
	Price       float64    `json:"price"`
	ImageURL    *string    `json:"image_url,omitempty"`
	Description RichText   `json:"description,omitempty"`
	Bedrooms    *int       `json:"bedrooms,omitempty"`
	Bathrooms   *int       `json:"bathrooms,omitempty"`
	FloorArea   *float64   `json:"floor_area,omitempty"` // square feet
	Categories  []Category `json:"categories,omitempty"`
	Features    []string   `json:"features,omitempty"`
	Images      []string   `json:"images,omitempty"`
}

// HasCategory reports whether the listing is tagged with c
func (l *Listing) HasCategory(c Category) bool {
	return slices.Contains(l.Categories, c)
}

// Summary returns the plain-text projection of the description, or fallback
// when the listing has no description at all.
func (l *Listing) Summary(fallback string) string {
	if l.Description == nil {
		return fallback
	}
	return l.Description.PlainText()
}

// Document is a raw document returned by the content store
type Document map[string]interface{}

// Value implements driver.Valuer interface
func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner interface
func (d *Document) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("cannot scan %T into Document", value)
	}
}

// ID returns the document identity, or "" when it has none
func (d Document) ID() string {
	id, _ := d["_id"].(string)
	return id
}
