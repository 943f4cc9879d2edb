package domain

import "time"

// Category is one of the two independently handled content types.
type Category string

const (
	CategoryBook  Category = "book"
	CategoryVideo Category = "video"
)

// Categories lists every category in the order responses group them.
var Categories = []Category{CategoryBook, CategoryVideo}

// CatalogItem is the normalized representation of one media entry,
// regardless of which backend it came from. Immutable once mapped.
type CatalogItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Source      string    `json:"source"`
	Genres      []string  `json:"genres,omitempty"`
	Creator     string    `json:"creator,omitempty"`
	Year        int       `json:"year,omitempty"`
	Description string    `json:"description,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}
