package menu

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryCatering   Category = "catering"
	CategoryStationery Category = "stationery"
)

func (c Category) Valid() bool {
	return c == CategoryCatering || c == CategoryStationery
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Item is an orderable catalog entry. Available is informational and is not
// checked when ordering.
type Item struct {
	ID          uuid.UUID `json:"id"`
	ItemName    string    `json:"itemName"`
	Category    Category  `json:"category"`
	Subcategory string    `json:"subcategory"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateInput struct {
	ItemName    string   `json:"itemName"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	Available   *bool    `json:"available"`
}

type UpdateInput struct {
	ItemName    *string  `json:"itemName"`
	Category    *string  `json:"category"`
	Subcategory *string  `json:"subcategory"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Available   *bool    `json:"available"`
}

// UpdateParams holds validated column changes. Nil fields are left alone.
type UpdateParams struct {
	ItemName    *string
	Category    *Category
	Subcategory *string
	Price       *float64
	Description *string
	Available   *bool
}

func (p UpdateParams) empty() bool {
	return p.ItemName == nil && p.Category == nil && p.Subcategory == nil &&
		p.Price == nil && p.Description == nil && p.Available == nil
}
