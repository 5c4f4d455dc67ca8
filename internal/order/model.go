package order

import (
	"time"

	"voyager-be/internal/menu"
	"voyager-be/internal/user"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending Status = "pending"
	// StatusConfirmed is accepted by the store but no transition leads to it.
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

type Item struct {
	ItemID   uuid.UUID `json:"itemId"`
	ItemName string    `json:"itemName,omitempty"`
	Quantity int       `json:"quantity"`
	Price    float64   `json:"price"`
}

type Order struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"userId"`
	User        *user.Summary `json:"user,omitempty"`
	Items       []Item        `json:"items"`
	Type        menu.Category `json:"type"`
	Status      Status        `json:"status"`
	TotalAmount float64       `json:"totalAmount"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type ItemInput struct {
	ItemID   string   `json:"itemId"`
	Quantity int      `json:"quantity"`
	Price    *float64 `json:"price"`
}

type CreateInput struct {
	Items       []ItemInput `json:"items"`
	Type        string      `json:"type"`
	TotalAmount *float64    `json:"totalAmount"`
}

// ListQuery is what a caller asks for. The service turns it into a ListFilter
// scoped to what the caller may see.
type ListQuery struct {
	Type   string
	Status string
}

type ListFilter struct {
	UserID *uuid.UUID
	Type   menu.Category
	Status Status
}
