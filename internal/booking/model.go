package booking

import (
	"encoding/json"
	"time"

	"voyager-be/internal/user"

	"github.com/google/uuid"
)

type ServiceType string

const (
	ServiceMovie   ServiceType = "movie"
	ServiceSalon   ServiceType = "salon"
	ServiceFitness ServiceType = "fitness"
	ServiceParty   ServiceType = "party"
)

func ParseServiceType(s string) (ServiceType, error) {
	switch st := ServiceType(s); st {
	case ServiceMovie, ServiceSalon, ServiceFitness, ServiceParty:
		return st, nil
	}
	return "", ErrInvalidService
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return st, nil
	}
	return "", ErrInvalidStatus
}

type Booking struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"userId"`
	User        *user.Summary `json:"user,omitempty"`
	Service     ServiceType   `json:"service"`
	Details     Details       `json:"details"`
	Status      Status        `json:"status"`
	BookingDate time.Time     `json:"bookingDate"`
	Price       float64       `json:"price"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type CreateInput struct {
	Service     string          `json:"service"`
	BookingDate time.Time       `json:"bookingDate"`
	Details     json.RawMessage `json:"details"`
	Price       *float64        `json:"price"`
}

type ListQuery struct {
	Service string
	Status  string
}

type ListFilter struct {
	UserID  *uuid.UUID
	Service ServiceType
	Status  Status
}
