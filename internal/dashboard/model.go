package dashboard

import (
	"voyager-be/internal/auth"

	"github.com/google/uuid"
)

// Scope narrows the aggregates to one voyager or one order type.
type Scope struct {
	UserID    *uuid.UUID
	OrderType string
}

type Counts struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

func newCounts(byStatus map[string]int) Counts {
	c := Counts{ByStatus: byStatus}
	for _, n := range byStatus {
		c.Total += n
	}
	return c
}

type Overview struct {
	TotalUsers        int            `json:"totalUsers"`
	TotalMenuItems    int            `json:"totalMenuItems"`
	ActiveUsers       int            `json:"activeUsers"`
	TotalRevenue      float64        `json:"totalRevenue"`
	BookingsByService map[string]int `json:"bookingsByService"`
}

// Totals are the whole-ship figures only managers and admins see.
type Totals struct {
	Users       int
	MenuItems   int
	ActiveUsers int
}

type Summary struct {
	Role       auth.Role `json:"role"`
	OrderType  string    `json:"orderType,omitempty"`
	Orders     Counts    `json:"orders"`
	Bookings   *Counts   `json:"bookings,omitempty"`
	TotalSpent *float64  `json:"totalSpent,omitempty"`
	Overview   *Overview `json:"overview,omitempty"`
}
