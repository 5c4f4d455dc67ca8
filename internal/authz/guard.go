// Package authz holds the single rule table deciding which role may perform
// which action on which record.
package authz

import (
	"voyager-be/internal/apperr"
	"voyager-be/internal/auth"

	"github.com/google/uuid"
)

type Action string

const (
	ReadOwnRecords       Action = "read_own_records"
	ReadAllOrders        Action = "read_all_orders"
	ReadAllBookings      Action = "read_all_bookings"
	CreateOrder          Action = "create_order"
	CreateBooking        Action = "create_booking"
	AdvanceOrderStatus   Action = "advance_order_status"
	AdvanceBookingStatus Action = "advance_booking_status"
	ManageCatalog        Action = "manage_catalog"
	ManageUsers          Action = "manage_users"
	DeleteUser           Action = "delete_user"
	ListUsers            Action = "list_users"
	ViewDashboard        Action = "view_dashboard"
)

// Resource describes the record an action touches. Zero fields are "not applicable".
type Resource struct {
	OwnerID      uuid.UUID
	OrderType    string
	TargetUserID uuid.UUID
}

var ErrSelfDelete = apperr.New(apperr.Validation, "Cannot delete your own account")

var (
	voyager    = auth.RoleVoyager
	cook       = auth.RoleCook
	supervisor = auth.RoleSupervisor
	manager    = auth.RoleManager
	admin      = auth.RoleAdmin
)

var rules = map[Action][]auth.Role{
	ReadOwnRecords:       {voyager},
	ReadAllOrders:        {cook, supervisor, manager, admin},
	ReadAllBookings:      {cook, supervisor, manager, admin},
	CreateOrder:          {voyager},
	CreateBooking:        {voyager},
	AdvanceOrderStatus:   {cook, supervisor, admin},
	AdvanceBookingStatus: {manager, admin},
	ManageCatalog:        {admin},
	ManageUsers:          {admin},
	DeleteUser:           {admin},
	ListUsers:            {manager, admin},
	ViewDashboard:        {voyager, cook, supervisor, manager, admin},
}

// staffOrderType is the order type each kitchen/shop role works on.
var staffOrderType = map[auth.Role]string{
	cook:       "catering",
	supervisor: "stationery",
}

// StaffOrderType returns the order type a staff role is scoped to, or "".
func StaffOrderType(r auth.Role) string {
	return staffOrderType[r]
}

// Authorize returns nil when p may perform action on res.
func Authorize(p *auth.Principal, action Action, res Resource) error {
	if p == nil {
		return apperr.ErrUnauthenticated
	}

	if !allowed(p.Role, action) {
		return apperr.ErrForbidden
	}

	switch action {
	case ReadOwnRecords:
		if res.OwnerID != uuid.Nil && res.OwnerID != p.UserID {
			return apperr.ErrForbidden
		}
	case ReadAllOrders:
		if own := StaffOrderType(p.Role); own != "" && res.OrderType != "" && res.OrderType != own {
			return apperr.ErrForbidden
		}
	case DeleteUser:
		if res.TargetUserID == p.UserID {
			return ErrSelfDelete
		}
	}

	return nil
}

// CanReadRecord reports whether p may read a single order or booking.
// Voyagers read their own; roles that list all records read any of them.
func CanReadRecord(p *auth.Principal, listAction Action, res Resource) error {
	if p == nil {
		return apperr.ErrUnauthenticated
	}
	if p.Role == auth.RoleVoyager {
		return Authorize(p, ReadOwnRecords, res)
	}
	return Authorize(p, listAction, res)
}

func allowed(r auth.Role, action Action) bool {
	for _, role := range rules[action] {
		if role == r {
			return true
		}
	}
	return false
}
