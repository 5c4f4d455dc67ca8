package authz

import (
	"errors"
	"testing"

	"voyager-be/internal/apperr"
	"voyager-be/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func principal(r auth.Role) *auth.Principal {
	return &auth.Principal{UserID: uuid.New(), Role: r}
}

func TestAuthorize_RuleTable(t *testing.T) {
	all := []auth.Role{auth.RoleVoyager, auth.RoleCook, auth.RoleSupervisor, auth.RoleManager, auth.RoleAdmin}

	expected := map[Action][]auth.Role{
		ReadOwnRecords:     {auth.RoleVoyager},
		ReadAllOrders:      {auth.RoleCook, auth.RoleSupervisor, auth.RoleManager, auth.RoleAdmin},
		ReadAllBookings:    {auth.RoleCook, auth.RoleSupervisor, auth.RoleManager, auth.RoleAdmin},
		CreateOrder:        {auth.RoleVoyager},
		CreateBooking:      {auth.RoleVoyager},
		AdvanceOrderStatus: {auth.RoleCook, auth.RoleSupervisor, auth.RoleAdmin},
		ManageCatalog:      {auth.RoleAdmin},
		ManageUsers:        {auth.RoleAdmin},
		ListUsers:          {auth.RoleManager, auth.RoleAdmin},
		ViewDashboard:      all,
	}

	for action, allowedRoles := range expected {
		for _, r := range all {
			err := Authorize(principal(r), action, Resource{})
			if contains(allowedRoles, r) {
				assert.NoError(t, err, "%s should be allowed %s", r, action)
			} else {
				assert.True(t, errors.Is(err, apperr.ErrForbidden), "%s should be forbidden %s", r, action)
			}
		}
	}
}

func TestAuthorize_Unauthenticated(t *testing.T) {
	err := Authorize(nil, ListUsers, Resource{})
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))

	err = CanReadRecord(nil, ReadAllOrders, Resource{})
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
}

func TestAuthorize_Ownership(t *testing.T) {
	v := principal(auth.RoleVoyager)

	assert.NoError(t, Authorize(v, ReadOwnRecords, Resource{OwnerID: v.UserID}))
	assert.NoError(t, Authorize(v, ReadOwnRecords, Resource{}))
	assert.True(t, errors.Is(Authorize(v, ReadOwnRecords, Resource{OwnerID: uuid.New()}), apperr.ErrForbidden))
}

func TestAuthorize_StaffOrderType(t *testing.T) {
	c := principal(auth.RoleCook)
	s := principal(auth.RoleSupervisor)
	m := principal(auth.RoleManager)

	assert.NoError(t, Authorize(c, ReadAllOrders, Resource{OrderType: "catering"}))
	assert.True(t, errors.Is(Authorize(c, ReadAllOrders, Resource{OrderType: "stationery"}), apperr.ErrForbidden))
	assert.NoError(t, Authorize(s, ReadAllOrders, Resource{OrderType: "stationery"}))
	assert.True(t, errors.Is(Authorize(s, ReadAllOrders, Resource{OrderType: "catering"}), apperr.ErrForbidden))
	assert.NoError(t, Authorize(m, ReadAllOrders, Resource{OrderType: "stationery"}))

	assert.Equal(t, "catering", StaffOrderType(auth.RoleCook))
	assert.Equal(t, "stationery", StaffOrderType(auth.RoleSupervisor))
	assert.Equal(t, "", StaffOrderType(auth.RoleAdmin))
}

func TestAuthorize_SelfDelete(t *testing.T) {
	a := principal(auth.RoleAdmin)

	assert.NoError(t, Authorize(a, DeleteUser, Resource{TargetUserID: uuid.New()}))
	assert.True(t, errors.Is(Authorize(a, DeleteUser, Resource{TargetUserID: a.UserID}), ErrSelfDelete))

	m := principal(auth.RoleManager)
	assert.True(t, errors.Is(Authorize(m, DeleteUser, Resource{TargetUserID: m.UserID}), apperr.ErrForbidden))
}

func TestCanReadRecord(t *testing.T) {
	owner := principal(auth.RoleVoyager)
	stranger := principal(auth.RoleVoyager)
	cook := principal(auth.RoleCook)

	res := Resource{OwnerID: owner.UserID, OrderType: "catering"}

	assert.NoError(t, CanReadRecord(owner, ReadAllOrders, res))
	assert.True(t, errors.Is(CanReadRecord(stranger, ReadAllOrders, res), apperr.ErrForbidden))
	assert.NoError(t, CanReadRecord(cook, ReadAllOrders, res))
	assert.NoError(t, CanReadRecord(cook, ReadAllBookings, Resource{OwnerID: owner.UserID}))
}

func contains(roles []auth.Role, r auth.Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}
