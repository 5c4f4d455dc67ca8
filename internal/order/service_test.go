package order

import (
	"context"
	"errors"
	"math"
	"testing"

	"voyager-be/internal/apperr"
	"voyager-be/internal/auth"
	"voyager-be/internal/menu"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, o *Order) (*Order, error) {
	args := m.Called(ctx, o)
	if fn, ok := args.Get(0).(func(context.Context, *Order) *Order); ok {
		return fn(ctx, o), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, f ListFilter) ([]*Order, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(context.Context, uuid.UUID) *Order); ok {
		return fn(ctx, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next Status) (*Order, error) {
	args := m.Called(ctx, id, expected, next)
	if fn, ok := args.Get(0).(func(context.Context, uuid.UUID, Status, Status) *Order); ok {
		return fn(ctx, id, expected, next), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*menu.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*menu.Item), args.Error(1)
}

func as(role auth.Role) *auth.Principal {
	return &auth.Principal{UserID: uuid.New(), Role: role, Name: string(role), Email: string(role) + "@ship.test"}
}

func f64(v float64) *float64 { return &v }

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	pasta := &menu.Item{ID: uuid.New(), ItemName: "Pasta", Category: menu.CategoryCatering, Price: 10}
	pen := &menu.Item{ID: uuid.New(), ItemName: "Pen", Category: menu.CategoryStationery, Price: 1.15}
	catalogItems := map[uuid.UUID]*menu.Item{pasta.ID: pasta, pen.ID: pen}

	newSvc := func() (*MockRepository, *MockCatalog, Service) {
		repo, cat := new(MockRepository), new(MockCatalog)
		cat.On("FindByIDs", mock.Anything, mock.Anything).Return(catalogItems, nil)
		return repo, cat, NewService(repo, cat)
	}

	t.Run("Success", func(t *testing.T) {
		repo, _, svc := newSvc()
		v := as(auth.RoleVoyager)
		repo.On("Create", ctx, mock.AnythingOfType("*order.Order")).
			Return(func(_ context.Context, o *Order) *Order { return o }, nil).Once()

		o, err := svc.Create(ctx, v, CreateInput{
			Items:       []ItemInput{{ItemID: pasta.ID.String(), Quantity: 2, Price: f64(10)}},
			Type:        "catering",
			TotalAmount: f64(20),
		})
		require.NoError(t, err)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, v.UserID, o.UserID)
		assert.Equal(t, 20.0, o.TotalAmount)
		assert.Equal(t, "Pasta", o.Items[0].ItemName)
	})

	t.Run("FillsPricesAndTotal", func(t *testing.T) {
		repo, _, svc := newSvc()
		repo.On("Create", ctx, mock.MatchedBy(func(o *Order) bool {
			return o.TotalAmount == 3.45 && o.Items[0].Price == 1.15
		})).Return(&Order{ID: uuid.New(), TotalAmount: 3.45}, nil).Once()

		_, err := svc.Create(ctx, as(auth.RoleVoyager), CreateInput{
			Items: []ItemInput{{ItemID: pen.ID.String(), Quantity: 3}},
			Type:  "stationery",
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	rejected := map[string]CreateInput{
		"no items":       {Type: "catering"},
		"bad type":       {Type: "spa", Items: []ItemInput{{ItemID: pasta.ID.String(), Quantity: 1}}},
		"zero quantity":  {Type: "catering", Items: []ItemInput{{ItemID: pasta.ID.String(), Quantity: 0}}},
		"huge quantity":  {Type: "catering", Items: []ItemInput{{ItemID: pasta.ID.String(), Quantity: math.MaxInt}}},
		"over the cap":   {Type: "catering", Items: []ItemInput{{ItemID: pasta.ID.String(), Quantity: MaxQuantity + 1}}},
		"negative price": {Type: "catering", Items: []ItemInput{{ItemID: pasta.ID.String(), Quantity: 1, Price: f64(-1)}}},
		"bad item id":    {Type: "catering", Items: []ItemInput{{ItemID: "m1", Quantity: 1}}},
		"unknown item":   {Type: "catering", Items: []ItemInput{{ItemID: uuid.NewString(), Quantity: 1}}},
		"wrong category": {Type: "catering", Items: []ItemInput{{ItemID: pen.ID.String(), Quantity: 1}}},
		"price mismatch": {Type: "catering", Items: []ItemInput{{ItemID: pasta.ID.String(), Quantity: 1, Price: f64(9.99)}}},
		"total mismatch": {Type: "catering", Items: []ItemInput{{ItemID: pasta.ID.String(), Quantity: 2}}, TotalAmount: f64(19)},
	}
	for name, in := range rejected {
		t.Run(name, func(t *testing.T) {
			repo, _, svc := newSvc()
			_, err := svc.Create(ctx, as(auth.RoleVoyager), in)
			assert.Equal(t, apperr.Validation, apperr.KindOf(err))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("TotalOverflow", func(t *testing.T) {
		gold := &menu.Item{ID: uuid.New(), ItemName: "Gold", Category: menu.CategoryCatering, Price: 1e16}
		repo, cat := new(MockRepository), new(MockCatalog)
		cat.On("FindByIDs", mock.Anything, mock.Anything).Return(map[uuid.UUID]*menu.Item{gold.ID: gold}, nil)
		svc := NewService(repo, cat)

		_, err := svc.Create(ctx, as(auth.RoleVoyager), CreateInput{
			Type:  "catering",
			Items: []ItemInput{{ItemID: gold.ID.String(), Quantity: MaxQuantity}},
		})
		assert.Equal(t, apperr.Validation, apperr.KindOf(err))
		assert.Contains(t, apperr.Message(err), "too large")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("StaffCannotCreate", func(t *testing.T) {
		for _, r := range []auth.Role{auth.RoleCook, auth.RoleSupervisor, auth.RoleManager, auth.RoleAdmin} {
			_, _, svc := newSvc()
			_, err := svc.Create(ctx, as(r), CreateInput{Type: "catering"})
			assert.True(t, errors.Is(err, apperr.ErrForbidden), r)
		}
	})
}

func TestService_List_Scoping(t *testing.T) {
	ctx := context.Background()

	t.Run("VoyagerSeesOwn", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCatalog))
		v := as(auth.RoleVoyager)
		repo.On("List", ctx, mock.MatchedBy(func(f ListFilter) bool {
			return f.UserID != nil && *f.UserID == v.UserID
		})).Return([]*Order{{UserID: v.UserID}}, nil).Once()

		orders, err := svc.List(ctx, v, ListQuery{})
		require.NoError(t, err)
		for _, o := range orders {
			assert.Equal(t, v.UserID, o.UserID)
		}
		repo.AssertExpectations(t)
	})

	t.Run("ManagerSeesAll", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCatalog))
		repo.On("List", ctx, ListFilter{}).Return([]*Order{{}, {}}, nil).Once()

		orders, err := svc.List(ctx, as(auth.RoleManager), ListQuery{})
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("CookScopedToCatering", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCatalog))
		repo.On("List", ctx, ListFilter{Type: menu.CategoryCatering, Status: StatusPending}).Return([]*Order{}, nil).Once()

		_, err := svc.List(ctx, as(auth.RoleCook), ListQuery{Status: "pending"})
		require.NoError(t, err)

		_, err = svc.List(ctx, as(auth.RoleCook), ListQuery{Type: "stationery"})
		assert.True(t, errors.Is(err, apperr.ErrForbidden))
		repo.AssertExpectations(t)
	})

	t.Run("SupervisorScopedToStationery", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCatalog))
		repo.On("List", ctx, ListFilter{Type: menu.CategoryStationery}).Return([]*Order{}, nil).Once()

		_, err := svc.List(ctx, as(auth.RoleSupervisor), ListQuery{Type: "stationery"})
		require.NoError(t, err)
	})

	t.Run("Anonymous", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCatalog))
		_, err := svc.List(ctx, nil, ListQuery{})
		assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
	})

	t.Run("BadFilters", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCatalog))
		_, err := svc.List(ctx, as(auth.RoleAdmin), ListQuery{Status: "lost"})
		assert.True(t, errors.Is(err, ErrInvalidStatus))
		_, err = svc.List(ctx, as(auth.RoleAdmin), ListQuery{Type: "spa"})
		assert.True(t, errors.Is(err, ErrInvalidType))
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	owner := as(auth.RoleVoyager)
	o := &Order{ID: uuid.New(), UserID: owner.UserID, Type: menu.CategoryCatering}

	repo := new(MockRepository)
	svc := NewService(repo, new(MockCatalog))
	repo.On("FindByID", ctx, o.ID).Return(o, nil)

	_, err := svc.Get(ctx, owner, o.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, as(auth.RoleVoyager), o.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	_, err = svc.Get(ctx, as(auth.RoleCook), o.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, as(auth.RoleSupervisor), o.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	missing := uuid.New()
	repo.On("FindByID", ctx, missing).Return(nil, ErrOrderNotFound)
	_, err = svc.Get(ctx, as(auth.RoleAdmin), missing)
	assert.True(t, errors.Is(err, ErrOrderNotFound))
}

func TestService_Advance(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCatalog))
		repo.On("FindByID", ctx, id).Return(&Order{ID: id, Status: StatusPending}, nil).Once()
		repo.On("UpdateStatus", ctx, id, StatusPending, StatusPreparing).
			Return(&Order{ID: id, Status: StatusPreparing}, nil).Once()

		o, err := svc.Advance(ctx, as(auth.RoleCook), id, "preparing")
		require.NoError(t, err)
		assert.Equal(t, StatusPreparing, o.Status)
	})

	t.Run("SkipRejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCatalog))
		repo.On("FindByID", ctx, id).Return(&Order{ID: id, Status: StatusPending}, nil).Once()

		_, err := svc.Advance(ctx, as(auth.RoleAdmin), id, "delivered")
		assert.True(t, errors.Is(err, ErrInvalidTransition))
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCatalog))
		_, err := svc.Advance(ctx, as(auth.RoleAdmin), id, "shipped")
		assert.True(t, errors.Is(err, ErrInvalidStatus))
	})

	t.Run("ForbiddenRoles", func(t *testing.T) {
		for _, r := range []auth.Role{auth.RoleVoyager, auth.RoleManager} {
			svc := NewService(new(MockRepository), new(MockCatalog))
			_, err := svc.Advance(ctx, as(r), id, "preparing")
			assert.True(t, errors.Is(err, apperr.ErrForbidden), r)
		}
	})

	t.Run("LostRace", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCatalog))
		repo.On("FindByID", ctx, id).Return(&Order{ID: id, Status: StatusReady}, nil).Once()
		repo.On("UpdateStatus", ctx, id, StatusReady, StatusDelivered).Return(nil, ErrStatusConflict).Once()

		_, err := svc.Advance(ctx, as(auth.RoleSupervisor), id, "delivered")
		assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCatalog))
		repo.On("FindByID", ctx, id).Return(nil, ErrOrderNotFound).Once()

		_, err := svc.Advance(ctx, as(auth.RoleCook), id, "preparing")
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})
}

// An order placed by one voyager is moved by the cook and cannot be moved
// by another voyager.
func TestService_OrderLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	m1 := &menu.Item{ID: uuid.New(), ItemName: "m1", Category: menu.CategoryCatering, Price: 10}

	repo, cat := new(MockRepository), new(MockCatalog)
	cat.On("FindByIDs", ctx, []uuid.UUID{m1.ID}).Return(map[uuid.UUID]*menu.Item{m1.ID: m1}, nil)
	svc := NewService(repo, cat)

	var stored *Order
	repo.On("Create", ctx, mock.Anything).Return(func(_ context.Context, o *Order) *Order {
		stored = o
		return o
	}, nil)

	v1 := as(auth.RoleVoyager)
	o, err := svc.Create(ctx, v1, CreateInput{
		Items:       []ItemInput{{ItemID: m1.ID.String(), Quantity: 2, Price: f64(10)}},
		Type:        "catering",
		TotalAmount: f64(20),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)

	repo.On("FindByID", ctx, o.ID).Return(func(context.Context, uuid.UUID) *Order { return stored }, nil)
	repo.On("UpdateStatus", ctx, o.ID, StatusPending, StatusPreparing).
		Return(func(_ context.Context, _ uuid.UUID, _, next Status) *Order {
			cp := *stored
			cp.Status = next
			stored = &cp
			return stored
		}, nil).Once()

	advanced, err := svc.Advance(ctx, as(auth.RoleCook), o.ID, "preparing")
	require.NoError(t, err)
	assert.Equal(t, StatusPreparing, advanced.Status)

	_, err = svc.Advance(ctx, as(auth.RoleVoyager), o.ID, "ready")
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
	assert.Equal(t, StatusPreparing, stored.Status)
}
