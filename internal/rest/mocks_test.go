package rest

import (
	"context"

	"voyager-be/internal/auth"
	"voyager-be/internal/booking"
	"voyager-be/internal/dashboard"
	"voyager-be/internal/menu"
	"voyager-be/internal/order"
	"voyager-be/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in user.CreateInput) (*user.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*user.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, actor *auth.Principal, in user.CreateInput) (*user.User, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, actor *auth.Principal) ([]*user.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, actor *auth.Principal, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, actor *auth.Principal, id uuid.UUID, in user.UpdateInput) (*user.User, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, actor *auth.Principal, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockUserService) SessionPrincipal(ctx context.Context, id uuid.UUID) (auth.Principal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(auth.Principal), args.Error(1)
}

type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) List(ctx context.Context, category string) ([]*menu.Item, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*menu.Item), args.Error(1)
}

func (m *MockMenuService) Get(ctx context.Context, id uuid.UUID) (*menu.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Item), args.Error(1)
}

func (m *MockMenuService) Create(ctx context.Context, actor *auth.Principal, in menu.CreateInput) (*menu.Item, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Item), args.Error(1)
}

func (m *MockMenuService) Update(ctx context.Context, actor *auth.Principal, id uuid.UUID, in menu.UpdateInput) (*menu.Item, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Item), args.Error(1)
}

func (m *MockMenuService) Delete(ctx context.Context, actor *auth.Principal, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, actor *auth.Principal, in order.CreateInput) (*order.Order, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, actor *auth.Principal, q order.ListQuery) ([]*order.Order, error) {
	args := m.Called(ctx, actor, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, actor *auth.Principal, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Advance(ctx context.Context, actor *auth.Principal, id uuid.UUID, next string) (*order.Order, error) {
	args := m.Called(ctx, actor, id, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, actor *auth.Principal, in booking.CreateInput) (*booking.Booking, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingService) List(ctx context.Context, actor *auth.Principal, q booking.ListQuery) ([]*booking.Booking, error) {
	args := m.Called(ctx, actor, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingService) Get(ctx context.Context, actor *auth.Principal, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingService) UpdateStatus(ctx context.Context, actor *auth.Principal, id uuid.UUID, next string) (*booking.Booking, error) {
	args := m.Called(ctx, actor, id, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summary(ctx context.Context, actor *auth.Principal) (*dashboard.Summary, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Summary), args.Error(1)
}
