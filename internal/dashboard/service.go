package dashboard

import (
	"context"

	"voyager-be/internal/auth"
	"voyager-be/internal/authz"
	"voyager-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Summary(ctx context.Context, actor *auth.Principal) (*Summary, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Summary builds the figures shown on the caller's dashboard. What is
// included depends on the role.
func (s *service) Summary(ctx context.Context, actor *auth.Principal) (*Summary, error) {
	if err := authz.Authorize(actor, authz.ViewDashboard, authz.Resource{}); err != nil {
		return nil, err
	}

	out, err := s.summary(ctx, actor)
	if err != nil {
		logger.FromCtx(ctx).Error("dashboard summary failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (s *service) summary(ctx context.Context, actor *auth.Principal) (*Summary, error) {
	out := &Summary{Role: actor.Role}

	switch actor.Role {
	case auth.RoleVoyager:
		uid := actor.UserID
		scope := Scope{UserID: &uid}

		if err := s.fillOrdersAndBookings(ctx, out, scope); err != nil {
			return nil, err
		}
		spent, err := s.repo.Spend(ctx, scope)
		if err != nil {
			return nil, err
		}
		out.TotalSpent = &spent

	case auth.RoleCook, auth.RoleSupervisor:
		out.OrderType = authz.StaffOrderType(actor.Role)
		orders, err := s.repo.OrderStatusCounts(ctx, Scope{OrderType: out.OrderType})
		if err != nil {
			return nil, err
		}
		out.Orders = newCounts(orders)

	default:
		if err := s.fillOrdersAndBookings(ctx, out, Scope{}); err != nil {
			return nil, err
		}
		totals, err := s.repo.Totals(ctx)
		if err != nil {
			return nil, err
		}
		revenue, err := s.repo.Spend(ctx, Scope{})
		if err != nil {
			return nil, err
		}
		byService, err := s.repo.BookingServiceCounts(ctx)
		if err != nil {
			return nil, err
		}
		out.Overview = &Overview{
			TotalUsers:        totals.Users,
			TotalMenuItems:    totals.MenuItems,
			ActiveUsers:       totals.ActiveUsers,
			TotalRevenue:      revenue,
			BookingsByService: byService,
		}
	}

	return out, nil
}

func (s *service) fillOrdersAndBookings(ctx context.Context, out *Summary, scope Scope) error {
	orders, err := s.repo.OrderStatusCounts(ctx, scope)
	if err != nil {
		return err
	}
	bookings, err := s.repo.BookingStatusCounts(ctx, scope)
	if err != nil {
		return err
	}

	out.Orders = newCounts(orders)
	b := newCounts(bookings)
	out.Bookings = &b
	return nil
}
