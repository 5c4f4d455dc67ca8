package booking

import (
	"context"
	"math"
	"time"

	"voyager-be/internal/apperr"
	"voyager-be/internal/auth"
	"voyager-be/internal/authz"
	"voyager-be/internal/logger"
	"voyager-be/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, actor *auth.Principal, in CreateInput) (*Booking, error)
	List(ctx context.Context, actor *auth.Principal, q ListQuery) ([]*Booking, error)
	Get(ctx context.Context, actor *auth.Principal, id uuid.UUID) (*Booking, error)
	UpdateStatus(ctx context.Context, actor *auth.Principal, id uuid.UUID, next string) (*Booking, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, actor *auth.Principal, in CreateInput) (*Booking, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateBooking"),
	)

	if err := authz.Authorize(actor, authz.CreateBooking, authz.Resource{}); err != nil {
		return nil, err
	}

	svcType, err := ParseServiceType(in.Service)
	if err != nil {
		return nil, err
	}

	if in.BookingDate.IsZero() {
		return nil, apperr.Invalid("bookingDate is required")
	}
	if !in.BookingDate.After(s.now()) {
		return nil, ErrDateNotInFuture
	}

	details, err := DecodeDetails(svcType, in.Details)
	if err != nil {
		return nil, err
	}

	price, _ := PriceOf(svcType)
	if in.Price != nil && math.Round(*in.Price*100) != math.Round(price*100) {
		log.Warn("booking price mismatch",
			zap.String("service", string(svcType)),
			zap.Float64("client_price", *in.Price),
		)
		return nil, ErrPriceMismatch
	}

	b := &Booking{
		ID:          uuid.New(),
		UserID:      actor.UserID,
		User:        &user.Summary{ID: actor.UserID, Name: actor.Name, Email: actor.Email},
		Service:     svcType,
		Details:     details,
		Status:      StatusPending,
		BookingDate: in.BookingDate.UTC(),
		Price:       price,
	}

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}

	log.Info("booking created",
		zap.String("booking_id", created.ID.String()),
		zap.String("service", string(created.Service)),
	)
	return created, nil
}

// List returns the caller's own bookings for voyagers and every booking for
// managers and admins.
func (s *service) List(ctx context.Context, actor *auth.Principal, q ListQuery) ([]*Booking, error) {
	if actor == nil {
		return nil, apperr.ErrUnauthenticated
	}

	var f ListFilter
	if q.Service != "" {
		st, err := ParseServiceType(q.Service)
		if err != nil {
			return nil, err
		}
		f.Service = st
	}
	if q.Status != "" {
		st, err := ParseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		f.Status = st
	}

	if actor.Role == auth.RoleVoyager {
		uid := actor.UserID
		f.UserID = &uid
	} else if err := authz.Authorize(actor, authz.ReadAllBookings, authz.Resource{}); err != nil {
		return nil, err
	}

	return s.repo.List(ctx, f)
}

func (s *service) Get(ctx context.Context, actor *auth.Principal, id uuid.UUID) (*Booking, error) {
	if actor == nil {
		return nil, apperr.ErrUnauthenticated
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanReadRecord(actor, authz.ReadAllBookings, authz.Resource{OwnerID: b.UserID}); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) UpdateStatus(ctx context.Context, actor *auth.Principal, id uuid.UUID, next string) (*Booking, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateBookingStatus"),
		zap.String("booking_id", id.String()),
	)

	if err := authz.Authorize(actor, authz.AdvanceBookingStatus, authz.Resource{}); err != nil {
		return nil, err
	}

	to, err := ParseStatus(next)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CanTransition(current.Status, to); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, to)
	if err != nil {
		return nil, err
	}

	log.Info("booking status updated",
		zap.String("from", string(current.Status)),
		zap.String("to", string(to)),
	)
	return updated, nil
}
