package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"voyager-be/internal/logger"
	"voyager-be/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) (*Booking, error)
	List(ctx context.Context, f ListFilter) ([]*Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	// UpdateStatus moves the booking to next only if it is still in expected.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next Status) (*Booking, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const bookingSelect = `
	SELECT b.id, b.user_id, u.name, u.email, b.service, b.details, b.status,
	       b.booking_date, b.price, b.created_at, b.updated_at
	FROM bookings b
	JOIN users u ON u.id = b.user_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(row scanner) (*Booking, error) {
	var b Booking
	var raw []byte
	owner := &user.Summary{}
	err := row.Scan(
		&b.ID, &b.UserID, &owner.Name, &owner.Email, &b.Service, &raw, &b.Status,
		&b.BookingDate, &b.Price, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	d, err := loadDetails(b.Service, raw)
	if err != nil {
		return nil, err
	}
	b.Details = d
	owner.ID = b.UserID
	b.User = owner
	return &b, nil
}

func (r *repository) Create(ctx context.Context, b *Booking) (*Booking, error) {
	details, err := json.Marshal(b.Details)
	if err != nil {
		return nil, fmt.Errorf("encode booking details: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO bookings (id, user_id, service, details, status, booking_date, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		b.ID, b.UserID, b.Service, details, b.Status, b.BookingDate, b.Price,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert booking", zap.Error(err))
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return b, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]*Booking, error) {
	where := []string{}
	args := []any{}
	if f.UserID != nil {
		args = append(args, *f.UserID)
		where = append(where, fmt.Sprintf("b.user_id = $%d", len(args)))
	}
	if f.Service != "" {
		args = append(args, f.Service)
		where = append(where, fmt.Sprintf("b.service = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("b.status = $%d", len(args)))
	}

	query := bookingSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY b.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("db: list bookings failed", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, bookingSelect+" WHERE b.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return b, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next Status) (*Booking, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bookings SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`,
		next, id, expected,
	)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	if n == 0 {
		var exists bool
		err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("check booking: %w", err)
		}
		if !exists {
			return nil, ErrBookingNotFound
		}
		return nil, ErrStatusConflict
	}

	return r.FindByID(ctx, id)
}
