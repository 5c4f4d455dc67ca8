package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type Repository interface {
	OrderStatusCounts(ctx context.Context, s Scope) (map[string]int, error)
	BookingStatusCounts(ctx context.Context, s Scope) (map[string]int, error)
	BookingServiceCounts(ctx context.Context) (map[string]int, error)
	// Spend sums order totals and the price of bookings that were not cancelled.
	Spend(ctx context.Context, s Scope) (float64, error)
	Totals(ctx context.Context) (Totals, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func where(s Scope, includeType bool) (string, []any) {
	conds := []string{}
	args := []any{}
	if s.UserID != nil {
		args = append(args, *s.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if includeType && s.OrderType != "" {
		args = append(args, s.OrderType)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *repository) groupCount(ctx context.Context, query string, args ...any) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, rows.Err()
}

func (r *repository) OrderStatusCounts(ctx context.Context, s Scope) (map[string]int, error) {
	w, args := where(s, true)
	out, err := r.groupCount(ctx, "SELECT status, COUNT(*) FROM orders"+w+" GROUP BY status", args...)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	return out, nil
}

func (r *repository) BookingStatusCounts(ctx context.Context, s Scope) (map[string]int, error) {
	w, args := where(s, false)
	out, err := r.groupCount(ctx, "SELECT status, COUNT(*) FROM bookings"+w+" GROUP BY status", args...)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	return out, nil
}

func (r *repository) BookingServiceCounts(ctx context.Context) (map[string]int, error) {
	out, err := r.groupCount(ctx, "SELECT service, COUNT(*) FROM bookings GROUP BY service")
	if err != nil {
		return nil, fmt.Errorf("count bookings by service: %w", err)
	}
	return out, nil
}

func (r *repository) Spend(ctx context.Context, s Scope) (float64, error) {
	w, args := where(s, false)
	bookingWhere := " WHERE status <> 'cancelled'"
	if w != "" {
		bookingWhere = w + " AND status <> 'cancelled'"
	}

	query := `
		SELECT
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders` + w + `) +
			(SELECT COALESCE(SUM(price), 0) FROM bookings` + bookingWhere + `)`

	var total float64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum spend: %w", err)
	}
	return total, nil
}

func (r *repository) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM menu_items),
			(SELECT COUNT(DISTINCT user_id) FROM (
				SELECT user_id FROM orders
				UNION
				SELECT user_id FROM bookings
			) active)`,
	).Scan(&t.Users, &t.MenuItems, &t.ActiveUsers)
	if err != nil {
		return Totals{}, fmt.Errorf("load totals: %w", err)
	}
	return t, nil
}
