package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"voyager-be/internal/logger"
	"voyager-be/internal/user"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) (*Order, error)
	List(ctx context.Context, f ListFilter) ([]*Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// UpdateStatus moves the order to next only if it is still in expected.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next Status) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderSelect = `
	SELECT o.id, o.user_id, u.name, u.email, o.type, o.status, o.total_amount, o.created_at, o.updated_at
	FROM orders o
	JOIN users u ON u.id = o.user_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (*Order, error) {
	var o Order
	owner := &user.Summary{}
	err := row.Scan(
		&o.ID, &o.UserID, &owner.Name, &owner.Email,
		&o.Type, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	owner.ID = o.UserID
	o.User = owner
	o.Items = []Item{}
	return &o, nil
}

func (r *repository) Create(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("order_id", o.ID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, user_id, type, status, total_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		o.ID, o.UserID, o.Type, o.Status, o.TotalAmount,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("db: failed to insert order", zap.Error(err))
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for i, it := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, item_id, position, quantity, price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), o.ID, it.ItemID, i, it.Quantity, it.Price,
		)
		if err != nil {
			log.Error("db: failed to insert order item", zap.Int("position", i), zap.Error(err))
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}
	return o, nil
}

// List returns orders newest first, each with its owner and item lines.
func (r *repository) List(ctx context.Context, f ListFilter) ([]*Order, error) {
	where := []string{}
	args := []any{}
	if f.UserID != nil {
		args = append(args, *f.UserID)
		where = append(where, fmt.Sprintf("o.user_id = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("o.type = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("o.status = $%d", len(args)))
	}

	query := orderSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY o.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("db: list orders failed", zap.Error(err))
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []*Order{}
	byID := map[uuid.UUID]*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if err := r.loadItems(ctx, byID); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, orderSelect+" WHERE o.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}

	if err := r.loadItems(ctx, map[uuid.UUID]*Order{o.ID: o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) loadItems(ctx context.Context, byID map[uuid.UUID]*Order) error {
	if len(byID) == 0 {
		return nil
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id.String())
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.order_id, oi.item_id, COALESCE(m.item_name, ''), oi.quantity, oi.price
		FROM order_items oi
		LEFT JOIN menu_items m ON m.id = oi.item_id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY oi.order_id, oi.position`,
		pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uuid.UUID
		var it Item
		if err := rows.Scan(&orderID, &it.ItemID, &it.ItemName, &it.Quantity, &it.Price); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next Status) (*Order, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`,
		next, id, expected,
	)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if n == 0 {
		var current Status
		err := r.db.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("check order status: %w", err)
		}
		logger.FromCtx(ctx).Warn("order status changed concurrently",
			zap.String("order_id", id.String()),
			zap.String("expected", string(expected)),
			zap.String("actual", string(current)),
		)
		return nil, ErrStatusConflict
	}

	return r.FindByID(ctx, id)
}
