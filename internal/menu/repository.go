package menu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"voyager-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, it *Item) (*Item, error)
	List(ctx context.Context, category Category) ([]*Item, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Item, error)
	Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const itemColumns = "id, item_name, category, subcategory, price, description, available, created_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*Item, error) {
	var it Item
	err := row.Scan(
		&it.ID, &it.ItemName, &it.Category, &it.Subcategory,
		&it.Price, &it.Description, &it.Available, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) Create(ctx context.Context, it *Item) (*Item, error) {
	query := `
		INSERT INTO menu_items (id, item_name, category, subcategory, price, description, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + itemColumns

	created, err := scanItem(r.db.QueryRowContext(ctx, query,
		it.ID, it.ItemName, it.Category, it.Subcategory, it.Price, it.Description, it.Available,
	))
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert menu item", zap.Error(err))
		return nil, fmt.Errorf("insert menu item: %w", err)
	}
	return created, nil
}

// List returns items sorted by name. An empty category lists everything.
func (r *repository) List(ctx context.Context, category Category) ([]*Item, error) {
	query := `SELECT ` + itemColumns + ` FROM menu_items`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY item_name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("db: list menu items failed", zap.Error(err))
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu items: %w", err)
	}
	return items, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	query := `SELECT ` + itemColumns + ` FROM menu_items WHERE id = $1`

	it, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find menu item: %w", err)
	}
	return it, nil
}

// FindByIDs loads several items at once. Missing ids are simply absent from the result.
func (r *repository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Item, error) {
	out := make(map[uuid.UUID]*Item, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	query := `SELECT ` + itemColumns + ` FROM menu_items WHERE id = ANY($1::uuid[])`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(strIDs))
	if err != nil {
		return nil, fmt.Errorf("find menu items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		out[it.ID] = it
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu items: %w", err)
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*Item, error) {
	if p.empty() {
		return r.FindByID(ctx, id)
	}

	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.ItemName != nil {
		add("item_name", *p.ItemName)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.Subcategory != nil {
		add("subcategory", *p.Subcategory)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Available != nil {
		add("available", *p.Available)
	}

	set = append(set, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE menu_items SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args), itemColumns,
	)

	it, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	return it, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation {
			return ErrItemInUse
		}
		return fmt.Errorf("delete menu item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}
