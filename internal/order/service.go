package order

import (
	"context"
	"math"

	"voyager-be/internal/apperr"
	"voyager-be/internal/auth"
	"voyager-be/internal/authz"
	"voyager-be/internal/logger"
	"voyager-be/internal/menu"
	"voyager-be/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Catalog prices order lines. menu.Repository satisfies it.
type Catalog interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*menu.Item, error)
}

type Service interface {
	Create(ctx context.Context, actor *auth.Principal, in CreateInput) (*Order, error)
	List(ctx context.Context, actor *auth.Principal, q ListQuery) ([]*Order, error)
	Get(ctx context.Context, actor *auth.Principal, id uuid.UUID) (*Order, error)
	Advance(ctx context.Context, actor *auth.Principal, id uuid.UUID, next string) (*Order, error)
}

// MaxQuantity caps a single order line.
const MaxQuantity = 1000

type service struct {
	repo    Repository
	catalog Catalog
}

func NewService(repo Repository, catalog Catalog) Service {
	return &service{repo: repo, catalog: catalog}
}

func (s *service) Create(ctx context.Context, actor *auth.Principal, in CreateInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
	)

	if err := authz.Authorize(actor, authz.CreateOrder, authz.Resource{}); err != nil {
		return nil, err
	}

	orderType, err := menu.ParseCategory(in.Type)
	if err != nil {
		return nil, ErrInvalidType
	}
	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}

	ids := make([]uuid.UUID, len(in.Items))
	for i, line := range in.Items {
		id, err := uuid.Parse(line.ItemID)
		if err != nil {
			return nil, apperr.Invalid("items[%d]: invalid itemId", i)
		}
		if line.Quantity <= 0 {
			return nil, apperr.Invalid("items[%d]: quantity must be positive", i)
		}
		if line.Quantity > MaxQuantity {
			return nil, apperr.Invalid("items[%d]: quantity must not exceed %d", i, MaxQuantity)
		}
		if line.Price != nil && (*line.Price < 0 || math.IsNaN(*line.Price)) {
			return nil, apperr.Invalid("items[%d]: price must not be negative", i)
		}
		ids[i] = id
	}

	catalog, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		log.Error("catalog lookup failed", zap.Error(err))
		return nil, err
	}

	items := make([]Item, len(in.Items))
	var totalCents int64
	for i, line := range in.Items {
		entry, ok := catalog[ids[i]]
		if !ok {
			return nil, apperr.Invalid("items[%d]: menu item %s does not exist", i, ids[i])
		}
		if entry.Category != orderType {
			return nil, apperr.Invalid("items[%d]: %s is not a %s item", i, entry.ItemName, orderType)
		}
		if line.Price != nil && cents(*line.Price) != cents(entry.Price) {
			return nil, apperr.Invalid("items[%d]: price %.2f does not match catalog price %.2f", i, *line.Price, entry.Price)
		}

		items[i] = Item{ItemID: entry.ID, ItemName: entry.ItemName, Quantity: line.Quantity, Price: entry.Price}
		unit := cents(entry.Price)
		if unit > (math.MaxInt64-totalCents)/int64(line.Quantity) {
			return nil, apperr.Invalid("items[%d]: order total is too large", i)
		}
		totalCents += unit * int64(line.Quantity)
	}

	if in.TotalAmount != nil && cents(*in.TotalAmount) != totalCents {
		log.Warn("order total mismatch",
			zap.Float64("client_total", *in.TotalAmount),
			zap.Int64("computed_cents", totalCents),
		)
		return nil, ErrTotalMismatch
	}

	o := &Order{
		ID:          uuid.New(),
		UserID:      actor.UserID,
		User:        &user.Summary{ID: actor.UserID, Name: actor.Name, Email: actor.Email},
		Items:       items,
		Type:        orderType,
		Status:      StatusPending,
		TotalAmount: float64(totalCents) / 100,
	}

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", created.ID.String()),
		zap.String("type", string(created.Type)),
		zap.Float64("total", created.TotalAmount),
	)
	return created, nil
}

// List scopes the query to what actor may see: voyagers get their own
// orders, cooks and supervisors their own order type, everyone else all.
func (s *service) List(ctx context.Context, actor *auth.Principal, q ListQuery) ([]*Order, error) {
	if actor == nil {
		return nil, apperr.ErrUnauthenticated
	}

	var f ListFilter
	if q.Type != "" {
		t, err := menu.ParseCategory(q.Type)
		if err != nil {
			return nil, ErrInvalidType
		}
		f.Type = t
	}
	if q.Status != "" {
		st, err := ParseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		f.Status = st
	}

	if actor.Role == auth.RoleVoyager {
		if err := authz.Authorize(actor, authz.ReadOwnRecords, authz.Resource{OwnerID: actor.UserID}); err != nil {
			return nil, err
		}
		uid := actor.UserID
		f.UserID = &uid
	} else {
		if err := authz.Authorize(actor, authz.ReadAllOrders, authz.Resource{OrderType: string(f.Type)}); err != nil {
			return nil, err
		}
		if own := authz.StaffOrderType(actor.Role); own != "" {
			f.Type = menu.Category(own)
		}
	}

	return s.repo.List(ctx, f)
}

func (s *service) Get(ctx context.Context, actor *auth.Principal, id uuid.UUID) (*Order, error) {
	if actor == nil {
		return nil, apperr.ErrUnauthenticated
	}

	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := authz.Resource{OwnerID: o.UserID, OrderType: string(o.Type)}
	if err := authz.CanReadRecord(actor, authz.ReadAllOrders, res); err != nil {
		return nil, err
	}
	return o, nil
}

// Advance moves an order one step along its workflow. The write is
// conditional on the status read here, so two staff racing on the same
// order cannot both succeed.
func (s *service) Advance(ctx context.Context, actor *auth.Principal, id uuid.UUID, next string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdvanceOrder"),
		zap.String("order_id", id.String()),
	)

	if err := authz.Authorize(actor, authz.AdvanceOrderStatus, authz.Resource{}); err != nil {
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
		log.Info("rejected order transition",
			zap.String("from", string(current.Status)),
			zap.String("to", string(to)),
		)
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, to)
	if err != nil {
		return nil, err
	}

	log.Info("order advanced",
		zap.String("from", string(current.Status)),
		zap.String("to", string(to)),
	)
	return updated, nil
}

func cents(v float64) int64 {
	c := math.Round(v * 100)
	if c >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(c)
}
