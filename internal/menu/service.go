package menu

import (
	"context"
	"math"
	"strings"

	"voyager-be/internal/apperr"
	"voyager-be/internal/auth"
	"voyager-be/internal/authz"
	"voyager-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, category string) ([]*Item, error)
	Get(ctx context.Context, id uuid.UUID) (*Item, error)
	Create(ctx context.Context, actor *auth.Principal, in CreateInput) (*Item, error)
	Update(ctx context.Context, actor *auth.Principal, id uuid.UUID, in UpdateInput) (*Item, error)
	Delete(ctx context.Context, actor *auth.Principal, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, category string) ([]*Item, error) {
	var c Category
	if category != "" {
		parsed, err := ParseCategory(category)
		if err != nil {
			return nil, err
		}
		c = parsed
	}
	return s.repo.List(ctx, c)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Create(ctx context.Context, actor *auth.Principal, in CreateInput) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateMenuItem"),
	)

	if err := authz.Authorize(actor, authz.ManageCatalog, authz.Resource{}); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.ItemName)
	if name == "" {
		return nil, apperr.Invalid("itemName is required")
	}
	category, err := ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	if in.Price == nil {
		return nil, apperr.Invalid("price is required")
	}
	if err := validatePrice(*in.Price); err != nil {
		return nil, err
	}

	available := true
	if in.Available != nil {
		available = *in.Available
	}

	it, err := s.repo.Create(ctx, &Item{
		ID:          uuid.New(),
		ItemName:    name,
		Category:    category,
		Subcategory: strings.TrimSpace(in.Subcategory),
		Price:       *in.Price,
		Description: in.Description,
		Available:   available,
	})
	if err != nil {
		return nil, err
	}

	log.Info("menu item created", zap.String("item_id", it.ID.String()))
	return it, nil
}

func (s *service) Update(ctx context.Context, actor *auth.Principal, id uuid.UUID, in UpdateInput) (*Item, error) {
	if err := authz.Authorize(actor, authz.ManageCatalog, authz.Resource{}); err != nil {
		return nil, err
	}

	var p UpdateParams
	if in.ItemName != nil {
		name := strings.TrimSpace(*in.ItemName)
		if name == "" {
			return nil, apperr.Invalid("itemName cannot be empty")
		}
		p.ItemName = &name
	}
	if in.Category != nil {
		c, err := ParseCategory(*in.Category)
		if err != nil {
			return nil, err
		}
		p.Category = &c
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return nil, err
		}
		p.Price = in.Price
	}
	p.Subcategory = in.Subcategory
	p.Description = in.Description
	p.Available = in.Available

	it, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("menu item updated", zap.String("item_id", id.String()))
	return it, nil
}

func (s *service) Delete(ctx context.Context, actor *auth.Principal, id uuid.UUID) error {
	if err := authz.Authorize(actor, authz.ManageCatalog, authz.Resource{}); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("menu item deleted", zap.String("item_id", id.String()))
	return nil
}

func validatePrice(p float64) error {
	if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidPrice
	}
	return nil
}
