package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"voyager-be/internal/apperr"
	"voyager-be/internal/auth"
	"voyager-be/internal/authz"
	"voyager-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, in CreateInput) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	Create(ctx context.Context, actor *auth.Principal, in CreateInput) (*User, error)
	List(ctx context.Context, actor *auth.Principal) ([]*User, error)
	Get(ctx context.Context, actor *auth.Principal, id uuid.UUID) (*User, error)
	Update(ctx context.Context, actor *auth.Principal, id uuid.UUID, in UpdateInput) (*User, error)
	Delete(ctx context.Context, actor *auth.Principal, id uuid.UUID) error
	// SessionPrincipal re-reads the stored identity behind a session.
	SessionPrincipal(ctx context.Context, id uuid.UUID) (auth.Principal, error)
}

type Options struct {
	BcryptCost int
	// OpenRoleRegistration lets self-registration pick any role.
	OpenRoleRegistration bool
}

type service struct {
	repo Repository
	opts Options
}

func NewService(repo Repository, opts Options) Service {
	return &service{repo: repo, opts: opts}
}

func (s *service) Register(ctx context.Context, in CreateInput) (*User, error) {
	if in.Role == "" {
		in.Role = string(auth.RoleVoyager)
	}
	if !s.opts.OpenRoleRegistration && in.Role != string(auth.RoleVoyager) {
		logger.FromCtx(ctx).Warn("self-registration with staff role rejected", zap.String("role", in.Role))
		return nil, ErrRoleNotOpen
	}
	return s.create(ctx, in)
}

func (s *service) Create(ctx context.Context, actor *auth.Principal, in CreateInput) (*User, error) {
	if err := authz.Authorize(actor, authz.ManageUsers, authz.Resource{}); err != nil {
		return nil, err
	}
	return s.create(ctx, in)
}

func (s *service) create(ctx context.Context, in CreateInput) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateUser"),
	)

	u, err := normalize(in)
	if err != nil {
		return nil, err
	}

	hashed, err := HashPassword(in.Password, s.opts.BcryptCost)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}
	u.PasswordHash = hashed

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("failed to create user", zap.String("email", u.Email), zap.Error(err))
		}
		return nil, err
	}

	log.Info("user created",
		zap.String("user_id", created.ID.String()),
		zap.String("role", string(created.Role)),
	)
	return created, nil
}

func normalize(in CreateInput) (*User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" || email == "" || in.Password == "" {
		return nil, apperr.Invalid("name, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Invalid("invalid email address")
	}

	role, err := auth.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	return &User{ID: uuid.New(), Name: name, Email: email, Role: role}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "Login"))

	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, ErrUserNotFound) {
		log.Info("login failed: email not found")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		log.Error("login lookup failed", zap.Error(err))
		return nil, err
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Info("login failed: password mismatch", zap.String("user_id", u.ID.String()))
		return nil, ErrInvalidCredentials
	}

	log.Info("login succeeded", zap.String("user_id", u.ID.String()))
	return u, nil
}

func (s *service) List(ctx context.Context, actor *auth.Principal) ([]*User, error) {
	if err := authz.Authorize(actor, authz.ListUsers, authz.Resource{}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, actor *auth.Principal, id uuid.UUID) (*User, error) {
	if err := authz.Authorize(actor, authz.ListUsers, authz.Resource{}); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) SessionPrincipal(ctx context.Context, id uuid.UUID) (auth.Principal, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return auth.Principal{}, err
	}
	return u.Principal(), nil
}

func (s *service) Update(ctx context.Context, actor *auth.Principal, id uuid.UUID, in UpdateInput) (*User, error) {
	if err := authz.Authorize(actor, authz.ManageUsers, authz.Resource{}); err != nil {
		return nil, err
	}

	var p UpdateParams
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Invalid("name cannot be empty")
		}
		p.Name = &name
	}
	if in.Role != nil {
		role, err := auth.ParseRole(*in.Role)
		if err != nil {
			return nil, err
		}
		if id == actor.UserID && role != actor.Role {
			return nil, ErrSelfDemote
		}
		p.Role = &role
	}

	u, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("user updated", zap.String("target_user_id", id.String()))
	return u, nil
}

func (s *service) Delete(ctx context.Context, actor *auth.Principal, id uuid.UUID) error {
	if err := authz.Authorize(actor, authz.DeleteUser, authz.Resource{TargetUserID: id}); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("user deleted", zap.String("target_user_id", id.String()))
	return nil
}
