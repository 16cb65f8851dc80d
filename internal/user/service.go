package user

import (
	"context"
	"strconv"
	"strings"

	"littlelemon/internal/access"
	"littlelemon/internal/apperror"
	"littlelemon/internal/auth"
	"littlelemon/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, username, password string) (string, error)

	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*User, error)

	// Group management is limited to managers.
	ListGroup(ctx context.Context, caller access.Caller, group string) ([]*User, error)
	AssignToGroup(ctx context.Context, caller access.Caller, group string, ref Ref) (*User, error)
	RemoveFromGroup(ctx context.Context, caller access.Caller, group string, userID uint) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, ErrMissingCredentials
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &User{
		Username:  in.Username,
		Email:     strings.TrimSpace(in.Email),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hashed,
	}

	// New accounts start as customers.
	if err := s.repo.Create(ctx, u, access.GroupCustomer); err != nil {
		return nil, err
	}

	log.Info("register service completed", zap.Uint("new_user_id", u.ID))
	return u, nil
}

func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", err
	}
	if u == nil {
		log.Info("login failed: unknown username")
		return "", ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(password, u.Password) {
		log.Info("login failed: password mismatch", zap.Uint("target_user_id", u.ID))
		return "", ErrInvalidCredentials
	}

	return auth.GenerateJWT(u.ID, u.Username)
}

func (s *service) FindByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) FindByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *service) FindByIDs(ctx context.Context, ids []uint) (map[uint]*User, error) {
	return s.repo.FindByIDs(ctx, ids)
}

func (s *service) ListGroup(ctx context.Context, caller access.Caller, group string) ([]*User, error) {
	if !caller.Is(access.Manager) {
		return nil, ErrForbidden
	}
	return s.repo.ListGroupMembers(ctx, group)
}

func (s *service) AssignToGroup(ctx context.Context, caller access.Caller, group string, ref Ref) (*User, error) {
	if !caller.Is(access.Manager) {
		return nil, ErrForbidden
	}

	u, err := s.resolveRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddToGroup(ctx, u.ID, group); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("user added to group",
		zap.Uint("target_user_id", u.ID),
		zap.String("group", group),
	)
	return u, nil
}

func (s *service) RemoveFromGroup(ctx context.Context, caller access.Caller, group string, userID uint) (*User, error) {
	if !caller.Is(access.Manager) {
		return nil, ErrForbidden
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.Wrap(ErrUserNotFound, "No user found with id: '%d'", userID)
	}

	if err := s.repo.RemoveFromGroup(ctx, u.ID, group); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("user removed from group",
		zap.Uint("target_user_id", u.ID),
		zap.String("group", group),
	)
	return u, nil
}

func (s *service) resolveRef(ctx context.Context, ref Ref) (*User, error) {
	switch {
	case ref.ID != nil:
		raw := *ref.ID
		id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, apperror.Wrap(ErrUserNotFound, "No user found with id: '%s'", raw)
		}
		u, err := s.repo.FindByID(ctx, uint(id))
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, apperror.Wrap(ErrUserNotFound, "No user found with id: '%s'", raw)
		}
		return u, nil

	case ref.Username != nil:
		u, err := s.repo.FindByUsername(ctx, *ref.Username)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, apperror.Wrap(ErrUserNotFound, "No user found with username: '%s'", *ref.Username)
		}
		return u, nil
	}

	return nil, ErrMissingUserRef
}
