package access

import (
	"context"
	"errors"
	"fmt"

	"littlelemon/internal/logger"

	"go.uber.org/zap"
)

var ErrUnknownUser = errors.New("access: unknown user")

// Account is the membership view of a user.
type Account struct {
	ID          uint
	Username    string
	IsSuperuser bool
	Groups      []string
}

// MembershipStore loads an account with its group names. It returns
// (nil, nil) when the user does not exist.
type MembershipStore interface {
	GetAccount(ctx context.Context, userID uint) (*Account, error)
}

type Resolver struct {
	store MembershipStore
}

func NewResolver(store MembershipStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve loads the caller's roles once for the lifetime of a request.
func (r *Resolver) Resolve(ctx context.Context, userID uint) (Caller, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "access"),
		zap.String("method", "Resolve"),
		zap.Uint("user_id", userID),
	)

	acc, err := r.store.GetAccount(ctx, userID)
	if err != nil {
		log.Error("failed to load account", zap.Error(err))
		return Caller{}, fmt.Errorf("resolve caller: %w", err)
	}
	if acc == nil {
		log.Warn("token refers to unknown user")
		return Caller{}, ErrUnknownUser
	}

	caller := Caller{
		UserID:   acc.ID,
		Username: acc.Username,
		Roles:    RoleSetFromGroups(acc.IsSuperuser, acc.Groups),
	}
	log.Debug("caller resolved", zap.Strings("groups", acc.Groups), zap.Bool("superuser", acc.IsSuperuser))
	return caller, nil
}
