package cart

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"littlelemon/internal/access"
	"littlelemon/internal/apperror"
	"littlelemon/internal/logger"
	"littlelemon/internal/menu"
	"littlelemon/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MenuFinder resolves the menuitem field of an add request.
type MenuFinder interface {
	Find(ctx context.Context, ref string) (*menu.MenuItem, error)
}

// Service defines the business logic for carts. Every operation works on
// the caller's own cart and requires the Customer role.
type Service interface {
	List(ctx context.Context, caller access.Caller) ([]*Entry, error)
	Add(ctx context.Context, caller access.Caller, payload map[string]any) (*Entry, error)
	Clear(ctx context.Context, caller access.Caller) (string, error)
}

type service struct {
	repo Repository
	menu MenuFinder
}

func NewService(repo Repository, menu MenuFinder) Service {
	return &service{repo: repo, menu: menu}
}

func (s *service) List(ctx context.Context, caller access.Caller) ([]*Entry, error) {
	if !caller.Is(access.Customer) {
		return nil, ErrForbidden
	}
	return s.repo.ListByUser(ctx, caller.UserID)
}

func (s *service) Add(ctx context.Context, caller access.Caller, payload map[string]any) (*Entry, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Add"),
	)

	if !caller.Is(access.Customer) {
		return nil, ErrForbidden
	}

	rawItem, ok := payload["menuitem"]
	if !ok {
		return nil, apperror.Wrap(ErrMissingField, "Missing named variable 'menuitem'")
	}

	item, err := s.menu.Find(ctx, utils.Stringify(rawItem))
	if err != nil {
		return nil, err
	}

	rawQty, ok := payload["quantity"]
	if !ok {
		return nil, apperror.Wrap(ErrMissingField, "Missing named variable 'quantity'")
	}

	qtyStr := utils.Stringify(rawQty)
	qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
	if err != nil || qty <= 0 || qty > MaxQuantity {
		return nil, apperror.Wrap(ErrInvalidQuantity, "quantity value '%s' invalid.", qtyStr)
	}

	entry := &Entry{
		UserID:     caller.UserID,
		MenuItemID: item.ID,
		Quantity:   qty,
		UnitPrice:  item.Price,
		Price:      item.Price.Mul(decimal.NewFromInt(int64(qty))),
	}
	if !WithinAmount(entry.Price) {
		return nil, apperror.Wrap(ErrInvalidQuantity, "quantity value '%s' invalid.", qtyStr)
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	log.Info("cart entry added",
		zap.Uint("menuitem_id", entry.MenuItemID),
		zap.Int("quantity", entry.Quantity),
	)
	return entry, nil
}

func (s *service) Clear(ctx context.Context, caller access.Caller) (string, error) {
	if !caller.Is(access.Customer) {
		return "", ErrForbidden
	}

	n, err := s.repo.DeleteByUser(ctx, caller.UserID)
	if err != nil {
		return "", err
	}

	logger.FromCtx(ctx).Info("cart cleared", zap.Int64("entries", n))
	return fmt.Sprintf("cart has been emptied for user '%s'", caller.Username), nil
}
