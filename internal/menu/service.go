package menu

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"littlelemon/internal/access"
	"littlelemon/internal/apperror"
	"littlelemon/internal/category"
	"littlelemon/internal/logger"

	"go.uber.org/zap"
)

// CategoryResolver turns a category lookup into a stored category.
type CategoryResolver interface {
	Resolve(ctx context.Context, lookup category.Lookup) (*category.Category, error)
}

type Service interface {
	List(ctx context.Context, ordering, search string) ([]*MenuItem, error)
	Get(ctx context.Context, id uint) (*MenuItem, error)
	// Find resolves a cart reference: an integer is an id, anything else
	// an exact title.
	Find(ctx context.Context, ref string) (*MenuItem, error)
	Create(ctx context.Context, caller access.Caller, payload map[string]any) (*MenuItem, error)
	Replace(ctx context.Context, caller access.Caller, id uint, payload map[string]any) (*MenuItem, error)
	Update(ctx context.Context, caller access.Caller, id uint, payload map[string]any) (*MenuItem, error)
	Delete(ctx context.Context, caller access.Caller, id uint) error
}

type service struct {
	repo       Repository
	categories CategoryResolver
}

func NewService(repo Repository, categories CategoryResolver) Service {
	return &service{repo: repo, categories: categories}
}

// ParseOrdering reads a comma separated list such as "price,-title".
// Unknown names are dropped.
func ParseOrdering(raw string) []SortField {
	var out []SortField
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		if _, ok := sortColumns[name]; !ok {
			continue
		}
		out = append(out, SortField{Column: name, Desc: desc})
	}
	return out
}

func (s *service) List(ctx context.Context, ordering, search string) ([]*MenuItem, error) {
	return s.repo.List(ctx, ListFilter{
		Search: strings.TrimSpace(search),
		Order:  ParseOrdering(ordering),
	})
}

func (s *service) Get(ctx context.Context, id uint) (*MenuItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.Wrap(ErrItemNotFound, "no MenuItem with id %d", id)
	}
	return item, nil
}

func (s *service) Find(ctx context.Context, ref string) (*MenuItem, error) {
	var (
		item *MenuItem
		err  error
	)

	if id, convErr := strconv.ParseUint(strings.TrimSpace(ref), 10, 64); convErr == nil {
		item, err = s.repo.FindByID(ctx, uint(id))
	} else {
		item, err = s.repo.FindByTitle(ctx, ref)
	}
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.Wrap(ErrItemNotFound, "menu item '%s' not found", ref)
	}
	return item, nil
}

func (s *service) Create(ctx context.Context, caller access.Caller, payload map[string]any) (*MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	if !caller.Is(access.Manager) {
		log.Warn("create menu item forbidden")
		return nil, ErrForbidden
	}

	f, err := validateFull(payload)
	if err != nil {
		return nil, err
	}

	item := &MenuItem{}
	if err := s.apply(ctx, item, f); err != nil {
		return nil, err
	}

	exists, err := s.repo.TitleExists(ctx, item.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, titleTaken(item.Title)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, ErrTitleTaken) {
			return nil, titleTaken(item.Title)
		}
		log.Error("create menu item failed", zap.Error(err))
		return nil, err
	}

	log.Info("menu item created", zap.Uint("menu_item_id", item.ID))
	return item, nil
}

func (s *service) Replace(ctx context.Context, caller access.Caller, id uint, payload map[string]any) (*MenuItem, error) {
	if !caller.Is(access.Manager) {
		return nil, ErrForbidden
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.Wrap(ErrItemNotFound, "Menu item '%d' does not exist", id)
	}

	f, err := validateFull(payload)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, item, f, "Replace"); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Update(ctx context.Context, caller access.Caller, id uint, payload map[string]any) (*MenuItem, error) {
	if !caller.Is(access.Manager) {
		return nil, ErrForbidden
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.Wrap(ErrItemNotFound, "Invalid menu item id: '%d'", id)
	}

	f, err := validatePartial(payload)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, item, f, "Update"); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Delete(ctx context.Context, caller access.Caller, id uint) error {
	if !caller.Is(access.Manager) {
		return ErrForbidden
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.Wrap(ErrItemNotFound, "Menu item does not exist.")
	}

	logger.FromCtx(ctx).Info("menu item deleted", zap.Uint("menu_item_id", id))
	return nil
}

func (s *service) save(ctx context.Context, item *MenuItem, f fields, method string) error {
	if err := s.apply(ctx, item, f); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, item); err != nil {
		if errors.Is(err, ErrTitleTaken) {
			return titleTaken(item.Title)
		}
		logger.FromCtx(ctx).Error("save menu item failed",
			zap.String("layer", "service"),
			zap.String("method", method),
			zap.Uint("menu_item_id", item.ID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// apply copies validated fields onto item, resolving the category.
func (s *service) apply(ctx context.Context, item *MenuItem, f fields) error {
	if f.Category != nil {
		c, err := s.categories.Resolve(ctx, *f.Category)
		if err != nil {
			return err
		}
		item.Category = *c
	}
	if f.Title != nil {
		item.Title = *f.Title
	}
	if f.Price != nil {
		item.Price = *f.Price
	}
	if f.Featured != nil {
		item.Featured = *f.Featured
	}
	return nil
}

func titleTaken(title string) error {
	return apperror.Wrap(ErrTitleTaken, "Menu item '%s' already exists", title)
}
