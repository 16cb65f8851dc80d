package category

import (
	"context"
	"strings"

	"littlelemon/internal/logger"
	"littlelemon/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, search string) ([]*Category, error)
	Create(ctx context.Context, in CreateInput) (*Category, error)
	// Resolve walks the lookup and returns the first category found, or
	// the lookup's failure when none matches.
	Resolve(ctx context.Context, lookup Lookup) (*Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, search string) ([]*Category, error) {
	return s.repo.List(ctx, strings.TrimSpace(search))
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		log.Warn("create category rejected: empty title")
		return nil, ErrTitleRequired
	}

	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = utils.Slugify(in.Title)
	}

	return s.repo.Create(ctx, in)
}

func (s *service) Resolve(ctx context.Context, lookup Lookup) (*Category, error) {
	for _, ref := range lookup.Refs {
		c, err := s.repo.Find(ctx, ref)
		if err != nil {
			return nil, err
		}
		if c != nil {
			return c, nil
		}
	}

	if lookup.Failure == nil {
		return nil, ErrInvalidCategory
	}
	return nil, lookup.Failure
}
