package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"littlelemon/internal/db"
	"littlelemon/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, search string) ([]*Category, error)
	Create(ctx context.Context, in CreateInput) (*Category, error)
	// Find returns (nil, nil) when nothing matches ref.
	Find(ctx context.Context, ref Ref) (*Category, error)
}

type repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

func (r *repository) List(ctx context.Context, search string) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.String("search", search),
	)

	query := `SELECT id, slug, title FROM categories`
	args := []any{}

	if search != "" {
		query += ` WHERE title ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Title); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) Create(ctx context.Context, in CreateInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("slug", in.Slug),
	)

	var c Category
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (slug, title)
		VALUES ($1, $2)
		RETURNING id, slug, title
	`, in.Slug, in.Title).Scan(&c.ID, &c.Slug, &c.Title)
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Info("category slug already exists")
			return nil, ErrSlugTaken
		}
		log.Error("insert category failed", zap.Error(err))
		return nil, err
	}

	log.Info("category created", zap.Uint("category_id", c.ID))
	return &c, nil
}

func (r *repository) Find(ctx context.Context, ref Ref) (*Category, error) {
	var (
		query string
		arg   any
	)

	switch ref.Kind {
	case ByID:
		query, arg = `SELECT id, slug, title FROM categories WHERE id = $1`, ref.ID
	case ByTitle:
		query, arg = `SELECT id, slug, title FROM categories WHERE title = $1 ORDER BY id LIMIT 1`, ref.Value
	case BySlug:
		query, arg = `SELECT id, slug, title FROM categories WHERE slug = $1`, ref.Value
	default:
		return nil, fmt.Errorf("unknown category ref kind %d", ref.Kind)
	}

	var c Category
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Slug, &c.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("find category failed",
			zap.String("layer", "repository"),
			zap.Int("ref_kind", int(ref.Kind)),
			zap.Error(err),
		)
		return nil, err
	}

	return &c, nil
}
