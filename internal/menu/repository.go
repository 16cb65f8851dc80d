package menu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"littlelemon/internal/db"
	"littlelemon/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*MenuItem, error)
	// FindByID and FindByTitle return (nil, nil) when absent.
	FindByID(ctx context.Context, id uint) (*MenuItem, error)
	FindByTitle(ctx context.Context, title string) (*MenuItem, error)
	TitleExists(ctx context.Context, title string) (bool, error)
	Create(ctx context.Context, m *MenuItem) error
	Save(ctx context.Context, m *MenuItem) error
	Delete(ctx context.Context, id uint) (bool, error)
}

const selectMenuItems = `
	SELECT m.id, m.title, m.price, m.featured, c.id, c.slug, c.title
	FROM menu_items m
	JOIN categories c ON c.id = m.category_id
`

// sortColumns maps the public ordering names to SQL columns.
var sortColumns = map[string]string{
	"category": "m.category_id",
	"title":    "m.title",
	"price":    "m.price",
}

type repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

func scanItem(row interface{ Scan(...any) error }) (*MenuItem, error) {
	var m MenuItem
	err := row.Scan(&m.ID, &m.Title, &m.Price, &m.Featured, &m.Category.ID, &m.Category.Slug, &m.Category.Title)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	query := selectMenuItems
	args := []any{}

	if filter.Search != "" {
		query += ` WHERE c.title ILIKE $1`
		args = append(args, "%"+filter.Search+"%")
	}

	order := make([]string, 0, len(filter.Order)+1)
	for _, f := range filter.Order {
		col, ok := sortColumns[f.Column]
		if !ok {
			continue
		}
		dir := "ASC"
		if f.Desc {
			dir = "DESC"
		}
		order = append(order, col+" "+dir)
	}
	order = append(order, "m.id ASC")
	query += " ORDER BY " + strings.Join(order, ", ")

	log.Debug("Executing List query", zap.String("query", query))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make([]*MenuItem, 0)
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return items, nil
}

func (r *repository) findOne(ctx context.Context, where string, arg any) (*MenuItem, error) {
	m, err := scanItem(r.db.QueryRowContext(ctx, selectMenuItems+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find menu item: %w", err)
	}
	return m, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*MenuItem, error) {
	return r.findOne(ctx, ` WHERE m.id = $1`, id)
}

func (r *repository) FindByTitle(ctx context.Context, title string) (*MenuItem, error) {
	return r.findOne(ctx, ` WHERE m.title = $1 ORDER BY m.id LIMIT 1`, title)
}

func (r *repository) TitleExists(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM menu_items WHERE title = $1)`, title,
	).Scan(&exists)
	return exists, err
}

func (r *repository) Create(ctx context.Context, m *MenuItem) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO menu_items (title, price, featured, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, m.Title, m.Price, m.Featured, m.Category.ID).Scan(&m.ID)
	if db.IsUniqueViolation(err) {
		return ErrTitleTaken
	}
	return err
}

func (r *repository) Save(ctx context.Context, m *MenuItem) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE menu_items
		SET title = $1, price = $2, featured = $3, category_id = $4
		WHERE id = $5
	`, m.Title, m.Price, m.Featured, m.Category.ID, m.ID)
	if db.IsUniqueViolation(err) {
		return ErrTitleTaken
	}
	return err
}

func (r *repository) Delete(ctx context.Context, id uint) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
