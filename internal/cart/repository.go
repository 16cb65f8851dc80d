package cart

import (
	"context"

	"littlelemon/internal/db"
	"littlelemon/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListByUser(ctx context.Context, userID uint) ([]*Entry, error)
	Create(ctx context.Context, e *Entry) error
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
}

type repository struct {
	db db.DBTX
}

// NewRepository accepts a pool or a transaction.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Entry, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByUser"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, menuitem_id, quantity, unit_price, price
		FROM cart_entries
		WHERE user_id = $1
		ORDER BY id ASC
	`, userID)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.MenuItemID, &e.Quantity, &e.UnitPrice, &e.Price); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return entries, nil
}

func (r *repository) Create(ctx context.Context, e *Entry) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_entries (user_id, menuitem_id, quantity, unit_price, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, e.UserID, e.MenuItemID, e.Quantity, e.UnitPrice, e.Price).Scan(&e.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrAlreadyInCart
		}
		logger.FromCtx(ctx).Error("insert cart entry failed",
			zap.String("layer", "repository"),
			zap.Uint("menuitem_id", e.MenuItemID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *repository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_entries WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
