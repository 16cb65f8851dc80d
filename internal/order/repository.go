package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"littlelemon/internal/db"
	"littlelemon/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	// FindByID returns (nil, nil) when the order does not exist.
	FindByID(ctx context.Context, id uint) (*Order, error)
	Save(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, error)

	CreateItem(ctx context.Context, it *OrderItem) error
	// FindItem returns (nil, nil) when the item is not part of the order.
	FindItem(ctx context.Context, orderID, itemID uint) (*OrderItem, error)
	SaveItem(ctx context.Context, it *OrderItem) error
	// ListItems groups the items of the given orders by order id.
	ListItems(ctx context.Context, orderIDs []uint) (map[uint][]*OrderItem, error)
}

const orderColumns = `id, user_id, delivery_crew_id, status, total, date`

type repository struct {
	db db.DBTX
}

// NewRepository accepts a pool or a transaction.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var (
		o    Order
		crew sql.NullInt64
	)
	if err := row.Scan(&o.ID, &o.UserID, &crew, &o.Status, &o.Total, &o.Date); err != nil {
		return nil, err
	}
	if crew.Valid {
		id := uint(crew.Int64)
		o.DeliveryCrewID = &id
	}
	return &o, nil
}

func crewArg(id *uint) any {
	if id == nil {
		return nil
	}
	return int64(*id)
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, delivery_crew_id, status, total, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, o.UserID, crewArg(o.DeliveryCrewID), o.Status, o.Total, o.Date).Scan(&o.ID)
	if err != nil {
		logger.FromCtx(ctx).Error("insert order failed",
			zap.String("layer", "repository"),
			zap.String("method", "Create"),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return o, nil
}

func (r *repository) Save(ctx context.Context, o *Order) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET delivery_crew_id = $1, status = $2, total = $3
		WHERE id = $4
	`, crewArg(o.DeliveryCrewID), o.Status, o.Total, o.ID)
	if err != nil {
		logger.FromCtx(ctx).Error("update order failed",
			zap.String("layer", "repository"),
			zap.Uint("order_id", o.ID),
			zap.Error(err),
		)
	}
	return err
}

func (r *repository) Delete(ctx context.Context, id uint) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	var (
		where []string
		args  []any
	)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.DeliveryCrewID != nil {
		args = append(args, *filter.DeliveryCrewID)
		where = append(where, fmt.Sprintf("delivery_crew_id = $%d", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY user_id ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

func (r *repository) CreateItem(ctx context.Context, it *OrderItem) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, menuitem_id, quantity, unit_price, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, it.OrderID, it.MenuItemID, it.Quantity, it.UnitPrice, it.Price).Scan(&it.ID)
}

func (r *repository) FindItem(ctx context.Context, orderID, itemID uint) (*OrderItem, error) {
	var it OrderItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, menuitem_id, quantity, unit_price, price
		FROM order_items
		WHERE order_id = $1 AND id = $2
	`, orderID, itemID).Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Quantity, &it.UnitPrice, &it.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order item: %w", err)
	}
	return &it, nil
}

func (r *repository) SaveItem(ctx context.Context, it *OrderItem) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE order_items
		SET menuitem_id = $1, quantity = $2, unit_price = $3, price = $4
		WHERE id = $5
	`, it.MenuItemID, it.Quantity, it.UnitPrice, it.Price, it.ID)
	return err
}

func (r *repository) ListItems(ctx context.Context, orderIDs []uint) (map[uint][]*OrderItem, error) {
	out := make(map[uint][]*OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}

	keys := make([]int64, 0, len(orderIDs))
	for _, id := range orderIDs {
		keys = append(keys, int64(id))
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, menuitem_id, quantity, unit_price, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id ASC
	`, pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Quantity, &it.UnitPrice, &it.Price); err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], &it)
	}
	return out, rows.Err()
}
