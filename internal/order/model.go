package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type State int

const (
	StatePending State = iota
	StateAssigned
	StateDelivered
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAssigned:
		return "assigned"
	case StateDelivered:
		return "delivered"
	default:
		return "unknown"
	}
}

// Order is placed from a customer's cart. Total always equals the sum of
// its items' prices and is adjusted by deltas, never recomputed.
type Order struct {
	ID             uint
	UserID         uint
	DeliveryCrewID *uint
	Status         bool
	Total          decimal.Decimal
	Date           time.Time
	Items          []*OrderItem
}

type OrderItem struct {
	ID         uint
	OrderID    uint
	MenuItemID uint
	Quantity   int
	UnitPrice  decimal.Decimal
	Price      decimal.Decimal
}

// State derives the lifecycle position. Status true wins even when no
// crew was ever assigned.
func (o *Order) State() State {
	switch {
	case o.Status:
		return StateDelivered
	case o.DeliveryCrewID != nil:
		return StateAssigned
	default:
		return StatePending
	}
}

// CheckEditable reports whether the owning customer may still change the
// order's items. Only the crew assignment matters, status is ignored.
func (o *Order) CheckEditable() error {
	if o.DeliveryCrewID == nil {
		return nil
	}
	if o.Status {
		return ErrDelivered
	}
	return ErrInDelivery
}

// AddItem appends an item and accumulates its price into the total.
func (o *Order) AddItem(it *OrderItem) {
	it.OrderID = o.ID
	o.Items = append(o.Items, it)
	o.Total = o.Total.Add(it.Price)
}

// Reprice sets a new unit price and quantity on the item and returns the
// price change to apply to the order total.
func (it *OrderItem) Reprice(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	old := it.Price
	it.UnitPrice = unitPrice
	it.Quantity = quantity
	it.Price = unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return it.Price.Sub(old)
}

// ListFilter narrows List. A nil field means no constraint.
type ListFilter struct {
	UserID         *uint
	DeliveryCrewID *uint
}
