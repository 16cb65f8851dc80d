package cart

import "github.com/shopspring/decimal"

// Storage limits shared by cart entries and order items: quantity is a
// SMALLINT and every amount a NUMERIC(6,2).
const MaxQuantity = 32767

var MaxAmount = decimal.RequireFromString("9999.99")

// WithinAmount reports whether d fits an amount column.
func WithinAmount(d decimal.Decimal) bool {
	return d.LessThanOrEqual(MaxAmount)
}

// Entry is one menu item in a customer's cart. Entries are never merged
// or edited in place.
type Entry struct {
	ID         uint
	UserID     uint
	MenuItemID uint
	Quantity   int
	UnitPrice  decimal.Decimal
	Price      decimal.Decimal
}
