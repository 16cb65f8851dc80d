package menu

import (
	"littlelemon/internal/category"

	"github.com/shopspring/decimal"
)

const (
	MaxTitleLength = 100
)

var (
	MinPrice = decimal.Zero
	MaxPrice = decimal.NewFromInt(75)
)

type MenuItem struct {
	ID       uint
	Title    string
	Price    decimal.Decimal
	Featured bool
	Category category.Category
}

// SortField is one column of a list ordering.
type SortField struct {
	Column string
	Desc   bool
}

type ListFilter struct {
	// Search matches the category title, case-insensitively.
	Search string
	Order  []SortField
}
