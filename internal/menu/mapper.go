package menu

import "littlelemon/internal/category"

// View is the wire shape of a menu item. Prices keep two decimals.
type View struct {
	ID       uint              `json:"id"`
	Title    string            `json:"title"`
	Price    string            `json:"price"`
	Featured bool              `json:"featured"`
	Category category.Category `json:"category"`
}

func ToView(m *MenuItem) View {
	return View{
		ID:       m.ID,
		Title:    m.Title,
		Price:    m.Price.StringFixed(2),
		Featured: m.Featured,
		Category: m.Category,
	}
}

func ToViews(items []*MenuItem) []View {
	out := make([]View, 0, len(items))
	for _, m := range items {
		out = append(out, ToView(m))
	}
	return out
}
