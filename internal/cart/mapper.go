package cart

type View struct {
	MenuItem  uint   `json:"menuitem"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Price     string `json:"price"`
}

func ToViews(entries []*Entry) []View {
	out := make([]View, 0, len(entries))
	for _, e := range entries {
		out = append(out, View{
			MenuItem:  e.MenuItemID,
			Quantity:  e.Quantity,
			UnitPrice: e.UnitPrice.StringFixed(2),
			Price:     e.Price.StringFixed(2),
		})
	}
	return out
}
