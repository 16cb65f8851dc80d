package order

import "littlelemon/internal/user"

const dateLayout = "2006-01-02"

// ItemView renders an order item. ID carries the menu item id.
type ItemView struct {
	ID        uint   `json:"id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Price     string `json:"price"`
}

type View struct {
	ID           uint       `json:"id"`
	DeliveryCrew any        `json:"delivery_crew"`
	Status       bool       `json:"status"`
	Total        string     `json:"total"`
	Date         string     `json:"date"`
	OrderItems   []ItemView `json:"orderitems"`
}

type CustomerView struct {
	user.Summary
	Orders []View `json:"orders"`
}

func toItemViews(items []*OrderItem) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, it := range items {
		out = append(out, ItemView{
			ID:        it.MenuItemID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
			Price:     it.Price.StringFixed(2),
		})
	}
	return out
}

func toView(o *Order, crew any) View {
	return View{
		ID:           o.ID,
		DeliveryCrew: crew,
		Status:       o.Status,
		Total:        o.Total.StringFixed(2),
		Date:         o.Date.Format(dateLayout),
		OrderItems:   toItemViews(o.Items),
	}
}

// ToDetailView renders a single order with the crew as a raw user id.
func ToDetailView(o *Order) View {
	var crew any
	if o.DeliveryCrewID != nil {
		crew = *o.DeliveryCrewID
	}
	return toView(o, crew)
}

// ToListView renders a listing with crew members by username. Managers
// get the orders grouped per customer.
func ToListView(l *Listing) any {
	if l.Customers != nil {
		out := make([]CustomerView, 0, len(l.Customers))
		for _, c := range l.Customers {
			out = append(out, CustomerView{
				Summary: user.ToSummary(c.Customer),
				Orders:  toViews(c.Orders, l.Users),
			})
		}
		return out
	}
	return toViews(l.Orders, l.Users)
}

func toViews(orders []*Order, users map[uint]*user.User) []View {
	out := make([]View, 0, len(orders))
	for _, o := range orders {
		var crew any
		if o.DeliveryCrewID != nil {
			if u, ok := users[*o.DeliveryCrewID]; ok {
				crew = u.Username
			}
		}
		out = append(out, toView(o, crew))
	}
	return out
}
