package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"littlelemon/internal/access"
	"littlelemon/internal/apperror"
	"littlelemon/internal/cart"
	"littlelemon/internal/menu"
	"littlelemon/internal/metrics"
	"littlelemon/internal/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	customer = access.Caller{UserID: 2, Username: "mario", Roles: access.NewRoleSet(false, access.Customer)}
	crew     = access.Caller{UserID: 4, Username: "rider", Roles: access.NewRoleSet(false, access.DeliveryCrew)}
	manager  = access.Caller{UserID: 1, Username: "boss", Roles: access.NewRoleSet(false, access.Manager)}
	nobody   = access.Caller{UserID: 9, Username: "ghost"}

	fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func uintPtr(v uint) *uint { return &v }

type fixture struct {
	repo  *MockRepository
	tx    *MockTransactor
	uow   *MockUnitOfWork
	users *MockUserDirectory
	menu  *MockMenuLookup
	svc   Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:  new(MockRepository),
		tx:    new(MockTransactor),
		uow:   newMockUnitOfWork(),
		users: new(MockUserDirectory),
		menu:  new(MockMenuLookup),
	}
	f.svc = &service{
		repo:  f.repo,
		tx:    f.tx,
		users: f.users,
		menu:  f.menu,
		now:   func() time.Time { return fixedNow },
	}
	return f
}

// expectTx wires Begin to the fixture's unit of work with a deferred rollback.
func (f *fixture) expectTx(ctx context.Context) {
	f.tx.On("Begin", ctx).Return(f.uow, nil)
	f.uow.On("Rollback").Return(nil)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Checkout totals the cart and empties it", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		placed := metrics.OrdersPlaced.Load()

		f.uow.carts.On("ListByUser", ctx, uint(2)).Return([]*cart.Entry{
			{MenuItemID: 3, Quantity: 2, UnitPrice: dec("5.00"), Price: dec("10.00")},
			{MenuItemID: 4, Quantity: 1, UnitPrice: dec("15.00"), Price: dec("15.00")},
		}, nil)
		f.uow.orders.On("Create", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { args.Get(1).(*Order).ID = 12 }).
			Return(nil)
		f.uow.orders.On("CreateItem", ctx, mock.MatchedBy(func(it *OrderItem) bool {
			return it.OrderID == 12
		})).Return(nil).Twice()
		f.uow.orders.On("Save", ctx, mock.MatchedBy(func(o *Order) bool {
			return o.Total.Equal(dec("25"))
		})).Return(nil)
		f.uow.carts.On("DeleteByUser", ctx, uint(2)).Return(int64(2), nil)
		f.uow.On("Commit").Return(nil)

		o, err := f.svc.Create(ctx, customer, map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, uint(12), o.ID)
		assert.True(t, o.Total.Equal(dec("25")))
		assert.Len(t, o.Items, 2)
		assert.Equal(t, fixedNow, o.Date)
		assert.Equal(t, StatePending, o.State())
		assert.Equal(t, placed+1, metrics.OrdersPlaced.Load())

		f.uow.AssertExpectations(t)
		f.uow.carts.AssertExpectations(t)
		f.uow.orders.AssertExpectations(t)
	})

	t.Run("Date override is ignored", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)

		f.uow.carts.On("ListByUser", ctx, uint(2)).Return([]*cart.Entry{
			{MenuItemID: 3, Quantity: 1, UnitPrice: dec("5.00"), Price: dec("5.00")},
		}, nil)
		f.uow.orders.On("Create", ctx, mock.Anything).Return(nil)
		f.uow.orders.On("CreateItem", ctx, mock.Anything).Return(nil)
		f.uow.orders.On("Save", ctx, mock.Anything).Return(nil)
		f.uow.carts.On("DeleteByUser", ctx, uint(2)).Return(int64(1), nil)
		f.uow.On("Commit").Return(nil)

		o, err := f.svc.Create(ctx, customer, map[string]any{"date": "1999-01-01"})
		require.NoError(t, err)
		assert.Equal(t, fixedNow, o.Date)
	})

	t.Run("Empty cart creates nothing", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		f.uow.carts.On("ListByUser", ctx, uint(2)).Return([]*cart.Entry{}, nil)

		_, err := f.svc.Create(ctx, customer, nil)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.EqualError(t, err, "no items are currently in cart")
		f.uow.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit")
	})

	t.Run("Item failure rolls back", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		failures := metrics.OrderFailures.Load()

		f.uow.carts.On("ListByUser", ctx, uint(2)).Return([]*cart.Entry{
			{MenuItemID: 3, Quantity: 1, UnitPrice: dec("5.00"), Price: dec("5.00")},
		}, nil)
		f.uow.orders.On("Create", ctx, mock.Anything).Return(nil)
		f.uow.orders.On("CreateItem", ctx, mock.Anything).Return(errors.New("insert failed"))

		_, err := f.svc.Create(ctx, customer, nil)
		assert.EqualError(t, err, "insert failed")
		f.uow.AssertCalled(t, "Rollback")
		f.uow.AssertNotCalled(t, "Commit")
		f.uow.carts.AssertNotCalled(t, "DeleteByUser", mock.Anything, mock.Anything)
		assert.Equal(t, failures+1, metrics.OrderFailures.Load())
	})

	t.Run("Total beyond storage limit rolls back", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		failures := metrics.OrderFailures.Load()

		f.uow.carts.On("ListByUser", ctx, uint(2)).Return([]*cart.Entry{
			{MenuItemID: 3, Quantity: 400, UnitPrice: dec("15.00"), Price: dec("6000.00")},
			{MenuItemID: 4, Quantity: 400, UnitPrice: dec("15.00"), Price: dec("6000.00")},
		}, nil)
		f.uow.orders.On("Create", ctx, mock.Anything).Return(nil)
		f.uow.orders.On("CreateItem", ctx, mock.Anything).Return(nil).Once()

		_, err := f.svc.Create(ctx, customer, nil)
		assert.ErrorIs(t, err, ErrAmountTooHigh)
		assert.EqualError(t, err, "order total 12000.00 exceeds 9999.99")
		assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
		f.uow.orders.AssertNumberOfCalls(t, "CreateItem", 1)
		f.uow.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit")
		f.uow.AssertCalled(t, "Rollback")
		assert.Equal(t, failures, metrics.OrderFailures.Load())
	})

	t.Run("Non customer forbidden", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Create(ctx, manager, nil)
		assert.ErrorIs(t, err, ErrCreateForbidden)
		f.tx.AssertNotCalled(t, "Begin", mock.Anything)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Customer sees own orders", func(t *testing.T) {
		f := newFixture()
		orders := []*Order{{ID: 1, UserID: 2, DeliveryCrewID: uintPtr(4)}}

		f.repo.On("List", ctx, ListFilter{UserID: uintPtr(2)}).Return(orders, nil)
		f.repo.On("ListItems", ctx, []uint{1}).Return(map[uint][]*OrderItem{
			1: {{ID: 7, OrderID: 1, MenuItemID: 3, Quantity: 2}},
		}, nil)
		f.users.On("FindByIDs", ctx, []uint{4}).Return(map[uint]*user.User{4: {ID: 4, Username: "rider"}}, nil)

		l, err := f.svc.List(ctx, customer)
		require.NoError(t, err)
		assert.Nil(t, l.Customers)
		assert.Len(t, l.Orders[0].Items, 1)
		assert.Equal(t, "rider", l.Users[4].Username)
	})

	t.Run("Customer role wins over crew", func(t *testing.T) {
		f := newFixture()
		both := access.Caller{UserID: 2, Roles: access.NewRoleSet(false, access.Customer, access.DeliveryCrew)}

		f.repo.On("List", ctx, ListFilter{UserID: uintPtr(2)}).Return([]*Order{}, nil)
		f.repo.On("ListItems", ctx, []uint{}).Return(map[uint][]*OrderItem{}, nil)
		f.users.On("FindByIDs", ctx, []uint{}).Return(map[uint]*user.User{}, nil)

		_, err := f.svc.List(ctx, both)
		assert.NoError(t, err)
		f.repo.AssertExpectations(t)
	})

	t.Run("Crew sees assigned orders", func(t *testing.T) {
		f := newFixture()

		f.repo.On("List", ctx, ListFilter{DeliveryCrewID: uintPtr(4)}).Return([]*Order{}, nil)
		f.repo.On("ListItems", ctx, []uint{}).Return(map[uint][]*OrderItem{}, nil)
		f.users.On("FindByIDs", ctx, []uint{}).Return(map[uint]*user.User{}, nil)

		l, err := f.svc.List(ctx, crew)
		require.NoError(t, err)
		assert.Empty(t, l.Orders)
	})

	t.Run("Manager gets orders grouped by customer", func(t *testing.T) {
		f := newFixture()
		orders := []*Order{
			{ID: 1, UserID: 2},
			{ID: 3, UserID: 2, DeliveryCrewID: uintPtr(4)},
			{ID: 2, UserID: 5},
		}

		f.repo.On("List", ctx, ListFilter{}).Return(orders, nil)
		f.repo.On("ListItems", ctx, []uint{1, 3, 2}).Return(map[uint][]*OrderItem{}, nil)
		f.users.On("FindByIDs", ctx, []uint{2, 4, 5}).Return(map[uint]*user.User{
			2: {ID: 2, Username: "mario"},
			4: {ID: 4, Username: "rider"},
			5: {ID: 5, Username: "luigi"},
		}, nil)

		l, err := f.svc.List(ctx, manager)
		require.NoError(t, err)
		require.Len(t, l.Customers, 2)
		assert.Equal(t, "mario", l.Customers[0].Customer.Username)
		assert.Len(t, l.Customers[0].Orders, 2)
		assert.Equal(t, "luigi", l.Customers[1].Customer.Username)
	})

	t.Run("No role forbidden", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.List(ctx, nobody)
		assert.ErrorIs(t, err, ErrNoRole)
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, uint(5)).Return(&Order{ID: 5, UserID: 2}, nil)
		f.repo.On("ListItems", ctx, []uint{5}).Return(map[uint][]*OrderItem{5: {{ID: 1}}}, nil)

		o, err := f.svc.Get(ctx, customer, 5)
		require.NoError(t, err)
		assert.Len(t, o.Items, 1)
	})

	t.Run("Not found", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, uint(5)).Return(nil, nil)

		_, err := f.svc.Get(ctx, customer, 5)
		assert.EqualError(t, err, "order number 5 not found.")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("Other customer's order", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, uint(5)).Return(&Order{ID: 5, UserID: 3}, nil)

		_, err := f.svc.Get(ctx, customer, 5)
		assert.EqualError(t, err, "order 5 does not belong to customer")
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("Customer endpoint only", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Get(ctx, manager, 5)
		assert.ErrorIs(t, err, ErrCustomerOnly)
	})
}

func TestService_Replace_DeliveryCrew(t *testing.T) {
	ctx := context.Background()

	t.Run("Marks delivered", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, uint(5)).Return(&Order{ID: 5, DeliveryCrewID: uintPtr(4)}, nil)
		f.repo.On("Save", ctx, mock.MatchedBy(func(o *Order) bool {
			return o.Status && o.State() == StateDelivered
		})).Return(nil)

		assert.NoError(t, f.svc.Replace(ctx, crew, 5, map[string]any{"status": "1"}))
		f.repo.AssertExpectations(t)
	})

	t.Run("Missing status", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, uint(5)).Return(&Order{ID: 5}, nil)

		err := f.svc.Replace(ctx, crew, 5, map[string]any{})
		assert.EqualError(t, err, "missing expected key 'status'")
	})

	t.Run("Non boolean status", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, uint(5)).Return(&Order{ID: 5}, nil)

		err := f.svc.Replace(ctx, crew, 5, map[string]any{"status": "maybe"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Order not found", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, uint(5)).Return(nil, nil)

		err := f.svc.Replace(ctx, crew, 5, map[string]any{"status": true})
		assert.EqualError(t, err, "order 5 not found")
	})

	t.Run("Crew wins over manager on PUT", func(t *testing.T) {
		f := newFixture()
		both := access.Caller{UserID: 4, Roles: access.NewRoleSet(false, access.DeliveryCrew, access.Manager)}
		f.repo.On("FindByID", ctx, uint(5)).Return(&Order{ID: 5}, nil)
		f.repo.On("Save", ctx, mock.Anything).Return(nil)

		// A manager PUT would also demand delivery_crew.
		assert.NoError(t, f.svc.Replace(ctx, both, 5, map[string]any{"status": "false"}))
	})
}

func TestService_Replace_Manager(t *testing.T) {
	ctx := context.Background()

	t.Run("Assigns crew by id", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, uint(5)).Return(&Order{ID: 5}, nil)
		f.users.On("FindByID", ctx, uint(4)).Return(&user.User{ID: 4}, nil)
		f.repo.On("Save", ctx, mock.MatchedBy(func(o *Order) bool {
			return o.DeliveryCrewID != nil && *o.DeliveryCrewID == 4 && o.State() == StateAssigned
		})).Return(nil)

		err := f.svc.Replace(ctx, manager, 5, map[string]any{"status": 0, "delivery_crew": "4"})
		assert.NoError(t, err)
		f.repo.AssertExpectations(t)
	})

	t.Run("Null token clears crew", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, uint(5)).Return(&Order{ID: 5, DeliveryCrewID: uintPtr(4)}, nil)
		f.repo.On("Save", ctx, mock.MatchedBy(func(o *Order) bool {
			return o.DeliveryCrewID == nil
		})).Return(nil)

		err := f.svc.Replace(ctx, manager, 5, map[string]any{"status": "false", "delivery_crew": "None"})
		assert.NoError(t, err)
	})

	t.Run("Unknown crew", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, uint(5)).Return(&Order{ID: 5}, nil)
		f.users.On("FindByID", ctx, uint(77)).Return(nil, nil)

		err := f.svc.Replace(ctx, manager, 5, map[string]any{"status": "false", "delivery_crew": "77"})
		assert.EqualError(t, err, "delivery_crew 77 not found")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("Missing delivery_crew", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, uint(5)).Return(&Order{ID: 5}, nil)

		err := f.svc.Replace(ctx, manager, 5, map[string]any{"status": "true"})
		assert.EqualError(t, err, "missing expected key 'delivery_crew'")
	})

	t.Run("Superuser acts as manager", func(t *testing.T) {
		f := newFixture()
		root := access.Caller{UserID: 99, Roles: access.NewRoleSet(true)}
		f.repo.On("FindByID", ctx, uint(5)).Return(&Order{ID: 5}, nil)
		f.repo.On("Save", ctx, mock.Anything).Return(nil)

		err := f.svc.Replace(ctx, root, 5, map[string]any{"status": "true", "delivery_crew": "null"})
		assert.NoError(t, err)
	})
}

func TestService_Update_Manager(t *testing.T) {
	ctx := context.Background()

	t.Run("Reassigns by username", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, uint(5)).Return(&Order{ID: 5, DeliveryCrewID: uintPtr(4)}, nil)
		f.users.On("FindByUsername", ctx, "speedy").Return(&user.User{ID: 8}, nil)
		f.repo.On("Save", ctx, mock.MatchedBy(func(o *Order) bool {
			return *o.DeliveryCrewID == 8 && !o.Status
		})).Return(nil)

		assert.NoError(t, f.svc.Update(ctx, manager, 5, map[string]any{"username": "speedy"}))
	})

	t.Run("Status without crew is allowed", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, uint(5)).Return(&Order{ID: 5}, nil)
		f.repo.On("Save", ctx, mock.MatchedBy(func(o *Order) bool {
			return o.Status && o.DeliveryCrewID == nil
		})).Return(nil)

		assert.NoError(t, f.svc.Update(ctx, manager, 5, map[string]any{"status": "TRUE"}))
	})

	t.Run("Unknown username", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, uint(5)).Return(&Order{ID: 5}, nil)
		f.users.On("FindByUsername", ctx, "nobody").Return(nil, nil)

		err := f.svc.Update(ctx, manager, 5, map[string]any{"username": "nobody"})
		assert.ErrorIs(t, err, ErrCrewNotFound)
	})
}

func TestService_Update_DeliveryCrew(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	f.repo.On("FindByID", ctx, uint(5)).Return(&Order{ID: 5, Status: true}, nil)
	f.repo.On("Save", ctx, mock.MatchedBy(func(o *Order) bool { return o.Status })).Return(nil)

	// Status is optional on PATCH.
	assert.NoError(t, f.svc.Update(ctx, crew, 5, map[string]any{}))
}

func TestService_CustomerEdit(t *testing.T) {
	ctx := context.Background()

	newOrder := func() *Order {
		return &Order{ID: 5, UserID: 2, Total: dec("25.00")}
	}
	newItem := func() *OrderItem {
		return &OrderItem{ID: 7, OrderID: 5, MenuItemID: 3, Quantity: 2, UnitPrice: dec("5.00"), Price: dec("10.00")}
	}

	t.Run("PUT applies the price delta", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		f.uow.orders.On("FindByID", ctx, uint(5)).Return(newOrder(), nil)
		f.uow.orders.On("FindItem", ctx, uint(5), uint(7)).Return(newItem(), nil)
		f.menu.On("Get", ctx, uint(8)).Return(&menu.MenuItem{ID: 8, Price: dec("6.00")}, nil)
		f.uow.orders.On("SaveItem", ctx, mock.MatchedBy(func(it *OrderItem) bool {
			return it.MenuItemID == 8 && it.Quantity == 3 && it.Price.Equal(dec("18"))
		})).Return(nil)
		f.uow.orders.On("Save", ctx, mock.MatchedBy(func(o *Order) bool {
			return o.Total.Equal(dec("33"))
		})).Return(nil)
		f.uow.On("Commit").Return(nil)

		err := f.svc.Replace(ctx, customer, 5, map[string]any{"id": "7", "quantity": "3", "menuitem": "8"})
		require.NoError(t, err)
		f.uow.orders.AssertExpectations(t)
		f.uow.AssertExpectations(t)
	})

	t.Run("PATCH quantity keeps the snapshot unit price", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		f.uow.orders.On("FindByID", ctx, uint(5)).Return(newOrder(), nil)
		f.uow.orders.On("FindItem", ctx, uint(5), uint(7)).Return(newItem(), nil)
		f.uow.orders.On("SaveItem", ctx, mock.MatchedBy(func(it *OrderItem) bool {
			return it.Quantity == 4 && it.Price.Equal(dec("20"))
		})).Return(nil)
		f.uow.orders.On("Save", ctx, mock.MatchedBy(func(o *Order) bool {
			return o.Total.Equal(dec("35"))
		})).Return(nil)
		f.uow.On("Commit").Return(nil)

		err := f.svc.Update(ctx, customer, 5, map[string]any{"id": 7, "quantity": 4})
		require.NoError(t, err)
		f.menu.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Quantity beyond storage limit", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		f.uow.orders.On("FindByID", ctx, uint(5)).Return(newOrder(), nil)
		f.uow.orders.On("FindItem", ctx, uint(5), uint(7)).Return(newItem(), nil)

		err := f.svc.Update(ctx, customer, 5, map[string]any{"id": "7", "quantity": "40000"})
		assert.EqualError(t, err, "quantity value '40000' invalid.")
		f.uow.orders.AssertNotCalled(t, "SaveItem", mock.Anything, mock.Anything)
	})

	t.Run("Item price beyond storage limit", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		f.uow.orders.On("FindByID", ctx, uint(5)).Return(newOrder(), nil)
		f.uow.orders.On("FindItem", ctx, uint(5), uint(7)).Return(newItem(), nil)

		err := f.svc.Update(ctx, customer, 5, map[string]any{"id": "7", "quantity": "2000"})
		assert.ErrorIs(t, err, ErrAmountTooHigh)
		assert.EqualError(t, err, "orderitem price 10000.00 exceeds 9999.99")
		f.uow.orders.AssertNotCalled(t, "SaveItem", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit")
	})

	t.Run("Order total beyond storage limit", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		o := newOrder()
		o.Total = dec("9000.00")
		f.uow.orders.On("FindByID", ctx, uint(5)).Return(o, nil)
		f.uow.orders.On("FindItem", ctx, uint(5), uint(7)).Return(newItem(), nil)

		// 1500 x 5.00 = 7500 fits the item but lifts the total to 16490.
		err := f.svc.Update(ctx, customer, 5, map[string]any{"id": "7", "quantity": "1500"})
		assert.EqualError(t, err, "order total 16490.00 exceeds 9999.99")
		f.uow.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Delivered order without crew stays editable", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		o := newOrder()
		o.Status = true
		f.uow.orders.On("FindByID", ctx, uint(5)).Return(o, nil)
		f.uow.orders.On("FindItem", ctx, uint(5), uint(7)).Return(newItem(), nil)
		f.uow.orders.On("SaveItem", ctx, mock.Anything).Return(nil)
		f.uow.orders.On("Save", ctx, mock.Anything).Return(nil)
		f.uow.On("Commit").Return(nil)

		assert.NoError(t, f.svc.Update(ctx, customer, 5, map[string]any{"id": "7"}))
	})

	t.Run("Assigned order is locked regardless of status", func(t *testing.T) {
		for _, status := range []bool{false, true} {
			f := newFixture()
			f.expectTx(ctx)
			o := newOrder()
			o.DeliveryCrewID = uintPtr(4)
			o.Status = status
			f.uow.orders.On("FindByID", ctx, uint(5)).Return(o, nil)

			err := f.svc.Replace(ctx, customer, 5, map[string]any{"id": "7", "quantity": "1", "menuitem": "3"})
			assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
			if status {
				assert.ErrorIs(t, err, ErrDelivered)
			} else {
				assert.ErrorIs(t, err, ErrInDelivery)
			}
			f.uow.orders.AssertNotCalled(t, "SaveItem", mock.Anything, mock.Anything)
		}
	})

	t.Run("Foreign order", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		o := newOrder()
		o.UserID = 3
		f.uow.orders.On("FindByID", ctx, uint(5)).Return(o, nil)

		err := f.svc.Update(ctx, customer, 5, map[string]any{"id": "7"})
		assert.ErrorIs(t, err, ErrForeignOrder)
	})

	t.Run("Item not in order", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		f.uow.orders.On("FindByID", ctx, uint(5)).Return(newOrder(), nil)
		f.uow.orders.On("FindItem", ctx, uint(5), uint(70)).Return(nil, nil)

		err := f.svc.Update(ctx, customer, 5, map[string]any{"id": "70"})
		assert.EqualError(t, err, "orderitem 70 not found in order 5")
	})

	t.Run("PUT requires every field", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		f.uow.orders.On("FindByID", ctx, uint(5)).Return(newOrder(), nil)
		f.uow.orders.On("FindItem", ctx, uint(5), uint(7)).Return(newItem(), nil)

		err := f.svc.Replace(ctx, customer, 5, map[string]any{"id": "7", "quantity": "1"})
		assert.EqualError(t, err, "missing expected key 'menuitem'")
	})

	t.Run("Missing item id", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		f.uow.orders.On("FindByID", ctx, uint(5)).Return(newOrder(), nil)

		err := f.svc.Update(ctx, customer, 5, map[string]any{"quantity": "1"})
		assert.EqualError(t, err, "missing expected key 'id'")
	})

	t.Run("Bad quantity", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		f.uow.orders.On("FindByID", ctx, uint(5)).Return(newOrder(), nil)
		f.uow.orders.On("FindItem", ctx, uint(5), uint(7)).Return(newItem(), nil)

		err := f.svc.Update(ctx, customer, 5, map[string]any{"id": "7", "quantity": "lots"})
		assert.EqualError(t, err, "quantity value 'lots' invalid.")
	})

	t.Run("Unknown menu item", func(t *testing.T) {
		f := newFixture()
		f.expectTx(ctx)
		f.uow.orders.On("FindByID", ctx, uint(5)).Return(newOrder(), nil)
		f.uow.orders.On("FindItem", ctx, uint(5), uint(7)).Return(newItem(), nil)
		f.menu.On("Get", ctx, uint(40)).Return(nil, apperror.Wrap(menu.ErrItemNotFound, "no MenuItem with id 40"))

		err := f.svc.Update(ctx, customer, 5, map[string]any{"id": "7", "menuitem": "40"})
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
		f.uow.AssertNotCalled(t, "Commit")
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Manager deletes", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Delete", ctx, uint(5)).Return(true, nil)
		assert.NoError(t, f.svc.Delete(ctx, manager, 5))
	})

	t.Run("Not found", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Delete", ctx, uint(5)).Return(false, nil)

		err := f.svc.Delete(ctx, manager, 5)
		assert.EqualError(t, err, "order 5 not found")
	})

	t.Run("Non manager leaves the order untouched", func(t *testing.T) {
		for _, caller := range []access.Caller{customer, crew, nobody} {
			f := newFixture()
			err := f.svc.Delete(ctx, caller, 5)
			assert.ErrorIs(t, err, ErrNoRole)
			f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		}
	})
}
