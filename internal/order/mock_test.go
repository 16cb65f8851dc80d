package order

import (
	"context"

	"littlelemon/internal/cart"
	"littlelemon/internal/menu"
	"littlelemon/internal/user"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) CreateItem(ctx context.Context, it *OrderItem) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockRepository) FindItem(ctx context.Context, orderID, itemID uint) (*OrderItem, error) {
	args := m.Called(ctx, orderID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OrderItem), args.Error(1)
}

func (m *MockRepository) SaveItem(ctx context.Context, it *OrderItem) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockRepository) ListItems(ctx context.Context, orderIDs []uint) (map[uint][]*OrderItem, error) {
	args := m.Called(ctx, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint][]*OrderItem), args.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) ListByUser(ctx context.Context, userID uint) ([]*cart.Entry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.Entry), args.Error(1)
}

func (m *MockCartRepository) Create(ctx context.Context, e *cart.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
	orders *MockRepository
	carts  *MockCartRepository
}

func newMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		orders: new(MockRepository),
		carts:  new(MockCartRepository),
	}
}

func (m *MockUnitOfWork) Orders() Repository     { return m.orders }
func (m *MockUnitOfWork) Carts() cart.Repository { return m.carts }

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) Begin(ctx context.Context) (UnitOfWork, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(UnitOfWork), args.Error(1)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) FindByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserDirectory) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserDirectory) FindByIDs(ctx context.Context, ids []uint) (map[uint]*user.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]*user.User), args.Error(1)
}

type MockMenuLookup struct {
	mock.Mock
}

func (m *MockMenuLookup) Get(ctx context.Context, id uint) (*menu.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}
