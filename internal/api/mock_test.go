package api

import (
	"context"

	"littlelemon/internal/access"
	"littlelemon/internal/cart"
	"littlelemon/internal/category"
	"littlelemon/internal/menu"
	"littlelemon/internal/order"
	"littlelemon/internal/user"

	"github.com/stretchr/testify/mock"
)

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, userID uint) (access.Caller, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(access.Caller), args.Error(1)
}

type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) List(ctx context.Context, ordering, search string) ([]*menu.MenuItem, error) {
	args := m.Called(ctx, ordering, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) Get(ctx context.Context, id uint) (*menu.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) Find(ctx context.Context, ref string) (*menu.MenuItem, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) Create(ctx context.Context, caller access.Caller, payload map[string]any) (*menu.MenuItem, error) {
	args := m.Called(ctx, caller, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) Replace(ctx context.Context, caller access.Caller, id uint, payload map[string]any) (*menu.MenuItem, error) {
	args := m.Called(ctx, caller, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) Update(ctx context.Context, caller access.Caller, id uint, payload map[string]any) (*menu.MenuItem, error) {
	args := m.Called(ctx, caller, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) Delete(ctx context.Context, caller access.Caller, id uint) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, search string) ([]*category.Category, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, in category.CreateInput) (*category.Category, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) Resolve(ctx context.Context, lookup category.Lookup) (*category.Category, error) {
	args := m.Called(ctx, lookup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) List(ctx context.Context, caller access.Caller) ([]*cart.Entry, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.Entry), args.Error(1)
}

func (m *MockCartService) Add(ctx context.Context, caller access.Caller, payload map[string]any) (*cart.Entry, error) {
	args := m.Called(ctx, caller, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Entry), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, caller access.Caller) (string, error) {
	args := m.Called(ctx, caller)
	return args.String(0), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, caller access.Caller, payload map[string]any) (*order.Order, error) {
	args := m.Called(ctx, caller, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, caller access.Caller) (*order.Listing, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Listing), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, caller access.Caller, id uint) (*order.Order, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Replace(ctx context.Context, caller access.Caller, id uint, payload map[string]any) error {
	args := m.Called(ctx, caller, id, payload)
	return args.Error(0)
}

func (m *MockOrderService) Update(ctx context.Context, caller access.Caller, id uint, payload map[string]any) error {
	args := m.Called(ctx, caller, id, payload)
	return args.Error(0)
}

func (m *MockOrderService) Delete(ctx context.Context, caller access.Caller, id uint) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in user.RegisterInput) (*user.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) FindByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) FindByIDs(ctx context.Context, ids []uint) (map[uint]*user.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]*user.User), args.Error(1)
}

func (m *MockUserService) ListGroup(ctx context.Context, caller access.Caller, group string) ([]*user.User, error) {
	args := m.Called(ctx, caller, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserService) AssignToGroup(ctx context.Context, caller access.Caller, group string, ref user.Ref) (*user.User, error) {
	args := m.Called(ctx, caller, group, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) RemoveFromGroup(ctx context.Context, caller access.Caller, group string, userID uint) (*user.User, error) {
	args := m.Called(ctx, caller, group, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}
