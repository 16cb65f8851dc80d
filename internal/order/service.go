package order

import (
	"context"
	"strconv"
	"strings"
	"time"

	"littlelemon/internal/access"
	"littlelemon/internal/apperror"
	"littlelemon/internal/cart"
	"littlelemon/internal/logger"
	"littlelemon/internal/menu"
	"littlelemon/internal/metrics"
	"littlelemon/internal/parse"
	"littlelemon/internal/user"
	"littlelemon/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UserDirectory resolves customers and delivery crew members.
type UserDirectory interface {
	FindByID(ctx context.Context, id uint) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*user.User, error)
}

type MenuLookup interface {
	Get(ctx context.Context, id uint) (*menu.MenuItem, error)
}

type Service interface {
	Create(ctx context.Context, caller access.Caller, payload map[string]any) (*Order, error)
	List(ctx context.Context, caller access.Caller) (*Listing, error)
	Get(ctx context.Context, caller access.Caller, id uint) (*Order, error)
	Replace(ctx context.Context, caller access.Caller, id uint, payload map[string]any) error
	Update(ctx context.Context, caller access.Caller, id uint, payload map[string]any) error
	Delete(ctx context.Context, caller access.Caller, id uint) error
}

// Listing is the result of List. Customers is only set for managers.
type Listing struct {
	Orders    []*Order
	Customers []*CustomerOrders
	// Users holds every customer and crew member the orders refer to.
	Users map[uint]*user.User
}

type CustomerOrders struct {
	Customer *user.User
	Orders   []*Order
}

type service struct {
	repo  Repository
	tx    Transactor
	users UserDirectory
	menu  MenuLookup
	now   func() time.Time
}

func NewService(repo Repository, tx Transactor, users UserDirectory, menu MenuLookup) Service {
	return &service{
		repo:  repo,
		tx:    tx,
		users: users,
		menu:  menu,
		now:   time.Now,
	}
}

func (s *service) Create(ctx context.Context, caller access.Caller, payload map[string]any) (_ *Order, err error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	if !caller.Is(access.Customer) {
		return nil, ErrCreateForbidden
	}

	timer := metrics.StartTimer()
	defer func() {
		if err != nil && !apperror.Is(err, apperror.KindBadRequest) {
			metrics.OrderFailures.Inc()
		}
	}()

	if _, ok := payload["date"]; ok {
		log.Warn("order date override ignored")
	}

	uow, err := s.tx.Begin(ctx)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	// Discards the partial order on any failure below.
	defer uow.Rollback()

	entries, err := uow.Carts().ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEmptyCart
	}

	o := &Order{
		UserID: caller.UserID,
		Total:  decimal.Zero,
		Date:   s.now(),
	}
	if err := uow.Orders().Create(ctx, o); err != nil {
		return nil, err
	}

	for _, e := range entries {
		it := &OrderItem{
			MenuItemID: e.MenuItemID,
			Quantity:   e.Quantity,
			UnitPrice:  e.UnitPrice,
			Price:      e.Price,
		}
		o.AddItem(it)
		if err := checkAmount("order total", o.Total); err != nil {
			return nil, err
		}
		if err := uow.Orders().CreateItem(ctx, it); err != nil {
			log.Error("failed to create order item", zap.Uint("order_id", o.ID), zap.Error(err))
			return nil, err
		}
	}

	if err := uow.Orders().Save(ctx, o); err != nil {
		return nil, err
	}
	if _, err := uow.Carts().DeleteByUser(ctx, caller.UserID); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		log.Error("failed to commit order", zap.Error(err))
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	log.Info("order placed",
		zap.Uint("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Duration("took", timer.Duration()),
	)
	return o, nil
}

func (s *service) List(ctx context.Context, caller access.Caller) (*Listing, error) {
	var filter ListFilter
	switch {
	case caller.Is(access.Customer):
		filter.UserID = &caller.UserID
	case caller.Is(access.DeliveryCrew):
		filter.DeliveryCrewID = &caller.UserID
	case caller.Is(access.Manager):
	default:
		return nil, ErrNoRole
	}

	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, orders...); err != nil {
		return nil, err
	}

	byManager := filter.UserID == nil && filter.DeliveryCrewID == nil
	ids := referencedUsers(orders, byManager)
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	listing := &Listing{Orders: orders, Users: users}
	if byManager {
		listing.Customers = groupByCustomer(orders, users)
	}
	return listing, nil
}

func (s *service) Get(ctx context.Context, caller access.Caller, id uint) (*Order, error) {
	if !caller.Is(access.Customer) {
		return nil, ErrCustomerOnly
	}

	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.Wrap(ErrOrderNotFound, "order number %d not found.", id)
	}
	if o.UserID != caller.UserID {
		return nil, apperror.Wrap(ErrNotOwner, "order %d does not belong to customer", id)
	}

	if err := s.attachItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Replace dispatches on role in the order DeliveryCrew, Manager, Customer.
func (s *service) Replace(ctx context.Context, caller access.Caller, id uint, payload map[string]any) error {
	switch {
	case caller.Is(access.DeliveryCrew):
		return s.setStatus(ctx, id, payload, true)
	case caller.Is(access.Manager):
		return s.assign(ctx, id, payload, true)
	case caller.Is(access.Customer):
		return s.editItem(ctx, caller, id, payload, true)
	}
	return ErrNoRole
}

// Update dispatches on role in the order Manager, DeliveryCrew, Customer.
// Every field is optional except the customer's order item id.
func (s *service) Update(ctx context.Context, caller access.Caller, id uint, payload map[string]any) error {
	switch {
	case caller.Is(access.Manager):
		return s.assign(ctx, id, payload, false)
	case caller.Is(access.DeliveryCrew):
		return s.setStatus(ctx, id, payload, false)
	case caller.Is(access.Customer):
		return s.editItem(ctx, caller, id, payload, false)
	}
	return ErrNoRole
}

func (s *service) Delete(ctx context.Context, caller access.Caller, id uint) error {
	if !caller.Is(access.Manager) {
		return ErrNoRole
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return orderNotFound(id)
	}

	logger.FromCtx(ctx).Info("order deleted", zap.Uint("order_id", id))
	return nil
}

func (s *service) setStatus(ctx context.Context, id uint, payload map[string]any, full bool) error {
	o, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	raw, ok := payload["status"]
	if !ok && full {
		return missingKey("status")
	}
	if ok {
		if o.Status, err = parseStatus(raw); err != nil {
			return err
		}
	}

	return s.repo.Save(ctx, o)
}

func (s *service) assign(ctx context.Context, id uint, payload map[string]any, full bool) error {
	o, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if full {
		for _, key := range []string{"status", "delivery_crew"} {
			if _, ok := payload[key]; !ok {
				return missingKey(key)
			}
		}
	}

	if raw, ok := payload["status"]; ok {
		if o.Status, err = parseStatus(raw); err != nil {
			return err
		}
	}
	if raw, ok := payload["delivery_crew"]; ok {
		if o.DeliveryCrewID, err = s.crewByID(ctx, raw); err != nil {
			return err
		}
	}
	if raw, ok := payload["username"]; ok {
		if o.DeliveryCrewID, err = s.crewByUsername(ctx, raw); err != nil {
			return err
		}
	}

	if err := s.repo.Save(ctx, o); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("order updated by manager",
		zap.Uint("order_id", o.ID),
		zap.Bool("status", o.Status),
		zap.Stringer("state", o.State()),
	)
	return nil
}

// editItem changes one item of the caller's own order and moves the
// order total by the item's price delta.
func (s *service) editItem(ctx context.Context, caller access.Caller, id uint, payload map[string]any, full bool) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "editItem"),
		zap.Uint("order_id", id),
	)

	uow, err := s.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback()

	o, err := uow.Orders().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return orderNotFound(id)
	}
	if o.UserID != caller.UserID {
		return ErrForeignOrder
	}
	if err := o.CheckEditable(); err != nil {
		return err
	}

	rawID, ok := payload["id"]
	if !ok {
		return missingKey("id")
	}
	itemRef := utils.Stringify(rawID)
	itemID, err := utils.ToUint(itemRef)
	if err != nil {
		return apperror.Wrap(ErrItemNotFound, "orderitem %s not found in order %d", itemRef, id)
	}
	it, err := uow.Orders().FindItem(ctx, o.ID, itemID)
	if err != nil {
		return err
	}
	if it == nil {
		return apperror.Wrap(ErrItemNotFound, "orderitem %s not found in order %d", itemRef, id)
	}

	if full {
		for _, key := range []string{"quantity", "menuitem"} {
			if _, ok := payload[key]; !ok {
				return missingKey(key)
			}
		}
	}

	qty, unit := it.Quantity, it.UnitPrice
	if raw, ok := payload["quantity"]; ok {
		if qty, err = parseQuantity(raw); err != nil {
			return err
		}
	}
	if raw, ok := payload["menuitem"]; ok {
		ref := utils.Stringify(raw)
		menuID, err := utils.ToUint(ref)
		if err != nil {
			return apperror.Wrap(ErrInvalidValue, "menuitem value '%s' invalid.", ref)
		}
		item, err := s.menu.Get(ctx, menuID)
		if err != nil {
			return err
		}
		it.MenuItemID = item.ID
		unit = item.Price
	}

	delta := it.Reprice(unit, qty)
	o.Total = o.Total.Add(delta)
	if err := checkAmount("orderitem price", it.Price); err != nil {
		return err
	}
	if err := checkAmount("order total", o.Total); err != nil {
		return err
	}

	if err := uow.Orders().SaveItem(ctx, it); err != nil {
		return err
	}
	if err := uow.Orders().Save(ctx, o); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		log.Error("failed to commit item edit", zap.Error(err))
		return err
	}

	log.Info("order item edited",
		zap.Uint("orderitem_id", it.ID),
		zap.String("delta", delta.StringFixed(2)),
	)
	return nil
}

func (s *service) load(ctx context.Context, id uint) (*Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, orderNotFound(id)
	}
	return o, nil
}

func (s *service) crewByID(ctx context.Context, raw any) (*uint, error) {
	if isNull(raw) {
		return nil, nil
	}
	ref := utils.Stringify(raw)
	id, err := utils.ToUint(ref)
	if err != nil {
		return nil, crewNotFound(ref)
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, crewNotFound(ref)
	}
	return &u.ID, nil
}

func (s *service) crewByUsername(ctx context.Context, raw any) (*uint, error) {
	if isNull(raw) {
		return nil, nil
	}
	ref := utils.Stringify(raw)
	u, err := s.users.FindByUsername(ctx, ref)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, crewNotFound(ref)
	}
	return &u.ID, nil
}

func (s *service) attachItems(ctx context.Context, orders ...*Order) error {
	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	items, err := s.repo.ListItems(ctx, ids)
	if err != nil {
		return err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
	}
	return nil
}

func referencedUsers(orders []*Order, withCustomers bool) []uint {
	seen := make(map[uint]bool)
	ids := make([]uint, 0)
	add := func(id uint) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, o := range orders {
		if withCustomers {
			add(o.UserID)
		}
		if o.DeliveryCrewID != nil {
			add(*o.DeliveryCrewID)
		}
	}
	return ids
}

// groupByCustomer expects orders sorted by user id.
func groupByCustomer(orders []*Order, users map[uint]*user.User) []*CustomerOrders {
	groups := make([]*CustomerOrders, 0)
	var current *CustomerOrders
	for _, o := range orders {
		if current == nil || current.Customer.ID != o.UserID {
			u, ok := users[o.UserID]
			if !ok {
				u = &user.User{ID: o.UserID}
			}
			current = &CustomerOrders{Customer: u}
			groups = append(groups, current)
		}
		current.Orders = append(current.Orders, o)
	}
	return groups
}

func parseStatus(raw any) (bool, error) {
	if b, ok := parse.AttemptParseAsBoolean(raw).(bool); ok {
		return b, nil
	}
	return false, ErrInvalidStatus
}

func parseQuantity(raw any) (int, error) {
	ref := utils.Stringify(raw)
	n, err := strconv.Atoi(strings.TrimSpace(ref))
	if err != nil || n <= 0 || n > cart.MaxQuantity {
		return 0, apperror.Wrap(ErrInvalidValue, "quantity value '%s' invalid.", ref)
	}
	return n, nil
}

// checkAmount rejects amounts the money columns cannot hold.
func checkAmount(what string, d decimal.Decimal) error {
	if cart.WithinAmount(d) {
		return nil
	}
	return apperror.Wrap(ErrAmountTooHigh, "%s %s exceeds %s", what, d.StringFixed(2), cart.MaxAmount.StringFixed(2))
}

func isNull(raw any) bool {
	if raw == nil {
		return true
	}
	return parse.IsNullString(utils.Stringify(raw), true)
}

func missingKey(key string) error {
	return apperror.Wrap(ErrMissingKey, "missing expected key '%s'", key)
}

func orderNotFound(id uint) error {
	return apperror.Wrap(ErrOrderNotFound, "order %d not found", id)
}

func crewNotFound(ref string) error {
	return apperror.Wrap(ErrCrewNotFound, "delivery_crew %s not found", ref)
}
