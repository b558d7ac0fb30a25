package services

import (
	"context"
	"sync"
	"time"

	"checkout-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeTxRunner mimics transaction semantics over the in-memory fakes: the
// stores are snapshotted before the callback and restored when it fails, so
// an aborted saga leaves no partial writes behind. The fakes themselves
// mimic the conditional-update semantics of the real repositories, which is
// what the services' correctness rests on.
type fakeTxRunner struct {
	carts    *fakeCartRepo
	orders   *fakeOrderRepo
	payments *fakePaymentRepo
}

func (r fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	cartsSnap := r.carts.snapshot()
	ordersSnap := r.orders.snapshot()
	paymentsSnap, createdSnap := r.payments.snapshot()

	result, err := fn(ctx)
	if err != nil {
		r.carts.restore(cartsSnap)
		r.orders.restore(ordersSnap)
		r.payments.restore(paymentsSnap, createdSnap)
		return nil, err
	}
	return result, nil
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*models.Cart

	failLock bool
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*models.Cart)}
}

func (f *fakeCartRepo) seed(cart *models.Cart) *models.Cart {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	if cart.Status == "" {
		cart.Status = models.CartStatusActive
	}
	f.carts[cart.ID.Hex()] = cart
	return cart
}

func (f *fakeCartRepo) FindByUserID(_ context.Context, userID string) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cart := range f.carts {
		if cart.UserID == userID {
			copied := *cart
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeCartRepo) FindByID(_ context.Context, id string) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[id]
	if !ok {
		return nil, nil
	}
	copied := *cart
	return &copied, nil
}

func (f *fakeCartRepo) Create(_ context.Context, cart *models.Cart) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart.ID = primitive.NewObjectID()
	cart.Status = models.CartStatusActive
	stored := *cart
	f.carts[cart.ID.Hex()] = &stored
	return cart.ID.Hex(), nil
}

func (f *fakeCartRepo) UpdateItems(_ context.Context, id string, items []models.CartItem, totalAmount float64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[id]
	if !ok || cart.Status != models.CartStatusActive {
		return false, nil
	}
	cart.Items = items
	cart.TotalAmount = totalAmount
	return true, nil
}

func (f *fakeCartRepo) Lock(_ context.Context, id string) (bool, error) {
	if f.failLock {
		return false, nil
	}
	return f.setStatus(id, models.CartStatusActive, models.CartStatusLocked)
}

func (f *fakeCartRepo) Unlock(_ context.Context, id string) (bool, error) {
	return f.setStatus(id, models.CartStatusLocked, models.CartStatusActive)
}

func (f *fakeCartRepo) setStatus(id string, from, to models.CartStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[id]
	if !ok || cart.Status != from {
		return false, nil
	}
	cart.Status = to
	return true, nil
}

func (f *fakeCartRepo) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.carts[id]; !ok {
		return false, nil
	}
	delete(f.carts, id)
	return true, nil
}

func (f *fakeCartRepo) snapshot() map[string]models.Cart {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := make(map[string]models.Cart, len(f.carts))
	for id, cart := range f.carts {
		snap[id] = *cart
	}
	return snap
}

func (f *fakeCartRepo) restore(snap map[string]models.Cart) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts = make(map[string]*models.Cart, len(snap))
	for id, cart := range snap {
		restored := cart
		f.carts[id] = &restored
	}
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderRepo) seed(order *models.Order) *models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	f.orders[order.ID.Hex()] = order
	return order
}

func (f *fakeOrderRepo) CreateFromCart(_ context.Context, cart *models.Cart, pricing models.Pricing, delivery models.DeliveryInfo) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	order := &models.Order{
		ID:              primitive.NewObjectID(),
		CartID:          cart.ID,
		RestaurantID:    cart.RestaurantID,
		UserID:          cart.UserID,
		Items:           items,
		Delivery:        delivery,
		TotalCartAmount: pricing.TotalCartAmount,
		GSTCharges:      pricing.GSTCharges,
		PlatformFees:    pricing.PlatformFees,
		DeliveryCharges: pricing.DeliveryCharges,
		GrandTotal:      pricing.GrandTotal,
		Status:          models.OrderStatusPendingPayment,
	}
	f.orders[order.ID.Hex()] = order
	return order.ID.Hex(), nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) FindByPaymentID(_ context.Context, paymentID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		return nil, nil
	}
	for _, order := range f.orders {
		if order.PaymentID == oid {
			copied := *order
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindPendingByUserID(_ context.Context, userID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, order := range f.orders {
		if order.UserID == userID && order.Status == models.OrderStatusPendingPayment {
			copied := *order
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, id string, updates bson.M) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return false, nil
	}
	if paymentID, ok := updates["paymentId"].(primitive.ObjectID); ok {
		order.PaymentID = paymentID
	}
	return true, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id string, from, to models.OrderStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = to
	return true, nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[id]; !ok {
		return false, nil
	}
	delete(f.orders, id)
	return true, nil
}

func (f *fakeOrderRepo) snapshot() map[string]models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := make(map[string]models.Order, len(f.orders))
	for id, order := range f.orders {
		snap[id] = *order
	}
	return snap
}

func (f *fakeOrderRepo) restore(snap map[string]models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = make(map[string]*models.Order, len(snap))
	for id, order := range snap {
		restored := order
		f.orders[id] = &restored
	}
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*models.Payment
	// created preserves insertion order so the latest record wins lookups
	created []string
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*models.Payment)}
}

func (f *fakePaymentRepo) seed(payment *models.Payment) *models.Payment {
	f.mu.Lock()
	defer f.mu.Unlock()
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	f.payments[payment.ID.Hex()] = payment
	f.created = append(f.created, payment.ID.Hex())
	return payment
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment.ID = primitive.NewObjectID()
	stored := *payment
	f.payments[payment.ID.Hex()] = &stored
	f.created = append(f.created, payment.ID.Hex())
	return payment.ID.Hex(), nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id string) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.payments[id]
	if !ok {
		return nil, nil
	}
	copied := *payment
	return &copied, nil
}

func (f *fakePaymentRepo) FindByOrderID(_ context.Context, orderID string) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, nil
	}
	for i := len(f.created) - 1; i >= 0; i-- {
		payment, ok := f.payments[f.created[i]]
		if ok && payment.OrderID == oid {
			copied := *payment
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) Update(_ context.Context, id string, updates bson.M) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.payments[id]
	if !ok || payment.Status != models.PaymentStatusPending {
		return false, nil
	}
	if mode, ok := updates["paymentMode"].(models.PaymentMode); ok {
		payment.Mode = mode
	}
	if expireAt, ok := updates["paymentWindowExpireAt"].(time.Time); ok {
		payment.WindowExpireAt = expireAt
	}
	return true, nil
}

func (f *fakePaymentRepo) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.payments[id]; !ok {
		return false, nil
	}
	delete(f.payments, id)
	return true, nil
}

func (f *fakePaymentRepo) snapshot() (map[string]models.Payment, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := make(map[string]models.Payment, len(f.payments))
	for id, payment := range f.payments {
		snap[id] = *payment
	}
	return snap, append([]string(nil), f.created...)
}

func (f *fakePaymentRepo) restore(snap map[string]models.Payment, created []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments = make(map[string]*models.Payment, len(snap))
	for id, payment := range snap {
		restored := payment
		f.payments[id] = &restored
	}
	f.created = created
}

type fakeMenuItemRepo struct {
	items map[string]*models.MenuItem
}

func newFakeMenuItemRepo() *fakeMenuItemRepo {
	return &fakeMenuItemRepo{items: make(map[string]*models.MenuItem)}
}

func (f *fakeMenuItemRepo) seed(item *models.MenuItem) *models.MenuItem {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	f.items[item.ID.Hex()] = item
	return item
}

func (f *fakeMenuItemRepo) FindByID(_ context.Context, id string) (*models.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

type mockEventPublisher struct {
	mu     sync.Mutex
	events []models.OrderEvent
}

func (m *mockEventPublisher) PublishOrderEvent(_ context.Context, event models.OrderEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *mockEventPublisher) published() []models.OrderEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.OrderEvent(nil), m.events...)
}

type mockCartCache struct {
	mu          sync.Mutex
	store       map[string]*models.Cart
	invalidated []string
}

func newMockCartCache() *mockCartCache {
	return &mockCartCache{store: make(map[string]*models.Cart)}
}

func (m *mockCartCache) Get(_ context.Context, userID string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store[userID], nil
}

func (m *mockCartCache) Set(_ context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[cart.UserID] = cart
	return nil
}

func (m *mockCartCache) Invalidate(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, userID)
	m.invalidated = append(m.invalidated, userID)
	return nil
}
