package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/vibeoutfit-backend/internal/cart"
	"github.com/angelmondragon/vibeoutfit-backend/internal/orders"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/db"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/dbtest"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/vibeoutfit-backend/pkg/errors"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/lock"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/logger"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/metrics"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memLocker struct {
	mu   sync.Mutex
	held map[string]bool
	err  error
}

func (l *memLocker) Obtain(_ context.Context, key string) (lock.Handle, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, false, l.err
	}
	if l.held == nil {
		l.held = map[string]bool{}
	}
	if l.held[key] {
		return nil, false, nil
	}
	l.held[key] = true
	return memHandle{l: l, key: key}, true, nil
}

type memHandle struct {
	l   *memLocker
	key string
}

func (h memHandle) Release(context.Context) error {
	h.l.mu.Lock()
	defer h.l.mu.Unlock()
	delete(h.l.held, h.key)
	return nil
}

type prefixKeyer struct{}

func (prefixKeyer) LockKey(parts ...string) string {
	return "vo:lock:" + strings.Join(parts, ":")
}

type checkoutFixture struct {
	svc    Service
	db     *gorm.DB
	fx     *dbtest.Fixtures
	carts  cart.Service
	orders orders.Service
	locker *memLocker
	reg    *prometheus.Registry
	user   *models.User
	cat    *models.Category
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	conn := dbtest.Open(t)
	client := db.NewFromGorm(conn)
	fx := dbtest.NewFixtures(t, conn)

	cartRepo := cart.NewRepository(conn)
	ordersRepo := orders.NewRepository(conn)
	locker := &memLocker{}
	reg := prometheus.NewRegistry()
	logg := logger.New(logger.Options{ServiceName: "checkout-test", Output: &strings.Builder{}})

	svc, err := NewService(client, cartRepo, ordersRepo, NewStockRepository(conn), locker, prefixKeyer{}, metrics.NewCheckoutMetrics(reg), logg)
	require.NoError(t, err)
	cartSvc, err := cart.NewService(cartRepo, client)
	require.NoError(t, err)
	ordersSvc, err := orders.NewService(ordersRepo)
	require.NoError(t, err)

	return &checkoutFixture{
		svc:    svc,
		db:     conn,
		fx:     fx,
		carts:  cartSvc,
		orders: ordersSvc,
		locker: locker,
		reg:    reg,
		user:   fx.User("shopper@example.com"),
		cat:    fx.Category("apparel", 1, nil, true),
	}
}

func (f *checkoutFixture) add(t *testing.T, variant *models.ProductVariant, qty int) {
	t.Helper()
	_, err := f.carts.AddItem(context.Background(), f.user.ID, cart.AddItemRequest{VariantID: variant.ID, Quantity: &qty})
	require.NoError(t, err)
}

func (f *checkoutFixture) orderCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&n).Error)
	return n
}

func (f *checkoutFixture) failures(t *testing.T, reason string) float64 {
	t.Helper()
	mfs, err := f.reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "checkout_failures_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "reason" && lp.GetValue() == reason {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestPlaceOrderTotalsAndSnapshots(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	shirt := f.fx.Product(f.cat.ID, "shirt", "10.00")
	jacket := f.fx.Product(f.cat.ID, "jacket", "25.00")
	shirtM := f.fx.Variant(shirt.ID, "SH-M", 5)
	jacketL := f.fx.Variant(jacket.ID, "JK-L", 1)
	f.add(t, shirtM, 2)
	f.add(t, jacketL, 1)

	order, err := f.svc.PlaceOrder(ctx, f.user.ID, PlaceOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, "45.00", order.TotalAmount)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.Equal(t, enums.PaymentMethodCashOnDelivery, order.PaymentMethod)
	require.Len(t, order.Items, 2)

	prices := map[string]string{}
	for _, item := range order.Items {
		prices[item.VariantSKU] = item.Price
	}
	assert.Equal(t, map[string]string{"SH-M": "10.00", "JK-L": "25.00"}, prices)

	items, err := f.carts.ListCart(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	var carts int64
	require.NoError(t, f.db.Model(&models.Cart{}).Where("user_id = ?", f.user.ID).Count(&carts).Error)
	assert.EqualValues(t, 1, carts)

	var shirtStock, jacketStock models.ProductVariant
	require.NoError(t, f.db.Take(&shirtStock, "id = ?", shirtM.ID).Error)
	assert.Equal(t, 3, shirtStock.Stock)
	require.NoError(t, f.db.Take(&jacketStock, "id = ?", jacketL.ID).Error)
	assert.Equal(t, 0, jacketStock.Stock)

	assert.Empty(t, f.locker.held, "lock must be released")
}

func TestOrderPricesSurvivePriceChanges(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	p := f.fx.Product(f.cat.ID, "scarf", "10.00")
	v := f.fx.Variant(p.ID, "SC-1", 10)
	f.add(t, v, 3)

	placed, err := f.svc.PlaceOrder(ctx, f.user.ID, PlaceOrderRequest{PaymentMethod: "paypal"})
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentMethodPayPal, placed.PaymentMethod)

	f.fx.Update(p, map[string]any{"base_price": "99.00"})

	got, err := f.orders.Get(ctx, f.user.ID, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, "30.00", got.TotalAmount)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "10.00", got.Items[0].Price)

	var row models.OrderItem
	require.NoError(t, f.db.Take(&row, "order_id = ?", placed.ID).Error)
	assert.True(t, row.Price.Equal(decimal.RequireFromString("10.00")))
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.svc.PlaceOrder(ctx, f.user.ID, PlaceOrderRequest{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	assert.Equal(t, "Cart is empty", pkgerrors.As(err).Message())

	// an existing but emptied cart behaves the same
	p := f.fx.Product(f.cat.ID, "belt", "15.00")
	v := f.fx.Variant(p.ID, "BT-1", 2)
	f.add(t, v, 1)
	items, err := f.carts.ListCart(ctx, f.user.ID)
	require.NoError(t, err)
	require.NoError(t, f.carts.RemoveItem(ctx, f.user.ID, items[0].ID))

	_, err = f.svc.PlaceOrder(ctx, f.user.ID, PlaceOrderRequest{})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	assert.Zero(t, f.orderCount(t))
	assert.Equal(t, float64(2), f.failures(t, metrics.ReasonEmptyCart))
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	ok := f.fx.Product(f.cat.ID, "cap", "8.00")
	scarce := f.fx.Product(f.cat.ID, "boots", "80.00")
	capV := f.fx.Variant(ok.ID, "CAP-1", 10)
	bootV := f.fx.Variant(scarce.ID, "BOOT-42", 1)
	f.add(t, capV, 2)
	f.add(t, bootV, 2)

	_, err := f.svc.PlaceOrder(ctx, f.user.ID, PlaceOrderRequest{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))
	assert.Zero(t, f.orderCount(t))

	var capRow models.ProductVariant
	require.NoError(t, f.db.Take(&capRow, "id = ?", capV.ID).Error)
	assert.Equal(t, 10, capRow.Stock)

	items, err := f.carts.ListCart(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, float64(1), f.failures(t, metrics.ReasonOutOfStock))
}

func TestPlaceOrderUnavailableItem(t *testing.T) {
	f := newCheckoutFixture(t)

	p := f.fx.Product(f.cat.ID, "gloves", "12.00")
	v := f.fx.Variant(p.ID, "GL-1", 4)
	f.add(t, v, 1)
	f.fx.Update(p, map[string]any{"is_active": false})

	_, err := f.svc.PlaceOrder(context.Background(), f.user.ID, PlaceOrderRequest{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.CodeOf(err))
	assert.Zero(t, f.orderCount(t))
}

func TestPlaceOrderRejectsUnknownPaymentMethod(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.PlaceOrder(context.Background(), f.user.ID, PlaceOrderRequest{PaymentMethod: "barter"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	assert.Equal(t, float64(1), f.failures(t, metrics.ReasonInvalidInput))
}

func TestPlaceOrderConcurrentCheckoutIsConflict(t *testing.T) {
	f := newCheckoutFixture(t)
	p := f.fx.Product(f.cat.ID, "ring", "5.00")
	v := f.fx.Variant(p.ID, "RG-1", 4)
	f.add(t, v, 1)

	key := prefixKeyer{}.LockKey(lockScope, f.user.ID.String())
	f.locker.held = map[string]bool{key: true}

	_, err := f.svc.PlaceOrder(context.Background(), f.user.ID, PlaceOrderRequest{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))
	assert.Equal(t, float64(1), f.failures(t, metrics.ReasonLocked))

	f.locker.err = errors.New("redis down")
	_, err = f.svc.PlaceOrder(context.Background(), f.user.ID, PlaceOrderRequest{})
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.CodeOf(err))
}

func TestPlaceOrderRequiresUser(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.svc.PlaceOrder(context.Background(), uuid.Nil, PlaceOrderRequest{})
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
}

func TestOrdersListPaginatesNewestFirst(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	p := f.fx.Product(f.cat.ID, "sock", "2.00")
	v := f.fx.Variant(p.ID, "SK-1", 100)

	var placed []uuid.UUID
	for i := 0; i < 3; i++ {
		f.add(t, v, 1)
		order, err := f.svc.PlaceOrder(ctx, f.user.ID, PlaceOrderRequest{})
		require.NoError(t, err)
		placed = append(placed, order.ID)
		time.Sleep(2 * time.Millisecond)
	}

	page, err := f.orders.List(ctx, f.user.ID, paginationParams(2, ""))
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, placed[2], page.Items[0].ID)
	assert.Equal(t, placed[1], page.Items[1].ID)
	require.NotEmpty(t, page.NextCursor)

	rest, err := f.orders.List(ctx, f.user.ID, paginationParams(2, page.NextCursor))
	require.NoError(t, err)
	require.Len(t, rest.Items, 1)
	assert.Equal(t, placed[0], rest.Items[0].ID)
	assert.Empty(t, rest.NextCursor)

	other := f.fx.User("other@example.com")
	_, err = f.orders.Get(ctx, other.ID, placed[0])
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func paginationParams(limit int, cursor string) pagination.Params {
	return pagination.Params{Limit: limit, Cursor: cursor}
}
