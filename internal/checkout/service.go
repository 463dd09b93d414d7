package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/vibeoutfit-backend/internal/cart"
	"github.com/angelmondragon/vibeoutfit-backend/internal/orders"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/vibeoutfit-backend/pkg/errors"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/lock"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/logger"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const lockScope = "checkout"

var errEmptyCart = pkgerrors.New(pkgerrors.CodeValidation, "Cart is empty")

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type lockKeyer interface {
	LockKey(parts ...string) string
}

// PlaceOrderRequest is the body of POST /orders.
type PlaceOrderRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// Service turns the caller's cart into an order.
type Service interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderRequest) (*orders.OrderDTO, error)
}

type service struct {
	tx      txRunner
	carts   cart.CartRepository
	orders  orders.Repository
	stock   StockRepository
	locker  lock.Locker
	keys    lockKeyer
	metrics *metrics.CheckoutMetrics
	logg    *logger.Logger
}

// NewService builds the checkout service. metrics may be nil.
func NewService(
	tx txRunner,
	carts cart.CartRepository,
	ordersRepo orders.Repository,
	stock StockRepository,
	locker lock.Locker,
	keys lockKeyer,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	if locker == nil || keys == nil {
		return nil, fmt.Errorf("checkout locker required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:      tx,
		carts:   carts,
		orders:  ordersRepo,
		stock:   stock,
		locker:  locker,
		keys:    keys,
		metrics: checkoutMetrics,
		logg:    logg,
	}, nil
}

// PlaceOrder snapshots base prices into order items, decrements stock and
// empties the cart in one transaction. The cart row itself is kept.
func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderRequest) (*orders.OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	method, err := parsePaymentMethod(input.PaymentMethod)
	if err != nil {
		s.metrics.IncFailure(metrics.ReasonInvalidInput)
		return nil, err
	}

	handle, ok, err := s.locker.Obtain(ctx, s.keys.LockKey(lockScope, userID.String()))
	if err != nil {
		s.metrics.IncFailure(metrics.ReasonInternalError)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire checkout lock")
	}
	if !ok {
		s.metrics.IncFailure(metrics.ReasonLocked)
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "checkout already in progress")
	}
	defer func() {
		if err := handle.Release(context.WithoutCancel(ctx)); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "checkout.lock_release_failed")
		}
	}()

	order, err := s.placeOrder(ctx, userID, method)
	if err != nil {
		s.metrics.IncFailure(failureReason(err))
		return nil, err
	}

	s.metrics.ObserveOrder(order.TotalAmount)
	logCtx := s.logg.WithOrderID(ctx, order.ID.String())
	s.logg.Info(s.logg.WithFields(logCtx, map[string]any{
		"total_amount": order.TotalAmount.StringFixed(2),
		"item_count":   len(order.Items),
	}), "checkout.order_placed")

	dto := orders.ToOrderDTO(*order)
	return &dto, nil
}

func (s *service) placeOrder(ctx context.Context, userID uuid.UUID, method enums.PaymentMethod) (*models.Order, error) {
	userCart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errEmptyCart
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var orderID uuid.UUID
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.carts.WithTx(tx)
		orderRepo := s.orders.WithTx(tx)
		stockRepo := s.stock.WithTx(tx)

		if err := cartRepo.Lock(ctx, userCart.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock cart")
		}
		items, err := cartRepo.ListItems(ctx, userCart.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart items")
		}
		if len(items) == 0 {
			return errEmptyCart
		}

		order := &models.Order{
			UserID:        userID,
			TotalAmount:   decimal.Zero,
			Status:        enums.OrderStatusPending,
			PaymentMethod: method,
		}
		if err := orderRepo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		total := decimal.Zero
		for _, item := range items {
			variant := item.Variant
			if variant == nil || variant.Product == nil || !variant.IsActive || !variant.Product.IsActive {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "item is no longer available").
					WithDetails(map[string]any{"cart_item_id": item.ID, "variant_id": item.VariantID})
			}
			if variant.Stock < item.Quantity {
				return outOfStock(variant, item.Quantity)
			}

			price := variant.Product.BasePrice
			total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))

			line := &models.OrderItem{
				OrderID:   order.ID,
				ProductID: variant.ProductID,
				VariantID: variant.ID,
				Quantity:  item.Quantity,
				Price:     price,
			}
			if err := orderRepo.CreateItem(ctx, line); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order item")
			}

			decremented, err := stockRepo.Decrement(ctx, variant.ID, item.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			if !decremented {
				return outOfStock(variant, item.Quantity)
			}
		}

		if err := orderRepo.SetTotal(ctx, order.ID, total); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order total")
		}
		if err := cartRepo.ClearItems(ctx, userCart.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) == nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout transaction")
		}
		return nil, err
	}

	order, err := s.orders.FindForUser(ctx, orderID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	return order, nil
}

func parsePaymentMethod(raw string) (enums.PaymentMethod, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return enums.DefaultPaymentMethod, nil
	}
	method, err := enums.ParsePaymentMethod(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method").
			WithDetails(map[string]any{"allowed": enums.PaymentMethods()})
	}
	return method, nil
}

func outOfStock(variant *models.ProductVariant, requested int) error {
	return pkgerrors.Newf(pkgerrors.CodeConflict, "insufficient stock for %s", variant.SKU).
		WithDetails(map[string]any{"variant_id": variant.ID, "requested": requested, "available": variant.Stock})
}

func failureReason(err error) string {
	if errors.Is(err, errEmptyCart) {
		return metrics.ReasonEmptyCart
	}
	switch pkgerrors.CodeOf(err) {
	case pkgerrors.CodeStateConflict:
		return metrics.ReasonUnavailable
	case pkgerrors.CodeConflict:
		return metrics.ReasonOutOfStock
	case pkgerrors.CodeValidation:
		return metrics.ReasonInvalidInput
	default:
		return metrics.ReasonInternalError
	}
}
