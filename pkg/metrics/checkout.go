package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Checkout failure reasons.
const (
	ReasonEmptyCart     = "empty_cart"
	ReasonLocked        = "locked"
	ReasonUnavailable   = "unavailable"
	ReasonOutOfStock    = "out_of_stock"
	ReasonInvalidInput  = "invalid_input"
	ReasonInternalError = "internal"
)

// CheckoutMetrics tracks placed orders and failed checkouts.
type CheckoutMetrics struct {
	orders   prometheus.Counter
	failures *prometheus.CounterVec
	amount   prometheus.Histogram
}

func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	orders := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_orders_total",
		Help: "Orders placed through checkout.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failures_total",
		Help: "Checkout attempts that did not produce an order.",
	}, []string{"reason"})
	amount := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_order_amount",
		Help:    "Order totals in store currency.",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
	})
	reg.MustRegister(orders, failures, amount)
	return &CheckoutMetrics{orders: orders, failures: failures, amount: amount}
}

// ObserveOrder counts an order and its total.
func (c *CheckoutMetrics) ObserveOrder(total decimal.Decimal) {
	if c == nil || c.orders == nil {
		return
	}
	c.orders.Inc()
	c.amount.Observe(total.InexactFloat64())
}

func (c *CheckoutMetrics) IncFailure(reason string) {
	if c == nil || c.failures == nil {
		return
	}
	c.failures.WithLabelValues(normalizeLabel(reason)).Inc()
}
