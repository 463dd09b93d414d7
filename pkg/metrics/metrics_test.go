package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
)

func TestHTTPMetricsRecordsRouteAndStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("POST", "/api/cart/add", 201, 40*time.Millisecond)
	m.Observe("POST", "/api/cart/add", 201, 10*time.Millisecond)
	m.Observe("GET", "", 404, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	got, err := counterValue(mfs, "http_requests_total", map[string]string{"route": "/api/cart/add", "status": "201"})
	if err != nil {
		t.Fatalf("fetch requests: %v", err)
	}
	if got != 2 {
		t.Fatalf("expected 2 requests, got %f", got)
	}
	if _, err := counterValue(mfs, "http_requests_total", map[string]string{"route": "unknown", "status": "404"}); err != nil {
		t.Fatalf("expected unknown route label: %v", err)
	}
	if sum, err := histogramSum(mfs, "http_request_duration_seconds", map[string]string{"route": "/api/cart/add"}); err != nil || sum <= 0 {
		t.Fatalf("expected duration sum > 0, got %f err=%v", sum, err)
	}
}

func TestCheckoutMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)
	m.ObserveOrder(decimal.RequireFromString("45.00"))
	m.IncFailure(ReasonEmptyCart)
	m.IncFailure(ReasonEmptyCart)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := counterValue(mfs, "checkout_orders_total", nil); err != nil || got != 1 {
		t.Fatalf("expected one order, got %f err=%v", got, err)
	}
	if got, err := counterValue(mfs, "checkout_failures_total", map[string]string{"reason": ReasonEmptyCart}); err != nil || got != 2 {
		t.Fatalf("expected two empty cart failures, got %f err=%v", got, err)
	}
	if sum, err := histogramSum(mfs, "checkout_order_amount", nil); err != nil || sum != 45 {
		t.Fatalf("expected amount sum 45, got %f err=%v", sum, err)
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Millisecond)
	NewCheckoutMetrics(nil).ObserveOrder(decimal.NewFromInt(1))
	var m *CheckoutMetrics
	m.IncFailure(ReasonLocked)
}

func counterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	metric, err := findMetric(mfs, name, labels)
	if err != nil {
		return 0, err
	}
	return metric.GetCounter().GetValue(), nil
}

func histogramSum(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	metric, err := findMetric(mfs, name, labels)
	if err != nil {
		return 0, err
	}
	return metric.GetHistogram().GetSampleSum(), nil
}

func findMetric(mfs []*dto.MetricFamily, name string, labels map[string]string) (*dto.Metric, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if matchesLabels(metric.GetLabel(), labels) {
				return metric, nil
			}
		}
		return nil, fmt.Errorf("metric %q missing labels %v", name, labels)
	}
	return nil, fmt.Errorf("metric %q not found", name)
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	for name, value := range want {
		found := false
		for _, pair := range pairs {
			if pair.GetName() == name && pair.GetValue() == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
