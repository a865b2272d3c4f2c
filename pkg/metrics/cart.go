package metrics

import "github.com/prometheus/client_golang/prometheus"

// CartMetrics tracks live shopping cart activity.
type CartMetrics struct {
	activeCarts  prometheus.Gauge
	checkouts    *prometheus.CounterVec
	itemsChanged *prometheus.CounterVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	activeCarts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_active_sessions",
		Help: "Shopping cart sessions currently held in memory.",
	})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})
	itemsChanged := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"operation"})
	reg.MustRegister(activeCarts, checkouts, itemsChanged)
	return &CartMetrics{
		activeCarts:  activeCarts,
		checkouts:    checkouts,
		itemsChanged: itemsChanged,
	}
}

// SetActiveCarts reports the number of live cart sessions.
func (m *CartMetrics) SetActiveCarts(count int) {
	if m == nil || m.activeCarts == nil {
		return
	}
	m.activeCarts.Set(float64(count))
}

// IncCheckout counts a checkout attempt with the given outcome.
func (m *CartMetrics) IncCheckout(outcome string) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncMutation counts a cart mutation by operation name.
func (m *CartMetrics) IncMutation(operation string) {
	if m == nil || m.itemsChanged == nil {
		return
	}
	m.itemsChanged.WithLabelValues(normalizeLabel(operation)).Inc()
}
