package broker

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the broker's Prometheus instruments.
type Metrics struct {
	Published     prometheus.Counter
	Delivered     prometheus.Counter
	Dropped       prometheus.Counter
	Subscriptions prometheus.Gauge
}

// NewMetrics creates and registers the broker metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Published: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cursorwire_events_published_total",
			Help: "Cursor events accepted for fan-out.",
		}),
		Delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cursorwire_events_delivered_total",
			Help: "Cursor events delivered to subscribers.",
		}),
		Dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cursorwire_events_dropped_total",
			Help: "Cursor events dropped because a subscriber was lagging.",
		}),
		Subscriptions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cursorwire_subscriptions",
			Help: "Live room subscriptions.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Published, m.Delivered, m.Dropped, m.Subscriptions)
	}
	return m
}
