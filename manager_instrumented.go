package signals

import (
	"github.com/prometheus/client_golang/prometheus"
)

// instrumentedManager wraps an inner EventManager and counts what flows
// through it. Delegation is otherwise transparent, so it composes with any
// strategy, deferred or immediate.
type instrumentedManager struct {
	inner EventManager

	emitsTotal       prometheus.Counter
	registeredEvents prometheus.Gauge
}

// NewInstrumentedManager decorates inner with prometheus collectors
// registered on reg. It panics, per MustRegister, when the collectors are
// already registered on reg.
func NewInstrumentedManager(inner EventManager, reg prometheus.Registerer) EventManager {
	m := &instrumentedManager{
		inner: inner,
		emitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "signals",
			Name:      "emits_total",
			Help:      "Total number of emissions accepted by the manager",
		}),
		registeredEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "signals",
			Name:      "registered_events",
			Help:      "Events currently registered with the manager",
		}),
	}
	reg.MustRegister(m.emitsTotal, m.registeredEvents)
	return m
}

func (m *instrumentedManager) Setup(e *Event) {
	m.registeredEvents.Inc()
	m.inner.Setup(e)
}

func (m *instrumentedManager) Emit(e *Event, args []any) error {
	m.emitsTotal.Inc()
	return m.inner.Emit(e, args)
}

func (m *instrumentedManager) Delete(e *Event) {
	m.registeredEvents.Dec()
	m.inner.Delete(e)
}
