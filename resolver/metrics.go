package resolver

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts resolver computations and rejected overrides.
type Metrics struct {
	computations *prometheus.CounterVec
	rejections   *prometheus.CounterVec
}

// NewMetrics creates the resolver metrics and registers them on reg.
// A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "propset",
			Subsystem: "resolver",
			Name:      "computations_total",
			Help:      "Number of field sets computed and memoized, by target kind.",
		}, []string{"target"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "propset",
			Subsystem: "resolver",
			Name:      "override_rejections_total",
			Help:      "Number of overrides rejected, by reason.",
		}, []string{"reason"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.computations, m.rejections} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) computed(t Target) {
	if m == nil {
		return
	}
	m.computations.WithLabelValues(string(t.Kind)).Inc()
}

func (m *Metrics) rejected(err error) {
	if m == nil {
		return
	}
	reason := "other"
	switch {
	case errors.Is(err, ErrAlreadyConfigured):
		reason = "already_configured"
	case errors.Is(err, ErrAlreadyMemoized):
		reason = "already_memoized"
	case errors.Is(err, ErrInvalidOverride):
		reason = "invalid_override"
	case errors.Is(err, ErrUnsupportedModel):
		reason = "unsupported_model"
	}
	m.rejections.WithLabelValues(reason).Inc()
}
