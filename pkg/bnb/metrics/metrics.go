// Package metrics provides a prometheus-backed bnb.Observer that
// tracks search progress per node close.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/optkit/bnb/pkg/bnb"
)

// Observer exports one counter per close reason plus gauges for the
// incumbent, the global bound and the number of open nodes. It is
// instrumentation only and keeps no state the engine reads back.
type Observer[P any] struct {
	nodesClosed *prometheus.CounterVec
	incumbent   prometheus.Gauge
	lowerBound  prometheus.Gauge
	openNodes   prometheus.Gauge
}

var _ bnb.Observer[int] = (*Observer[int])(nil)

// NewObserver registers the search metrics with reg and returns the
// observer. Registering twice on the same registry panics, as usual
// with promauto.
func NewObserver[P any](reg prometheus.Registerer) *Observer[P] {
	factory := promauto.With(reg)
	return &Observer[P]{
		nodesClosed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bnb_nodes_closed_total",
				Help: "Total number of search nodes closed, by reason",
			},
			[]string{"reason"},
		),
		incumbent: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bnb_incumbent_objective",
			Help: "Best feasible objective found so far, in the declared sense",
		}),
		lowerBound: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bnb_global_lower_bound",
			Help: "Best-known global bound, in the declared sense",
		}),
		openNodes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bnb_open_nodes",
			Help: "Number of currently open search nodes",
		}),
	}
}

// NodeClosed implements bnb.Observer.
func (o *Observer[P]) NodeClosed(t bnb.TreeState, _ *bnb.Node[P], reason bnb.CloseReason) {
	o.nodesClosed.WithLabelValues(reason.String()).Inc()
	if obj, ok := t.Incumbent(); ok {
		o.incumbent.Set(obj)
	}
	o.lowerBound.Set(t.LowerBound())
	o.openNodes.Set(float64(t.OpenNodes()))
}
