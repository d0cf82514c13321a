package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/optkit/bnb/pkg/bnb"
)

type fakeState struct {
	incumbent float64
	hasInc    bool
	lower     float64
	open      int
}

func (s fakeState) Sense() bnb.Sense { return bnb.Minimize }

func (s fakeState) Incumbent() (float64, bool) { return s.incumbent, s.hasInc }

func (s fakeState) LowerBound() float64 { return s.lower }

func (s fakeState) OpenNodes() int { return s.open }

func TestObserverTracksCloses(t *testing.T) {
	reg := prometheus.NewRegistry()
	observer := NewObserver[string](reg)

	node := bnb.NewNode(1, bnb.NewNodeConfig("payload"))
	observer.NodeClosed(fakeState{lower: 1.5, open: 3}, node, bnb.CloseNormal)
	observer.NodeClosed(fakeState{lower: 2, open: 2, incumbent: 4, hasInc: true}, node, bnb.CloseDominated)
	observer.NodeClosed(fakeState{lower: 2, open: 1, incumbent: 4, hasInc: true}, node, bnb.CloseDominated)

	assert.Equal(t, 1.0, testutil.ToFloat64(observer.nodesClosed.WithLabelValues("normal")))
	assert.Equal(t, 2.0, testutil.ToFloat64(observer.nodesClosed.WithLabelValues("dominated")))
	assert.Equal(t, 0.0, testutil.ToFloat64(observer.nodesClosed.WithLabelValues("infeasible")))
	assert.Equal(t, 4.0, testutil.ToFloat64(observer.incumbent))
	assert.Equal(t, 2.0, testutil.ToFloat64(observer.lowerBound))
	assert.Equal(t, 1.0, testutil.ToFloat64(observer.openNodes))
}
