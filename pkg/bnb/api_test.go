package bnb

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfeasibleSentinel(t *testing.T) {
	assert.True(t, Infeasible().IsInfeasible())
	assert.False(t, Bounds{Lower: 1, Upper: 2}.IsInfeasible())
	assert.True(t, Bounds{Lower: math.NaN(), Upper: 2}.IsInfeasible())
}

func TestWorstObjective(t *testing.T) {
	assert.True(t, math.IsInf(WorstObjective(Minimize), 1))
	assert.True(t, math.IsInf(WorstObjective(Maximize), -1))
}

func TestIsDiscrete(t *testing.T) {
	tol := DefaultTolerances()
	assert.True(t, tol.IsDiscrete(2.0))
	assert.True(t, tol.IsDiscrete(2.0000000004))
	assert.True(t, tol.IsDiscrete(-3.0000000004))
	assert.False(t, tol.IsDiscrete(2.5))
	assert.False(t, tol.IsDiscrete(0.001))

	// the relative test accepts larger drift on large values
	loose := Tolerances{Abs: 1e-9, Rel: 1e-6}
	assert.True(t, loose.IsDiscrete(1e6+0.5e0*1e-6*1e6))
	assert.False(t, loose.IsDiscrete(1.0001))
}

func TestGapClosed(t *testing.T) {
	tol := DefaultTolerances()
	assert.True(t, tol.GapClosed(5.2, 5.2))
	assert.True(t, tol.GapClosed(5.2, 5.2-1e-9))
	assert.False(t, tol.GapClosed(5.2, 4.0))
}

func TestNodeConfigValidate(t *testing.T) {
	assert.Error(t, NodeConfig[int]{}.Validate())
	assert.NoError(t, NewNodeConfig(1).Validate())
	assert.Error(t, NewNodeConfig(1).WithLowerBound(math.NaN()).Validate())
	assert.Error(t, NewNodeConfig(1).WithLowerBound(3).WithUpperBound(2).Validate())
	assert.NoError(t, NewNodeConfig(1).WithLowerBound(2).WithUpperBound(2).Validate())
}

func TestNodeFoldOnlyTightensLowerBound(t *testing.T) {
	n := NewNode(1, NewNodeConfig("payload").WithLowerBound(3))
	n.Fold(1, 7)
	assert.Equal(t, 3.0, n.LowerBound())
	assert.Equal(t, 7.0, n.UpperBound())

	n.Fold(4, 6)
	assert.Equal(t, 4.0, n.LowerBound())
	assert.Equal(t, 6.0, n.UpperBound())
}
