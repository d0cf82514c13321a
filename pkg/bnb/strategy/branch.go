package strategy

import (
	"math"
)

// NoBranch is returned by a Branch policy when every branchable
// dimension already passes the discreteness predicate and the node
// needs no splitting.
const NoBranch = -1

// Branch picks the dimension to split on. value reads the relaxation
// value of a dimension, branchable is the fixed set of eligible
// dimensions derived at root construction, and discrete is the
// per-value acceptance predicate built from the tree's tolerances.
type Branch interface {
	Select(value func(int) float64, branchable []int, discrete func(float64) bool) int
}

// First selects the lowest eligible index that fails the discreteness
// predicate.
type First struct{}

func (First) Select(value func(int) float64, branchable []int, discrete func(float64) bool) int {
	for _, i := range branchable {
		if !discrete(value(i)) {
			return i
		}
	}
	return NoBranch
}

// MostFractional selects the eligible index whose value is numerically
// furthest from its nearest integer, breaking ties by lowest index.
type MostFractional struct{}

func (MostFractional) Select(value func(int) float64, branchable []int, discrete func(float64) bool) int {
	best := NoBranch
	bestDist := 0.0
	for _, i := range branchable {
		v := value(i)
		if discrete(v) {
			continue
		}
		if d := math.Abs(v - math.Round(v)); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
