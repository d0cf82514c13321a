package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optkit/bnb/pkg/bnb"
)

func valuesOf(vs ...float64) func(int) float64 {
	return func(i int) float64 { return vs[i] }
}

func TestBranchSelect(t *testing.T) {
	discrete := bnb.DefaultTolerances().IsDiscrete

	type tc struct {
		Name       string
		Strategy   Branch
		Values     []float64
		Branchable []int
		Expected   int
	}

	for _, tt := range []tc{
		{
			Name:       "first picks lowest fractional index",
			Strategy:   First{},
			Values:     []float64{1.0, 2.5, 3.7},
			Branchable: []int{0, 1, 2},
			Expected:   1,
		},
		{
			Name:       "first honors the branchable set",
			Strategy:   First{},
			Values:     []float64{1.5, 2.5, 3.7},
			Branchable: []int{2},
			Expected:   2,
		},
		{
			Name:       "first reports no branching on a discrete point",
			Strategy:   First{},
			Values:     []float64{1.0, 2.0000000001, 3.0},
			Branchable: []int{0, 1, 2},
			Expected:   NoBranch,
		},
		{
			Name:       "most fractional picks the furthest value",
			Strategy:   MostFractional{},
			Values:     []float64{1.1, 2.5, 3.7},
			Branchable: []int{0, 1, 2},
			Expected:   1,
		},
		{
			Name:       "most fractional breaks ties by lowest index",
			Strategy:   MostFractional{},
			Values:     []float64{1.5, 2.5, 3.0},
			Branchable: []int{0, 1, 2},
			Expected:   0,
		},
		{
			Name:       "most fractional skips discrete values",
			Strategy:   MostFractional{},
			Values:     []float64{1.0, 2.0, 3.3},
			Branchable: []int{0, 1, 2},
			Expected:   2,
		},
		{
			Name:       "most fractional reports no branching on a discrete point",
			Strategy:   MostFractional{},
			Values:     []float64{1.0, 2.0},
			Branchable: []int{0, 1},
			Expected:   NoBranch,
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			got := tt.Strategy.Select(valuesOf(tt.Values...), tt.Branchable, discrete)
			assert.Equal(t, tt.Expected, got)
		})
	}
}
