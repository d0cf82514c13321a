package maxsat

import (
	"context"
	"fmt"
	"math"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/optkit/bnb/pkg/bnb"
)

// Assignment is the per-node state: a 0/1 domain per variable, where a
// collapsed domain means the variable is fixed, plus the last feasible
// completion found by the SAT call. Unfixed variables report the
// fractional value 0.5 so the branch strategy keeps splitting until the
// fixed prefix decides the node.
type Assignment struct {
	Lb []float64
	Ub []float64

	Model []bool
}

func (a *Assignment) fixed(i int) (bool, bool) {
	if a.Lb[i] == a.Ub[i] {
		return a.Lb[i] > 0.5, true
	}
	return false, false
}

// Problem implements branch-and-bound over variable fixings for
// weighted partial MAX-SAT, minimizing the total weight of falsified
// soft clauses. Each node's relaxation is one SAT call on the hard
// clauses plus the fixed literals: unsatisfiable means the node is
// infeasible, a model yields a feasible completion whose soft cost is
// the node's upper bound, and the soft weight already falsified by the
// fixed literals alone is an admissible lower bound.
type Problem struct {
	wcnf *WCNF
}

var (
	_ bnb.Problem[*Assignment, []bool]  = (*Problem)(nil)
	_ bnb.VariableAccessor[*Assignment] = (*Problem)(nil)
)

func NewProblem(wcnf *WCNF) *Problem {
	return &Problem{wcnf: wcnf}
}

// RootPayload returns the all-unfixed assignment.
func (p *Problem) RootPayload() *Assignment {
	n := p.wcnf.NumVariables()
	a := &Assignment{
		Lb: make([]float64, n),
		Ub: make([]float64, n),
	}
	for i := range a.Ub {
		a.Ub[i] = 1
	}
	return a
}

// BranchableIndices makes every variable eligible for fixing.
func (p *Problem) BranchableIndices(_ *Assignment) []int {
	indices := make([]int, p.wcnf.NumVariables())
	for i := range indices {
		indices[i] = i
	}
	return indices
}

// Evaluate runs the SAT call for the node's fixed literals.
func (p *Problem) Evaluate(_ context.Context, _ bnb.TreeState, n *bnb.Node[*Assignment]) (bnb.Bounds, error) {
	a := n.Payload

	g := gini.New()
	// allocate every variable up front so the model is defined even
	// for variables that appear in no hard clause
	for i := 0; i < p.wcnf.NumVariables(); i++ {
		g.Lit()
	}
	for _, clause := range p.wcnf.Hard() {
		for _, lit := range clause {
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(z.LitNull)
	}
	for i := 0; i < p.wcnf.NumVariables(); i++ {
		if value, ok := a.fixed(i); ok {
			lit := i + 1
			if !value {
				lit = -lit
			}
			g.Add(z.Dimacs2Lit(lit))
			g.Add(z.LitNull)
		}
	}
	if g.Solve() != 1 {
		return bnb.Infeasible(), nil
	}

	model := make([]bool, p.wcnf.NumVariables())
	for i := range model {
		model[i] = g.Value(z.Dimacs2Lit(i + 1))
	}
	a.Model = model

	return bnb.Bounds{Lower: p.fixedCost(a), Upper: p.modelCost(model)}, nil
}

// Solution returns the feasible completion found by the last SAT call.
func (p *Problem) Solution(_ bnb.TreeState, n *bnb.Node[*Assignment]) ([]bool, error) {
	if n.Payload.Model == nil {
		return nil, fmt.Errorf("node %d has no model", n.ID())
	}
	return append([]bool(nil), n.Payload.Model...), nil
}

// Value reports 0/1 for fixed variables and 0.5 otherwise.
func (p *Problem) Value(a *Assignment, i int) float64 {
	if value, ok := a.fixed(i); ok {
		if value {
			return 1
		}
		return 0
	}
	return 0.5
}

func (p *Problem) VarBounds(a *Assignment, i int) (float64, float64) {
	return a.Lb[i], a.Ub[i]
}

// WithBounds derives a child with variable i fixed; splitting 0.5 with
// floor/ceil collapses the domain to {0} on one side and {1} on the
// other. The model is not inherited.
func (p *Problem) WithBounds(a *Assignment, i int, lb, ub float64) *Assignment {
	child := &Assignment{
		Lb: append([]float64(nil), a.Lb...),
		Ub: append([]float64(nil), a.Ub...),
	}
	child.Lb[i] = math.Max(lb, 0)
	child.Ub[i] = math.Min(ub, 1)
	return child
}

// fixedCost sums the weights of soft clauses every literal of which is
// already fixed false. Any completion of the assignment pays at least
// this much.
func (p *Problem) fixedCost(a *Assignment) float64 {
	cost := 0.0
	for _, clause := range p.wcnf.Soft() {
		falsified := true
		for _, lit := range clause.Literals {
			value, ok := a.fixed(abs(lit) - 1)
			if !ok || value == (lit > 0) {
				falsified = false
				break
			}
		}
		if falsified {
			cost += clause.Weight
		}
	}
	return cost
}

// modelCost sums the weights of soft clauses falsified by a complete
// assignment.
func (p *Problem) modelCost(model []bool) float64 {
	cost := 0.0
	for _, clause := range p.wcnf.Soft() {
		satisfied := false
		for _, lit := range clause.Literals {
			if model[abs(lit)-1] == (lit > 0) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			cost += clause.Weight
		}
	}
	return cost
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
