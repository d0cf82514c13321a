// Package milp provides a ready-made branch-and-bound problem for
// mixed-integer linear programs of the form
//
//	optimize c^T x  subject to  G x <= h,  x >= 0,  x integer
//
// using gonum's simplex method as the relaxation evaluator. Rows with
// >= sense are expressed by negating the row and its right-hand side.
package milp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/optkit/bnb/pkg/bnb"
)

// Payload is the per-node state: the current variable domain and the
// most recent relaxation point. Evaluate fills X and Objective as a
// side effect; children derive fresh domains through WithBounds.
type Payload struct {
	Lb []float64
	Ub []float64

	X         []float64
	Objective float64
}

// Problem implements bnb.Problem and bnb.VariableAccessor for an MILP
// instance. It is stateless across nodes; everything per-node lives in
// the Payload.
type Problem struct {
	sense    bnb.Sense
	c        []float64
	g        *mat.Dense
	h        []float64
	integers []int
	tol      bnb.Tolerances
}

var (
	_ bnb.Problem[*Payload, []float64] = (*Problem)(nil)
	_ bnb.VariableAccessor[*Payload]   = (*Problem)(nil)
)

// Option configures a Problem.
type Option func(*Problem) error

// WithIntegers restricts branching to the given variable indices; the
// rest stay continuous. The default treats every variable as integer.
func WithIntegers(indices ...int) Option {
	return func(p *Problem) error {
		if len(indices) == 0 {
			return fmt.Errorf("at least one integer index is required")
		}
		p.integers = indices
		return nil
	}
}

// WithTolerances overrides the integrality tolerances used when
// deciding whether a relaxation point is a feasible integer solution.
// They should match the tree's tolerances.
func WithTolerances(tol bnb.Tolerances) Option {
	return func(p *Problem) error {
		p.tol = tol
		return nil
	}
}

// New builds an MILP problem. c has one coefficient per variable, g is
// an m×n constraint matrix and h its right-hand side.
func New(sense bnb.Sense, c []float64, g *mat.Dense, h []float64, opts ...Option) (*Problem, error) {
	m, n := g.Dims()
	if len(c) != n {
		return nil, fmt.Errorf("objective has %d coefficients, constraint matrix has %d columns", len(c), n)
	}
	if len(h) != m {
		return nil, fmt.Errorf("right-hand side has %d entries, constraint matrix has %d rows", len(h), m)
	}
	p := &Problem{
		sense: sense,
		c:     c,
		g:     g,
		h:     h,
		tol:   bnb.DefaultTolerances(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.integers == nil {
		p.integers = make([]int, n)
		for i := range p.integers {
			p.integers[i] = i
		}
	}
	for _, i := range p.integers {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("integer index %d out of range [0, %d)", i, n)
		}
	}
	return p, nil
}

// RootPayload returns the unrestricted domain [0, +Inf) per variable.
func (p *Problem) RootPayload() *Payload {
	n := len(p.c)
	pay := &Payload{
		Lb: make([]float64, n),
		Ub: make([]float64, n),
	}
	for i := range pay.Ub {
		pay.Ub[i] = math.Inf(1)
	}
	return pay
}

// BranchableIndices returns the integer variables.
func (p *Problem) BranchableIndices(_ *Payload) []int {
	return p.integers
}

// Evaluate solves the LP relaxation over the node's current domain. It
// returns the infeasible sentinel when the domain or the polytope is
// empty, and a feasible upper bound only when the relaxation point is
// integral on every integer variable.
func (p *Problem) Evaluate(_ context.Context, _ bnb.TreeState, n *bnb.Node[*Payload]) (bnb.Bounds, error) {
	pay := n.Payload
	for i := range pay.Lb {
		if pay.Lb[i] > pay.Ub[i] || pay.Ub[i] < 0 {
			return bnb.Infeasible(), nil
		}
	}

	x, err := p.solveRelaxation(pay)
	switch {
	case err == nil:
	case errors.Is(err, lp.ErrInfeasible):
		return bnb.Infeasible(), nil
	case errors.Is(err, lp.ErrUnbounded):
		// An unbounded relaxation gives no information on the subtree.
		bound := math.Inf(-1)
		if p.sense == bnb.Maximize {
			bound = math.Inf(1)
		}
		return bnb.Bounds{Lower: bound, Upper: bnb.WorstObjective(p.sense)}, nil
	default:
		return bnb.Bounds{}, fmt.Errorf("relaxation solve: %w", err)
	}

	pay.X = x
	pay.Objective = floats.Dot(p.c, x)

	upper := bnb.WorstObjective(p.sense)
	if p.integral(x) {
		upper = pay.Objective
	}
	return bnb.Bounds{Lower: pay.Objective, Upper: upper}, nil
}

// Solution rounds the node's relaxation point to the integer lattice.
func (p *Problem) Solution(_ bnb.TreeState, n *bnb.Node[*Payload]) ([]float64, error) {
	if n.Payload.X == nil {
		return nil, fmt.Errorf("node %d has no relaxation point", n.ID())
	}
	out := make([]float64, len(n.Payload.X))
	copy(out, n.Payload.X)
	for _, i := range p.integers {
		out[i] = math.Round(out[i])
	}
	return out, nil
}

// Value returns the relaxation value of variable i.
func (p *Problem) Value(pay *Payload, i int) float64 { return pay.X[i] }

// VarBounds returns the domain of variable i.
func (p *Problem) VarBounds(pay *Payload, i int) (float64, float64) {
	return pay.Lb[i], pay.Ub[i]
}

// WithBounds derives a child domain with variable i restricted to
// [lb, ub]. The relaxation point is not inherited.
func (p *Problem) WithBounds(pay *Payload, i int, lb, ub float64) *Payload {
	child := &Payload{
		Lb: append([]float64(nil), pay.Lb...),
		Ub: append([]float64(nil), pay.Ub...),
	}
	child.Lb[i] = math.Max(lb, 0)
	child.Ub[i] = ub
	return child
}

func (p *Problem) integral(x []float64) bool {
	for _, i := range p.integers {
		if !p.tol.IsDiscrete(x[i]) {
			return false
		}
	}
	return true
}

// solveRelaxation brings the node LP to standard form (equalities over
// non-negative variables, via slack and surplus columns for the
// constraint rows and the finite variable bounds) and runs simplex. The
// returned slice holds the original variables only.
func (p *Problem) solveRelaxation(pay *Payload) ([]float64, error) {
	m, nv := p.g.Dims()

	var ubRows, lbRows []int
	for i := 0; i < nv; i++ {
		if !math.IsInf(pay.Ub[i], 1) {
			ubRows = append(ubRows, i)
		}
		if pay.Lb[i] > 0 {
			lbRows = append(lbRows, i)
		}
	}

	rows := m + len(ubRows) + len(lbRows)
	cols := nv + rows
	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	c := make([]float64, cols)

	for j := 0; j < nv; j++ {
		c[j] = p.c[j]
		if p.sense == bnb.Maximize {
			c[j] = -c[j]
		}
	}

	// G x + s = h
	for r := 0; r < m; r++ {
		for j := 0; j < nv; j++ {
			a.Set(r, j, p.g.At(r, j))
		}
		a.Set(r, nv+r, 1)
		b[r] = p.h[r]
	}
	// x_i + t = ub_i
	for k, i := range ubRows {
		r := m + k
		a.Set(r, i, 1)
		a.Set(r, nv+r, 1)
		b[r] = pay.Ub[i]
	}
	// x_i - u = lb_i
	for k, i := range lbRows {
		r := m + len(ubRows) + k
		a.Set(r, i, 1)
		a.Set(r, nv+r, -1)
		b[r] = pay.Lb[i]
	}

	// Simplex's phase one expects a non-negative right-hand side;
	// equality rows negate freely.
	for r := 0; r < rows; r++ {
		if b[r] < 0 {
			b[r] = -b[r]
			for j := 0; j < cols; j++ {
				a.Set(r, j, -a.At(r, j))
			}
		}
	}

	_, xAll, err := lp.Simplex(c, a, b, 0, nil)
	if err != nil {
		return nil, err
	}
	return xAll[:nv], nil
}
