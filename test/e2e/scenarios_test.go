package e2e

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/optkit/bnb/pkg/bnb"
	"github.com/optkit/bnb/pkg/bnb/input/milp"
	"github.com/optkit/bnb/pkg/bnb/search"
	"github.com/optkit/bnb/pkg/bnb/strategy"
)

// the shared demo instance:
//
//	optimize x1 + 1.2 x2 + 3.2 x3
//	s.t.     0.5 x1 + 3.1 x2 + 4.2 x3 (<= or >=) 6.1
//	         1.9 x1 + 0.7 x2 + 0.2 x3 (<= or >=) 8.1
//	         2.9 x1 - 2.3 x2 + 4.2 x3 (<= or >=) 10.5
//	         x >= 0, integer
var (
	objective = []float64{1, 1.2, 3.2}
	rows      = []float64{
		0.5, 3.1, 4.2,
		1.9, 0.7, 0.2,
		2.9, -2.3, 4.2,
	}
	rhs = []float64{6.1, 8.1, 10.5}
)

func newProblem(sense bnb.Sense) *milp.Problem {
	g := mat.NewDense(3, 3, append([]float64(nil), rows...))
	h := append([]float64(nil), rhs...)
	if sense == bnb.Minimize {
		// flip Gx <= h into Gx >= h
		g.Scale(-1, g)
		for i := range h {
			h[i] = -h[i]
		}
	}
	problem, err := milp.New(sense, objective, g, h)
	Expect(err).ToNot(HaveOccurred())
	return problem
}

func solve(sense bnb.Sense, opts ...search.Option[*milp.Payload, []float64]) ([]float64, float64) {
	problem := newProblem(sense)
	opts = append(opts, search.WithSense[*milp.Payload, []float64](sense))
	tree, err := search.New[*milp.Payload, []float64](problem, problem.RootPayload(), opts...)
	Expect(err).ToNot(HaveOccurred())
	Expect(tree.SetRoot(bnb.NewNodeConfig(problem.RootPayload()))).To(Succeed())
	Expect(tree.Solve(context.Background())).To(Succeed())

	solution, err := tree.Solution()
	Expect(err).ToNot(HaveOccurred())
	value, err := tree.ObjectiveValue()
	Expect(err).ToNot(HaveOccurred())
	return solution, value
}

var _ = Describe("Integer programming scenarios", func() {
	It("maximizes the demo instance to 5.2 at [2 0 1]", func() {
		solution, value := solve(bnb.Maximize)
		Expect(value).To(BeNumerically("~", 5.2, 1e-6))
		Expect(solution).To(Equal([]float64{2, 0, 1}))
	})

	It("minimizes the reversed demo instance to 7.2 at [6 1 0]", func() {
		solution, value := solve(bnb.Minimize)
		Expect(value).To(BeNumerically("~", 7.2, 1e-6))
		Expect(solution).To(Equal([]float64{6, 1, 0}))
	})

	It("reaches the same maximum with most-fractional branching", func() {
		solution, value := solve(bnb.Maximize,
			search.WithBranchStrategy[*milp.Payload, []float64](strategy.MostFractional{}))
		Expect(value).To(BeNumerically("~", 5.2, 1e-6))
		Expect(solution).To(Equal([]float64{2, 0, 1}))
	})

	It("reaches the same maximum with depth-first traversal", func() {
		solution, value := solve(bnb.Maximize,
			search.WithTraverseStrategy[*milp.Payload, []float64](strategy.DepthFirst[*milp.Payload]{}))
		Expect(value).To(BeNumerically("~", 5.2, 1e-6))
		Expect(solution).To(Equal([]float64{2, 0, 1}))
	})
})
