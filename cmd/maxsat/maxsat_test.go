package maxsat_test

import (
	"bytes"
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/optkit/bnb/cmd/maxsat"
	"github.com/optkit/bnb/pkg/bnb"
	"github.com/optkit/bnb/pkg/bnb/search"
)

func solveWCNF(input string) (*search.Tree[*maxsat.Assignment, []bool], error) {
	wcnf, err := maxsat.NewWCNF(bytes.NewReader([]byte(input)))
	Expect(err).ToNot(HaveOccurred())

	problem := maxsat.NewProblem(wcnf)
	tree, err := search.New[*maxsat.Assignment, []bool](problem, problem.RootPayload())
	Expect(err).ToNot(HaveOccurred())
	Expect(tree.SetRoot(bnb.NewNodeConfig(problem.RootPayload()))).To(Succeed())
	return tree, tree.Solve(context.Background())
}

var _ = Describe("MaxSat search", func() {
	It("pays the cheapest soft weight satisfying the hard clause", func() {
		// hard: (1 or 2); falsifying -1 costs 3, falsifying -2 costs 2
		tree, err := solveWCNF("p wcnf 2 3 10\n10 1 2 0\n3 -1 0\n2 -2 0\n")
		Expect(err).ToNot(HaveOccurred())

		Expect(tree.ObjectiveValue()).To(Equal(2.0))
		Expect(tree.Solution()).To(Equal([]bool{false, true}))
	})

	It("pays nothing when the hard clauses are satisfiable for free", func() {
		tree, err := solveWCNF("p wcnf 2 2 10\n10 1 2 0\n5 1 0\n")
		Expect(err).ToNot(HaveOccurred())

		Expect(tree.ObjectiveValue()).To(Equal(0.0))
		solution, err := tree.Solution()
		Expect(err).ToNot(HaveOccurred())
		Expect(solution[0]).To(BeTrue())
	})

	It("reports no solution when the hard clauses conflict", func() {
		tree, err := solveWCNF("p wcnf 1 2 10\n10 1 0\n10 -1 0\n")
		Expect(err).ToNot(HaveOccurred())

		_, err = tree.ObjectiveValue()
		Expect(err).To(MatchError(bnb.ErrNoSolution))
	})

	It("honors soft weights across conflicting preferences", func() {
		// soft prefers 1 true (weight 4) over 1 false (weight 1)
		tree, err := solveWCNF("p wcnf 1 2 10\n4 1 0\n1 -1 0\n")
		Expect(err).ToNot(HaveOccurred())

		Expect(tree.ObjectiveValue()).To(Equal(1.0))
		Expect(tree.Solution()).To(Equal([]bool{true}))
	})
})
