package milp

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/optkit/bnb/pkg/bnb"
	milpinput "github.com/optkit/bnb/pkg/bnb/input/milp"
	"github.com/optkit/bnb/pkg/bnb/search"
	"github.com/optkit/bnb/pkg/bnb/strategy"
)

func NewMilpCommand() *cobra.Command {
	var minimize bool
	var mostFractional bool
	cmd := &cobra.Command{
		Use:   "milp",
		Short: "Solves a small integer linear program by branch-and-bound",
		Long: `Solves a small built-in integer linear program by branch-and-bound,
using an LP relaxation as the bounding step. By default the objective
is maximized over three <= constraints; --minimize flips the objective
and the constraint senses.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sense := bnb.Maximize
			if minimize {
				sense = bnb.Minimize
			}
			branch := strategy.Branch(strategy.First{})
			if mostFractional {
				branch = strategy.MostFractional{}
			}
			return solve(sense, branch)
		},
	}
	cmd.Flags().BoolVar(&minimize, "minimize", false, "minimize instead of maximize")
	cmd.Flags().BoolVar(&mostFractional, "most-fractional", false, "branch on the most fractional variable instead of the first")
	return cmd
}

func solve(sense bnb.Sense, branch strategy.Branch) error {
	problem, err := NewDemoProblem(sense)
	if err != nil {
		return err
	}

	tree, err := search.New[*milpinput.Payload, []float64](
		problem,
		problem.RootPayload(),
		search.WithSense[*milpinput.Payload, []float64](sense),
		search.WithBranchStrategy[*milpinput.Payload, []float64](branch),
	)
	if err != nil {
		return err
	}
	if err := tree.SetRoot(bnb.NewNodeConfig(problem.RootPayload())); err != nil {
		return err
	}

	if err := tree.Solve(context.Background()); err != nil {
		return err
	}
	solution, err := tree.Solution()
	if err != nil {
		fmt.Printf("no solution found: %s\n", err)
		return nil
	}
	objective, err := tree.ObjectiveValue()
	if err != nil {
		return err
	}
	fmt.Printf("%s objective %g:\n", sense, objective)
	for i, v := range solution {
		fmt.Printf("x%d = %g\n", i+1, v)
	}

	return nil
}
