package maxsat

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/optkit/bnb/pkg/bnb"
	"github.com/optkit/bnb/pkg/bnb/search"
)

func NewMaxSatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "maxsat <path>",
		Short: "Solves a weighted partial MAX-SAT problem given in wcnf format",
		Long: `Solves a weighted partial MAX-SAT problem given in wcnf format. For instance:
c
c this is a comment
c header: p wcnf <number of variables> <number of clauses> <top>
p wcnf 2 3 10
c clauses start with a weight and end in zero, negative means 'not'
c weight >= top marks a hard clause
10 1 2 0
3 -1 0
2 -2 0
c hard: (1 or 2); pay 3 to set 1, pay 2 to set 2
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(args[0])
		},
	}
}

func solve(path string) error {
	wcnfFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening wcnf file (%s): %w", path, err)
	}
	defer wcnfFile.Close()

	wcnf, err := NewWCNF(wcnfFile)
	if err != nil {
		return fmt.Errorf("error parsing wcnf file (%s): %w", path, err)
	}

	// build the tree
	problem := NewProblem(wcnf)
	tree, err := search.New[*Assignment, []bool](problem, problem.RootPayload())
	if err != nil {
		return err
	}
	if err := tree.SetRoot(bnb.NewNodeConfig(problem.RootPayload())); err != nil {
		return err
	}

	// run the search
	if err := tree.Solve(context.Background()); err != nil {
		return err
	}
	assignment, err := tree.Solution()
	if err != nil {
		fmt.Printf("no solution found: %s\n", err)
		return nil
	}
	cost, err := tree.ObjectiveValue()
	if err != nil {
		return err
	}
	fmt.Printf("solution found with falsified soft weight %g:\n", cost)
	for i, value := range assignment {
		fmt.Printf("%d = %t\n", i+1, value)
	}

	return nil
}
