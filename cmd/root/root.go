package root

import (
	"github.com/spf13/cobra"

	"github.com/optkit/bnb/cmd/maxsat"
	"github.com/optkit/bnb/cmd/milp"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bnb",
		Short: "bnb is a generic branch-and-bound search engine",
		Long: `A generic branch-and-bound search engine written in Go.
It manages the tree of open subproblems, the incumbent and the pruning;
the bounding step is supplied by the problem (an LP relaxation, a SAT
call, ...).`,
	}

	// add sub-commands
	rootCmd.AddCommand(milp.NewMilpCommand())
	rootCmd.AddCommand(maxsat.NewMaxSatCommand())

	return rootCmd
}
