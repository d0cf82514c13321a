package search

import (
	"github.com/optkit/bnb/pkg/bnb"
)

// solution pairs the internal-form objective with the externally
// reconstructed value and the node that produced it.
type solution[V any] struct {
	objective float64
	value     V
	node      bnb.NodeID
}

// solutionStore retains at most one solution: recording replaces any
// prior entry. Retaining a ranked list instead would be a local change
// here and would not touch the search loop.
type solutionStore[V any] struct {
	best *solution[V]
}

func (s *solutionStore[V]) record(objective float64, value V, node bnb.NodeID) {
	s.best = &solution[V]{objective: objective, value: value, node: node}
}

func (s *solutionStore[V]) value() (V, error) {
	if s.best == nil {
		var zero V
		return zero, bnb.ErrNoSolution
	}
	return s.best.value, nil
}

func (s *solutionStore[V]) objective(sense bnb.Sense) (float64, error) {
	if s.best == nil {
		return 0, bnb.ErrNoSolution
	}
	if sense == bnb.Maximize {
		return -s.best.objective, nil
	}
	return s.best.objective, nil
}
