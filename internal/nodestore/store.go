// Package nodestore owns the open nodes of a search tree: the id→node
// mapping and the best-first priority index, consolidated behind one
// type so no caller can drive them out of sync.
package nodestore

import (
	"fmt"
	"math"

	"github.com/tidwall/btree"

	"github.com/optkit/bnb/pkg/bnb"
)

// Store holds every open node of a single tree. It assigns identifiers
// monotonically starting at 1 and maintains a btree ordered by
// (lower bound, id), which gives O(log n) extract-min, O(log n)
// arbitrary removal and deterministic tie-breaking by insertion age.
// Store is not safe for concurrent use; the engine mutates it from a
// single control thread only.
type Store[P any] struct {
	byID   map[bnb.NodeID]*bnb.Node[P]
	pq     *btree.BTreeG[*bnb.Node[P]]
	nextID bnb.NodeID
}

func byBoundThenID[P any](a, b *bnb.Node[P]) bool {
	if a.LowerBound() != b.LowerBound() {
		return a.LowerBound() < b.LowerBound()
	}
	return a.ID() < b.ID()
}

// New returns an empty store with its id counter at zero.
func New[P any]() *Store[P] {
	return &Store[P]{
		byID: map[bnb.NodeID]*bnb.Node[P]{},
		pq:   btree.NewBTreeG(byBoundThenID[P]),
	}
}

// Add validates the config, assigns the next identifier and admits the
// node into both structures. The returned id is never reused within
// this store's lifetime.
func (s *Store[P]) Add(c bnb.NodeConfig[P]) (bnb.NodeID, error) {
	if err := c.Validate(); err != nil {
		return 0, fmt.Errorf("invalid node config: %w", err)
	}
	s.nextID++
	n := bnb.NewNode(s.nextID, c)
	s.byID[n.ID()] = n
	s.pq.Set(n)
	return n.ID(), nil
}

// Len returns the number of open nodes.
func (s *Store[P]) Len() int { return len(s.byID) }

// Get returns the open node with the given id.
func (s *Store[P]) Get(id bnb.NodeID) (*bnb.Node[P], bool) {
	n, ok := s.byID[id]
	return n, ok
}

// Min returns the open node with the smallest (lower bound, id) key,
// or nil when the store is empty.
func (s *Store[P]) Min() *bnb.Node[P] {
	n, ok := s.pq.Min()
	if !ok {
		return nil
	}
	return n
}

// Ascend visits open nodes in priority order until fn returns false.
func (s *Store[P]) Ascend(fn func(*bnb.Node[P]) bool) {
	s.pq.Scan(fn)
}

// MinLower returns the smallest lower bound among open nodes, +Inf when
// the store is empty. This is the tree's global bound.
func (s *Store[P]) MinLower() float64 {
	n, ok := s.pq.Min()
	if !ok {
		return math.Inf(1)
	}
	return n.LowerBound()
}

// Update re-keys the node's priority entry around a bound mutation
// performed by apply. The node must be open; mutating a stored node's
// bounds outside Update corrupts the index.
func (s *Store[P]) Update(n *bnb.Node[P], apply func()) error {
	if _, ok := s.byID[n.ID()]; !ok {
		return fmt.Errorf("%w: update of node %d not present in store", bnb.ErrInvariantViolated, n.ID())
	}
	if _, ok := s.pq.Delete(n); !ok {
		return fmt.Errorf("%w: node %d in id map but not in priority index", bnb.ErrInvariantViolated, n.ID())
	}
	apply()
	s.pq.Set(n)
	return nil
}

// Close removes the node from both structures. Closing an id that is
// not open is an invariant breach: the engine never closes twice, so a
// missing entry means the two structures disagreed.
func (s *Store[P]) Close(id bnb.NodeID) error {
	n, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: close of unknown node %d", bnb.ErrInvariantViolated, id)
	}
	if _, ok := s.pq.Delete(n); !ok {
		return fmt.Errorf("%w: node %d in id map but not in priority index", bnb.ErrInvariantViolated, id)
	}
	delete(s.byID, id)
	return nil
}

// PruneDominated closes every open node, other than the excluded one,
// whose lower bound is at or above the incumbent. It returns the number
// of nodes closed. This is the global fathoming pass that runs after
// each incumbent improvement.
func (s *Store[P]) PruneDominated(incumbent float64, except bnb.NodeID) (int, error) {
	var doomed []bnb.NodeID
	s.pq.Scan(func(n *bnb.Node[P]) bool {
		if n.ID() != except && n.LowerBound() >= incumbent {
			doomed = append(doomed, n.ID())
		}
		return true
	})
	for _, id := range doomed {
		if err := s.Close(id); err != nil {
			return 0, err
		}
	}
	return len(doomed), nil
}
