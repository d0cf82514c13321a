// Package strategy provides the two pluggable policies of the search
// engine: which open node to explore next, and which dimension to
// branch on. The search loop depends only on the interfaces here, never
// on a concrete policy.
package strategy

import (
	"github.com/optkit/bnb/pkg/bnb"
)

// Traverse picks the next node to explore from the set of open nodes.
// It must not remove the node; the loop closes it after evaluation.
// Select is only called on a non-empty set and must be deterministic:
// the same sequence of adds with the same bounds yields the same
// selection sequence.
type Traverse[P any] interface {
	Select(open bnb.NodeSet[P]) *bnb.Node[P]
}

// BestFirst selects the open node with the smallest lower bound,
// breaking ties by smallest id so the oldest node wins. This is the
// canonical policy.
type BestFirst[P any] struct{}

func (BestFirst[P]) Select(open bnb.NodeSet[P]) *bnb.Node[P] {
	return open.Min()
}

// DepthFirst selects the most recently created open node, diving into
// the newest subtree before revisiting older ones.
type DepthFirst[P any] struct{}

func (DepthFirst[P]) Select(open bnb.NodeSet[P]) *bnb.Node[P] {
	var newest *bnb.Node[P]
	open.Ascend(func(n *bnb.Node[P]) bool {
		if newest == nil || n.ID() > newest.ID() {
			newest = n
		}
		return true
	})
	return newest
}
