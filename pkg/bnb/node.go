package bnb

import (
	"fmt"
	"math"
)

// Node is one subproblem of the search tree. Its bounds are kept in
// the internal minimization form; Payload is the problem-specific state
// owned exclusively by this node (variable domains, solver status, ...)
// and is the only part an evaluator may mutate. A node is open while it
// is held by the tree's store and never mutated again once closed.
type Node[P any] struct {
	id    NodeID
	lower float64
	upper float64

	Payload P
}

// ID returns the node's unique identifier.
func (n *Node[P]) ID() NodeID { return n.id }

// LowerBound returns the node's lower bound in internal form.
func (n *Node[P]) LowerBound() float64 { return n.lower }

// UpperBound returns the node's upper bound in internal form.
func (n *Node[P]) UpperBound() float64 { return n.upper }

// Fold combines freshly evaluated bounds with the stored ones. The
// lower bound only ever tightens: a relaxation returning a looser bound
// than a previous evaluation must not loosen the node. Callers that
// hold the node in a store must re-key its priority entry around this
// call; the search loop does so via the store's Update.
func (n *Node[P]) Fold(lower, upper float64) {
	n.lower = math.Max(n.lower, lower)
	n.upper = upper
}

func (n *Node[P]) String() string {
	return fmt.Sprintf("node %d [%g, %g]", n.id, n.lower, n.upper)
}

// NodeConfig describes everything about a new node except the
// identifier and bookkeeping the store assigns. Construct it with
// NewNodeConfig; the zero value is rejected by Validate so a node can
// never enter the tree with unset bounds.
type NodeConfig[P any] struct {
	Payload P
	Lower   float64
	Upper   float64

	valid bool
}

// NewNodeConfig returns a config for the given payload with the bounds
// at their uninformative defaults (-Inf, +Inf).
func NewNodeConfig[P any](payload P) NodeConfig[P] {
	return NodeConfig[P]{
		Payload: payload,
		Lower:   math.Inf(-1),
		Upper:   math.Inf(1),
		valid:   true,
	}
}

// WithLowerBound sets the node's initial lower bound in internal form.
// Children inherit their parent's bound this way.
func (c NodeConfig[P]) WithLowerBound(lower float64) NodeConfig[P] {
	c.Lower = lower
	return c
}

// WithUpperBound sets the node's initial upper bound in internal form.
func (c NodeConfig[P]) WithUpperBound(upper float64) NodeConfig[P] {
	c.Upper = upper
	return c
}

// Validate rejects configs that were not built through NewNodeConfig or
// that carry NaN bounds. Violations are programming errors by the
// extension author and fail the Add immediately.
func (c NodeConfig[P]) Validate() error {
	if !c.valid {
		return fmt.Errorf("node config not built with NewNodeConfig")
	}
	if math.IsNaN(c.Lower) || math.IsNaN(c.Upper) {
		return fmt.Errorf("node config has NaN bounds")
	}
	if c.Lower > c.Upper {
		return fmt.Errorf("node config lower bound %g exceeds upper bound %g", c.Lower, c.Upper)
	}
	return nil
}

// NewNode materializes a config into a node under the given id. Stores
// call this when they admit a config; it is exported for custom store
// implementations and tests.
func NewNode[P any](id NodeID, c NodeConfig[P]) *Node[P] {
	return &Node[P]{
		id:      id,
		lower:   c.Lower,
		upper:   c.Upper,
		Payload: c.Payload,
	}
}
