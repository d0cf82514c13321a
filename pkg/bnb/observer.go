package bnb

// CloseReason classifies why the search loop closed a node. It is
// reported to observers and never drives control decisions.
type CloseReason int

const (
	// CloseNormal marks a node that was evaluated and either branched
	// on or exhausted.
	CloseNormal CloseReason = iota
	// CloseInfeasible marks a node whose relaxation had no feasible
	// point.
	CloseInfeasible
	// CloseDominated marks a node pruned because its lower bound could
	// not beat the incumbent.
	CloseDominated
)

func (r CloseReason) String() string {
	switch r {
	case CloseInfeasible:
		return "infeasible"
	case CloseDominated:
		return "dominated"
	default:
		return "normal"
	}
}

// Observer receives one callback per search iteration, after the
// processed node has been closed. Implementations are instrumentation
// only; the engine ignores their state entirely.
type Observer[P any] interface {
	NodeClosed(t TreeState, n *Node[P], reason CloseReason)
}
