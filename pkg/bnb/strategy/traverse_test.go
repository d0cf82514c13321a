package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optkit/bnb/internal/nodestore"
	"github.com/optkit/bnb/pkg/bnb"
)

func storeWithBounds(t *testing.T, lowers ...float64) *nodestore.Store[int] {
	t.Helper()
	s := nodestore.New[int]()
	for i, lower := range lowers {
		_, err := s.Add(bnb.NewNodeConfig(i).WithLowerBound(lower))
		require.NoError(t, err)
	}
	return s
}

func TestBestFirstSelectsSmallestBound(t *testing.T) {
	s := storeWithBounds(t, 4, 1, 3)
	n := BestFirst[int]{}.Select(s)
	require.NotNil(t, n)
	assert.Equal(t, bnb.NodeID(2), n.ID())
}

func TestBestFirstBreaksTiesByOldestID(t *testing.T) {
	s := storeWithBounds(t, 2, 2, 2)
	n := BestFirst[int]{}.Select(s)
	require.NotNil(t, n)
	assert.Equal(t, bnb.NodeID(1), n.ID())
}

func TestDepthFirstSelectsNewestNode(t *testing.T) {
	s := storeWithBounds(t, 1, 5, 3)
	n := DepthFirst[int]{}.Select(s)
	require.NotNil(t, n)
	assert.Equal(t, bnb.NodeID(3), n.ID())
}
