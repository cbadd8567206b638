package capsearch

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symcap/polytope"
	"github.com/katalvlaran/symcap/reebgraph"
)

// cycleEdges re-collects the EdgeData sequence of a result cycle from the
// graph it was found in.
func cycleEdges(t *testing.T, g *reebgraph.RidgeGraph, cycle []int) []reebgraph.EdgeData {
	t.Helper()
	edges := make([]reebgraph.EdgeData, 0, len(cycle))
	for i, from := range cycle {
		to := cycle[(i+1)%len(cycle)]
		found := false
		for _, ed := range g.Edges[from] {
			if ed.To == to {
				edges = append(edges, ed)
				found = true
				break
			}
		}
		require.True(t, found, "no edge %d -> %d", from, to)
	}

	return edges
}

func TestExactValidate_CubeOrbit(t *testing.T) {
	p, err := polytope.Build(polytope.Hypercube(1))
	require.NoError(t, err)
	g, err := reebgraph.NewRidgeGraph(p)
	require.NoError(t, err)
	res, err := Search(g)
	require.NoError(t, err)

	edges := cycleEdges(t, g, res.Cycle)
	assert.NoError(t, exactValidate(p, edges, res.FixedPoint, res.Capacity))
}

func TestExactValidate_RejectsWrongAction(t *testing.T) {
	p, err := polytope.Build(polytope.Hypercube(1))
	require.NoError(t, err)
	g, err := reebgraph.NewRidgeGraph(p)
	require.NoError(t, err)
	res, err := Search(g)
	require.NoError(t, err)

	edges := cycleEdges(t, g, res.Cycle)
	assert.Error(t, exactValidate(p, edges, res.FixedPoint, res.Capacity/2))
}

func TestSolveRat_UniqueSolution(t *testing.T) {
	// x = (1, 2, 3, 4) from a diagonal system.
	rows := make([][]*big.Rat, 4)
	for i := 0; i < 4; i++ {
		rows[i] = make([]*big.Rat, 5)
		for j := 0; j < 5; j++ {
			rows[i][j] = new(big.Rat)
		}
		rows[i][i].SetInt64(2)
		rows[i][4].SetInt64(int64(2 * (i + 1)))
	}

	part, basis, err := solveRat(rows)
	require.NoError(t, err)
	assert.Empty(t, basis)
	for i := 0; i < 4; i++ {
		assert.Zero(t, part[i].Cmp(big.NewRat(int64(i+1), 1)), "coordinate %d", i)
	}
}

func TestSolveRat_Inconsistent(t *testing.T) {
	// x1 = 1 and x1 = 2 cannot hold together.
	rows := make([][]*big.Rat, 2)
	for i := 0; i < 2; i++ {
		rows[i] = make([]*big.Rat, 5)
		for j := 0; j < 5; j++ {
			rows[i][j] = new(big.Rat)
		}
		rows[i][0].SetInt64(1)
		rows[i][4].SetInt64(int64(i + 1))
	}

	_, _, err := solveRat(rows)
	assert.Error(t, err)
}

func TestSolveRat_NullspaceAndPinning(t *testing.T) {
	// x1 = 5, x2 = 7, two free coordinates.
	rows := make([][]*big.Rat, 2)
	vals := []int64{5, 7}
	for i := 0; i < 2; i++ {
		rows[i] = make([]*big.Rat, 5)
		for j := 0; j < 5; j++ {
			rows[i][j] = new(big.Rat)
		}
		rows[i][i].SetInt64(1)
		rows[i][4].SetInt64(vals[i])
	}

	part, basis, err := solveRat(rows)
	require.NoError(t, err)
	require.Len(t, basis, 2)

	// Pinning to a target inside the solution space recovers the target.
	target := rvec{
		big.NewRat(5, 1), big.NewRat(7, 1),
		big.NewRat(-3, 2), big.NewRat(9, 4),
	}
	got := pinToTarget(part, basis, target)
	for i := 0; i < 4; i++ {
		assert.Zero(t, got[i].Cmp(target[i]), "coordinate %d", i)
	}
}
