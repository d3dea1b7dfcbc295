package rcsp

import (
	"math"
	"testing"
)

// buildChain constructs 0 -> 1 -> 2 -> 3 with the given per-edge weights and
// resource consumption, with external ids equal to dense indices so the
// preprocessing helpers (which operate on dense indices) are easy to verify
// by hand.
func buildChain(t *testing.T, weights []float64, res [][]float64) *Graph {
	t.Helper()
	g := NewGraph(len(res[0]))
	if err := g.AddNodes(0, 1, 2, 3); err != nil {
		t.Fatalf("AddNodes: %v", err)
	}
	for i, w := range weights {
		if err := g.AddEdge(i, i+1, w, res[i]); err != nil {
			t.Fatalf("AddEdge(%d,%d): %v", i, i+1, err)
		}
	}
	return g
}

func TestLowerBounds_Forward(t *testing.T) {
	g := buildChain(t, []float64{1, 2, 3}, [][]float64{{1}, {1}, {1}})
	bounds := lowerBounds(g, 0, false)
	want := []float64{0, 1, 3, 6}
	for i, w := range want {
		if bounds[i] != w {
			t.Errorf("lowerBounds()[%d] = %v, want %v", i, bounds[i], w)
		}
	}
}

func TestLowerBounds_Backward(t *testing.T) {
	g := buildChain(t, []float64{1, 2, 3}, [][]float64{{1}, {1}, {1}})
	bounds := lowerBounds(g, 3, true)
	want := []float64{6, 5, 3, 0}
	for i, w := range want {
		if bounds[i] != w {
			t.Errorf("lowerBounds(backward)[%d] = %v, want %v", i, bounds[i], w)
		}
	}
}

func TestLowerBounds_UnreachedVertexIsZero(t *testing.T) {
	g := NewGraph(1)
	g.AddNodes(0, 1, 2)
	g.AddEdge(0, 1, 5, []float64{1})
	// vertex 2 is unreachable from 0
	bounds := lowerBounds(g, 0, false)
	if bounds[2] != 0 {
		t.Errorf("expected unreached vertex to report a zero lower bound, got %v", bounds[2])
	}
}

func TestSelectCriticalResource(t *testing.T) {
	// The chosen resource is the one whose longest source-sink consumption
	// comes closest to its cap (score |longest_path| - max_res[r], largest
	// wins): resource 0's longest path consumes 2 against a cap of 10
	// (score -8), resource 1's consumes 9 against the same cap (score -1),
	// so resource 1, the more tightly-bound of the two, wins.
	g := NewGraph(2)
	g.AddNodes(0, 1, 2)
	g.AddEdge(0, 1, 1, []float64{1, 4})
	g.AddEdge(1, 2, 1, []float64{1, 5})

	got := selectCriticalResource(g, []float64{10, 10}, 0, 2)
	if got != 1 {
		t.Errorf("selectCriticalResource() = %d, want 1", got)
	}
}

func TestSelectCriticalResource_SkipsUnboundedResource(t *testing.T) {
	// The 0<->1 cycle makes resource 0's longest source-sink path unbounded
	// (its negated graph carries a negative cycle), so the selector must
	// skip resource 0 entirely and fall back to resource 1, whose own
	// negated graph is cycle-free.
	g := NewGraph(2)
	g.AddNodes(0, 1, 2)
	g.AddEdge(0, 1, 1, []float64{1, 3})
	g.AddEdge(1, 0, 1, []float64{1, -100})
	g.AddEdge(1, 2, 1, []float64{1, 1})

	got := selectCriticalResource(g, []float64{10, 10}, 0, 2)
	if got != 1 {
		t.Errorf("selectCriticalResource() = %d, want 1 (resource 0's cycle must be skipped)", got)
	}
}

func TestBellmanFordFrom_NegativeCycle(t *testing.T) {
	g := NewGraph(1)
	g.AddNodes(0, 1, 2)
	g.AddEdge(0, 1, -1, []float64{0})
	g.AddEdge(1, 2, -1, []float64{0})
	g.AddEdge(2, 0, -1, []float64{0})

	dist, _, negCycle := bellmanFordFrom(g, 0, false)
	if !negCycle {
		t.Errorf("expected negative cycle to be detected")
	}
	_ = dist
}

func TestBellmanFordFrom_UnreachedVertexIsInf(t *testing.T) {
	g := NewGraph(1)
	g.AddNodes(0, 1, 2)
	g.AddEdge(0, 1, 1, []float64{0})

	dist, prev, negCycle := bellmanFordFrom(g, 0, false)
	if negCycle {
		t.Errorf("unexpected negative cycle")
	}
	if !math.IsInf(dist[2], 1) {
		t.Errorf("expected vertex 2 to be unreached, got dist=%v", dist[2])
	}
	if prev[2] != -1 {
		t.Errorf("expected unreached vertex to have no predecessor, got %v", prev[2])
	}
}
