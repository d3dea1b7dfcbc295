package rcsp

import (
	"math"
	"testing"
)

// buildScenarioGraph builds the 5-vertex graph used by multiple scenarios:
// a cheap detour through vertex 3 that is far more resource-hungry on the
// second resource than the direct route through vertex 4.
func buildScenarioGraph(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph(2)
	if err := g.AddNodes(0, 1, 2, 3, 4); err != nil {
		t.Fatalf("AddNodes: %v", err)
	}
	edges := []struct {
		tail, head int
		weight     float64
		res        []float64
	}{
		{0, 1, -1, []float64{1, 2}},
		{1, 2, -1, []float64{1, 0.3}},
		{2, 3, -10, []float64{1, 3}},
		{2, 4, 10, []float64{1, 2}},
		{3, 4, -1, []float64{1, 10}},
	}
	for _, e := range edges {
		if err := g.AddEdge(e.tail, e.head, e.weight, e.res); err != nil {
			t.Fatalf("AddEdge(%d,%d): %v", e.tail, e.head, err)
		}
	}
	return g
}

func assertResources(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("ConsumedResources = %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("ConsumedResources = %v, want %v", got, want)
		}
	}
}

func assertPath(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Path = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Path = %v, want %v", got, want)
		}
	}
}

// The detour through vertex 3 is far cheaper (-13 against the direct route's
// +8) and still resource-feasible, so an exhaustive (non-early-terminated)
// run must find it.
func TestScenario_FullRunFindsTheCheaperDetour(t *testing.T) {
	g := buildScenarioGraph(t)
	p, err := New(g, 0, 4, []float64{4, 20}, []float64{0, 0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.TotalCost != -13 {
		t.Fatalf("TotalCost = %v, want -13", res.TotalCost)
	}
	assertPath(t, res.Path, []int{0, 1, 2, 3, 4})
	assertResources(t, res.ConsumedResources, []float64{4.0, 15.3})
}

// With a threshold of 100, the direct route through vertex 4 (weight 8) is
// the first complete source-sink path the forward search completes -- it is
// one hop past vertex 2, while the cheaper detour through vertex 3 needs a
// further hop beyond that. The threshold check fires on that first complete
// path and short-circuits before the forward search ever reaches the
// cheaper route, so the reported answer is the costlier one.
func TestScenario_ThresholdStopsAtFirstCompletePath(t *testing.T) {
	g := buildScenarioGraph(t)
	p, err := New(g, 0, 4, []float64{4, 20}, []float64{0, 0}, WithThreshold(100))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.TerminatedEarly {
		t.Fatalf("expected TerminatedEarly to be true")
	}
	if res.TotalCost != 8 {
		t.Fatalf("TotalCost = %v, want 8", res.TotalCost)
	}
	assertPath(t, res.Path, []int{0, 1, 2, 4})
	assertResources(t, res.ConsumedResources, []float64{3, 4.3})
}
