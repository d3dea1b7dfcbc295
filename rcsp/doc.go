// Package rcsp solves the Resource-Constrained Shortest Path Problem (RCSPP):
// find a minimum-weight source→sink path through a directed graph such that
// every component of a cumulative, vector-valued resource consumption stays
// within per-component lower and upper bounds.
//
// The solver is a bidirectional dynamic-programming labelling procedure with
// dominance-based pruning and halfway-join merging, following Righini and
// Salani (2006). Two label-extending searches run alternately — a min-heap
// forward search from the source and a max-heap backward search from the
// sink, both ordered on a distinguished "critical" resource coordinate — and
// are stitched together at a dynamically shrinking halfway point once they
// have swept past each other.
//
// Overview:
//
//   - Build a Graph with AddNodes/AddEdge.
//   - Construct a Problem with New, supplying resource bounds and options.
//   - Call Run to obtain a Result: Path, ConsumedResources, TotalCost.
//
// Example usage:
//
//	g := rcsp.NewGraph(2)
//	g.AddNodes(0, 1, 2, 3, 4)
//	g.AddEdge(0, 1, -1, []float64{1, 2})
//	g.AddEdge(1, 2, -1, []float64{1, 0.3})
//	g.AddEdge(2, 3, -10, []float64{1, 3})
//	g.AddEdge(3, 4, -1, []float64{1, 10})
//	p, err := rcsp.New(g, 0, 4, []float64{4, 20}, []float64{0, 0})
//	res, err := p.Run()
//
// Scope: this package is the labelling engine and its join procedure only.
// Graph construction persistence, language bindings, benchmark file I/O, and
// CLI wrappers are deliberately out of scope; they are external collaborators
// that may build a Graph and call into this package.
package rcsp
