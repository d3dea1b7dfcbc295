package rcsp

// ResExtFwd is a forward Resource Extension Function: given a label's
// cumulative resource vector, the arc it is extending across, and the
// label's partial path and weight so far, it returns the successor's
// resource vector (spec.md §4.2).
type ResExtFwd func(res []float64, tailID, headID int, arcRes []float64, partialPath []int, weight float64) []float64

// ResExtBwd is the backward counterpart of ResExtFwd.
type ResExtBwd func(res []float64, tailID, headID int, arcRes []float64, partialPath []int, weight float64) []float64

// ResExtJoin combines a forward and a backward resource vector across the
// single arc that connects them during Join.
type ResExtJoin func(resFwd, resBwd []float64, tailID, headID int, arcRes []float64) []float64

// RefSet is a pluggable triple of Resource Extension Functions. When all
// three are the defaults, the engine bypasses the callback machinery
// entirely and reconstructs nothing; supplying any custom REF causes all
// three to be used, and the label's partial path is reconstructed on
// demand to honor the ResExtFwd/ResExtBwd signature (spec.md §4.2).
//
// REF contract: custom REFs must be monotone non-decreasing in every
// non-critical resource coordinate. The engine's soft-feasibility check
// (spec.md §4.3 step 3) only enforces a non-critical minimum bound during
// search when that minimum is <= 0, trusting that a REF which can only
// increase non-critical resources will still satisfy a positive minimum
// by the time the label reaches its terminal vertex, where hard
// feasibility is re-checked in full. A REF that can *decrease* a
// non-critical resource breaks this invariant and must not be combined
// with a positive non-critical minimum.
type RefSet struct {
	Fwd       ResExtFwd
	Bwd       ResExtBwd
	Join      ResExtJoin
	isDefault bool
}

// IsDefault reports whether this RefSet is the built-in additive triple,
// letting the engine skip path reconstruction on the hot path.
func (rs RefSet) IsDefault() bool { return rs.isDefault }

// DefaultRefSet returns the additive forward/backward/join REFs described
// in spec.md §6.1, parameterised by the critical resource index. Its Join
// adds arcRes to resFwd and ignores resBwd; while the set is marked default
// the engine never calls it and merges through processBwdLabel instead.
func DefaultRefSet(critical int) RefSet {
	return RefSet{
		Fwd:       additiveForward,
		Bwd:       func(res []float64, tailID, headID int, arcRes []float64, _ []int, _ float64) []float64 { return additiveBackward(res, arcRes, critical) },
		Join:      func(resFwd, resBwd []float64, tailID, headID int, arcRes []float64) []float64 { return additiveForward(resFwd, tailID, headID, arcRes, nil, 0) },
		isDefault: true,
	}
}

// additiveForward implements additive_forward(res, arc_res) = res + arc_res
// componentwise (spec.md §6.1).
func additiveForward(res []float64, _, _ int, arcRes []float64, _ []int, _ float64) []float64 {
	out := make([]float64, len(res))
	for i := range res {
		out[i] = res[i] + arcRes[i]
	}
	return out
}

// additiveBackward implements the default backward REF: elementwise
// addition on every resource except the critical coordinate, which
// subtracts the arc's critical contribution (or 1, when that contribution
// is zero or negative, to guarantee strict progress around zero-critical
// cycles)
// (spec.md §4.2, §6.1, and open question 3).
func additiveBackward(res []float64, arcRes []float64, critical int) []float64 {
	out := make([]float64, len(res))
	for i := range res {
		if i == critical {
			continue
		}
		out[i] = res[i] + arcRes[i]
	}
	if arcRes[critical] > 0 {
		out[critical] = res[critical] - arcRes[critical]
	} else {
		out[critical] = res[critical] - 1
	}
	return out
}
