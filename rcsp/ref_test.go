package rcsp

import "testing"

func TestAdditiveForward(t *testing.T) {
	res := []float64{1, 2}
	arcRes := []float64{3, 4}
	got := additiveForward(res, 0, 0, arcRes, nil, 0)
	want := []float64{4, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("additiveForward()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	// Must not alias the input: mutating the result must leave res untouched.
	got[0] = 999
	if res[0] != 1 {
		t.Errorf("additiveForward must not alias its input resource vector")
	}
}

func TestAdditiveBackward(t *testing.T) {
	tests := []struct {
		name     string
		res      []float64
		arcRes   []float64
		critical int
		want     []float64
	}{
		{"positive critical contribution subtracts", []float64{10, 5}, []float64{3, 2}, 0, []float64{7, 7}},
		{"zero critical contribution subtracts one", []float64{10, 5}, []float64{0, 2}, 0, []float64{9, 7}},
		{"critical resource in second slot", []float64{5, 10}, []float64{2, 4}, 1, []float64{7, 6}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := additiveBackward(tc.res, tc.arcRes, tc.critical)
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("additiveBackward()[%d] = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestDefaultRefSet_IsDefault(t *testing.T) {
	refs := DefaultRefSet(0)
	if !refs.IsDefault() {
		t.Errorf("expected DefaultRefSet to report IsDefault")
	}
}

func TestDefaultRefSet_ForwardBackwardConsistency(t *testing.T) {
	refs := DefaultRefSet(0)
	res := []float64{1, 1}
	arcRes := []float64{2, 3}

	fwd := refs.Fwd(res, 0, 1, arcRes, nil, 0)
	if fwd[0] != 3 || fwd[1] != 4 {
		t.Errorf("Fwd() = %v, want [3 4]", fwd)
	}

	bwd := refs.Bwd(res, 0, 1, arcRes, nil, 0)
	// Critical resource (index 0) subtracts, non-critical adds.
	if bwd[0] != -1 || bwd[1] != 4 {
		t.Errorf("Bwd() = %v, want [-1 4]", bwd)
	}
}

func TestWithRefCallback_PanicsOnIncompleteTriple(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected WithRefCallback to panic on an incomplete REF triple")
		}
	}()
	WithRefCallback(RefSet{Fwd: additiveForward})
}
