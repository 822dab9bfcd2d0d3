package placement

import (
	"errors"
	"math"
	"testing"
)

func TestComputeAxisEmptyGroup(t *testing.T) {
	tree := newTestTree(nil, &SymmetryGroup{Type: Vertical})
	if err := tree.computeAxis(); !errors.Is(err, ErrEmptyGroup) {
		t.Errorf("computeAxis() error = %v, want ErrEmptyGroup", err)
	}
}

func TestComputeAxisFromPairs(t *testing.T) {
	tests := []struct {
		name string
		typ  SymmetryType
		rep  *Module
		mate *Module
		want float64
	}{
		{
			// R = 10, (5 + 5)/2 = 5: the rep edge dominates.
			name: "vertical rep edge dominates",
			typ:  Vertical,
			rep:  &Module{Name: "r", X: 0, Y: 0, Width: 10, Height: 20},
			mate: &Module{Name: "m", Width: 10, Height: 20},
			want: 11,
		},
		{
			// Wide mate: (1.5 + 10)/2 = 5.75 > rep right edge 3.
			name: "vertical mate width dominates",
			typ:  Vertical,
			rep:  &Module{Name: "r", X: 0, Y: 0, Width: 3, Height: 4},
			mate: &Module{Name: "m", Width: 20, Height: 4},
			want: 6.75,
		},
		{
			name: "horizontal",
			typ:  Horizontal,
			rep:  &Module{Name: "r", X: 0, Y: 0, Width: 4, Height: 6},
			mate: &Module{Name: "m", Width: 4, Height: 6},
			want: 7,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &SymmetryGroup{Type: tt.typ, Pairs: []Pair{{Rep: tt.rep.Name, Mate: tt.mate.Name}}}
			tree := newTestTree([]*Module{tt.rep, tt.mate}, g)
			if err := tree.computeAxis(); err != nil {
				t.Fatalf("computeAxis() error = %v", err)
			}
			if g.Axis != tt.want {
				t.Errorf("axis = %v, want %v", g.Axis, tt.want)
			}
		})
	}
}

func TestComputeAxisFromSelfSymmetric(t *testing.T) {
	s := &Module{Name: "s", X: 0, Y: 0, Width: 8, Height: 10}
	g := &SymmetryGroup{Type: Vertical, SelfSymmetric: []string{"s"}}
	tree := newTestTree([]*Module{s}, g)
	if err := tree.computeAxis(); err != nil {
		t.Fatalf("computeAxis() error = %v", err)
	}
	// maxX + W/2 + 1 = 8 + 4 + 1.
	if g.Axis != 13 {
		t.Errorf("axis = %v, want 13", g.Axis)
	}
}

func TestPlaceMirrorsRotationMatrix(t *testing.T) {
	tests := []struct {
		name        string
		mate        *Module
		wantW       int
		wantRotated bool
	}{
		{"matching dims", &Module{Name: "m", Width: 10, Height: 4}, 10, false},
		{"transposed dims", &Module{Name: "m", Width: 4, Height: 10}, 10, true},
		{"mismatched dims", &Module{Name: "m", Width: 3, Height: 3}, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := &Module{Name: "r", X: 0, Y: 0, Width: 10, Height: 4}
			g := &SymmetryGroup{Type: Vertical, Pairs: []Pair{{Rep: "r", Mate: tt.mate.Name}}, Axis: 11}
			tree := newTestTree([]*Module{rep, tt.mate}, g)
			if err := tree.placeMirrors(); err != nil {
				t.Fatalf("placeMirrors() error = %v", err)
			}
			if tt.mate.Width != tt.wantW {
				t.Errorf("mate width = %d, want %d", tt.mate.Width, tt.wantW)
			}
			if tt.mate.Rotated != tt.wantRotated {
				t.Errorf("mate rotated = %v, want %v", tt.mate.Rotated, tt.wantRotated)
			}
		})
	}
}

func TestPlaceMirrorsVerticalPosition(t *testing.T) {
	rep := &Module{Name: "r", X: 0, Y: 3, Width: 10, Height: 4}
	mate := &Module{Name: "m", Width: 10, Height: 4}
	g := &SymmetryGroup{Type: Vertical, Pairs: []Pair{{Rep: "r", Mate: "m"}}, Axis: 11}
	tree := newTestTree([]*Module{rep, mate}, g)
	if err := tree.placeMirrors(); err != nil {
		t.Fatalf("placeMirrors() error = %v", err)
	}
	// mateCenter = 22 - 5 = 17 -> x = 12; y follows the representative.
	if mate.X != 12 || mate.Y != 3 {
		t.Errorf("mate at (%d,%d), want (12,3)", mate.X, mate.Y)
	}
}

func TestCenterOnAxis(t *testing.T) {
	tests := []struct {
		axis float64
		span int
		want int
	}{
		{13, 8, 9},    // exact: 9 + 4 = 13
		{11.5, 7, 8},  // exact half-integer: 8 + 3.5 = 11.5
		{11.5, 8, 8},  // best integer center misses by 0.5
		{6, 7, 3},     // 3 + 3.5 = 6.5, error 0.5
		{5, 4, 3},     // exact: 3 + 2 = 5
	}
	for _, tt := range tests {
		got := centerOnAxis(tt.axis, tt.span)
		if got != tt.want {
			t.Errorf("centerOnAxis(%v, %d) = %d, want %d", tt.axis, tt.span, got, tt.want)
		}
		// The chosen low edge is always within tolerance of the axis.
		if err := math.Abs(float64(got) + float64(tt.span)/2 - tt.axis); err > symmetryTolerance {
			t.Errorf("centerOnAxis(%v, %d) error %v exceeds tolerance", tt.axis, tt.span, err)
		}
	}
}

func TestValidateSymmetryNegativeCoordinates(t *testing.T) {
	s := &Module{Name: "s", X: -1, Y: 0, Width: 4, Height: 4}
	g := &SymmetryGroup{Type: Vertical, SelfSymmetric: []string{"s"}, Axis: 1}
	tree := newTestTree([]*Module{s}, g)
	if tree.ValidateSymmetry() {
		t.Error("ValidateSymmetry should reject negative coordinates")
	}
}

func TestValidateSymmetryTolerance(t *testing.T) {
	rep := &Module{Name: "r", X: 0, Y: 0, Width: 4, Height: 4}
	mate := &Module{Name: "m", X: 10, Y: 0, Width: 4, Height: 4}
	g := &SymmetryGroup{Type: Vertical, Pairs: []Pair{{Rep: "r", Mate: "m"}}, Axis: 7}
	tree := newTestTree([]*Module{rep, mate}, g)

	// Centers 2 and 12 sum to 14 = 2*7: exact.
	if !tree.ValidateSymmetry() {
		t.Error("exact placement should validate")
	}

	mate.SetPosition(11, 0) // sum error 1.0, still within tolerance
	if !tree.ValidateSymmetry() {
		t.Error("error of exactly 1.0 should validate")
	}

	mate.SetPosition(12, 0) // sum error 2.0
	if tree.ValidateSymmetry() {
		t.Error("error of 2.0 should fail validation")
	}

	mate.SetPosition(11, 2) // alignment error 2.0
	if tree.ValidateSymmetry() {
		t.Error("y misalignment should fail validation")
	}
}
