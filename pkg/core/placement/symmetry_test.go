package placement

import (
	"testing"
)

func TestSymmetryGroupNames(t *testing.T) {
	g := &SymmetryGroup{
		Type:          Vertical,
		Pairs:         []Pair{{Rep: "a", Mate: "a2"}, {Rep: "b", Mate: "b2"}},
		SelfSymmetric: []string{"s"},
	}

	wantReps := []string{"a", "b", "s"}
	if got := g.Representatives(); !equalStrings(got, wantReps) {
		t.Errorf("Representatives() = %v, want %v", got, wantReps)
	}

	wantNames := []string{"a", "a2", "b", "b2", "s"}
	if got := g.Names(); !equalStrings(got, wantNames) {
		t.Errorf("Names() = %v, want %v", got, wantNames)
	}

	if !g.IsSelfSymmetric("s") || g.IsSelfSymmetric("a") {
		t.Error("IsSelfSymmetric misclassified a module")
	}
	if got := g.MateOf("b"); got != "b2" {
		t.Errorf("MateOf(b) = %q, want b2", got)
	}
	if got := g.MateOf("s"); got != "" {
		t.Errorf("MateOf(s) = %q, want empty", got)
	}
}

func TestIsSymmetryIsland(t *testing.T) {
	g := &SymmetryGroup{
		Type:  Vertical,
		Pairs: []Pair{{Rep: "a", Mate: "a2"}},
	}

	tests := []struct {
		name    string
		modules map[string]*Module
		want    bool
	}{
		{
			name: "touching pair",
			modules: map[string]*Module{
				"a":  {Name: "a", X: 0, Y: 0, Width: 4, Height: 4},
				"a2": {Name: "a2", X: 4, Y: 0, Width: 4, Height: 4},
			},
			want: true,
		},
		{
			name: "separated pair",
			modules: map[string]*Module{
				"a":  {Name: "a", X: 0, Y: 0, Width: 4, Height: 4},
				"a2": {Name: "a2", X: 6, Y: 0, Width: 4, Height: 4},
			},
			want: false,
		},
		{
			name: "missing module",
			modules: map[string]*Module{
				"a": {Name: "a", X: 0, Y: 0, Width: 4, Height: 4},
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.IsSymmetryIsland(tt.modules); got != tt.want {
				t.Errorf("IsSymmetryIsland = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSymmetryIslandTransitive(t *testing.T) {
	// Three modules in a row: the ends touch only through the middle.
	g := &SymmetryGroup{
		Type:          Vertical,
		Pairs:         []Pair{{Rep: "a", Mate: "a2"}},
		SelfSymmetric: []string{"s"},
	}
	modules := map[string]*Module{
		"a":  {Name: "a", X: 0, Y: 0, Width: 4, Height: 4},
		"s":  {Name: "s", X: 4, Y: 0, Width: 4, Height: 4},
		"a2": {Name: "a2", X: 8, Y: 0, Width: 4, Height: 4},
	}
	if !g.IsSymmetryIsland(modules) {
		t.Error("chain of touching modules should form one island")
	}

	modules["s"].SetPosition(4, 10)
	if g.IsSymmetryIsland(modules) {
		t.Error("lifting the middle module should split the island")
	}
}

func TestUnionFind(t *testing.T) {
	uf := newUnionFind(5)
	for i := 0; i < 5; i++ {
		if root := uf.find(i); root != i {
			t.Errorf("find(%d) = %d, want %d", i, root, i)
		}
	}

	uf.union(0, 1)
	uf.union(3, 4)
	if uf.find(0) != uf.find(1) {
		t.Error("0 and 1 should share a root")
	}
	if uf.find(0) == uf.find(3) {
		t.Error("0 and 3 should not share a root yet")
	}
	uf.union(1, 3)
	if uf.find(0) != uf.find(4) {
		t.Error("all merged elements should share a root")
	}
	if uf.find(2) == uf.find(0) {
		t.Error("2 was never merged")
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
