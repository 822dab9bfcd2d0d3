package floorplan

import (
	"strings"
	"testing"

	"github.com/matzehuels/symisland/pkg/core/placement"
)

func packedFixture(t *testing.T) (map[string]*placement.Module, *placement.SymmetryGroup) {
	t.Helper()
	modules := map[string]*placement.Module{
		"a":  placement.NewModule("a", 4, 6),
		"a2": placement.NewModule("a2", 4, 6),
		"s":  placement.NewModule("s", 6, 2),
	}
	group := &placement.SymmetryGroup{
		Type:          placement.Vertical,
		Pairs:         []placement.Pair{{Rep: "a", Mate: "a2"}},
		SelfSymmetric: []string{"s"},
	}
	tree := placement.New(modules, group)
	if err := tree.BuildInitialTree(); err != nil {
		t.Fatalf("BuildInitialTree() error = %v", err)
	}
	if !tree.Pack() {
		t.Fatal("Pack() failed")
	}
	return modules, group
}

func TestFromPlacement(t *testing.T) {
	modules, group := packedFixture(t)

	l, err := FromPlacement("fixture", modules, group, true)
	if err != nil {
		t.Fatalf("FromPlacement() error = %v", err)
	}

	if l.Symmetry != "vertical" {
		t.Errorf("Symmetry = %q, want vertical", l.Symmetry)
	}
	if l.Axis != group.Axis {
		t.Errorf("Axis = %v, want %v", l.Axis, group.Axis)
	}
	if len(l.Blocks) != 3 {
		t.Fatalf("len(Blocks) = %d, want 3", len(l.Blocks))
	}

	// Blocks are sorted by ID.
	ids := []string{l.Blocks[0].ID, l.Blocks[1].ID, l.Blocks[2].ID}
	if ids[0] != "a" || ids[1] != "a2" || ids[2] != "s" {
		t.Errorf("block order = %v", ids)
	}

	roles := map[string]Role{}
	for _, b := range l.Blocks {
		roles[b.ID] = b.Role
	}
	if roles["a"] != RoleRepresentative || roles["a2"] != RoleMate || roles["s"] != RoleSelfSymmetric {
		t.Errorf("roles = %v", roles)
	}

	// Bounding box covers every block.
	for _, b := range l.Blocks {
		if b.Right() > l.Width || b.Top() > l.Height {
			t.Errorf("block %s (%d,%d) exceeds bounds %dx%d", b.ID, b.Right(), b.Top(), l.Width, l.Height)
		}
	}
}

func TestFromPlacementMissingModule(t *testing.T) {
	group := &placement.SymmetryGroup{
		Type:  placement.Vertical,
		Pairs: []placement.Pair{{Rep: "a", Mate: "a2"}},
	}
	if _, err := FromPlacement("x", map[string]*placement.Module{}, group, false); err == nil {
		t.Error("FromPlacement() should fail for a missing module")
	}
}

func TestLayoutJSONRoundTrip(t *testing.T) {
	modules, group := packedFixture(t)
	l, err := FromPlacement("fixture", modules, group, true)
	if err != nil {
		t.Fatal(err)
	}

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout() error = %v", err)
	}
	back, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout() error = %v", err)
	}

	if back.Axis != l.Axis || back.Symmetry != l.Symmetry || len(back.Blocks) != len(l.Blocks) {
		t.Errorf("round trip mismatch: %+v vs %+v", back, l)
	}
	if !back.Valid {
		t.Error("Valid flag lost in round trip")
	}

	if _, err := UnmarshalLayout([]byte("{nope")); err == nil {
		t.Error("UnmarshalLayout() should reject invalid JSON")
	}
}

func TestRenderSVG(t *testing.T) {
	modules, group := packedFixture(t)
	l, err := FromPlacement("fixture", modules, group, true)
	if err != nil {
		t.Fatal(err)
	}

	svg := string(RenderSVG(l))
	if !strings.HasPrefix(svg, "<svg") {
		t.Fatalf("not an SVG document: %.40q", svg)
	}
	for _, id := range []string{"block-a", "block-a2", "block-s"} {
		if !strings.Contains(svg, id) {
			t.Errorf("SVG missing %s", id)
		}
	}
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("SVG missing the axis line")
	}

	plain := string(RenderSVG(l, WithoutLabels(), WithoutAxis(), WithScale(5)))
	if strings.Contains(plain, "<text") {
		t.Error("WithoutLabels should drop text elements")
	}
	if strings.Contains(plain, "stroke-dasharray") {
		t.Error("WithoutAxis should drop the axis line")
	}
}

func TestToDOT(t *testing.T) {
	modules, group := packedFixture(t)
	tree := placement.New(modules, group)
	if err := tree.BuildInitialTree(); err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(tree.Root(), group)
	if !strings.HasPrefix(dot, "digraph asf {") {
		t.Fatalf("not a digraph: %.40q", dot)
	}
	if !strings.Contains(dot, `"a" -> "s"`) {
		t.Errorf("DOT missing boundary edge:\n%s", dot)
	}
	if !strings.Contains(dot, "#fdd0a2") {
		t.Error("self-symmetric node should be tinted")
	}
}
