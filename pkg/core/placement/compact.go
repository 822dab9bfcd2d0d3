package placement

import "sort"

// compact removes slack from the packed representatives without reordering
// them: modules are translated toward the origin, then pulled left against
// the nearest module they overlap vertically, then pulled down against the
// nearest module they overlap horizontally. Horizontal groups reverse the
// order and compact the y-axis first, then the x-axis. Mirrors
// are re-derived afterwards by the symmetrizer, so only representatives move
// here.
func (t *Tree) compact() {
	reps := t.repModules()
	if len(reps) == 0 {
		return
	}

	shiftToOrigin(reps)
	if t.group.Type == Vertical {
		compactAxis(reps, xAxis)
		compactAxis(reps, yAxis)
	} else {
		compactAxis(reps, yAxis)
		compactAxis(reps, xAxis)
	}
}

// Normalize shifts every module in the group to non-negative coordinates and
// compacts the representatives in both directions. It is not part of Pack;
// callers that invoke it after mirrors were placed must re-run Pack before
// reading mirrored coordinates.
func (t *Tree) Normalize() {
	minX, minY := 0, 0
	for _, name := range t.group.Names() {
		if m, ok := t.modules[name]; ok {
			if m.X < minX {
				minX = m.X
			}
			if m.Y < minY {
				minY = m.Y
			}
		}
	}
	if minX < 0 || minY < 0 {
		for _, name := range t.group.Names() {
			if m, ok := t.modules[name]; ok {
				m.SetPosition(m.X-minX, m.Y-minY)
			}
		}
	}

	reps := t.repModules()
	compactAxis(reps, xAxis)
	compactAxis(reps, yAxis)
}

// repModules returns the representative modules present in the registry.
func (t *Tree) repModules() []*Module {
	names := t.group.Representatives()
	reps := make([]*Module, 0, len(names))
	for _, name := range names {
		if m, ok := t.modules[name]; ok {
			reps = append(reps, m)
		}
	}
	return reps
}

// shiftToOrigin translates the modules so the minimum x and y become zero.
func shiftToOrigin(mods []*Module) {
	minX, minY := mods[0].X, mods[0].Y
	for _, m := range mods[1:] {
		if m.X < minX {
			minX = m.X
		}
		if m.Y < minY {
			minY = m.Y
		}
	}
	if minX > 0 || minY > 0 {
		dx, dy := 0, 0
		if minX > 0 {
			dx = minX
		}
		if minY > 0 {
			dy = minY
		}
		for _, m := range mods {
			m.SetPosition(m.X-dx, m.Y-dy)
		}
	}
}

type axis int

const (
	xAxis axis = iota
	yAxis
)

// compactAxis pulls each module toward zero along one axis until it rests
// against an earlier module it overlaps on the other axis. Modules are
// processed in ascending coordinate order with name tie-breaks so repeated
// packs are deterministic.
func compactAxis(mods []*Module, a axis) {
	order := append([]*Module(nil), mods...)
	sort.SliceStable(order, func(i, j int) bool {
		ci, cj := coord(order[i], a), coord(order[j], a)
		if ci != cj {
			return ci < cj
		}
		return order[i].Name < order[j].Name
	})

	for i, m := range order {
		floor := 0
		for _, prev := range order[:i] {
			if overlapsCross(prev, m, a) {
				if far := coord(prev, a) + span(prev, a); far > floor {
					floor = far
				}
			}
		}
		if floor < coord(m, a) {
			setCoord(m, a, floor)
		}
	}
}

func coord(m *Module, a axis) int {
	if a == xAxis {
		return m.X
	}
	return m.Y
}

func span(m *Module, a axis) int {
	if a == xAxis {
		return m.Width
	}
	return m.Height
}

func setCoord(m *Module, a axis, v int) {
	if a == xAxis {
		m.X = v
	} else {
		m.Y = v
	}
}

// overlapsCross reports whether two modules overlap on the axis orthogonal
// to a, which is what forbids them from sharing a coordinate range along a.
func overlapsCross(p, m *Module, a axis) bool {
	if a == xAxis {
		return p.Y < m.Top() && m.Y < p.Top()
	}
	return p.X < m.Right() && m.X < p.Right()
}
