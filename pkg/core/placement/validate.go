package placement

import "math"

// symmetryTolerance is the permitted error in the symmetry equations.
// Centers of odd-dimension modules fall on half-integers, so an exact match
// is not always representable on the integer grid; one unit covers half a
// grid step on each side of the axis.
const symmetryTolerance = 1.0

// ValidateSymmetry checks that every module of the group sits at
// non-negative coordinates and that the symmetry equations hold within
// tolerance: paired centers sum to twice the axis and align on the other
// axis, self-symmetric centers coincide with the axis. Violations are logged
// and reported as a false return.
func (t *Tree) ValidateSymmetry() bool {
	for _, name := range t.group.Names() {
		m, err := t.Module(name)
		if err != nil {
			t.logger.Error("symmetry validation failed", "err", err)
			return false
		}
		if m.X < 0 || m.Y < 0 {
			t.logger.Error("module has negative coordinates",
				"module", name, "x", m.X, "y", m.Y)
			return false
		}
	}

	axis := t.group.Axis
	for _, p := range t.group.Pairs {
		rep, _ := t.Module(p.Rep)
		mate, _ := t.Module(p.Mate)

		var sumErr, alignErr float64
		if t.group.Type == Vertical {
			sumErr = math.Abs(rep.CenterX() + mate.CenterX() - 2*axis)
			alignErr = math.Abs(rep.CenterY() - mate.CenterY())
		} else {
			sumErr = math.Abs(rep.CenterY() + mate.CenterY() - 2*axis)
			alignErr = math.Abs(rep.CenterX() - mate.CenterX())
		}
		if sumErr > symmetryTolerance || alignErr > symmetryTolerance {
			t.logger.Error("symmetry violation for pair",
				"rep", p.Rep, "mate", p.Mate,
				"sumError", sumErr, "alignError", alignErr, "axis", axis)
			return false
		}
	}

	for _, name := range t.group.SelfSymmetric {
		m, _ := t.Module(name)
		var err float64
		if t.group.Type == Vertical {
			err = math.Abs(m.CenterX() - axis)
		} else {
			err = math.Abs(m.CenterY() - axis)
		}
		if err > symmetryTolerance {
			t.logger.Error("self-symmetric module off axis",
				"module", name, "error", err, "axis", axis)
			return false
		}
	}
	return true
}

// ValidateConnectivity reports whether all placed modules of the group,
// mirrors included, form a single symmetry island.
func (t *Tree) ValidateConnectivity() bool {
	ok := t.group.IsSymmetryIsland(t.modules)
	if !ok {
		t.logger.Error("connectivity validation failed: modules do not form a symmetry island")
	}
	return ok
}

// HasOverlaps reports whether any two placed modules of the group share
// interior area. Touching edges are allowed.
func (t *Tree) HasOverlaps() bool {
	names := t.group.Names()
	for i := 0; i < len(names); i++ {
		a, ok := t.modules[names[i]]
		if !ok {
			continue
		}
		for j := i + 1; j < len(names); j++ {
			b, ok := t.modules[names[j]]
			if !ok {
				continue
			}
			if overlapsInterior(a, b) {
				t.logger.Error("module overlap", "a", a.Name, "b", b.Name)
				return true
			}
		}
	}
	return false
}
