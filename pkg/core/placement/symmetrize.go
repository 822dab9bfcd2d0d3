package placement

import (
	"fmt"
	"math"
)

// computeAxis derives the symmetry-axis coordinate from the packed
// representatives. The axis is pushed far enough out that every mirrored
// module lands on non-negative coordinates, with a one-unit buffer against
// rounding, and is recorded on the group descriptor.
func (t *Tree) computeAxis() error {
	switch {
	case len(t.group.Pairs) > 0:
		return t.computeAxisFromPairs()
	case len(t.group.SelfSymmetric) > 0:
		return t.computeAxisFromSelfSymmetric()
	default:
		return ErrEmptyGroup
	}
}

func (t *Tree) computeAxisFromPairs() error {
	minAxis := math.Inf(-1)

	for _, p := range t.group.Pairs {
		rep, err := t.Module(p.Rep)
		if err != nil {
			return err
		}
		mate, err := t.Module(p.Mate)
		if err != nil {
			return err
		}

		if t.group.Type == Vertical {
			// The representative's far edge bounds the axis from the left;
			// the mate needs axis >= (repCenter + mateWidth/2) / 2 to keep
			// its own left edge non-negative.
			minAxis = math.Max(minAxis, float64(rep.Right()))
			minAxis = math.Max(minAxis, (rep.CenterX()+float64(mate.Width)/2)/2)
		} else {
			minAxis = math.Max(minAxis, float64(rep.Top()))
			minAxis = math.Max(minAxis, (rep.CenterY()+float64(mate.Height)/2)/2)
		}
	}

	t.group.Axis = minAxis + 1
	t.logger.Debug("computed symmetry axis", "type", t.group.Type, "axis", t.group.Axis)
	return nil
}

func (t *Tree) computeAxisFromSelfSymmetric() error {
	maxEdge := math.Inf(-1)
	for _, name := range t.group.Representatives() {
		m, err := t.Module(name)
		if err != nil {
			return err
		}
		if t.group.Type == Vertical {
			maxEdge = math.Max(maxEdge, float64(m.Right()))
		} else {
			maxEdge = math.Max(maxEdge, float64(m.Top()))
		}
	}

	maxSpan := 0
	for _, name := range t.group.SelfSymmetric {
		m, err := t.Module(name)
		if err != nil {
			return err
		}
		if t.group.Type == Vertical && m.Width > maxSpan {
			maxSpan = m.Width
		} else if t.group.Type == Horizontal && m.Height > maxSpan {
			maxSpan = m.Height
		}
	}

	t.group.Axis = maxEdge + float64(maxSpan)/2 + 1
	t.logger.Debug("computed symmetry axis from layout bounds",
		"type", t.group.Type, "axis", t.group.Axis)
	return nil
}

// placeMirrors positions every mate by reflecting its representative across
// the axis and centers every self-symmetric module on the axis. Mates whose
// dimensions only match their representative transposed are rotated first; an
// unresolvable mismatch is logged and placement proceeds, leaving the
// violation for validation to reject.
func (t *Tree) placeMirrors() error {
	axis := t.group.Axis

	for _, p := range t.group.Pairs {
		rep, err := t.Module(p.Rep)
		if err != nil {
			return err
		}
		mate, err := t.Module(p.Mate)
		if err != nil {
			return err
		}

		rotated := false
		if rep.Width != mate.Width || rep.Height != mate.Height {
			if rep.Width == mate.Height && rep.Height == mate.Width {
				mate.Rotate()
				rotated = true
				t.logger.Debug("rotated mate to match representative", "rep", p.Rep, "mate", p.Mate)
			} else {
				t.logger.Warn("dimension mismatch within symmetry pair",
					"rep", fmt.Sprintf("%s %dx%d", p.Rep, rep.Width, rep.Height),
					"mate", fmt.Sprintf("%s %dx%d", p.Mate, mate.Width, mate.Height))
			}
		}

		if t.group.Type == Vertical {
			mateCenter := 2*axis - rep.CenterX()
			x := int(math.Round(mateCenter - float64(mate.Width)/2))
			mate.SetPosition(x, rep.Y)
		} else {
			mateCenter := 2*axis - rep.CenterY()
			y := int(math.Round(mateCenter - float64(mate.Height)/2))
			mate.SetPosition(rep.X, y)
		}

		// Pairs that matched without transposition track the
		// representative's orientation.
		if !rotated {
			mate.SetRotation(rep.Rotated)
		}
	}

	for _, name := range t.group.SelfSymmetric {
		m, err := t.Module(name)
		if err != nil {
			return err
		}
		if t.group.Type == Vertical {
			m.SetPosition(centerOnAxis(axis, m.Width), m.Y)
		} else {
			m.SetPosition(m.X, centerOnAxis(axis, m.Height))
		}
	}
	return nil
}

// centerOnAxis returns the integer low edge that centers a span of the given
// size on the axis. Rounding is refined by probing the two neighboring
// integers when the rounded center misses the axis by more than a quarter
// unit, which happens when the axis itself falls between representable
// centers.
func centerOnAxis(axis float64, span int) int {
	half := float64(span) / 2
	low := int(math.Round(axis - half))
	err := math.Abs(float64(low) + half - axis)

	if err > 0.25 {
		for _, alt := range []int{low - 1, low + 1} {
			if altErr := math.Abs(float64(alt) + half - axis); altErr < err {
				low, err = alt, altErr
			}
		}
	}
	return low
}
