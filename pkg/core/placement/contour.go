package placement

// contourPoint is one step of the contour staircase. The contour height on
// the half-open interval [x, next.x) is height; the segment after the last
// point has height 0.
type contourPoint struct {
	x      int
	height int
	next   *contourPoint
}

// Contour is the top envelope of the rectangles placed so far, kept as a
// singly linked list of points with strictly increasing x. It answers height
// queries for the packer and absorbs each newly placed rectangle.
type Contour struct {
	head *contourPoint
}

// Clear drops all contour points.
func (c *Contour) Clear() {
	c.head = nil
}

// HeightAt returns the contour height on the interval containing x, or 0 if
// x lies before the first point or beyond the last segment.
func (c *Contour) HeightAt(x int) int {
	h := 0
	for p := c.head; p != nil && p.x <= x; p = p.next {
		h = p.height
	}
	return h
}

// MaxHeight returns the maximum contour height over the strip [x, x+w).
func (c *Contour) MaxHeight(x, w int) int {
	if w <= 0 {
		return 0
	}
	right := x + w
	h := c.HeightAt(x)
	for p := c.head; p != nil && p.x < right; p = p.next {
		if p.x > x && p.height > h {
			h = p.height
		}
	}
	return h
}

// Overlaps reports whether a rectangle with bottom edge y placed on the strip
// [x, x+w) would intersect the existing contour.
func (c *Contour) Overlaps(x, y, w, h int) bool {
	return c.MaxHeight(x, w) > y
}

// Update stamps a rectangle with left edge x, bottom edge y, width w, and
// height h: the contour becomes max(old, y+h) on [x, x+w). Points covered by
// the new top are dropped, segments rising above it survive, and the height
// to the right of the stamped strip is preserved from the pre-update contour
// via a boundary point at x+w.
func (c *Contour) Update(x, y, w, h int) {
	top := y + h
	right := x + w

	// Anchor on the last point strictly left of the strip.
	var prev *contourPoint
	rest := c.head
	for rest != nil && rest.x < x {
		prev = rest
		rest = rest.next
	}

	// Old height of the segment containing x.
	oldAtX := 0
	if prev != nil {
		oldAtX = prev.height
	}
	if rest != nil && rest.x == x {
		oldAtX = rest.height
		rest = rest.next
	}

	// Merge the window [x, right): max(old, top), with a point wherever the
	// merged height changes. tail tracks the old height of the segment the
	// scan is inside; it ends as the preserved height just left of right.
	windowHead := &contourPoint{x: x, height: max(oldAtX, top)}
	windowTail := windowHead
	tail := oldAtX
	for rest != nil && rest.x < right {
		tail = rest.height
		if nh := max(tail, top); nh != windowTail.height {
			windowTail.next = &contourPoint{x: rest.x, height: nh}
			windowTail = windowTail.next
		}
		rest = rest.next
	}

	// A point already sitting exactly at the right edge carries the correct
	// height for the segment beyond the stamp; otherwise the preserved tail
	// height starts there.
	if rest == nil || rest.x > right {
		windowTail.next = &contourPoint{x: right, height: tail, next: rest}
	} else {
		windowTail.next = rest
	}

	if prev != nil {
		prev.next = windowHead
	} else {
		c.head = windowHead
	}
}

// points returns the contour as (x, height) pairs, for tests and debugging.
func (c *Contour) points() [][2]int {
	var pts [][2]int
	for p := c.head; p != nil; p = p.next {
		pts = append(pts, [2]int{p.x, p.height})
	}
	return pts
}
