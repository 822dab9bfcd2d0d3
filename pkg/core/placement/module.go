package placement

// Module is a rectangular circuit block. The placement core borrows modules
// from the caller's registry and mutates only X, Y, and Rotated; Width and
// Height describe the current orientation and are swapped by Rotate.
type Module struct {
	Name    string
	Width   int
	Height  int
	X       int
	Y       int
	Rotated bool
}

// NewModule creates an unplaced module at the origin.
func NewModule(name string, width, height int) *Module {
	return &Module{Name: name, Width: width, Height: height}
}

// Rotate swaps the module's width and height and toggles its rotation flag.
func (m *Module) Rotate() {
	m.Width, m.Height = m.Height, m.Width
	m.Rotated = !m.Rotated
}

// SetRotation forces the rotation flag to rotated, swapping dimensions if the
// current orientation differs.
func (m *Module) SetRotation(rotated bool) {
	if m.Rotated != rotated {
		m.Rotate()
	}
}

// SetPosition moves the module's bottom-left corner to (x, y).
func (m *Module) SetPosition(x, y int) {
	m.X = x
	m.Y = y
}

// Right returns the x-coordinate of the module's right edge.
func (m *Module) Right() int { return m.X + m.Width }

// Top returns the y-coordinate of the module's top edge.
func (m *Module) Top() int { return m.Y + m.Height }

// CenterX returns the horizontal center, a half-integer for odd widths.
func (m *Module) CenterX() float64 { return float64(m.X) + float64(m.Width)/2 }

// CenterY returns the vertical center, a half-integer for odd heights.
func (m *Module) CenterY() float64 { return float64(m.Y) + float64(m.Height)/2 }

// overlapsInterior reports whether two modules share interior area.
// Touching edges or corners do not count.
func overlapsInterior(a, b *Module) bool {
	return a.X < b.Right() && b.X < a.Right() && a.Y < b.Top() && b.Y < a.Top()
}

// touches reports whether two module rectangles share boundary or interior.
func touches(a, b *Module) bool {
	return a.X <= b.Right() && b.X <= a.Right() && a.Y <= b.Top() && b.Y <= a.Top()
}
