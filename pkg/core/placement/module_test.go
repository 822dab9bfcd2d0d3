package placement

import "testing"

func TestModuleRotate(t *testing.T) {
	m := NewModule("amp", 10, 4)
	m.Rotate()
	if m.Width != 4 || m.Height != 10 || !m.Rotated {
		t.Errorf("after Rotate: %dx%d rotated=%v, want 4x10 rotated=true", m.Width, m.Height, m.Rotated)
	}
	m.Rotate()
	if m.Width != 10 || m.Height != 4 || m.Rotated {
		t.Errorf("after double Rotate: %dx%d rotated=%v, want 10x4 rotated=false", m.Width, m.Height, m.Rotated)
	}
}

func TestModuleSetRotation(t *testing.T) {
	m := NewModule("amp", 10, 4)
	m.SetRotation(true)
	if m.Width != 4 || !m.Rotated {
		t.Errorf("SetRotation(true): %dx%d rotated=%v", m.Width, m.Height, m.Rotated)
	}
	// Idempotent when the orientation already matches.
	m.SetRotation(true)
	if m.Width != 4 || !m.Rotated {
		t.Errorf("SetRotation(true) twice: %dx%d rotated=%v", m.Width, m.Height, m.Rotated)
	}
}

func TestModuleCenters(t *testing.T) {
	tests := []struct {
		name           string
		m              *Module
		wantCX, wantCY float64
	}{
		{"even dims", &Module{X: 0, Y: 0, Width: 10, Height: 20}, 5, 10},
		{"odd width", &Module{X: 2, Y: 0, Width: 5, Height: 4}, 4.5, 2},
		{"offset", &Module{X: 7, Y: 3, Width: 2, Height: 3}, 8, 4.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.CenterX(); got != tt.wantCX {
				t.Errorf("CenterX() = %v, want %v", got, tt.wantCX)
			}
			if got := tt.m.CenterY(); got != tt.wantCY {
				t.Errorf("CenterY() = %v, want %v", got, tt.wantCY)
			}
		})
	}
}

func TestRectangleRelations(t *testing.T) {
	base := &Module{X: 0, Y: 0, Width: 4, Height: 4}
	tests := []struct {
		name         string
		other        *Module
		wantTouch    bool
		wantInterior bool
	}{
		{"identical", &Module{X: 0, Y: 0, Width: 4, Height: 4}, true, true},
		{"interior overlap", &Module{X: 2, Y: 2, Width: 4, Height: 4}, true, true},
		{"edge adjacency", &Module{X: 4, Y: 0, Width: 4, Height: 4}, true, false},
		{"corner touch", &Module{X: 4, Y: 4, Width: 2, Height: 2}, true, false},
		{"separated", &Module{X: 5, Y: 0, Width: 4, Height: 4}, false, false},
		{"above with gap", &Module{X: 0, Y: 6, Width: 4, Height: 4}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := touches(base, tt.other); got != tt.wantTouch {
				t.Errorf("touches = %v, want %v", got, tt.wantTouch)
			}
			if got := overlapsInterior(base, tt.other); got != tt.wantInterior {
				t.Errorf("overlapsInterior = %v, want %v", got, tt.wantInterior)
			}
		})
	}
}
