package floorplan

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/symisland/pkg/core/placement"
)

// Role classifies a block within the symmetry group.
type Role string

const (
	// RoleRepresentative marks an in-tree module.
	RoleRepresentative Role = "representative"
	// RoleMate marks a module positioned by reflection.
	RoleMate Role = "mate"
	// RoleSelfSymmetric marks a module straddling the axis.
	RoleSelfSymmetric Role = "self-symmetric"
)

// Block is one placed module in a layout.
type Block struct {
	ID      string `json:"id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Rotated bool   `json:"rotated,omitempty"`
	Role    Role   `json:"role"`
}

// Right returns the x-coordinate of the block's right edge.
func (b Block) Right() int { return b.X + b.Width }

// Top returns the y-coordinate of the block's top edge.
func (b Block) Top() int { return b.Y + b.Height }

// Layout is the serializable result of packing one symmetry group.
type Layout struct {
	Design   string  `json:"design,omitempty"`
	Symmetry string  `json:"symmetry"`
	Axis     float64 `json:"axis"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Valid    bool    `json:"valid"`
	Blocks   []Block `json:"blocks"`
}

// FromPlacement captures the current module positions of a packed group as a
// layout. Blocks are sorted by ID so the output is deterministic.
func FromPlacement(designName string, modules map[string]*placement.Module, group *placement.SymmetryGroup, valid bool) (Layout, error) {
	l := Layout{
		Design:   designName,
		Symmetry: group.Type.String(),
		Axis:     group.Axis,
		Valid:    valid,
	}

	role := func(name string) Role {
		if group.IsSelfSymmetric(name) {
			return RoleSelfSymmetric
		}
		for _, p := range group.Pairs {
			if p.Mate == name {
				return RoleMate
			}
		}
		return RoleRepresentative
	}

	for _, name := range group.Names() {
		m, ok := modules[name]
		if !ok {
			return Layout{}, fmt.Errorf("layout: module %q missing from registry", name)
		}
		l.Blocks = append(l.Blocks, Block{
			ID:      name,
			X:       m.X,
			Y:       m.Y,
			Width:   m.Width,
			Height:  m.Height,
			Rotated: m.Rotated,
			Role:    role(name),
		})
		if m.Right() > l.Width {
			l.Width = m.Right()
		}
		if m.Top() > l.Height {
			l.Height = m.Top()
		}
	}

	slices.SortFunc(l.Blocks, func(a, b Block) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return l, nil
}

// MarshalLayout serializes a layout as indented JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout parses a serialized layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parse layout: %w", err)
	}
	return l, nil
}
