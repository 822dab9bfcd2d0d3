// Package design reads symisland design files: TOML documents declaring the
// rectangular modules of a symmetry group and the symmetry constraint over
// them.
//
// A design file looks like:
//
//	name = "ota_input"
//
//	[[modules]]
//	name   = "m1"
//	width  = 12
//	height = 20
//
//	[[modules]]
//	name   = "m2"
//	width  = 12
//	height = 20
//
//	[symmetry]
//	type  = "vertical"
//	pairs = [["m1", "m2"]]
//	self_symmetric = []
package design

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/symisland/pkg/core/placement"
)

// ErrInvalidDesign is wrapped by all validation failures in this package.
var ErrInvalidDesign = errors.New("invalid design")

// Design is a parsed design file.
type Design struct {
	Name     string       `toml:"name"`
	Modules  []ModuleDecl `toml:"modules"`
	Symmetry SymmetryDecl `toml:"symmetry"`
}

// ModuleDecl declares one rectangular module.
type ModuleDecl struct {
	Name   string `toml:"name"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// SymmetryDecl declares the symmetry constraint of the design.
type SymmetryDecl struct {
	Type          string     `toml:"type"`
	Pairs         [][]string `toml:"pairs"`
	SelfSymmetric []string   `toml:"self_symmetric"`
}

// Load reads and validates a design file.
func Load(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read design file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a design document.
func Parse(data []byte) (*Design, error) {
	var d Design
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse design: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks the declaration for structural problems: unknown or
// duplicate module names, nonpositive dimensions, modules claimed by more
// than one symmetry role, and an unknown symmetry type.
func (d *Design) Validate() error {
	if len(d.Modules) == 0 {
		return fmt.Errorf("%w: no modules declared", ErrInvalidDesign)
	}

	declared := make(map[string]bool, len(d.Modules))
	for _, m := range d.Modules {
		if m.Name == "" {
			return fmt.Errorf("%w: module with empty name", ErrInvalidDesign)
		}
		if declared[m.Name] {
			return fmt.Errorf("%w: duplicate module %q", ErrInvalidDesign, m.Name)
		}
		if m.Width <= 0 || m.Height <= 0 {
			return fmt.Errorf("%w: module %q has nonpositive dimensions %dx%d",
				ErrInvalidDesign, m.Name, m.Width, m.Height)
		}
		declared[m.Name] = true
	}

	if _, err := d.symmetryType(); err != nil {
		return err
	}

	claimed := make(map[string]bool)
	claim := func(name string) error {
		if !declared[name] {
			return fmt.Errorf("%w: symmetry references undeclared module %q", ErrInvalidDesign, name)
		}
		if claimed[name] {
			return fmt.Errorf("%w: module %q appears in more than one symmetry role", ErrInvalidDesign, name)
		}
		claimed[name] = true
		return nil
	}

	for _, p := range d.Symmetry.Pairs {
		if len(p) != 2 {
			return fmt.Errorf("%w: pair %v must name exactly two modules", ErrInvalidDesign, p)
		}
		if p[0] == p[1] {
			return fmt.Errorf("%w: pair %v names the same module twice", ErrInvalidDesign, p)
		}
		for _, name := range p {
			if err := claim(name); err != nil {
				return err
			}
		}
	}
	for _, name := range d.Symmetry.SelfSymmetric {
		if err := claim(name); err != nil {
			return err
		}
	}

	if len(claimed) == 0 {
		return fmt.Errorf("%w: symmetry group is empty", ErrInvalidDesign)
	}
	for name := range declared {
		if !claimed[name] {
			return fmt.Errorf("%w: module %q belongs to no symmetry role", ErrInvalidDesign, name)
		}
	}
	return nil
}

func (d *Design) symmetryType() (placement.SymmetryType, error) {
	switch d.Symmetry.Type {
	case "vertical", "":
		return placement.Vertical, nil
	case "horizontal":
		return placement.Horizontal, nil
	default:
		return 0, fmt.Errorf("%w: unknown symmetry type %q", ErrInvalidDesign, d.Symmetry.Type)
	}
}

// Registry builds the module registry the placement core operates on.
func (d *Design) Registry() map[string]*placement.Module {
	registry := make(map[string]*placement.Module, len(d.Modules))
	for _, m := range d.Modules {
		registry[m.Name] = placement.NewModule(m.Name, m.Width, m.Height)
	}
	return registry
}

// Group builds the placement symmetry-group descriptor. Validate must have
// passed.
func (d *Design) Group() *placement.SymmetryGroup {
	typ, _ := d.symmetryType()
	g := &placement.SymmetryGroup{Type: typ}
	for _, p := range d.Symmetry.Pairs {
		g.Pairs = append(g.Pairs, placement.Pair{Rep: p[0], Mate: p[1]})
	}
	g.SelfSymmetric = append(g.SelfSymmetric, d.Symmetry.SelfSymmetric...)
	return g
}
