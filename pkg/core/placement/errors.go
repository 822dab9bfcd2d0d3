package placement

import "errors"

// Sentinel errors for tree construction and packing. Builder errors are
// fatal; Pack converts lower-layer failures into a false return at its
// boundary (see Tree.Pack).
var (
	// ErrEmptyGroup is returned when a symmetry group has no modules to
	// build a tree from.
	ErrEmptyGroup = errors.New("symmetry group is empty")

	// ErrUnknownModule is returned when a tree node references a name that
	// is absent from the module registry.
	ErrUnknownModule = errors.New("unknown module")

	// ErrInvalidTopology is returned when the tree is structurally broken:
	// a cycle, a missing representative, or a duplicate node.
	ErrInvalidTopology = errors.New("invalid tree topology")

	// ErrSymmetryFeasibility is returned when the self-symmetric chain does
	// not occupy the boundary branch required by the symmetry type.
	ErrSymmetryFeasibility = errors.New("tree is not symmetric-feasible")
)
