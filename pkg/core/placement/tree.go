package placement

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Tree is an ASF-B*-tree over one symmetry group. It borrows the module
// registry and the group descriptor from the caller; during Pack it is the
// exclusive writer of module X, Y, and Rotated fields.
type Tree struct {
	modules map[string]*Module
	group   *SymmetryGroup
	root    *Node

	preorderNames []string
	inorderNames  []string

	contour Contour
	logger  *log.Logger
}

// Option configures a Tree.
type Option func(*Tree)

// WithLogger sets the logger used for placement diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(t *Tree) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates a tree for the given module registry and symmetry group.
// BuildInitialTree must be called before the first Pack.
func New(modules map[string]*Module, group *SymmetryGroup, opts ...Option) *Tree {
	t := &Tree{
		modules: modules,
		group:   group,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Root returns the tree root, or nil before BuildInitialTree.
func (t *Tree) Root() *Node { return t.root }

// Group returns the symmetry group descriptor the tree operates on.
func (t *Tree) Group() *SymmetryGroup { return t.group }

// Module returns the named module from the registry.
func (t *Tree) Module(name string) (*Module, error) {
	m, ok := t.modules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, name)
	}
	return m, nil
}

// Preorder returns the node names of the most recent pre-order traversal.
func (t *Tree) Preorder() []string { return t.preorderNames }

// Inorder returns the node names of the most recent in-order traversal.
func (t *Tree) Inorder() []string { return t.inorderNames }

// rebuildTraversals refreshes the cached pre-order and in-order sequences
// from the current topology.
func (t *Tree) rebuildTraversals() {
	t.preorderNames = preorder(t.root, t.preorderNames[:0])
	t.inorderNames = inorder(t.root, t.inorderNames[:0])
}

// Pack runs the full packing sequence: contour packing with compaction, axis
// computation, mirror placement, and symmetry validation. It returns whether
// the resulting placement satisfies the symmetry equations; fatal errors from
// lower layers are logged and converted to a false return so an annealer can
// reject the move.
func (t *Tree) Pack() bool {
	t.rebuildTraversals()
	t.logger.Debug("packing ASF-B*-tree", "nodes", len(t.preorderNames))

	if err := t.packTree(); err != nil {
		t.logger.Error("packing failed", "err", err)
		return false
	}
	if err := t.computeAxis(); err != nil {
		t.logger.Error("axis computation failed", "err", err)
		return false
	}
	if err := t.placeMirrors(); err != nil {
		t.logger.Error("mirror placement failed", "err", err)
		return false
	}
	if !t.ValidateSymmetry() {
		t.logger.Debug("placement rejected: symmetry validation failed")
		return false
	}
	return true
}

// Rotate rotates the named representative in place. The mate of a pair picks
// up the matching orientation on the next Pack.
func (t *Tree) Rotate(name string) error {
	m, err := t.Module(name)
	if err != nil {
		return err
	}
	m.Rotate()
	return nil
}

// Swap exchanges the modules carried by two tree nodes, leaving the topology
// unchanged. The swap is undone and an error returned if it would pull a
// self-symmetric module off the boundary branch.
func (t *Tree) Swap(a, b string) error {
	na := findNode(t.root, a)
	nb := findNode(t.root, b)
	if na == nil || nb == nil {
		return fmt.Errorf("%w: swap %q <-> %q", ErrUnknownModule, a, b)
	}
	na.Name, nb.Name = nb.Name, na.Name
	if err := t.validateFeasibility(); err != nil {
		na.Name, nb.Name = nb.Name, na.Name
		return err
	}
	return nil
}

// Move detaches the named node and reattaches it as a child of dst. A node
// with two children is first rotated down along its left spine so it can be
// spliced out; if dst already has a child on the requested side, that child
// becomes the corresponding child of the moved node. The previous topology is
// restored and an error returned if the move breaks the tree shape or the
// symmetric-feasibility of the boundary branch.
func (t *Tree) Move(src, dst string, asLeftChild bool) error {
	if src == dst {
		return fmt.Errorf("%w: move %q onto itself", ErrInvalidTopology, src)
	}
	if findNode(t.root, src) == nil || findNode(t.root, dst) == nil {
		return fmt.Errorf("%w: move %q -> %q", ErrUnknownModule, src, dst)
	}

	snapshot := cloneSubtree(t.root)

	node := t.detach(src)
	target := findNode(t.root, dst)
	if node == nil || target == nil {
		// dst was inside the detached subtree's spliced chain only if the
		// tree was malformed; restore and report.
		t.root = snapshot
		return fmt.Errorf("%w: move %q -> %q", ErrInvalidTopology, src, dst)
	}

	if asLeftChild {
		node.Left = target.Left
		target.Left = node
	} else {
		node.Right = target.Right
		target.Right = node
	}

	if err := t.validateTopology(); err != nil {
		t.root = snapshot
		return err
	}
	return nil
}

// detach removes the named node from the tree and returns it with both child
// pointers cleared. Nodes with two children are rotated down along the left
// child until they can be spliced out.
func (t *Tree) detach(name string) *Node {
	node := findNode(t.root, name)
	if node == nil {
		return nil
	}

	// Rotate the node's payload down until it sits in a spliceable position.
	for node.Left != nil && node.Right != nil {
		child := node.Left
		node.Name, child.Name = child.Name, node.Name
		node = child
	}

	child := node.Left
	if child == nil {
		child = node.Right
	}

	if parent := findParent(t.root, node.Name); parent != nil {
		if parent.Left == node {
			parent.Left = child
		} else {
			parent.Right = child
		}
	} else {
		t.root = child
	}

	node.Left, node.Right = nil, nil
	return node
}

// Snapshot returns a deep copy of the current topology. An annealer can take
// a snapshot before a perturbation and hand it back to Restore to reject the
// move.
func (t *Tree) Snapshot() *Node {
	return cloneSubtree(t.root)
}

// Restore replaces the topology with a snapshot previously taken from this
// tree.
func (t *Tree) Restore(snapshot *Node) {
	t.root = snapshot
}

// BoundingBox returns the width and height of the box anchored at the origin
// that reaches the largest right edge and the largest top edge over every
// module of the group, mirrors included. Parts of modules lying below the
// origin are not counted.
func (t *Tree) BoundingBox() (int, int) {
	maxX, maxY := 0, 0
	for _, name := range t.group.Names() {
		m, ok := t.modules[name]
		if !ok {
			continue
		}
		if m.Right() > maxX {
			maxX = m.Right()
		}
		if m.Top() > maxY {
			maxY = m.Top()
		}
	}
	return maxX, maxY
}

// validateTopology checks the structural and feasibility invariants after a
// perturbation.
func (t *Tree) validateTopology() error {
	if err := validateShape(t.root, t.group.Representatives()); err != nil {
		return err
	}
	return t.validateFeasibility()
}

// String renders the current topology as an indented listing, one node per
// line, for debug output.
func (t *Tree) String() string {
	var b strings.Builder
	dumpTree(t.root, "", &b)
	return b.String()
}
