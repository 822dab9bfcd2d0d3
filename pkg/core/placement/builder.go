package placement

import (
	"fmt"
	"sort"
)

// BuildInitialTree deterministically constructs a symmetric-feasible
// topology over the group's representatives: self-symmetric modules form a
// contiguous chain on the boundary branch that will sit against the symmetry
// axis (the rightmost branch for vertical groups, the leftmost for
// horizontal), and the remaining representatives are stacked along
// alternating right/left children.
//
// It fails with ErrEmptyGroup when the group has no modules, with
// ErrUnknownModule when a representative is missing from the registry, and
// with ErrInvalidTopology or ErrSymmetryFeasibility when the resulting shape
// violates its invariants.
func (t *Tree) BuildInitialTree() error {
	t.root = nil

	reps := t.group.Representatives()
	if len(reps) == 0 {
		return ErrEmptyGroup
	}
	for _, name := range reps {
		if _, err := t.Module(name); err != nil {
			return err
		}
	}

	selfSym := append([]string(nil), t.group.SelfSymmetric...)
	var nonSelf []string
	for _, name := range reps {
		if !t.group.IsSelfSymmetric(name) {
			nonSelf = append(nonSelf, name)
		}
	}

	// Short modules first for vertical stacking, narrow modules first for
	// horizontal rows. The sort is stable so declaration order breaks ties.
	if t.group.Type == Vertical {
		sort.SliceStable(nonSelf, func(i, j int) bool {
			return t.modules[nonSelf[i]].Height < t.modules[nonSelf[j]].Height
		})
	} else {
		sort.SliceStable(nonSelf, func(i, j int) bool {
			return t.modules[nonSelf[i]].Width < t.modules[nonSelf[j]].Width
		})
	}

	nodes := make(map[string]*Node, len(reps))
	for _, name := range reps {
		nodes[name] = &Node{Name: name}
	}

	var rootName string
	switch {
	case len(nonSelf) > 0:
		rootName = nonSelf[0]
		nonSelf = nonSelf[1:]
	default:
		rootName = selfSym[0]
		selfSym = selfSym[1:]
	}
	t.root = nodes[rootName]
	t.logger.Debug("building initial tree", "root", rootName,
		"selfSymmetric", len(t.group.SelfSymmetric), "paired", len(t.group.Pairs))

	// Pin the self-symmetric chain to the boundary branch.
	cursor := t.root
	for _, name := range selfSym {
		if t.group.Type == Vertical {
			cursor.Right = nodes[name]
			cursor = cursor.Right
		} else {
			cursor.Left = nodes[name]
			cursor = cursor.Left
		}
	}

	if t.group.Type == Vertical {
		t.attachStackVertical(nodes, nonSelf)
	} else {
		t.attachStackHorizontal(nodes, nonSelf)
	}

	if err := validateShape(t.root, reps); err != nil {
		return err
	}
	if err := t.validateFeasibility(); err != nil {
		return err
	}
	t.logger.Debug("initial tree built", "nodes", len(reps))
	return nil
}

// attachStackVertical stacks the remaining representatives for a vertical
// group: even positions extend a right-child chain (same x, stacked upward),
// odd positions branch left (next column). The first module continues the
// boundary branch below the self-symmetric chain.
func (t *Tree) attachStackVertical(nodes map[string]*Node, names []string) {
	var cursor *Node
	for i, name := range names {
		switch {
		case i == 0:
			deepest := t.root
			for deepest.Right != nil {
				deepest = deepest.Right
			}
			deepest.Right = nodes[name]
			cursor = deepest.Right
		case i%2 == 0:
			if cursor.Right == nil {
				cursor.Right = nodes[name]
				cursor = cursor.Right
			} else if slot := findOpenRightSlot(t.root); slot != nil {
				slot.Right = nodes[name]
				cursor = slot.Right
			}
		default:
			if cursor.Left == nil {
				cursor.Left = nodes[name]
				cursor = cursor.Left
			} else if slot := findOpenLeftSlot(t.root); slot != nil {
				slot.Left = nodes[name]
				cursor = slot.Left
			}
		}
	}
}

// attachStackHorizontal is the left/right mirror of attachStackVertical for
// horizontal groups.
func (t *Tree) attachStackHorizontal(nodes map[string]*Node, names []string) {
	var cursor *Node
	for i, name := range names {
		switch {
		case i == 0:
			deepest := t.root
			for deepest.Left != nil {
				deepest = deepest.Left
			}
			deepest.Left = nodes[name]
			cursor = deepest.Left
		case i%2 == 0:
			if cursor.Left == nil {
				cursor.Left = nodes[name]
				cursor = cursor.Left
			} else if slot := findOpenLeftSlot(t.root); slot != nil {
				slot.Left = nodes[name]
				cursor = slot.Left
			}
		default:
			if cursor.Right == nil {
				cursor.Right = nodes[name]
				cursor = cursor.Right
			} else if slot := findOpenRightSlot(t.root); slot != nil {
				slot.Right = nodes[name]
				cursor = slot.Right
			}
		}
	}
}

// validateFeasibility checks that the self-symmetric modules occupy the
// boundary branch as a contiguous, order-preserving chain starting at the
// root or immediately below it.
func (t *Tree) validateFeasibility() error {
	if len(t.group.SelfSymmetric) == 0 {
		return nil
	}

	var branch []string
	for n := t.root; n != nil; {
		branch = append(branch, n.Name)
		if t.group.Type == Vertical {
			n = n.Right
		} else {
			n = n.Left
		}
	}

	// Locate the chain on the branch; it must start at the root or directly
	// after it and match the declared order.
	start := 0
	if len(branch) > 0 && !t.group.IsSelfSymmetric(branch[0]) {
		start = 1
	}
	want := t.group.SelfSymmetric
	if len(branch) < start+len(want) {
		return fmt.Errorf("%w: self-symmetric chain off the boundary branch", ErrSymmetryFeasibility)
	}
	for i, name := range want {
		if branch[start+i] != name {
			return fmt.Errorf("%w: expected %q at boundary branch position %d, found %q",
				ErrSymmetryFeasibility, name, start+i, branch[start+i])
		}
	}
	return nil
}
