package placement

// packTree places every representative by the B*-tree placement rule using a
// breadth-first traversal: the root goes to the origin, a left child sits
// flush against its parent's right edge, a right child sits on top of its
// parent at the same x. Left children prefer their parent's row when the
// contour has room there, which keeps symmetry islands tight; otherwise they
// rest on the contour. Placed representatives are then compacted.
func (t *Tree) packTree() error {
	t.contour.Clear()
	if t.root == nil {
		return ErrEmptyGroup
	}

	rootMod, err := t.Module(t.root.Name)
	if err != nil {
		return err
	}
	rootMod.SetPosition(0, 0)
	t.contour.Update(0, 0, rootMod.Width, rootMod.Height)
	t.logger.Debug("placed root", "module", t.root.Name, "w", rootMod.Width, "h", rootMod.Height)

	queue := []*Node{t.root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		parent, err := t.Module(node.Name)
		if err != nil {
			return err
		}

		if node.Left != nil {
			child, err := t.Module(node.Left.Name)
			if err != nil {
				return err
			}
			x := parent.X + parent.Width
			y := t.contour.MaxHeight(x, child.Width)
			// Staying on the parent's row packs tighter when nothing in the
			// contour is in the way.
			if !t.contour.Overlaps(x, parent.Y, child.Width, child.Height) {
				y = parent.Y
			}
			child.SetPosition(x, y)
			t.contour.Update(x, y, child.Width, child.Height)
			t.logger.Debug("placed left child", "module", node.Left.Name, "x", x, "y", y)
			queue = append(queue, node.Left)
		}

		if node.Right != nil {
			child, err := t.Module(node.Right.Name)
			if err != nil {
				return err
			}
			x := parent.X
			y := parent.Y + parent.Height
			child.SetPosition(x, y)
			t.contour.Update(x, y, child.Width, child.Height)
			t.logger.Debug("placed right child", "module", node.Right.Name, "x", x, "y", y)
			queue = append(queue, node.Right)
		}
	}

	t.compact()
	return nil
}
