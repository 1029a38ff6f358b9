package sumtree

import "fmt"

// Check validates structural tree invariants.
//
// This checker is intentionally strict and meant for tests: it recounts every
// subtree and compares against the cached sizes.
func (t *Tree[I, S]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if t.root == nil {
		if t.height != 0 {
			return fmt.Errorf("%w: empty tree must have height=0", ErrInvalidConfig)
		}
		return nil
	}
	if t.height <= 0 {
		return fmt.Errorf("%w: non-empty tree must have height > 0", ErrInvalidConfig)
	}
	items, height, err := t.checkNode(t.root, true)
	if err != nil {
		return err
	}
	if height != t.height {
		return fmt.Errorf("%w: height mismatch (%d != %d)", ErrInvalidConfig, height, t.height)
	}
	if items != t.root.itemCount() {
		return fmt.Errorf("%w: cached root size mismatch (%d != %d)",
			ErrInvalidConfig, t.root.itemCount(), items)
	}
	return nil
}

func (t *Tree[I, S]) checkNode(n treeNode[I, S], isRoot bool) (items int, height int, err error) {
	if n == nil {
		return 0, 0, fmt.Errorf("%w: nil node", ErrInvalidConfig)
	}
	if n.isLeaf() {
		leaf := n.(*leafNode[I, S])
		if leaf == nil {
			return 0, 0, fmt.Errorf("%w: nil leaf node", ErrInvalidConfig)
		}
		if len(leaf.items) == 0 {
			return 0, 0, fmt.Errorf("%w: empty leaf node", ErrInvalidConfig)
		}
		if len(leaf.items) > MaxLeafItems {
			return 0, 0, fmt.Errorf("%w: leaf occupancy %d exceeds %d",
				ErrInvalidConfig, len(leaf.items), MaxLeafItems)
		}
		return len(leaf.items), 1, nil
	}
	inner := n.(*innerNode[I, S])
	if inner == nil {
		return 0, 0, fmt.Errorf("%w: nil internal node", ErrInvalidConfig)
	}
	if len(inner.children) == 0 {
		return 0, 0, fmt.Errorf("%w: internal node has no children", ErrInvalidConfig)
	}
	if !isRoot {
		if len(inner.children) > MaxChildren {
			return 0, 0, fmt.Errorf("%w: child count %d exceeds degree %d",
				ErrInvalidConfig, len(inner.children), MaxChildren)
		}
	}
	var totalItems int
	var childHeight int
	for i, child := range inner.children {
		if child == nil {
			return 0, 0, fmt.Errorf("%w: nil child at index %d", ErrInvalidConfig, i)
		}
		cItems, cHeight, cErr := t.checkNode(child, false)
		if cErr != nil {
			return 0, 0, cErr
		}
		totalItems += cItems
		if i == 0 {
			childHeight = cHeight
		} else if cHeight != childHeight {
			return 0, 0, fmt.Errorf("%w: non-uniform subtree heights", ErrInvalidConfig)
		}
	}
	if inner.size != totalItems {
		return 0, 0, fmt.Errorf("%w: cached subtree size mismatch (%d != %d)",
			ErrInvalidConfig, inner.size, totalItems)
	}
	return totalItems, childHeight + 1, nil
}
