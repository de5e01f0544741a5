package model

// BoundaryForest is the parent/child structure over all registered
// boundaries. It is computed fresh on every ResolveBoundaries call from
// declared parents and membership claims, never stored as mutable
// back-pointers, so the result cannot depend on the order boundaries were
// registered.
type BoundaryForest struct {
	model    *ThreatModel
	parents  map[ID]ID
	children map[ID][]*Boundary // "" holds the roots
	order    []*Boundary
}

// ResolveBoundaries computes the boundary forest. Parentage comes from two
// sources, applied in registration order: a boundary's declared parent, then
// every membership claim (a boundary listing another boundary among its
// members becomes its parent). When several boundaries claim the same
// child, the last claim wins; the source data treats containment as a tree,
// not a DAG, and this keeps that behavior observable instead of erroring.
func (tm *ThreatModel) ResolveBoundaries() *BoundaryForest {
	parents := make(map[ID]ID)
	for _, b := range tm.boundaries {
		pid := b.ParentID()
		if pid == "" {
			continue
		}
		if _, ok := tm.boundary(pid); ok {
			parents[b.Identifier()] = pid
		}
	}
	for _, b := range tm.boundaries {
		for _, member := range b.members {
			if child, ok := tm.boundary(member); ok {
				parents[child.Identifier()] = b.Identifier()
			}
		}
	}

	children := make(map[ID][]*Boundary)
	for _, b := range tm.boundaries {
		parent := parents[b.Identifier()]
		children[parent] = append(children[parent], b)
	}

	f := &BoundaryForest{
		model:    tm,
		parents:  parents,
		children: children,
	}

	// Root-first traversal: the queue starts with the no-parent boundaries
	// and each processed boundary appends its children, so siblings come
	// out in registration order, not an order derived from names.
	queue := append([]*Boundary(nil), children[""]...)
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		f.order = append(f.order, b)
		queue = append(queue, children[b.Identifier()]...)
	}
	return f
}

// Order returns every boundary in root-first traversal order.
func (f *BoundaryForest) Order() []*Boundary {
	return append([]*Boundary(nil), f.order...)
}

// Roots returns the boundaries with no parent, in registration order.
func (f *BoundaryForest) Roots() []*Boundary {
	return append([]*Boundary(nil), f.children[""]...)
}

// ChildrenOf returns the direct child boundaries of the given boundary.
func (f *BoundaryForest) ChildrenOf(id ID) []*Boundary {
	return append([]*Boundary(nil), f.children[id]...)
}

// ParentOf returns the resolved parent of the given boundary, if it has one.
func (f *BoundaryForest) ParentOf(id ID) (ID, bool) {
	parent, ok := f.parents[id]
	return parent, ok
}

// Leaves returns the fully flattened leaf node identifiers of a boundary:
// members that resolve to a boundary are expanded recursively through their
// declared members, everything else is a leaf. The result is identical no
// matter the order the involved boundaries were registered in.
func (f *BoundaryForest) Leaves(b *Boundary) []ID {
	return f.flatten(b, make(map[ID]bool))
}

func (f *BoundaryForest) flatten(b *Boundary, seen map[ID]bool) []ID {
	if seen[b.Identifier()] {
		return nil
	}
	seen[b.Identifier()] = true

	var leaves []ID
	for _, member := range b.members {
		if child, ok := f.model.boundary(member); ok {
			leaves = append(leaves, f.flatten(child, seen)...)
		} else {
			leaves = append(leaves, member)
		}
	}
	return leaves
}
