package spatial

// GetInVolume returns every item whose coordinates lie within vol, bounds
// included. Items of a node come before the items of its children, children
// being visited in index order. Nodes whose volume does not intersect vol are
// skipped entirely.
//
// The returned pointers refer to the tree's own storage and stay valid for
// the life of the tree.
func (nt *NTree[T, P]) GetInVolume(vol Volume[T]) []*P {
	var items []*P
	nt.search(vol, func(item *P) {
		items = append(items, item)
	})
	return items
}

// Search calls fn for every item GetInVolume would return, in the same order,
// without collecting them.
func (nt *NTree[T, P]) Search(vol Volume[T], fn func(item *P)) {
	nt.search(vol, fn)
}

func (nt *NTree[T, P]) search(vol Volume[T], fn func(item *P)) {
	if !nt.volume.Intersects(vol) {
		return
	}
	for i := range nt.items {
		if vol.Contains(nt.index(nt.items[i])) {
			fn(&nt.items[i])
		}
	}
	for _, child := range nt.children {
		child.search(vol, fn)
	}
}

// Walk runs fn on every node of the tree in depth-first pre-order, starting
// with nt at depth 0. The children of a node are skipped when fn returns
// false for it.
func (nt *NTree[T, P]) Walk(fn func(depth int, n *NTree[T, P]) bool) {
	nt.walk(0, fn)
}

func (nt *NTree[T, P]) walk(depth int, fn func(depth int, n *NTree[T, P]) bool) {
	if !fn(depth, nt) {
		return
	}
	for _, child := range nt.children {
		child.walk(depth+1, fn)
	}
}

// Stats describes the shape of a tree.
type Stats struct {
	Nodes    int `json:"nodes"`
	Leaves   int `json:"leaves"`
	Items    int `json:"items"`
	MaxDepth int `json:"max_depth"`
	// Number of items stored at each depth, root first. Useful to spot
	// skewed insertion.
	ItemsPerDepth []int `json:"items_per_depth"`
}

// Stats walks the tree and reports its node, leaf and item counts.
func (nt *NTree[T, P]) Stats() Stats {
	var s Stats
	nt.Walk(func(depth int, n *NTree[T, P]) bool {
		s.Nodes++
		if n.IsLeaf() {
			s.Leaves++
		}
		s.Items += len(n.items)
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		for len(s.ItemsPerDepth) <= depth {
			s.ItemsPerDepth = append(s.ItemsPerDepth, 0)
		}
		s.ItemsPerDepth[depth] += len(n.items)
		return true
	})
	return s
}
