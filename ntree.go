// Package spatial implements N-dimensional subdividing spatial indexes.
// Common dimension-specific types are the 2-dimensional (quadtree) and
// 3-dimensional (octree) variants, found in the quadtree and octree
// subpackages. Both are built on the NTree type of this package.
//
// An NTree is an insertion and range-query index. It never merges nodes,
// never removes items and never rebalances after skewed insertion.
//
// Items are routed into children with half-open containment (the upper bound
// is exclusive except on the outer bound of the whole tree), so the children
// of a node partition it without gaps or overlaps and a point accepted by
// the root is never lost after a subdivision. Queries use the closed
// containment of Volume.Contains.
//
// An NTree is not safe for concurrent use. Queries may run concurrently with
// each other but not with Insert.
package spatial

import (
	"github.com/cznic/mathutil"
)

// DefaultCapacity is the number of items a node stores before subdividing
// when no capacity is given.
const DefaultCapacity = 8

// MaxN is the maximum number of dimensions handled by this lib. Currently
// restricted by the number of usable bits in Go's int type. Volume.Validate
// rejects volumes with more axes.
const MaxN = 63

// NTree is a node of an N-dimensional subdivision tree: a bounding volume,
// the items stored directly in it and, once it is full, its 2^N children.
type NTree[T Scalar, P any] struct {
	capacity int
	items    []P
	volume   Volume[T]
	// closed[i] is set when volume.Max[i] is the outer bound of the root,
	// making the upper bound of axis i inclusive for insertion.
	closed []bool
	// Slice for child storage, 2^n once initialized.
	children []*NTree[T, P]
	index    Projection[T, P]
}

// New creates an empty tree over vol with DefaultCapacity. index returns the
// coordinates of an item and must yield vol.N() values.
func New[T Scalar, P any](vol Volume[T], index func(item P) []T) *NTree[T, P] {
	return WithCapacity(vol, DefaultCapacity, index)
}

// WithCapacity creates an empty tree over vol whose nodes store up to
// capacity items before subdividing. A capacity below 1 is treated as 1.
func WithCapacity[T Scalar, P any](vol Volume[T], capacity int, index func(item P) []T) *NTree[T, P] {
	closed := make([]bool, vol.N())
	for i := range closed {
		closed[i] = true
	}
	return newNode[T, P](vol, capacity, closed, index)
}

func newNode[T Scalar, P any](vol Volume[T], capacity int, closed []bool, index func(item P) []T) *NTree[T, P] {
	if capacity < 1 {
		capacity = 1
	}
	return &NTree[T, P]{
		capacity: capacity,
		items:    make([]P, 0, capacity),
		volume:   vol,
		closed:   closed,
		index:    index,
	}
}

// N returns the number of dimensions (N) for this NTree.
func (nt *NTree[T, P]) N() int {
	return nt.volume.N()
}

// Volume returns the bounding volume of this node.
func (nt *NTree[T, P]) Volume() Volume[T] {
	return nt.volume
}

// Capacity returns the number of items this node stores before subdividing.
func (nt *NTree[T, P]) Capacity() int {
	return nt.capacity
}

// IsLeaf reports whether this node has not subdivided yet.
func (nt *NTree[T, P]) IsLeaf() bool {
	return nt.children == nil
}

// Items returns the items stored directly in this node, excluding the ones
// held by its children. The slice must not be modified.
func (nt *NTree[T, P]) Items() []P {
	return nt.items
}

// Len returns the number of items in this node and all of its children.
func (nt *NTree[T, P]) Len() int {
	n := len(nt.items)
	for _, child := range nt.children {
		n += child.Len()
	}
	return n
}

// Insert adds item to the tree, subdividing the node it lands in if that
// node is full. It returns false when the item lies outside the tree's
// volume, in which case the tree is left unchanged.
func (nt *NTree[T, P]) Insert(item P) bool {
	return nt.insert(item, nt.index(item))
}

func (nt *NTree[T, P]) insert(item P, p []T) bool {
	if !nt.volume.routes(p, nt.closed) {
		return false
	}
	if len(nt.items) < nt.capacity {
		nt.items = append(nt.items, item)
		return true
	}
	if nt.children == nil {
		nt.subdivide()
	}
	// the children partition this node, only one of them can accept p.
	return nt.children[nt.childIndex(p)].insert(item, p)
}

// Bitwise operations on array indices are used to keep track of what subset of
// space each child occupies, as described here:
// http://www.brandonpelfrey.com/blog/coding-a-simple-octree/
func hasBit(n int, pos uint) bool {
	val := n & (1 << pos)
	return (val > 0)
}

func setBit(n int, pos uint) int {
	n |= (1 << pos)
	return n
}

// subdivide creates the 2^N equally sized children of the node. Child i
// covers the upper half of axis j when bit j of i is set, which gives NW,
// NE, SW, SE in two dimensions and the same four quadrants below and then
// above the third axis midpoint in three dimensions.
func (nt *NTree[T, P]) subdivide() {
	n := nt.N()
	size := mathutil.ModPowUint64(2, uint64(n), mathutil.MaxInt)
	center := nt.volume.pivot()

	nt.children = make([]*NTree[T, P], size)
	for i := range nt.children {
		min := make([]T, n)
		max := make([]T, n)
		closed := make([]bool, n)
		for j := 0; j < n; j++ {
			// positive bit means upper range, otherwise lower range.
			if hasBit(i, uint(j)) {
				min[j] = center[j]
				max[j] = nt.volume.Max[j]
				closed[j] = nt.closed[j]
			} else {
				min[j] = nt.volume.Min[j]
				max[j] = center[j]
			}
		}
		nt.children[i] = newNode[T, P](NewVolume(min, max), nt.capacity, closed, nt.index)
	}
}

// childIndex returns the index of the child whose half-open range holds p.
func (nt *NTree[T, P]) childIndex(p []T) int {
	var target int
	center := nt.volume.pivot()
	for j := range center {
		if p[j] >= center[j] {
			target = setBit(target, uint(j))
		}
	}
	return target
}
