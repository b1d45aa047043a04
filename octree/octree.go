// Package octree partitions three-dimensional space. Objects implement
// Index to be stored in an Octree.
package octree

import (
	"github.com/vinerr/spatial"
)

// DefaultCapacity is the node capacity used by New.
const DefaultCapacity = spatial.DefaultCapacity

// Index must be implemented by types that are going to be inserted into an
// Octree.
type Index[T spatial.Scalar] interface {
	OctreeIndex() [3]T
}

// Octree indexes items by their position in a three-dimensional volume. A
// full node is split into eight octants: NW, NE, SW, SE of the lower half of
// the z axis, then the same four of the upper half.
type Octree[T spatial.Scalar, P Index[T]] struct {
	root *spatial.NTree[T, P]
}

// New constructs an empty Octree with bounding volume vol and a node
// capacity of DefaultCapacity.
func New[T spatial.Scalar, P Index[T]](vol Volume[T]) *Octree[T, P] {
	return WithCapacity[T, P](vol, DefaultCapacity)
}

// WithCapacity creates an empty Octree with volume vol and node capacity.
func WithCapacity[T spatial.Scalar, P Index[T]](vol Volume[T], capacity int) *Octree[T, P] {
	return &Octree[T, P]{
		root: spatial.WithCapacity(vol.nd(), capacity, index[T, P]),
	}
}

func index[T spatial.Scalar, P Index[T]](item P) []T {
	p := item.OctreeIndex()
	return p[:]
}

// Volume returns the bounding volume of the tree.
func (o *Octree[T, P]) Volume() Volume[T] {
	return fromND(o.root.Volume())
}

// Capacity returns the node capacity of the tree.
func (o *Octree[T, P]) Capacity() int {
	return o.root.Capacity()
}

// Len returns the number of items in the tree.
func (o *Octree[T, P]) Len() int {
	return o.root.Len()
}

// Insert inserts item into the tree, subdividing it if necessary.
func (o *Octree[T, P]) Insert(item P) bool {
	return o.root.Insert(item)
}

// GetInVolume returns all items inside vol.
func (o *Octree[T, P]) GetInVolume(vol Volume[T]) []*P {
	return o.root.GetInVolume(vol.nd())
}

// Stats reports the shape of the tree.
func (o *Octree[T, P]) Stats() spatial.Stats {
	return o.root.Stats()
}
