// Package quadtree partitions two-dimensional space.
//
// In order for an object to be inserted into a Quadtree it must implement
// Index:
//
//	type Monster struct {
//		X, Y float32
//	}
//
//	func (m Monster) QuadtreeIndex() [2]float32 {
//		return [2]float32{m.X, m.Y}
//	}
//
//	tree := quadtree.New[float32, Monster](quadtree.NewVolume([2]float32{0, 0}, [2]float32{100, 100}))
//	tree.Insert(Monster{X: 10, Y: 20})
//
// Items are stored by value. A Quadtree is not safe for concurrent use.
package quadtree

import (
	"github.com/vinerr/spatial"
)

// DefaultCapacity is the node capacity used by New.
const DefaultCapacity = spatial.DefaultCapacity

// Index must be implemented by types that are going to be inserted into a
// Quadtree.
type Index[T spatial.Scalar] interface {
	QuadtreeIndex() [2]T
}

// Quadtree indexes items by their position in a two-dimensional volume. A
// full node is split into four quadrants, in order NW, NE, SW, SE.
type Quadtree[T spatial.Scalar, P Index[T]] struct {
	root *spatial.NTree[T, P]
}

// New constructs an empty Quadtree with bounding volume vol and a node
// capacity of DefaultCapacity.
func New[T spatial.Scalar, P Index[T]](vol Volume[T]) *Quadtree[T, P] {
	return WithCapacity[T, P](vol, DefaultCapacity)
}

// WithCapacity creates an empty Quadtree with volume vol whose nodes hold up
// to capacity items before subdividing.
func WithCapacity[T spatial.Scalar, P Index[T]](vol Volume[T], capacity int) *Quadtree[T, P] {
	return &Quadtree[T, P]{
		root: spatial.WithCapacity(vol.nd(), capacity, index[T, P]),
	}
}

func index[T spatial.Scalar, P Index[T]](item P) []T {
	p := item.QuadtreeIndex()
	return p[:]
}

// Volume returns the bounding volume of the tree.
func (q *Quadtree[T, P]) Volume() Volume[T] {
	return fromND(q.root.Volume())
}

// Capacity returns the node capacity of the tree.
func (q *Quadtree[T, P]) Capacity() int {
	return q.root.Capacity()
}

// Len returns the number of items in the tree.
func (q *Quadtree[T, P]) Len() int {
	return q.root.Len()
}

// Insert inserts item into the quadtree, subdividing it if necessary. It
// returns false if the item lies outside the tree's volume.
func (q *Quadtree[T, P]) Insert(item P) bool {
	return q.root.Insert(item)
}

// GetInVolume returns all items inside vol.
func (q *Quadtree[T, P]) GetInVolume(vol Volume[T]) []*P {
	return q.root.GetInVolume(vol.nd())
}

// Stats reports the shape of the tree.
func (q *Quadtree[T, P]) Stats() spatial.Stats {
	return q.root.Stats()
}
