package octree

import (
	"github.com/vinerr/spatial"
)

// Volume is a three-dimensional bounding volume for an Octree node.
type Volume[T spatial.Scalar] struct {
	Min, Max [3]T
}

// NewVolume creates a bounding volume from two points of format [x, y, z].
func NewVolume[T spatial.Scalar](min, max [3]T) Volume[T] {
	return Volume[T]{Min: min, Max: max}
}

// Contains returns true if p is inside the volume, faces included.
func (v Volume[T]) Contains(p [3]T) bool {
	return p[0] >= v.Min[0] && p[0] <= v.Max[0] &&
		p[1] >= v.Min[1] && p[1] <= v.Max[1] &&
		p[2] >= v.Min[2] && p[2] <= v.Max[2]
}

// Intersects returns true if other overlaps the volume. Volumes sharing only
// a face, an edge or a corner do not intersect.
func (v Volume[T]) Intersects(other Volume[T]) bool {
	return v.Min[0] < other.Max[0] && v.Max[0] > other.Min[0] &&
		v.Min[1] < other.Max[1] && v.Max[1] > other.Min[1] &&
		v.Min[2] < other.Max[2] && v.Max[2] > other.Min[2]
}

// Validate returns an error if Min is greater than Max on some axis.
func (v Volume[T]) Validate() error {
	return v.nd().Validate()
}

func (v Volume[T]) String() string {
	return v.nd().String()
}

func (v Volume[T]) nd() spatial.Volume[T] {
	return spatial.NewVolume(
		[]T{v.Min[0], v.Min[1], v.Min[2]},
		[]T{v.Max[0], v.Max[1], v.Max[2]},
	)
}

func fromND[T spatial.Scalar](v spatial.Volume[T]) Volume[T] {
	return Volume[T]{
		Min: [3]T{v.Min[0], v.Min[1], v.Min[2]},
		Max: [3]T{v.Max[0], v.Max[1], v.Max[2]},
	}
}
