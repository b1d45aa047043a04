package spatial

import (
	"fmt"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Volume is an axis-aligned box in N-dimensional space. It should always be
// true that Min[i] <= Max[i]; this is not checked unless Validate is called.
type Volume[T Scalar] struct {
	Min, Max []T
}

// NewVolume creates a volume from its min and max corners. The slices are
// used as given.
func NewVolume[T Scalar](min, max []T) Volume[T] {
	return Volume[T]{Min: min, Max: max}
}

// N returns the number of dimensions of the volume.
func (v Volume[T]) N() int {
	return len(v.Min)
}

// Center returns the per-axis midpoint of the volume.
func (v Volume[T]) Center() []T {
	c := make([]T, len(v.Min))
	for i := range c {
		c[i] = midpoint(v.Min[i], v.Max[i])
	}
	return c
}

// pivot returns the point a node splits at. It is the center, except on axes
// where rounding pushed the center onto a non-degenerate Max: those pivot at
// Min so the upper child keeps a non-zero extent and stays visible to
// queries.
func (v Volume[T]) pivot() []T {
	c := v.Center()
	for i := range c {
		if c[i] == v.Max[i] && v.Max[i] > v.Min[i] {
			c[i] = v.Min[i]
		}
	}
	return c
}

// Contains reports whether p lies within the volume. Both bounds are
// inclusive, so points on a face are contained.
func (v Volume[T]) Contains(p []T) bool {
	for i := range v.Min {
		if p[i] < v.Min[i] || p[i] > v.Max[i] {
			return false
		}
	}
	return true
}

// Intersects reports whether other overlaps the volume. Both bounds are
// exclusive: volumes that only share a face do not intersect.
func (v Volume[T]) Intersects(other Volume[T]) bool {
	for i := range v.Min {
		if !(v.Min[i] < other.Max[i] && v.Max[i] > other.Min[i]) {
			return false
		}
	}
	return true
}

// Validate returns an error when the corners have different dimensions, the
// volume has no dimension or more than MaxN, or some axis has Min > Max.
func (v Volume[T]) Validate() error {
	if len(v.Min) != len(v.Max) {
		return errors.New("volume corners have mismatched lengths").
			WithTag("min", len(v.Min)).
			WithTag("max", len(v.Max))
	}
	if len(v.Min) == 0 {
		return errors.New("can't have a 0-dimensional volume")
	}
	if len(v.Min) > MaxN {
		return errors.New("64 bit ints limit this library to <= 63 dimensions").
			WithTag("n", len(v.Min))
	}
	for i := range v.Min {
		if v.Min[i] > v.Max[i] {
			return errors.New("volume min is greater than max").
				WithTag("axis", i).
				WithTag("min", v.Min[i]).
				WithTag("max", v.Max[i])
		}
	}
	return nil
}

func (v Volume[T]) String() string {
	var b strings.Builder
	b.WriteString("[")
	writeCorner(&b, v.Min)
	b.WriteString(" ")
	writeCorner(&b, v.Max)
	b.WriteString("]")
	return b.String()
}

func writeCorner[T Scalar](b *strings.Builder, c []T) {
	b.WriteString("[")
	for i, x := range c {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprint(b, x)
	}
	b.WriteString("]")
}

// routes reports whether p belongs to the volume for insertion purposes. The
// lower bound is inclusive; the upper bound of axis i is inclusive only when
// closed[i] is set, i.e. when it is the outer bound of the whole tree.
func (v Volume[T]) routes(p []T, closed []bool) bool {
	for i := range v.Min {
		if p[i] < v.Min[i] || p[i] > v.Max[i] {
			return false
		}
		if p[i] == v.Max[i] && !closed[i] {
			return false
		}
	}
	return true
}
