package spatial

// Scalar is the set of coordinate types a tree can be built over. Halving an
// integer extent truncates, so repeated subdivision of an integer volume
// degenerates once an extent drops below 2.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Projection returns the coordinates of an item, one per dimension. It is
// called on every insert and on every query comparison; the result is never
// cached by the tree.
type Projection[T Scalar, P any] func(item P) []T

// midpoint returns the point halfway between a and b without computing b-a,
// which overflows narrow signed integers. For integers the result is the
// floor or the ceiling of the exact midpoint, always within [a, b].
func midpoint[T Scalar](a, b T) T {
	ha, hb := a/2, b/2
	// remainders are zero for floats above the subnormal range.
	ra, rb := a-ha*2, b-hb*2
	return ha + hb + (ra+rb)/2
}
