package main

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/cznic/mathutil"
	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
	"github.com/vinerr/spatial"
	"github.com/vinerr/spatial/octree"
	"github.com/vinerr/spatial/quadtree"
)

// Keeps the config keys readable when the binary is obfuscated.
var _ = reflect.TypeOf(config{})

type config struct {
	Dimensions  int     `cli:"" env:"TREEBENCH_DIMENSIONS"   help:"Number of dimensions (2 for a quadtree, 3 for an octree)."`
	Points      int     `cli:"" env:"TREEBENCH_POINTS"       help:"Number of items to insert."`
	Capacity    int     `cli:"" env:"TREEBENCH_CAPACITY"     help:"Node capacity before subdivision."`
	Queries     int     `cli:"" env:"TREEBENCH_QUERIES"      help:"Number of random range queries."`
	QueryExtent float64 `cli:"" env:"TREEBENCH_QUERY_EXTENT" help:"Query edge length as a fraction of the root edge (0, 1]."`
	Size        int     `cli:"" env:"TREEBENCH_SIZE"         help:"Edge length of the root volume."`
	Seed        int64   `cli:"" env:"TREEBENCH_SEED"         help:"Random seed."`
	Integer     bool    `cli:"" env:"TREEBENCH_INTEGER"      help:"Use distinct integer coordinates instead of floats."`
	JSON        bool    `cli:"" env:"TREEBENCH_JSON"         help:"Print tree statistics as JSON."`
	LogLevel    string  `cli:"" env:"TREEBENCH_LOG_LEVEL"    help:"Log level (debug|info|warning|error)."`
	LogIndent   bool    `cli:"" env:"TREEBENCH_LOG_INDENT"   help:"Indent logs."`
	Help        bool    `cli:"" env:"-"                      help:"Show help."`
}

func main() {
	conf := config{
		Dimensions:  2,
		Points:      100000,
		Capacity:    spatial.DefaultCapacity,
		Queries:     1000,
		QueryExtent: 0.1,
		Size:        1024,
		Seed:        time.Now().UnixNano(),
		LogLevel:    logs.InfoLevel.String(),
	}

	cli.Register().
		Help("Fills a quadtree or an octree with random items and runs range queries against it.").
		Options(&conf)
	cli.Load()

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	var stats spatial.Stats
	var err error
	if conf.Integer {
		stats, err = run[int](conf, newIntegerCoords(conf))
	} else {
		stats, err = run[float64](conf, newFloatCoords(conf))
	}
	if err != nil {
		logs.Fatal(err)
	}

	if conf.JSON {
		b, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			logs.Fatal(errors.New("encoding stats failed").Wrap(err))
		}
		fmt.Println(string(b))
		return
	}
	fmt.Printf("nodes: %d\nleaves: %d\nitems: %d\nmax depth: %d\nitems per depth: %v\n",
		stats.Nodes,
		stats.Leaves,
		stats.Items,
		stats.MaxDepth,
		stats.ItemsPerDepth,
	)
}

func validateConfig(conf config) error {
	if conf.Dimensions != 2 && conf.Dimensions != 3 {
		return errors.New("dimensions must be 2 or 3").
			WithTag("dimensions", conf.Dimensions)
	}
	if conf.Points < 0 || conf.Queries < 0 {
		return errors.New("points and queries can't be negative").
			WithTag("points", conf.Points).
			WithTag("queries", conf.Queries)
	}
	if conf.Capacity < 1 {
		return errors.New("capacity must be at least 1").
			WithTag("capacity", conf.Capacity)
	}
	if conf.Size < 1 {
		return errors.New("size must be at least 1").
			WithTag("size", conf.Size)
	}
	if conf.QueryExtent <= 0 || conf.QueryExtent > 1 {
		return errors.New("query extent must be in (0, 1]").
			WithTag("query_extent", conf.QueryExtent)
	}
	if conf.Integer {
		cells := 1
		for i := 0; i < conf.Dimensions; i++ {
			cells *= conf.Size
			if cells-1 > math.MaxInt32 {
				return errors.New("too many integer cells").
					WithTag("size", conf.Size).
					WithTag("dimensions", conf.Dimensions)
			}
		}
		if conf.Points > cells {
			return errors.New("more points than distinct integer cells").
				WithTag("points", conf.Points).
				WithTag("cells", cells)
		}
	}
	return nil
}

// index is the part of a quadtree or an octree the benchmark drives.
type index[T spatial.Scalar] interface {
	insert(id uuid.UUID, pos []T) bool
	query(min, max []T) int
	len() int
	stats() spatial.Stats
}

func run[T spatial.Scalar](conf config, c coords[T]) (spatial.Stats, error) {
	var idx index[T]
	switch conf.Dimensions {
	case 2:
		idx = newQuadIndex[T](conf)
	case 3:
		idx = newOctIndex[T](conf)
	default:
		return spatial.Stats{}, errors.New("unsupported dimensions").
			WithTag("dimensions", conf.Dimensions)
	}

	logs.WithTag("dimensions", conf.Dimensions).
		WithTag("points", conf.Points).
		WithTag("capacity", conf.Capacity).
		WithTag("size", conf.Size).
		WithTag("integer", conf.Integer).
		WithTag("seed", conf.Seed).
		Info("inserting items")

	var rejected int
	start := time.Now()
	for i := 0; i < conf.Points; i++ {
		if !idx.insert(uuid.New(), c.next()) {
			rejected++
		}
	}
	logs.WithTag("inserted", idx.len()).
		WithTag("rejected", rejected).
		WithTag("elapsed", time.Since(start).String()).
		Info("items inserted")

	if rejected != 0 {
		logs.Warn(errors.New("some items fell outside the root volume").
			WithTag("rejected", rejected))
	}

	var matched int
	start = time.Now()
	for i := 0; i < conf.Queries; i++ {
		min, max := c.box()
		n := idx.query(min, max)
		logs.WithTag("min", min).
			WithTag("max", max).
			WithTag("matched", n).
			Debug("query")
		matched += n
	}
	logs.WithTag("queries", conf.Queries).
		WithTag("matched", matched).
		WithTag("elapsed", time.Since(start).String()).
		Info("queries done")

	return idx.stats(), nil
}

type item2[T spatial.Scalar] struct {
	ID  uuid.UUID
	Pos [2]T
}

func (i item2[T]) QuadtreeIndex() [2]T {
	return i.Pos
}

type quadIndex[T spatial.Scalar] struct {
	tree *quadtree.Quadtree[T, item2[T]]
}

func newQuadIndex[T spatial.Scalar](conf config) *quadIndex[T] {
	size := T(conf.Size)
	if conf.Integer {
		size--
	}
	vol := quadtree.NewVolume([2]T{0, 0}, [2]T{size, size})
	return &quadIndex[T]{
		tree: quadtree.WithCapacity[T, item2[T]](vol, conf.Capacity),
	}
}

func (q *quadIndex[T]) insert(id uuid.UUID, pos []T) bool {
	return q.tree.Insert(item2[T]{ID: id, Pos: [2]T{pos[0], pos[1]}})
}

func (q *quadIndex[T]) query(min, max []T) int {
	return len(q.tree.GetInVolume(quadtree.NewVolume([2]T{min[0], min[1]}, [2]T{max[0], max[1]})))
}

func (q *quadIndex[T]) len() int {
	return q.tree.Len()
}

func (q *quadIndex[T]) stats() spatial.Stats {
	return q.tree.Stats()
}

type item3[T spatial.Scalar] struct {
	ID  uuid.UUID
	Pos [3]T
}

func (i item3[T]) OctreeIndex() [3]T {
	return i.Pos
}

type octIndex[T spatial.Scalar] struct {
	tree *octree.Octree[T, item3[T]]
}

func newOctIndex[T spatial.Scalar](conf config) *octIndex[T] {
	size := T(conf.Size)
	if conf.Integer {
		size--
	}
	vol := octree.NewVolume([3]T{0, 0, 0}, [3]T{size, size, size})
	return &octIndex[T]{
		tree: octree.WithCapacity[T, item3[T]](vol, conf.Capacity),
	}
}

func (o *octIndex[T]) insert(id uuid.UUID, pos []T) bool {
	return o.tree.Insert(item3[T]{ID: id, Pos: [3]T{pos[0], pos[1], pos[2]}})
}

func (o *octIndex[T]) query(min, max []T) int {
	return len(o.tree.GetInVolume(octree.NewVolume(
		[3]T{min[0], min[1], min[2]},
		[3]T{max[0], max[1], max[2]},
	)))
}

func (o *octIndex[T]) len() int {
	return o.tree.Len()
}

func (o *octIndex[T]) stats() spatial.Stats {
	return o.tree.Stats()
}

// coords generates item positions and query boxes inside the root volume.
type coords[T spatial.Scalar] interface {
	next() []T
	box() (min, max []T)
}

type floatCoords struct {
	rnd    *rand.Rand
	dims   int
	size   float64
	extent float64
}

func newFloatCoords(conf config) *floatCoords {
	return &floatCoords{
		rnd:    rand.New(rand.NewSource(conf.Seed)),
		dims:   conf.Dimensions,
		size:   float64(conf.Size),
		extent: float64(conf.Size) * conf.QueryExtent,
	}
}

func (c *floatCoords) next() []float64 {
	p := make([]float64, c.dims)
	for i := range p {
		p[i] = c.rnd.Float64() * c.size
	}
	return p
}

func (c *floatCoords) box() (min, max []float64) {
	min = make([]float64, c.dims)
	max = make([]float64, c.dims)
	for i := range min {
		min[i] = c.rnd.Float64() * (c.size - c.extent)
		max[i] = min[i] + c.extent
	}
	return min, max
}

// integerCoords hands out every cell of the grid at most once, in a
// scrambled order.
type integerCoords struct {
	cells  *mathutil.FC32
	rnd    *rand.Rand
	dims   int
	size   int
	extent int
}

func newIntegerCoords(conf config) *integerCoords {
	cells := 1
	for i := 0; i < conf.Dimensions; i++ {
		cells *= conf.Size
	}
	fc, err := mathutil.NewFC32(0, cells-1, true)
	if err != nil {
		logs.Fatal(errors.New("creating cell generator failed").
			WithTag("cells", cells).
			Wrap(err))
	}
	fc.Seed(conf.Seed)

	extent := int(float64(conf.Size) * conf.QueryExtent)
	if extent < 1 {
		extent = 1
	}
	return &integerCoords{
		cells:  fc,
		rnd:    rand.New(rand.NewSource(conf.Seed)),
		dims:   conf.Dimensions,
		size:   conf.Size,
		extent: extent,
	}
}

func (c *integerCoords) next() []int {
	v := c.cells.Next()
	p := make([]int, c.dims)
	for i := range p {
		p[i] = v % c.size
		v /= c.size
	}
	return p
}

func (c *integerCoords) box() (min, max []int) {
	min = make([]int, c.dims)
	max = make([]int, c.dims)
	for i := range min {
		min[i] = c.rnd.Intn(mathutil.Max(c.size-c.extent, 1))
		max[i] = min[i] + c.extent
	}
	return min, max
}
