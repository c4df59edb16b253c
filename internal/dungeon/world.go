package dungeon

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/avl"

	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
)

// NodeID addresses a dungeon node inside a World.
type NodeID int32

// SquareID addresses a square inside a World.
type SquareID int32

const (
	NoNode   NodeID   = -1
	NoSquare SquareID = -1
)

// Logger interface for logging abstraction
type Logger interface {
	Printf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// NopLogger discards everything.
func NopLogger() Logger { return nopLogger{} }

// World owns every dungeon node and square. Nodes refer to each other and
// squares refer to their neighbors by handle; the world is the only owner
// of their lifetimes, so terminated entries stay addressable.
//
// A World is not safe for concurrent use. Callers sharing one must
// serialize every mutation and iteration against it.
type World struct {
	nodes   []*node
	squares []*square

	logger        Logger
	rng           *rand.Rand
	cascadeChance float64

	// version is bumped on every structural change; iterators fail fast
	// when it moves under them.
	version uint64
}

type Option func(*World)

func WithLogger(l Logger) Option {
	return func(w *World) {
		if l == nil {
			l = NopLogger()
		}
		w.logger = l
	}
}

// WithRand injects the random source used by collapse cascades and the
// scrambler.
func WithRand(r *rand.Rand) Option {
	return func(w *World) {
		if r != nil {
			w.rng = r
		}
	}
}

// WithCascadeChance sets the probability that a collapse continues into the
// square below the one that just fell.
func WithCascadeChance(p float64) Option {
	return func(w *World) {
		if p >= 0 && p <= 1 {
			w.cascadeChance = p
		}
	}
}

// NewWorld creates an empty world. Without WithRand the world uses a fixed
// seed so runs are reproducible.
func NewWorld(opts ...Option) *World {
	w := &World{
		logger:        log.Default(),
		rng:           rand.New(rand.NewSource(1)),
		cascadeChance: DefaultCascadeChance,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Rand exposes the world's random source.
func (w *World) Rand() *rand.Rand {
	return w.rng
}

type node struct {
	id         uuid.UUID
	kind       Kind
	shape      Shape
	axis       geometry.Axis
	size       geometry.Point
	parent     NodeID
	offset     geometry.Point
	terminated bool
	scramble   bool

	// leaf nodes
	squares *avl.Tree[geometry.Point, SquareID]
	count   int

	// composite nodes
	children map[geometry.Point]NodeID
}

type square struct {
	kind        SquareKind
	temperature int
	neighbors   [6]SquareID
	obstacles   [6]Obstacle
	owner       NodeID
	pos         geometry.Point
	terminated  bool
}

func (w *World) n(id NodeID) *node {
	if id < 0 || int(id) >= len(w.nodes) {
		panic(fmt.Sprintf("dungeon: unknown node %d", id))
	}
	return w.nodes[id]
}

func (w *World) sq(id SquareID) *square {
	if id < 0 || int(id) >= len(w.squares) {
		panic(fmt.Sprintf("dungeon: unknown square %d", id))
	}
	return w.squares[id]
}

func (w *World) touch() {
	w.version++
}
