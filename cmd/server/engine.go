package main

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/Edward-VS/Kerkers-sub000/internal/config"
	"github.com/Edward-VS/Kerkers-sub000/internal/dungeon"
	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
	"github.com/Edward-VS/Kerkers-sub000/internal/layout"
	"github.com/Edward-VS/Kerkers-sub000/internal/protocol"
)

// Engine owns one built dungeon and serializes every request against it.
type Engine struct {
	mu        sync.Mutex
	world     *dungeon.World
	dungeon   *layout.Dungeon
	scrambler *dungeon.Scrambler
	logger    Logger
	eventID   int64
}

// NewEngine builds def into a fresh world tuned by cfg.
func NewEngine(def *layout.Definition, cfg *config.ScrambleConfig, seed int64, logger Logger) (*Engine, error) {
	world := dungeon.NewWorld(
		dungeon.WithLogger(logger),
		dungeon.WithRand(rand.New(rand.NewSource(seed))),
		dungeon.WithCascadeChance(cfg.GetCollapseCascadeChance()),
	)
	d, err := layout.Build(world, def)
	if err != nil {
		return nil, fmt.Errorf("failed to build layout: %w", err)
	}
	if err := world.Verify(d.Root); err != nil {
		return nil, fmt.Errorf("layout %q is inconsistent: %w", def.ID, err)
	}
	scrambler, err := dungeon.NewScrambler(world, cfg.ScrambleOptions())
	if err != nil {
		return nil, err
	}
	logger.Printf("built dungeon %q: %d squares, seed %d", d.Name, world.SquareCount(d.Root), seed)
	return &Engine{
		world:     world,
		dungeon:   d,
		scrambler: scrambler,
		logger:    logger,
	}, nil
}

func (e *Engine) Snapshot() *protocol.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return buildSnapshot(e.world, e.dungeon, e.eventID)
}

func (e *Engine) ProcessScramble(req protocol.RequestScramble) (*protocol.ScrambleCompleted, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	target := e.dungeon.Root
	if req.Node != "" {
		u, err := uuid.Parse(req.Node)
		if err != nil {
			return nil, badRequest("invalid node id %q", req.Node)
		}
		id, ok := e.world.NodeByUUID(u)
		if !ok || e.world.Root(id) != e.dungeon.Root {
			return nil, badRequest("unknown node %s", req.Node)
		}
		target = id
	}

	report, err := e.scrambler.Scramble(target)
	if err != nil {
		return nil, err
	}
	e.eventID++
	return &protocol.ScrambleCompleted{
		Node:         e.world.NodeUUID(target).String(),
		Eligible:     report.Eligible,
		Swapped:      report.Swapped,
		Empty:        report.Empty,
		Added:        report.Added,
		FillAttempts: report.FillAttempts,
		Collapsed:    report.Collapsed,
	}, nil
}

func (e *Engine) ProcessCollapse(req protocol.RequestCollapse) (*protocol.SquaresCollapsed, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.squareAt(req.At)
	if err != nil {
		return nil, err
	}
	n, err := e.world.Collapse(e.dungeon.Root, s)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		e.eventID++
	}
	return &protocol.SquaresCollapsed{At: req.At, Count: n}, nil
}

func (e *Engine) ProcessDoorToggle(req protocol.RequestToggleDoor) (*protocol.DoorStateChanged, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, err := geometry.ParseDirection(req.Direction)
	if err != nil {
		return nil, badRequest("%v", err)
	}
	s, err := e.squareAt(req.At)
	if err != nil {
		return nil, err
	}
	o, err := e.world.ToggleDoor(s, d)
	if err != nil {
		return nil, err
	}
	e.eventID++
	return &protocol.DoorStateChanged{At: req.At, Direction: d.String(), State: o.String()}, nil
}

func (e *Engine) squareAt(at protocol.Position) (dungeon.SquareID, error) {
	s := e.world.SquareAt(e.dungeon.Root, geometry.Pt(at.X, at.Y, at.Z))
	if s == dungeon.NoSquare {
		return dungeon.NoSquare, badRequest("no square at (%d,%d,%d)", at.X, at.Y, at.Z)
	}
	return s, nil
}
