package dungeon

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
)

// DefaultMaxFillFailures bounds the consecutive misses of the fill phase.
const DefaultMaxFillFailures = 64

// ScrambleOptions configures a scramble pass. Rates lie in [0, 1].
type ScrambleOptions struct {
	PermutationRate float64
	FillRate        float64
	CollapseRate    float64
	// MaxFillFailures is how many consecutive fill attempts may hit an
	// unusable position before the fill phase gives up. Zero means
	// DefaultMaxFillFailures.
	MaxFillFailures int
}

func (o ScrambleOptions) validate() error {
	rates := []struct {
		name string
		v    float64
	}{
		{"permutation rate", o.PermutationRate},
		{"fill rate", o.FillRate},
		{"collapse rate", o.CollapseRate},
	}
	for _, r := range rates {
		if r.v < 0 || r.v > 1 {
			return fmt.Errorf("%s %v outside [0, 1]", r.name, r.v)
		}
	}
	if o.MaxFillFailures < 0 {
		return fmt.Errorf("max fill failures %d must not be negative", o.MaxFillFailures)
	}
	return nil
}

// ScrambleReport summarizes one scramble pass.
type ScrambleReport struct {
	// Eligible is the number of occupied eligible positions before the pass.
	Eligible int
	Swapped  int
	// Empty is the number of free eligible positions before the fill phase.
	Empty        int
	Added        int
	FillAttempts int
	Collapsed    int
}

// PermutationRatio is the share of eligible squares that changed place.
func (r ScrambleReport) PermutationRatio() float64 {
	if r.Eligible == 0 {
		return 0
	}
	return float64(r.Swapped) / float64(r.Eligible)
}

// FillRatio is the share of free positions that received a square.
func (r ScrambleReport) FillRatio() float64 {
	if r.Empty == 0 {
		return 0
	}
	return float64(r.Added) / float64(r.Empty)
}

// Scrambler runs randomized permute, fill and collapse passes over the
// scramble-eligible parts of a dungeon, drawing from the world's random
// source.
type Scrambler struct {
	w    *World
	opts ScrambleOptions
}

func NewScrambler(w *World, opts ScrambleOptions) (*Scrambler, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.MaxFillFailures == 0 {
		opts.MaxFillFailures = DefaultMaxFillFailures
	}
	return &Scrambler{w: w, opts: opts}, nil
}

func (sc *Scrambler) Options() ScrambleOptions {
	return sc.opts
}

// Scramble permutes, fills and collapses the eligible squares of id. A leaf
// is scrambled entirely; a composite only inside descendant subtrees marked
// scramble-eligible. Shafts never take part.
func (sc *Scrambler) Scramble(id NodeID) (ScrambleReport, error) {
	w := sc.w
	if w.n(id).terminated {
		return ScrambleReport{}, illegalPlacement("node %d is terminated", id)
	}

	leaves := w.eligibleLeaves(id, w.n(id).kind == KindLeaf, nil)
	members := mapset.New[NodeID]()
	for _, l := range leaves {
		members.Put(l)
	}

	var report ScrambleReport
	pool := w.squaresIn(leaves)
	report.Eligible = len(pool)

	sc.permute(pool, &report)
	sc.fill(id, leaves, members, &report)
	sc.collapse(leaves, &report)

	w.logger.Printf("scrambled node %d: swapped %d/%d, filled %d/%d in %d attempts, collapsed %d",
		id, report.Swapped, report.Eligible, report.Added, report.Empty, report.FillAttempts, report.Collapsed)
	return report, nil
}

// eligibleLeaves collects, in child order, the non-shaft leaves under id
// that a scramble may touch. Once a subtree is eligible, everything below
// it is.
func (w *World) eligibleLeaves(id NodeID, eligible bool, out []NodeID) []NodeID {
	nd := w.n(id)
	eligible = eligible || nd.scramble
	if nd.kind == KindLeaf {
		if eligible && nd.shape != ShapeShaft {
			out = append(out, id)
		}
		return out
	}
	for _, c := range w.Children(id) {
		out = w.eligibleLeaves(c, eligible, out)
	}
	return out
}

func (w *World) squaresIn(leaves []NodeID) []SquareID {
	var out []SquareID
	for _, leaf := range leaves {
		w.n(leaf).squares.Each(func(_ geometry.Point, s SquareID) {
			out = append(out, s)
		})
	}
	return out
}

func (sc *Scrambler) permute(pool []SquareID, report *ScrambleReport) {
	w := sc.w
	initial := len(pool)
	if initial == 0 {
		return
	}
	for len(pool) >= 2 && float64(report.Swapped)/float64(initial) < sc.opts.PermutationRate {
		i := w.rng.Intn(len(pool))
		j := w.rng.Intn(len(pool) - 1)
		if j >= i {
			j++
		}
		w.swap(pool[i], pool[j])
		report.Swapped += 2

		if i < j {
			i, j = j, i
		}
		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		pool[j] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
}

func (sc *Scrambler) fill(id NodeID, leaves []NodeID, members mapset.Set[NodeID], report *ScrambleReport) {
	w := sc.w
	for _, leaf := range leaves {
		nd := w.n(leaf)
		report.Empty += nd.size.Volume() - nd.count
	}
	if report.Empty == 0 || sc.opts.FillRate == 0 {
		return
	}

	size := w.n(id).size
	failures := 0
	for failures < sc.opts.MaxFillFailures && float64(report.Added)/float64(report.Empty) < sc.opts.FillRate {
		report.FillAttempts++
		pos := geometry.Pt(w.rng.Intn(size.X), w.rng.Intn(size.Y), w.rng.Intn(size.Z))
		leaf, local, ok := w.locate(id, pos)
		if !ok || !members.Has(leaf) {
			failures++
			continue
		}
		if _, taken := w.n(leaf).squares.Get(local); taken {
			failures++
			continue
		}
		failures = 0
		d := geometry.Directions[w.rng.Intn(len(geometry.Directions))]
		err := w.addToLeaf(leaf, w.DefaultSquare(), local, []geometry.Direction{d})
		assertf(err == nil, "filling leaf %d at %v: %v", leaf, local, err)
		report.Added++
	}
}

func (sc *Scrambler) collapse(leaves []NodeID, report *ScrambleReport) {
	w := sc.w
	if sc.opts.CollapseRate == 0 {
		return
	}
	for _, s := range w.squaresIn(leaves) {
		if !w.CanCollapse(s) {
			continue
		}
		if w.rng.Float64() < sc.opts.CollapseRate {
			report.Collapsed += w.collapse(s)
		}
	}
}
