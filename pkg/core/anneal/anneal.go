// Package anneal drives the ASF-B*-tree core with simulated annealing.
//
// Each step perturbs the tree (rotate, swap, or move), re-packs, and accepts
// or rejects the move against a geometric cooling schedule. The cost is the
// area of the island's bounding box, so annealing trades packing density
// against the symmetric-feasibility constraints enforced by the core: moves
// the core rejects (infeasible topology, failed validation) are undone and
// counted as rejected steps, and the temperature still cools after them.
package anneal

import (
	"errors"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/symisland/pkg/core/placement"
)

// Defaults for Options fields left zero.
const (
	DefaultSteps       = 2000
	DefaultInitialTemp = 1000.0
	DefaultCooling     = 0.995
	DefaultMinTemp     = 0.1
	DefaultSeed        = uint64(42)
)

// ErrInvalidStart is returned when the initial tree does not pack into a
// valid placement; annealing needs a feasible starting point.
var ErrInvalidStart = errors.New("initial placement is not valid")

// Options configures an annealing run.
type Options struct {
	// Steps is the maximum number of perturbation attempts.
	Steps int
	// InitialTemp is the starting temperature of the schedule.
	InitialTemp float64
	// Cooling is the per-step geometric cooling factor, in (0, 1).
	Cooling float64
	// MinTemp stops the run once the temperature falls below it.
	MinTemp float64
	// Seed makes the run reproducible.
	Seed uint64
	// Logger receives run diagnostics; defaults to log.Default().
	Logger *log.Logger
	// Progress, if set, is called after every attempted step.
	Progress func(Update)
}

// Update is one progress notification.
type Update struct {
	Step        int
	Temperature float64
	Cost        float64
	BestCost    float64
	Accepted    bool
}

// Result summarizes a finished run. The tree is left holding the best state
// found, already packed.
type Result struct {
	RunID    string
	Steps    int
	Accepted int
	Rejected int
	// InitialCost and BestCost are bounding-box areas.
	InitialCost float64
	BestCost    float64
	// MeanCost and StdDev summarize the accepted-cost trajectory.
	MeanCost float64
	StdDev   float64
}

func (o *Options) setDefaults() {
	if o.Steps <= 0 {
		o.Steps = DefaultSteps
	}
	if o.InitialTemp <= 0 {
		o.InitialTemp = DefaultInitialTemp
	}
	if o.Cooling <= 0 || o.Cooling >= 1 {
		o.Cooling = DefaultCooling
	}
	if o.MinTemp <= 0 {
		o.MinTemp = DefaultMinTemp
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// state captures everything a perturbation can change: the topology plus the
// orientation of each representative. Module positions are derived by Pack
// and need no capture.
type state struct {
	topology  *placement.Node
	rotations map[string]bool
}

func capture(tree *placement.Tree, reps []string) state {
	s := state{
		topology:  tree.Snapshot(),
		rotations: make(map[string]bool, len(reps)),
	}
	for _, name := range reps {
		if m, err := tree.Module(name); err == nil {
			s.rotations[name] = m.Rotated
		}
	}
	return s
}

func (s state) restore(tree *placement.Tree) {
	tree.Restore(s.topology)
	for name, rotated := range s.rotations {
		if m, err := tree.Module(name); err == nil {
			m.SetRotation(rotated)
		}
	}
}

// Run anneals the tree. The tree must already hold a topology
// (BuildInitialTree or a previous run) that packs into a valid placement.
func Run(tree *placement.Tree, opts Options) (*Result, error) {
	opts.setDefaults()

	if !tree.Pack() {
		return nil, ErrInvalidStart
	}

	res := &Result{
		RunID:       uuid.NewString(),
		InitialCost: cost(tree),
	}
	res.BestCost = res.InitialCost

	rng := rand.New(rand.NewSource(int64(opts.Seed)))
	reps := tree.Group().Representatives()

	current := res.InitialCost
	best := capture(tree, reps)
	accepted := []float64{current}

	opts.Logger.Debug("annealing started",
		"run", res.RunID, "steps", opts.Steps, "initialCost", res.InitialCost)

	temp := opts.InitialTemp
	for step := 0; step < opts.Steps && temp > opts.MinTemp; step++ {
		res.Steps++
		prev := capture(tree, reps)

		ok := perturb(tree, reps, rng) == nil && tree.Pack()
		if !ok {
			prev.restore(tree)
			res.Rejected++
			notify(opts, step, temp, current, res.BestCost, false)
			temp *= opts.Cooling
			continue
		}

		next := cost(tree)
		moveAccepted := accept(current, next, temp, rng)
		if moveAccepted {
			current = next
			res.Accepted++
			accepted = append(accepted, next)
			if next < res.BestCost {
				res.BestCost = next
				best = capture(tree, reps)
			}
		} else {
			prev.restore(tree)
			res.Rejected++
		}
		notify(opts, step, temp, current, res.BestCost, moveAccepted)
		temp *= opts.Cooling
	}

	// Leave the tree holding the best state, packed.
	best.restore(tree)
	if !tree.Pack() {
		return nil, ErrInvalidStart
	}

	res.MeanCost = stat.Mean(accepted, nil)
	res.StdDev = stat.StdDev(accepted, nil)

	opts.Logger.Info("annealing finished",
		"run", res.RunID, "steps", res.Steps,
		"accepted", res.Accepted, "rejected", res.Rejected,
		"initialCost", res.InitialCost, "bestCost", res.BestCost)
	return res, nil
}

// cost is the bounding-box area of the packed island.
func cost(tree *placement.Tree) float64 {
	w, h := tree.BoundingBox()
	return float64(w) * float64(h)
}

// accept implements the Metropolis criterion.
func accept(current, next, temp float64, rng *rand.Rand) bool {
	if next <= current {
		return true
	}
	return rng.Float64() < math.Exp((current-next)/temp)
}

// perturb applies one random tree mutation. Groups with a single
// representative only ever rotate.
func perturb(tree *placement.Tree, reps []string, rng *rand.Rand) error {
	op := rng.Intn(3)
	if len(reps) < 2 {
		op = 0
	}
	switch op {
	case 0:
		return tree.Rotate(reps[rng.Intn(len(reps))])
	case 1:
		i, j := pickTwo(len(reps), rng)
		return tree.Swap(reps[i], reps[j])
	default:
		i, j := pickTwo(len(reps), rng)
		return tree.Move(reps[i], reps[j], rng.Intn(2) == 0)
	}
}

// pickTwo returns two distinct indices in [0, n).
func pickTwo(n int, rng *rand.Rand) (int, int) {
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j
}

func notify(opts Options, step int, temp, cost, best float64, accepted bool) {
	if opts.Progress != nil {
		opts.Progress(Update{
			Step:        step,
			Temperature: temp,
			Cost:        cost,
			BestCost:    best,
			Accepted:    accepted,
		})
	}
}
