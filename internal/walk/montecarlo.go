package walk

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// DefaultBins is the histogram bin count used when none is given.
const DefaultBins = 10

// Ensemble holds n independently drawn paths on a shared time grid, indexed
// by (repetition, step).
type Ensemble struct {
	Times  []float64
	Values [][]float64
}

func (e *Ensemble) Len() int {
	return len(e.Values)
}

// Terminal returns the last value of every repetition.
func (e *Ensemble) Terminal() []float64 {
	out := make([]float64, len(e.Values))
	for i, v := range e.Values {
		out[i] = v[len(v)-1]
	}
	return out
}

type monteCarloOptions struct {
	seed    uint64
	seeded  bool
	workers int
	bins    int
}

// Option configures a MonteCarlo run.
type Option func(*monteCarloOptions)

// WithSeed fixes the master seed. Results are reproducible for a given seed
// regardless of the worker count.
func WithSeed(seed uint64) Option {
	return func(o *monteCarloOptions) {
		o.seed = seed
		o.seeded = true
	}
}

func WithWorkers(n int) Option {
	return func(o *monteCarloOptions) {
		o.workers = n
	}
}

func WithBins(n int) Option {
	return func(o *monteCarloOptions) {
		o.bins = n
	}
}

// MonteCarlo runs gen n times, each repetition on its own random stream, and
// summarizes the terminal values.
func MonteCarlo(ctx context.Context, gen Generator, n int, opts ...Option) (*Ensemble, *Summary, error) {
	o := monteCarloOptions{bins: DefaultBins}
	for _, opt := range opts {
		opt(&o)
	}
	if gen == nil {
		return nil, nil, invalid("generator is nil")
	}
	if n <= 0 {
		return nil, nil, invalid("repetitions must be positive, got %d", n)
	}
	if o.bins <= 0 {
		return nil, nil, invalid("histogram bins must be positive, got %d", o.bins)
	}
	if !o.seeded {
		o.seed = RandomSeed()
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	// every repetition gets a seed of its own before any worker starts
	master := rand.New(NewSource(o.seed))
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}

	paths := make([]*Path, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := gen.Generate(NewSource(seeds[i]))
			if err != nil {
				return fmt.Errorf("repetition %d: %w", i, err)
			}
			paths[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	ensemble := &Ensemble{
		Times:  paths[0].Times,
		Values: make([][]float64, n),
	}
	for i, p := range paths {
		ensemble.Values[i] = p.Values
	}
	terminal := ensemble.Terminal()
	for i, v := range terminal {
		if !finite(v) {
			return nil, nil, invalid("repetition %d ends at %v, parameters overflow", i, v)
		}
	}
	return ensemble, Summarize(terminal, o.bins), nil
}
