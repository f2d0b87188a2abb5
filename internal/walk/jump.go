package walk

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// JumpDiffusion is GBM with a compound Poisson jump process superimposed in
// log-space.
type JumpDiffusion struct {
	Params
	Jump JumpParams
}

func (j JumpDiffusion) Validate() error {
	return multierr.Append(j.Params.Validate(), j.Jump.Validate())
}

func (j JumpDiffusion) Generate(src rand.Source) (*Path, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}

	src = sourceOrRandom(src)
	rng := rand.New(src)
	times := Grid(j.T, j.Dt)
	x := logDiffusion(j.Params, rng, times)

	count := j.jumpCount(src)
	if count == 0 {
		return &Path{Times: times, Values: exponentiate(j.S0, x)}, nil
	}

	jumpTimes := uniformTimes(src, j.T, count)
	sizes := make([]float64, count)
	normal := distuv.Normal{Mu: j.Jump.MuJ, Sigma: j.Jump.SigmaJ, Src: src}
	for i := range sizes {
		sizes[i] = normal.Rand()
	}

	return overlayPath(j.S0, times, x, jumpTimes, sizes), nil
}

// jumpCount draws J ~ Poisson(lambda T). No draw is made when the rate is
// zero so the remaining stream matches a plain GBM.
func (j JumpDiffusion) jumpCount(src rand.Source) int {
	rate := j.Jump.Lambda * j.T
	if rate == 0 {
		return 0
	}
	return int(distuv.Poisson{Lambda: rate, Src: src}.Rand())
}

// GenerateJumpDiffusion draws a single jump-diffusion path.
func GenerateJumpDiffusion(src rand.Source, s0, mu, sigma, t, muJ, sigmaJ, lambda, dt float64) (*Path, error) {
	return JumpDiffusion{
		Params: Params{S0: s0, Mu: mu, Sigma: sigma, T: t, Dt: dt},
		Jump:   JumpParams{MuJ: muJ, SigmaJ: sigmaJ, Lambda: lambda},
	}.Generate(src)
}

// Overlay evaluates the jump step function on grid. jumpTimes must be sorted
// ascending and levels[k] holds the cumulative size after jump k.
//
// A grid point takes the level of the last jump strictly before it, so a jump
// landing exactly on t_i only shows from t_{i+1} on.
//
// Overlay panics if jumpTimes and levels differ in length.
func Overlay(grid, jumpTimes, levels []float64) []float64 {
	if len(jumpTimes) != len(levels) {
		panic(fmt.Sprintf("walk: %d jump times but %d levels", len(jumpTimes), len(levels)))
	}
	y := make([]float64, len(grid))
	if len(jumpTimes) == 0 {
		return y
	}

	k := 0
	for i, t := range grid {
		for k < len(jumpTimes) && jumpTimes[k] < t {
			k++
		}
		if k > 0 {
			y[i] = levels[k-1]
		}
	}
	return y
}

func uniformTimes(src rand.Source, horizon float64, n int) []float64 {
	u := distuv.Uniform{Min: 0, Max: horizon, Src: src}
	times := make([]float64, n)
	for i := range times {
		times[i] = u.Rand()
	}
	sort.Float64s(times)
	return times
}

// overlayPath folds sizes into cumulative levels, adds the step function to
// the log path x and exponentiates. sizes is consumed.
func overlayPath(s0 float64, times, x, jumpTimes, sizes []float64) *Path {
	levels := floats.CumSum(sizes, sizes)
	floats.Add(x, Overlay(times, jumpTimes, levels))

	jumps := make([]Jump, len(jumpTimes))
	for i := range jumpTimes {
		jumps[i] = Jump{Time: jumpTimes[i], Level: levels[i]}
	}
	return &Path{Times: times, Values: exponentiate(s0, x), Jumps: jumps}
}
