package walk

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// Generator produces one sample path per call. Implementations are immutable
// values, so a single Generator may be shared across goroutines as long as
// every call receives its own Source.
type Generator interface {
	Generate(src rand.Source) (*Path, error)
}

// GBM is geometric Brownian motion discretized in log-space.
type GBM struct {
	Params
}

func (g GBM) Generate(src rand.Source) (*Path, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(sourceOrRandom(src))
	times := Grid(g.T, g.Dt)
	x := logDiffusion(g.Params, rng, times)
	return &Path{Times: times, Values: exponentiate(g.S0, x)}, nil
}

// GenerateGBM draws a single geometric Brownian motion path.
func GenerateGBM(src rand.Source, s0, mu, sigma, t, dt float64) (*Path, error) {
	return GBM{Params{S0: s0, Mu: mu, Sigma: sigma, T: t, Dt: dt}}.Generate(src)
}

// logDiffusion returns X_i = (mu - sigma^2/2) t_i + sigma W_i where W is the
// cumulative sum of len(times) standard normals scaled by sqrt(dt).
func logDiffusion(p Params, rng *rand.Rand, times []float64) []float64 {
	w := standardNormals(rng, len(times))
	floats.CumSum(w, w)
	floats.Scale(math.Sqrt(p.Dt), w)

	drift := p.Mu - 0.5*p.Sigma*p.Sigma
	x := make([]float64, len(times))
	for i, t := range times {
		x[i] = drift*t + p.Sigma*w[i]
	}
	return x
}

func exponentiate(s0 float64, x []float64) []float64 {
	s := make([]float64, len(x))
	for i, v := range x {
		s[i] = s0 * math.Exp(v)
	}
	return s
}

func sourceOrRandom(src rand.Source) rand.Source {
	if src == nil {
		return NewSource(RandomSeed())
	}
	return src
}
