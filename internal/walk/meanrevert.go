package walk

import (
	"math"

	"go.uber.org/multierr"
	"golang.org/x/exp/rand"
)

// MeanReverting is a Vasicek-style short-rate process. Every grid interval
// after the first point applies
//
//	r_i = A (B - r_{i-1}) dt + Sigma sqrt(dt) W_i
//
// Each value is the pull toward B plus noise; r_{i-1} enters only through the
// pull term. Unlike the exponential processes its values may become negative.
type MeanReverting struct {
	R     float64 `json:"r" mapstructure:"r"`
	A     float64 `json:"a" mapstructure:"a"`
	B     float64 `json:"b" mapstructure:"b"`
	Sigma float64 `json:"sigma" mapstructure:"sigma"`
	T     float64 `json:"t" mapstructure:"t"`
	Dt    float64 `json:"dt" mapstructure:"dt"`
}

func (m MeanReverting) Steps() int {
	return steps(m.T, m.Dt)
}

func (m MeanReverting) Validate() error {
	err := validateHorizon(m.T, m.Dt)
	for _, f := range []struct {
		name  string
		value float64
	}{{"r", m.R}, {"a", m.A}, {"b", m.B}} {
		if !finite(f.value) {
			err = multierr.Append(err, invalid("%s must be finite, got %v", f.name, f.value))
		}
	}
	if !finite(m.Sigma) || m.Sigma < 0 {
		err = multierr.Append(err, invalid("sigma must be non-negative, got %v", m.Sigma))
	}
	return err
}

func (m MeanReverting) Generate(src rand.Source) (*Path, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(sourceOrRandom(src))
	times := Grid(m.T, m.Dt)
	w := standardNormals(rng, len(times))

	vol := m.Sigma * math.Sqrt(m.Dt)
	r := make([]float64, len(times))
	r[0] = m.R
	for i := 1; i < len(r); i++ {
		r[i] = m.A*(m.B-r[i-1])*m.Dt + vol*w[i]
	}
	return &Path{Times: times, Values: r}, nil
}

// GenerateMeanReverting draws a single mean-reverting rate path.
func GenerateMeanReverting(src rand.Source, r, a, b, sigma, t, dt float64) (*Path, error) {
	return MeanReverting{R: r, A: a, B: b, Sigma: sigma, T: t, Dt: dt}.Generate(src)
}
