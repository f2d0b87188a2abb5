package walk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMeanReverting_Deterministic(t *testing.T) {
	const (
		r0 = 0.03
		a  = 0.3
		b  = 0.1
		dt = 0.01
	)
	path, err := GenerateMeanReverting(NewSource(1), r0, a, b, 0, 1, dt)
	require.NoError(t, err)
	require.Equal(t, 100, path.Len())
	assert.Equal(t, r0, path.Values[0])

	assert.InDelta(t, a*(b-r0)*dt, path.Values[1], 1e-15)
	assert.InDelta(t, 0.00021, path.Values[1], 1e-15)

	prev := r0
	for _, v := range path.Values[1:] {
		assert.InDelta(t, a*(b-prev)*dt, v, 1e-15)
		prev = v
	}
}

func TestGenerateMeanReverting_CoversEveryStep(t *testing.T) {
	// a horizon shorter than one time unit still advances every grid point
	path, err := GenerateMeanReverting(NewSource(1), 0.03, 0.3, 0.1, 0.03, 0.5, 0.01)
	require.NoError(t, err)
	require.Equal(t, 50, path.Len())

	moved := 0
	for i := 1; i < path.Len(); i++ {
		if path.Values[i] != path.Values[i-1] {
			moved++
		}
	}
	assert.Equal(t, path.Len()-1, moved)
}

func TestGenerateMeanReverting_Reproducible(t *testing.T) {
	m := MeanReverting{R: 0.03, A: 0.3, B: 0.1, Sigma: 0.03, T: 1, Dt: DefaultDt}
	p1, err := m.Generate(NewSource(8))
	require.NoError(t, err)
	p2, err := m.Generate(NewSource(8))
	require.NoError(t, err)
	assert.Equal(t, p1.Values, p2.Values)
	assert.Equal(t, m.Steps(), p1.Len())
}

func TestMeanReverting_Validate(t *testing.T) {
	_, err := GenerateMeanReverting(NewSource(1), 0.03, 0.3, 0.1, -1, 1, 0.01)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = GenerateMeanReverting(NewSource(1), math.NaN(), 0.3, 0.1, 0.1, 1, 0.01)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
