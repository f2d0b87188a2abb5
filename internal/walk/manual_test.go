package walk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJumpBuilder_SizedJumps(t *testing.T) {
	gen, err := NewJumpBuilder(Params{S0: 100, T: 1, Dt: 0.01}, 0, 1).
		AddSizedJump(0.001).
		AddSizedJump(0.001).
		Build()
	require.NoError(t, err)
	assert.Equal(t, 2, gen.Len())

	path, err := gen.Generate(NewSource(5))
	require.NoError(t, err)
	require.Len(t, path.Jumps, 2)
	assert.InDelta(t, 100*math.Exp(0.2), path.Terminal(), 1e-9)
	assert.Equal(t, 100.0, path.Values[0])
}

func TestJumpBuilder_RandomJumps(t *testing.T) {
	b := NewJumpBuilder(Params{S0: 100, Mu: 0.05, Sigma: 0.2, T: 1, Dt: 0.01}, 0, 0.2)
	for i := 0; i < 5; i++ {
		b.AddRandomJump()
	}
	b.AddSizedJump(DefaultJumpPercent)

	gen, err := b.Build()
	require.NoError(t, err)

	// events added after Build do not leak into the generator
	b.AddRandomJump()
	assert.Equal(t, 6, gen.Len())

	path, err := gen.Generate(NewSource(9))
	require.NoError(t, err)
	assert.Len(t, path.Jumps, 6)
	assert.Equal(t, 100, path.Len())
	for _, v := range path.Values {
		assert.Greater(t, v, 0.0)
	}
}

func TestJumpBuilder_NoJumpsMatchesGBM(t *testing.T) {
	params := Params{S0: 100, Mu: 0.05, Sigma: 0.2, T: 1, Dt: 0.01}
	gen, err := NewJumpBuilder(params, 0, 1).Build()
	require.NoError(t, err)

	path, err := gen.Generate(NewSource(21))
	require.NoError(t, err)
	gbm, err := GBM{params}.Generate(NewSource(21))
	require.NoError(t, err)
	assert.Equal(t, gbm.Values, path.Values)
}

func TestJumpBuilder_Invalid(t *testing.T) {
	_, err := NewJumpBuilder(Params{S0: 100, T: 1, Dt: 0.01}, 0, -1).Build()
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewJumpBuilder(Params{S0: 100, T: 1, Dt: 0.01}, 0, 1).AddSizedJump(math.Inf(1)).Build()
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
