package plot

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stochwalk/internal/walk"
)

var pngMagic = []byte("\x89PNG")

func TestPath(t *testing.T) {
	p, err := walk.GenerateGBM(walk.NewSource(1), 100, 0.05, 0.2, 1, 0.01)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Path(&buf, "gbm", p))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestEnsembleAndHistogram(t *testing.T) {
	gen := walk.GBM{Params: walk.Params{S0: 100, Sigma: 0.2, T: 1, Dt: 0.01}}
	e, s, err := walk.MonteCarlo(context.Background(), gen, 20, walk.WithSeed(2))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Ensemble(&buf, "ensemble", e))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	file := filepath.Join(t.TempDir(), "hist.png")
	require.NoError(t, SaveFile(file, func(w io.Writer) error {
		return Histogram(w, "terminal", s)
	}))
	assert.FileExists(t, file)
}

func TestNoData(t *testing.T) {
	assert.ErrorIs(t, Lines(io.Discard, "empty", nil), ErrNoData)
	assert.ErrorIs(t, Histogram(io.Discard, "empty", &walk.Summary{}), ErrNoData)
	assert.ErrorIs(t, Path(io.Discard, "short", &walk.Path{Times: []float64{0}, Values: []float64{1}}), ErrNoData)
}
