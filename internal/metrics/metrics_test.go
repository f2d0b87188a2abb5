package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stochwalk/internal/walk"
)

func TestMetrics_ObservePath(t *testing.T) {
	m := New()
	p := &walk.Path{
		Times:  []float64{0, 1},
		Values: []float64{1, 2},
		Jumps:  []walk.Jump{{Time: 0.5, Level: 0.1}, {Time: 0.7, Level: 0.3}},
	}
	m.ObservePath("jump", p, time.Millisecond)
	m.ObservePath("jump", p, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PathsGenerated.WithLabelValues("jump")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.JumpsApplied.WithLabelValues("jump")))
}

func TestMetrics_ObserveEnsemble(t *testing.T) {
	m := New()
	gen := walk.GBM{Params: walk.Params{S0: 100, Sigma: 0.2, T: 1, Dt: 0.01}}
	e, s, err := walk.MonteCarlo(context.Background(), gen, 25, walk.WithSeed(1))
	require.NoError(t, err)

	m.ObserveEnsemble("gbm", e, s, time.Second)
	assert.Equal(t, 25.0, testutil.ToFloat64(m.PathsGenerated.WithLabelValues("gbm")))
	assert.Equal(t, s.Mean, testutil.ToFloat64(m.Terminal.WithLabelValues("gbm", "mean")))

	path := filepath.Join(t.TempDir(), "stochwalk.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `stochwalk_paths_generated_total{model="gbm"} 25`)
}
