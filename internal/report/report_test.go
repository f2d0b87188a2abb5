package report

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stochwalk/internal/market"
	"stochwalk/internal/portfolio"
	"stochwalk/internal/walk"
)

func init() {
	Plain = true
}

func TestPath(t *testing.T) {
	p, err := walk.GenerateGBM(walk.NewSource(1), 100, 0, 0, 1, 0.01)
	require.NoError(t, err)

	var buf bytes.Buffer
	Path(&buf, "gbm", p, 3, 2)
	out := buf.String()
	assert.Contains(t, out, "gbm")
	assert.Contains(t, out, "100.0000")
	assert.Contains(t, out, "99")
	assert.NotContains(t, out, "0.5051")
}

func TestSummary(t *testing.T) {
	gen := walk.GBM{Params: walk.Params{S0: 100, Sigma: 0.2, T: 1, Dt: 0.01}}
	_, s, err := walk.MonteCarlo(context.Background(), gen, 30, walk.WithSeed(1))
	require.NoError(t, err)

	var buf bytes.Buffer
	Summary(&buf, "Monte Carlo", s)
	assert.Contains(t, buf.String(), "Median")
	assert.Contains(t, buf.String(), "30")
}

func TestMarketAndPortfolio(t *testing.T) {
	m := market.New(walk.NewSource(1))
	require.NoError(t, m.AddSymbols("SPX", "QQQ"))
	index, err := m.CreateIndex(market.Weight{Symbol: "SPX", Weight: 0.5}, market.Weight{Symbol: "QQQ", Weight: 0.5})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Market(&buf, m, index))
	assert.Contains(t, buf.String(), "SPX")
	assert.Contains(t, buf.String(), "INDEX")

	p, err := portfolio.New(100000, m)
	require.NoError(t, err)
	_, err = p.AddStock("QQQ", 5)
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, Portfolio(&buf, m, p))
	assert.Contains(t, buf.String(), "QQQ")
	assert.Contains(t, buf.String(), "stock")
}
