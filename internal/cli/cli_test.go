package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stochwalk/internal/report"
)

func init() {
	report.Plain = true
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetErr(&buf)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return buf.String(), err
}

func TestGBMCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "gbm", "--seed", "1", "--dt", "0.01", "--sigma", "0", "--mu", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "100.0000")
	assert.Contains(t, out, "99")

	plotFile := filepath.Join(t.TempDir(), "gbm.png")
	_, err = run(t, "gbm", "--seed", "1", "--dt", "0.01", "--plot", plotFile)
	require.NoError(t, err)
	assert.FileExists(t, plotFile)
}

func TestJumpAndVasicekCommands(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "jump", "--seed", "3", "--dt", "0.01", "--lambda", "50", "--sigma-j", "0.1")
	require.NoError(t, err)
	assert.Contains(t, out, "JUMPS")

	_, err = run(t, "jump", "--seed", "3", "--dt", "0.01", "--lambda", "0", "--sized-jump", "0.01", "--sized-jump", "0.02", "--random-jumps", "1")
	require.NoError(t, err)

	out, err = run(t, "vasicek", "--seed", "3", "--dt", "0.01")
	require.NoError(t, err)
	assert.Contains(t, out, "0.0300")
}

func TestGBMCommand_InvalidParameter(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := run(t, "gbm", "--seed", "1", "--dt", "2", "--horizon", "1")
	assert.Error(t, err)
	_, err = run(t, "gbm", "--seed", "1", "--dt", "0.01", "--horizon", "1")
	assert.NoError(t, err)
}

func TestMonteCarloCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	metricsFile := filepath.Join(dir, "stochwalk.prom")

	out, err := run(t, "montecarlo", "--seed", "5", "--dt", "0.01", "-n", "40",
		"--model", "jump", "--plot", filepath.Join(dir, "mc.png"),
		"--histogram", filepath.Join(dir, "hist.png"),
		"--metrics-file", metricsFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Mean")
	assert.FileExists(t, filepath.Join(dir, "mc.png"))
	assert.FileExists(t, filepath.Join(dir, "hist.png"))

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `stochwalk_paths_generated_total{model="jump"}`)

	_, err = run(t, "montecarlo", "--model", "heston", "--metrics-file", "")
	assert.ErrorContains(t, err, "unknown model")
}

func TestMarketAndPortfolioCommands(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("stochwalk.yaml", []byte(`
market:
  symbols:
    - {symbol: SPX}
    - {symbol: QQQ, s0: 50}
  index:
    - {symbol: SPX, weight: 0.6}
    - {symbol: QQQ, weight: 0.4}
portfolio:
  capital: 10000
`), 0o644))

	out, err := run(t, "market", "--seed", "2", "--dt", "0.01", "--advance", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Market at step 10")
	assert.Contains(t, out, "QQQ")
	assert.Contains(t, out, "INDEX")

	out, err = run(t, "portfolio", "--seed", "2", "--dt", "0.01", "spx=10", "QQQ=20")
	require.NoError(t, err)
	assert.Contains(t, out, "SPX")

	_, err = run(t, "portfolio", "--seed", "2", "--dt", "0.01", "CL=1")
	assert.ErrorContains(t, err, "not in market")

	_, err = run(t, "portfolio", "--seed", "2", "--dt", "0.01", "SPX")
	assert.ErrorContains(t, err, "SYMBOL=QTY")
}

func TestArchiveCommands(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "save", "--seed", "1", "--dt", "0.01")
	assert.ErrorContains(t, err, "stochwalk init")

	out, err := run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized empty archive")

	out, err = run(t, "save", "--seed", "1", "--dt", "0.01", "--model", "jump", "--ref", "spx")
	require.NoError(t, err)
	require.Contains(t, out, "Successfully committed object: ")
	hash := strings.TrimSpace(strings.TrimPrefix(out, "Successfully committed object: "))
	assert.Len(t, hash, 64)

	out, err = run(t, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, hash+" (spx)")

	out, err = run(t, "show", "spx")
	require.NoError(t, err)
	assert.Contains(t, out, hash[:12])

	out, err = run(t, "show", hash[:8])
	require.NoError(t, err)
	assert.Contains(t, out, hash[:12])
}
