package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stochwalk/internal/market"
	"stochwalk/internal/walk"
)

func newMarket(t *testing.T) *market.Market {
	m := market.New(walk.NewSource(1))
	require.NoError(t, m.AddSymbols("SPX", "SPY", "QQQ"))
	return m
}

func TestPortfolio_AddStock(t *testing.T) {
	m := newMarket(t)
	p, err := New(1000000, m)
	require.NoError(t, err)

	price, err := m.Price("SPX")
	require.NoError(t, err)

	pos, err := p.AddStock("SPX", 10)
	require.NoError(t, err)
	assert.Equal(t, "stock", pos.Type())
	assert.Equal(t, price, pos.EntryPrice())
	assert.InDelta(t, 1000000-10*price, p.Cash(), 1e-6)
	assert.Len(t, p.Positions(), 1)

	value, err := p.Value()
	require.NoError(t, err)
	assert.InDelta(t, 1000000, value, 1e-6)

	require.True(t, m.Advance())
	next, err := m.Price("SPX")
	require.NoError(t, err)
	pnl, err := p.PnL()
	require.NoError(t, err)
	assert.InDelta(t, 10*(next-price), pnl, 1e-6)
}

func TestPortfolio_Errors(t *testing.T) {
	m := newMarket(t)
	p, err := New(10, m)
	require.NoError(t, err)

	_, err = p.AddStock("SPX", 1000)
	assert.ErrorIs(t, err, ErrInsufficientCapital)

	_, err = p.AddStock("CL", 1)
	assert.ErrorIs(t, err, market.ErrUnknownSymbol)

	_, err = p.AddStock("SPX", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	assert.Empty(t, p.Positions())
	assert.Equal(t, 10.0, p.Cash())

	_, err = New(-1, m)
	assert.Error(t, err)
}
