// Package market keeps a registry of simulated stocks and composes weighted
// indices over their paths.
package market

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"stochwalk/internal/walk"
)

var (
	ErrDuplicateSymbol = errors.New("stock already exists")
	ErrUnknownSymbol   = errors.New("stock is not in market")
)

// Market owns one generated path per symbol and a clock shared by every
// price lookup. It is not safe for concurrent use.
type Market struct {
	rng     *rand.Rand
	stocks  map[string]*Stock
	clock   int
	weights []Weight
}

// New creates an empty market. Each stock added later is generated from its
// own stream seeded off src, so a fixed src reproduces the whole market.
func New(src rand.Source) *Market {
	if src == nil {
		src = walk.NewSource(walk.RandomSeed())
	}
	return &Market{
		rng:    rand.New(src),
		stocks: make(map[string]*Stock),
	}
}

// AddSymbol generates the stock's path right away.
func (m *Market) AddSymbol(symbol string, params StockParams) (*Stock, error) {
	if _, ok := m.stocks[symbol]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSymbol, symbol)
	}

	stock, err := NewStock(symbol, params, walk.NewSource(m.rng.Uint64()))
	if err != nil {
		return nil, err
	}
	m.stocks[symbol] = stock
	return stock, nil
}

// AddSymbols adds every symbol with DefaultStockParams.
func (m *Market) AddSymbols(symbols ...string) error {
	for _, symbol := range symbols {
		if _, err := m.AddSymbol(symbol, DefaultStockParams()); err != nil {
			return err
		}
	}
	return nil
}

func (m *Market) Stock(symbol string) (*Stock, error) {
	stock, ok := m.stocks[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}
	return stock, nil
}

func (m *Market) Path(symbol string) (*walk.Path, error) {
	stock, err := m.Stock(symbol)
	if err != nil {
		return nil, err
	}
	return stock.Path, nil
}

// Price returns the symbol's value at the market clock.
func (m *Market) Price(symbol string) (float64, error) {
	stock, err := m.Stock(symbol)
	if err != nil {
		return 0, err
	}
	return stock.Path.At(m.clock), nil
}

func (m *Market) Clock() int {
	return m.clock
}

// Advance moves the clock one step. It returns false once the shortest path
// is exhausted.
func (m *Market) Advance() bool {
	if m.clock+1 >= m.Steps() {
		return false
	}
	m.clock++
	return true
}

// AdvanceBy moves the clock up to n steps and returns how many it moved.
func (m *Market) AdvanceBy(n int) int {
	moved := 0
	for moved < n && m.Advance() {
		moved++
	}
	return moved
}

// Steps is the length of the shortest registered path.
func (m *Market) Steps() int {
	n := 0
	for _, stock := range m.stocks {
		if n == 0 || stock.Path.Len() < n {
			n = stock.Path.Len()
		}
	}
	return n
}

func (m *Market) Symbols() []string {
	symbols := make([]string, 0, len(m.stocks))
	for symbol := range m.stocks {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
