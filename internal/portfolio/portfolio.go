// Package portfolio tracks positions bought against a simulated market.
package portfolio

import (
	"errors"
	"fmt"

	"stochwalk/internal/market"
)

var (
	ErrInsufficientCapital = errors.New("insufficient capital")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
)

// Position is anything the portfolio can mark to market.
type Position interface {
	Type() string
	Symbol() string
	Quantity() float64
	EntryPrice() float64
	CurrentPrice(m *market.Market) (float64, error)
}

type StockPosition struct {
	symbol     string
	quantity   float64
	entryPrice float64
}

func NewStockPosition(symbol string, quantity, entryPrice float64) *StockPosition {
	return &StockPosition{symbol: symbol, quantity: quantity, entryPrice: entryPrice}
}

func (p *StockPosition) Type() string        { return "stock" }
func (p *StockPosition) Symbol() string      { return p.symbol }
func (p *StockPosition) Quantity() float64   { return p.quantity }
func (p *StockPosition) EntryPrice() float64 { return p.entryPrice }

func (p *StockPosition) CurrentPrice(m *market.Market) (float64, error) {
	return m.Price(p.symbol)
}

type Portfolio struct {
	initialCapital float64
	cash           float64
	market         *market.Market
	positions      []Position
}

func New(capital float64, m *market.Market) (*Portfolio, error) {
	if capital < 0 {
		return nil, fmt.Errorf("initial capital must not be negative, got %v", capital)
	}
	return &Portfolio{initialCapital: capital, cash: capital, market: m}, nil
}

// AddStock buys quantity shares at the market's current price.
func (p *Portfolio) AddStock(symbol string, quantity float64) (*StockPosition, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuantity, quantity)
	}

	price, err := p.market.Price(symbol)
	if err != nil {
		return nil, err
	}

	cost := price * quantity
	if cost > p.cash {
		return nil, fmt.Errorf("%w: %s x %v costs %.2f, cash %.2f", ErrInsufficientCapital, symbol, quantity, cost, p.cash)
	}

	pos := NewStockPosition(symbol, quantity, price)
	p.cash -= cost
	p.positions = append(p.positions, pos)
	return pos, nil
}

func (p *Portfolio) InitialCapital() float64 {
	return p.initialCapital
}

func (p *Portfolio) Cash() float64 {
	return p.cash
}

func (p *Portfolio) Positions() []Position {
	return append([]Position(nil), p.positions...)
}

// Value marks every position to the market clock and adds the cash.
func (p *Portfolio) Value() (float64, error) {
	value := p.cash
	for _, pos := range p.positions {
		price, err := pos.CurrentPrice(p.market)
		if err != nil {
			return 0, err
		}
		value += price * pos.Quantity()
	}
	return value, nil
}

func (p *Portfolio) PnL() (float64, error) {
	value, err := p.Value()
	if err != nil {
		return 0, err
	}
	return value - p.initialCapital, nil
}
