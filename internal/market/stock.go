package market

import (
	"fmt"

	"golang.org/x/exp/rand"

	"stochwalk/internal/walk"
)

// StockParams are the jump-diffusion parameters of a single stock.
type StockParams struct {
	S0     float64 `json:"s0" mapstructure:"s0"`
	Mu     float64 `json:"mu" mapstructure:"mu"`
	Sigma  float64 `json:"sigma" mapstructure:"sigma"`
	T      float64 `json:"t" mapstructure:"t"`
	MuJ    float64 `json:"mu_j" mapstructure:"mu_j"`
	SigmaJ float64 `json:"sigma_j" mapstructure:"sigma_j"`
	Lambda float64 `json:"lambda" mapstructure:"lambda"`
	Dt     float64 `json:"dt" mapstructure:"dt"`
}

func DefaultStockParams() StockParams {
	return StockParams{
		S0:     100,
		Mu:     1,
		Sigma:  0.2,
		T:      1,
		MuJ:    0,
		SigmaJ: 1,
		Lambda: 0.02,
		Dt:     walk.DefaultDt,
	}
}

func (p StockParams) Generator() walk.JumpDiffusion {
	return walk.JumpDiffusion{
		Params: walk.Params{S0: p.S0, Mu: p.Mu, Sigma: p.Sigma, T: p.T, Dt: p.Dt},
		Jump:   walk.JumpParams{MuJ: p.MuJ, SigmaJ: p.SigmaJ, Lambda: p.Lambda},
	}
}

type Stock struct {
	Symbol string
	Params StockParams
	Path   *walk.Path
}

func NewStock(symbol string, params StockParams, src rand.Source) (*Stock, error) {
	path, err := params.Generator().Generate(src)
	if err != nil {
		return nil, fmt.Errorf("stock %s: %w", symbol, err)
	}
	return &Stock{Symbol: symbol, Params: params, Path: path}, nil
}
