package market

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var ErrLengthMismatch = errors.New("index constituents have different lengths")

type Weight struct {
	Symbol string  `json:"symbol" mapstructure:"symbol"`
	Weight float64 `json:"weight" mapstructure:"weight"`
}

// Index is the element-wise weighted sum of its constituents' values.
// Weights are used as given, never normalized.
type Index struct {
	Weights []Weight
	Times   []float64
	Values  []float64
}

// CreateIndex builds an index from weights. Called without weights it reuses
// the weights of the previous call.
func (m *Market) CreateIndex(weights ...Weight) (*Index, error) {
	if len(weights) == 0 {
		weights = m.weights
	} else {
		weights = append([]Weight(nil), weights...)
	}
	if len(weights) == 0 {
		return nil, errors.New("index has no constituents")
	}

	var index *Index
	for _, w := range weights {
		path, err := m.Path(w.Symbol)
		if err != nil {
			return nil, fmt.Errorf("index constituent: %w", err)
		}

		if index == nil {
			index = &Index{
				Weights: weights,
				Times:   path.Times,
				Values:  make([]float64, path.Len()),
			}
		} else if path.Len() != len(index.Values) {
			return nil, fmt.Errorf("%w: %s has %d steps, want %d", ErrLengthMismatch, w.Symbol, path.Len(), len(index.Values))
		}
		floats.AddScaled(index.Values, w.Weight, path.Values)
	}
	m.weights = weights
	return index, nil
}
