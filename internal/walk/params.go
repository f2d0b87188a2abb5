// Package walk generates synthetic sample paths for geometric Brownian motion,
// jump-diffusion and mean-reverting processes.
package walk

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// DefaultDt is one trading day as a fraction of a 252 day year.
const DefaultDt = 0.00396825396

// ErrInvalidParameter is wrapped by every validation error, so callers can
// match it with errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}

// Params describes a single exponential-family process.
type Params struct {
	S0    float64 `json:"s0" mapstructure:"s0"`
	Mu    float64 `json:"mu" mapstructure:"mu"`
	Sigma float64 `json:"sigma" mapstructure:"sigma"`
	T     float64 `json:"t" mapstructure:"t"`
	Dt    float64 `json:"dt" mapstructure:"dt"`
}

// Steps is round(T/Dt).
func (p Params) Steps() int {
	return steps(p.T, p.Dt)
}

// Validate reports every invalid field at once.
func (p Params) Validate() error {
	err := validateHorizon(p.T, p.Dt)
	if !finite(p.S0) || p.S0 <= 0 {
		err = multierr.Append(err, invalid("s0 must be positive, got %v", p.S0))
	}
	if !finite(p.Mu) {
		err = multierr.Append(err, invalid("mu must be finite, got %v", p.Mu))
	}
	if !finite(p.Sigma) || p.Sigma < 0 {
		err = multierr.Append(err, invalid("sigma must be non-negative, got %v", p.Sigma))
	}
	return err
}

// JumpParams adds log-normal jumps arriving at Poisson rate Lambda.
type JumpParams struct {
	MuJ    float64 `json:"mu_j" mapstructure:"mu_j"`
	SigmaJ float64 `json:"sigma_j" mapstructure:"sigma_j"`
	Lambda float64 `json:"lambda" mapstructure:"lambda"`
}

// Validate reports every invalid field at once.
func (j JumpParams) Validate() error {
	var err error
	if !finite(j.MuJ) {
		err = multierr.Append(err, invalid("mu_j must be finite, got %v", j.MuJ))
	}
	if !finite(j.SigmaJ) || j.SigmaJ < 0 {
		err = multierr.Append(err, invalid("sigma_j must be non-negative, got %v", j.SigmaJ))
	}
	if !finite(j.Lambda) || j.Lambda < 0 {
		err = multierr.Append(err, invalid("lambda must be non-negative, got %v", j.Lambda))
	}
	return err
}

func validateHorizon(t, dt float64) error {
	var err error
	if !finite(t) || t <= 0 {
		err = multierr.Append(err, invalid("T must be positive, got %v", t))
	}
	if !finite(dt) || dt <= 0 {
		err = multierr.Append(err, invalid("dt must be positive, got %v", dt))
	}
	if err == nil && dt >= t {
		err = invalid("dt (%v) must be smaller than T (%v)", dt, t)
	}
	return err
}

func steps(t, dt float64) int {
	return int(math.Round(t / dt))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
