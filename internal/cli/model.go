package cli

import (
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"stochwalk/internal/plot"
	"stochwalk/internal/report"
	"stochwalk/internal/walk"
)

const (
	modelGBM     = "gbm"
	modelJump    = "jump"
	modelVasicek = "vasicek"
)

// modelFlags carries the process parameters shared by the generator commands.
type modelFlags struct {
	s0, mu, sigma, horizon float64

	muJ, sigmaJ, lambda float64
	randomJumps         int
	sizedJumps          []float64

	r, a, b float64
}

func (f *modelFlags) bindProcess(fs *pflag.FlagSet, sigma float64) {
	fs.Float64Var(&f.sigma, "sigma", sigma, "volatility")
	fs.Float64VarP(&f.horizon, "horizon", "T", 1, "horizon in time units")
}

func (f *modelFlags) bindPrice(fs *pflag.FlagSet) {
	fs.Float64Var(&f.s0, "s0", 100, "starting value")
	fs.Float64Var(&f.mu, "mu", 0.05, "drift")
}

func (f *modelFlags) bindJump(fs *pflag.FlagSet) {
	fs.Float64Var(&f.muJ, "mu-j", 0, "jump size mean")
	fs.Float64Var(&f.sigmaJ, "sigma-j", 1, "jump size volatility")
	fs.Float64Var(&f.lambda, "lambda", 0.02, "jump intensity per time unit")
	fs.IntVar(&f.randomJumps, "random-jumps", 0, "schedule this many jumps with random sizes instead of a Poisson count")
	fs.Float64SliceVar(&f.sizedJumps, "sized-jump", nil, "schedule a jump of this fraction of s0 instead of a Poisson count (repeatable)")
}

func (f *modelFlags) bindRate(fs *pflag.FlagSet) {
	fs.Float64Var(&f.r, "r", 0.03, "starting rate")
	fs.Float64Var(&f.a, "a", 0.3, "speed of reversion")
	fs.Float64Var(&f.b, "b", 0.1, "long-run mean")
}

func (f *modelFlags) params(dt float64) walk.Params {
	return walk.Params{S0: f.s0, Mu: f.mu, Sigma: f.sigma, T: f.horizon, Dt: dt}
}

// generator builds the model's generator, validating its parameters.
func (f *modelFlags) generator(model string, dt float64) (walk.Generator, error) {
	switch model {
	case modelGBM:
		g := walk.GBM{Params: f.params(dt)}
		return g, g.Validate()

	case modelJump:
		if f.randomJumps > 0 || len(f.sizedJumps) > 0 {
			b := walk.NewJumpBuilder(f.params(dt), f.muJ, f.sigmaJ)
			for i := 0; i < f.randomJumps; i++ {
				b.AddRandomJump()
			}
			for _, pct := range f.sizedJumps {
				b.AddSizedJump(pct)
			}
			return b.Build()
		}
		g := walk.JumpDiffusion{
			Params: f.params(dt),
			Jump:   walk.JumpParams{MuJ: f.muJ, SigmaJ: f.sigmaJ, Lambda: f.lambda},
		}
		return g, g.Validate()

	case modelVasicek:
		g := walk.MeanReverting{R: f.r, A: f.a, B: f.b, Sigma: f.sigma, T: f.horizon, Dt: dt}
		return g, g.Validate()
	}
	return nil, fmt.Errorf("unknown model %q, want one of gbm, jump, vasicek", model)
}

type outputFlags struct {
	plotFile string
	head     int
	tail     int
}

func (o *outputFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.plotFile, "plot", "", "render a PNG chart to this file")
	fs.IntVar(&o.head, "head", 5, "leading rows to print")
	fs.IntVar(&o.tail, "tail", 5, "trailing rows to print")
}

// runSingle generates one path of model and reports it.
func runSingle(w io.Writer, model string, flags *modelFlags, out *outputFlags) error {
	gen, err := flags.generator(model, cfg.Dt)
	if err != nil {
		return err
	}

	start := time.Now()
	path, err := gen.Generate(source())
	if err != nil {
		return err
	}
	stats.ObservePath(model, path, time.Since(start))

	log.WithFields(log.Fields{
		"model":    model,
		"steps":    path.Len(),
		"jumps":    len(path.Jumps),
		"terminal": path.Terminal(),
	}).Info("path generated")

	report.Path(w, model, path, out.head, out.tail)

	if out.plotFile != "" {
		if err := plot.SaveFile(out.plotFile, func(w io.Writer) error {
			return plot.Path(w, model, path)
		}); err != nil {
			return err
		}
		log.Infof("plot saved to %s", out.plotFile)
	}
	return nil
}
