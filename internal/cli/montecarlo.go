package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stochwalk/internal/plot"
	"stochwalk/internal/report"
	"stochwalk/internal/walk"
)

var monteCarloCmd = &cobra.Command{
	Use:     "montecarlo",
	Aliases: []string{"mc"},
	Short:   "run a batch of independent paths and summarize terminal values",
	Args:    cobra.NoArgs,
	RunE:    runMonteCarlo,
}

var (
	mcFlags     modelFlags
	mcModel     string
	mcPaths     int
	mcPlotFile  string
	mcHistogram string
)

func init() {
	fs := monteCarloCmd.Flags()
	fs.StringVar(&mcModel, "model", modelGBM, "process: gbm, jump or vasicek")
	fs.IntVarP(&mcPaths, "paths", "n", 50, "number of repetitions")
	fs.StringVar(&mcPlotFile, "plot", "", "render the ensemble to this PNG file")
	fs.StringVar(&mcHistogram, "histogram", "", "render the terminal value histogram to this PNG file")
	mcFlags.bindPrice(fs)
	mcFlags.bindProcess(fs, 0.2)
	mcFlags.bindJump(fs)
	mcFlags.bindRate(fs)

	RootCmd.AddCommand(monteCarloCmd)
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	model := strings.ToLower(mcModel)
	gen, err := mcFlags.generator(model, cfg.Dt)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = walk.RandomSeed()
	}
	logger := log.WithFields(log.Fields{
		"model": model,
		"paths": mcPaths,
		"seed":  seed,
	})
	logger.Info("starting monte carlo run")

	start := time.Now()
	ensemble, summary, err := walk.MonteCarlo(cmd.Context(), gen, mcPaths,
		walk.WithSeed(seed),
		walk.WithWorkers(cfg.Workers),
		walk.WithBins(cfg.Bins),
	)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	stats.ObserveEnsemble(model, ensemble, summary, elapsed)
	logger.WithField("elapsed", elapsed).Info("monte carlo run finished")

	report.Summary(cmd.OutOrStdout(), fmt.Sprintf("Monte Carlo %s (%d paths)", model, mcPaths), summary)

	if mcPlotFile != "" {
		if err := plot.SaveFile(mcPlotFile, func(w io.Writer) error {
			return plot.Ensemble(w, model, ensemble)
		}); err != nil {
			return err
		}
		log.Infof("ensemble plot saved to %s", mcPlotFile)
	}
	if mcHistogram != "" {
		if err := plot.SaveFile(mcHistogram, func(w io.Writer) error {
			return plot.Histogram(w, model+" terminal values", summary)
		}); err != nil {
			return err
		}
		log.Infof("histogram saved to %s", mcHistogram)
	}
	return nil
}
