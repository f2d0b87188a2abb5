package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"stochwalk/internal/config"
	"stochwalk/internal/metrics"
	"stochwalk/internal/walk"
)

var (
	cfg   *config.Config
	stats = metrics.New()
)

var RootCmd = &cobra.Command{
	Use:   "stochwalk",
	Short: "synthetic price path generator",
	Long:  "stochwalk simulates geometric Brownian motion, jump-diffusion and mean-reverting paths",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.WithError(err).Warn("cannot load .env file")
		}

		// Once the flags are defined, we can bind config keys with flags.
		v := viper.New()
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		setupLogging(v.GetBool("debug"))

		var err error
		cfg, err = config.Load(v)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"dt":      cfg.Dt,
			"seed":    cfg.Seed,
			"workers": cfg.Workers,
		}).Debug("config loaded")
		return nil
	},

	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil || cfg.MetricsFile == "" {
			return nil
		}
		if err := stats.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
		log.Infof("metrics written to %s", cfg.MetricsFile)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "debug flag")
	RootCmd.PersistentFlags().String("config", "", "config file (default ./stochwalk.yaml)")
	RootCmd.PersistentFlags().Float64("dt", walk.DefaultDt, "step size as a fraction of the horizon unit")
	RootCmd.PersistentFlags().Uint64("seed", 0, "random seed, 0 picks a fresh one")
	RootCmd.PersistentFlags().Int("workers", 0, "Monte Carlo workers, 0 uses GOMAXPROCS")
	RootCmd.PersistentFlags().Int("bins", walk.DefaultBins, "terminal value histogram bins")
	RootCmd.PersistentFlags().String("metrics-file", "", "write prometheus metrics to this file after the command")
}

func setupLogging(debug bool) {
	logger := log.StandardLogger()
	logger.SetFormatter(&prefixed.TextFormatter{})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}

	switch os.Getenv("STOCHWALK_ENV") {
	case "production", "prod":
		logger.SetFormatter(&log.JSONFormatter{})
	}
}

// source returns the random stream for a single command run.
func source() walk.Source {
	seed := cfg.Seed
	if seed == 0 {
		seed = walk.RandomSeed()
		log.Debugf("using random seed %d", seed)
	}
	return walk.NewSource(seed)
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
