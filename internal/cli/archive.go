package cli

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stochwalk/internal/chunk"
	"stochwalk/internal/report"
	"stochwalk/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "create an archive for exported paths in the working directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open()
		if err != nil {
			return err
		}
		if err := s.Init(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty archive in %s\n", s.Root)
		return nil
	},
}

var (
	saveFlags modelFlags
	saveModel string
	saveRef   string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "generate a path and commit it to the archive",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openArchive()
		if err != nil {
			return err
		}

		model := strings.ToLower(saveModel)
		gen, err := saveFlags.generator(model, cfg.Dt)
		if err != nil {
			return err
		}
		start := time.Now()
		path, err := gen.Generate(source())
		if err != nil {
			return err
		}
		stats.ObservePath(model, path, time.Since(start))

		data, err := chunk.Encode(path)
		if err != nil {
			return err
		}
		hash, err := s.Put(data)
		if err != nil {
			return fmt.Errorf("error saving path: %w", err)
		}
		if saveRef != "" {
			if err := s.WriteRef(saveRef, hash); err != nil {
				return err
			}
		}

		log.WithFields(log.Fields{
			"model": model,
			"hash":  hash,
			"ref":   saveRef,
			"bytes": len(data),
		}).Info("path committed")
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully committed object: %s\n", hash)
		return nil
	},
}

var showOut outputFlags

var showCmd = &cobra.Command{
	Use:   "show REF|HASH",
	Short: "decode an archived path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openArchive()
		if err != nil {
			return err
		}
		hash, err := s.Resolve(args[0])
		if err != nil {
			return err
		}
		data, err := s.Get(hash)
		if err != nil {
			return err
		}
		path, err := chunk.Decode(data)
		if err != nil {
			return fmt.Errorf("failed to read object %s: %w", hash, err)
		}
		report.Path(cmd.OutOrStdout(), hash[:12], path, showOut.head, showOut.tail)
		return nil
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "list archived paths and refs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openArchive()
		if err != nil {
			return err
		}
		refs, err := s.Refs()
		if err != nil {
			return err
		}
		named := map[string][]string{}
		for _, name := range store.RefNames(refs) {
			named[refs[name]] = append(named[refs[name]], name)
		}

		hashes, err := s.List()
		if err != nil {
			return err
		}
		for _, hash := range hashes {
			if names := named[hash]; len(names) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", hash, strings.Join(names, ", "))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), hash)
			}
		}
		return nil
	},
}

func openArchive() (*store.Store, error) {
	s, err := store.Open()
	if err != nil {
		return nil, err
	}
	if !s.Exists() {
		return nil, fmt.Errorf("%w: run `stochwalk init` first", store.ErrNotInitialized)
	}
	return s, nil
}

func init() {
	fs := saveCmd.Flags()
	fs.StringVar(&saveModel, "model", modelGBM, "process: gbm, jump or vasicek")
	fs.StringVar(&saveRef, "ref", "", "name the saved path")
	saveFlags.bindPrice(fs)
	saveFlags.bindProcess(fs, 0.2)
	saveFlags.bindJump(fs)
	saveFlags.bindRate(fs)

	showCmd.Flags().IntVar(&showOut.head, "head", 5, "leading rows to print")
	showCmd.Flags().IntVar(&showOut.tail, "tail", 5, "trailing rows to print")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(saveCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(lsCmd)
}
