package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chriserin/stepbind/internal/config"
	"github.com/chriserin/stepbind/internal/registry"
)

var (
	cfgFile string
	verbose bool
	cfg     = config.DefaultConfig()
	log     = cfg.NewLogger(os.Stderr, false)
)

var rootCmd = &cobra.Command{
	Use:           "stepbind",
	Short:         "stepbind — bind feature steps to step definitions",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		log = cfg.NewLogger(cmd.ErrOrStderr(), verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "stepbind.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func requireInit() error {
	if _, err := os.Stat(cfg.FeaturesDir); os.IsNotExist(err) {
		return fmt.Errorf("run `stepbind init` first")
	}
	return nil
}

func loadRegistry() (*registry.Registry, error) {
	reg, err := registry.Load(cfg.StepsFile)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"file": cfg.StepsFile, "steps": reg.Len()}).Debug("loaded step definitions")
	return reg, nil
}

// featureFiles returns every .feature file below the features directory in
// lexical order.
func featureFiles() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(cfg.FeaturesDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".feature" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", cfg.FeaturesDir, err)
	}
	return paths, nil
}
