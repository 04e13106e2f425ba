package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/stepbind/internal/db"
	"github.com/chriserin/stepbind/internal/matcher"
	"github.com/chriserin/stepbind/internal/model"
	"github.com/chriserin/stepbind/internal/parser"
	"github.com/chriserin/stepbind/internal/ui"
)

var bindCmd = &cobra.Command{
	Use:   "bind",
	Short: "Bind every feature step to its step definition and record the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunBind(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(bindCmd)
}

// RunBind merges all feature files with the step definitions. Nothing is
// recorded unless every step has a definition.
func RunBind(w io.Writer) error {
	if err := requireInit(); err != nil {
		return err
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	features, err := parseFeatures()
	if err != nil {
		return err
	}

	if err := matcher.New(log).MergeSteps(features, reg); err != nil {
		return err
	}

	sqlDB, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	paths := make([]string, len(features))
	for i, f := range features {
		paths[i] = f.Path
	}
	removed, err := db.PruneFiles(sqlDB, paths)
	if err != nil {
		return err
	}
	if removed > 0 {
		log.Debugf("removed bindings of %d deleted files", removed)
	}

	total := 0
	for _, f := range features {
		isNew, err := db.SaveBindings(sqlDB, f)
		if err != nil {
			return err
		}
		count := len(model.Steps([]*model.Feature{f}))
		if isNew {
			ui.NewLine(w, f.Path, count)
		} else {
			ui.TrkLine(w, f.Path, count)
		}
		total += count
	}

	ui.SummaryLine(w, total, len(features))
	return nil
}

func parseFeatures() ([]*model.Feature, error) {
	paths, err := featureFiles()
	if err != nil {
		return nil, err
	}

	ids := &parser.IDs{}
	var features []*model.Feature
	for _, path := range paths {
		f, parseErrors, err := parser.ParseFile(path, ids)
		if err != nil {
			return nil, err
		}
		if len(parseErrors) > 0 {
			return nil, fmt.Errorf("%s:%d: %s", path, parseErrors[0].Line, parseErrors[0].Message)
		}
		log.WithField("file", path).Debugf("parsed %d scenarios", len(f.Scenarios))
		features = append(features, f)
	}
	return features, nil
}
