package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/stepbind/internal/matcher"
	"github.com/chriserin/stepbind/internal/parser"
	"github.com/chriserin/stepbind/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Show each step of a feature file with the definition it would bind to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// RunShow is a dry run over one file: undefined steps are listed rather
// than treated as failures.
func RunShow(w io.Writer, path string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	f, parseErrors, err := parser.ParseFile(path, &parser.IDs{})
	if err != nil {
		return err
	}
	for _, pe := range parseErrors {
		log.Warnf("%s:%d: %s", path, pe.Line, pe.Message)
	}

	m := matcher.New(log)
	steps, undefined := 0, 0

	ui.FeatureHeader(w, f.Title, f.Path)
	for _, sc := range f.Scenarios {
		fmt.Fprintln(w)
		ui.ScenarioHeader(w, sc.Title)
		for _, st := range sc.Steps {
			definition := ""
			if res, ok := m.Match(st.Text, reg); ok {
				definition = string(res.Definition)
			} else {
				undefined++
			}
			ui.StepLine(w, st.Line, st.Text, definition)
			steps++
		}
	}

	fmt.Fprintf(w, "\n%d steps, %d undefined\n", steps, undefined)
	return nil
}
