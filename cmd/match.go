package cmd

import (
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/stepbind/internal/matcher"
	"github.com/chriserin/stepbind/internal/ui"
)

var matchCmd = &cobra.Command{
	Use:   "match <step text>",
	Short: "Resolve a single step line against the step definitions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunMatch(cmd.OutOrStdout(), strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

// RunMatch prints the definition text resolves to. A step without a
// definition is reported, not returned as an error.
func RunMatch(w io.Writer, text string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	res, ok := matcher.New(log).Match(text, reg)
	if !ok {
		ui.NoMatch(w)
		return nil
	}

	names := slices.Sorted(maps.Keys(res.KeywordArguments))
	ui.MatchResult(w, string(res.Definition), res.Arguments, res.KeywordArguments, names)
	return nil
}
