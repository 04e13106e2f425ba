package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/stepbind/internal/db"
	"github.com/chriserin/stepbind/internal/ui"
)

var usagesCmd = &cobra.Command{
	Use:   "usages <definition>",
	Short: "List the steps bound to a step definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunUsages(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(usagesCmd)
}

func RunUsages(w io.Writer, definition string) error {
	if err := requireInit(); err != nil {
		return err
	}

	sqlDB, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`
		SELECT f.file_path, b.line, b.text
		FROM bindings b
		JOIN files f ON b.file_id = f.id
		WHERE b.definition = ?
		ORDER BY f.file_path, b.line
	`, definition)
	if err != nil {
		return fmt.Errorf("querying bindings: %w", err)
	}
	defer rows.Close()

	var found bool
	for rows.Next() {
		var filePath, text string
		var line int
		if err := rows.Scan(&filePath, &line, &text); err != nil {
			return fmt.Errorf("scanning binding row: %w", err)
		}
		ui.UsageLine(w, fmt.Sprintf("%s:%d", filePath, line), text)
		found = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if !found {
		fmt.Fprintf(w, "no steps bound to %s\n", definition)
	}

	return nil
}
