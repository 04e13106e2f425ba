package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/stepbind/internal/db"
	"github.com/chriserin/stepbind/internal/ui"
)

var definitionFlag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded step bindings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), definitionFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&definitionFlag, "definition", "", "Filter by step definition")
	rootCmd.AddCommand(listCmd)
}

type listRow struct {
	location   string
	definition string
	text       string
}

func RunList(w io.Writer, definitionFilter string) error {
	if err := requireInit(); err != nil {
		return err
	}

	sqlDB, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`
		SELECT f.file_path, b.line, b.definition, b.text
		FROM bindings b
		JOIN files f ON b.file_id = f.id
		WHERE ? = '' OR b.definition = ?
		ORDER BY f.file_path, b.line, b.id
	`, definitionFilter, definitionFilter)
	if err != nil {
		return fmt.Errorf("querying bindings: %w", err)
	}
	defer rows.Close()

	var results []listRow
	for rows.Next() {
		var r listRow
		var filePath string
		var line int
		if err := rows.Scan(&filePath, &line, &r.definition, &r.text); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		r.location = fmt.Sprintf("%s:%d", filePath, line)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	// Compute column widths
	locWidth, defWidth := 0, 0
	for _, r := range results {
		locWidth = max(locWidth, len(r.location))
		defWidth = max(defWidth, len(r.definition))
	}

	for _, r := range results {
		ui.ListRow(w, r.location, r.definition, r.text, locWidth, defWidth)
	}

	return nil
}
