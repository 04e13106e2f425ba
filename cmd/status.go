package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/stepbind/internal/db"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how many steps are bound to each step definition",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStatus(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// RunStatus reports binding counts per definition, followed by the
// registered definitions no recorded step uses.
func RunStatus(w io.Writer) error {
	if err := requireInit(); err != nil {
		return err
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	sqlDB, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	var count int
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM bindings`).Scan(&count); err != nil {
		return fmt.Errorf("counting bindings: %w", err)
	}
	fmt.Fprintf(w, "Steps: %d\n", count)

	rows, err := sqlDB.Query(`
		SELECT definition, COUNT(*) AS cnt
		FROM bindings
		GROUP BY definition
		ORDER BY cnt DESC, definition
	`)
	if err != nil {
		return fmt.Errorf("querying binding counts: %w", err)
	}
	defer rows.Close()

	used := map[string]bool{}
	for rows.Next() {
		var definition string
		var cnt int
		if err := rows.Scan(&definition, &cnt); err != nil {
			return fmt.Errorf("scanning binding row: %w", err)
		}
		used[definition] = true
		fmt.Fprintf(w, "  %s: %d\n", definition, cnt)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var unused []string
	seen := map[string]bool{}
	for _, e := range reg.Entries() {
		def := string(e.Definition)
		if !used[def] && !seen[def] {
			unused = append(unused, def)
		}
		seen[def] = true
	}
	if len(unused) > 0 {
		fmt.Fprintf(w, "Unused definitions: %d\n", len(unused))
		for _, def := range unused {
			fmt.Fprintf(w, "  %s\n", def)
		}
	}

	return nil
}
