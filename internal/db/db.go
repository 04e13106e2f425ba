package db

import (
	"database/sql"
	"fmt"
	"maps"
	"slices"

	_ "modernc.org/sqlite"

	"github.com/chriserin/stepbind/internal/model"
)

// Open opens the SQLite database at path and applies pending migrations.
func Open(path string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}
	if err := Migrate(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

// PruneFiles removes every stored file, with its bindings, whose path is not
// in keep. It returns the number of files removed.
func PruneFiles(sqlDB *sql.DB, keep []string) (int, error) {
	tx, err := sqlDB.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning prune: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT id, file_path FROM files`)
	if err != nil {
		return 0, fmt.Errorf("querying files: %w", err)
	}
	var stale []int64
	for rows.Next() {
		var id int64
		var path string
		if err := rows.Scan(&id, &path); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning file row: %w", err)
		}
		if !slices.Contains(keep, path) {
			stale = append(stale, id)
		}
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return 0, fmt.Errorf("iterating files: %w", err)
	}

	for _, id := range stale {
		if _, err := tx.Exec(`DELETE FROM binding_arguments WHERE binding_id IN (SELECT id FROM bindings WHERE file_id = ?)`, id); err != nil {
			return 0, fmt.Errorf("removing arguments of file %d: %w", id, err)
		}
		if _, err := tx.Exec(`DELETE FROM bindings WHERE file_id = ?`, id); err != nil {
			return 0, fmt.Errorf("removing bindings of file %d: %w", id, err)
		}
		if _, err := tx.Exec(`DELETE FROM files WHERE id = ?`, id); err != nil {
			return 0, fmt.Errorf("removing file %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing prune: %w", err)
	}
	return len(stale), nil
}

// SaveBindings replaces the stored bindings of f's file with the current
// bindings of its steps. It reports whether the file was seen for the first
// time. Every step of f must be bound.
func SaveBindings(sqlDB *sql.DB, f *model.Feature) (bool, error) {
	tx, err := sqlDB.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning save of %s: %w", f.Path, err)
	}
	defer tx.Rollback()

	isNew := false
	var fileID int64
	err = tx.QueryRow(`SELECT id FROM files WHERE file_path = ?`, f.Path).Scan(&fileID)
	switch {
	case err == sql.ErrNoRows:
		res, err := tx.Exec(`INSERT INTO files (file_path) VALUES (?)`, f.Path)
		if err != nil {
			return false, fmt.Errorf("inserting %s: %w", f.Path, err)
		}
		if fileID, err = res.LastInsertId(); err != nil {
			return false, fmt.Errorf("inserting %s: %w", f.Path, err)
		}
		isNew = true
	case err != nil:
		return false, fmt.Errorf("querying %s: %w", f.Path, err)
	default:
		if _, err := tx.Exec(`UPDATE files SET updated_at = datetime('now') WHERE id = ?`, fileID); err != nil {
			return false, fmt.Errorf("touching %s: %w", f.Path, err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM binding_arguments WHERE binding_id IN (SELECT id FROM bindings WHERE file_id = ?)`, fileID); err != nil {
		return false, fmt.Errorf("clearing arguments of %s: %w", f.Path, err)
	}
	if _, err := tx.Exec(`DELETE FROM bindings WHERE file_id = ?`, fileID); err != nil {
		return false, fmt.Errorf("clearing bindings of %s: %w", f.Path, err)
	}

	for _, sc := range f.Scenarios {
		for _, st := range sc.Steps {
			if !st.Bound() {
				return false, fmt.Errorf("step at %s is not bound", st.Location())
			}
			if err := insertBinding(tx, fileID, sc.Title, st); err != nil {
				return false, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing bindings of %s: %w", f.Path, err)
	}
	return isNew, nil
}

func insertBinding(tx *sql.Tx, fileID int64, scenario string, st *model.Step) error {
	res, err := tx.Exec(`INSERT INTO bindings (file_id, scenario, line, text, definition) VALUES (?, ?, ?, ?, ?)`,
		fileID, scenario, st.Line, st.Text, string(st.Definition))
	if err != nil {
		return fmt.Errorf("inserting binding for %s: %w", st.Location(), err)
	}
	bindingID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("inserting binding for %s: %w", st.Location(), err)
	}

	for i, value := range st.Arguments {
		if _, err := tx.Exec(`INSERT INTO binding_arguments (binding_id, position, value) VALUES (?, ?, ?)`,
			bindingID, i, value); err != nil {
			return fmt.Errorf("inserting argument for %s: %w", st.Location(), err)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(st.KeywordArguments)) {
		if _, err := tx.Exec(`INSERT INTO binding_arguments (binding_id, name, value) VALUES (?, ?, ?)`,
			bindingID, name, st.KeywordArguments[name]); err != nil {
			return fmt.Errorf("inserting argument for %s: %w", st.Location(), err)
		}
	}
	return nil
}
