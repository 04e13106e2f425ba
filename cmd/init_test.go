package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/stepbind/internal/config"
	"github.com/chriserin/stepbind/internal/db"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
	return dir
}

func runInit(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunInit(&buf))
	return buf.String()
}

func TestInit_CreatesFeaturesDirectory(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	info, err := os.Stat(filepath.Join(dir, "features"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Contains(t, out, "features/ created")
}

func TestInit_FeaturesDirectoryAlreadyExists(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "features"), 0o755))

	out := runInit(t)

	assert.Contains(t, out, "features/ already exists")
}

func TestInit_InitializesSQLiteDatabase(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	_, err := os.Stat(filepath.Join(dir, "features", "stepbind.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "features/stepbind.db created")

	sqlDB, err := db.Open("features/stepbind.db")
	require.NoError(t, err)
	defer sqlDB.Close()

	var version int
	require.NoError(t, sqlDB.QueryRow(`SELECT version FROM schema_version`).Scan(&version))
	assert.Equal(t, len(db.All), version)

	var mode string
	require.NoError(t, sqlDB.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestInit_FeaturesDirFromConfig(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("stepbind.yaml", []byte("features_dir: acceptance\n"), 0o644))
	loaded, err := config.Load("stepbind.yaml")
	require.NoError(t, err)
	orig := cfg
	cfg = loaded
	t.Cleanup(func() { cfg = orig })

	out := runInit(t)

	assert.Contains(t, out, "acceptance/ created")
	assert.Contains(t, out, "acceptance/stepbind.db created")
	assert.Contains(t, out, "acceptance/steps.yaml created")
	_, err = os.Stat(filepath.Join("acceptance", "stepbind.db"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join("acceptance", "steps.yaml"))
	require.NoError(t, err)
}

func TestInit_CreatesDatabaseDirectory(t *testing.T) {
	inTempDir(t)
	orig := cfg
	custom := *config.DefaultConfig()
	custom.Database = "var/data/stepbind.db"
	cfg = &custom
	t.Cleanup(func() { cfg = orig })

	out := runInit(t)

	assert.Contains(t, out, "var/data/stepbind.db created")
	_, err := os.Stat(filepath.Join("var", "data", "stepbind.db"))
	require.NoError(t, err)
}

func TestInit_RunTwice(t *testing.T) {
	inTempDir(t)
	runInit(t)

	out := runInit(t)

	assert.Contains(t, out, "features/ already exists")
	assert.Contains(t, out, "features/stepbind.db already exists")
	assert.Contains(t, out, "features/steps.yaml already exists")
	assert.Contains(t, out, "features/stepbind.db already in .gitignore")
}

func TestInit_WritesStarterSteps(t *testing.T) {
	inTempDir(t)
	out := runInit(t)

	assert.Contains(t, out, "features/steps.yaml created")
	data, err := os.ReadFile("features/steps.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "steps: []")
}

func TestInit_KeepsExistingSteps(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.Mkdir("features", 0o755))
	require.NoError(t, os.WriteFile("features/steps.yaml", []byte("steps:\n  - pattern: a\n    definition: b\n"), 0o644))

	runInit(t)

	data, err := os.ReadFile("features/steps.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "definition: b")
}

func TestInit_AddsToGitignore(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile(".gitignore", []byte("node_modules/"), 0o644))

	out := runInit(t)

	data, err := os.ReadFile(".gitignore")
	require.NoError(t, err)
	assert.Equal(t, "node_modules/\nfeatures/stepbind.db\n", string(data))
	assert.Contains(t, out, "features/stepbind.db added to .gitignore")
}

func TestInit_NoGitignoreExists(t *testing.T) {
	inTempDir(t)
	out := runInit(t)

	data, err := os.ReadFile(".gitignore")
	require.NoError(t, err)
	assert.Equal(t, "features/stepbind.db\n", string(data))
	assert.Contains(t, out, ".gitignore created")
}
