package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stepbind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "stepbind.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `features_dir: acceptance
steps_file: acceptance/defs.yaml
logging:
  level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, "acceptance", cfg.FeaturesDir)
	assert.Equal(t, "acceptance/defs.yaml", cfg.StepsFile)
	assert.Equal(t, "acceptance/stepbind.db", cfg.Database)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_FeaturesDirOnlyMovesDerivedPaths(t *testing.T) {
	cfg, err := Load(writeConfig(t, "features_dir: acceptance\n"))
	require.NoError(t, err)
	assert.Equal(t, "acceptance", cfg.FeaturesDir)
	assert.Equal(t, "acceptance/steps.yaml", cfg.StepsFile)
	assert.Equal(t, "acceptance/stepbind.db", cfg.Database)
}

func TestLoad_ExplicitPathsKept(t *testing.T) {
	cfg, err := Load(writeConfig(t, "features_dir: acceptance\ndatabase: var/stepbind.db\n"))
	require.NoError(t, err)
	assert.Equal(t, "acceptance/steps.yaml", cfg.StepsFile)
	assert.Equal(t, "var/stepbind.db", cfg.Database)
}

func TestDefaultConfig_Paths(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "features/steps.yaml", cfg.StepsFile)
	assert.Equal(t, "features/stepbind.db", cfg.Database)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "{{invalid yaml}}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_InvalidLevel(t *testing.T) {
	_, err := Load(writeConfig(t, "logging:\n  level: loud\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestValidate_EmptyPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FeaturesDir = ""
	cfg.Database = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "features_dir must not be empty")
	assert.Contains(t, err.Error(), "database must not be empty")
	assert.NotContains(t, err.Error(), "steps_file")
}

func TestNewLogger_Level(t *testing.T) {
	cfg := DefaultConfig()
	var buf bytes.Buffer

	log := cfg.NewLogger(&buf, false)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_VerboseForcesDebug(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "warn"

	log := cfg.NewLogger(&bytes.Buffer{}, true)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}
