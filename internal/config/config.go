package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the project configuration read from stepbind.yaml.
type Config struct {
	FeaturesDir string        `yaml:"features_dir"`
	StepsFile   string        `yaml:"steps_file"`
	Database    string        `yaml:"database"`
	Logging     LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with the default project layout.
func DefaultConfig() *Config {
	cfg := &Config{
		FeaturesDir: "features",
		Logging:     LoggingConfig{Level: "info"},
	}
	cfg.derivePaths()
	return cfg
}

// derivePaths places an unset steps file or database inside the features
// directory.
func (c *Config) derivePaths() {
	if c.FeaturesDir == "" {
		return
	}
	if c.StepsFile == "" {
		c.StepsFile = filepath.ToSlash(filepath.Join(c.FeaturesDir, "steps.yaml"))
	}
	if c.Database == "" {
		c.Database = filepath.ToSlash(filepath.Join(c.FeaturesDir, "stepbind.db"))
	}
}

// Load reads a YAML configuration file over the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{FeaturesDir: "features", Logging: LoggingConfig{Level: "info"}}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.derivePaths()
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every path is set and the log level is known.
func Validate(cfg *Config) error {
	var errs []string
	if cfg.FeaturesDir == "" {
		errs = append(errs, "features_dir must not be empty")
	}
	if cfg.StepsFile == "" {
		errs = append(errs, "steps_file must not be empty")
	}
	if cfg.Database == "" {
		errs = append(errs, "database must not be empty")
	}
	if _, err := logrus.ParseLevel(cfg.Logging.Level); err != nil {
		errs = append(errs, fmt.Sprintf("logging.level: %v", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// NewLogger builds a text logger writing to w at the configured level.
// verbose forces debug output.
func (c *Config) NewLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	return log
}
