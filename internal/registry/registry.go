package registry

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DefinitionID is an opaque token naming a step definition. The execution
// layer resolves it to something callable; matching only passes it through.
type DefinitionID string

// Entry pairs a compiled step pattern with the definition it resolves to.
type Entry struct {
	Pattern    *regexp.Regexp
	Definition DefinitionID
}

// Registry holds step definitions in registration order. Order matters:
// when several patterns match a step, the earliest entry wins.
type Registry struct {
	entries []Entry
}

func New() *Registry {
	return &Registry{}
}

// Register compiles pattern and appends it to the registry.
func (r *Registry) Register(pattern string, def DefinitionID) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("compiling step pattern %q: %w", pattern, err)
	}
	r.Add(re, def)
	return nil
}

// MustRegister is like Register but panics if pattern does not compile.
func (r *Registry) MustRegister(pattern string, def DefinitionID) *Registry {
	if err := r.Register(pattern, def); err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Add(re *regexp.Regexp, def DefinitionID) {
	r.entries = append(r.entries, Entry{Pattern: re, Definition: def})
}

// Entries returns the registered entries in insertion order.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	return r.entries
}

func (r *Registry) Len() int {
	return len(r.Entries())
}

type stepFile struct {
	Steps []struct {
		Pattern    string `yaml:"pattern"`
		Definition string `yaml:"definition"`
	} `yaml:"steps"`
}

// Load reads a YAML steps file. Entries are registered in file order.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading steps file: %w", err)
	}

	var sf stepFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing steps file %s: %w", path, err)
	}

	r := New()
	for i, s := range sf.Steps {
		if s.Pattern == "" {
			return nil, fmt.Errorf("%s: step %d has no pattern", path, i+1)
		}
		if s.Definition == "" {
			return nil, fmt.Errorf("%s: step %d has no definition", path, i+1)
		}
		if err := r.Register(s.Pattern, DefinitionID(s.Definition)); err != nil {
			return nil, fmt.Errorf("%s: step %d: %w", path, i+1, err)
		}
	}
	return r, nil
}
