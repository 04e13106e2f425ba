package model

import (
	"fmt"

	"github.com/chriserin/stepbind/internal/registry"
)

// Feature is a parsed feature file. It owns its scenarios.
type Feature struct {
	ID        int
	Keyword   string
	Title     string
	Path      string
	Line      int
	Scenarios []*Scenario
}

// Scenario owns its steps. Feature points back at the owner and is not
// followed for ownership.
type Scenario struct {
	ID      int
	Keyword string
	Title   string
	Path    string
	Line    int
	Feature *Feature
	Steps   []*Step
}

// Step is a single step line. Definition, Arguments and KeywordArguments are
// empty until the step has been merged with a step definition.
type Step struct {
	ID       int
	Text     string // whole source line, keyword included
	Path     string
	Line     int
	Scenario *Scenario
	Table    bool

	Definition       registry.DefinitionID
	Arguments        []string
	KeywordArguments map[string]string
}

func NewFeature(id int, keyword, title, path string, line int) *Feature {
	return &Feature{ID: id, Keyword: keyword, Title: title, Path: path, Line: line}
}

// AddScenario appends a new scenario owned by f and returns it.
func (f *Feature) AddScenario(id int, keyword, title string, line int) *Scenario {
	s := &Scenario{ID: id, Keyword: keyword, Title: title, Path: f.Path, Line: line, Feature: f}
	f.Scenarios = append(f.Scenarios, s)
	return s
}

// AddStep appends a new step owned by s and returns it.
func (s *Scenario) AddStep(id int, text string, line int, table bool) *Step {
	st := &Step{ID: id, Text: text, Path: s.Path, Line: line, Scenario: s, Table: table}
	s.Steps = append(s.Steps, st)
	return st
}

// Bound reports whether the step has been merged with a definition.
func (s *Step) Bound() bool {
	return s.Definition != ""
}

// Location returns the step position as path:line.
func (s *Step) Location() string {
	return fmt.Sprintf("%s:%d", s.Path, s.Line)
}

// Steps returns every step of every scenario in features, in source order.
func Steps(features []*Feature) []*Step {
	var steps []*Step
	for _, f := range features {
		for _, sc := range f.Scenarios {
			steps = append(steps, sc.Steps...)
		}
	}
	return steps
}
