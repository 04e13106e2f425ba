package parser

import (
	"fmt"
	"os"

	"github.com/chriserin/stepbind/internal/model"
)

// IDs hands out identifiers that are unique across every file transformed
// with the same IDs value.
type IDs struct {
	feature, scenario, step int
}

func next(n *int) int {
	*n++
	return *n
}

// Transform converts a Layer 1 Document into a model.Feature. Background
// steps are copied in front of each scenario's own steps, keeping the line
// numbers they have in the Background block.
func Transform(doc *Document, path string, ids *IDs) *model.Feature {
	header := doc.Feature.Header
	keyword := header.Keyword
	if keyword == "" {
		keyword = "Feature"
	}
	f := model.NewFeature(next(&ids.feature), keyword, header.Name, path, header.Line)

	var background []Step
	if doc.Feature.Background != nil {
		background = doc.Feature.Background.Steps
	}

	for _, sd := range doc.Feature.Scenarios {
		sc := f.AddScenario(next(&ids.scenario), sd.Scenario.Keyword, sd.Scenario.Name, sd.Line)
		for _, steps := range [][]Step{background, sd.Scenario.Steps} {
			for _, st := range steps {
				sc.AddStep(next(&ids.step), st.Source, st.Line, hasTable(st))
			}
		}
	}

	return f
}

func hasTable(st Step) bool {
	return st.Argument != nil && st.Argument.DataTable != nil
}

// ParseFile reads, parses and transforms one feature file.
func ParseFile(path string, ids *IDs) (*model.Feature, []ParseError, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, parseErrors := Parse(path, content)
	return Transform(doc, path, ids), parseErrors, nil
}
