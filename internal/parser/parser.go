package parser

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`@[^@\s]+`)

var stepKeywords = []string{"Given", "When", "Then", "And", "But", "*"}

// Parse parses a feature file and returns a Document AST and any parse errors.
func Parse(filename string, content []byte) (*Document, []ParseError) {
	lines := strings.Split(string(content), "\n")
	var errors []ParseError

	doc := &Document{}
	feature := &Feature{}
	feature.Header.Name = filenameWithoutExt(filename)
	doc.Feature = feature

	var (
		pendingTags []Tag
		steps       *[]Step   // steps of the block being read, nil outside one
		description *[]string // description lines, nil once the block has steps
		featureDesc []string
		scenario    *ScenarioDefinition
		scenDesc    []string
	)

	closeScenario := func() {
		if scenario == nil {
			return
		}
		scenario.Scenario.Description = joinDescription(scenDesc)
		feature.Scenarios = append(feature.Scenarios, *scenario)
		scenario = nil
		scenDesc = nil
	}

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		lineNo := i + 1

		if isDocStringDelimiter(trimmed) {
			next, ds := readDocString(lines, i)
			if last := lastStep(steps); last != nil {
				argumentOf(last).DocString = ds
			}
			i = next - 1
			continue
		}

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if isTagLine(trimmed) {
			pendingTags = append(pendingTags, parseTags(trimmed)...)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "Feature:"):
			closeScenario()
			feature.Header.Keyword = "Feature"
			feature.Header.Name = strings.TrimSpace(strings.TrimPrefix(trimmed, "Feature:"))
			feature.Header.Tags = pendingTags
			feature.Header.Line = lineNo
			pendingTags = nil
			steps = nil
			description = &featureDesc
			continue

		case strings.HasPrefix(trimmed, "Background:"):
			closeScenario()
			pendingTags = nil // Background doesn't get tags
			feature.Background = &Background{Line: lineNo}
			steps = &feature.Background.Steps
			description = nil
			continue

		case strings.HasPrefix(trimmed, "Scenario:"):
			closeScenario()
			scenario = &ScenarioDefinition{
				Tags: pendingTags,
				Scenario: Scenario{
					Keyword: "Scenario",
					Name:    strings.TrimSpace(strings.TrimPrefix(trimmed, "Scenario:")),
				},
				Line: lineNo,
			}
			pendingTags = nil
			steps = &scenario.Scenario.Steps
			description = &scenDesc
			continue
		}

		// Unsupported keywords
		if msg, unsupported := unsupportedKeyword(trimmed); unsupported {
			closeScenario()
			errors = append(errors, ParseError{Line: lineNo, Message: msg})
			pendingTags = nil
			steps = nil
			description = nil
			continue
		}

		if steps == nil {
			if description != nil {
				*description = append(*description, lines[i])
			}
			continue
		}

		if keyword, text, ok := splitStep(trimmed); ok {
			*steps = append(*steps, Step{Keyword: keyword, Text: text, Source: trimmed, Line: lineNo})
			description = nil
			continue
		}

		if strings.HasPrefix(trimmed, "|") {
			if last := lastStep(steps); last != nil {
				arg := argumentOf(last)
				if arg.DataTable == nil {
					arg.DataTable = &DataTable{}
				}
				arg.DataTable.Rows = append(arg.DataTable.Rows, parseRow(trimmed))
			}
			continue
		}

		// Otherwise free text: description before the first step, ignored after
		if description != nil {
			*description = append(*description, lines[i])
		}
	}
	closeScenario()

	feature.Header.Description = joinDescription(featureDesc)
	return doc, errors
}

func unsupportedKeyword(trimmed string) (string, bool) {
	switch {
	case strings.HasPrefix(trimmed, "Scenario Outline:"):
		return "Scenario Outline is not supported", true
	case strings.HasPrefix(trimmed, "Rule:"):
		return "Rule is not supported", true
	case strings.HasPrefix(trimmed, "Examples:"):
		return "Examples is not supported", true
	}
	return "", false
}

// splitStep splits a step line into its keyword and the remaining text.
func splitStep(trimmed string) (string, string, bool) {
	for _, kw := range stepKeywords {
		rest, found := strings.CutPrefix(trimmed, kw)
		if !found || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		return kw, strings.TrimSpace(rest), true
	}
	return "", "", false
}

func lastStep(steps *[]Step) *Step {
	if steps == nil || len(*steps) == 0 {
		return nil
	}
	return &(*steps)[len(*steps)-1]
}

func argumentOf(s *Step) *StepArgument {
	if s.Argument == nil {
		s.Argument = &StepArgument{}
	}
	return s.Argument
}

func parseRow(trimmed string) []string {
	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "|"), "|")
	cells := strings.Split(inner, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func parseTags(line string) []Tag {
	matches := tagPattern.FindAllString(line, -1)
	var tags []Tag
	for _, m := range matches {
		tags = append(tags, Tag{Name: m})
	}
	return tags
}

func isTagLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "@")
}

func isDocStringDelimiter(trimmed string) bool {
	return strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "```")
}

// readDocString reads a doc string block. i points at the opening delimiter.
// Returns the index of the line after the closing delimiter and the block.
func readDocString(lines []string, i int) (int, *DocString) {
	opener := strings.TrimSpace(lines[i])
	delimiter := `"""`
	if strings.HasPrefix(opener, "```") {
		delimiter = "```"
	}
	ds := &DocString{MediaType: strings.TrimSpace(strings.TrimPrefix(opener, delimiter))}
	indent := len(lines[i]) - len(strings.TrimLeft(lines[i], " \t"))

	var body []string
	i++ // move past opening delimiter
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == delimiter {
			ds.Content = strings.Join(body, "\n")
			return i + 1, ds // past the closing delimiter
		}
		body = append(body, trimIndent(lines[i], indent))
		i++
	}
	ds.Content = strings.Join(body, "\n")
	return i, ds // EOF without closing delimiter
}

func trimIndent(line string, indent int) string {
	for n := 0; n < indent && len(line) > 0 && (line[0] == ' ' || line[0] == '\t'); n++ {
		line = line[1:]
	}
	return line
}

func joinDescription(lines []string) string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n")
}

func filenameWithoutExt(filename string) string {
	name := filename
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[:idx]
	}
	return name
}
