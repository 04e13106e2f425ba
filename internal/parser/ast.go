package parser

// Layer 1: syntax tree of a single feature file

type Document struct {
	Feature *Feature
}

type Feature struct {
	Header     FeatureHeader
	Background *Background
	Scenarios  []ScenarioDefinition
}

type FeatureHeader struct {
	Tags        []Tag
	Keyword     string
	Name        string
	Description string
	Line        int // 1-based line of Feature:, 0 when the file has none
}

type Background struct {
	Line  int
	Steps []Step
}

type ScenarioDefinition struct {
	Tags     []Tag
	Scenario Scenario
	Line     int // 1-based line number of Scenario: line
}

type Scenario struct {
	Keyword     string
	Name        string
	Description string
	Steps       []Step
}

type Tag struct {
	Name string // e.g. "@smoke"
}

type Step struct {
	Keyword  string // Given, When, Then, And, But, *
	Text     string // text after the keyword
	Source   string // the trimmed source line
	Line     int
	Argument *StepArgument
}

type StepArgument struct {
	DocString *DocString
	DataTable *DataTable
}

type DocString struct {
	MediaType string
	Content   string
}

type DataTable struct {
	Rows [][]string
}

type ParseError struct {
	Line    int
	Message string
}
