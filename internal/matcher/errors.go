package matcher

import "fmt"

// StepDefinitionNotFoundError reports the first step in a merge that no
// registered pattern matches.
type StepDefinitionNotFoundError struct {
	Text string
	Path string
	Line int
}

func (e *StepDefinitionNotFoundError) Error() string {
	return fmt.Sprintf("Cannot find step definition for step '%s' in %s:%d", e.Text, e.Path, e.Line)
}
