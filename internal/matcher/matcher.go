package matcher

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/chriserin/stepbind/internal/model"
	"github.com/chriserin/stepbind/internal/registry"
)

// Match is the outcome of resolving one step line.
type Match struct {
	Arguments        []string          // unnamed groups, left to right
	KeywordArguments map[string]string // named groups
	Definition       registry.DefinitionID
}

// Matcher resolves step lines against a registry. It holds no state other
// than its logger, so one Matcher may be shared across goroutines as long as
// the registry is not modified concurrently.
type Matcher struct {
	log *logrus.Logger
}

func New(log *logrus.Logger) *Matcher {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Matcher{log: log}
}

// Match returns the first registry entry, in registration order, whose
// pattern is found in text. The second return is false when nothing matches.
// Captured values are returned verbatim.
func (m *Matcher) Match(text string, reg *registry.Registry) (*Match, bool) {
	for _, e := range reg.Entries() {
		loc := e.Pattern.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		return extract(e, text, loc), true
	}
	return nil, false
}

// extract classifies each group by its own name: an unnamed group stays
// positional even when its value equals a named group's value.
func extract(e registry.Entry, text string, loc []int) *Match {
	res := &Match{
		Arguments:        []string{},
		KeywordArguments: map[string]string{},
		Definition:       e.Definition,
	}
	for i, name := range e.Pattern.SubexpNames() {
		if i == 0 {
			continue
		}
		var value string
		if start := loc[2*i]; start >= 0 {
			value = text[start:loc[2*i+1]]
		}
		if name != "" {
			res.KeywordArguments[name] = value
		} else {
			res.Arguments = append(res.Arguments, value)
		}
	}
	return res
}

// MergeSteps binds every step of features to its step definition, walking
// features, scenarios and steps in stored order. It stops at the first step
// without a definition and returns a *StepDefinitionNotFoundError; steps
// before it stay bound. Merging again re-matches and overwrites.
func (m *Matcher) MergeSteps(features []*model.Feature, reg *registry.Registry) error {
	for _, st := range model.Steps(features) {
		res, ok := m.Match(st.Text, reg)
		if !ok {
			return &StepDefinitionNotFoundError{Text: st.Text, Path: st.Path, Line: st.Line}
		}
		st.Definition = res.Definition
		st.Arguments = res.Arguments
		st.KeywordArguments = res.KeywordArguments

		m.log.WithFields(logrus.Fields{
			"location":   st.Location(),
			"definition": res.Definition,
		}).Debugf("bound step %q", st.Text)
	}
	return nil
}
