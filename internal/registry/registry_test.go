package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSteps(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "steps.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRegister_PreservesInsertionOrder(t *testing.T) {
	r := New().
		MustRegister(`I add (\d+) to my number`, "add").
		MustRegister(`Given I have the number (\d+)`, "have")

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, DefinitionID("add"), entries[0].Definition)
	assert.Equal(t, DefinitionID("have"), entries[1].Definition)
	assert.Equal(t, `I add (\d+) to my number`, entries[0].Pattern.String())
}

func TestRegister_InvalidPattern(t *testing.T) {
	err := New().Register(`Given (\d+`, "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling step pattern")
}

func TestMustRegister_Panics(t *testing.T) {
	assert.Panics(t, func() { New().MustRegister(`(`, "broken") })
}

func TestLen_NilRegistry(t *testing.T) {
	var r *Registry
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Entries())
}

func TestLoad_KeepsFileOrder(t *testing.T) {
	path := writeSteps(t, `steps:
  - pattern: 'Given I have the number (\d+)'
    definition: some_func
  - pattern: 'I add (\d+) to my number'
    definition: some_other_func
`)

	r, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())
	assert.Equal(t, DefinitionID("some_func"), r.Entries()[0].Definition)
	assert.Equal(t, DefinitionID("some_other_func"), r.Entries()[1].Definition)
}

func TestLoad_EmptyFile(t *testing.T) {
	r, err := Load(writeSteps(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestLoad_MissingPattern(t *testing.T) {
	_, err := Load(writeSteps(t, `steps:
  - definition: some_func
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1 has no pattern")
}

func TestLoad_MissingDefinition(t *testing.T) {
	_, err := Load(writeSteps(t, `steps:
  - pattern: 'a step'
  - pattern: 'another step'
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1 has no definition")
}

func TestLoad_BadPattern(t *testing.T) {
	_, err := Load(writeSteps(t, `steps:
  - pattern: 'ok'
    definition: a
  - pattern: '(unclosed'
    definition: b
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2")
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeSteps(t, "{{invalid yaml}}"))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading steps file")
}
