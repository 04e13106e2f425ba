package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const numberSteps = `steps:
  - pattern: 'Given I have the number (\d+)'
    definition: some_func
  - pattern: 'I add (\d+) to my number'
    definition: some_other_func
  - pattern: 'the result is (?P<result>\d+)'
    definition: check_result
`

const addingFeature = `Feature: Some feature
  Scenario: Adding numbers
    Given I have the number 5
    When I add 2 to my number
    Then the result is 7
`

func writeSteps(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile("features/steps.yaml", []byte(content), 0o644))
}

func writeFeature(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join("features", name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func setupProject(t *testing.T) {
	t.Helper()
	inTempDir(t)
	runInit(t)
	writeSteps(t, numberSteps)
}

func runBind(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunBind(&buf))
	return buf.String()
}
