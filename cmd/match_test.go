package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMatch(t *testing.T, text string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunMatch(&buf, text))
	return buf.String()
}

func TestMatch_PrintsDefinitionAndArguments(t *testing.T) {
	setupProject(t)

	out := runMatch(t, "Given I have the number 5")

	assert.Contains(t, out, "some_func")
	assert.Contains(t, out, `$1 = "5"`)
}

func TestMatch_KeywordArguments(t *testing.T) {
	setupProject(t)

	out := runMatch(t, "Then the result is 7")

	assert.Contains(t, out, "check_result")
	assert.Contains(t, out, `result = "7"`)
}

func TestMatch_NoMatchIsNotAnError(t *testing.T) {
	setupProject(t)

	out := runMatch(t, "when I call a non-existing step")

	assert.Contains(t, out, "no match")
}

func TestMatch_MissingStepsFile(t *testing.T) {
	inTempDir(t)

	err := RunMatch(&bytes.Buffer{}, "Given anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading steps file")
}
