package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForLanguage(t *testing.T) {
	spec, err := ForLanguage("python")
	require.NoError(t, err)

	assert.Equal(t, "python", spec.Language)
	assert.Contains(t, spec.SourceCode, "fibonacci")
	assert.Equal(t, 10000, spec.TimeoutMS)
	require.Len(t, spec.TestCases, 1)
	assert.Equal(t, "Fibonacci(10) = 55\n", spec.TestCases[0].ExpectedOutput)
}

func TestForLanguageUnknown(t *testing.T) {
	_, err := ForLanguage("cobol")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownLanguage)
	assert.Contains(t, err.Error(), "cobol")
}

func TestForLanguageCopiesTestCases(t *testing.T) {
	spec, err := ForLanguage("java")
	require.NoError(t, err)

	spec.TestCases[0].ExpectedOutput = "mutated"

	again, err := ForLanguage("java")
	require.NoError(t, err)
	assert.Equal(t, "Factorial(5) = 120\n", again.TestCases[0].ExpectedOutput)
}

func TestLanguagesSorted(t *testing.T) {
	assert.Equal(t, []string{"java", "python", "rust"}, Languages())
}

func TestJobSpecWireFormat(t *testing.T) {
	spec, err := ForLanguage("rust")
	require.NoError(t, err)

	body, err := json.Marshal(spec)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Contains(t, decoded, "language")
	assert.Contains(t, decoded, "source_code")
	assert.Contains(t, decoded, "test_cases")
	assert.Contains(t, decoded, "timeout_ms")

	cases := decoded["test_cases"].([]any)
	first := cases[0].(map[string]any)
	assert.Contains(t, first, "input")
	assert.Contains(t, first, "expected_output")
}
