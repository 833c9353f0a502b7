package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords_RelevantNounsOnly(t *testing.T) {
	result := ExtractKeywords("Can you make a podcast about the difference between alligators and crocodiles?")

	assert.Contains(t, result, "alligators")
	assert.Contains(t, result, "crocodiles")
	assert.NotContains(t, result, "difference")
	assert.NotContains(t, result, "podcast")
}

func TestExtractKeywords_EmptyInput(t *testing.T) {
	assert.Empty(t, ExtractKeywords(""))
	assert.Empty(t, ExtractKeywords("   \n\t "))
}

func TestExtractKeywords_OnlyGenericTerms(t *testing.T) {
	// Every noun in the prompt is denylisted, so there is no signal.
	result := ExtractKeywords("Can you make me a podcast?")
	assert.Empty(t, result)
}

func TestExtractKeywords_Deterministic(t *testing.T) {
	prompt := "difference between alligators and crocodiles"

	first := ExtractKeywords(prompt)
	second := ExtractKeywords(prompt)

	require.Equal(t, first, second)
}

func TestExtractKeywords_Lowercased(t *testing.T) {
	result := ExtractKeywords("Tell me about Alligators in Florida")

	for _, kw := range result {
		assert.Equal(t, strings.ToLower(kw), kw)
	}
	assert.Contains(t, result, "alligators")
}

func TestNormalizeKeywords(t *testing.T) {
	in := []string{"React", "virtual DOM", "react", "  ", "Rendering"}
	out := NormalizeKeywords(in)

	assert.Equal(t, []string{"react", "virtual dom", "rendering"}, out)
}
