package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMix(t *testing.T) {
	mix, err := ParseMix("python=50,java=40,rust=10")
	require.NoError(t, err)
	require.Len(t, mix, 3)
	assert.Equal(t, MixEntry{Language: "python", Weight: 50}, mix[0])
	assert.Equal(t, MixEntry{Language: "java", Weight: 40}, mix[1])
	assert.Equal(t, MixEntry{Language: "rust", Weight: 10}, mix[2])
	assert.Equal(t, "python=50,java=40,rust=10", mix.String())
}

func TestParseMixRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{
		"",
		"python",
		"python=abc",
		"python=0",
		"python=-5",
		"python=50,python=50",
	} {
		_, err := ParseMix(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestMixExpandDistribution(t *testing.T) {
	mix := Mix{
		{Language: "python", Weight: 50},
		{Language: "java", Weight: 40},
		{Language: "rust", Weight: 10},
	}

	langs := mix.Expand(500)
	require.Len(t, langs, 500)

	counts := make(map[string]int)
	for _, lang := range langs {
		counts[lang]++
	}
	assert.Equal(t, 250, counts["python"])
	assert.Equal(t, 200, counts["java"])
	assert.Equal(t, 50, counts["rust"])
}

func TestMixExpandRemainderGoesToLastEntry(t *testing.T) {
	mix := Mix{
		{Language: "python", Weight: 1},
		{Language: "java", Weight: 1},
		{Language: "rust", Weight: 1},
	}

	langs := mix.Expand(10)
	require.Len(t, langs, 10)

	counts := make(map[string]int)
	for _, lang := range langs {
		counts[lang]++
	}
	assert.Equal(t, 3, counts["python"])
	assert.Equal(t, 3, counts["java"])
	assert.Equal(t, 4, counts["rust"])
}

func TestMixExpandSingleLanguage(t *testing.T) {
	langs := SingleLanguage("java").Expand(7)
	require.Len(t, langs, 7)
	for _, lang := range langs {
		assert.Equal(t, "java", lang)
	}
}
