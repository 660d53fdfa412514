package bench

import (
	"fmt"
	"strconv"
	"strings"
)

// Mix is an ordered list of language weights describing how requests are
// distributed across languages, e.g. python=50,java=40,rust=10.
type Mix []MixEntry

type MixEntry struct {
	Language string
	Weight   int
}

// SingleLanguage is the mix used by plain benchmark runs.
func SingleLanguage(language string) Mix {
	return Mix{{Language: language, Weight: 100}}
}

// ParseMix parses a comma-separated list of language=weight pairs. Entry
// order is preserved so the remainder rule in Expand stays deterministic.
func ParseMix(s string) (Mix, error) {
	parts := strings.Split(s, ",")
	mix := make(Mix, 0, len(parts))
	seen := make(map[string]bool)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lang, weight, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid mix entry %q, want language=weight", part)
		}
		lang = strings.TrimSpace(lang)
		w, err := strconv.Atoi(strings.TrimSpace(weight))
		if err != nil || w <= 0 {
			return nil, fmt.Errorf("invalid weight in mix entry %q", part)
		}
		if seen[lang] {
			return nil, fmt.Errorf("duplicate language %q in mix", lang)
		}
		seen[lang] = true
		mix = append(mix, MixEntry{Language: lang, Weight: w})
	}
	if len(mix) == 0 {
		return nil, fmt.Errorf("empty mix")
	}
	return mix, nil
}

// Expand assigns a language to each of total requests. Every entry gets the
// floor of its proportional share and the last entry absorbs the remainder,
// so the assignments always sum to total. Requests for the same language are
// grouped contiguously in mix order.
func (m Mix) Expand(total int) []string {
	weightSum := 0
	for _, e := range m {
		weightSum += e.Weight
	}

	langs := make([]string, 0, total)
	for i, e := range m {
		count := total * e.Weight / weightSum
		if i == len(m)-1 {
			count = total - len(langs)
		}
		for j := 0; j < count; j++ {
			langs = append(langs, e.Language)
		}
	}
	return langs
}

// Languages returns the distinct language tags in mix order.
func (m Mix) Languages() []string {
	langs := make([]string, 0, len(m))
	for _, e := range m {
		langs = append(langs, e.Language)
	}
	return langs
}

func (m Mix) String() string {
	parts := make([]string, 0, len(m))
	for _, e := range m {
		parts = append(parts, fmt.Sprintf("%s=%d", e.Language, e.Weight))
	}
	return strings.Join(parts, ",")
}
