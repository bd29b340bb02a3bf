package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "My Project", "my-project"},
		{"accented characters", "Análise de Dados", "analise-de-dados"},
		{"mixed diacritics", "Ünïcödé Tëst", "unicode-test"},
		{"punctuation stripped", "Project #1: Data Engineering", "project-1-data-engineering"},
		{"version suffix", "Data Pipeline v2.0!", "data-pipeline-v20"},
		{"underscores become hyphens", "snake_case_title", "snake-case-title"},
		{"multiple spaces collapse", "too   many    spaces", "too-many-spaces"},
		{"existing hyphens collapse", "already--hyphen---ated", "already-hyphen-ated"},
		{"leading and trailing separators", "  --Hello World--  ", "hello-world"},
		{"uppercase folded", "SHOUTING TITLE", "shouting-title"},
		{"digits preserved", "Top 10 APIs of 2024", "top-10-apis-of-2024"},
		{"already a slug", "my-project", "my-project"},
		{"only punctuation", "!!! ??? ...", ""},
		{"only emoji", "🚀🔥", ""},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.input))
		})
	}
}

// Every non-empty result must be lowercase alphanumerics separated by single
// hyphens, with no leading or trailing hyphen.
func TestGenerateShape(t *testing.T) {
	wellFormed := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	inputs := []string{
		"My Project",
		"Análise de Dados",
		"  weird   input --- here!!  ",
		"çãõ é à ü",
		"MiXeD CaSe 42",
		"a_b_c-d e.f",
	}
	for _, input := range inputs {
		got := Generate(input)
		if got == "" {
			continue
		}
		assert.Regexp(t, wellFormed, got, "input %q", input)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	assert.Equal(t, Generate("Análise de Dados"), Generate("Análise de Dados"))
}
