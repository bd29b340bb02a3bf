package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented characters and drops the combining marks,
// so "Análise" becomes "Analise" before the rest of the slug rules apply.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Generate converts arbitrary text into a URL-safe slug: accents stripped,
// lowercased, runs of whitespace/underscores/hyphens collapsed into a single
// hyphen, every other non-alphanumeric rune dropped, edge hyphens trimmed.
//
// The result contains only [a-z0-9] and single interior hyphens. It is empty
// when the input has no alphanumeric content; callers must treat that as an
// invalid title rather than a usable slug.
//
// Example:
//
//	Generate("My Project")        // "my-project"
//	Generate("Análise de Dados")  // "analise-de-dados"
//	Generate("Data Pipeline v2.0!") // "data-pipeline-v20"
func Generate(text string) string {
	normalized, _, err := transform.String(stripMarks, text)
	if err != nil {
		normalized = text
	}

	var b strings.Builder
	b.Grow(len(normalized))
	pendingHyphen := false
	for _, r := range strings.ToLower(normalized) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || r == '_' || unicode.IsSpace(r):
			pendingHyphen = true
		}
		// every other rune is dropped
	}
	return b.String()
}
