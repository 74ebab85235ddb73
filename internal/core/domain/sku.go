package domain

import (
	"strings"
	"unicode"
)

// Initials returns up to four upper-cased initials of the words in text,
// splitting on whitespace and hyphens. Blank text yields "UNK".
func Initials(text string) string {
	words := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	if len(words) == 0 {
		return "UNK"
	}

	var b strings.Builder
	for _, w := range words {
		r := []rune(w)[0]
		b.WriteString(strings.ToUpper(string(r)))
	}

	out := []rune(b.String())
	if len(out) > 4 {
		out = out[:4]
	}
	return string(out)
}

// BuildSKU joins the product initials with the variant attributes, skipping
// empty ones: "CCTS-M-BLACK", "ECTB-BLACK".
func BuildSKU(productName string, attrs ...string) string {
	parts := []string{Initials(productName)}
	for _, a := range attrs {
		if a = strings.TrimSpace(a); a != "" {
			parts = append(parts, strings.ToUpper(a))
		}
	}
	return strings.Join(parts, "-")
}
