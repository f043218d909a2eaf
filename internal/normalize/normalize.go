package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Text canonicalizes a newspaper name or a scraped label for equality
// comparison: lowercase, diacritics stripped, anything that is not a
// Latin letter, Greek letter, digit or whitespace removed, whitespace
// collapsed. Two strings denote the same newspaper iff their Text
// results are byte-equal.
//
// Text never fails; when the unicode transform errors on malformed
// input it returns "" and the caller decides how loudly to complain.
func Text(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	// ToLower maps Σ to σ but keeps a written final sigma as ς, so
	// ΤΑΧΥΔΡΟΜΟΣ and Ταχυδρόμος would otherwise disagree in their
	// last letter.
	s = strings.ReplaceAll(s, "ς", "σ")

	// NFD splits base letters from combining marks, so ή compares
	// equal to η and é to e once the marks are dropped.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(stripMarks, s)
	if err != nil {
		return ""
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r >= 'a' && r <= 'z',
			unicode.Is(unicode.Greek, r),
			unicode.IsDigit(r),
			unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
