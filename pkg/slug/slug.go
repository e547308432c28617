// Package slug builds URL keys from Turkish product, post and thread titles.
//
// Every slug comparison in the service goes through [Make], so a slug typed
// by an admin, read from a spreadsheet or taken from a URL resolves to the
// same record.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make returns the slug form of s.
//
// Letters are lower-cased with Turkish rules (İ→i, I→ı), dotless ı becomes i
// and combining marks are dropped (ğ→g, ş→s, ç→c, ö→o, ü→u). Every run of
// characters outside [a-z0-9] becomes a single dash; dashes never lead or
// trail. Make is idempotent.
func Make(s string) string {
	folded := Fold(s)

	var b strings.Builder
	b.Grow(len(folded))

	pendingDash := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// Equal reports whether a and b resolve to the same slug.
func Equal(a, b string) bool {
	return Make(a) == Make(b)
}

// Fold lower-cases s with Turkish rules and strips diacritics,
// keeping every other character as is.
func Fold(s string) string {
	s = Lower(s)
	s = strings.ReplaceAll(s, "ı", "i")

	// transformers keep state, so a chain is built per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// Lower lower-cases s with Turkish casing rules.
func Lower(s string) string {
	return cases.Lower(language.Turkish).String(s)
}
