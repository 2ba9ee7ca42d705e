package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// CleanToken strips leading and trailing punctuation from a raw token.
// Letters, digits and hyphens are kept, inner characters are untouched.
func CleanToken(raw string) string {
	return strings.TrimFunc(raw, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-')
	})
}

// Fold returns the lookup key for s: NFC composed and lowercased with
// German casing rules (ẞ → ß).
func Fold(s string) string {
	// cases.Caser keeps state, so one per call.
	return cases.Lower(language.German).String(norm.NFC.String(s))
}

// Normalize cleans and folds a raw token in one step.
func Normalize(raw string) string {
	return Fold(CleanToken(raw))
}

// IsCapitalized reports whether the first rune of s is upper case.
func IsCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}
