// Package suffix holds the surface-pattern detectors used by the
// classifier: noun suffixes, adverb suffixes, productive adjective
// suffixes, number literals and finite verb endings.
//
// All functions expect a folded (lowercase, NFC) word unless noted.
package suffix

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Match describes a suffix hit.
type Match struct {
	Suffix     string  `json:"suffix"`
	Subtype    string  `json:"subtype"`
	Confidence float64 `json:"confidence"`
}

type rule struct {
	suffix     string
	subtype    string
	confidence float64
	minStem    int  // runes that must precede the suffix
	capital    bool // only counts for capitalized tokens
}

// nounRules are checked in order, first hit wins.
var nounRules = []rule{
	{"schaft", "abstract", 0.9, 3, false},
	{"ung", "abstract", 0.9, 3, false},
	{"heit", "abstract", 0.9, 2, false},
	{"keit", "abstract", 0.9, 2, false},
	{"ität", "loanword", 0.9, 2, false},
	{"tion", "loanword", 0.85, 2, false},
	{"ismus", "loanword", 0.85, 2, false},
	{"erei", "activity", 0.8, 2, false},
	{"tum", "collective", 0.75, 3, false},
	{"nis", "abstract", 0.7, 3, false},
	{"chen", "diminutive", 0.8, 3, true},
	{"lein", "diminutive", 0.75, 3, true},
	{"ling", "person", 0.7, 3, true},
	{"ment", "loanword", 0.6, 3, true},
	{"ist", "person", 0.6, 4, true},
}

// NounSuffix detects a typical noun suffix. Weak suffixes only count when
// capitalized is true.
func NounSuffix(word string, capitalized bool) (Match, bool) {
	for _, r := range nounRules {
		if r.capital && !capitalized {
			continue
		}
		if hasSuffixStem(word, r.suffix, r.minStem) {
			return Match{Suffix: r.suffix, Subtype: r.subtype, Confidence: r.confidence}, true
		}
	}
	return Match{}, false
}

var adverbRules = []rule{
	{"weise", "manner", 0.9, 3, false},
	{"wärts", "direction", 0.9, 2, false},
	{"mals", "frequency", 0.85, 2, false},
	{"lich", "manner", 0.6, 3, false},
}

var directionalRe = regexp.MustCompile(`^(?:(?:hin|her)(?:ab|an|auf|aus|bei|durch|ein|über|um|unter|vor|weg|zu)|(?:dort|wo|hier|da|nach)(?:hin|her))$`)

// AdverbDetector recognizes adverbs by suffix, an irregular adverb list
// and directional hin/her compounds.
type AdverbDetector struct {
	irregular map[string]struct{}
}

// NewAdverbDetector creates a detector with the given irregular adverbs.
func NewAdverbDetector(irregular []string) *AdverbDetector {
	set := make(map[string]struct{}, len(irregular))
	for _, w := range irregular {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &AdverbDetector{irregular: set}
}

// Detect returns the adverb match for word.
func (d *AdverbDetector) Detect(word string) (Match, bool) {
	if _, ok := d.irregular[word]; ok {
		return Match{Subtype: "irregular", Confidence: 0.9}, true
	}
	if directionalRe.MatchString(word) {
		return Match{Suffix: "hin/her", Subtype: "direction", Confidence: 0.85}, true
	}
	for _, r := range adverbRules {
		if hasSuffixStem(word, r.suffix, r.minStem) {
			return Match{Suffix: r.suffix, Subtype: r.subtype, Confidence: r.confidence}, true
		}
	}
	return Match{}, false
}

var adjectiveRules = []rule{
	{"isch", "productive", 0.8, 2, false},
	{"lich", "productive", 0.75, 2, false},
	{"haft", "productive", 0.8, 2, false},
	{"sam", "productive", 0.75, 2, false},
	{"bar", "productive", 0.75, 3, false},
	{"los", "productive", 0.8, 3, false},
	{"voll", "productive", 0.8, 3, false},
	{"ig", "productive", 0.65, 3, false},
	{"end", "participle-present", 0.6, 3, false},
}

var declension = []string{"en", "er", "es", "em", "e"}

var participleShape = regexp.MustCompile(`^ge\p{L}{2,}(?:t|en)$`)

// AdjectivePattern detects productive adjective suffixes and declined
// participles, allowing one declension ending after the suffix.
func AdjectivePattern(word string) (Match, bool) {
	if m, ok := adjectiveSuffix(word); ok {
		return m, true
	}
	for _, end := range declension {
		core, ok := cutSuffix(word, end, 2)
		if !ok {
			continue
		}
		if m, ok := adjectiveSuffix(core); ok {
			m.Confidence -= 0.05
			return m, true
		}
		if participleShape.MatchString(core) {
			return Match{Suffix: end, Subtype: "declined-participle", Confidence: 0.6}, true
		}
	}
	return Match{}, false
}

func adjectiveSuffix(word string) (Match, bool) {
	for _, r := range adjectiveRules {
		if hasSuffixStem(word, r.suffix, r.minStem) {
			return Match{Suffix: r.suffix, Subtype: r.subtype, Confidence: r.confidence}, true
		}
	}
	return Match{}, false
}

// ParticipleShape reports whether word looks like a ge-…-t / ge-…-en participle.
func ParticipleShape(word string) bool {
	return participleShape.MatchString(word)
}

var finiteVerbRe = regexp.MustCompile(`^\p{Ll}{2,}(?:e|st|t|en|te|test|ten|tet)$`)

// FiniteVerb reports whether word carries a finite verb ending. The check
// is case sensitive: capitalized tokens never match.
func FiniteVerb(word string) bool {
	return finiteVerbRe.MatchString(word)
}

var (
	numericRe = regexp.MustCompile(`^-?\d+(?:[.,:/]\d+)*(?:-?(?:er|ern|en|te|ter|tes|tem|ten|s))?$`)
	romanRe   = regexp.MustCompile(`^M{0,3}(?:CM|CD|D?C{0,3})(?:XC|XL|L?X{0,3})(?:IX|IV|V?I{0,3})$`)
)

// IsNumeric reports whether a cleaned token is a number literal
// (12, 3,5, 1.000, 1990er).
func IsNumeric(token string) bool {
	return numericRe.MatchString(token)
}

// IsRomanNumeral reports whether a cleaned, upper case token is a Roman
// numeral. Lowercase tokens never match so words like "mix" stay words.
func IsRomanNumeral(token string) bool {
	return token != "" && romanRe.MatchString(token)
}

func hasSuffixStem(word, suf string, minStem int) bool {
	_, ok := cutSuffix(word, suf, minStem)
	return ok
}

// cutSuffix removes suf when at least minStem runes remain.
func cutSuffix(word, suf string, minStem int) (string, bool) {
	if !strings.HasSuffix(word, suf) {
		return "", false
	}
	stem := word[:len(word)-len(suf)]
	if utf8.RuneCountInString(stem) < minStem {
		return "", false
	}
	return stem, true
}
