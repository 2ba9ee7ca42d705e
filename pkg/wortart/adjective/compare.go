package adjective

import (
	"strings"

	"github.com/cognicore/wortart/pkg/wortart/lexicon"
)

// stem returns the inflection stem of base: the table stem when set,
// otherwise base with an unstressed e elided (dunkel → dunkl,
// teuer → teur).
func (a *Analyzer) stem(base string) string {
	if l, ok := a.lemmas[base]; ok && l.Stem != "" {
		return l.Stem
	}
	return elide(base)
}

func elide(base string) string {
	switch {
	case strings.HasSuffix(base, "el") && len(base) > 2 && !strings.ContainsRune("aeiou", rune(base[len(base)-3])):
		// viel keeps its e
		return base[:len(base)-2] + "l"
	case strings.HasSuffix(base, "auer"), strings.HasSuffix(base, "euer"):
		return base[:len(base)-2] + "r"
	}
	return base
}

// Decline attaches a declension ending to base. Bases ending in e absorb
// the ending's e (leise + en → leisen).
func (a *Analyzer) Decline(base, ending string) string {
	base = lexicon.Fold(base)
	ending = lexicon.Fold(ending)
	if ending == "" {
		return base
	}
	if strings.HasSuffix(base, "e") && strings.HasPrefix(ending, "e") {
		return base + ending[1:]
	}
	return a.stem(base) + ending
}

// Compare returns the comparative and the superlative stem of base
// (schnell: schneller, schnellst). ok is false for unknown and
// non-gradable bases.
func (a *Analyzer) Compare(base string) (comparative, superlative string, ok bool) {
	base = lexicon.Fold(base)
	l, known := a.lemmas[base]
	if !known || !l.Gradable {
		return "", "", false
	}

	stem := base
	if l.Umlaut {
		stem = umlautLast(stem)
	}

	comparative = l.Comparative
	if comparative == "" {
		switch {
		case strings.HasSuffix(stem, "e"):
			comparative = stem + "r"
		default:
			comparative = elide(stem) + "er"
		}
	}

	superlative = l.Superlative
	if superlative == "" {
		if needsSuperlativeE(stem) {
			superlative = stem + "est"
		} else {
			superlative = stem + "st"
		}
	}
	return comparative, superlative, true
}

// needsSuperlativeE reports whether the superlative takes -est (ältest,
// kürzest, heißest).
func needsSuperlativeE(stem string) bool {
	if strings.HasSuffix(stem, "sch") {
		return true
	}
	r := []rune(stem)
	if len(r) == 0 {
		return false
	}
	switch r[len(r)-1] {
	case 'd', 't', 's', 'ß', 'x', 'z':
		return true
	}
	return false
}

// umlautLast umlauts the last a, o, u or au of s.
func umlautLast(s string) string {
	r := []rune(s)
	for i := len(r) - 1; i >= 0; i-- {
		switch r[i] {
		case 'a':
			r[i] = 'ä'
			return string(r)
		case 'o':
			r[i] = 'ö'
			return string(r)
		case 'u':
			if i > 0 && r[i-1] == 'a' {
				r[i-1] = 'ä'
			} else {
				r[i] = 'ü'
			}
			return string(r)
		}
	}
	return s
}
