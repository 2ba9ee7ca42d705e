package adjective

import (
	"strings"
)

var (
	toUmlaut      = strings.NewReplacer("ae", "ä", "oe", "ö", "ue", "ü")
	reverseUmlaut = strings.NewReplacer("äu", "au", "ä", "a", "ö", "o", "ü", "u")
)

// variants returns candidate base spellings for a stripped stem, in the
// order they are tried: the stem itself, orthographic variants (ß/ss,
// ae/ä, reverse umlaut), tail variants (undoubled consonant, appended e,
// e before a final l or r), then tail variants of each orthographic one.
func variants(stem string) []string {
	out := make([]string, 0, 12)
	seen := make(map[string]bool, 12)
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	add(stem)
	ortho := orthographic(stem)
	for _, o := range ortho {
		add(o)
	}
	for _, t := range tails(stem) {
		add(t)
	}
	for _, o := range ortho {
		for _, t := range tails(o) {
			add(t)
		}
	}
	return out
}

func orthographic(s string) []string {
	var out []string
	if strings.Contains(s, "ß") {
		out = append(out, strings.ReplaceAll(s, "ß", "ss"))
	}
	if strings.Contains(s, "ss") {
		out = append(out, strings.ReplaceAll(s, "ss", "ß"))
	}
	if u := toUmlaut.Replace(s); u != s {
		out = append(out, u)
	}
	if r := reverseUmlaut.Replace(s); r != s {
		out = append(out, r)
		// größ → groß and gröss → gross both need trying
		if strings.Contains(r, "ss") {
			out = append(out, strings.ReplaceAll(r, "ss", "ß"))
		}
	}
	return out
}

func tails(s string) []string {
	var out []string
	runes := []rune(s)
	n := len(runes)
	if n >= 2 && runes[n-1] == runes[n-2] && !isVowel(runes[n-1]) {
		out = append(out, string(runes[:n-1]))
	}
	out = append(out, s+"e")
	if n >= 2 && (runes[n-1] == 'l' || runes[n-1] == 'r') && runes[n-2] != 'e' {
		out = append(out, string(runes[:n-1])+"e"+string(runes[n-1]))
	}
	return out
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y', 'ä', 'ö', 'ü':
		return true
	}
	return false
}
