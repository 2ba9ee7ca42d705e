package verb

import (
	"strings"
	"unicode/utf8"
)

// safeClusters are consonant+m/n endings that take no epenthetic e
// (kommt, rennt, wohnt, lernt).
var safeClusters = map[string]bool{
	"mm": true, "nn": true, "hn": true, "gn": true,
	"lm": true, "ln": true, "rm": true, "rn": true,
}

// splitInfinitive separates the stem from the -en/-n ending.
func splitInfinitive(lemma string) (stem, ending string) {
	switch {
	case strings.HasSuffix(lemma, "en") && utf8.RuneCountInString(lemma) > 3:
		return lemma[:len(lemma)-2], "en"
	case strings.HasSuffix(lemma, "n") && utf8.RuneCountInString(lemma) > 2:
		return lemma[:len(lemma)-1], "n"
	}
	return lemma, ""
}

func isSibilant(stem string) bool {
	r, _ := utf8.DecodeLastRuneInString(stem)
	switch r {
	case 's', 'ß', 'x', 'z':
		return true
	}
	return false
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y', 'ä', 'ö', 'ü':
		return true
	}
	return false
}

// needsEpentheticE reports whether endings starting with s or t need an
// inserted e (arbeit-e-t, atm-e-t, öffn-e-t).
func needsEpentheticE(stem string) bool {
	if stem == "" || isSibilant(stem) {
		return false
	}
	runes := []rune(stem)
	last := runes[len(runes)-1]
	if last == 't' || last == 'd' {
		return true
	}
	if strings.HasSuffix(stem, "tm") || strings.HasSuffix(stem, "chn") {
		return true
	}
	if (last == 'm' || last == 'n') && len(runes) >= 2 {
		prev := runes[len(runes)-2]
		if !isVowel(prev) && !safeClusters[string(runes[len(runes)-2:])] {
			return true
		}
	}
	return false
}

// buildRegular conjugates a weak verb. noGe suppresses the ge- of the
// participle (inseparable prefix). The auxiliary is left to the caller.
func buildRegular(lemma string, noGe bool) Paradigm {
	stem, ending := splitInfinitive(lemma)
	e := ""
	if needsEpentheticE(stem) {
		e = "e"
	}
	elVerb := ending == "n" && strings.HasSuffix(stem, "el")

	ich := stem + "e"
	if elVerb {
		ich = stem[:len(stem)-2] + "le"
	}
	du := stem + e + "st"
	if isSibilant(stem) {
		du = stem + "t"
	}
	er := stem + e + "t"

	praesens := Table{Ich: ich, Du: du, Er: er, Wir: lemma, Ihr: er, Sie: lemma}

	past := stem + e + "te"
	praeteritum := Table{
		Ich: past,
		Du:  past + "st",
		Er:  past,
		Wir: past + "n",
		Ihr: past + "t",
		Sie: past + "n",
	}

	impDu := stem + e
	if ending == "n" {
		impDu = ich
	}

	ge := "ge"
	if noGe || strings.HasSuffix(lemma, "ieren") {
		ge = ""
	}

	return Paradigm{
		Lemma:       lemma,
		Aux:         AuxHaben,
		Praesens:    praesens,
		Praeteritum: praeteritum,
		// weak verbs: Konjunktiv II coincides with the Präteritum
		Konjunktiv2: praeteritum.clone(),
		Partizip2:   ge + stem + e + "t",
		Imperativ:   Table{Du: impDu, Ihr: er, Sie: lemma + " Sie"},
		ZuInfinitiv: "zu " + lemma,
	}
}
