package adjective

import (
	"strings"
	"unicode/utf8"

	"github.com/cognicore/wortart/pkg/wortart/lexicon"
)

const (
	confIrregular   = 0.95
	confComparative = 0.9
	confSuperlative = 0.88
	confExact       = 1.0
	declinedPenalty = 0.05
	confVariant     = 0.75
	confCompFloor   = 0.92
	confCompound    = 0.85
	confIdiom       = 0.9
	confUnresolved  = 0.15
	gradePenalty    = 0.15
	confFloor       = 0.1
	minCoreRunes    = 2
)

// Endings are the declension endings in the order they are stripped.
var Endings = []string{"en", "er", "es", "em", "e"}

var superlativeSuffixes = []struct {
	suffix string
	cut    int // bytes removed
}{
	{"est", len("est")},
	{"ßt", len("t")}, // größt → größ
	{"st", len("st")},
}

// splitEnding strips the first declension ending that leaves at least
// minCoreRunes runes.
func splitEnding(w string) (core, ending string) {
	for _, end := range Endings {
		if c, ok := strings.CutSuffix(w, end); ok && utf8.RuneCountInString(c) >= minCoreRunes {
			return c, end
		}
	}
	return w, ""
}

// Analyze resolves the base lemma and degree of word with all stages on.
func (a *Analyzer) Analyze(word string) Analysis {
	return a.AnalyzeWith(word, DefaultOptions)
}

// AnalyzeWith is Analyze with explicit options.
func (a *Analyzer) AnalyzeWith(word string, opt Options) Analysis {
	norm := lexicon.Normalize(word)
	if norm == "" {
		return unresolved(Analysis{Input: word})
	}
	if strings.ContainsAny(norm, " \t") {
		if r, ok := a.idiom(word, norm); ok {
			return a.applyGradability(r)
		}
		return unresolved(Analysis{Input: word, Form: Form{Core: norm}})
	}
	if opt.ColorCompounds {
		if r, ok := a.AnalyzeCompound(word); ok {
			return r
		}
	}

	core, ending := splitEnding(norm)
	r, ok := a.resolve(core, ending != "")
	r.Form = Form{Core: core, Ending: ending}

	if ending == "er" {
		// schneller: comparative, not declined base
		if c, cok := a.resolve(norm, false); cok && c.Degree == Comp && (!ok || r.Degree != Comp) {
			c.Confidence = max(c.Confidence, confCompFloor)
			c.Form = Form{Core: norm}
			r, ok = c, true
		}
	}
	if !ok {
		r, ok = a.resolve(norm, false)
		r.Form = Form{Core: norm}
	}
	r.Input = word
	if !ok {
		return unresolved(r)
	}
	return a.applyGradability(r)
}

func unresolved(r Analysis) Analysis {
	r.Degree = DegreeNone
	r.Base = ""
	r.Confidence = confUnresolved
	r.Method = ""
	return r
}

func (a *Analyzer) applyGradability(r Analysis) Analysis {
	if a.Gradable(r.Base) {
		return r
	}
	r.Degree = DegreeNone
	r.Confidence = max(r.Confidence-gradePenalty, confFloor)
	r.Notes = append(r.Notes, "not gradable")
	return r
}

// exact maps a word or inflection stem to its base lemma.
func (a *Analyzer) exact(w string) (string, bool) {
	if _, ok := a.lemmas[w]; ok {
		return w, true
	}
	base, ok := a.stems[w]
	return base, ok
}

// viaVariants returns the first variant of stem that is a known base.
func (a *Analyzer) viaVariants(stem string) (string, bool) {
	for _, v := range variants(stem) {
		if base, ok := a.exact(v); ok {
			return base, true
		}
	}
	return "", false
}

// resolve runs the degree pipeline on a core: suppletive forms, -er
// comparative, superlative, exact base, base via spelling variants.
func (a *Analyzer) resolve(core string, declined bool) (Analysis, bool) {
	if f, ok := a.irregular[core]; ok {
		return Analysis{Degree: f.degree, Base: f.base, Confidence: confIrregular, Method: "irregular"}, true
	}
	if stem, ok := strings.CutSuffix(core, "er"); ok && utf8.RuneCountInString(stem) >= minCoreRunes {
		if base, ok := a.viaVariants(stem); ok {
			return Analysis{Degree: Comp, Base: base, Confidence: confComparative, Method: "comparative"}, true
		}
	}
	for _, s := range superlativeSuffixes {
		if !strings.HasSuffix(core, s.suffix) {
			continue
		}
		stem := core[:len(core)-s.cut]
		if utf8.RuneCountInString(stem) < minCoreRunes {
			continue
		}
		if base, ok := a.viaVariants(stem); ok {
			return Analysis{Degree: Sup, Base: base, Confidence: confSuperlative, Method: "superlative"}, true
		}
	}
	if base, ok := a.exact(core); ok {
		conf := confExact
		if declined {
			conf -= declinedPenalty
		}
		return Analysis{Degree: Base, Base: base, Confidence: conf, Method: "lemma"}, true
	}
	for _, v := range variants(core)[1:] {
		if base, ok := a.exact(v); ok {
			return Analysis{Degree: Base, Base: base, Confidence: confVariant, Method: "variant"}, true
		}
	}
	return Analysis{}, false
}

// AnalyzeCompound recognizes color compounds: a color prefix before a
// color or material (hellblau), or a color or material before a color
// suffix (orangefarben). The whole compound is the base.
func (a *Analyzer) AnalyzeCompound(word string) (Analysis, bool) {
	norm := lexicon.Normalize(word)
	core, ending := splitEnding(norm)
	candidates := []Form{{Core: core, Ending: ending}}
	if ending != "" {
		candidates = append(candidates, Form{Core: norm})
	}
	for _, f := range candidates {
		method, ok := a.colorCompound(f.Core)
		if !ok {
			continue
		}
		r := Analysis{
			Input:      word,
			Form:       f,
			Degree:     Base,
			Base:       f.Core,
			Confidence: confCompound,
			Method:     method,
		}
		return a.applyGradability(r), true
	}
	return Analysis{}, false
}

func (a *Analyzer) colorCompound(w string) (string, bool) {
	for _, p := range a.prefixes {
		if rest, ok := strings.CutPrefix(w, p); ok && a.colors[strings.TrimPrefix(rest, "-")] {
			return "color_prefix", true
		}
	}
	for _, s := range a.suffixes {
		if head, ok := strings.CutSuffix(w, s); ok && a.colors[strings.TrimSuffix(head, "-")] {
			return "color_suffix", true
		}
	}
	return "", false
}

// idiom matches multi-word adjectives such as "peinlich berührt".
func (a *Analyzer) idiom(word, norm string) (Analysis, bool) {
	words := strings.Fields(norm)
	last := words[len(words)-1]
	core, ending := splitEnding(last)
	for _, f := range []Form{{Core: core, Ending: ending}, {Core: last}} {
		key := strings.Join(append(append([]string(nil), words[:len(words)-1]...), f.Core), "_")
		if !a.idioms[key] {
			continue
		}
		phrase := strings.ReplaceAll(key, "_", " ")
		return Analysis{
			Input:       word,
			Form:        Form{Core: phrase, Ending: f.Ending},
			Degree:      Base,
			Base:        phrase,
			Confidence:  confIdiom,
			Method:      "idiom",
			IsMultiWord: true,
		}, true
	}
	return Analysis{}, false
}
