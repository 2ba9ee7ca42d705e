// Package adjective analyzes German adjective forms: declension endings,
// comparative and superlative degree, gradability and color compounds.
package adjective

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/wortart/pkg/wortart/lexicon"
)

// Degree is the comparison degree of an adjective form. The zero value
// means no degree applies and encodes as JSON null.
type Degree string

const (
	DegreeNone Degree = ""
	Base       Degree = "base"
	Comp       Degree = "comp"
	Sup        Degree = "sup"
)

// MarshalJSON encodes DegreeNone as null.
func (d Degree) MarshalJSON() ([]byte, error) {
	if d == DegreeNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

// UnmarshalJSON accepts null and the three degree names.
func (d *Degree) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = DegreeNone
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch Degree(s) {
	case Base, Comp, Sup:
		*d = Degree(s)
		return nil
	}
	return fmt.Errorf("unknown degree %q", s)
}

// Lemma is one adjective table entry.
type Lemma struct {
	Base     string
	Gradable bool
	// Comparative and Superlative are suppletive forms (gut: besser, best).
	// The superlative is given as its -st stem.
	Comparative string
	Superlative string
	// Umlaut marks regular comparison with an umlauted vowel (groß: größer).
	Umlaut bool
	// Stem is the inflection stem when it differs from the base (hoch: hoh).
	Stem string
}

// Tables is the static data the analyzer is built from.
type Tables struct {
	Lemmas        []Lemma
	Colors        []string
	Materials     []string
	ColorPrefixes []string
	ColorSuffixes []string
	// Idioms are multi-word adjectives keyed with underscores
	// (peinlich_berührt).
	Idioms []string
}

// Form is the surface split into core and declension ending.
type Form struct {
	Core   string `json:"core"`
	Ending string `json:"ending"`
}

// Analysis is the result of Analyze. An analysis with an empty Base did
// not resolve.
type Analysis struct {
	Input       string   `json:"input"`
	Form        Form     `json:"form"`
	Degree      Degree   `json:"degree"`
	Base        string   `json:"base"`
	Confidence  float64  `json:"confidence"`
	Notes       []string `json:"notes,omitempty"`
	Method      string   `json:"method,omitempty"`
	IsMultiWord bool     `json:"isMultiWord,omitempty"`
}

// Resolved reports whether a base lemma was found.
func (a Analysis) Resolved() bool {
	return a.Base != ""
}

// Options switch optional analysis stages.
type Options struct {
	ColorCompounds bool
}

// DefaultOptions enables every stage.
var DefaultOptions = Options{ColorCompounds: true}

type irregularForm struct {
	base   string
	degree Degree
}

// Analyzer resolves adjective forms against a lemma table. It is
// immutable after New and safe for concurrent use.
type Analyzer struct {
	lemmas    map[string]Lemma
	irregular map[string]irregularForm
	stems     map[string]string
	colors    map[string]bool
	prefixes  []string
	suffixes  []string
	idioms    map[string]bool
	bases     []string
}

// New builds an analyzer. Table words are folded to lowercase NFC.
func New(t Tables) *Analyzer {
	a := &Analyzer{
		lemmas:    make(map[string]Lemma, len(t.Lemmas)),
		irregular: make(map[string]irregularForm),
		stems:     make(map[string]string),
		colors:    make(map[string]bool, len(t.Colors)+len(t.Materials)),
		idioms:    make(map[string]bool, len(t.Idioms)),
	}
	for _, l := range t.Lemmas {
		l.Base = lexicon.Fold(strings.TrimSpace(l.Base))
		if l.Base == "" {
			continue
		}
		l.Comparative = lexicon.Fold(l.Comparative)
		l.Superlative = lexicon.Fold(l.Superlative)
		l.Stem = lexicon.Fold(l.Stem)
		if _, dup := a.lemmas[l.Base]; !dup {
			a.bases = append(a.bases, l.Base)
		}
		a.lemmas[l.Base] = l
		if l.Comparative != "" {
			a.irregular[l.Comparative] = irregularForm{l.Base, Comp}
		}
		if l.Superlative != "" {
			a.irregular[l.Superlative] = irregularForm{l.Base, Sup}
		}
		if l.Stem != "" {
			a.stems[l.Stem] = l.Base
		}
	}
	for _, c := range append(append([]string(nil), t.Colors...), t.Materials...) {
		if c = lexicon.Fold(c); c != "" {
			a.colors[c] = true
		}
	}
	a.prefixes = longestFirst(t.ColorPrefixes)
	a.suffixes = longestFirst(t.ColorSuffixes)
	for _, id := range t.Idioms {
		a.idioms[lexicon.Fold(strings.ReplaceAll(strings.TrimSpace(id), " ", "_"))] = true
	}
	return a
}

func longestFirst(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = lexicon.Fold(strings.TrimSpace(w)); w != "" {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) > utf8.RuneCountInString(out[j])
	})
	return out
}

// Bases returns every base lemma in table order.
func (a *Analyzer) Bases() []string {
	return append([]string(nil), a.bases...)
}

// Known reports whether base is in the lemma table.
func (a *Analyzer) Known(base string) bool {
	_, ok := a.lemmas[lexicon.Fold(base)]
	return ok
}

// Gradable reports whether base can be compared. Bases missing from the
// lemma table (color compounds among them) are not gradable.
func (a *Analyzer) Gradable(base string) bool {
	l, ok := a.lemmas[lexicon.Fold(base)]
	return ok && l.Gradable
}
