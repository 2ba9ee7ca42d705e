package lexicon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/wortart/pkg/wortart/internalerr"
	"github.com/cognicore/wortart/pkg/wortart/wordtype"
)

// Lexicon stores the closed-class word lists the classifier consults:
//   - class sets: articles, prepositions, pronouns, conjunctions, adverbs,
//     nouns and non-German words, all keyed by their folded form
//   - special cases: exact words with a fixed type (irregular conjugations,
//     idioms, number words)
//   - variant groups: colloquial truncations mapped to their full form
//     (hab → habe)
//   - context lists: auxiliary forms, particles skipped when scanning
//     backwards for an auxiliary, prepositions governed by participles
type Lexicon struct {
	classes map[wordtype.Type]map[string]struct{}

	special map[string]SpecialCase

	// canonical -> all variants (including canonical itself)
	variants map[string][]string
	// variant -> canonical
	reverseIndex map[string]string

	auxiliaries    map[string]struct{}
	particles      map[string]struct{}
	participlePrep map[string]struct{}

	irregularAdverbs []string
}

// SpecialCase is an exact-match override.
type SpecialCase struct {
	Type wordtype.Type
	Rule string // optional; "special-case" when empty
}

// lookupOrder is the order closed classes are consulted by Lookup.
var lookupOrder = []wordtype.Type{
	wordtype.Article,
	wordtype.Preposition,
	wordtype.Pronoun,
	wordtype.Conjunction,
	wordtype.Adverb,
	wordtype.Noun,
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		classes:        make(map[wordtype.Type]map[string]struct{}),
		special:        make(map[string]SpecialCase),
		variants:       make(map[string][]string),
		reverseIndex:   make(map[string]string),
		auxiliaries:    make(map[string]struct{}),
		particles:      make(map[string]struct{}),
		participlePrep: make(map[string]struct{}),
	}
}

// File is the YAML layout of a lexicon file.
//
//	articles: [der, die, das]
//	special_cases:
//	  - word: ist
//	    type: verb
//	truncations:
//	  - canonical: habe
//	    variants: [hab]
type File struct {
	Articles               []string          `yaml:"articles"`
	Prepositions           []string          `yaml:"prepositions"`
	Pronouns               []string          `yaml:"pronouns"`
	Conjunctions           []string          `yaml:"conjunctions"`
	Adverbs                []string          `yaml:"adverbs"`
	Nouns                  []string          `yaml:"nouns"`
	Foreign                []string          `yaml:"foreign"`
	Auxiliaries            []string          `yaml:"auxiliaries"`
	Particles              []string          `yaml:"particles"`
	ParticiplePrepositions []string          `yaml:"participle_prepositions"`
	IrregularAdverbs       []string          `yaml:"irregular_adverbs"`
	SpecialCases           []SpecialCaseFile `yaml:"special_cases"`
	Truncations            []struct {
		Canonical string   `yaml:"canonical"`
		Variants  []string `yaml:"variants"`
	} `yaml:"truncations"`
}

// SpecialCaseFile is one special_cases entry.
type SpecialCaseFile struct {
	Word string `yaml:"word"`
	Type string `yaml:"type"`
	Rule string `yaml:"rule"`
}

// LoadFromYAML reads a lexicon file from disk.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a lexicon from YAML bytes. Unknown special-case types are
// rejected with internalerr.ErrInvalidConfig.
func Parse(data []byte) (*Lexicon, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	lex := New()
	lex.AddWords(wordtype.Article, f.Articles...)
	lex.AddWords(wordtype.Preposition, f.Prepositions...)
	lex.AddWords(wordtype.Pronoun, f.Pronouns...)
	lex.AddWords(wordtype.Conjunction, f.Conjunctions...)
	lex.AddWords(wordtype.Adverb, f.Adverbs...)
	lex.AddWords(wordtype.Noun, f.Nouns...)
	lex.AddWords(wordtype.Foreign, f.Foreign...)
	lex.AddAuxiliaries(f.Auxiliaries...)
	lex.AddParticles(f.Particles...)
	lex.AddParticiplePrepositions(f.ParticiplePrepositions...)
	lex.AddIrregularAdverbs(f.IrregularAdverbs...)

	for _, sc := range f.SpecialCases {
		typ, ok := wordtype.Parse(sc.Type)
		if !ok || typ == wordtype.Ambiguous {
			return nil, fmt.Errorf("special case %q: type %q: %w", sc.Word, sc.Type, internalerr.ErrInvalidConfig)
		}
		lex.AddSpecialCase(sc.Word, SpecialCase{Type: typ, Rule: sc.Rule})
	}
	for _, tr := range f.Truncations {
		lex.AddVariantGroup(tr.Canonical, tr.Variants)
	}
	return lex, nil
}

func addAll(set map[string]struct{}, words []string) {
	for _, w := range words {
		if w = Fold(strings.TrimSpace(w)); w != "" {
			set[w] = struct{}{}
		}
	}
}

// AddWords adds words to a closed class.
func (l *Lexicon) AddWords(class wordtype.Type, words ...string) {
	set, ok := l.classes[class]
	if !ok {
		set = make(map[string]struct{}, len(words))
		l.classes[class] = set
	}
	addAll(set, words)
}

// Has reports whether word belongs to class.
func (l *Lexicon) Has(class wordtype.Type, word string) bool {
	_, ok := l.classes[class][Fold(word)]
	return ok
}

// Words returns the members of class in no particular order.
func (l *Lexicon) Words(class wordtype.Type) []string {
	set := l.classes[class]
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	return out
}

// Lookup returns the first closed class containing word, checked in the
// order article, preposition, pronoun, conjunction, adverb, noun.
func (l *Lexicon) Lookup(word string) (wordtype.Type, bool) {
	key := Fold(word)
	for _, class := range lookupOrder {
		if _, ok := l.classes[class][key]; ok {
			return class, true
		}
	}
	return wordtype.Other, false
}

// AddSpecialCase registers an exact-match override.
func (l *Lexicon) AddSpecialCase(word string, sc SpecialCase) {
	l.special[Fold(word)] = sc
}

// Special returns the special case registered for word.
func (l *Lexicon) Special(word string) (SpecialCase, bool) {
	sc, ok := l.special[Fold(word)]
	return sc, ok
}

// AddVariantGroup adds a canonical form and the variants that map to it.
// If the group already exists, old reverse index entries are cleaned up first.
func (l *Lexicon) AddVariantGroup(canonical string, variants []string) {
	canonical = Fold(canonical)

	if old, exists := l.variants[canonical]; exists {
		for _, v := range old {
			delete(l.reverseIndex, v)
		}
	}

	normalized := []string{canonical}
	seen := map[string]bool{canonical: true}
	for _, v := range variants {
		v = Fold(v)
		if !seen[v] {
			normalized = append(normalized, v)
			seen[v] = true
		}
	}

	l.variants[canonical] = normalized
	for _, v := range normalized {
		l.reverseIndex[v] = canonical
	}
}

// Truncations returns a copy of the variant → canonical index.
func (l *Lexicon) Truncations() map[string]string {
	out := make(map[string]string, len(l.reverseIndex))
	for v, c := range l.reverseIndex {
		if v != c {
			out[v] = c
		}
	}
	return out
}

// IsAuxiliary reports whether word is a finite form of haben, sein or werden.
func (l *Lexicon) IsAuxiliary(word string) bool {
	_, ok := l.auxiliaries[Fold(word)]
	return ok
}

// IsParticle reports whether word is skipped in backward auxiliary scans.
func (l *Lexicon) IsParticle(word string) bool {
	_, ok := l.particles[Fold(word)]
	return ok
}

// IsParticiplePreposition reports whether word is a preposition that marks
// a participle as verbal (aufgenommen in ...).
func (l *Lexicon) IsParticiplePreposition(word string) bool {
	_, ok := l.participlePrep[Fold(word)]
	return ok
}

// AddAuxiliaries registers finite auxiliary forms.
func (l *Lexicon) AddAuxiliaries(words ...string) { addAll(l.auxiliaries, words) }

// AddParticles registers words skipped by AuxiliaryBefore.
func (l *Lexicon) AddParticles(words ...string) { addAll(l.particles, words) }

// AddParticiplePrepositions registers prepositions that make a participle verbal.
func (l *Lexicon) AddParticiplePrepositions(words ...string) { addAll(l.participlePrep, words) }

// AddIrregularAdverbs registers adverbs without a telltale suffix
// (sehr, oft, gern). They are checked before any lexicon class.
func (l *Lexicon) AddIrregularAdverbs(words ...string) {
	for _, w := range words {
		if w = Fold(strings.TrimSpace(w)); w != "" {
			l.irregularAdverbs = append(l.irregularAdverbs, w)
		}
	}
}

// IrregularAdverbs returns the irregular adverb list.
func (l *Lexicon) IrregularAdverbs() []string {
	return append([]string(nil), l.irregularAdverbs...)
}

// maxLookback bounds how far AuxiliaryBefore scans, particles included.
const maxLookback = 12

// AuxiliaryBefore reports whether an auxiliary occurs among the window
// non-particle tokens before words[index]. Particles (auch, schon, nicht)
// do not count towards the window, but the scan never looks back further
// than maxLookback tokens.
func (l *Lexicon) AuxiliaryBefore(words []string, index, window int) bool {
	if index > len(words) {
		index = len(words)
	}
	counted := 0
	for i := index - 1; i >= 0 && index-i <= maxLookback && counted < window; i-- {
		w := Normalize(words[i])
		if w == "" {
			continue
		}
		if _, ok := l.auxiliaries[w]; ok {
			return true
		}
		if _, ok := l.particles[w]; ok {
			continue
		}
		counted++
	}
	return false
}

// ArticleBefore reports whether one of the n tokens before words[index]
// is an article.
func (l *Lexicon) ArticleBefore(words []string, index, n int) bool {
	if index > len(words) {
		index = len(words)
	}
	articles := l.classes[wordtype.Article]
	for i := index - 1; i >= 0 && index-i <= n; i-- {
		if _, ok := articles[Normalize(words[i])]; ok {
			return true
		}
	}
	return false
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() Stats {
	s := Stats{Classes: make(map[wordtype.Type]int, len(l.classes))}
	for class, set := range l.classes {
		s.Classes[class] = len(set)
	}
	s.SpecialCases = len(l.special)
	for _, vs := range l.variants {
		s.Variants += len(vs) - 1
	}
	return s
}

// Stats holds statistics about lexicon contents.
type Stats struct {
	Classes      map[wordtype.Type]int // words per closed class
	SpecialCases int
	Variants     int // truncated forms with a canonical target
}
