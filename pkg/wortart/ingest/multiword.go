package ingest

import (
	"strings"

	"github.com/cognicore/wortart/pkg/wortart/lexicon"
	"github.com/cognicore/wortart/pkg/wortart/wordtype"
)

// MultiWordPhrase is a fixed expression tagged as a single unit,
// e.g. "zum Beispiel" (adverb) or "peinlich berührt" (adjective).
type MultiWordPhrase struct {
	Phrase     string        `json:"phrase"`
	Words      []string      `json:"words"`
	Type       wordtype.Type `json:"type"`
	Subtype    string        `json:"subtype,omitempty"`
	Confidence float64       `json:"confidence,omitempty"`
}

// MultiWordMatch is a phrase found in a token stream. Length is the
// number of tokens it consumes.
type MultiWordMatch struct {
	Phrase MultiWordPhrase `json:"phrase"`
	Length int             `json:"length"`
}

// PhraseDetector recognizes multi-word phrases in a token stream.
type PhraseDetector struct {
	// first word -> phrases starting with it, in insertion order
	byFirst map[string][]MultiWordPhrase
	count   int
}

// NewPhraseDetector creates a detector for the given phrases.
func NewPhraseDetector(phrases []MultiWordPhrase) *PhraseDetector {
	d := &PhraseDetector{byFirst: make(map[string][]MultiWordPhrase)}
	for _, p := range phrases {
		d.Add(p)
	}
	return d
}

// Add registers a phrase. Words is derived from Phrase when empty;
// phrases with fewer than two words are ignored.
func (d *PhraseDetector) Add(p MultiWordPhrase) {
	words := p.Words
	if len(words) == 0 {
		words = strings.Fields(p.Phrase)
	}
	folded := make([]string, 0, len(words))
	for _, w := range words {
		if w = lexicon.Normalize(w); w != "" {
			folded = append(folded, w)
		}
	}
	if len(folded) < 2 {
		return
	}
	p.Words = folded
	if p.Phrase == "" {
		p.Phrase = strings.Join(folded, " ")
	}
	d.byFirst[folded[0]] = append(d.byFirst[folded[0]], p)
	d.count++
}

// Len returns the number of registered phrases.
func (d *PhraseDetector) Len() int {
	return d.count
}

// Detect checks whether a phrase starts at tokens[index]. word must equal
// the phrase's first word and the following tokens its remaining words,
// compared case-insensitively. The first registered phrase that matches
// wins, even if a longer one would match too.
func (d *PhraseDetector) Detect(word string, tokens []string, index int) (MultiWordMatch, bool) {
	candidates := d.byFirst[lexicon.Normalize(word)]
	for _, p := range candidates {
		if matchesAt(p.Words, tokens, index) {
			return MultiWordMatch{Phrase: p, Length: len(p.Words)}, true
		}
	}
	return MultiWordMatch{}, false
}

func matchesAt(words, tokens []string, index int) bool {
	if index < 0 || index+len(words) > len(tokens) {
		return false
	}
	for i := 1; i < len(words); i++ {
		if lexicon.Normalize(tokens[index+i]) != words[i] {
			return false
		}
	}
	return true
}

// Span is a run of tokens produced by Scan: either a single token
// (Phrase nil, Length 1) or a recognized phrase.
type Span struct {
	Start  int
	Length int
	Phrase *MultiWordPhrase
}

// Scan walks tokens left to right, advancing past each recognized phrase
// by its length. The spans cover every token exactly once.
func (d *PhraseDetector) Scan(tokens []string) []Span {
	spans := make([]Span, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if m, ok := d.Detect(tokens[i], tokens, i); ok {
			p := m.Phrase
			spans = append(spans, Span{Start: i, Length: m.Length, Phrase: &p})
			i += m.Length
			continue
		}
		spans = append(spans, Span{Start: i, Length: 1})
		i++
	}
	return spans
}
