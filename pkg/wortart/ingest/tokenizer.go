package ingest

import (
	"strings"
	"unicode"

	"github.com/cognicore/wortart/pkg/wortart/lexicon"
)

// DefaultAbbreviations end in a period without ending the sentence.
var DefaultAbbreviations = []string{
	"z.b.", "d.h.", "u.a.", "usw.", "bzw.", "ca.", "vgl.", "etc.", "evtl.",
	"ggf.", "inkl.", "nr.", "dr.", "prof.", "hr.", "fr.", "st.", "str.", "s.", "z.t.",
}

// Sentence is a segment of text with its tokens. Tokens keep their case
// and inner punctuation; Words are the same tokens with edge punctuation
// removed.
type Sentence struct {
	Text   string
	Tokens []string
	Words  []string
}

// Tokenizer splits running text into sentences and tokens.
type Tokenizer struct {
	abbreviations map[string]struct{}
}

// NewTokenizer creates a tokenizer that does not break sentences after
// the given abbreviations.
func NewTokenizer(abbreviations []string) *Tokenizer {
	abbr := make(map[string]struct{}, len(abbreviations))
	for _, a := range abbreviations {
		abbr[lexicon.Fold(a)] = struct{}{}
	}
	return &Tokenizer{abbreviations: abbr}
}

// AddAbbreviation registers an additional abbreviation.
func (t *Tokenizer) AddAbbreviation(a string) {
	t.abbreviations[lexicon.Fold(a)] = struct{}{}
}

// Tokenize splits a sentence at whitespace. Tokens without any letter or
// digit (dashes, lone quotes) are dropped.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	for _, tok := range strings.Fields(text) {
		if lexicon.CleanToken(tok) == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Sentences splits text into sentences. A sentence ends after a token
// whose last character (closing quotes and brackets aside) is '.', '!',
// '?' or '…', unless the token is a known abbreviation or an ordinal
// number such as "3.".
func (t *Tokenizer) Sentences(text string) []Sentence {
	var (
		out     []Sentence
		current []string
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		out = append(out, newSentence(current))
		current = nil
	}

	for _, tok := range strings.Fields(text) {
		ends := t.endsSentence(tok)
		if lexicon.CleanToken(tok) != "" {
			current = append(current, tok)
		}
		if ends {
			flush()
		}
	}
	flush()
	return out
}

func newSentence(tokens []string) Sentence {
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = lexicon.CleanToken(tok)
	}
	return Sentence{
		Text:   strings.Join(tokens, " "),
		Tokens: tokens,
		Words:  words,
	}
}

func (t *Tokenizer) endsSentence(tok string) bool {
	trimmed := strings.TrimRightFunc(tok, isClosing)
	if trimmed == "" {
		return false
	}
	last := []rune(trimmed)
	switch last[len(last)-1] {
	case '!', '?', '…':
		return true
	case '.':
	default:
		return false
	}
	lead := strings.TrimLeftFunc(trimmed, isOpening)
	if _, ok := t.abbreviations[lexicon.Fold(lead)]; ok {
		return false
	}
	return !isOrdinal(lead)
}

func isClosing(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '»', '«', '“', '”', '‘', '’':
		return true
	}
	return false
}

func isOpening(r rune) bool {
	switch r {
	case '"', '\'', '(', '[', '»', '«', '„', '“', '‚', '‘':
		return true
	}
	return false
}

// isOrdinal reports whether tok is digits followed by a single period.
func isOrdinal(tok string) bool {
	digits := strings.TrimSuffix(tok, ".")
	if digits == "" || digits == tok {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
