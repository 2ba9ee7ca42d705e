package classify

import (
	"github.com/cognicore/wortart/pkg/wortart/lexicon"
	"github.com/cognicore/wortart/pkg/wortart/suffix"
	"github.com/cognicore/wortart/pkg/wortart/wordtype"
)

const (
	// auxiliaryWindow is how many non-particle tokens back an auxiliary
	// turns a verb/adjective tie into a verb.
	auxiliaryWindow = 6
	// articleWindow is how many tokens back an article turns a tie into a noun.
	articleWindow = 2
)

// candidateOrder is the order heuristics are tested in; it also breaks
// ties no other rule covers.
var candidateOrder = []wordtype.Type{
	wordtype.Noun,
	wordtype.Adjective,
	wordtype.Verb,
	wordtype.Adverb,
}

// Resolver re-tests the open-class heuristics on a token and picks a
// primary reading when more than one applies.
type Resolver struct {
	lex     *lexicon.Lexicon
	adverbs *suffix.AdverbDetector
}

// NewResolver creates a resolver.
func NewResolver(lex *lexicon.Lexicon, adverbs *suffix.AdverbDetector) *Resolver {
	return &Resolver{lex: lex, adverbs: adverbs}
}

// Candidates returns the open classes whose heuristics match word
// (folded), in candidateOrder.
func (r *Resolver) Candidates(word string, capitalized bool) []wordtype.Type {
	var out []wordtype.Type
	for _, t := range candidateOrder {
		if r.matches(t, word, capitalized) {
			out = append(out, t)
		}
	}
	return out
}

func (r *Resolver) matches(t wordtype.Type, word string, capitalized bool) bool {
	switch t {
	case wordtype.Noun:
		if capitalized {
			return true
		}
		_, ok := suffix.NounSuffix(word, capitalized)
		return ok
	case wordtype.Adjective:
		_, ok := suffix.AdjectivePattern(word)
		return ok
	case wordtype.Verb:
		return suffix.FiniteVerb(word) || suffix.ParticipleShape(word)
	case wordtype.Adverb:
		_, ok := r.adverbs.Detect(word)
		return ok
	case wordtype.Other, wordtype.Article, wordtype.Pronoun, wordtype.Preposition,
		wordtype.Conjunction, wordtype.Number, wordtype.Foreign, wordtype.Ambiguous:
		return false
	}
	return false
}

// Primary breaks a tie between candidates:
//   - verb and adjective: verb after an auxiliary, else adjective
//   - noun after an article: noun
//   - noun and verb: noun when capitalized mid-sentence, else verb
//   - anything else: the first candidate in candidateOrder
func (r *Resolver) Primary(cands []wordtype.Type, capitalized bool, ctx Context) wordtype.Type {
	has := make(map[wordtype.Type]bool, len(cands))
	for _, t := range cands {
		has[t] = true
	}
	switch {
	case has[wordtype.Verb] && has[wordtype.Adjective]:
		if r.lex.AuxiliaryBefore(ctx.Words, ctx.Index, auxiliaryWindow) {
			return wordtype.Verb
		}
		return wordtype.Adjective
	case has[wordtype.Noun] && r.lex.ArticleBefore(ctx.Words, ctx.Index, articleWindow):
		return wordtype.Noun
	case has[wordtype.Noun] && has[wordtype.Verb]:
		if capitalized && !ctx.AtSentenceStart {
			return wordtype.Noun
		}
		return wordtype.Verb
	}
	return cands[0]
}

// Resolve returns an ambiguous result when at least two heuristics match.
func (r *Resolver) Resolve(word string, capitalized bool, ctx Context) (Result, bool) {
	cands := r.Candidates(word, capitalized)
	if len(cands) < 2 {
		return Result{}, false
	}
	return ambiguous("ambiguous-heuristics", ambiguousConf, r.Primary(cands, capitalized, ctx), cands...), true
}
