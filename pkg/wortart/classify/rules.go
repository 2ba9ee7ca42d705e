package classify

import (
	"github.com/cognicore/wortart/pkg/wortart/adjective"
	"github.com/cognicore/wortart/pkg/wortart/lexicon"
	"github.com/cognicore/wortart/pkg/wortart/suffix"
	"github.com/cognicore/wortart/pkg/wortart/verb"
	"github.com/cognicore/wortart/pkg/wortart/wordtype"
)

const (
	reanalysisBoost     = 0.15
	maxConfidence       = 0.95
	capitalizedNounConf = 0.8
	ambiguousConf       = 0.5
	verbSuffixConf      = 0.4
)

// input is a token prepared once and shared by all rules.
type input struct {
	raw         string
	clean       string
	word        string // cleaned and folded
	capitalized bool
	ctx         Context
}

func newInput(raw string, ctx Context) *input {
	clean := lexicon.CleanToken(raw)
	return &input{
		raw:         raw,
		clean:       clean,
		word:        lexicon.Fold(clean),
		capitalized: lexicon.IsCapitalized(clean),
		ctx:         ctx,
	}
}

// midSentenceCapital reports a capitalized token that does not open the
// sentence. In German such tokens are nouns or nominalizations.
func (in *input) midSentenceCapital() bool {
	return in.capitalized && !in.ctx.AtSentenceStart
}

type rule struct {
	name  string
	apply func(*input) (Result, bool)
}

// pipeline returns the rules in evaluation order.
func (c *Classifier) pipeline() []rule {
	return []rule{
		{"empty", c.ruleEmpty},
		{"foreign", c.ruleForeign},
		{"number", c.ruleNumber},
		{"special-case", c.ruleSpecial},
		{"adverb", c.ruleAdverb},
		{"verb-engine", c.ruleVerb},
		{"lexicon", c.ruleLexicon},
		{"adjective-engine", c.ruleAdjective},
		{"noun", c.ruleNoun},
		{"ambiguity", c.ruleAmbiguity},
		{"adjective-suffix", c.ruleAdjectiveSuffix},
		{"verb-suffix", c.ruleVerbSuffix},
		{"fallback", c.ruleFallback},
	}
}

func (c *Classifier) ruleEmpty(in *input) (Result, bool) {
	if in.clean == "" {
		return Result{Type: wordtype.Other, Rule: "empty"}, true
	}
	return Result{}, false
}

func (c *Classifier) ruleForeign(in *input) (Result, bool) {
	if c.lex.Has(wordtype.Foreign, in.word) {
		return Result{Type: wordtype.Foreign, Rule: "foreign-word"}, true
	}
	return Result{}, false
}

func (c *Classifier) ruleNumber(in *input) (Result, bool) {
	switch {
	case suffix.IsNumeric(in.clean):
		return Result{Type: wordtype.Number, Rule: "numeric"}, true
	case suffix.IsRomanNumeral(in.clean):
		return Result{Type: wordtype.Number, Rule: "roman-numeral"}, true
	}
	if sc, ok := c.lex.Special(in.word); ok && sc.Type == wordtype.Number {
		rule := sc.Rule
		if rule == "" {
			rule = "special-number"
		}
		return Result{Type: wordtype.Number, Rule: rule}, true
	}
	return Result{}, false
}

func (c *Classifier) ruleSpecial(in *input) (Result, bool) {
	sc, ok := c.lex.Special(in.word)
	if !ok {
		return Result{}, false
	}
	rule := sc.Rule
	if rule == "" {
		rule = "special-case"
	}
	return Result{Type: sc.Type, Rule: rule}, true
}

func (c *Classifier) ruleAdverb(in *input) (Result, bool) {
	m, ok := c.adverbs.Detect(in.word)
	if !ok {
		return Result{}, false
	}
	// freundlich, herrlich: -lich adjectives the table knows
	if m.Suffix == "lich" && c.adj.Known(in.word) {
		return Result{}, false
	}
	return Result{Type: wordtype.Adverb, Rule: "adverb-" + m.Subtype, Confidence: m.Confidence, Suffix: &m}, true
}

func (c *Classifier) ruleVerb(in *input) (Result, bool) {
	det, ok := c.verbs.Detect(in.raw, verb.Context{
		Words:           in.ctx.Words,
		Index:           in.ctx.Index,
		AtSentenceStart: in.ctx.AtSentenceStart,
	})
	if !ok {
		return Result{}, false
	}

	if det.Info.Participle && det.Context.LikelyRole == verb.RoleAdjective {
		if c.features.ParticipleReanalysis && det.Context.NextToken != "" && c.lex.IsParticiplePreposition(det.Context.NextToken) {
			// aufgenommen in: passive or stative verb reading
			return Result{
				Type:       wordtype.Verb,
				Rule:       "participle-reanalyzed-as-verb-by-prep",
				Confidence: min(det.Confidence+reanalysisBoost, maxConfidence),
				Verb:       &det,
			}, true
		}
		if c.features.Ambiguity {
			r := ambiguous("participle-ambiguous", det.Confidence, wordtype.Adjective, wordtype.Verb, wordtype.Adjective)
			r.Verb = &det
			return r, true
		}
		return Result{Type: wordtype.Adjective, Rule: "participle-adjective", Confidence: det.Confidence, Verb: &det}, true
	}
	return Result{Type: wordtype.Verb, Rule: "verb-engine", Confidence: det.Confidence, Verb: &det}, true
}

func (c *Classifier) ruleLexicon(in *input) (Result, bool) {
	class, ok := c.lex.Lookup(in.word)
	if !ok {
		return Result{}, false
	}
	return Result{Type: class, Rule: "lex-" + class.String()}, true
}

func (c *Classifier) ruleAdjective(in *input) (Result, bool) {
	if in.midSentenceCapital() {
		return Result{}, false
	}
	a := c.adj.AnalyzeWith(in.raw, adjective.Options{ColorCompounds: c.features.ColorCompounds})
	if !a.Resolved() {
		return Result{}, false
	}
	return Result{Type: wordtype.Adjective, Rule: "adjective-engine", Confidence: a.Confidence, Adjective: &a}, true
}

func (c *Classifier) ruleNoun(in *input) (Result, bool) {
	if in.midSentenceCapital() {
		return Result{Type: wordtype.Noun, Rule: "capitalized-noun", Confidence: capitalizedNounConf}, true
	}
	if m, ok := suffix.NounSuffix(in.word, in.capitalized); ok {
		return Result{Type: wordtype.Noun, Rule: "noun-suffix", Confidence: m.Confidence, Suffix: &m}, true
	}
	return Result{}, false
}

func (c *Classifier) ruleAmbiguity(in *input) (Result, bool) {
	if !c.features.Ambiguity {
		return Result{}, false
	}
	return c.resolver.Resolve(in.word, in.capitalized, in.ctx)
}

func (c *Classifier) ruleAdjectiveSuffix(in *input) (Result, bool) {
	if in.midSentenceCapital() {
		return Result{}, false
	}
	if m, ok := suffix.AdjectivePattern(in.word); ok {
		return Result{Type: wordtype.Adjective, Rule: "adjective-suffix", Confidence: m.Confidence, Suffix: &m}, true
	}
	return Result{}, false
}

func (c *Classifier) ruleVerbSuffix(in *input) (Result, bool) {
	if in.midSentenceCapital() || !suffix.FiniteVerb(in.word) {
		return Result{}, false
	}
	return Result{Type: wordtype.Verb, Rule: "verb-suffix", Confidence: verbSuffixConf}, true
}

func (c *Classifier) ruleFallback(in *input) (Result, bool) {
	return Result{Type: wordtype.Other, Rule: "fallback"}, true
}
