// Package classify assigns a part-of-speech label to German tokens.
//
// Classification runs an ordered list of named rules; the first rule that
// matches decides the result. Rule names end up in Result.Rule so every
// decision can be traced back to its stage.
package classify

import (
	"github.com/cognicore/wortart/pkg/wortart/adjective"
	"github.com/cognicore/wortart/pkg/wortart/lexicon"
	"github.com/cognicore/wortart/pkg/wortart/suffix"
	"github.com/cognicore/wortart/pkg/wortart/verb"
	"github.com/cognicore/wortart/pkg/wortart/wordtype"
)

// Context is the sentence a token was taken from. The zero value means
// a bare word without sentence information.
type Context struct {
	AtSentenceStart bool
	Sentence        string
	Words           []string
	Index           int
}

// Features switch optional pipeline stages. They are part of the cache key.
type Features struct {
	// Ambiguity enables ambiguous results (participles, competing heuristics).
	Ambiguity bool
	// ParticipleReanalysis turns adjectival participles followed by a
	// governing preposition into verbs.
	ParticipleReanalysis bool
	// ColorCompounds enables color compound analysis in the adjective engine.
	ColorCompounds bool
}

// DefaultFeatures enables every stage.
var DefaultFeatures = Features{Ambiguity: true, ParticipleReanalysis: true, ColorCompounds: true}

func (f Features) bits() uint8 {
	var b uint8
	if f.Ambiguity {
		b |= 1
	}
	if f.ParticipleReanalysis {
		b |= 2
	}
	if f.ColorCompounds {
		b |= 4
	}
	return b
}

// Deps are the engines and word lists the classifier consults.
type Deps struct {
	Lexicon    *lexicon.Lexicon
	Verbs      *verb.Engine
	Adjectives *adjective.Analyzer
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithCache memoizes results in c. Without it nothing is cached.
func WithCache(c *Cache) Option {
	return func(cl *Classifier) { cl.cache = c }
}

// WithFeatures replaces DefaultFeatures.
func WithFeatures(f Features) Option {
	return func(cl *Classifier) { cl.features = f }
}

// Classifier labels tokens. It is safe for concurrent use.
type Classifier struct {
	lex      *lexicon.Lexicon
	verbs    *verb.Engine
	adj      *adjective.Analyzer
	adverbs  *suffix.AdverbDetector
	resolver *Resolver
	features Features
	cache    *Cache
	rules    []rule
}

// New creates a classifier. Nil deps are replaced by empty ones so a
// partially configured classifier still labels every token.
func New(deps Deps, opts ...Option) *Classifier {
	if deps.Lexicon == nil {
		deps.Lexicon = lexicon.New()
	}
	if deps.Verbs == nil {
		deps.Verbs = verb.New(verb.Tables{}, deps.Lexicon)
	}
	if deps.Adjectives == nil {
		deps.Adjectives = adjective.New(adjective.Tables{})
	}
	c := &Classifier{
		lex:      deps.Lexicon,
		verbs:    deps.Verbs,
		adj:      deps.Adjectives,
		adverbs:  suffix.NewAdverbDetector(deps.Lexicon.IrregularAdverbs()),
		features: DefaultFeatures,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.resolver = NewResolver(c.lex, c.adverbs)
	c.rules = c.pipeline()
	return c
}

// Features returns the active feature switches.
func (c *Classifier) Features() Features {
	return c.features
}

// Cache returns the attached cache, or nil.
func (c *Classifier) Cache() *Cache {
	return c.cache
}

// Classify labels raw in ctx. It never fails: tokens no rule recognizes
// are labeled other.
func (c *Classifier) Classify(raw string, ctx Context) Result {
	if c.cache == nil {
		return c.run(raw, ctx)
	}
	key := cacheKey(raw, ctx, c.features)
	if r, ok := c.cache.Get(key); ok {
		return r
	}
	r := c.run(raw, ctx)
	c.cache.Add(key, r)
	return r
}

// RuleNames lists the pipeline stages in evaluation order.
func (c *Classifier) RuleNames() []string {
	out := make([]string, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.name
	}
	return out
}

func (c *Classifier) run(raw string, ctx Context) Result {
	in := newInput(raw, ctx)
	for _, r := range c.rules {
		if res, ok := r.apply(in); ok {
			return res
		}
	}
	// the fallback rule always matches
	return Result{Type: wordtype.Other, Rule: "fallback"}
}
