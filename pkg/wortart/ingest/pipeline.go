package ingest

import (
	"strings"

	"github.com/cognicore/wortart/pkg/wortart/classify"
)

// Pipeline orchestrates the full annotation flow:
// text → sentences → tokens → multi-word phrases → per-token classification
type Pipeline struct {
	tokenizer  *Tokenizer
	phrases    *PhraseDetector
	classifier *classify.Classifier
}

// NewPipeline creates an annotation pipeline with the given components.
// phrases may be nil to skip phrase detection.
func NewPipeline(tokenizer *Tokenizer, phrases *PhraseDetector, classifier *classify.Classifier) *Pipeline {
	if phrases == nil {
		phrases = NewPhraseDetector(nil)
	}
	return &Pipeline{
		tokenizer:  tokenizer,
		phrases:    phrases,
		classifier: classifier,
	}
}

// Token is one annotated unit: a single token, or a phrase spanning
// Length tokens starting at Index.
type Token struct {
	Text   string           `json:"text"`
	Index  int              `json:"index"`
	Length int              `json:"length"`
	Phrase *MultiWordPhrase `json:"phrase,omitempty"`
	Result classify.Result  `json:"result"`
}

// AnnotatedSentence holds the annotations of one sentence.
type AnnotatedSentence struct {
	Text   string  `json:"text"`
	Tokens []Token `json:"tokens"`
}

// ProcessedText represents a text after annotation
type ProcessedText struct {
	Sentences []AnnotatedSentence `json:"sentences"`
}

// Tokens returns the annotations of all sentences in order.
func (p ProcessedText) Tokens() []Token {
	var out []Token
	for _, s := range p.Sentences {
		out = append(out, s.Tokens...)
	}
	return out
}

// PhraseRule is the Result.Rule of tokens recognized as multi-word phrases.
const PhraseRule = "multi-word"

// Process runs a text through the full annotation pipeline
func (p *Pipeline) Process(text string) ProcessedText {
	var out ProcessedText
	for _, s := range p.tokenizer.Sentences(text) {
		out.Sentences = append(out.Sentences, p.annotate(s))
	}
	return out
}

func (p *Pipeline) annotate(s Sentence) AnnotatedSentence {
	as := AnnotatedSentence{Text: s.Text, Tokens: make([]Token, 0, len(s.Tokens))}
	for _, span := range p.phrases.Scan(s.Words) {
		if span.Phrase != nil {
			as.Tokens = append(as.Tokens, Token{
				Text:   strings.Join(s.Tokens[span.Start:span.Start+span.Length], " "),
				Index:  span.Start,
				Length: span.Length,
				Phrase: span.Phrase,
				Result: classify.Result{
					Type:       span.Phrase.Type,
					Rule:       PhraseRule,
					Confidence: span.Phrase.Confidence,
				},
			})
			continue
		}
		ctx := classify.Context{
			AtSentenceStart: span.Start == 0,
			Sentence:        s.Text,
			Words:           s.Words,
			Index:           span.Start,
		}
		as.Tokens = append(as.Tokens, Token{
			Text:   s.Tokens[span.Start],
			Index:  span.Start,
			Length: 1,
			Result: p.classifier.Classify(s.Tokens[span.Start], ctx),
		})
	}
	return as
}
