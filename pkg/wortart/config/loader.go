package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cognicore/wortart/pkg/wortart/adjective"
	"github.com/cognicore/wortart/pkg/wortart/classify"
	"github.com/cognicore/wortart/pkg/wortart/data"
	"github.com/cognicore/wortart/pkg/wortart/ingest"
	"github.com/cognicore/wortart/pkg/wortart/lexicon"
	"github.com/cognicore/wortart/pkg/wortart/verb"
)

// Loader loads all data files and constructs components. An empty path
// selects the embedded default for that file.
type Loader struct {
	LexiconPath    string
	VerbsPath      string
	AdjectivesPath string
	PhrasesPath    string
}

// Components holds all loaded components
type Components struct {
	Lexicon    *lexicon.Lexicon
	Verbs      *verb.Engine
	Adjectives *adjective.Analyzer
	Phrases    *ingest.PhraseDetector
}

// Deps returns the classifier dependencies.
func (c *Components) Deps() classify.Deps {
	return classify.Deps{
		Lexicon:    c.Lexicon,
		Verbs:      c.Verbs,
		Adjectives: c.Adjectives,
	}
}

// Load reads all data files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Lexicon first: the verb engine takes its truncations and uses it
	// for context lookups.
	raw, src, err := read(l.LexiconPath, data.Lexicon)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	comp.Lexicon, err = lexicon.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	stats := comp.Lexicon.Stats()
	slog.Debug("lexicon loaded", "source", src, "special_cases", stats.SpecialCases, "variants", stats.Variants)

	raw, src, err = read(l.VerbsPath, data.Verbs)
	if err != nil {
		return nil, fmt.Errorf("load verbs: %w", err)
	}
	verbs, err := ParseVerbs(raw)
	if err != nil {
		return nil, fmt.Errorf("load verbs: %w", err)
	}
	vt, err := verbs.Tables()
	if err != nil {
		return nil, fmt.Errorf("load verbs: %w", err)
	}
	vt.Truncations = comp.Lexicon.Truncations()
	comp.Verbs = verb.New(vt, comp.Lexicon)
	slog.Debug("verbs loaded", "source", src, "irregular", len(vt.Irregular), "regular", len(vt.Regular))

	raw, src, err = read(l.AdjectivesPath, data.Adjectives)
	if err != nil {
		return nil, fmt.Errorf("load adjectives: %w", err)
	}
	adjectives, err := ParseAdjectives(raw)
	if err != nil {
		return nil, fmt.Errorf("load adjectives: %w", err)
	}
	at, err := adjectives.Tables()
	if err != nil {
		return nil, fmt.Errorf("load adjectives: %w", err)
	}
	comp.Adjectives = adjective.New(at)
	slog.Debug("adjectives loaded", "source", src, "lemmas", len(at.Lemmas), "colors", len(at.Colors))

	raw, src, err = read(l.PhrasesPath, data.Phrases)
	if err != nil {
		return nil, fmt.Errorf("load phrases: %w", err)
	}
	phrases, err := ParsePhrases(raw)
	if err != nil {
		return nil, fmt.Errorf("load phrases: %w", err)
	}
	entries, err := phrases.Entries()
	if err != nil {
		return nil, fmt.Errorf("load phrases: %w", err)
	}
	comp.Phrases = ingest.NewPhraseDetector(entries)
	slog.Debug("phrases loaded", "source", src, "phrases", comp.Phrases.Len())

	return comp, nil
}

// read returns the file at path, or fallback when path is empty.
func read(path string, fallback []byte) ([]byte, string, error) {
	if path == "" {
		return fallback, "embedded", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, path, err
	}
	return b, path, nil
}
