package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/wortart/pkg/wortart/adjective"
	"github.com/cognicore/wortart/pkg/wortart/ingest"
	"github.com/cognicore/wortart/pkg/wortart/internalerr"
	"github.com/cognicore/wortart/pkg/wortart/verb"
	"github.com/cognicore/wortart/pkg/wortart/wordtype"
)

// Verbs represents the verb table configuration
type Verbs struct {
	Irregular           []IrregularVerb   `yaml:"irregular"`
	Regular             []string          `yaml:"regular"`
	SeparablePrefixes   []string          `yaml:"separable_prefixes"`
	InseparablePrefixes []string          `yaml:"inseparable_prefixes"`
	TwoWayPrefixes      []string          `yaml:"two_way_prefixes"`
	InseparableLemmas   []string          `yaml:"inseparable_lemmas"`
	AmbiguousLemmas     []string          `yaml:"ambiguous_lemmas"`
	Auxiliaries         map[string]string `yaml:"auxiliaries"`
}

// IrregularVerb is one irregular verb entry. Tense lists hold six forms
// in person order (ich, du, er, wir, ihr, sie); the imperative holds
// three (du, ihr, Sie) or none.
type IrregularVerb struct {
	Lemma       string   `yaml:"lemma"`
	Aux         string   `yaml:"aux"`
	Praesens    []string `yaml:"praesens"`
	Praeteritum []string `yaml:"praeteritum"`
	Konjunktiv2 []string `yaml:"konjunktiv2"`
	Partizip2   string   `yaml:"partizip2"`
	Imperativ   []string `yaml:"imperativ"`
	ZuInfinitiv string   `yaml:"zu_infinitiv"`
}

// LoadVerbs loads verb tables from a YAML file
func LoadVerbs(path string) (*Verbs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseVerbs(data)
}

// ParseVerbs decodes verb tables from YAML bytes.
func ParseVerbs(data []byte) (*Verbs, error) {
	var v Verbs
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Tables validates the configuration and converts it to engine tables.
// Malformed entries fail with internalerr.ErrInvalidConfig.
func (v *Verbs) Tables() (verb.Tables, error) {
	t := verb.Tables{
		Regular:             v.Regular,
		SeparablePrefixes:   v.SeparablePrefixes,
		InseparablePrefixes: v.InseparablePrefixes,
		TwoWayPrefixes:      v.TwoWayPrefixes,
		InseparableLemmas:   v.InseparableLemmas,
		AmbiguousLemmas:     v.AmbiguousLemmas,
		Auxiliaries:         make(map[string]verb.Aux, len(v.Auxiliaries)),
	}
	for lemma, name := range v.Auxiliaries {
		aux, ok := verb.ParseAux(name)
		if !ok {
			return verb.Tables{}, fmt.Errorf("verb %q: auxiliary %q: %w", lemma, name, internalerr.ErrInvalidConfig)
		}
		t.Auxiliaries[lemma] = aux
	}
	seen := make(map[string]bool, len(v.Irregular))
	for _, iv := range v.Irregular {
		p, err := iv.paradigm()
		if err != nil {
			return verb.Tables{}, err
		}
		if seen[p.Lemma] {
			return verb.Tables{}, fmt.Errorf("verb %q: listed twice: %w", p.Lemma, internalerr.ErrInvalidConfig)
		}
		seen[p.Lemma] = true
		t.Irregular = append(t.Irregular, p)
	}
	return t, nil
}

func (iv IrregularVerb) paradigm() (verb.Paradigm, error) {
	lemma := strings.TrimSpace(iv.Lemma)
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("verb %q: %s: %w", lemma, fmt.Sprintf(format, args...), internalerr.ErrInvalidConfig)
	}
	if lemma == "" {
		return verb.Paradigm{}, invalid("missing lemma")
	}
	if strings.TrimSpace(iv.Partizip2) == "" {
		return verb.Paradigm{}, invalid("missing partizip2")
	}

	p := verb.Paradigm{Lemma: lemma, Partizip2: iv.Partizip2, ZuInfinitiv: iv.ZuInfinitiv}
	if iv.Aux != "" {
		aux, ok := verb.ParseAux(iv.Aux)
		if !ok {
			return verb.Paradigm{}, invalid("auxiliary %q", iv.Aux)
		}
		p.Aux = aux
	}

	var err error
	if p.Praesens, err = verb.NewTable(iv.Praesens); err != nil {
		return verb.Paradigm{}, invalid("praesens: %v", err)
	}
	if p.Praeteritum, err = verb.NewTable(iv.Praeteritum); err != nil {
		return verb.Paradigm{}, invalid("praeteritum: %v", err)
	}
	if len(iv.Konjunktiv2) > 0 {
		if p.Konjunktiv2, err = verb.NewTable(iv.Konjunktiv2); err != nil {
			return verb.Paradigm{}, invalid("konjunktiv2: %v", err)
		}
	}
	switch len(iv.Imperativ) {
	case 0:
	case 3:
		p.Imperativ = verb.Table{verb.Du: iv.Imperativ[0], verb.Ihr: iv.Imperativ[1], verb.Sie: iv.Imperativ[2]}
	default:
		return verb.Paradigm{}, invalid("imperativ: want 3 forms, got %d", len(iv.Imperativ))
	}
	return p, nil
}

// Adjectives represents the adjective table configuration
type Adjectives struct {
	Lemmas        []AdjectiveEntry `yaml:"lemmas"`
	Colors        []string         `yaml:"colors"`
	Materials     []string         `yaml:"materials"`
	ColorPrefixes []string         `yaml:"color_prefixes"`
	ColorSuffixes []string         `yaml:"color_suffixes"`
	Idioms        []string         `yaml:"idioms"`
}

// AdjectiveEntry is one lemma. Gradable defaults to true.
type AdjectiveEntry struct {
	Base        string `yaml:"base"`
	Gradable    *bool  `yaml:"gradable"`
	Comparative string `yaml:"comparative"`
	Superlative string `yaml:"superlative"`
	Umlaut      bool   `yaml:"umlaut"`
	Stem        string `yaml:"stem"`
}

// LoadAdjectives loads adjective tables from a YAML file
func LoadAdjectives(path string) (*Adjectives, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseAdjectives(data)
}

// ParseAdjectives decodes adjective tables from YAML bytes.
func ParseAdjectives(data []byte) (*Adjectives, error) {
	var a Adjectives
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Tables validates the configuration and converts it to analyzer tables.
// Colors missing from the lemma list are added as non-gradable lemmas.
func (a *Adjectives) Tables() (adjective.Tables, error) {
	t := adjective.Tables{
		Colors:        a.Colors,
		Materials:     a.Materials,
		ColorPrefixes: a.ColorPrefixes,
		ColorSuffixes: a.ColorSuffixes,
		Idioms:        a.Idioms,
	}
	seen := make(map[string]bool, len(a.Lemmas)+len(a.Colors))
	for _, e := range a.Lemmas {
		base := strings.TrimSpace(e.Base)
		if base == "" {
			return adjective.Tables{}, fmt.Errorf("adjective entry without base: %w", internalerr.ErrInvalidConfig)
		}
		if seen[base] {
			return adjective.Tables{}, fmt.Errorf("adjective %q: listed twice: %w", base, internalerr.ErrInvalidConfig)
		}
		if (e.Comparative == "") != (e.Superlative == "") {
			return adjective.Tables{}, fmt.Errorf("adjective %q: comparative and superlative go together: %w", base, internalerr.ErrInvalidConfig)
		}
		seen[base] = true
		gradable := e.Gradable == nil || *e.Gradable
		t.Lemmas = append(t.Lemmas, adjective.Lemma{
			Base:        base,
			Gradable:    gradable,
			Comparative: e.Comparative,
			Superlative: e.Superlative,
			Umlaut:      e.Umlaut,
			Stem:        e.Stem,
		})
	}
	for _, c := range a.Colors {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		t.Lemmas = append(t.Lemmas, adjective.Lemma{Base: c})
	}
	return t, nil
}

// Phrases represents the multi-word phrase configuration
type Phrases struct {
	Phrases []PhraseEntry `yaml:"phrases"`
}

// PhraseEntry is one fixed expression.
type PhraseEntry struct {
	Phrase     string  `yaml:"phrase"`
	Type       string  `yaml:"type"`
	Subtype    string  `yaml:"subtype"`
	Confidence float64 `yaml:"confidence"`
}

// LoadPhrases loads multi-word phrases from a YAML file
func LoadPhrases(path string) (*Phrases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePhrases(data)
}

// ParsePhrases decodes multi-word phrases from YAML bytes.
func ParsePhrases(data []byte) (*Phrases, error) {
	var p Phrases
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Entries validates the phrases and converts them for the detector.
func (p *Phrases) Entries() ([]ingest.MultiWordPhrase, error) {
	out := make([]ingest.MultiWordPhrase, 0, len(p.Phrases))
	for _, e := range p.Phrases {
		words := strings.Fields(e.Phrase)
		if len(words) < 2 {
			return nil, fmt.Errorf("phrase %q: need at least two words: %w", e.Phrase, internalerr.ErrInvalidConfig)
		}
		typ, ok := wordtype.Parse(e.Type)
		if !ok || typ == wordtype.Ambiguous {
			return nil, fmt.Errorf("phrase %q: type %q: %w", e.Phrase, e.Type, internalerr.ErrInvalidConfig)
		}
		if e.Confidence < 0 || e.Confidence > 1 {
			return nil, fmt.Errorf("phrase %q: confidence %v out of range: %w", e.Phrase, e.Confidence, internalerr.ErrInvalidConfig)
		}
		out = append(out, ingest.MultiWordPhrase{
			Phrase:     strings.Join(words, " "),
			Words:      words,
			Type:       typ,
			Subtype:    e.Subtype,
			Confidence: e.Confidence,
		})
	}
	return out, nil
}
