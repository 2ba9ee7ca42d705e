// Package wordtype defines the closed set of part-of-speech labels
// produced by the classifier.
package wordtype

import (
	"fmt"
	"strings"
)

// Type is a part-of-speech label. The zero value is Other.
type Type uint8

const (
	Other Type = iota
	Verb
	Noun
	Article
	Adjective
	Pronoun
	Preposition
	Conjunction
	Adverb
	Number
	Foreign
	Ambiguous
)

var names = [...]string{
	Other:       "other",
	Verb:        "verb",
	Noun:        "noun",
	Article:     "article",
	Adjective:   "adjective",
	Pronoun:     "pronoun",
	Preposition: "preposition",
	Conjunction: "conjunction",
	Adverb:      "adverb",
	Number:      "number",
	Foreign:     "foreign",
	Ambiguous:   "ambiguous",
}

// All returns every label in declaration order.
func All() []Type {
	out := make([]Type, 0, len(names))
	for i := range names {
		out = append(out, Type(i))
	}
	return out
}

func (t Type) String() string {
	if int(t) < len(names) {
		return names[t]
	}
	return fmt.Sprintf("wordtype(%d)", uint8(t))
}

// Valid reports whether t is one of the declared labels.
func (t Type) Valid() bool {
	return int(t) < len(names)
}

// Parse converts a label name (case-insensitive) to a Type.
func Parse(s string) (Type, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return Type(i), true
		}
	}
	return Other, false
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid word type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	v, ok := Parse(string(b))
	if !ok {
		return fmt.Errorf("unknown word type %q", string(b))
	}
	*t = v
	return nil
}
