package verb

import (
	"fmt"
	"strings"
)

// Person is a pronoun slot of a conjugation table.
type Person uint8

const (
	Ich Person = iota
	Du
	Er // er/sie/es
	Wir
	Ihr
	Sie // sie/Sie
)

// Persons lists the six slots in table order.
var Persons = []Person{Ich, Du, Er, Wir, Ihr, Sie}

var personKeys = [...]string{"ich", "du", "er/sie/es", "wir", "ihr", "sie/Sie"}

func (p Person) String() string {
	if int(p) < len(personKeys) {
		return personKeys[p]
	}
	return fmt.Sprintf("person(%d)", uint8(p))
}

// MarshalText implements encoding.TextMarshaler so tables encode as JSON objects.
func (p Person) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Person) UnmarshalText(b []byte) error {
	for i, k := range personKeys {
		if k == string(b) {
			*p = Person(i)
			return nil
		}
	}
	return fmt.Errorf("unknown person %q", string(b))
}

// Aux is the auxiliary used to form perfect tenses.
type Aux string

const (
	AuxHaben  Aux = "haben"
	AuxSein   Aux = "sein"
	AuxWerden Aux = "werden"
)

// ParseAux validates an auxiliary name.
func ParseAux(s string) (Aux, bool) {
	switch a := Aux(strings.ToLower(strings.TrimSpace(s))); a {
	case AuxHaben, AuxSein, AuxWerden:
		return a, true
	}
	return "", false
}

// Table maps a pronoun slot to a surface form.
type Table map[Person]string

// NewTable builds a table from six forms in Persons order.
func NewTable(forms []string) (Table, error) {
	if len(forms) != len(Persons) {
		return nil, fmt.Errorf("want %d forms, got %d", len(Persons), len(forms))
	}
	t := make(Table, len(forms))
	for i, f := range forms {
		t[Persons[i]] = f
	}
	return t, nil
}

func (t Table) clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// mapForms returns a new table with fn applied to every form.
func (t Table) mapForms(fn func(string) string) Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = fn(v)
	}
	return out
}

// Paradigm is the full conjugation of one lemma.
//
// For separable verbs the finite main-clause forms carry the prefix as a
// trailing detached token ("mache auf") and the *Sub tables carry it fused
// in front ("aufmache") for subordinate-clause order.
type Paradigm struct {
	Lemma          string `json:"lemma"`
	Aux            Aux    `json:"aux"`
	Prefix         string `json:"prefix,omitempty"`
	Praesens       Table  `json:"praesens"`
	Praeteritum    Table  `json:"praeteritum"`
	Konjunktiv2    Table  `json:"konjunktiv2,omitempty"`
	Partizip2      string `json:"partizip2"`
	Imperativ      Table  `json:"imperativ"`
	ZuInfinitiv    string `json:"zuInfinitiv"`
	PraesensSub    Table  `json:"praesensSub,omitempty"`
	PraeteritumSub Table  `json:"praeteritumSub,omitempty"`
	Konjunktiv2Sub Table  `json:"konjunktiv2Sub,omitempty"`
}

// Separable reports whether the paradigm belongs to a separable verb.
func (p Paradigm) Separable() bool {
	return p.Prefix != ""
}

// Clone returns a deep copy so callers can never alter shared tables.
func (p Paradigm) Clone() Paradigm {
	p.Praesens = p.Praesens.clone()
	p.Praeteritum = p.Praeteritum.clone()
	p.Konjunktiv2 = p.Konjunktiv2.clone()
	p.Imperativ = p.Imperativ.clone()
	p.PraesensSub = p.PraesensSub.clone()
	p.PraeteritumSub = p.PraeteritumSub.clone()
	p.Konjunktiv2Sub = p.Konjunktiv2Sub.clone()
	return p
}
