package classify

import (
	"github.com/cognicore/wortart/pkg/wortart/adjective"
	"github.com/cognicore/wortart/pkg/wortart/suffix"
	"github.com/cognicore/wortart/pkg/wortart/verb"
	"github.com/cognicore/wortart/pkg/wortart/wordtype"
)

// Result is the classification of one token.
//
// When Type is wordtype.Ambiguous, Options holds at least two candidate
// types and Primary is one of them. Confidence is 0 when the rule does
// not score its result.
type Result struct {
	Type       wordtype.Type       `json:"type"`
	Rule       string              `json:"rule"`
	Confidence float64             `json:"confidence,omitempty"`
	Options    []wordtype.Type     `json:"options,omitempty"`
	Primary    *wordtype.Type      `json:"primary,omitempty"`
	Verb       *verb.Detection     `json:"verb,omitempty"`
	Adjective  *adjective.Analysis `json:"adjective,omitempty"`
	Suffix     *suffix.Match       `json:"suffix,omitempty"`
}

// Effective returns the type to act on: the primary option of an
// ambiguous result, the type otherwise.
func (r Result) Effective() wordtype.Type {
	if r.Type == wordtype.Ambiguous && r.Primary != nil {
		return *r.Primary
	}
	return r.Type
}

func ambiguous(rule string, conf float64, primary wordtype.Type, options ...wordtype.Type) Result {
	return Result{
		Type:       wordtype.Ambiguous,
		Rule:       rule,
		Confidence: conf,
		Options:    options,
		Primary:    &primary,
	}
}
