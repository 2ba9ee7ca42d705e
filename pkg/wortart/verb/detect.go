package verb

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/wortart/pkg/wortart/lexicon"
)

// Tense names a paradigm cell family.
type Tense string

const (
	Praesens    Tense = "praesens"
	Praeteritum Tense = "praeteritum"
	Konjunktiv2 Tense = "konjunktiv2"
	Imperativ   Tense = "imperativ"
	Partizip2   Tense = "partizip2"
	Infinitiv   Tense = "infinitiv"
	ZuInfinitiv Tense = "zu-infinitiv"
)

// tenseRank orders forms so finite readings come first.
var tenseRank = map[Tense]int{
	Praesens:    0,
	Praeteritum: 1,
	Konjunktiv2: 2,
	Imperativ:   3,
	Partizip2:   4,
	Infinitiv:   5,
	ZuInfinitiv: 6,
}

// Form is one reading of a surface form.
type Form struct {
	Lemma   string   `json:"lemma"`
	Tense   Tense    `json:"tense"`
	Persons []Person `json:"persons,omitempty"`
	// Sub marks the fused subordinate-clause form of a separable verb.
	Sub bool `json:"sub,omitempty"`
}

// Context is the sentence around the token being detected.
type Context struct {
	Words           []string
	Index           int
	AtSentenceStart bool
}

// Info describes the best reading of a detected form.
type Info struct {
	Lemma      string   `json:"lemma"`
	Tense      Tense    `json:"tense"`
	Persons    []Person `json:"persons,omitempty"`
	Forms      []Form   `json:"forms"`
	Participle bool     `json:"participle"`
	Infinitive bool     `json:"infinitive"`
	Declined   bool     `json:"declined,omitempty"`
	Prefix     string   `json:"prefix,omitempty"`
	Aux        Aux      `json:"aux"`
}

// Role is the syntactic role a participle most likely plays.
type Role string

const (
	RoleVerb      Role = "verb"
	RoleAdjective Role = "adjective"
)

// DetectionContext is what the sentence told us about the form.
type DetectionContext struct {
	LikelyRole     Role   `json:"likelyRole"`
	AuxiliaryFound bool   `json:"auxiliaryFound"`
	NextToken      string `json:"nextToken,omitempty"`
}

// Detection is the result of Detect.
type Detection struct {
	IsVerb     bool             `json:"isVerb"`
	Info       Info             `json:"info"`
	Context    DetectionContext `json:"context"`
	Confidence float64          `json:"confidence"`
}

const (
	confDirect     = 0.9
	confPrefixed   = 0.8
	confFused      = 0.7
	confDeclined   = 0.75
	auxBoost       = 0.05
	maxConfidence  = 0.95
	auxWindow      = 6
	minPrefixedLen = 4
)

// declensionEndings are stripped from adjectival participles, longest first.
var declensionEndings = []string{"en", "er", "es", "em", "e"}

func (e *Engine) buildIndex() {
	e.index = make(map[string][]Form)

	lemmas := make([]string, 0, len(e.irregular)+len(e.regular))
	for l := range e.irregular {
		lemmas = append(lemmas, l)
	}
	sort.Strings(lemmas)
	regular := make([]string, 0, len(e.regular))
	for l := range e.regular {
		if _, dup := e.irregular[l]; !dup {
			regular = append(regular, l)
		}
	}
	sort.Strings(regular)
	lemmas = append(lemmas, regular...)
	listed := make([]string, 0, len(e.inseparableLemmas)+len(e.ambiguousLemmas))
	for _, set := range []map[string]bool{e.inseparableLemmas, e.ambiguousLemmas} {
		for l := range set {
			if !e.knownLemma(l) && !slices.Contains(listed, l) {
				listed = append(listed, l)
			}
		}
	}
	sort.Strings(listed)
	lemmas = append(lemmas, listed...)

	for _, l := range lemmas {
		p := e.BuildParadigm(l)
		e.indexTable(l, Praesens, p.Praesens, false)
		e.indexTable(l, Praeteritum, p.Praeteritum, false)
		e.indexTable(l, Konjunktiv2, p.Konjunktiv2, false)
		e.indexTable(l, Imperativ, p.Imperativ, false)
		e.indexTable(l, Praesens, p.PraesensSub, true)
		e.indexTable(l, Praeteritum, p.PraeteritumSub, true)
		e.indexTable(l, Konjunktiv2, p.Konjunktiv2Sub, true)
		e.addForm(p.Partizip2, Form{Lemma: l, Tense: Partizip2})
		e.addForm(l, Form{Lemma: l, Tense: Infinitiv})
		e.addForm(p.ZuInfinitiv, Form{Lemma: l, Tense: ZuInfinitiv})
	}
}

func (e *Engine) indexTable(lemma string, tense Tense, t Table, sub bool) {
	// group persons sharing a surface form
	byForm := make(map[string][]Person)
	for _, p := range Persons {
		if f, ok := t[p]; ok && f != "" {
			byForm[f] = append(byForm[f], p)
		}
	}
	for f, persons := range byForm {
		e.addForm(f, Form{Lemma: lemma, Tense: tense, Persons: persons, Sub: sub})
	}
}

// addForm indexes single-token forms only.
func (e *Engine) addForm(surface string, f Form) {
	surface = strings.ToLower(surface)
	if surface == "" || strings.ContainsRune(surface, ' ') {
		return
	}
	for _, existing := range e.index[surface] {
		if existing.Lemma == f.Lemma && existing.Tense == f.Tense && existing.Sub == f.Sub {
			return
		}
	}
	e.index[surface] = append(e.index[surface], f)
}

// Detect reports whether word is a known verb form and how it is most
// likely used in ctx. Capitalized tokens that do not open a sentence are
// never verbs (das Essen, die Macht).
func (e *Engine) Detect(word string, ctx Context) (Detection, bool) {
	if !ctx.AtSentenceStart && lexicon.IsCapitalized(lexicon.CleanToken(word)) {
		return Detection{}, false
	}
	w := e.Canonicalize(word)
	if w == "" {
		return Detection{}, false
	}

	forms, prefix, conf, declined := e.lookup(w)
	if len(forms) == 0 {
		return Detection{}, false
	}

	sort.SliceStable(forms, func(i, j int) bool {
		return tenseRank[forms[i].Tense] < tenseRank[forms[j].Tense]
	})
	best := forms[0]

	info := Info{
		Lemma:      best.Lemma,
		Tense:      best.Tense,
		Persons:    best.Persons,
		Forms:      forms,
		Participle: best.Tense == Partizip2,
		Infinitive: best.Tense == Infinitiv || best.Tense == ZuInfinitiv,
		Declined:   declined,
		Prefix:     prefix,
		Aux:        e.auxOf(best.Lemma),
	}
	if info.Prefix == "" {
		if p, _, ok := e.separableCompound(best.Lemma); ok {
			info.Prefix = p
		}
	}

	det := Detection{IsVerb: true, Info: info, Confidence: conf}
	if ctx.Index+1 >= 0 && ctx.Index+1 < len(ctx.Words) {
		det.Context.NextToken = lexicon.Normalize(ctx.Words[ctx.Index+1])
	}

	det.Context.LikelyRole = RoleVerb
	if info.Participle {
		det.Context.LikelyRole = RoleAdjective
		if !declined && e.ctx != nil && e.ctx.AuxiliaryBefore(ctx.Words, ctx.Index, auxWindow) {
			det.Context.LikelyRole = RoleVerb
			det.Context.AuxiliaryFound = true
			det.Confidence = min(det.Confidence+auxBoost, maxConfidence)
		}
	}
	return det, true
}

func (e *Engine) auxOf(lemma string) Aux {
	if p, ok := e.irregular[lemma]; ok {
		return p.Aux
	}
	if a, ok := e.aux[lemma]; ok {
		return a
	}
	if _, root, ok := e.separableCompound(lemma); ok {
		return e.auxOf(root)
	}
	return AuxHaben
}

// lookup finds the readings of a canonical form: direct index hit, then
// detached-prefix forms, then declined participles.
func (e *Engine) lookup(w string) (forms []Form, prefix string, conf float64, declined bool) {
	if fs, ok := e.index[w]; ok {
		return cloneForms(fs), "", confDirect, false
	}
	if fs, p, c := e.lookupPrefixed(w); len(fs) > 0 {
		return fs, p, c, false
	}
	for _, end := range declensionEndings {
		stem, ok := strings.CutSuffix(w, end)
		if !ok || utf8.RuneCountInString(stem) < minPrefixedLen {
			continue
		}
		fs := onlyTense(e.index[stem], Partizip2)
		p := ""
		if len(fs) == 0 {
			var pfs []Form
			pfs, p, _ = e.lookupPrefixed(stem)
			fs = onlyTense(pfs, Partizip2)
		}
		if len(fs) > 0 {
			return fs, p, confDeclined, true
		}
	}
	return nil, "", 0, false
}

// lookupPrefixed handles separable compounds missing from the tables:
// auf+genommen, auf+zu+machen, auf+mache.
func (e *Engine) lookupPrefixed(w string) ([]Form, string, float64) {
	for _, p := range e.detachable {
		rest, ok := strings.CutPrefix(w, p)
		if !ok || utf8.RuneCountInString(rest) < minPrefixedLen {
			continue
		}
		if inf, ok := strings.CutPrefix(rest, "zu"); ok {
			if fs := onlyTense(e.index[inf], Infinitiv); len(fs) > 0 {
				return withPrefix(fs, p, ZuInfinitiv), p, confPrefixed
			}
		}
		fs := e.index[rest]
		if part := onlyTense(fs, Partizip2); len(part) > 0 {
			return withPrefix(part, p, Partizip2), p, confPrefixed
		}
		var fused []Form
		for _, f := range fs {
			switch f.Tense {
			case Praesens, Praeteritum, Konjunktiv2:
				if !f.Sub {
					f.Sub = true
					fused = append(fused, f)
				}
			case Infinitiv:
				fused = append(fused, f)
			}
		}
		if len(fused) > 0 {
			return withPrefix(fused, p, ""), p, confFused
		}
	}
	return nil, "", 0
}

func onlyTense(fs []Form, t Tense) []Form {
	var out []Form
	for _, f := range fs {
		if f.Tense == t {
			out = append(out, f)
		}
	}
	return out
}

// withPrefix rewrites lemmas to the compound; tense "" keeps the original.
func withPrefix(fs []Form, prefix string, t Tense) []Form {
	out := make([]Form, len(fs))
	for i, f := range fs {
		f.Lemma = prefix + f.Lemma
		if t != "" {
			f.Tense = t
		}
		f.Persons = append([]Person(nil), f.Persons...)
		out[i] = f
	}
	return out
}

func cloneForms(fs []Form) []Form {
	out := make([]Form, len(fs))
	for i, f := range fs {
		f.Persons = append([]Person(nil), f.Persons...)
		out[i] = f
	}
	return out
}
