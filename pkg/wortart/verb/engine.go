package verb

import (
	"strings"
)

// Tables is the static data the engine is built from.
type Tables struct {
	Irregular           []Paradigm
	Regular             []string
	SeparablePrefixes   []string
	InseparablePrefixes []string
	// TwoWayPrefixes (über, um, unter, wieder) are separable unless the
	// lemma is listed in InseparableLemmas or AmbiguousLemmas.
	TwoWayPrefixes []string
	// InseparableLemmas use a two-way or separable prefix inseparably
	// (unterhalten, wiederholen).
	InseparableLemmas []string
	// AmbiguousLemmas have both readings; the engine picks the inseparable one.
	AmbiguousLemmas []string
	// Auxiliaries overrides the perfect auxiliary per lemma.
	Auxiliaries map[string]Aux
	// Truncations maps colloquial clipped forms to full forms (hab → habe).
	Truncations map[string]string
}

// ContextLexicon answers the sentence-context questions Detect asks.
type ContextLexicon interface {
	AuxiliaryBefore(words []string, index, window int) bool
	ArticleBefore(words []string, index, n int) bool
}

// Engine builds paradigms and recognizes verb forms.
// It is immutable after New and safe for concurrent use.
type Engine struct {
	irregular         map[string]Paradigm
	regular           map[string]bool
	separable         prefixSet
	twoWay            prefixSet
	detachable        prefixSet
	inseparable       prefixSet
	inseparableLemmas map[string]bool
	ambiguousLemmas   map[string]bool
	aux               map[string]Aux
	truncations       map[string]string
	ctx               ContextLexicon

	index map[string][]Form
}

// New builds an engine and its reverse form index. ctx may be nil, in
// which case no auxiliary context is ever found.
func New(t Tables, ctx ContextLexicon) *Engine {
	e := &Engine{
		irregular:         make(map[string]Paradigm, len(t.Irregular)),
		regular:           make(map[string]bool, len(t.Regular)),
		separable:         newPrefixSet(t.SeparablePrefixes),
		twoWay:            newPrefixSet(t.TwoWayPrefixes),
		detachable:        newPrefixSet(append(append([]string(nil), t.SeparablePrefixes...), t.TwoWayPrefixes...)),
		inseparable:       newPrefixSet(t.InseparablePrefixes),
		inseparableLemmas: toSet(t.InseparableLemmas),
		ambiguousLemmas:   toSet(t.AmbiguousLemmas),
		aux:               make(map[string]Aux, len(t.Auxiliaries)),
		truncations:       make(map[string]string, len(t.Truncations)),
		ctx:               ctx,
	}
	for _, p := range t.Irregular {
		lemma := strings.ToLower(strings.TrimSpace(p.Lemma))
		if lemma == "" {
			continue
		}
		p = p.Clone()
		p.Lemma = lemma
		if p.Aux == "" {
			p.Aux = AuxHaben
		}
		if p.ZuInfinitiv == "" {
			p.ZuInfinitiv = "zu " + lemma
		}
		e.irregular[lemma] = p
	}
	for _, l := range t.Regular {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" {
			e.regular[l] = true
		}
	}
	for k, v := range t.Auxiliaries {
		e.aux[strings.ToLower(k)] = v
	}
	for k, v := range t.Truncations {
		e.truncations[strings.ToLower(k)] = strings.ToLower(v)
	}
	e.buildIndex()
	return e
}

func toSet(words []string) map[string]bool {
	out := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out[w] = true
		}
	}
	return out
}

func (e *Engine) knownLemma(lemma string) bool {
	_, irr := e.irregular[lemma]
	return irr || e.regular[lemma]
}

// Known reports whether lemma is in the irregular or regular tables.
func (e *Engine) Known(lemma string) bool {
	return e.knownLemma(strings.ToLower(lemma))
}

// auxFor returns the override for lemma, else fallback.
func (e *Engine) auxFor(lemma string, fallback Aux) Aux {
	if a, ok := e.aux[lemma]; ok {
		return a
	}
	if fallback == "" {
		return AuxHaben
	}
	return fallback
}

// BuildRegular conjugates lemma as a weak verb.
func (e *Engine) BuildRegular(lemma string) Paradigm {
	lemma = strings.ToLower(strings.TrimSpace(lemma))
	_, _, insep := e.inseparablePrefix(lemma)
	p := buildRegular(lemma, insep)
	p.Aux = e.auxFor(lemma, AuxHaben)
	return p
}

// BuildParadigm returns the full paradigm of lemma. Unknown lemmas are
// conjugated as weak verbs. The result never shares maps with the tables.
func (e *Engine) BuildParadigm(lemma string) Paradigm {
	lemma = strings.ToLower(strings.TrimSpace(lemma))
	if p, ok := e.irregular[lemma]; ok {
		return p.Clone()
	}
	if prefix, root, ok := e.separableCompound(lemma); ok {
		return e.composeSeparable(lemma, prefix, e.rootParadigm(root))
	}
	if prefix, root, ok := e.inseparablePrefix(lemma); ok {
		if rp, irr := e.irregular[root]; irr {
			return e.composeInseparable(lemma, prefix, rp)
		}
	}
	return e.BuildRegular(lemma)
}

// rootParadigm conjugates the base of a separable verb: irregular table
// first, then inseparable derivation, else weak.
func (e *Engine) rootParadigm(root string) Paradigm {
	if p, ok := e.irregular[root]; ok {
		return p.Clone()
	}
	if prefix, inner, ok := e.inseparablePrefix(root); ok {
		if rp, irr := e.irregular[inner]; irr {
			return e.composeInseparable(root, prefix, rp)
		}
	}
	return e.BuildRegular(root)
}

func (e *Engine) composeSeparable(lemma, prefix string, root Paradigm) Paradigm {
	detach := func(f string) string {
		if f == "" {
			return ""
		}
		return f + " " + prefix
	}
	fuse := func(f string) string {
		if f == "" {
			return ""
		}
		return prefix + f
	}
	return Paradigm{
		Lemma:          lemma,
		Aux:            e.auxFor(lemma, root.Aux),
		Prefix:         prefix,
		Praesens:       root.Praesens.mapForms(detach),
		Praeteritum:    root.Praeteritum.mapForms(detach),
		Konjunktiv2:    root.Konjunktiv2.mapForms(detach),
		Partizip2:      fuse(root.Partizip2),
		Imperativ:      root.Imperativ.mapForms(detach), // machen Sie → machen Sie auf
		ZuInfinitiv:    prefix + "zu" + root.Lemma,
		PraesensSub:    root.Praesens.mapForms(fuse),
		PraeteritumSub: root.Praeteritum.mapForms(fuse),
		Konjunktiv2Sub: root.Konjunktiv2.mapForms(fuse),
	}
}

// composeInseparable fuses an inseparable prefix onto an irregular root
// (ver+stehen → versteht, verstanden).
func (e *Engine) composeInseparable(lemma, prefix string, root Paradigm) Paradigm {
	fuse := func(f string) string {
		if f == "" {
			return ""
		}
		return prefix + f
	}
	return Paradigm{
		Lemma:       lemma,
		Aux:         e.auxFor(lemma, AuxHaben),
		Praesens:    root.Praesens.mapForms(fuse),
		Praeteritum: root.Praeteritum.mapForms(fuse),
		Konjunktiv2: root.Konjunktiv2.mapForms(fuse),
		Partizip2:   prefix + strings.TrimPrefix(root.Partizip2, "ge"),
		Imperativ:   root.Imperativ.mapForms(fuse),
		ZuInfinitiv: "zu " + lemma,
	}
}
