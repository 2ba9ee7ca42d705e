package verb

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// minRootRunes is the shortest root accepted after a prefix split.
// Shorter remainders (an+tun is fine, be+ten is not) are rejected.
const minRootRunes = 4

// prefixSet holds prefixes sorted longest first.
type prefixSet []string

func newPrefixSet(prefixes []string) prefixSet {
	out := make(prefixSet, 0, len(prefixes))
	seen := make(map[string]bool, len(prefixes))
	for _, p := range prefixes {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) > utf8.RuneCountInString(out[j])
	})
	return out
}

// split returns the longest prefix whose remainder looks like an
// infinitive of at least minRootRunes runes.
func (ps prefixSet) split(lemma string) (prefix, root string, ok bool) {
	for _, p := range ps {
		if !strings.HasPrefix(lemma, p) {
			continue
		}
		rest := lemma[len(p):]
		if utf8.RuneCountInString(rest) < minRootRunes {
			continue
		}
		if !strings.HasSuffix(rest, "en") && !strings.HasSuffix(rest, "n") {
			continue
		}
		return p, rest, true
	}
	return "", "", false
}

// SplitSeparable splits a separable verb into prefix and root.
// Lemmas in the inseparable or ambiguous sets are never split; ambiguous
// lemmas (übersetzen, umfahren) default to the inseparable reading.
// Other lemmas treat two-way prefixes as separable (umziehen → zieht um).
func (e *Engine) SplitSeparable(lemma string) (prefix, root string, ok bool) {
	if e.listed(lemma) {
		return "", "", false
	}
	return e.detachable.split(lemma)
}

func (e *Engine) listed(lemma string) bool {
	return e.inseparableLemmas[lemma] || e.ambiguousLemmas[lemma]
}

// inseparablePrefix returns the inseparable prefix of lemma, if any.
// Listed lemmas split on their own prefix, whichever set it comes from
// (über-nehmen, unter-halten, hinter-lassen).
func (e *Engine) inseparablePrefix(lemma string) (prefix, root string, ok bool) {
	if e.listed(lemma) {
		for _, ps := range []prefixSet{e.twoWay, e.inseparable, e.separable} {
			if p, r, ok := ps.split(lemma); ok {
				return p, r, true
			}
		}
		return "", "", false
	}
	return e.inseparable.split(lemma)
}

// separableCompound is SplitSeparable plus a sanity check: a lemma listed
// as a verb in its own right whose root is unknown (antworten → tworten)
// is treated as simple.
func (e *Engine) separableCompound(lemma string) (prefix, root string, ok bool) {
	prefix, root, ok = e.SplitSeparable(lemma)
	if !ok {
		return "", "", false
	}
	if !e.knownLemma(root) && e.regular[lemma] {
		return "", "", false
	}
	return prefix, root, true
}
