package verb

import (
	"strings"

	"github.com/cognicore/wortart/pkg/wortart/lexicon"
)

// Canonicalize reduces a raw token to the key used for form lookup:
// edge punctuation stripped, NFC lowercased, a clitic 's removed
// (geht's → geht), colloquial truncations expanded (hab → habe) and
// hyphenated compounds cut to their first segment.
func (e *Engine) Canonicalize(word string) string {
	w := lexicon.Normalize(word)
	for _, clitic := range []string{"'s", "’s"} {
		if strings.HasSuffix(w, clitic) && len(w) > len(clitic) {
			w = strings.TrimSuffix(w, clitic)
			break
		}
	}
	if full, ok := e.truncations[w]; ok {
		w = full
	}
	if i := strings.IndexByte(w, '-'); i > 0 {
		w = w[:i]
	}
	return w
}
