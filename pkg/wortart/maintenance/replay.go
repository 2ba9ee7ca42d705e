// Package maintenance re-checks logged classifications after the data
// tables or the user lexicon changed.
package maintenance

import (
	"context"
	"errors"

	"github.com/cognicore/wortart/pkg/wortart/classify"
	"github.com/cognicore/wortart/pkg/wortart/ingest"
	"github.com/cognicore/wortart/pkg/wortart/store"
)

// ClassifyFunc labels token as it appeared in sentence.
type ClassifyFunc func(token, sentence string) classify.Result

// Replayer runs logged classifications through the current classifier.
type Replayer struct {
	Store    store.Store
	Classify ClassifyFunc
}

// Change is a logged classification whose label differs today.
type Change struct {
	Entry store.Classification
	Now   classify.Result
}

// Result summarizes a replay run.
type Result struct {
	Processed int
	Skipped   int // phrase entries, which need the whole sentence
	Changed   []Change
}

// Replay reclassifies the entries selected by q. The history itself is
// left untouched.
func (r *Replayer) Replay(ctx context.Context, q store.HistoryQuery) (Result, error) {
	var res Result
	if r.Store == nil || r.Classify == nil {
		return res, errors.New("replayer: invalid configuration")
	}

	entries, err := r.Store.Classifications(ctx, q)
	if err != nil {
		return res, err
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if e.Rule == ingest.PhraseRule {
			res.Skipped++
			continue
		}
		res.Processed++

		now := r.Classify(e.Token, e.Sentence)
		if now.Type == e.Type && now.Rule == e.Rule {
			continue
		}
		res.Changed = append(res.Changed, Change{Entry: e, Now: now})
	}
	return res, nil
}
