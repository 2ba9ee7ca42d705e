// Package wortart is the entry point for German part-of-speech tagging.
// It wires the lexicon, the verb and adjective engines, the classifier
// and the annotation pipeline, and optionally persists a user lexicon
// and the classification history.
package wortart

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/wortart/pkg/wortart/adjective"
	"github.com/cognicore/wortart/pkg/wortart/classify"
	"github.com/cognicore/wortart/pkg/wortart/config"
	"github.com/cognicore/wortart/pkg/wortart/ingest"
	"github.com/cognicore/wortart/pkg/wortart/internalerr"
	"github.com/cognicore/wortart/pkg/wortart/lexicon"
	"github.com/cognicore/wortart/pkg/wortart/maintenance"
	"github.com/cognicore/wortart/pkg/wortart/store"
	"github.com/cognicore/wortart/pkg/wortart/verb"
)

// UserRule is the Result.Rule of words taken from the user lexicon
// when the entry names no rule of its own.
const UserRule = "user-lexicon"

// Options configures a Wortart instance
type Options struct {
	// Components are the loaded data tables; nil loads the embedded defaults.
	Components *config.Components
	// Store persists the user lexicon and history; nil disables both.
	Store store.Store
	// CacheSize caps the classification cache: 0 selects
	// classify.DefaultCacheSize, a negative value disables caching.
	CacheSize int
	// Features replaces classify.DefaultFeatures when set.
	Features *classify.Features
	// Record logs every classification to the store.
	Record bool
}

// Wortart is the main tagging facade. It is safe for concurrent use.
type Wortart struct {
	// mu guards the lexicon: classification reads it, AddWord writes it.
	mu         sync.RWMutex
	comp       *config.Components
	classifier *classify.Classifier
	tokenizer  *ingest.Tokenizer
	pipeline   *ingest.Pipeline
	cache      *classify.Cache
	store      store.Store
	record     bool

	idMu    sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a Wortart instance. User lexicon entries found in the
// store are merged into the lexicon before the first classification.
func New(ctx context.Context, opts Options) (*Wortart, error) {
	comp := opts.Components
	if comp == nil {
		var err error
		if comp, err = (&config.Loader{}).Load(); err != nil {
			return nil, err
		}
	}

	w := &Wortart{
		comp:    comp,
		store:   opts.Store,
		record:  opts.Record && opts.Store != nil,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}

	if w.store != nil {
		words, err := w.store.Words(ctx)
		if err != nil {
			return nil, fmt.Errorf("load user lexicon: %w", err)
		}
		for _, uw := range words {
			w.applyWord(uw)
		}
	}

	var copts []classify.Option
	if opts.CacheSize >= 0 {
		size := opts.CacheSize
		if size == 0 {
			size = classify.DefaultCacheSize
		}
		w.cache = classify.NewCache(size)
		copts = append(copts, classify.WithCache(w.cache))
	}
	if opts.Features != nil {
		copts = append(copts, classify.WithFeatures(*opts.Features))
	}
	w.classifier = classify.New(comp.Deps(), copts...)
	w.tokenizer = ingest.NewTokenizer(ingest.DefaultAbbreviations)
	w.pipeline = ingest.NewPipeline(w.tokenizer, comp.Phrases, w.classifier)
	return w, nil
}

// Close cleanly shuts down the instance and its store.
func (w *Wortart) Close() error {
	if w.store == nil {
		return nil
	}
	return w.store.Close()
}

// ClassifyWord labels a single token in its sentence context.
// The error is non-nil only when recording to the store fails.
func (w *Wortart) ClassifyWord(ctx context.Context, word string, c classify.Context) (classify.Result, error) {
	w.mu.RLock()
	r := w.classifier.Classify(word, c)
	w.mu.RUnlock()

	if w.record {
		if err := w.recordResult(ctx, word, c.Sentence, r); err != nil {
			return r, err
		}
	}
	return r, nil
}

// ContextFor builds the context of word inside sentence. The word is
// located by its first case-insensitive occurrence; when it does not
// occur, the context carries the sentence without a position.
func (w *Wortart) ContextFor(sentence, word string) classify.Context {
	tokens := w.tokenizer.Tokenize(sentence)
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = lexicon.CleanToken(tok)
	}
	c := classify.Context{Sentence: sentence}
	key := lexicon.Normalize(word)
	for i, cw := range words {
		if lexicon.Fold(cw) == key {
			c.Words = words
			c.Index = i
			c.AtSentenceStart = i == 0
			break
		}
	}
	return c
}

// AnnotateText splits text into sentences and labels every token and
// multi-word phrase.
func (w *Wortart) AnnotateText(ctx context.Context, text string) (ingest.ProcessedText, error) {
	w.mu.RLock()
	out := w.pipeline.Process(text)
	w.mu.RUnlock()

	if w.record {
		for _, s := range out.Sentences {
			for _, tok := range s.Tokens {
				if err := ctx.Err(); err != nil {
					return out, err
				}
				if err := w.recordResult(ctx, tok.Text, s.Text, tok.Result); err != nil {
					return out, err
				}
			}
		}
	}
	return out, nil
}

// AnalyzeAdjective resolves an adjective form to its base and degree.
func (w *Wortart) AnalyzeAdjective(word string) adjective.Analysis {
	return w.comp.Adjectives.Analyze(word)
}

// Paradigm conjugates lemma. Unknown lemmas are conjugated as weak verbs.
func (w *Wortart) Paradigm(lemma string) verb.Paradigm {
	return w.comp.Verbs.BuildParadigm(w.comp.Verbs.Canonicalize(lemma))
}

// AddWord adds a user lexicon entry. It is persisted when a store is
// configured and takes effect immediately; cached results are dropped.
func (w *Wortart) AddWord(ctx context.Context, uw store.Word) (store.Word, error) {
	uw, err := store.ValidateWord(uw)
	if err != nil {
		return store.Word{}, err
	}
	if w.store != nil {
		if err := w.store.UpsertWord(ctx, uw); err != nil {
			return store.Word{}, err
		}
	}

	w.mu.Lock()
	w.applyWord(uw)
	if w.cache != nil {
		w.cache.Purge()
	}
	w.mu.Unlock()
	return uw, nil
}

// Words returns the persisted user lexicon.
func (w *Wortart) Words(ctx context.Context) ([]store.Word, error) {
	if w.store == nil {
		return nil, internalerr.ErrStoreUnavailable
	}
	return w.store.Words(ctx)
}

// History returns logged classifications, newest first.
func (w *Wortart) History(ctx context.Context, q store.HistoryQuery) ([]store.Classification, error) {
	if w.store == nil {
		return nil, internalerr.ErrStoreUnavailable
	}
	return w.store.Classifications(ctx, q)
}

// Replay runs logged classifications through the current tables and
// user lexicon and reports the ones that now get a different label.
func (w *Wortart) Replay(ctx context.Context, q store.HistoryQuery) (maintenance.Result, error) {
	if w.store == nil {
		return maintenance.Result{}, internalerr.ErrStoreUnavailable
	}
	r := &maintenance.Replayer{
		Store: w.store,
		Classify: func(token, sentence string) classify.Result {
			c := w.ContextFor(sentence, token)
			w.mu.RLock()
			defer w.mu.RUnlock()
			return w.classifier.Classify(token, c)
		},
	}
	return r.Replay(ctx, q)
}

// CacheStats reports classification cache usage. It is the zero value
// when caching is disabled.
func (w *Wortart) CacheStats() classify.CacheStats {
	if w.cache == nil {
		return classify.CacheStats{}
	}
	return w.cache.Stats()
}

// Classifier exposes the underlying classifier.
func (w *Wortart) Classifier() *classify.Classifier {
	return w.classifier
}

func (w *Wortart) applyWord(uw store.Word) {
	rule := uw.Rule
	if rule == "" {
		rule = UserRule
	}
	w.comp.Lexicon.AddSpecialCase(uw.Word, lexicon.SpecialCase{Type: uw.Type, Rule: rule})
}

func (w *Wortart) recordResult(ctx context.Context, token, sentence string, r classify.Result) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	err = w.store.RecordClassification(ctx, store.Classification{
		ID:         w.newID(),
		Token:      token,
		Sentence:   sentence,
		Type:       r.Type,
		Rule:       r.Rule,
		Confidence: r.Confidence,
		ResultJSON: string(payload),
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("record classification: %w", err)
	}
	return nil
}

// newID returns a ULID. MonotonicEntropy is not safe for concurrent use.
func (w *Wortart) newID() string {
	w.idMu.Lock()
	defer w.idMu.Unlock()
	return ulid.MustNew(ulid.Now(), w.entropy).String()
}
