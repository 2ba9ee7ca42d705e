package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/wortart/pkg/wortart/internalerr"
	"github.com/cognicore/wortart/pkg/wortart/store"
)

// Store is an in-memory implementation of store.Store for tests and
// single-process use.
type Store struct {
	mu      sync.RWMutex
	words   map[string]store.Word
	history []store.Classification // insertion order
	ids     map[string]struct{}
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		words: make(map[string]store.Word),
		ids:   make(map[string]struct{}),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertWord inserts or replaces a lexicon entry.
func (s *Store) UpsertWord(ctx context.Context, w store.Word) error {
	w, err := store.ValidateWord(w)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words[w.Word] = w
	return nil
}

// GetWord returns the entry for word.
func (s *Store) GetWord(ctx context.Context, word string) (store.Word, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.words[store.NormalizeWord(word)]
	return w, ok, nil
}

// DeleteWord removes the entry for word.
func (s *Store) DeleteWord(ctx context.Context, word string) error {
	key := store.NormalizeWord(word)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.words[key]; !ok {
		return fmt.Errorf("word %q: %w", key, internalerr.ErrNotFound)
	}
	delete(s.words, key)
	return nil
}

// Words returns all entries sorted by word.
func (s *Store) Words(ctx context.Context) ([]store.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.Word, 0, len(s.words))
	for _, w := range s.words {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out, nil
}

// RecordClassification appends c to the history.
func (s *Store) RecordClassification(ctx context.Context, c store.Classification) error {
	if err := store.ValidateClassification(c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.ids[c.ID]; dup {
		return fmt.Errorf("classification %s: %w", c.ID, internalerr.ErrDuplicate)
	}
	s.ids[c.ID] = struct{}{}
	s.history = append(s.history, c)
	return nil
}

// Classifications returns matching history entries, newest first.
func (s *Store) Classifications(ctx context.Context, q store.HistoryQuery) ([]store.Classification, error) {
	token := store.NormalizeWord(q.Token)
	limit := q.EffectiveLimit()

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []store.Classification
	for i := len(s.history) - 1; i >= 0 && len(out) < limit; i-- {
		c := s.history[i]
		if token != "" && store.NormalizeWord(c.Token) != token {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
