package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cognicore/wortart/pkg/wortart/internalerr"
	"github.com/cognicore/wortart/pkg/wortart/lexicon"
	"github.com/cognicore/wortart/pkg/wortart/wordtype"
)

// Store is the interface for persisting user lexicon entries and the
// classification history.
type Store interface {
	Close() error

	// User lexicon overlay
	UpsertWord(ctx context.Context, w Word) error
	GetWord(ctx context.Context, word string) (Word, bool, error)
	DeleteWord(ctx context.Context, word string) error
	Words(ctx context.Context) ([]Word, error)

	// Classification history
	RecordClassification(ctx context.Context, c Classification) error
	Classifications(ctx context.Context, q HistoryQuery) ([]Classification, error)
}

// Word is a user-defined lexicon entry. It is registered as a special
// case, so it wins over every rule except the foreign and number stages.
type Word struct {
	Word    string
	Type    wordtype.Type
	Rule    string // optional; "user-lexicon" when empty
	AddedAt time.Time
}

// Classification is one logged classification.
type Classification struct {
	ID         string // ULID, sortable by creation time
	Token      string
	Sentence   string
	Type       wordtype.Type
	Rule       string
	Confidence float64
	ResultJSON string // full result as returned to the caller
	CreatedAt  time.Time
}

// HistoryQuery filters Classifications. Results are newest first.
type HistoryQuery struct {
	Token string // folded before matching; empty matches all
	Limit int    // <= 0 means DefaultHistoryLimit
}

// DefaultHistoryLimit caps history queries without an explicit limit.
const DefaultHistoryLimit = 100

// NormalizeWord returns the storage key for a lexicon word.
func NormalizeWord(word string) string {
	return lexicon.Fold(strings.TrimSpace(word))
}

// ValidateWord normalizes w and checks it can be stored.
func ValidateWord(w Word) (Word, error) {
	w.Word = NormalizeWord(w.Word)
	if w.Word == "" {
		return Word{}, fmt.Errorf("empty word: %w", internalerr.ErrInvalidInput)
	}
	if !w.Type.Valid() || w.Type == wordtype.Ambiguous {
		return Word{}, fmt.Errorf("word %q: type %v: %w", w.Word, w.Type, internalerr.ErrInvalidInput)
	}
	if w.AddedAt.IsZero() {
		w.AddedAt = time.Now().UTC()
	}
	return w, nil
}

// ValidateClassification checks c can be stored.
func ValidateClassification(c Classification) error {
	if c.ID == "" {
		return fmt.Errorf("classification without id: %w", internalerr.ErrInvalidInput)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("classification %s: type %v: %w", c.ID, c.Type, internalerr.ErrInvalidInput)
	}
	return nil
}

// EffectiveLimit returns the limit backends apply.
func (q HistoryQuery) EffectiveLimit() int {
	if q.Limit <= 0 {
		return DefaultHistoryLimit
	}
	return q.Limit
}
