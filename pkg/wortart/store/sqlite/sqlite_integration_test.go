package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cognicore/wortart/pkg/wortart/internalerr"
	"github.com/cognicore/wortart/pkg/wortart/store"
	"github.com/cognicore/wortart/pkg/wortart/wordtype"
)

func openTest(t *testing.T) (store.Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := OpenSQLite(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st, dbPath
}

func TestSQLiteWords(t *testing.T) {
	ctx := context.Background()
	st, _ := openTest(t)

	if err := st.UpsertWord(ctx, store.Word{Word: " Grüezi ", Type: wordtype.Other, Rule: "swiss"}); err != nil {
		t.Fatalf("UpsertWord: %v", err)
	}
	if err := st.UpsertWord(ctx, store.Word{Word: "Bürokratie", Type: wordtype.Noun}); err != nil {
		t.Fatalf("UpsertWord: %v", err)
	}

	w, found, err := st.GetWord(ctx, "GRÜEZI")
	if err != nil {
		t.Fatalf("GetWord: %v", err)
	}
	if !found {
		t.Fatal("Word should be found case-insensitively")
	}
	if w.Word != "grüezi" || w.Type != wordtype.Other || w.Rule != "swiss" {
		t.Errorf("Unexpected word %+v", w)
	}
	if w.AddedAt.IsZero() {
		t.Error("AddedAt should be set")
	}

	// Replace
	if err := st.UpsertWord(ctx, store.Word{Word: "grüezi", Type: wordtype.Adverb}); err != nil {
		t.Fatalf("UpsertWord: %v", err)
	}
	words, err := st.Words(ctx)
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("Expected 2 words, got %d", len(words))
	}
	if words[0].Word != "bürokratie" || words[1].Type != wordtype.Adverb {
		t.Errorf("Expected sorted words with replaced type, got %+v", words)
	}

	if err := st.DeleteWord(ctx, "grüezi"); err != nil {
		t.Fatalf("DeleteWord: %v", err)
	}
	if _, found, _ := st.GetWord(ctx, "grüezi"); found {
		t.Error("Deleted word should be gone")
	}
	if err := st.DeleteWord(ctx, "grüezi"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteWordValidation(t *testing.T) {
	ctx := context.Background()
	st, _ := openTest(t)

	for _, w := range []store.Word{
		{Word: "", Type: wordtype.Noun},
		{Word: "haus", Type: wordtype.Ambiguous},
		{Word: "haus", Type: wordtype.Type(200)},
	} {
		if err := st.UpsertWord(ctx, w); !errors.Is(err, internalerr.ErrInvalidInput) {
			t.Errorf("UpsertWord(%+v): expected ErrInvalidInput, got %v", w, err)
		}
	}
}

func TestSQLiteClassifications(t *testing.T) {
	ctx := context.Background()
	st, _ := openTest(t)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	records := []store.Classification{
		{ID: "01A", Token: "Haus", Type: wordtype.Noun, Rule: "lex-noun", CreatedAt: base},
		{ID: "01B", Token: "schnell", Sentence: "Er läuft schnell.", Type: wordtype.Adjective, Rule: "adjective-engine", Confidence: 1, ResultJSON: `{"type":"adjective"}`, CreatedAt: base.Add(time.Second)},
		{ID: "01C", Token: "haus", Type: wordtype.Noun, Rule: "lex-noun", CreatedAt: base.Add(2 * time.Second)},
	}
	for _, r := range records {
		if err := st.RecordClassification(ctx, r); err != nil {
			t.Fatalf("RecordClassification(%s): %v", r.ID, err)
		}
	}

	all, err := st.Classifications(ctx, store.HistoryQuery{})
	if err != nil {
		t.Fatalf("Classifications: %v", err)
	}
	if len(all) != 3 || all[0].ID != "01C" || all[2].ID != "01A" {
		t.Fatalf("Expected newest first, got %+v", all)
	}
	if all[1].Sentence != "Er läuft schnell." || all[1].Confidence != 1 || all[1].ResultJSON == "" {
		t.Errorf("Fields not round-tripped: %+v", all[1])
	}
	if !all[1].CreatedAt.Equal(base.Add(time.Second)) {
		t.Errorf("Expected created_at %v, got %v", base.Add(time.Second), all[1].CreatedAt)
	}

	haus, err := st.Classifications(ctx, store.HistoryQuery{Token: "HAUS"})
	if err != nil {
		t.Fatalf("Classifications: %v", err)
	}
	if len(haus) != 2 {
		t.Errorf("Expected 2 entries for haus, got %d", len(haus))
	}

	limited, err := st.Classifications(ctx, store.HistoryQuery{Limit: 1})
	if err != nil {
		t.Fatalf("Classifications: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "01C" {
		t.Errorf("Expected only the newest entry, got %+v", limited)
	}

	if err := st.RecordClassification(ctx, records[0]); !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}
	if err := st.RecordClassification(ctx, store.Classification{Token: "x"}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for missing id, got %v", err)
	}
}

func TestSQLitePersistence(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := st.UpsertWord(ctx, store.Word{Word: "moin", Type: wordtype.Other}); err != nil {
		t.Fatalf("UpsertWord: %v", err)
	}
	st.Close()

	st, err = OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	defer st.Close()

	if _, found, err := st.GetWord(ctx, "moin"); err != nil || !found {
		t.Errorf("Word should survive reopen (found=%v, err=%v)", found, err)
	}
}

func TestSQLiteConcurrentRecords(t *testing.T) {
	ctx := context.Background()
	st, _ := openTest(t)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- st.RecordClassification(ctx, store.Classification{
				ID:    fmt.Sprintf("ID%02d", i),
				Token: "wort",
				Type:  wordtype.Noun,
				Rule:  "lex-noun",
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("RecordClassification: %v", err)
		}
	}

	got, err := st.Classifications(ctx, store.HistoryQuery{Token: "wort"})
	if err != nil {
		t.Fatalf("Classifications: %v", err)
	}
	if len(got) != 20 {
		t.Errorf("Expected 20 entries, got %d", len(got))
	}
}
