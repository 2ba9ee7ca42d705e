package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/wortart/pkg/wortart/classify"
	"github.com/cognicore/wortart/pkg/wortart/store"
	"github.com/cognicore/wortart/pkg/wortart/wordtype"
)

// TestParseFlagsDefaults tests the built-in defaults without environment
func TestParseFlagsDefaults(t *testing.T) {
	o, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if o.json || o.record || o.html {
		t.Errorf("Expected boolean flags off, got %+v", o)
	}
	if o.logLevel != "warn" {
		t.Errorf("Expected log level warn, got %q", o.logLevel)
	}
	if o.dbPath != "" {
		t.Errorf("Expected no database, got %q", o.dbPath)
	}
}

// TestParseFlagsEnvFallback tests that WORTART_* variables fill unset flags
func TestParseFlagsEnvFallback(t *testing.T) {
	t.Setenv("WORTART_DB", "/tmp/env.db")
	t.Setenv("WORTART_LOG_LEVEL", "debug")
	t.Setenv("WORTART_JSON", "true")
	t.Setenv("WORTART_VERBS", "/tmp/verbs.yaml")

	o, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if o.dbPath != "/tmp/env.db" {
		t.Errorf("Expected db from env, got %q", o.dbPath)
	}
	if o.logLevel != "debug" {
		t.Errorf("Expected log level from env, got %q", o.logLevel)
	}
	if !o.json {
		t.Error("Expected json from env")
	}
	if o.loader.VerbsPath != "/tmp/verbs.yaml" {
		t.Errorf("Expected verbs path from env, got %q", o.loader.VerbsPath)
	}

	// explicit flags win
	o, err = parseFlags([]string{"-db", "/tmp/flag.db", "-json=false"})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if o.dbPath != "/tmp/flag.db" || o.json {
		t.Errorf("Expected flags to override env, got db=%q json=%v", o.dbPath, o.json)
	}
}

// TestParseFlagsPositionalText tests that trailing arguments form the text
func TestParseFlagsPositionalText(t *testing.T) {
	o, err := parseFlags([]string{"-json", "Der", "Hund", "bellt."})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if o.text != "Der Hund bellt." {
		t.Errorf("Expected joined text, got %q", o.text)
	}
}

// TestParseFlagsRecordRequiresDB tests that -record without -db is rejected
func TestParseFlagsRecordRequiresDB(t *testing.T) {
	if _, err := parseFlags([]string{"-record"}); err == nil {
		t.Error("parseFlags should fail with -record and no -db")
	}
}

// TestParseFlagsReplayRequiresDB tests that -replay without -db is rejected
func TestParseFlagsReplayRequiresDB(t *testing.T) {
	if _, err := parseFlags([]string{"-replay"}); err == nil {
		t.Error("parseFlags should fail with -replay and no -db")
	}
}

// TestBuildWortartNonExistentLexicon tests that missing data files fail startup
func TestBuildWortartNonExistentLexicon(t *testing.T) {
	o := options{}
	o.loader.LexiconPath = filepath.Join(t.TempDir(), "nonexistent.yaml")

	if _, _, err := buildWortart(context.Background(), o); err == nil {
		t.Error("buildWortart should fail with non-existent lexicon")
	}
}

// TestBuildWortartInvalidDBPath tests that buildWortart fails gracefully with invalid DB path
func TestBuildWortartInvalidDBPath(t *testing.T) {
	o := options{dbPath: "/nonexistent/directory/test.db"}

	if _, _, err := buildWortart(context.Background(), o); err == nil {
		t.Error("buildWortart should fail with invalid DB path")
	}
}

func runCLI(t *testing.T, o options, stdin string) string {
	t.Helper()
	ctx := context.Background()
	w, cleanup, err := buildWortart(ctx, o)
	if err != nil {
		t.Fatalf("buildWortart failed: %v", err)
	}
	defer cleanup()

	var out bytes.Buffer
	if err := run(ctx, w, o, strings.NewReader(stdin), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return out.String()
}

func TestRunWord(t *testing.T) {
	out := runCLI(t, options{word: "Haus"}, "")
	if !strings.HasPrefix(out, "Haus\tnoun\t") {
		t.Errorf("Expected noun line, got %q", out)
	}
}

func TestRunTextFromStdin(t *testing.T) {
	out := runCLI(t, options{}, "Der Hund bellt.")
	if !strings.Contains(out, "# Der Hund bellt.\n") {
		t.Errorf("Expected sentence header, got %q", out)
	}
	if !strings.Contains(out, "Der\tarticle\t") {
		t.Errorf("Expected article line, got %q", out)
	}
}

func TestRunHTMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.html")
	doc := "<html><head><script>var x;</script></head><body><p>Der Hund bellt.</p></body></html>"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("Failed to create html file: %v", err)
	}

	out := runCLI(t, options{file: path, html: true}, "")
	if strings.Contains(out, "var") {
		t.Errorf("Expected script to be skipped, got %q", out)
	}
	if !strings.Contains(out, "Hund\tnoun\t") {
		t.Errorf("Expected noun line, got %q", out)
	}
}

func TestRunJSON(t *testing.T) {
	out := runCLI(t, options{text: "Der Hund bellt.", json: true}, "")

	var decoded struct {
		Sentences []struct {
			Text   string `json:"text"`
			Tokens []struct {
				Text   string `json:"text"`
				Result struct {
					Type string `json:"type"`
				} `json:"result"`
			} `json:"tokens"`
		} `json:"sentences"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got error: %v\noutput: %s", err, out)
	}
	if len(decoded.Sentences) != 1 || len(decoded.Sentences[0].Tokens) != 3 {
		t.Fatalf("Expected 1 sentence with 3 tokens, got %+v", decoded)
	}
	if got := decoded.Sentences[0].Tokens[0].Result.Type; got != "article" {
		t.Errorf("Expected article, got %q", got)
	}
}

func TestRunAdjective(t *testing.T) {
	out := runCLI(t, options{adjective: "größere"}, "")
	if !strings.Contains(out, "base=groß degree=comp") {
		t.Errorf("Expected comparative of groß, got %q", out)
	}
}

func TestRunParadigm(t *testing.T) {
	out := runCLI(t, options{paradigm: "ankommen"}, "")
	if !strings.HasPrefix(out, "ankommen (Perfekt mit sein)") {
		t.Errorf("Expected header with sein, got %q", out)
	}
	if !strings.Contains(out, "Partizip II: angekommen") {
		t.Errorf("Expected participle, got %q", out)
	}
}

// TestRunRecordsHistory tests that -record persists classifications to sqlite
func TestRunRecordsHistory(t *testing.T) {
	ctx := context.Background()
	o := options{
		text:   "Der Hund bellt.",
		record: true,
		dbPath: filepath.Join(t.TempDir(), "wortart.db"),
	}
	w, cleanup, err := buildWortart(ctx, o)
	if err != nil {
		t.Fatalf("buildWortart failed: %v", err)
	}
	defer cleanup()

	var out bytes.Buffer
	if err := run(ctx, w, o, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	history, err := w.History(ctx, store.HistoryQuery{})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 3 {
		t.Errorf("Expected 3 history entries, got %d", len(history))
	}
}

// TestRunReplay tests that -replay reports nothing when the tables did not change
func TestRunReplay(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "wortart.db")
	runCLI(t, options{word: "Haus", record: true, dbPath: dbPath}, "")

	out := runCLI(t, options{replay: true, dbPath: dbPath}, "")
	if !strings.Contains(out, "1 checked, 0 skipped, 0 changed") {
		t.Errorf("Expected replay summary, got %q", out)
	}
}

// TestPrintResultMarksPrimary tests that the acted-on option of an ambiguous result is starred
func TestPrintResultMarksPrimary(t *testing.T) {
	primary := wordtype.Verb
	tests := []struct {
		name string
		r    classify.Result
		want string
	}{
		{"plain", classify.Result{Type: wordtype.Noun, Rule: "lex-noun"}, "Haus\tnoun\tlex-noun\n"},
		{"ambiguous", classify.Result{
			Type:    wordtype.Ambiguous,
			Rule:    "noun-verb-tie",
			Options: []wordtype.Type{wordtype.Noun, wordtype.Verb},
			Primary: &primary,
		}, "Haus\tambiguous\tnoun-verb-tie\t[noun|verb*]\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		printResult(&buf, "Haus", tt.r)
		if got := buf.String(); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}
