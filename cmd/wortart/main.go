// Command wortart classifies German words and texts from the command line.
//
// Usage:
//
//	wortart -word laufen
//	wortart -word aufgenommen -sentence "Er wurde in den Verein aufgenommen."
//	wortart -text "Der Hund bellt."
//	wortart -file artikel.html -html -json
//	wortart -adjective schönsten
//	wortart -paradigm aufmachen
//	wortart -db wortart.db -replay
//
// Without -word, -text, -file, -adjective or -paradigm the text is read
// from stdin.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cognicore/wortart/internal/htmltext"
	"github.com/cognicore/wortart/internal/logging"
	"github.com/cognicore/wortart/pkg/wortart"
	"github.com/cognicore/wortart/pkg/wortart/classify"
	"github.com/cognicore/wortart/pkg/wortart/config"
	"github.com/cognicore/wortart/pkg/wortart/ingest"
	"github.com/cognicore/wortart/pkg/wortart/store"
	"github.com/cognicore/wortart/pkg/wortart/store/sqlite"
	"github.com/cognicore/wortart/pkg/wortart/verb"
)

// replayLimit bounds the history checked by -replay.
const replayLimit = 10000

type options struct {
	word      string
	sentence  string
	text      string
	file      string
	adjective string
	paradigm  string
	replay    bool
	html      bool
	json      bool
	record    bool
	dbPath    string
	logLevel  string
	cacheSize int
	loader    config.Loader
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logging.Init(opts.json, logging.ParseLevel(opts.logLevel))

	ctx := context.Background()
	w, cleanup, err := buildWortart(ctx, opts)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := run(ctx, w, opts, os.Stdin, os.Stdout); err != nil {
		slog.Error("run failed", "error", err)
		cleanup()
		os.Exit(1)
	}
}

// parseFlags reads args. Every flag without a value on the command line
// falls back to its WORTART_* environment variable.
func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("wortart", flag.ContinueOnError)
	fs.StringVar(&o.word, "word", "", "Classify a single word")
	fs.StringVar(&o.sentence, "sentence", "", "Sentence context for -word")
	fs.StringVar(&o.text, "text", "", "Annotate a text")
	fs.StringVar(&o.file, "file", "", "Annotate the contents of a file")
	fs.StringVar(&o.adjective, "adjective", "", "Analyze an adjective form")
	fs.StringVar(&o.paradigm, "paradigm", "", "Print the conjugation of a verb")
	fs.BoolVar(&o.replay, "replay", false, "Reclassify the logged history and list changed labels (requires -db)")
	fs.BoolVar(&o.html, "html", false, "Input is HTML")
	fs.BoolVar(&o.json, "json", getenvBool("WORTART_JSON", false), "JSON output")
	fs.BoolVar(&o.record, "record", getenvBool("WORTART_RECORD", false), "Log classifications to the database (requires -db)")
	fs.StringVar(&o.dbPath, "db", getenv("WORTART_DB", ""), "SQLite database for the user lexicon and history")
	fs.StringVar(&o.logLevel, "log-level", getenv("WORTART_LOG_LEVEL", "warn"), "Log level (debug, info, warn, error)")
	fs.IntVar(&o.cacheSize, "cache", 0, "Classification cache size (0 = default, -1 = off)")
	fs.StringVar(&o.loader.LexiconPath, "lexicon", getenv("WORTART_LEXICON", ""), "Lexicon YAML (default: built-in)")
	fs.StringVar(&o.loader.VerbsPath, "verbs", getenv("WORTART_VERBS", ""), "Verb tables YAML (default: built-in)")
	fs.StringVar(&o.loader.AdjectivesPath, "adjectives", getenv("WORTART_ADJECTIVES", ""), "Adjective tables YAML (default: built-in)")
	fs.StringVar(&o.loader.PhrasesPath, "phrases", getenv("WORTART_PHRASES", ""), "Phrase list YAML (default: built-in)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 && o.text == "" {
		o.text = strings.Join(fs.Args(), " ")
	}
	if o.record && o.dbPath == "" {
		return options{}, errors.New("-record requires -db")
	}
	if o.replay && o.dbPath == "" {
		return options{}, errors.New("-replay requires -db")
	}
	return o, nil
}

func buildWortart(ctx context.Context, o options) (*wortart.Wortart, func(), error) {
	comp, err := o.loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	var st store.Store
	if o.dbPath != "" {
		st, err = sqlite.OpenSQLite(ctx, o.dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
	}

	w, err := wortart.New(ctx, wortart.Options{
		Components: comp,
		Store:      st,
		CacheSize:  o.cacheSize,
		Record:     o.record,
	})
	if err != nil {
		if st != nil {
			st.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		w.Close()
	}
	return w, cleanup, nil
}

func run(ctx context.Context, w *wortart.Wortart, o options, stdin io.Reader, stdout io.Writer) error {
	switch {
	case o.word != "":
		var c classify.Context
		if o.sentence != "" {
			c = w.ContextFor(o.sentence, o.word)
		}
		r, err := w.ClassifyWord(ctx, o.word, c)
		if err != nil {
			return err
		}
		return output(stdout, o.json, r, func() { printResult(stdout, o.word, r) })
	case o.adjective != "":
		a := w.AnalyzeAdjective(o.adjective)
		return output(stdout, o.json, a, func() {
			if !a.Resolved() {
				fmt.Fprintf(stdout, "%s: not an adjective form\n", o.adjective)
				return
			}
			fmt.Fprintf(stdout, "%s: base=%s degree=%s ending=%q method=%s\n", a.Input, a.Base, a.Degree, a.Form.Ending, a.Method)
		})
	case o.paradigm != "":
		p := w.Paradigm(o.paradigm)
		return output(stdout, o.json, p, func() { printParadigm(stdout, p) })
	case o.replay:
		res, err := w.Replay(ctx, store.HistoryQuery{Limit: replayLimit})
		if err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		return output(stdout, o.json, res, func() {
			for _, c := range res.Changed {
				fmt.Fprintf(stdout, "%s\t%s/%s -> %s/%s\n", c.Entry.Token, c.Entry.Type, c.Entry.Rule, c.Now.Type, c.Now.Rule)
			}
			fmt.Fprintf(stdout, "%d checked, %d skipped, %d changed\n", res.Processed, res.Skipped, len(res.Changed))
		})
	}

	text, err := readInput(o, stdin)
	if err != nil {
		return err
	}
	processed, err := w.AnnotateText(ctx, text)
	if err != nil {
		return fmt.Errorf("annotate: %w", err)
	}
	return output(stdout, o.json, processed, func() { printProcessed(stdout, processed) })
}

func readInput(o options, stdin io.Reader) (string, error) {
	var r io.Reader
	switch {
	case o.text != "":
		r = strings.NewReader(o.text)
	case o.file != "":
		f, err := os.Open(o.file)
		if err != nil {
			return "", fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	default:
		r = stdin
	}

	if o.html {
		text, err := htmltext.Text(r)
		if err != nil {
			return "", fmt.Errorf("parse html: %w", err)
		}
		return text, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func output(w io.Writer, asJSON bool, v any, text func()) error {
	if !asJSON {
		text()
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(w io.Writer, token string, r classify.Result) {
	fmt.Fprintf(w, "%s\t%s\t%s", token, r.Type, r.Rule)
	if len(r.Options) > 0 {
		opts := make([]string, len(r.Options))
		for i, o := range r.Options {
			opts[i] = o.String()
			if o == r.Effective() {
				opts[i] += "*"
			}
		}
		fmt.Fprintf(w, "\t[%s]", strings.Join(opts, "|"))
	}
	fmt.Fprintln(w)
}

func printProcessed(w io.Writer, p ingest.ProcessedText) {
	for i, s := range p.Sentences {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "# %s\n", s.Text)
		for _, tok := range s.Tokens {
			printResult(w, tok.Text, tok.Result)
		}
	}
}

func printParadigm(w io.Writer, p verb.Paradigm) {
	fmt.Fprintf(w, "%s (Perfekt mit %s)\n", p.Lemma, p.Aux)
	tables := []struct {
		name  string
		table verb.Table
	}{
		{"Präsens", p.Praesens},
		{"Präteritum", p.Praeteritum},
		{"Konjunktiv II", p.Konjunktiv2},
	}
	for _, t := range tables {
		if len(t.table) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", t.name)
		for _, person := range verb.Persons {
			fmt.Fprintf(w, "  %-10s %s\n", person, t.table[person])
		}
	}
	fmt.Fprintf(w, "\nPartizip II: %s\nzu-Infinitiv: %s\n", p.Partizip2, p.ZuInfinitiv)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
