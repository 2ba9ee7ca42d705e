package ingest

import (
	"reflect"
	"testing"
)

func TestTokenizerTokenize(t *testing.T) {
	tok := NewTokenizer(nil)

	got := tok.Tokenize(`Er sagt – „Hallo“, und geht.`)
	want := []string{"Er", "sagt", "„Hallo“,", "und", "geht."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestTokenizerSentences(t *testing.T) {
	tok := NewTokenizer(DefaultAbbreviations)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "Der Hund schläft. Die Katze spielt!", []string{"Der Hund schläft.", "Die Katze spielt!"}},
		{"abbreviation", "Obst, z.B. Äpfel, ist gesund. Ja?", []string{"Obst, z.B. Äpfel, ist gesund.", "Ja?"}},
		{"ordinal", "Am 3. Mai kam er. Gut.", []string{"Am 3. Mai kam er.", "Gut."}},
		{"closing quote", `„Komm!“ rief sie. Er kam.`, []string{`„Komm!“`, "rief sie.", "Er kam."}},
		{"no terminator", "ohne Punkt am Ende", []string{"ohne Punkt am Ende"}},
		{"lone punctuation", "Wirklich ? Ja", []string{"Wirklich", "Ja"}},
		{"empty", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, s := range tok.Sentences(tt.text) {
				got = append(got, s.Text)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTokenizerWords(t *testing.T) {
	tok := NewTokenizer(nil)
	s := tok.Sentences("„Hallo“, sagte er.")

	if len(s) != 1 {
		t.Fatalf("Expected 1 sentence, got %d", len(s))
	}
	want := []string{"Hallo", "sagte", "er"}
	if !reflect.DeepEqual(s[0].Words, want) {
		t.Errorf("Expected words %v, got %v", want, s[0].Words)
	}
	if len(s[0].Tokens) != len(s[0].Words) {
		t.Errorf("Tokens and Words should align, got %d and %d", len(s[0].Tokens), len(s[0].Words))
	}
}

func TestTokenizerAddAbbreviation(t *testing.T) {
	tok := NewTokenizer(nil)
	if n := len(tok.Sentences("Das kostet ca. zehn Euro.")); n != 2 {
		t.Fatalf("Expected 2 sentences without abbreviation, got %d", n)
	}
	tok.AddAbbreviation("ca.")
	if n := len(tok.Sentences("Das kostet ca. zehn Euro.")); n != 1 {
		t.Errorf("Expected 1 sentence with abbreviation, got %d", n)
	}
}
