package htmltext

import (
	"reflect"
	"strings"
	"testing"
)

func TestBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "plain text",
			input: "Der Hund bellt.",
			want:  []string{"Der Hund bellt."},
		},
		{
			name:  "paragraphs",
			input: "<p>Der Hund bellt.</p><p>Die Katze   schläft.</p>",
			want:  []string{"Der Hund bellt.", "Die Katze schläft."},
		},
		{
			name:  "inline markup",
			input: "<p>Das <b>große</b> <i>Haus</i>.</p>",
			want:  []string{"Das große Haus."},
		},
		{
			name:  "script and style skipped",
			input: "<html><head><style>p{}</style></head><body><script>var x;</script><p>Hallo</p></body></html>",
			want:  []string{"Hallo"},
		},
		{
			name:  "line breaks",
			input: "<div>Zeile eins<br>Zeile zwei</div>",
			want:  []string{"Zeile eins", "Zeile zwei"},
		},
		{
			name:  "entities",
			input: "<p>Stra&szlig;e &amp; Weg</p>",
			want:  []string{"Straße & Weg"},
		},
		{
			name:  "empty",
			input: "<div> </div>",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Blocks(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Blocks failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestString(t *testing.T) {
	got, err := String("<h1>Titel</h1><p>Der Text.</p>")
	if err != nil {
		t.Fatalf("String failed: %v", err)
	}
	if want := "Titel\n\nDer Text."; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
