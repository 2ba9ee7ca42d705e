package verb

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func mustTable(t *testing.T, forms ...string) Table {
	t.Helper()
	tab, err := NewTable(forms)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return tab
}

type auxLexicon map[string]bool

func (a auxLexicon) AuxiliaryBefore(words []string, index, window int) bool {
	for i := index - 1; i >= 0 && index-i <= window; i-- {
		if a[strings.ToLower(words[i])] {
			return true
		}
	}
	return false
}

func (a auxLexicon) ArticleBefore(words []string, index, n int) bool {
	return false
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	tables := Tables{
		Irregular: []Paradigm{
			{
				Lemma:       "nehmen",
				Praesens:    mustTable(t, "nehme", "nimmst", "nimmt", "nehmen", "nehmt", "nehmen"),
				Praeteritum: mustTable(t, "nahm", "nahmst", "nahm", "nahmen", "nahmt", "nahmen"),
				Konjunktiv2: mustTable(t, "nähme", "nähmest", "nähme", "nähmen", "nähmet", "nähmen"),
				Partizip2:   "genommen",
				Imperativ:   Table{Du: "nimm", Ihr: "nehmt", Sie: "nehmen Sie"},
			},
			{
				Lemma:       "kommen",
				Aux:         AuxSein,
				Praesens:    mustTable(t, "komme", "kommst", "kommt", "kommen", "kommt", "kommen"),
				Praeteritum: mustTable(t, "kam", "kamst", "kam", "kamen", "kamt", "kamen"),
				Konjunktiv2: mustTable(t, "käme", "kämest", "käme", "kämen", "kämet", "kämen"),
				Partizip2:   "gekommen",
				Imperativ:   Table{Du: "komm", Ihr: "kommt", Sie: "kommen Sie"},
			},
			{
				Lemma:       "stehen",
				Praesens:    mustTable(t, "stehe", "stehst", "steht", "stehen", "steht", "stehen"),
				Praeteritum: mustTable(t, "stand", "standest", "stand", "standen", "standet", "standen"),
				Konjunktiv2: mustTable(t, "stünde", "stündest", "stünde", "stünden", "stündet", "stünden"),
				Partizip2:   "gestanden",
				Imperativ:   Table{Du: "steh", Ihr: "steht", Sie: "stehen Sie"},
			},
		},
		Regular:             []string{"machen", "aufmachen", "arbeiten", "antworten", "besuchen", "studieren"},
		SeparablePrefixes:   []string{"an", "auf", "ab", "mit", "zu", "vor"},
		InseparablePrefixes: []string{"be", "ver", "er", "ent", "zer", "ge", "miss"},
		TwoWayPrefixes:      []string{"über", "um", "unter"},
		InseparableLemmas:   []string{"unterhalten", "übernehmen"},
		AmbiguousLemmas:     []string{"übersetzen", "umfahren"},
		Auxiliaries:         map[string]Aux{"ankommen": AuxSein},
		Truncations:         map[string]string{"hab": "habe", "hätt": "hätte"},
	}
	return New(tables, auxLexicon{"habe": true, "hat": true, "wurde": true, "ist": true})
}

func TestBuildRegularMachen(t *testing.T) {
	e := testEngine(t)
	p := e.BuildParadigm("machen")

	want := Table{Ich: "mache", Du: "machst", Er: "macht", Wir: "machen", Ihr: "macht", Sie: "machen"}
	if !reflect.DeepEqual(p.Praesens, want) {
		t.Errorf("Expected %v, got %v", want, p.Praesens)
	}
	if p.Praeteritum[Wir] != "machten" {
		t.Errorf("Expected machten, got %q", p.Praeteritum[Wir])
	}
	if !reflect.DeepEqual(p.Konjunktiv2, p.Praeteritum) {
		t.Errorf("Weak Konjunktiv II should equal Präteritum, got %v", p.Konjunktiv2)
	}
	if p.Partizip2 != "gemacht" {
		t.Errorf("Expected gemacht, got %q", p.Partizip2)
	}
	if p.Imperativ[Du] != "mach" || p.Imperativ[Sie] != "machen Sie" {
		t.Errorf("Unexpected imperative %v", p.Imperativ)
	}
	if p.ZuInfinitiv != "zu machen" || p.Aux != AuxHaben {
		t.Errorf("Unexpected zu-infinitive %q / aux %q", p.ZuInfinitiv, p.Aux)
	}
}

func TestBuildRegularEpenthesis(t *testing.T) {
	e := testEngine(t)
	tests := []struct {
		lemma  string
		person Person
		want   string
	}{
		{"arbeiten", Er, "arbeitet"},
		{"arbeiten", Du, "arbeitest"},
		{"baden", Er, "badet"},
		{"atmen", Er, "atmet"},
		{"öffnen", Ihr, "öffnet"},
		{"rechnen", Er, "rechnet"},
		{"wohnen", Er, "wohnt"},
		{"lernen", Er, "lernt"},
		{"reisen", Du, "reist"},
		{"tanzen", Du, "tanzt"},
		{"lächeln", Ich, "lächle"},
		{"lächeln", Er, "lächelt"},
		{"wandern", Ich, "wandere"},
		{"wandern", Wir, "wandern"},
	}
	for _, tt := range tests {
		p := e.BuildRegular(tt.lemma)
		if got := p.Praesens[tt.person]; got != tt.want {
			t.Errorf("%s %s: expected %q, got %q", tt.lemma, tt.person, tt.want, got)
		}
	}
}

func TestParticiplePrefixRules(t *testing.T) {
	e := testEngine(t)
	tests := map[string]string{
		"arbeiten":   "gearbeitet",
		"studieren":  "studiert",
		"besuchen":   "besucht",
		"übersetzen": "übersetzt",
		"reisen":     "gereist",
	}
	for lemma, want := range tests {
		if got := e.BuildParadigm(lemma).Partizip2; got != want {
			t.Errorf("%s: expected %q, got %q", lemma, want, got)
		}
	}
}

func TestSeparableAufmachen(t *testing.T) {
	e := testEngine(t)
	p := e.BuildParadigm("aufmachen")

	if p.Prefix != "auf" || !p.Separable() {
		t.Fatalf("Expected separable prefix auf, got %q", p.Prefix)
	}
	if p.Praesens[Ich] != "mache auf" {
		t.Errorf("Expected main clause 'mache auf', got %q", p.Praesens[Ich])
	}
	if p.PraesensSub[Ich] != "aufmache" {
		t.Errorf("Expected subordinate 'aufmache', got %q", p.PraesensSub[Ich])
	}
	if p.Partizip2 != "aufgemacht" {
		t.Errorf("Expected aufgemacht, got %q", p.Partizip2)
	}
	if p.ZuInfinitiv != "aufzumachen" {
		t.Errorf("Expected aufzumachen, got %q", p.ZuInfinitiv)
	}
	if p.Imperativ[Du] != "mach auf" || p.Imperativ[Sie] != "machen Sie auf" {
		t.Errorf("Unexpected imperative %v", p.Imperativ)
	}
	if p.PraeteritumSub[Er] != "aufmachte" {
		t.Errorf("Expected aufmachte, got %q", p.PraeteritumSub[Er])
	}
}

func TestSeparableFusion(t *testing.T) {
	e := testEngine(t)
	for _, lemma := range []string{"aufmachen", "aufnehmen", "ankommen", "mitnehmen", "zumachen", "abarbeiten"} {
		p := e.BuildParadigm(lemma)
		if !p.Separable() {
			t.Errorf("%s should be separable", lemma)
			continue
		}
		for _, person := range Persons {
			main := strings.Split(p.Praesens[person], " ")[0]
			if got, want := p.PraesensSub[person], p.Prefix+main; got != want {
				t.Errorf("%s %s: expected fused %q, got %q", lemma, person, want, got)
			}
		}
	}
}

func TestSeparableIrregularRoot(t *testing.T) {
	e := testEngine(t)

	p := e.BuildParadigm("ankommen")
	if p.Praesens[Er] != "kommt an" || p.Partizip2 != "angekommen" {
		t.Errorf("Unexpected ankommen forms: %q, %q", p.Praesens[Er], p.Partizip2)
	}
	if p.Aux != AuxSein {
		t.Errorf("Expected aux sein, got %q", p.Aux)
	}

	p = e.BuildParadigm("aufnehmen")
	if p.Praeteritum[Ich] != "nahm auf" || p.Konjunktiv2Sub[Wir] != "aufnähmen" {
		t.Errorf("Unexpected aufnehmen forms: %q, %q", p.Praeteritum[Ich], p.Konjunktiv2Sub[Wir])
	}
	if p.Aux != AuxHaben {
		t.Errorf("Expected aux haben, got %q", p.Aux)
	}
}

func TestInseparableIrregularRoot(t *testing.T) {
	e := testEngine(t)

	p := e.BuildParadigm("bekommen")
	if p.Separable() {
		t.Error("bekommen is not separable")
	}
	if p.Praesens[Er] != "bekommt" || p.Praeteritum[Ich] != "bekam" {
		t.Errorf("Unexpected bekommen forms: %v / %v", p.Praesens, p.Praeteritum)
	}
	if p.Partizip2 != "bekommen" {
		t.Errorf("Expected participle bekommen, got %q", p.Partizip2)
	}
	if p.Aux != AuxHaben {
		t.Errorf("Expected aux haben, got %q", p.Aux)
	}
	if got := e.BuildParadigm("verstehen").Partizip2; got != "verstanden" {
		t.Errorf("Expected verstanden, got %q", got)
	}
}

func TestTwoWayPrefixes(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		lemma     string
		er        string
		partizip2 string
		separable bool
	}{
		{"übernehmen", "übernimmt", "übernommen", false},
		{"übersetzen", "übersetzt", "übersetzt", false},
		{"umkommen", "kommt um", "umgekommen", true},
	}
	for _, tt := range tests {
		p := e.BuildParadigm(tt.lemma)
		if p.Praesens[Er] != tt.er {
			t.Errorf("%s: expected %q, got %q", tt.lemma, tt.er, p.Praesens[Er])
		}
		if p.Partizip2 != tt.partizip2 {
			t.Errorf("%s: expected %q, got %q", tt.lemma, tt.partizip2, p.Partizip2)
		}
		if p.Separable() != tt.separable {
			t.Errorf("%s: expected separable %v, got %v", tt.lemma, tt.separable, p.Separable())
		}
	}
	if got := e.BuildParadigm("umkommen").Aux; got != AuxSein {
		t.Errorf("Expected umkommen to inherit sein, got %q", got)
	}

	det, ok := e.Detect("übernommen", Context{})
	if !ok || det.Info.Lemma != "übernehmen" || det.Info.Tense != Partizip2 {
		t.Errorf("Expected übernehmen participle, got %+v", det.Info)
	}
	det, ok = e.Detect("übersetzt", Context{})
	if !ok || det.Info.Lemma != "übersetzen" || det.Confidence != confDirect {
		t.Errorf("Expected direct übersetzen form, got %+v (%v)", det.Info, det.Confidence)
	}
}

func TestSplitSeparable(t *testing.T) {
	e := testEngine(t)
	tests := []struct {
		lemma  string
		prefix string
		ok     bool
	}{
		{"aufmachen", "auf", true},
		{"mitnehmen", "mit", true},
		{"übersetzen", "", false},
		{"unterhalten", "", false},
		{"umkommen", "um", true},
		{"machen", "", false},
		{"antun", "", false}, // root too short
	}
	for _, tt := range tests {
		prefix, _, ok := e.SplitSeparable(tt.lemma)
		if ok != tt.ok || prefix != tt.prefix {
			t.Errorf("%s: expected (%q, %v), got (%q, %v)", tt.lemma, tt.prefix, tt.ok, prefix, ok)
		}
	}

	// listed lemma over an unknown root stays simple
	p := e.BuildParadigm("antworten")
	if p.Separable() || p.Praesens[Er] != "antwortet" {
		t.Errorf("antworten should conjugate as simple verb, got prefix %q, er %q", p.Prefix, p.Praesens[Er])
	}
}

func TestBuildParadigmReturnsCopy(t *testing.T) {
	e := testEngine(t)
	p := e.BuildParadigm("nehmen")
	p.Praesens[Ich] = "broken"
	p.Imperativ[Du] = "broken"

	again := e.BuildParadigm("nehmen")
	if again.Praesens[Ich] != "nehme" || again.Imperativ[Du] != "nimm" {
		t.Error("Mutating a returned paradigm must not change the tables")
	}
	if again.ZuInfinitiv != "zu nehmen" || again.Aux != AuxHaben {
		t.Errorf("Expected defaults filled in, got %q / %q", again.ZuInfinitiv, again.Aux)
	}
}

func TestCanonicalize(t *testing.T) {
	e := testEngine(t)
	tests := map[string]string{
		"Hab'":      "habe",
		"hätt":      "hätte",
		"geht's":    "geht",
		"geht’s,":   "geht",
		"Mache!":    "mache",
		"Auf-Bauen": "auf",
		"...":       "",
	}
	for in, want := range tests {
		if got := e.Canonicalize(in); got != want {
			t.Errorf("Canonicalize(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestDetectDirect(t *testing.T) {
	e := testEngine(t)

	det, ok := e.Detect("mache", Context{})
	if !ok {
		t.Fatal("mache should be detected")
	}
	if det.Info.Lemma != "machen" || det.Info.Tense != Praesens {
		t.Errorf("Unexpected info %+v", det.Info)
	}
	if !reflect.DeepEqual(det.Info.Persons, []Person{Ich}) {
		t.Errorf("Expected persons [ich], got %v", det.Info.Persons)
	}
	if det.Confidence != confDirect || det.Context.LikelyRole != RoleVerb {
		t.Errorf("Unexpected confidence %v / role %q", det.Confidence, det.Context.LikelyRole)
	}

	det, ok = e.Detect("aufmache", Context{})
	if !ok || det.Info.Lemma != "aufmachen" || !det.Info.Forms[0].Sub || det.Info.Prefix != "auf" {
		t.Errorf("Expected fused aufmachen form, got %+v", det.Info)
	}

	det, ok = e.Detect("aufzumachen", Context{})
	if !ok || det.Info.Tense != ZuInfinitiv || !det.Info.Infinitive {
		t.Errorf("Expected zu-infinitive, got %+v", det.Info)
	}

	if _, ok := e.Detect("haus", Context{}); ok {
		t.Error("haus is not a verb form")
	}
	if _, ok := e.Detect("", Context{}); ok {
		t.Error("empty token is not a verb form")
	}
}

func TestDetectPrefixedFallback(t *testing.T) {
	e := testEngine(t)

	det, ok := e.Detect("aufzunehmen", Context{})
	if !ok || det.Info.Lemma != "aufnehmen" || det.Info.Tense != ZuInfinitiv {
		t.Errorf("Expected aufnehmen zu-infinitive, got %+v", det.Info)
	}
	if det.Confidence != confPrefixed {
		t.Errorf("Expected confidence %v, got %v", confPrefixed, det.Confidence)
	}

	det, ok = e.Detect("mitnimmt", Context{})
	if !ok || det.Info.Lemma != "mitnehmen" || det.Confidence != confFused {
		t.Errorf("Expected fused mitnehmen form, got %+v (%v)", det.Info, det.Confidence)
	}
}

func TestDetectParticipleRole(t *testing.T) {
	e := testEngine(t)

	words := []string{"aufgenommen", "in", "die", "Schule"}
	det, ok := e.Detect("aufgenommen", Context{Words: words, Index: 0, AtSentenceStart: true})
	if !ok {
		t.Fatal("aufgenommen should be detected")
	}
	if !det.Info.Participle || det.Info.Lemma != "aufnehmen" || det.Info.Prefix != "auf" {
		t.Errorf("Unexpected info %+v", det.Info)
	}
	if det.Context.LikelyRole != RoleAdjective || det.Context.AuxiliaryFound {
		t.Errorf("Expected adjective role without auxiliary, got %+v", det.Context)
	}
	if det.Context.NextToken != "in" {
		t.Errorf("Expected next token in, got %q", det.Context.NextToken)
	}

	words = []string{"Er", "wurde", "schnell", "aufgenommen"}
	det, _ = e.Detect("aufgenommen", Context{Words: words, Index: 3})
	if det.Context.LikelyRole != RoleVerb || !det.Context.AuxiliaryFound {
		t.Errorf("Expected verb role with auxiliary, got %+v", det.Context)
	}
	if math.Abs(det.Confidence-(confPrefixed+auxBoost)) > 1e-9 {
		t.Errorf("Expected boosted confidence, got %v", det.Confidence)
	}
}

func TestDetectDeclinedParticiple(t *testing.T) {
	e := testEngine(t)
	det, ok := e.Detect("gemachten", Context{Words: []string{"die", "gemachten", "Fehler"}, Index: 1})
	if !ok {
		t.Fatal("gemachten should be detected")
	}
	if !det.Info.Declined || !det.Info.Participle || det.Info.Lemma != "machen" {
		t.Errorf("Unexpected info %+v", det.Info)
	}
	if det.Confidence != confDeclined || det.Context.LikelyRole != RoleAdjective {
		t.Errorf("Unexpected confidence %v / role %q", det.Confidence, det.Context.LikelyRole)
	}
}

func TestDetectCapitalized(t *testing.T) {
	e := testEngine(t)
	if _, ok := e.Detect("Machen", Context{Words: []string{"das", "Machen"}, Index: 1}); ok {
		t.Error("Capitalized mid-sentence token should not be a verb")
	}
	if _, ok := e.Detect("Machen", Context{AtSentenceStart: true}); !ok {
		t.Error("Capitalized sentence-initial verb should be detected")
	}
}

func TestAuxOverride(t *testing.T) {
	e := testEngine(t)
	if got := e.BuildParadigm("kommen").Aux; got != AuxSein {
		t.Errorf("Expected sein, got %q", got)
	}
	det, ok := e.Detect("gekommen", Context{})
	if !ok || det.Info.Aux != AuxSein {
		t.Errorf("Expected aux sein on detection, got %+v", det.Info)
	}
}

func TestPersonText(t *testing.T) {
	var p Person
	if err := p.UnmarshalText([]byte("er/sie/es")); err != nil || p != Er {
		t.Errorf("Expected Er, got %v (%v)", p, err)
	}
	if err := p.UnmarshalText([]byte("they")); err == nil {
		t.Error("Expected error for unknown person")
	}
	if _, err := NewTable([]string{"a"}); err == nil {
		t.Error("Expected error for short table")
	}
	if a, ok := ParseAux(" Sein "); !ok || a != AuxSein {
		t.Errorf("Expected sein, got %q", a)
	}
}
