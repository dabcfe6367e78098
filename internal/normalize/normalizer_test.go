package normalize

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"transcriber/internal/logging"
	"transcriber/internal/transcript"
)

func writeGlossary(t *testing.T, glossary map[string]string) string {
	t.Helper()
	data, err := json.Marshal(glossary)
	if err != nil {
		t.Fatalf("marshal glossary: %v", err)
	}
	path := filepath.Join(t.TempDir(), "glossary.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write glossary: %v", err)
	}
	return path
}

func TestGlossaryMapping(t *testing.T) {
	path := writeGlossary(t, map[string]string{
		"tc pcm":       "TcPCM",
		"tcpcm":        "TcPCM",
		"tool cost":    "tool cost",
		"tool costing": "tool costing",
	})
	n := New(Options{GlossaryPath: path})

	cases := map[string]string{
		"tc pcm is great":      "TcPCM is great",
		"TCPCM is great":       "TcPCM is great",
		"TC PCM is great":      "TcPCM is great",
		"tool costing methods": "tool costing methods",
		"Tool Cost review":     "tool cost review",
	}
	for input, want := range cases {
		if got := n.Normalize(input); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCanonicalFormRegardlessOfInputCase(t *testing.T) {
	n := New(Options{Glossary: map[string]string{"tcpcm": "TcPCM"}})
	for _, input := range []string{"tcpcm", "TCPCM", "TcPcM"} {
		if got := n.Normalize(input); got != "TcPCM" {
			t.Errorf("Normalize(%q) = %q, want TcPCM", input, got)
		}
	}
}

func TestLongestPhraseWins(t *testing.T) {
	n := New(Options{Glossary: map[string]string{
		"pcm":    "PCM",
		"tc pcm": "TcPCM",
	}})
	if got := n.Normalize("open tc pcm now"); got != "open TcPCM now" {
		t.Fatalf("expected longest phrase to win, got %q", got)
	}
	if got := n.Normalize("the pcm module"); got != "the PCM module" {
		t.Fatalf("expected short phrase alone to match, got %q", got)
	}
}

func TestGlossaryRespectsWordBoundaries(t *testing.T) {
	n := New(Options{Glossary: map[string]string{"cad": "CAD"}})
	if got := n.Normalize("cadence and cad"); got != "cadence and CAD" {
		t.Fatalf("unexpected replacement inside word: %q", got)
	}
}

func TestWordBoundariesAreUnicodeAware(t *testing.T) {
	n := New(Options{Glossary: map[string]string{"bom": "BOM", "pcm": "PCM"}, RemoveFillers: true})
	for _, input := range []string{"übom", "pcmé", "élike", "umé", "bom_x", "pcm2"} {
		if got := n.Normalize(input); got != input {
			t.Errorf("Normalize(%q) = %q, want unchanged", input, got)
		}
	}

	cases := map[string]string{
		"ça bom, pcm!":     "ça BOM, PCM!",
		"über pcm und bom": "über PCM und BOM",
		"é um pcm":         "é PCM",
		"(bom)":            "(BOM)",
	}
	for input, want := range cases {
		if got := n.Normalize(input); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestShorterTermMatchesWhenLongerRunsIntoWord(t *testing.T) {
	n := New(Options{Glossary: map[string]string{"tc": "TC", "tc pcm": "TcPCM"}})
	if got := n.Normalize("tc pcmx"); got != "TC pcmx" {
		t.Fatalf("expected fallback to shorter term, got %q", got)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := New(Options{RemoveFillers: true})
	inputs := []string{
		"TcPCM",
		"should-cost",
		"BOMs",
		"um so tc pcm handles the boms",
		"we use teamcenter product cost management for should cost models",
		"uh the rfqs and capex like you know",
		"Teamcenter Product Cost Management and CAD data",
		"ERP, SAP, and NX exports",
		"  the   tool costing   approach ",
		"",
	}
	for _, input := range inputs {
		once := n.Normalize(input)
		if twice := n.Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", input, once, twice)
		}
	}
	for _, canonical := range []string{"TcPCM", "should-cost", "BOMs"} {
		if got := n.Normalize(canonical); got != canonical {
			t.Errorf("Normalize(%q) = %q, want unchanged", canonical, got)
		}
	}
}

func TestFillerRemoval(t *testing.T) {
	n := New(Options{RemoveFillers: true})
	got := n.Normalize("um so like you know this is a test")
	lower := strings.ToLower(got)
	for _, filler := range []string{"um", "like", "you know"} {
		if strings.Contains(lower, filler) {
			t.Fatalf("expected %q removed, got %q", filler, got)
		}
	}
	if !strings.Contains(got, "test") {
		t.Fatalf("expected content preserved, got %q", got)
	}
	if got != "so this is a test" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestHyphenatedFillersRemovedWhole(t *testing.T) {
	n := New(Options{Glossary: map[string]string{}, RemoveFillers: true})
	if got := n.Normalize("uh-huh that works mm-hmm"); got != "that works" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestNoFillerRemoval(t *testing.T) {
	n := New(Options{RemoveFillers: false})
	if got := n.Normalize("um this is a test"); !strings.Contains(strings.ToLower(got), "um") {
		t.Fatalf("expected filler preserved, got %q", got)
	}
}

func TestCustomFillers(t *testing.T) {
	n := New(Options{Glossary: map[string]string{}, RemoveFillers: true, Fillers: []string{"basically"}})
	if got := n.Normalize("basically um ok"); got != "um ok" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestWhitespaceCleanup(t *testing.T) {
	n := New(Options{})
	got := n.Normalize("this  has   extra    spaces")
	if got != "this has extra spaces" {
		t.Fatalf("unexpected result %q", got)
	}
	if got := n.Normalize("\tline\nbreaks  "); got != "line breaks" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestEmptyText(t *testing.T) {
	n := New(Options{RemoveFillers: true})
	for _, input := range []string{"", "   ", "\n\t"} {
		if got := n.Normalize(input); got != "" {
			t.Fatalf("Normalize(%q) = %q, want empty", input, got)
		}
	}
}

func TestMissingGlossaryDegradesToEmpty(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	n := New(Options{GlossaryPath: filepath.Join(t.TempDir(), "missing.json"), Logger: logger})
	if n.Terms() != 0 {
		t.Fatalf("expected empty glossary, got %d terms", n.Terms())
	}
	if got := n.Normalize("tc pcm"); got != "tc pcm" {
		t.Fatalf("expected text unchanged, got %q", got)
	}
	if !strings.Contains(buf.String(), "glossary_load_failed") {
		t.Fatalf("expected warning logged, got %q", buf.String())
	}
}

func TestMalformedGlossaryDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`["not", "an", "object"]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadGlossary(path); err == nil {
		t.Fatal("expected LoadGlossary error")
	}
	if n := New(Options{GlossaryPath: path}); n.Terms() != 0 {
		t.Fatalf("expected empty glossary, got %d", n.Terms())
	}
}

func TestLoadGlossaryYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossary.yaml")
	content := "# plant terms\n\"cost center\": Cost Center\nmhr: MHR\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	glossary, err := LoadGlossary(path)
	if err != nil {
		t.Fatalf("LoadGlossary: %v", err)
	}
	if len(glossary) != 2 || glossary["cost center"] != "Cost Center" {
		t.Fatalf("unexpected glossary %v", glossary)
	}
	n := New(Options{GlossaryPath: path})
	if got := n.Normalize("the mhr for each cost center"); got != "the MHR for each Cost Center" {
		t.Fatalf("unexpected normalization %q", got)
	}

	bad := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(bad, []byte("- a\n- b\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadGlossary(bad); err == nil {
		t.Fatal("expected error for YAML list")
	}
}

func TestDefaultGlossaryIsEmbedded(t *testing.T) {
	glossary := DefaultGlossary()
	if glossary["tc pcm"] != "TcPCM" {
		t.Fatalf("expected default glossary entry, got %v", glossary["tc pcm"])
	}
	glossary["tc pcm"] = "mutated"
	if DefaultGlossary()["tc pcm"] != "TcPCM" {
		t.Fatal("DefaultGlossary should return a fresh copy")
	}
	if got := New(Options{}).Normalize("we use tc pcm daily"); got != "we use TcPCM daily" {
		t.Fatalf("unexpected default normalization %q", got)
	}
}

func TestNormalizeSegmentsDoesNotMutateInput(t *testing.T) {
	n := New(Options{Glossary: map[string]string{"tcpcm": "TcPCM"}, RemoveFillers: true})
	in := []transcript.Segment{
		{ID: 0, Start: 0, End: 1, Text: "um tcpcm"},
		{ID: 1, Start: 1, End: 2, Text: "  fine  "},
	}
	out := n.NormalizeSegments(in)
	if in[0].Text != "um tcpcm" {
		t.Fatalf("input mutated: %q", in[0].Text)
	}
	if out[0].Text != "TcPCM" || out[1].Text != "fine" {
		t.Fatalf("unexpected output %+v", out)
	}
	if out[1].Start != 1 || out[1].End != 2 || out[1].ID != 1 {
		t.Fatalf("timing not preserved: %+v", out[1])
	}
}

func TestNormalizeTranscriptInPlace(t *testing.T) {
	n := New(Options{Glossary: map[string]string{"tcpcm": "TcPCM"}})
	tr := transcript.New([]transcript.Segment{{ID: 0, Start: 0, End: 1, Text: "tcpcm  rocks"}}, "en", 1)
	n.NormalizeTranscript(&tr)
	if tr.Segments[0].Text != "TcPCM rocks" {
		t.Fatalf("unexpected text %q", tr.Segments[0].Text)
	}
	n.NormalizeTranscript(nil)
}

func TestNormalizeTextConvenience(t *testing.T) {
	path := writeGlossary(t, map[string]string{"tc pcm": "TcPCM"})
	if got := NormalizeText("tc pcm is great", path, true); !strings.Contains(got, "TcPCM") {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestConcurrentUse(t *testing.T) {
	n := New(Options{RemoveFillers: true})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if got := n.Normalize("um TC PCM works"); got != "TcPCM works" {
					t.Errorf("unexpected result %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
