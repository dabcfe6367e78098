package normalize

import (
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"transcriber/internal/logging"
	"transcriber/internal/transcript"
)

// DefaultFillers lists the hesitation words removed when filler removal is on.
var DefaultFillers = []string{
	"um", "uh", "hmm", "mhm", "uh-huh", "mm-hmm",
	"like", "you know", "i mean", "sort of", "kind of",
}

// Options configures a Normalizer.
type Options struct {
	// Glossary takes precedence over GlossaryPath when non-nil.
	Glossary map[string]string
	// GlossaryPath is read when Glossary is nil. Empty selects the embedded glossary.
	GlossaryPath  string
	RemoveFillers bool
	// Fillers overrides DefaultFillers when non-empty.
	Fillers []string
	Logger  *slog.Logger
}

// Normalizer rewrites transcript text. The zero value is not usable; call New.
type Normalizer struct {
	canonical map[string]string
	glossary  *termMatcher
	fillers   *termMatcher
	terms     int
}

// New builds a Normalizer. A glossary that cannot be read is logged as a
// warning and replaced by an empty glossary.
func New(opts Options) *Normalizer {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	glossary := opts.Glossary
	if glossary == nil {
		glossary = resolveGlossary(opts.GlossaryPath, logger)
	}

	n := &Normalizer{canonical: make(map[string]string, len(glossary))}
	variants := make([]string, 0, len(glossary))
	for variant := range glossary {
		variants = append(variants, variant)
	}
	variants = longestFirst(variants)
	for _, variant := range variants {
		key := fold(variant)
		if _, exists := n.canonical[key]; exists {
			continue
		}
		n.canonical[key] = glossary[variant]
	}
	n.terms = len(n.canonical)
	n.glossary = newTermMatcher(variants)

	if opts.RemoveFillers {
		fillers := opts.Fillers
		if len(fillers) == 0 {
			fillers = DefaultFillers
		}
		n.fillers = newTermMatcher(longestFirst(fillers))
	}
	return n
}

func resolveGlossary(path string, logger *slog.Logger) map[string]string {
	path = strings.TrimSpace(path)
	if path == "" {
		glossary := DefaultGlossary()
		logger.Debug("loaded glossary", logging.String("source", "embedded"), logging.Int("terms", len(glossary)))
		return glossary
	}
	glossary, err := LoadGlossary(path)
	if err != nil {
		logging.WarnWithContext(logger, "glossary unavailable; continuing without term mapping", "glossary_load_failed",
			logging.String("glossary_path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check normalize.glossary_path points to a JSON or YAML mapping"),
			logging.String(logging.FieldImpact, "domain terms are left as transcribed"),
		)
		return map[string]string{}
	}
	logger.Info("loaded glossary", logging.String("glossary_path", path), logging.Int("terms", len(glossary)))
	return glossary
}

// cases.Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Terms reports how many distinct glossary variants are active.
func (n *Normalizer) Terms() int { return n.terms }

// Normalize applies glossary replacement, filler removal, and whitespace
// collapsing. Blank input yields "".
func (n *Normalizer) Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if n.glossary != nil {
		text = n.glossary.replace(text, func(match string) string {
			if canonical, ok := n.canonical[fold(match)]; ok {
				return canonical
			}
			return match
		})
	}
	if n.fillers != nil {
		text = n.fillers.replace(text, func(string) string { return "" })
	}
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeSegments returns copies of segments with normalized text.
func (n *Normalizer) NormalizeSegments(segments []transcript.Segment) []transcript.Segment {
	out := make([]transcript.Segment, len(segments))
	for i, seg := range segments {
		seg.Text = n.Normalize(seg.Text)
		out[i] = seg
	}
	return out
}

// NormalizeTranscript normalizes every segment of t in place.
func (n *Normalizer) NormalizeTranscript(t *transcript.Transcript) {
	if t == nil {
		return
	}
	for i := range t.Segments {
		t.Segments[i].Text = n.Normalize(t.Segments[i].Text)
	}
}

// NormalizeText builds a one-off Normalizer and applies it to text.
func NormalizeText(text, glossaryPath string, removeFillers bool) string {
	return New(Options{GlossaryPath: glossaryPath, RemoveFillers: removeFillers}).Normalize(text)
}
