package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// termMatcher finds case-insensitive, whole-word occurrences of a fixed term
// list. Word characters are Unicode letters, digits, marks, and '_', so a
// term never matches inside a word such as "übom" or "pcmé".
type termMatcher struct {
	any   *regexp.Regexp
	terms []*regexp.Regexp
}

// newTermMatcher compiles terms in the given order. Earlier terms win when
// several match at the same position. It returns nil when terms is empty.
func newTermMatcher(terms []string) *termMatcher {
	escaped := make([]string, 0, len(terms))
	anchored := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		if term == "" {
			continue
		}
		quoted := regexp.QuoteMeta(term)
		escaped = append(escaped, quoted)
		anchored = append(anchored, regexp.MustCompile(`^(?i:`+quoted+`)`))
	}
	if len(escaped) == 0 {
		return nil
	}
	return &termMatcher{
		any:   regexp.MustCompile(`(?i)` + strings.Join(escaped, "|")),
		terms: anchored,
	}
}

// replace substitutes every whole-word match with fn(match).
func (m *termMatcher) replace(text string, fn func(string) string) string {
	var b strings.Builder
	matched := false
	last, pos := 0, 0
	for pos < len(text) {
		loc := m.any.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		if end, ok := m.matchAt(text, start); ok {
			b.WriteString(text[last:start])
			b.WriteString(fn(text[start:end]))
			matched = true
			last, pos = end, end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	if !matched {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

// matchAt returns the end of the first term that matches at start with a
// word boundary on both sides.
func (m *termMatcher) matchAt(text string, start int) (int, bool) {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isWordRune(r) {
			return 0, false
		}
	}
	rest := text[start:]
	for _, re := range m.terms {
		loc := re.FindStringIndex(rest)
		if loc == nil {
			continue
		}
		end := start + loc[1]
		if end < len(text) {
			if r, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(r) {
				continue
			}
		}
		return end, true
	}
	return 0, false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
