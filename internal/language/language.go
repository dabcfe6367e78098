package language

import "strings"

type entry struct {
	iso1    string
	iso2    []string
	display string
}

var table = []entry{
	{"en", []string{"eng"}, "English"},
	{"de", []string{"deu", "ger"}, "German"},
	{"fr", []string{"fra", "fre"}, "French"},
	{"es", []string{"spa"}, "Spanish"},
	{"it", []string{"ita"}, "Italian"},
	{"pt", []string{"por"}, "Portuguese"},
	{"nl", []string{"nld", "dut"}, "Dutch"},
	{"pl", []string{"pol"}, "Polish"},
	{"cs", []string{"ces", "cze"}, "Czech"},
	{"sv", []string{"swe"}, "Swedish"},
	{"da", []string{"dan"}, "Danish"},
	{"no", []string{"nor"}, "Norwegian"},
	{"fi", []string{"fin"}, "Finnish"},
	{"ru", []string{"rus"}, "Russian"},
	{"tr", []string{"tur"}, "Turkish"},
	{"ja", []string{"jpn"}, "Japanese"},
	{"ko", []string{"kor"}, "Korean"},
	{"zh", []string{"zho", "chi"}, "Chinese"},
	{"hi", []string{"hin"}, "Hindi"},
	{"ar", []string{"ara"}, "Arabic"},
}

var index = func() map[string]*entry {
	m := make(map[string]*entry, len(table)*4)
	for i := range table {
		e := &table[i]
		m[e.iso1] = e
		for _, code := range e.iso2 {
			m[code] = e
		}
		m[strings.ToLower(e.display)] = e
	}
	return m
}()

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := index[code]; ok {
		return e
	}
	// BCP 47 tags such as en-US or pt_BR.
	if i := strings.IndexAny(code, "-_"); i > 0 {
		return index[code[:i]]
	}
	return nil
}

// ToISO2 converts a language code, tag, or English name to ISO 639-1.
// Unknown two-letter codes pass through; anything else unknown yields "".
func ToISO2(code string) string {
	if e := lookup(code); e != nil {
		return e.iso1
	}
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) == 2 {
		return code
	}
	return ""
}

// Known reports whether code maps to a language in the table.
func Known(code string) bool {
	return lookup(code) != nil
}

// DisplayName returns the English name for code, "Unknown" for empty input,
// or the uppercased code when unrecognized.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// FromTags returns the ISO 639-1 language of a stream's metadata tags, or ""
// when no recognizable language tag is present.
func FromTags(tags map[string]string) string {
	for _, key := range []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"} {
		value, ok := tags[key]
		if !ok {
			continue
		}
		value = strings.TrimSpace(strings.ReplaceAll(value, "\x00", ""))
		if value == "" {
			continue
		}
		return ToISO2(value)
	}
	return ""
}
