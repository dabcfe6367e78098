package language

import "testing"

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"eng", "en"},
		{"ger", "de"},
		{"deu", "de"},
		{"fre", "fr"},
		{"chi", "zh"},
		{"english", "en"},
		{"German", "de"},
		{"en-US", "en"},
		{"pt_BR", "pt"},
		{"xy", "xy"},
		{"xyz", ""},
		{"", ""},
		{" ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToISO2(tt.input); got != tt.expected {
				t.Errorf("ToISO2(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestKnown(t *testing.T) {
	for _, code := range []string{"en", "eng", "english", "de-AT"} {
		if !Known(code) {
			t.Errorf("expected %q to be known", code)
		}
	}
	for _, code := range []string{"", "xx", "klingon"} {
		if Known(code) {
			t.Errorf("expected %q to be unknown", code)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"en":  "English",
		"deu": "German",
		"zho": "Chinese",
		"":    "Unknown",
		"xyz": "XYZ",
	}
	for input, want := range tests {
		if got := DisplayName(input); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFromTags(t *testing.T) {
	tests := []struct {
		name     string
		tags     map[string]string
		expected string
	}{
		{"nil tags", nil, ""},
		{"lowercase key", map[string]string{"language": "eng"}, "en"},
		{"uppercase key", map[string]string{"LANGUAGE": "GER"}, "de"},
		{"ietf key", map[string]string{"language_ietf": "en-US"}, "en"},
		{"null bytes stripped", map[string]string{"language": "fra\x00"}, "fr"},
		{"empty value skipped", map[string]string{"language": "", "LANG": "es"}, "es"},
		{"undetermined", map[string]string{"language": "und"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromTags(tt.tags); got != tt.expected {
				t.Errorf("FromTags(%v) = %q, want %q", tt.tags, got, tt.expected)
			}
		})
	}
}
