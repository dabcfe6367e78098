package normalize

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed glossary_default.json
var defaultGlossaryJSON []byte

// DefaultGlossary returns a fresh copy of the embedded glossary.
func DefaultGlossary() map[string]string {
	glossary, err := parseGlossary(defaultGlossaryJSON, json.Unmarshal)
	if err != nil {
		panic(fmt.Sprintf("embedded glossary is invalid: %v", err))
	}
	return glossary
}

// LoadGlossary reads a mapping of spoken variants to canonical terms. Files
// ending in .yaml or .yml are decoded as YAML; anything else as a JSON object.
func LoadGlossary(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}
	decode := json.Unmarshal
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decode = yaml.Unmarshal
	}
	glossary, err := parseGlossary(data, decode)
	if err != nil {
		return nil, fmt.Errorf("parse glossary %s: %w", path, err)
	}
	return glossary, nil
}

func parseGlossary(data []byte, decode func([]byte, any) error) (map[string]string, error) {
	var raw map[string]string
	if err := decode(data, &raw); err != nil {
		return nil, err
	}
	glossary := make(map[string]string, len(raw))
	for variant, canonical := range raw {
		variant = strings.TrimSpace(variant)
		if variant == "" {
			continue
		}
		glossary[variant] = canonical
	}
	return glossary, nil
}

// longestFirst orders phrases by descending length so alternation prefers
// the longest match. Ties sort lexicographically.
func longestFirst(terms []string) []string {
	sorted := append([]string(nil), terms...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}
