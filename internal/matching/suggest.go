package matching

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// Rule suggests Category when any keyword occurs in a description.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Suggester proposes categories for free-text transaction descriptions.
// It is safe for concurrent use; rules are never modified after construction.
type Suggester struct {
	rules []Rule
}

// NewSuggester builds a suggester from rules. Keywords are matched case-insensitively.
func NewSuggester(rules []Rule) *Suggester {
	normalized := make([]Rule, 0, len(rules))

	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}

		if r.Category == "" || len(kws) == 0 {
			continue
		}

		normalized = append(normalized, Rule{Category: r.Category, Keywords: kws})
	}

	return &Suggester{rules: normalized}
}

// DefaultSuggester uses the built-in keyword table.
func DefaultSuggester() *Suggester {
	rules, err := ParseRules(bytes.NewReader(defaultRules))
	if err != nil {
		panic(fmt.Sprintf("matching: invalid rules.yaml: %v", err))
	}

	return NewSuggester(rules)
}

// ParseRules reads a YAML list of rules.
func ParseRules(r io.Reader) ([]Rule, error) {
	var rules []Rule
	if err := yaml.NewDecoder(r).Decode(&rules); err != nil {
		return nil, fmt.Errorf("decoding rules: %w", err)
	}

	return rules, nil
}

// LoadSuggester reads the rules at path, or uses the built-in table when path is empty.
func LoadSuggester(path string) (*Suggester, error) {
	if path == "" {
		return DefaultSuggester(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rules file: %w", err)
	}
	defer f.Close()

	rules, err := ParseRules(f)
	if err != nil {
		return nil, err
	}

	return NewSuggester(rules), nil
}

// Suggest returns the distinct categories whose keywords occur in description,
// in rule order. The result is advisory and never empty-string padded.
func (s *Suggester) Suggest(description string) []string {
	desc := strings.ToLower(description)

	var out []string

	seen := make(map[string]bool)

	for _, r := range s.rules {
		if seen[r.Category] || !containsAny(desc, r.Keywords) {
			continue
		}

		seen[r.Category] = true
		out = append(out, r.Category)
	}

	return out
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}

	return false
}
