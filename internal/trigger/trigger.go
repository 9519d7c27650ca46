// Package trigger decides when a chat message warrants a meetings refresh.
// It is a heuristic, not a transactional signal: matching a keyword does not
// mean the gateway actually mutated meeting state.
package trigger

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default keywords mirror the chat commands that commonly touch the schedule.
var defaultKeywords = []string{"schedule", "delete"}

type Matcher struct {
	keywords []string
}

type triggerSpec struct {
	Keywords []string `yaml:"keywords"`
}

// NewMatcher returns a matcher over the default keyword set.
func NewMatcher() *Matcher {
	return &Matcher{keywords: defaultKeywords}
}

// LoadMatcher reads a keyword set from a YAML file. An empty path or an empty
// keyword list keeps the defaults; an unreadable or malformed file is an error.
func LoadMatcher(path string) (*Matcher, error) {
	if path == "" {
		return NewMatcher(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec triggerSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, err
	}
	keywords := make([]string, 0, len(spec.Keywords))
	for _, k := range spec.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}
	if len(keywords) == 0 {
		return NewMatcher(), nil
	}
	return &Matcher{keywords: keywords}, nil
}

// Match reports whether the raw user text contains any keyword,
// case-insensitively.
func (m *Matcher) Match(message string) bool {
	return containsAny(strings.ToLower(message), m.keywords)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
