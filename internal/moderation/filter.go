// Package moderation screens guild messages against the configured
// blocked-word list.
package moderation

import (
	"regexp"
	"strings"
)

// Filter matches messages against a blocked-word list. Matching is
// case-insensitive and bound to whole words, so a blocked word inside a
// longer innocent word does not trip it.
type Filter struct {
	pattern *regexp.Regexp
}

// NewFilter compiles the word list. An empty list yields a filter that
// never matches.
func NewFilter(words []string) *Filter {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(w)))
	}
	if len(quoted) == 0 {
		return &Filter{}
	}
	return &Filter{
		pattern: regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`),
	}
}

// Match returns the first blocked word found in the content, if any.
func (f *Filter) Match(content string) (string, bool) {
	if f.pattern == nil {
		return "", false
	}
	match := f.pattern.FindString(content)
	if match == "" {
		return "", false
	}
	return strings.ToLower(match), true
}
