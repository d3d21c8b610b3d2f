package schema

import (
	"strings"
)

// ============================================================================
// HEADER MATCHING — ordered strategies per canonical column
// ============================================================================
// A column is resolved by trying its matchers in order. For each matcher the
// (already trimmed) headers are scanned left to right and the first hit wins,
// so resolution is deterministic for any header row.
// ============================================================================

// HeaderMatcher is one named header-matching strategy.
type HeaderMatcher struct {
	Name  string
	Match func(header string) bool
}

// Exact matches a header equal to want.
func Exact(want string) HeaderMatcher {
	return HeaderMatcher{
		Name:  "exact:" + want,
		Match: func(h string) bool { return h == want },
	}
}

// EqualFold matches a header equal to want ignoring case.
func EqualFold(want string) HeaderMatcher {
	return HeaderMatcher{
		Name:  "fold:" + want,
		Match: func(h string) bool { return strings.EqualFold(h, want) },
	}
}

// ContainsFold matches a header containing token ignoring case.
func ContainsFold(token string) HeaderMatcher {
	lower := strings.ToLower(token)
	return HeaderMatcher{
		Name:  "contains:" + lower,
		Match: func(h string) bool { return strings.Contains(strings.ToLower(h), lower) },
	}
}

// InvestmentMatchers returns the investment resolution order: every known
// spelling exactly, then any header containing "investment".
func InvestmentMatchers() []HeaderMatcher {
	matchers := make([]HeaderMatcher, 0, len(InvestmentSpellings)+1)
	for _, s := range InvestmentSpellings {
		matchers = append(matchers, Exact(s))
	}
	return append(matchers, ContainsFold("investment"))
}

func requiredMatchers(header string) []HeaderMatcher {
	return []HeaderMatcher{Exact(header), EqualFold(header)}
}

// TrimHeaders returns a trimmed copy of headers.
func TrimHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// resolve returns the index of the first header accepted by the earliest
// matcher, skipping indices already claimed by another column.
func resolve(headers []string, matchers []HeaderMatcher, claimed map[int]bool) (int, string) {
	for _, m := range matchers {
		for i, h := range headers {
			if claimed[i] {
				continue
			}
			if m.Match(h) {
				return i, m.Name
			}
		}
	}
	return -1, ""
}
