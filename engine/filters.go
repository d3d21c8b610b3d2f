package engine

import (
	"sort"
)

// ============================================================================
// FILTERS — Facet Selection via RecordView
// ============================================================================
// Single-pass filter: checks ALL facet constraints per record in one loop.
// Returns a SubView (index list into parent) — zero data copy.
// ============================================================================

// ApplyFilters returns a view of records matching every constrained facet.
// Facets are AND-combined with exact, case-sensitive equality. Source order is
// preserved. An unconstrained selection returns the original view.
func ApplyFilters(view RecordView, sel Selection) RecordView {
	if sel.IsEmpty() {
		return view
	}

	type constraint struct {
		field Field
		value string
	}
	constraints := make([]constraint, 0, len(Facets))
	for _, facet := range Facets {
		if sel.Constrained(facet) {
			constraints = append(constraints, constraint{field: facet, value: sel[facet]})
		}
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		rec := view.Record(i)
		pass := true
		for _, c := range constraints {
			if c.field.Value(rec) != c.value {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

// ============================================================================
// FACET INDEX
// ============================================================================

// FacetValues is the ordered option list for one facet, All first.
type FacetValues struct {
	Facet  Field    `json:"facet"`
	Values []string `json:"values"`
}

// FacetIndex returns, for each facet, All followed by the distinct values in
// the view sorted by natural string order (case-sensitive).
func FacetIndex(view RecordView) []FacetValues {
	out := make([]FacetValues, 0, len(Facets))
	for _, facet := range Facets {
		values := UniqueValues(view, facet)
		sort.Strings(values)
		out = append(out, FacetValues{
			Facet:  facet,
			Values: append([]string{All}, values...),
		})
	}
	return out
}

// UniqueValues returns distinct values for a field in first-seen order.
func UniqueValues(view RecordView, field Field) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := field.Value(view.Record(i))
		if !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}
