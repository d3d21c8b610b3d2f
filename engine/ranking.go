package engine

import (
	"sort"
)

// TopN returns at most n projects from view, largest investment first.
// Ties keep their order from the view. n must be positive.
func TopN(view RecordView, n int) ([]Project, error) {
	if n <= 0 {
		return nil, invalidArgument("n", "must be a positive integer, got %d", n)
	}

	ranked := Records(view)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Investment.GreaterThan(ranked[j].Investment)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}
