package engine

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ============================================================================
// AGGREGATORS — Grouping and Aggregation via RecordView
// ============================================================================
// All functions operate on RecordView — zero-copy access to the dataset.
// Grouping produces SubViews (index lists into parent view).
// Sums accumulate in decimal.Decimal so currency totals stay exact.
// ============================================================================

// Aggregate groups view by spec.GroupBy and applies spec.Op to each group.
// Rows come back in first-appearance order of their key. With no GroupBy the
// result is a single row with an empty key, even when the view is empty.
func Aggregate(view RecordView, spec AggregateSpec) ([]AggregateRow, error) {
	for _, f := range spec.GroupBy {
		if !f.Valid() {
			return nil, invalidArgument("groupBy", "unknown field %q", f)
		}
	}
	switch spec.Op {
	case OpSum, OpMean, OpCount:
	case OpDistinctCount:
		if !spec.Field.Valid() {
			return nil, invalidArgument("field", "distinctCount needs a known field, got %q", spec.Field)
		}
	default:
		return nil, invalidArgument("op", "unknown aggregation %q", spec.Op)
	}

	var groups []tupleGroup
	if len(spec.GroupBy) == 0 {
		groups = []tupleGroup{{key: []string{}, view: view}}
	} else {
		groups = groupByTuple(view, spec.GroupBy)
	}

	rows := make([]AggregateRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, AggregateRow{
			Key:   g.key,
			Value: aggregateView(g.view, spec.Op, spec.Field),
			Count: g.view.Len(),
		})
	}
	return rows, nil
}

// ============================================================================
// GROUPING
// ============================================================================

type tupleGroup struct {
	key  []string
	view RecordView
}

// groupByTuple groups records by equality of the full field tuple.
func groupByTuple(view RecordView, fields []Field) []tupleGroup {
	grouped := make(map[string][]int)
	keys := make(map[string][]string)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		rec := view.Record(i)
		tuple := make([]string, len(fields))
		for j, f := range fields {
			tuple[j] = f.Value(rec)
		}
		id := tupleID(tuple)
		if _, exists := grouped[id]; !exists {
			order = append(order, id)
			keys[id] = tuple
		}
		grouped[id] = append(grouped[id], i)
	}

	groups := make([]tupleGroup, 0, len(order))
	for _, id := range order {
		groups = append(groups, tupleGroup{key: keys[id], view: newSubView(view, grouped[id])})
	}
	return groups
}

// tupleID joins a key tuple with a separator that cannot appear in cell text
// read from CSV or XLSX.
func tupleID(tuple []string) string {
	return strings.Join(tuple, "\x00")
}

func groupBySingle(view RecordView, field Field) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := field.Value(view.Record(i))
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// GroupHierarchy builds a tree over levels (e.g. region → sector → city).
// Every node carries the investment sum and record count of its descendants.
func GroupHierarchy(view RecordView, levels []Field) ([]Group, error) {
	if len(levels) == 0 {
		return nil, invalidArgument("levels", "at least one level is required")
	}
	for _, f := range levels {
		if !f.Valid() {
			return nil, invalidArgument("levels", "unknown field %q", f)
		}
	}
	return groupLevels(view, levels, nil), nil
}

func groupLevels(view RecordView, levels []Field, parent []string) []Group {
	groups := groupBySingle(view, levels[0])
	for i := range groups {
		g := &groups[i]
		g.Path = append(append([]string{}, parent...), g.Key)
		g.Count = g.View.Len()
		g.Value = SumInvestment(g.View)
		if len(levels) > 1 {
			g.SubGroups = groupLevels(g.View, levels[1:], g.Path)
		}
	}
	return groups
}

// ============================================================================
// AGGREGATION
// ============================================================================

func aggregateView(view RecordView, op Op, field Field) decimal.Decimal {
	switch op {
	case OpSum:
		return SumInvestment(view)
	case OpMean:
		return MeanInvestment(view)
	case OpCount:
		return decimal.NewFromInt(int64(view.Len()))
	case OpDistinctCount:
		return decimal.NewFromInt(int64(DistinctCount(view, field)))
	}
	return decimal.Zero
}

// SumInvestment sums investment across a view.
func SumInvestment(view RecordView) decimal.Decimal {
	total := decimal.Zero
	for i := 0; i < view.Len(); i++ {
		total = total.Add(view.Record(i).Investment)
	}
	return total
}

// MeanInvestment is the sum divided by the record count; 0 for an empty view.
func MeanInvestment(view RecordView) decimal.Decimal {
	n := view.Len()
	if n == 0 {
		return decimal.Zero
	}
	return SumInvestment(view).Div(decimal.NewFromInt(int64(n)))
}

// DistinctCount returns the number of distinct values of field in view.
func DistinctCount(view RecordView, field Field) int {
	seen := make(map[string]struct{})
	for i := 0; i < view.Len(); i++ {
		seen[field.Value(view.Record(i))] = struct{}{}
	}
	return len(seen)
}

// ComputeKPIs derives the four headline values from a filtered view.
func ComputeKPIs(view RecordView) KPIs {
	return KPIs{
		TotalInvestment:   SumInvestment(view),
		ProjectCount:      view.Len(),
		DistinctCities:    DistinctCount(view, FieldCity),
		AverageInvestment: MeanInvestment(view),
	}
}

// ============================================================================
// SORTING
// ============================================================================

// SortRows sorts aggregate rows in place by value.
// Equal values keep their relative order.
func SortRows(rows []AggregateRow, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if ascending {
			return rows[i].Value.LessThan(rows[j].Value)
		}
		return rows[i].Value.GreaterThan(rows[j].Value)
	})
}

// LabelForField returns a display label for a field.
func LabelForField(f Field) string {
	switch f {
	case FieldRegion:
		return "Region"
	case FieldSector:
		return "Sector"
	case FieldFinanceStatus:
		return "Finance Status"
	case FieldCity:
		return "City"
	case FieldProjectName:
		return "Project"
	}
	s := string(f)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
