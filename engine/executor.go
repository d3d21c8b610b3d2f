package engine

import (
	"log"

	"github.com/google/uuid"
)

// ============================================================================
// EXECUTOR — one filter → aggregate → build pass
// ============================================================================
// Entry point: Execute(view, selection, opts...)
//
// Pipeline:
//   1. Validate selection and options
//   2. Apply filters → SubView
//   3. KPIs, grouped sums, hierarchy, top-N
//   4. Build charts, cards and the details table
//
// The pass is synchronous and reads the base view without mutating it.
// ============================================================================

// Execute runs one report pass over the base dataset.
//
// Options:
//   - WithTopN(n): number of ranked projects (default 10)
//   - WithCurrencySymbol(s): display prefix for money values
//   - WithLanguage(tag): locale for thousands separators
func Execute(view RecordView, sel Selection, opts ...Option) (*Report, error) {
	cfg := applyOptions(opts)

	if err := sel.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	filtered := ApplyFilters(view, sel)
	log.Printf("report: %d of %d projects match %s", filtered.Len(), view.Len(), SelectionLabel(sel))

	r := &Report{
		ID:        uuid.NewString(),
		Selection: sel,
		KPIs:      ComputeKPIs(filtered),
		View:      filtered,
	}

	var err error
	if r.ByRegion, err = Aggregate(filtered, AggregateSpec{GroupBy: []Field{FieldRegion}, Op: OpSum}); err != nil {
		return nil, err
	}
	if r.BySector, err = Aggregate(filtered, AggregateSpec{GroupBy: []Field{FieldSector}, Op: OpSum}); err != nil {
		return nil, err
	}
	if r.ByFinanceStatus, err = Aggregate(filtered, AggregateSpec{GroupBy: []Field{FieldFinanceStatus}, Op: OpSum}); err != nil {
		return nil, err
	}
	if r.Hierarchy, err = GroupHierarchy(filtered, cfg.Levels); err != nil {
		return nil, err
	}
	if r.TopProjects, err = TopN(filtered, cfg.TopN); err != nil {
		return nil, err
	}

	r.Cards = BuildKPICards(r.KPIs, cfg.CurrencySymbol, cfg.Language)
	r.Charts = BuildCharts(r)
	r.Table = BuildTable(filtered, cfg.CurrencySymbol, cfg.Language)

	return r, nil
}
