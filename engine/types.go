package engine

import (
	"github.com/shopspring/decimal"
)

// ============================================================================
// PORTFOLIO ENGINE TYPES
// ============================================================================
// Project rows are read through RecordView; the engine never owns or mutates
// the base dataset. Every pass produces fresh views and results.
// ============================================================================

// ============================================================================
// PROJECT — one row of the investment dataset
// ============================================================================

// Project is a single investment project.
// Investment is always non-negative; the schema normalizer coerces bad input to 0.
type Project struct {
	Region        string          `json:"region"`
	Sector        string          `json:"sector"`
	FinanceStatus string          `json:"financeStatus"`
	City          string          `json:"city"`
	ProjectName   string          `json:"projectName"`
	Investment    decimal.Decimal `json:"investment"`
}

// ============================================================================
// FIELDS — addressable string attributes of a Project
// ============================================================================

// Field names a string attribute of Project usable for filtering or grouping.
type Field string

const (
	FieldRegion        Field = "region"
	FieldSector        Field = "sector"
	FieldFinanceStatus Field = "financeStatus"
	FieldCity          Field = "city"
	FieldProjectName   Field = "projectName"
)

// Facets are the fields a Selection may constrain, in display order.
var Facets = []Field{FieldRegion, FieldSector, FieldFinanceStatus}

// Value returns the field's value on p. Unknown fields yield "".
func (f Field) Value(p Project) string {
	switch f {
	case FieldRegion:
		return p.Region
	case FieldSector:
		return p.Sector
	case FieldFinanceStatus:
		return p.FinanceStatus
	case FieldCity:
		return p.City
	case FieldProjectName:
		return p.ProjectName
	}
	return ""
}

// Valid reports whether f names a Project attribute.
func (f Field) Valid() bool {
	switch f {
	case FieldRegion, FieldSector, FieldFinanceStatus, FieldCity, FieldProjectName:
		return true
	}
	return false
}

// IsFacet reports whether f can appear in a Selection.
func (f Field) IsFacet() bool {
	for _, facet := range Facets {
		if f == facet {
			return true
		}
	}
	return false
}

// ============================================================================
// SELECTION — facet constraints for one pass
// ============================================================================

// All is the selection sentinel meaning "no constraint on this facet".
const All = "All"

// Selection maps a facet to a concrete value or All.
// A facet missing from the map imposes no constraint.
type Selection map[Field]string

// Constrained reports whether the selection restricts facet.
func (s Selection) Constrained(facet Field) bool {
	v, ok := s[facet]
	return ok && v != All
}

// IsEmpty returns true if no facet is constrained.
func (s Selection) IsEmpty() bool {
	for facet := range s {
		if s.Constrained(facet) {
			return false
		}
	}
	return true
}

// Validate rejects selections that name non-facet fields.
func (s Selection) Validate() error {
	for facet := range s {
		if !facet.IsFacet() {
			return invalidArgument("selection", "unknown facet %q", facet)
		}
	}
	return nil
}

// ============================================================================
// AGGREGATES
// ============================================================================

// Op is an aggregation operator.
type Op string

const (
	OpSum           Op = "sum"
	OpMean          Op = "mean"
	OpCount         Op = "count"
	OpDistinctCount Op = "distinctCount"
)

// AggregateSpec describes one aggregation over a view.
// Field is only read by OpDistinctCount.
type AggregateSpec struct {
	GroupBy []Field
	Op      Op
	Field   Field
}

// AggregateRow is one group key and its aggregated value.
// Count is the number of records in the group regardless of Op.
type AggregateRow struct {
	Key   []string        `json:"key"`
	Value decimal.Decimal `json:"value"`
	Count int             `json:"count"`
}

// Group is a node of a hierarchical aggregation.
// Value is the sum of the measure over every record below the node.
type Group struct {
	Key       string          `json:"key"`
	Label     string          `json:"label"`
	Path      []string        `json:"path"`
	Value     decimal.Decimal `json:"value"`
	Count     int             `json:"count"`
	SubGroups []Group         `json:"subGroups,omitempty"`
	View      RecordView      `json:"-"` // Sub-view for records in this group (zero-copy)
}

// KPIs are the four headline values of a report.
type KPIs struct {
	TotalInvestment   decimal.Decimal `json:"totalInvestment"`
	ProjectCount      int             `json:"projectCount"`
	DistinctCities    int             `json:"distinctCities"`
	AverageInvestment decimal.Decimal `json:"averageInvestment"`
}

// ============================================================================
// REPORT — render-ready output of one pass
// ============================================================================

// Report is everything the presentation layer needs for one selection.
type Report struct {
	ID        string    `json:"id"`
	Selection Selection `json:"selection"`

	KPIs            KPIs           `json:"kpis"`
	ByRegion        []AggregateRow `json:"byRegion"`
	BySector        []AggregateRow `json:"bySector"`
	ByFinanceStatus []AggregateRow `json:"byFinanceStatus"`
	Hierarchy       []Group        `json:"hierarchy"`
	TopProjects     []Project      `json:"topProjects"`

	Cards  []KPICard     `json:"cards"`
	Charts []ChartConfig `json:"charts"`
	Table  *TableData    `json:"table"`

	View RecordView `json:"-"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ID         string        `json:"id"`
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series,omitempty"`
	Tree       []TreeNode    `json:"tree,omitempty"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
// Hover carries extra labels such as the project name on the top-N chart.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Hover string  `json:"hover,omitempty"`
}

// TreeNode is a treemap cell.
type TreeNode struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	Value    float64    `json:"value"`
	Children []TreeNode `json:"children,omitempty"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "currency"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// KPI CARDS
// ============================================================================

// KPICard is one formatted headline metric.
type KPICard struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}
