package schema

import (
	"github.com/spektr-org/portfolio/engine"
)

// ============================================================================
// SCHEMA — Canonical shape of the investment dataset
// ============================================================================
// Raw tables arrive from spreadsheets with drifting header spellings. The
// normalizer maps them once, at load time, onto the canonical columns below;
// nothing downstream looks at raw headers again.
// ============================================================================

// Canonical header names, also used as the export header row.
const (
	HeaderRegion        = "Region"
	HeaderSector        = "Sector"
	HeaderFinanceStatus = "Link to finance"
	HeaderCity          = "City"
	HeaderProject       = "Project"
	HeaderInvestment    = "Investment"
)

// Historical spellings of the investment header, tried before the fuzzy match.
var InvestmentSpellings = []string{HeaderInvestment, "Investment volume"}

// RawTable is a header row plus data rows as read from a source.
// Rows may be shorter than Headers; missing cells read as "".
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Column describes one canonical column of the dataset.
type Column struct {
	Field    engine.Field    `json:"field"`
	Header   string          `json:"header"`
	Matchers []HeaderMatcher `json:"-"`
}

// Columns lists the canonical columns in export order.
var Columns = []Column{
	{Field: engine.FieldRegion, Header: HeaderRegion, Matchers: requiredMatchers(HeaderRegion)},
	{Field: engine.FieldSector, Header: HeaderSector, Matchers: requiredMatchers(HeaderSector)},
	{Field: engine.FieldFinanceStatus, Header: HeaderFinanceStatus, Matchers: requiredMatchers(HeaderFinanceStatus)},
	{Field: engine.FieldCity, Header: HeaderCity, Matchers: requiredMatchers(HeaderCity)},
	{Field: engine.FieldProjectName, Header: HeaderProject, Matchers: requiredMatchers(HeaderProject)},
	{Field: FieldInvestment, Header: HeaderInvestment, Matchers: InvestmentMatchers()},
}

// FieldInvestment names the measure column in ColumnMap and error reports.
const FieldInvestment engine.Field = "investment"

// CanonicalHeaders returns the export header row.
func CanonicalHeaders() []string {
	headers := make([]string, len(Columns))
	for i, c := range Columns {
		headers[i] = c.Header
	}
	return headers
}

// ============================================================================
// NORMALIZE RESULT
// ============================================================================

// ResolvedColumn records which raw header a canonical column was read from.
type ResolvedColumn struct {
	Field     engine.Field `json:"field"`
	RawHeader string       `json:"rawHeader"`
	Index     int          `json:"index"`
	Matcher   string       `json:"matcher"`
}

// SkippedColumn records a raw column that maps to no canonical field.
type SkippedColumn struct {
	Column string `json:"column"`
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Coercion records an investment cell replaced by 0.
// Row is the 1-based data row number (the header is row 0).
type Coercion struct {
	Row int    `json:"row"`
	Raw string `json:"raw"`
}

// Result is a normalized dataset plus what the normalizer did to get there.
type Result struct {
	Dataset   *engine.SliceView `json:"-"`
	Columns   []ResolvedColumn  `json:"columns"`
	Skipped   []SkippedColumn   `json:"skipped,omitempty"`
	Coerced   []Coercion        `json:"coerced,omitempty"`
	Rows      int               `json:"rows"`
	BlankRows int               `json:"blankRows,omitempty"`
}
