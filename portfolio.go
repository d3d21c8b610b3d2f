// Package portfolio reports on a dataset of investment projects.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/portfolio/engine"
//	    "github.com/spektr-org/portfolio/helpers"
//	)
//
//	res, err := helpers.LoadFile(ctx, helpers.Source{Path: "data.xlsx"})
//	report, err := engine.Execute(res.Dataset, engine.Selection{
//	    engine.FieldRegion: "Africa",
//	}, engine.WithTopN(10))
//
// The schema package maps raw spreadsheet headers onto the canonical project
// columns once, at load time. The engine then filters by facet, aggregates
// investment exactly, ranks projects and builds render-ready charts; it never
// performs I/O. helpers reads CSV, XLSX and SQLite sources and writes the CSV
// export; server and cmd/portfolio are thin presentation layers.
package portfolio
