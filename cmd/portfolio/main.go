package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spektr-org/portfolio/config"
	"github.com/spektr-org/portfolio/engine"
	"github.com/spektr-org/portfolio/helpers"
	"github.com/spektr-org/portfolio/server"
)

// ============================================================================
// PORTFOLIO CLI — investment portfolio reports from a spreadsheet
// ============================================================================

const version = "0.3.0"

const usage = `Portfolio — investment portfolio reports

Usage:
  portfolio facets [flags]
  portfolio report [flags]
  portfolio export [flags]
  portfolio serve  [flags]
  portfolio version

Examples:
  portfolio report --file data.xlsx --region Africa --format text
  portfolio export --file data.xlsx --sector Transport --out filtered.csv
  portfolio serve --file data.xlsx --addr :8080

Environment:
  PORTFOLIO_DATA, PORTFOLIO_SHEET, PORTFOLIO_TABLE, PORTFOLIO_TOP_N,
  PORTFOLIO_ADDR, PORTFOLIO_CURRENCY

Run "portfolio <command> -h" for command flags.
`

func main() {
	log.SetPrefix("[PORTFOLIO] ")

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fatalf("%v", err)
	}
}

func run(ctx context.Context, command string, args []string, stdout io.Writer) error {
	switch command {
	case "facets":
		return runFacets(ctx, args, stdout)
	case "report":
		return runReport(ctx, args, stdout)
	case "export":
		return runExport(ctx, args, stdout)
	case "serve":
		return runServe(ctx, args)
	case "version", "--version", "-version":
		fmt.Fprintf(stdout, "portfolio %s\n", version)
		return nil
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", command, usage)
	}
}

// ============================================================================
// FLAGS
// ============================================================================

type options struct {
	config.Config
	Region  string
	Sector  string
	Finance string
	Format  string
	Out     string
}

// parseOptions loads env defaults, then lets flags override them.
func parseOptions(name string, args []string, withSelection bool) (options, error) {
	cfg, err := config.Load()
	if err != nil {
		return options{}, err
	}
	opts := options{Config: cfg, Format: "json"}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&opts.DataPath, "file", opts.DataPath, "Path to the dataset (.xlsx, .csv or SQLite)")
	fs.StringVar(&opts.Sheet, "sheet", opts.Sheet, "Worksheet name for .xlsx files (default: first sheet)")
	fs.StringVar(&opts.Table, "table", opts.Table, "Table name for SQLite files (default: first table)")
	fs.StringVar(&opts.Out, "out", "", "Write output to file instead of stdout")
	if withSelection {
		fs.StringVar(&opts.Region, "region", engine.All, "Region filter")
		fs.StringVar(&opts.Sector, "sector", engine.All, "Sector filter")
		fs.StringVar(&opts.Finance, "finance", engine.All, "Finance status filter")
	}
	switch name {
	case "report":
		fs.IntVar(&opts.TopN, "top", opts.TopN, "Number of top projects to rank")
		fs.StringVar(&opts.Currency, "currency", opts.Currency, "Currency symbol for formatted values")
		fs.StringVar(&opts.Format, "format", opts.Format, "Output format: json, pretty, text, csv")
	case "facets":
		fs.StringVar(&opts.Format, "format", opts.Format, "Output format: json, pretty, text")
	case "serve":
		fs.IntVar(&opts.TopN, "top", opts.TopN, "Number of top projects to rank")
		fs.StringVar(&opts.Currency, "currency", opts.Currency, "Currency symbol for formatted values")
		fs.StringVar(&opts.Addr, "addr", opts.Addr, "HTTP listen address")
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func (o options) source() helpers.Source {
	return helpers.Source{Path: o.DataPath, Sheet: o.Sheet, Table: o.Table}
}

func (o options) selection() engine.Selection {
	return engine.Selection{
		engine.FieldRegion:        o.Region,
		engine.FieldSector:        o.Sector,
		engine.FieldFinanceStatus: o.Finance,
	}
}

func (o options) engineOptions() []engine.Option {
	return []engine.Option{
		engine.WithTopN(o.TopN),
		engine.WithCurrencySymbol(o.Currency),
	}
}

// output returns the writer for results and a close func.
func (o options) output(stdout io.Writer) (io.Writer, func() error, error) {
	if o.Out == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(o.Out)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, f.Close, nil
}

// closeWith runs closeOut and keeps its error when *err is still nil, so a
// failed flush of -out is reported.
func closeWith(closeOut func() error, err *error) {
	if cerr := closeOut(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close output: %w", cerr)
	}
}

// ============================================================================
// COMMANDS
// ============================================================================

func runFacets(ctx context.Context, args []string, stdout io.Writer) (err error) {
	opts, err := parseOptions("facets", args, false)
	if err != nil {
		return err
	}
	res, err := helpers.LoadFile(ctx, opts.source())
	if err != nil {
		return err
	}
	w, closeOut, err := opts.output(stdout)
	if err != nil {
		return err
	}
	defer closeWith(closeOut, &err)

	facets := engine.FacetIndex(res.Dataset)
	if opts.Format == "text" {
		for _, f := range facets {
			fmt.Fprintf(w, "%s:\n", engine.LabelForField(f.Facet))
			for _, v := range f.Values {
				fmt.Fprintf(w, "  %s\n", v)
			}
		}
		return nil
	}
	return writeJSON(w, facets, opts.Format)
}

func runReport(ctx context.Context, args []string, stdout io.Writer) (err error) {
	opts, err := parseOptions("report", args, true)
	if err != nil {
		return err
	}
	res, err := helpers.LoadFile(ctx, opts.source())
	if err != nil {
		return err
	}
	report, err := engine.Execute(res.Dataset, opts.selection(), opts.engineOptions()...)
	if err != nil {
		return err
	}

	w, closeOut, err := opts.output(stdout)
	if err != nil {
		return err
	}
	defer closeWith(closeOut, &err)

	switch opts.Format {
	case "text":
		_, err = fmt.Fprint(w, engine.BuildSummary(report))
		return err
	case "csv":
		return writeChartsCSV(w, report.Charts)
	default:
		return writeJSON(w, report, opts.Format)
	}
}

func runExport(ctx context.Context, args []string, stdout io.Writer) (err error) {
	opts, err := parseOptions("export", args, true)
	if err != nil {
		return err
	}
	sel := opts.selection()
	if err := sel.Validate(); err != nil {
		return err
	}
	res, err := helpers.LoadFile(ctx, opts.source())
	if err != nil {
		return err
	}
	body, err := helpers.ToDelimitedText(engine.ApplyFilters(res.Dataset, sel))
	if err != nil {
		return err
	}

	w, closeOut, err := opts.output(stdout)
	if err != nil {
		return err
	}
	defer closeWith(closeOut, &err)
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	if opts.Out != "" {
		log.Printf("exported %d bytes to %s", len(body), opts.Out)
	}
	return nil
}

func runServe(ctx context.Context, args []string) error {
	opts, err := parseOptions("serve", args, false)
	if err != nil {
		return err
	}
	cache := helpers.NewFileCache(opts.source())
	srv, err := server.New(cache, opts.engineOptions()...)
	if err != nil {
		return err
	}
	if _, err := cache.Get(ctx); err != nil {
		return err
	}
	return srv.Run(ctx, opts.Addr)
}

// ============================================================================
// OUTPUT
// ============================================================================

// writeChartsCSV writes every chart's single series as label,value blocks
// separated by a blank line. The treemap is flattened to one row per leaf path.
func writeChartsCSV(w io.Writer, charts []engine.ChartConfig) error {
	cw := csv.NewWriter(w)
	for i, chart := range charts {
		if i > 0 {
			if err := cw.Write([]string{}); err != nil {
				return err
			}
		}
		if len(chart.Tree) > 0 {
			if err := cw.Write([]string{chart.Title, "Path", "Investment"}); err != nil {
				return err
			}
			if err := writeTreeCSV(cw, chart.Title, "", chart.Tree); err != nil {
				return err
			}
			continue
		}
		xLabel, yLabel := chart.XAxis, chart.YAxis
		if xLabel == "" {
			xLabel = "Label"
		}
		if yLabel == "" {
			yLabel = "Value"
		}
		if err := cw.Write([]string{chart.Title, xLabel, yLabel}); err != nil {
			return err
		}
		for _, s := range chart.Series {
			for _, d := range s.Data {
				if err := cw.Write([]string{chart.Title, d.Label, fmtNum(d.Value)}); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeTreeCSV(cw *csv.Writer, title, prefix string, nodes []engine.TreeNode) error {
	for _, n := range nodes {
		path := n.Label
		if prefix != "" {
			path = prefix + " / " + n.Label
		}
		if len(n.Children) == 0 {
			if err := cw.Write([]string{title, path, fmtNum(n.Value)}); err != nil {
				return err
			}
			continue
		}
		if err := writeTreeCSV(cw, title, path, n.Children); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any, format string) error {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// ============================================================================
// HELPERS
// ============================================================================

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 2 decimals
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
