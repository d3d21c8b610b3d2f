package helpers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/spektr-org/portfolio/schema"
)

// ReadSQLite reads every row of a table from a SQLite database file.
// An empty table name selects the first user table by name. Column names
// become headers and every value is rendered as text; NULL reads as "".
func ReadSQLite(ctx context.Context, path, table string) (schema.RawTable, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return schema.RawTable{}, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if table == "" {
		if table, err = firstUserTable(ctx, db); err != nil {
			return schema.RawTable{}, err
		}
	}

	rows, err := db.QueryxContext(ctx, fmt.Sprintf("SELECT * FROM %s", quoteIdent(table)))
	if err != nil {
		return schema.RawTable{}, fmt.Errorf("query table %q: %w", table, err)
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return schema.RawTable{}, fmt.Errorf("read columns of %q: %w", table, err)
	}

	var out [][]string
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return schema.RawTable{}, fmt.Errorf("scan row %d of %q: %w", len(out)+1, table, err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = cellText(v)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return schema.RawTable{}, fmt.Errorf("iterate %q: %w", table, err)
	}

	return schema.RawTable{Headers: headers, Rows: out}, nil
}

func firstUserTable(ctx context.Context, db *sqlx.DB) (string, error) {
	const q = `SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name LIMIT 1`
	var name string
	if err := db.GetContext(ctx, &name, q); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("no user tables found")
		}
		return "", fmt.Errorf("find table: %w", err)
	}
	return name, nil
}

// cellText renders a driver value the way a spreadsheet cell would read.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
