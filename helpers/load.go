package helpers

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spektr-org/portfolio/schema"
)

// Source names where the base dataset lives.
// Sheet applies to .xlsx files, Table to SQLite files.
type Source struct {
	Path  string
	Sheet string
	Table string
}

// ReadFile reads a raw table, choosing the reader by file extension.
func ReadFile(ctx context.Context, src Source) (schema.RawTable, error) {
	switch ext := strings.ToLower(filepath.Ext(src.Path)); ext {
	case ".csv":
		f, err := os.Open(src.Path)
		if err != nil {
			return schema.RawTable{}, fmt.Errorf("open %s: %w", src.Path, err)
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx", ".xlsm":
		f, err := os.Open(src.Path)
		if err != nil {
			return schema.RawTable{}, fmt.Errorf("open %s: %w", src.Path, err)
		}
		defer f.Close()
		return ReadXLSX(f, src.Sheet)
	case ".db", ".sqlite", ".sqlite3":
		if _, err := os.Stat(src.Path); err != nil {
			return schema.RawTable{}, fmt.Errorf("open %s: %w", src.Path, err)
		}
		return ReadSQLite(ctx, src.Path, src.Table)
	default:
		return schema.RawTable{}, fmt.Errorf("unsupported data file %q (want .csv, .xlsx or a SQLite file)", ext)
	}
}

// LoadFile reads and normalizes a dataset file.
func LoadFile(ctx context.Context, src Source) (*schema.Result, error) {
	raw, err := ReadFile(ctx, src)
	if err != nil {
		return nil, err
	}
	res, err := schema.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", src.Path, err)
	}

	log.Printf("loaded %d projects from %s", res.Rows, src.Path)
	for _, s := range res.Skipped {
		log.Printf("ignored column %q: %s", s.Column, s.Reason)
	}
	if len(res.Coerced) > 0 {
		log.Printf("%d investment value(s) unreadable or negative, counted as 0", len(res.Coerced))
	}
	return res, nil
}

// ============================================================================
// CACHE — load on first use, keep until exit
// ============================================================================

// Cache holds the base dataset for the life of the process.
// The first Get runs the loader; later calls return the same result or error.
// The cached dataset is read-only, so callers share it without locking.
type Cache struct {
	load func(context.Context) (*schema.Result, error)

	once sync.Once
	res  *schema.Result
	err  error
}

// NewCache creates a cache around an arbitrary loader.
func NewCache(load func(context.Context) (*schema.Result, error)) *Cache {
	return &Cache{load: load}
}

// NewFileCache creates a cache that loads src with LoadFile.
func NewFileCache(src Source) *Cache {
	return NewCache(func(ctx context.Context) (*schema.Result, error) {
		return LoadFile(ctx, src)
	})
}

// Get returns the cached dataset, loading it on the first call.
func (c *Cache) Get(ctx context.Context) (*schema.Result, error) {
	c.once.Do(func() {
		c.res, c.err = c.load(context.WithoutCancel(ctx))
	})
	return c.res, c.err
}
