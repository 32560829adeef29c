// Package tabular summarizes the columns of tabular data files so the planner
// can describe a dataset to the model before any worker has loaded it.
package tabular

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSampleRows is how many data rows are read to infer column types.
const DefaultSampleRows = 200

// ErrUnsupported is returned for file types the inspector cannot read.
var ErrUnsupported = errors.New("unsupported tabular file type")

// Inspector reads column names and inferred types from CSV/TSV, JSON and
// SQLite files.
type Inspector struct {
	// SampleRows bounds the data rows read from CSV/TSV and JSON files.
	// Zero means DefaultSampleRows.
	SampleRows int
}

// NewInspector creates an Inspector with default settings.
func NewInspector() *Inspector {
	return &Inspector{SampleRows: DefaultSampleRows}
}

// ColumnInfo returns a human-readable column summary for path.
func (i *Inspector) ColumnInfo(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	limit := i.SampleRows
	if limit <= 0 {
		limit = DefaultSampleRows
	}

	var cols []column
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		cols, err = inspectDelimited(path, ',', limit)
	case ".tsv", ".tab":
		cols, err = inspectDelimited(path, '\t', limit)
	case ".json", ".jsonl", ".ndjson":
		cols, err = inspectJSON(path, limit)
	case ".db", ".sqlite", ".sqlite3":
		return inspectSQLite(ctx, path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
	if err != nil {
		return "", err
	}
	return formatColumns(cols), nil
}

// column is the inferred description of one column.
type column struct {
	name   string
	kind   string
	sample string
}

func formatColumns(cols []column) string {
	var b strings.Builder
	for _, c := range cols {
		fmt.Fprintf(&b, "- %s: %s", c.name, c.kind)
		if c.sample != "" {
			fmt.Fprintf(&b, " (e.g. %s)", c.sample)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
