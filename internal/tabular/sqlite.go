package tabular

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mfateev/agent-planner/internal/log"
)

// inspectSQLite lists every user table with its declared columns and row count.
func inspectSQLite(ctx context.Context, path string) (string, error) {
	conn, err := sql.Open("sqlite", readOnlyDSN(path))
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { log.CloseError("database "+path, conn.Close()) }()

	tables, err := listTables(ctx, conn)
	if err != nil {
		return "", err
	}
	if len(tables) == 0 {
		return "", fmt.Errorf("%s has no tables", path)
	}

	var b strings.Builder
	for i, table := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		var rows int64
		if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(table)).Scan(&rows); err != nil {
			return "", fmt.Errorf("failed to count rows of %s: %w", table, err)
		}
		fmt.Fprintf(&b, "table %s (%d rows):\n", table, rows)

		cols, err := tableColumns(ctx, conn, table)
		if err != nil {
			return "", err
		}
		b.WriteString(cols)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func listTables(ctx context.Context, conn *sql.DB) ([]string, error) {
	rows, err := conn.QueryContext(ctx,
		`SELECT name FROM sqlite_master
		 WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func tableColumns(ctx context.Context, conn *sql.DB, table string) (string, error) {
	rows, err := conn.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(table)+")")
	if err != nil {
		return "", fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer rows.Close()

	var b strings.Builder
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return "", fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		if ctype == "" {
			ctype = "ANY"
		}
		fmt.Fprintf(&b, "- %s: %s", name, ctype)
		if pk > 0 {
			b.WriteString(" (primary key)")
		} else if notNull == 1 {
			b.WriteString(" (not null)")
		}
		b.WriteString("\n")
	}
	return b.String(), rows.Err()
}

// readOnlyDSN builds a read-only file URI for path. The path is escaped so
// that '?' or '#' in a file name cannot end the path early.
func readOnlyDSN(path string) string {
	u := url.URL{
		Scheme:   "file",
		Opaque:   escapePath(filepath.ToSlash(path)),
		RawQuery: "mode=ro&_pragma=busy_timeout(5000)",
	}
	return u.String()
}

func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
