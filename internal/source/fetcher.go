package source

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/iancarlos335/table-sync/internal/sqlgen"
)

// Relation is one table's filtered row set from the source database.
// Columns keeps the source's left-to-right order (uppercased, duplicates
// preserved); each row is indexed positionally against it.
type Relation struct {
	Table   string
	Columns []string
	Rows    [][]sqlgen.Value
}

func (r *Relation) Empty() bool {
	return len(r.Rows) == 0
}

// Fetcher reads filtered row sets from the source database. One connection,
// reused across tables; read-only.
type Fetcher struct {
	db     *sql.DB
	driver string
}

func NewFetcher(db *sql.DB, driver string) *Fetcher {
	return &Fetcher{db: db, driver: driver}
}

// placeholder returns the first bind-parameter marker for the configured
// driver. Only the equality filter is ever bound, so one marker suffices.
func placeholder(driver string) string {
	switch driver {
	case "sqlserver", "mssql":
		return "@p1"
	case "postgres":
		return "$1"
	case "oracle":
		return ":1"
	default:
		return "?"
	}
}

// FetchTable retrieves all source rows matching the equality filter. The
// filter value is always bound as a query parameter, never interpolated.
func (f *Fetcher) FetchTable(table, filterColumn string, filterValue any) (*Relation, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = %s",
		sqlgen.QuoteIdent(table), sqlgen.QuoteIdent(filterColumn), placeholder(f.driver))

	rows, err := f.db.Query(query, filterValue)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	rel := &Relation{Table: table, Columns: make([]string, len(names))}
	for i, n := range names {
		rel.Columns[i] = strings.ToUpper(strings.TrimSpace(n))
	}

	for rows.Next() {
		raw := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", table, err)
		}
		row := make([]sqlgen.Value, len(names))
		for i, v := range raw {
			row[i] = sqlgen.FromDriver(v)
		}
		rel.Rows = append(rel.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows of %s: %w", table, err)
	}

	return rel, nil
}
