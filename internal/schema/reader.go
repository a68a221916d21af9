package schema

import (
	"database/sql"
	"log"
	"strings"
)

// columnsQuery joins the column, table and type catalogs for one table,
// ordered by ordinal position. Returns column name, declared type name and
// the identity flag.
const columnsQuery = `
	SELECT c.name, t.name, c.is_identity
	FROM sys.columns c
	JOIN sys.tables tb ON c.object_id = tb.object_id
	JOIN sys.types t ON c.user_type_id = t.user_type_id
	WHERE tb.name = @p1
	ORDER BY c.column_id`

// Reader describes tables from the target database's system catalog.
type Reader struct {
	db *sql.DB
}

func NewReader(db *sql.DB) *Reader {
	return &Reader{db: db}
}

// DescribeTable returns the target's column catalog for one table. A missing
// table or a failed catalog query yields an empty schema rather than an
// error; the caller skips the table.
func (r *Reader) DescribeTable(table string) *TableSchema {
	ts := &TableSchema{Table: table}

	rows, err := r.db.Query(columnsQuery, table)
	if err != nil {
		log.Printf("Warning: schema lookup failed for %s: %v (skipping)", table, err)
		return ts
	}
	defer rows.Close()

	for rows.Next() {
		var name, declared string
		var isIdentity bool
		if err := rows.Scan(&name, &declared, &isIdentity); err != nil {
			log.Printf("Warning: schema scan failed for %s: %v (skipping)", table, err)
			return &TableSchema{Table: table}
		}
		ts.Columns = append(ts.Columns, ColumnInfo{
			Name:       strings.ToUpper(strings.TrimSpace(name)),
			Category:   Classify(declared),
			IsIdentity: isIdentity,
		})
	}
	if err := rows.Err(); err != nil {
		log.Printf("Warning: schema iteration failed for %s: %v (skipping)", table, err)
		return &TableSchema{Table: table}
	}

	return ts
}
