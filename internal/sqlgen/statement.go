package sqlgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iancarlos335/table-sync/internal/schema"
)

// Row-level skip reasons for UPDATE generation. Both are recorded by the
// caller, not fatal for the table.
var (
	ErrMissingKey   = errors.New("primary key column not among usable columns")
	ErrNoSetColumns = errors.New("no columns to update besides the primary key")
)

// ColumnSpec is one usable column of a reconciled set: its uppercased name,
// the index of its first occurrence in the source row, and the target's type
// category.
type ColumnSpec struct {
	Name     string
	Index    int
	Category schema.TypeCategory
}

// QuoteIdent bracket-quotes an identifier so reserved words and mixed case
// survive.
func QuoteIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

// FormatRow normalizes and formats one source row into literal text, in
// reconciled column order.
func FormatRow(cols []ColumnSpec, row []Value) []string {
	lits := make([]string, len(cols))
	for i, c := range cols {
		v := Normalize(row[c.Index], c.Category)
		lits[i] = Literal(v, c.Category == schema.CategoryNumeric)
	}
	return lits
}

// BuildInsert emits `INSERT INTO [T] ([C1], [C2], ...) VALUES (v1, v2, ...);`
// over the reconciled column order.
func BuildInsert(table string, cols []ColumnSpec, row []Value) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = QuoteIdent(c.Name)
	}
	lits := FormatRow(cols, row)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		QuoteIdent(table), strings.Join(names, ", "), strings.Join(lits, ", "))
}

// BuildUpdate emits `UPDATE [T] SET [C]=v, ... WHERE [PK]=v;`. The primary
// key (uppercased) must be a usable column and is excluded from the SET
// clause; missing key or an empty SET clause skips the row.
func BuildUpdate(table string, cols []ColumnSpec, row []Value, pk string) (string, error) {
	lits := FormatRow(cols, row)

	pkLit := ""
	found := false
	var sets []string
	for i, c := range cols {
		if c.Name == pk {
			pkLit = lits[i]
			found = true
			continue
		}
		sets = append(sets, QuoteIdent(c.Name)+" = "+lits[i])
	}
	if !found {
		return "", fmt.Errorf("column %s: %w", pk, ErrMissingKey)
	}
	if len(sets) == 0 {
		return "", ErrNoSetColumns
	}

	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s;",
		QuoteIdent(table), strings.Join(sets, ", "), QuoteIdent(pk), pkLit), nil
}

// IdentityInsert emits the bracketing statement that toggles explicit writes
// to an identity column.
func IdentityInsert(table string, on bool) string {
	state := "OFF"
	if on {
		state = "ON"
	}
	return fmt.Sprintf("SET IDENTITY_INSERT %s %s;", QuoteIdent(table), state)
}
