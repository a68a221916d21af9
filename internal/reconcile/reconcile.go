// Package reconcile computes which source columns are safe to write, given
// both the source row set and the target's live schema.
package reconcile

import (
	"strings"

	"github.com/iancarlos335/table-sync/internal/schema"
	"github.com/iancarlos335/table-sync/internal/source"
	"github.com/iancarlos335/table-sync/internal/sqlgen"
)

// Result is the reconciled column set for one table. Usable keeps the
// source's column order and maps each name to the index of its first
// occurrence in the source row (first-occurrence-wins for names that collide
// after uppercasing). Given the same schema and relation, the result is
// identical across calls.
type Result struct {
	Table             string
	Usable            []sqlgen.ColumnSpec
	ExcludedTimestamp []string
	Duplicates        []string
}

// Empty reports that no usable columns remain; the table must be skipped
// with no SQL generated.
func (r *Result) Empty() bool {
	return len(r.Usable) == 0
}

// Reconcile intersects the relation's columns with the target schema.
// Matching is case-insensitive (both sides uppercased); order follows the
// source, not the target; Timestamp-category columns are removed and
// recorded, since they are system-generated and must never be written.
func Reconcile(ts *schema.TableSchema, rel *source.Relation) *Result {
	res := &Result{Table: rel.Table}

	seen := make(map[string]bool, len(rel.Columns))
	for i, raw := range rel.Columns {
		name := strings.ToUpper(strings.TrimSpace(raw))
		if seen[name] {
			res.Duplicates = append(res.Duplicates, name)
			continue
		}
		seen[name] = true

		col, ok := ts.Lookup(name)
		if !ok {
			continue
		}
		if col.Category == schema.CategoryTimestamp {
			res.ExcludedTimestamp = append(res.ExcludedTimestamp, name)
			continue
		}
		res.Usable = append(res.Usable, sqlgen.ColumnSpec{
			Name:     name,
			Index:    i,
			Category: col.Category,
		})
	}

	return res
}
