package engine

import (
	"fmt"
	"log"

	"github.com/iancarlos335/table-sync/internal/sqlgen"
)

// Applier executes generated statements against the target, one transaction
// per table per pass, with rollback on the first unrecoverable error. No
// retries; every failure is terminal for its table within the run.
type Applier struct {
	conn Conn
}

func NewApplier(conn Conn) *Applier {
	return &Applier{conn: conn}
}

// PreDelete removes existing target rows matching the filter, as its own
// transaction. A failure here aborts only this table's pre-delete; the data
// pass still runs.
func (a *Applier) PreDelete(table, filterColumn string, filterValue any) Outcome {
	out := Outcome{Table: table, Attempted: true}

	tx, err := a.conn.Begin()
	if err != nil {
		out.Kind = ErrStatement
		out.Note = fmt.Sprintf("begin failed: %v", err)
		return out
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = @p1",
		sqlgen.QuoteIdent(table), sqlgen.QuoteIdent(filterColumn))
	res, err := tx.Exec(query, filterValue)
	if err != nil {
		tx.Rollback()
		out.Kind = ErrStatement
		out.Note = fmt.Sprintf("delete failed: %v", err)
		return out
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		out.RowsAffected = int(n)
	}

	if err := tx.Commit(); err != nil {
		out.Kind = ErrStatement
		out.Note = fmt.Sprintf("commit failed: %v", err)
		return out
	}
	out.Committed = true
	return out
}

// ApplyTable runs the data pass for one table: every row statement executes
// in order inside a single transaction, wrapped in identity-insert
// bracketing when requested. The first statement error rolls everything
// back, so either all rows commit together or none do.
func (a *Applier) ApplyTable(table string, stmts []string, bracketIdentity bool) Outcome {
	out := Outcome{Table: table, Attempted: true}

	tx, err := a.conn.Begin()
	if err != nil {
		out.Kind = ErrStatement
		out.Note = fmt.Sprintf("begin failed: %v", err)
		return out
	}

	fail := func(stmt string, err error) Outcome {
		tx.Rollback()
		out.RowsAffected = 0
		out.Kind = ErrStatement
		out.Note = fmt.Sprintf("statement failed: %v", err)
		log.Printf("Error: %s rolled back: %v (statement: %.100s)", table, err, stmt)
		return out
	}

	if bracketIdentity {
		stmt := sqlgen.IdentityInsert(table, true)
		if _, err := tx.Exec(stmt); err != nil {
			return fail(stmt, err)
		}
	}

	for _, stmt := range stmts {
		res, err := tx.Exec(stmt)
		if err != nil {
			return fail(stmt, err)
		}
		// A driver may not report a row count; count such statements as one
		// row so the counter stays monotonic and non-zero on success.
		n, err := res.RowsAffected()
		if err != nil || n < 1 {
			n = 1
		}
		out.RowsAffected += int(n)
	}

	if bracketIdentity {
		stmt := sqlgen.IdentityInsert(table, false)
		if _, err := tx.Exec(stmt); err != nil {
			return fail(stmt, err)
		}
	}

	if err := tx.Commit(); err != nil {
		out.RowsAffected = 0
		out.Kind = ErrStatement
		out.Note = fmt.Sprintf("commit failed: %v", err)
		return out
	}
	out.Committed = true
	return out
}
