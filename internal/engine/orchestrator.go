package engine

import (
	"fmt"
	"log"
	"strings"

	"github.com/iancarlos335/table-sync/internal/reconcile"
	"github.com/iancarlos335/table-sync/internal/schema"
	"github.com/iancarlos335/table-sync/internal/source"
	"github.com/iancarlos335/table-sync/internal/sqlgen"
)

// Mode selects the generated DML shape.
type Mode string

const (
	ModeInsert Mode = "INSERT"
	ModeUpdate Mode = "UPDATE"
)

// ParseMode validates an operation mode before any connection is opened.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeInsert:
		return ModeInsert, nil
	case ModeUpdate:
		return ModeUpdate, nil
	default:
		return "", fmt.Errorf("invalid operation mode %q (want INSERT or UPDATE)", s)
	}
}

// SchemaReader and TableFetcher are the orchestrator's upstream
// collaborators, narrowed for substitution in tests.
type SchemaReader interface {
	DescribeTable(table string) *schema.TableSchema
}

type TableFetcher interface {
	FetchTable(table, filterColumn string, filterValue any) (*source.Relation, error)
}

// Options is the immutable per-run configuration handed to the orchestrator
// at construction.
type Options struct {
	Tables       []string
	FilterColumn string
	FilterValue  string
	Mode         Mode
	PrimaryKey   string // required for ModeUpdate, uppercased before matching
	PreDelete    bool
	OnTableDone  func() // progress hook, may be nil
}

// Report is the aggregate outcome of one run: per-table outcomes for each
// pass plus the pass-level summaries.
type Report struct {
	PreDelete []Outcome
	Data      []Outcome
}

func (r *Report) PreDeleteSummary() PassSummary { return Summarize(r.PreDelete) }
func (r *Report) DataSummary() PassSummary      { return Summarize(r.Data) }

// Orchestrator sequences fetch, reconcile, generate and apply across the
// requested tables, strictly in list order. Tables are independent: one
// table's failure never touches another table's transaction.
type Orchestrator struct {
	schemas SchemaReader
	fetcher TableFetcher
	applier *Applier
	opts    Options
}

func NewOrchestrator(schemas SchemaReader, fetcher TableFetcher, applier *Applier, opts Options) *Orchestrator {
	opts.PrimaryKey = strings.ToUpper(strings.TrimSpace(opts.PrimaryKey))
	return &Orchestrator{schemas: schemas, fetcher: fetcher, applier: applier, opts: opts}
}

// Run processes every requested table. Failures below the table level are
// absorbed into outcomes; callers decide how to report them.
func (o *Orchestrator) Run() *Report {
	report := &Report{}

	for _, table := range o.opts.Tables {
		if o.opts.PreDelete && o.opts.FilterColumn != "" {
			out := o.applier.PreDelete(table, o.opts.FilterColumn, o.opts.FilterValue)
			if !out.Committed {
				log.Printf("Warning: pre-delete failed for %s: %s", table, out.Note)
			}
			report.PreDelete = append(report.PreDelete, out)
		}

		report.Data = append(report.Data, o.syncTable(table))

		if o.opts.OnTableDone != nil {
			o.opts.OnTableDone()
		}
	}

	return report
}

func (o *Orchestrator) syncTable(table string) Outcome {
	skip := func(kind ErrorKind, note string) Outcome {
		log.Printf("Skipping %s: %s", table, note)
		return Outcome{Table: table, Skipped: true, Kind: kind, Note: note}
	}

	ts := o.schemas.DescribeTable(table)
	if ts.Empty() {
		return skip(ErrSchemaLookup, "no schema information retrieved from target")
	}

	rel, err := o.fetcher.FetchTable(table, o.opts.FilterColumn, o.opts.FilterValue)
	if err != nil {
		log.Printf("Warning: fetch failed for %s: %v", table, err)
		return Outcome{Table: table, Attempted: true, Kind: ErrFetch, Note: err.Error()}
	}
	if rel.Empty() {
		return skip(ErrNone, "no source rows matched the filter")
	}

	rec := reconcile.Reconcile(ts, rel)
	for _, d := range rec.Duplicates {
		log.Printf("Warning: %s: duplicate source column %s, first occurrence wins", table, d)
	}
	if rec.Empty() {
		return skip(ErrReconcileEmpty, "no common columns between source and target")
	}

	stmts, skippedRows := generateStatements(o.opts.Mode, o.opts.PrimaryKey, table, rec, rel)
	if len(stmts) == 0 {
		out := skip(ErrNone, "all rows skipped during statement generation")
		out.SkippedRows = skippedRows
		return out
	}

	bracket := o.opts.Mode == ModeInsert && ts.HasIdentity()
	out := o.applier.ApplyTable(table, stmts, bracket)
	out.SkippedRows = skippedRows
	return out
}

// generateStatements builds one statement per row, recording (not failing
// on) rows the UPDATE shape cannot express.
func generateStatements(mode Mode, pk, table string, rec *reconcile.Result, rel *source.Relation) (stmts []string, skippedRows int) {
	loggedMissingKey := false

	for i, row := range rel.Rows {
		switch mode {
		case ModeUpdate:
			stmt, err := sqlgen.BuildUpdate(table, rec.Usable, row, pk)
			if err != nil {
				skippedRows++
				// The key is missing for every row alike; say so once.
				if !loggedMissingKey {
					log.Printf("Warning: %s row %d skipped: %v", table, i+1, err)
					loggedMissingKey = true
				}
				continue
			}
			stmts = append(stmts, stmt)
		default:
			stmts = append(stmts, sqlgen.BuildInsert(table, rec.Usable, row))
		}
	}
	return stmts, skippedRows
}
