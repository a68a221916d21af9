package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancarlos335/table-sync/internal/reconcile"
	"github.com/iancarlos335/table-sync/internal/sqlgen"
)

// ScriptWriter runs the same fetch, reconcile and generate pipeline as the
// orchestrator but writes one <table>.sql file per table instead of
// executing against the target. Each script carries its own TRY/CATCH
// transaction wrapper so it stays all-or-nothing when run later.
type ScriptWriter struct {
	schemas SchemaReader
	fetcher TableFetcher
	opts    Options
	outDir  string
}

func NewScriptWriter(schemas SchemaReader, fetcher TableFetcher, opts Options, outDir string) *ScriptWriter {
	opts.PrimaryKey = strings.ToUpper(strings.TrimSpace(opts.PrimaryKey))
	return &ScriptWriter{schemas: schemas, fetcher: fetcher, opts: opts, outDir: outDir}
}

// Run writes a script (or a skip placeholder) for every requested table.
// Only the output directory being unwritable is fatal.
func (w *ScriptWriter) Run() ([]Outcome, error) {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output folder %s: %w", w.outDir, err)
	}

	var outcomes []Outcome
	for _, table := range w.opts.Tables {
		out := w.scriptTable(table)
		outcomes = append(outcomes, out)
		if w.opts.OnTableDone != nil {
			w.opts.OnTableDone()
		}
	}
	return outcomes, nil
}

func (w *ScriptWriter) scriptTable(table string) Outcome {
	path := filepath.Join(w.outDir, table+".sql")

	writeSkip := func(kind ErrorKind, note string) Outcome {
		log.Printf("Skipping %s: %s", table, note)
		content := fmt.Sprintf("-- Skipped: %s.\n", note)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return Outcome{Table: table, Attempted: true, Kind: ErrStatement, Note: err.Error()}
		}
		return Outcome{Table: table, Skipped: true, Kind: kind, Note: note}
	}

	ts := w.schemas.DescribeTable(table)
	if ts.Empty() {
		return writeSkip(ErrSchemaLookup, "no schema information retrieved from target")
	}

	rel, err := w.fetcher.FetchTable(table, w.opts.FilterColumn, w.opts.FilterValue)
	if err != nil {
		log.Printf("Warning: fetch failed for %s: %v", table, err)
		return Outcome{Table: table, Attempted: true, Kind: ErrFetch, Note: err.Error()}
	}
	if rel.Empty() {
		return writeSkip(ErrNone, "no source rows matched the filter")
	}

	rec := reconcile.Reconcile(ts, rel)
	if rec.Empty() {
		return writeSkip(ErrReconcileEmpty, "no common columns between source and target")
	}

	stmts, skippedRows := generateStatements(w.opts.Mode, w.opts.PrimaryKey, table, rec, rel)
	if len(stmts) == 0 {
		out := writeSkip(ErrNone, "all rows skipped during statement generation")
		out.SkippedRows = skippedRows
		return out
	}

	bracket := w.opts.Mode == ModeInsert && ts.HasIdentity()
	script := renderScript(table, rec, stmts, bracket)
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return Outcome{Table: table, Attempted: true, Kind: ErrStatement, Note: err.Error()}
	}

	log.Printf("Wrote %s (%d statements)", path, len(stmts))
	return Outcome{
		Table:        table,
		Attempted:    true,
		Committed:    true,
		RowsAffected: len(stmts),
		SkippedRows:  skippedRows,
	}
}

func renderScript(table string, rec *reconcile.Result, stmts []string, bracketIdentity bool) string {
	var b strings.Builder

	names := make([]string, len(rec.Usable))
	for i, c := range rec.Usable {
		names[i] = c.Name
	}
	fmt.Fprintf(&b, "-- SQL for table: %s\n", table)
	fmt.Fprintf(&b, "-- Using columns: %s\n", strings.Join(names, ", "))
	b.WriteString("BEGIN TRY\n")
	b.WriteString("    BEGIN TRANSACTION;\n\n")

	if bracketIdentity {
		fmt.Fprintf(&b, "    %s\n\n", sqlgen.IdentityInsert(table, true))
	}
	for _, stmt := range stmts {
		fmt.Fprintf(&b, "    %s\n\n", stmt)
	}
	if bracketIdentity {
		fmt.Fprintf(&b, "    %s\n\n", sqlgen.IdentityInsert(table, false))
	}

	b.WriteString("    COMMIT TRANSACTION;\n")
	b.WriteString("END TRY\n")
	b.WriteString("BEGIN CATCH\n")
	b.WriteString("    IF (@@TRANCOUNT > 0) ROLLBACK TRANSACTION;\n")
	fmt.Fprintf(&b, "    PRINT 'Error occurred in SQL execution for table %s: ' + ERROR_MESSAGE();\n", table)
	b.WriteString("    THROW;\n")
	b.WriteString("END CATCH;\n")

	return b.String()
}
