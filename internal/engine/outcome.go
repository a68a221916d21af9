package engine

// ErrorKind classifies why a table did not fully commit. Everything below
// the connection level is absorbed into outcomes; only connection failures
// halt the run.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrSchemaLookup
	ErrFetch
	ErrReconcileEmpty
	ErrStatement
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSchemaLookup:
		return "SCHEMA_LOOKUP"
	case ErrFetch:
		return "FETCH"
	case ErrReconcileEmpty:
		return "NO_USABLE_COLUMNS"
	case ErrStatement:
		return "STATEMENT"
	default:
		return "NONE"
	}
}

// Outcome is the result of one pass over one table. The pre-delete pass and
// the data pass are tracked independently.
type Outcome struct {
	Table        string
	Attempted    bool
	Committed    bool
	Skipped      bool
	RowsAffected int
	SkippedRows  int
	Kind         ErrorKind
	Note         string
}

// PassSummary aggregates one pass across all tables.
type PassSummary struct {
	Attempted int
	Succeeded int
	Skipped   int
}

// Failed is derived by subtraction, never counted directly.
func (s PassSummary) Failed() int {
	return s.Attempted - s.Succeeded
}

// Summarize folds per-table outcomes into one pass summary.
func Summarize(outcomes []Outcome) PassSummary {
	var s PassSummary
	for _, o := range outcomes {
		if o.Skipped {
			s.Skipped++
			continue
		}
		if o.Attempted {
			s.Attempted++
		}
		if o.Committed {
			s.Succeeded++
		}
	}
	return s
}
