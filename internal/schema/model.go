package schema

import "strings"

// TypeCategory is the coarse classification of a target column's declared
// type. It drives literal formatting and write exclusion: Timestamp columns
// are system-generated and never written, Numeric columns get unquoted
// literals, Date columns get a normalization pass before quoting.
type TypeCategory int

const (
	CategoryOther TypeCategory = iota
	CategoryDate
	CategoryTimestamp
	CategoryNumeric
)

func (c TypeCategory) String() string {
	switch c {
	case CategoryDate:
		return "date"
	case CategoryTimestamp:
		return "timestamp"
	case CategoryNumeric:
		return "numeric"
	default:
		return "other"
	}
}

// ColumnInfo describes one target column. Name is uppercased so that matching
// against source columns is case-insensitive everywhere downstream.
type ColumnInfo struct {
	Name       string
	Category   TypeCategory
	IsIdentity bool
}

// TableSchema is the target's live column catalog for one table, in ordinal
// order. It is rebuilt per table per run; the schema may change between runs.
type TableSchema struct {
	Table   string
	Columns []ColumnInfo
}

// Empty reports whether the catalog lookup produced no columns. Callers must
// treat an empty schema as "skip this table", not as a fatal error.
func (s *TableSchema) Empty() bool {
	return len(s.Columns) == 0
}

// HasIdentity reports whether any column is an identity/auto-increment column.
func (s *TableSchema) HasIdentity() bool {
	for _, c := range s.Columns {
		if c.IsIdentity {
			return true
		}
	}
	return false
}

// Lookup returns the column info for an (already uppercased) column name.
func (s *TableSchema) Lookup(name string) (ColumnInfo, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnInfo{}, false
}

// typeCategories maps lowercased declared type names to their category.
// Anything absent is CategoryOther.
var typeCategories = map[string]TypeCategory{
	"date":           CategoryDate,
	"datetime":       CategoryDate,
	"datetime2":      CategoryDate,
	"smalldatetime":  CategoryDate,
	"datetimeoffset": CategoryDate,

	"timestamp":  CategoryTimestamp,
	"rowversion": CategoryTimestamp,

	"decimal":    CategoryNumeric,
	"numeric":    CategoryNumeric,
	"float":      CategoryNumeric,
	"real":       CategoryNumeric,
	"money":      CategoryNumeric,
	"smallmoney": CategoryNumeric,
	"int":        CategoryNumeric,
	"bigint":     CategoryNumeric,
	"smallint":   CategoryNumeric,
	"tinyint":    CategoryNumeric,
	"bit":        CategoryNumeric,
}

// Classify maps a declared type name (as reported by the catalog) to its
// TypeCategory.
func Classify(declaredType string) TypeCategory {
	return typeCategories[strings.ToLower(strings.TrimSpace(declaredType))]
}
