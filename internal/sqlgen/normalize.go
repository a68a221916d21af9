package sqlgen

import (
	"strings"
	"time"

	"github.com/iancarlos335/table-sync/internal/schema"
)

// Normalization is semantic and runs before formatting, which is purely
// syntactic. Date-category values are parsed and re-rendered in TimeLayout
// (unparseable values become NULL, not an error); numeric-category values get
// their comma decimal separator rewritten to a dot.

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// Normalize adjusts a value for the target column's type category.
func Normalize(v Value, cat schema.TypeCategory) Value {
	switch cat {
	case schema.CategoryDate:
		return normalizeDate(v)
	case schema.CategoryNumeric:
		return normalizeNumeric(v)
	default:
		return v
	}
}

func normalizeDate(v Value) Value {
	switch v.kind {
	case KindTime:
		return v
	case KindString:
		s := strings.TrimSpace(v.str)
		if s == "" {
			return Null()
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return Time(t)
			}
		}
		return Null()
	case KindNull:
		return v
	default:
		// Booleans and bare numbers have no sensible date reading.
		return Null()
	}
}

func normalizeNumeric(v Value) Value {
	if v.kind != KindString {
		return v
	}
	s := strings.TrimSpace(v.str)
	// Locale decimal comma: "1,5" -> "1.5". Leave anything with a dot or
	// multiple commas alone.
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		return String(strings.Replace(s, ",", ".", 1))
	}
	return v
}
