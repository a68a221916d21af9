package sqlgen

import "strings"

// Literal renders a value as SQL literal text for the target column. Rules,
// in order: null / missing / the string "none" (any case) become NULL;
// booleans become 1 or 0; numeric targets emit the trimmed text verbatim and
// unquoted (empty text is NULL, "true"/"false" become 1/0); everything else
// is single-quoted with embedded quotes doubled.
func Literal(v Value, numericTarget bool) string {
	if v.IsNull() {
		return "NULL"
	}
	if v.kind == KindString && strings.EqualFold(strings.TrimSpace(v.str), "none") {
		return "NULL"
	}
	if v.kind == KindBool {
		if v.b {
			return "1"
		}
		return "0"
	}

	if numericTarget {
		s := strings.TrimSpace(v.Text())
		switch {
		case s == "":
			return "NULL"
		case strings.EqualFold(s, "true"):
			return "1"
		case strings.EqualFold(s, "false"):
			return "0"
		default:
			return s
		}
	}

	return "'" + strings.ReplaceAll(v.Text(), "'", "''") + "'"
}
