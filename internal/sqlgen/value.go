package sqlgen

import (
	"fmt"
	"strconv"
	"time"
)

// Kind tags a Value. Coercion dispatches on the tag plus the target column's
// type category instead of inspecting runtime types at format time.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindTime
)

// Value is a tagged-union scalar read from the source database. Numbers keep
// their text form so numeric literals are emitted verbatim, without float
// round-tripping.
type Value struct {
	kind Kind
	str  string // KindString, KindNumber
	b    bool
	t    time.Time
}

func Null() Value            { return Value{kind: KindNull} }
func String(s string) Value  { return Value{kind: KindString, str: s} }
func Number(s string) Value  { return Value{kind: KindNumber, str: s} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// TimeLayout is how temporal values are rendered into statements.
const TimeLayout = "2006-01-02 15:04:05"

// Text renders the value as a plain string, without any SQL quoting.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		if v.b {
			return "1"
		}
		return "0"
	case KindTime:
		return v.t.Format(TimeLayout)
	default:
		return v.str
	}
}

// FromDriver converts a scalar scanned from database/sql into a Value.
func FromDriver(src any) Value {
	switch x := src.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(x)
	case int64:
		return Number(strconv.FormatInt(x, 10))
	case float64:
		return Number(strconv.FormatFloat(x, 'f', -1, 64))
	case time.Time:
		return Time(x)
	case []byte:
		return String(string(x))
	case string:
		return String(x)
	default:
		return String(fmt.Sprintf("%v", x))
	}
}
