package sqlgen_test

import (
	"testing"
	"time"

	"github.com/iancarlos335/table-sync/internal/sqlgen"
)

func TestLiteral_Null(t *testing.T) {
	if got := sqlgen.Literal(sqlgen.Null(), false); got != "NULL" {
		t.Errorf("Literal(null, string) = %q, want NULL", got)
	}
	if got := sqlgen.Literal(sqlgen.Null(), true); got != "NULL" {
		t.Errorf("Literal(null, numeric) = %q, want NULL", got)
	}
}

func TestLiteral_NoneString(t *testing.T) {
	for _, s := range []string{"None", "none", "NONE", " none "} {
		if got := sqlgen.Literal(sqlgen.String(s), false); got != "NULL" {
			t.Errorf("Literal(%q, string) = %q, want NULL", s, got)
		}
		if got := sqlgen.Literal(sqlgen.String(s), true); got != "NULL" {
			t.Errorf("Literal(%q, numeric) = %q, want NULL", s, got)
		}
	}
}

func TestLiteral_Bool(t *testing.T) {
	if got := sqlgen.Literal(sqlgen.Bool(true), false); got != "1" {
		t.Errorf("Literal(true) = %q, want 1", got)
	}
	if got := sqlgen.Literal(sqlgen.Bool(false), true); got != "0" {
		t.Errorf("Literal(false) = %q, want 0", got)
	}
}

func TestLiteral_NumericTarget(t *testing.T) {
	cases := []struct {
		in   sqlgen.Value
		want string
	}{
		{sqlgen.String("42"), "42"},
		{sqlgen.Number("1.5"), "1.5"},
		{sqlgen.String("  7 "), "7"},
		{sqlgen.String(""), "NULL"},
		{sqlgen.String("   "), "NULL"},
		{sqlgen.String("true"), "1"},
		{sqlgen.String("False"), "0"},
		{sqlgen.Number("-3.25"), "-3.25"},
	}
	for _, c := range cases {
		if got := sqlgen.Literal(c.in, true); got != c.want {
			t.Errorf("Literal(%v, numeric) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLiteral_StringTarget(t *testing.T) {
	if got := sqlgen.Literal(sqlgen.String("O'Brien"), false); got != "'O''Brien'" {
		t.Errorf("Literal(O'Brien) = %q, want 'O''Brien'", got)
	}
	if got := sqlgen.Literal(sqlgen.String("plain"), false); got != "'plain'" {
		t.Errorf("Literal(plain) = %q, want 'plain'", got)
	}
	// Numbers against a string target still get quoted.
	if got := sqlgen.Literal(sqlgen.Number("7"), false); got != "'7'" {
		t.Errorf("Literal(7, string) = %q, want '7'", got)
	}
}

func TestLiteral_Time(t *testing.T) {
	v := sqlgen.Time(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	if got := sqlgen.Literal(v, false); got != "'2024-01-02 03:04:05'" {
		t.Errorf("Literal(time) = %q", got)
	}
}

func TestFromDriver(t *testing.T) {
	cases := []struct {
		in       any
		wantKind sqlgen.Kind
		wantText string
	}{
		{nil, sqlgen.KindNull, ""},
		{int64(7), sqlgen.KindNumber, "7"},
		{3.5, sqlgen.KindNumber, "3.5"},
		{true, sqlgen.KindBool, "1"},
		{"abc", sqlgen.KindString, "abc"},
		{[]byte("xyz"), sqlgen.KindString, "xyz"},
	}
	for _, c := range cases {
		v := sqlgen.FromDriver(c.in)
		if v.Kind() != c.wantKind || v.Text() != c.wantText {
			t.Errorf("FromDriver(%v) = kind %v text %q, want kind %v text %q",
				c.in, v.Kind(), v.Text(), c.wantKind, c.wantText)
		}
	}
}
