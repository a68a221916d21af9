package schema_test

import (
	"testing"

	"github.com/iancarlos335/table-sync/internal/schema"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		declared string
		want     schema.TypeCategory
	}{
		{"date", schema.CategoryDate},
		{"datetime", schema.CategoryDate},
		{"datetime2", schema.CategoryDate},
		{"smalldatetime", schema.CategoryDate},
		{"datetimeoffset", schema.CategoryDate},
		{"timestamp", schema.CategoryTimestamp},
		{"rowversion", schema.CategoryTimestamp},
		{"decimal", schema.CategoryNumeric},
		{"numeric", schema.CategoryNumeric},
		{"float", schema.CategoryNumeric},
		{"real", schema.CategoryNumeric},
		{"money", schema.CategoryNumeric},
		{"smallmoney", schema.CategoryNumeric},
		{"int", schema.CategoryNumeric},
		{"bigint", schema.CategoryNumeric},
		{"smallint", schema.CategoryNumeric},
		{"tinyint", schema.CategoryNumeric},
		{"bit", schema.CategoryNumeric},
		{"nvarchar", schema.CategoryOther},
		{"varchar", schema.CategoryOther},
		{"uniqueidentifier", schema.CategoryOther},
		{"DATETIME", schema.CategoryDate}, // catalog case should not matter
		{"  int  ", schema.CategoryNumeric},
		{"", schema.CategoryOther},
	}

	for _, c := range cases {
		if got := schema.Classify(c.declared); got != c.want {
			t.Errorf("Classify(%q) = %v, want %v", c.declared, got, c.want)
		}
	}
}

func TestTableSchema_HasIdentity(t *testing.T) {
	ts := &schema.TableSchema{
		Table: "CUSTOMERS",
		Columns: []schema.ColumnInfo{
			{Name: "ID", Category: schema.CategoryNumeric, IsIdentity: true},
			{Name: "NAME", Category: schema.CategoryOther},
		},
	}
	if !ts.HasIdentity() {
		t.Error("expected HasIdentity to be true")
	}

	ts2 := &schema.TableSchema{Table: "LOGS", Columns: []schema.ColumnInfo{{Name: "MSG"}}}
	if ts2.HasIdentity() {
		t.Error("expected HasIdentity to be false")
	}
}

func TestTableSchema_Empty(t *testing.T) {
	ts := &schema.TableSchema{Table: "MISSING"}
	if !ts.Empty() {
		t.Error("schema without columns should be empty")
	}
}

func TestTableSchema_Lookup(t *testing.T) {
	ts := &schema.TableSchema{
		Table: "T",
		Columns: []schema.ColumnInfo{
			{Name: "ID", Category: schema.CategoryNumeric},
			{Name: "ROW_VER", Category: schema.CategoryTimestamp},
		},
	}

	col, ok := ts.Lookup("ROW_VER")
	if !ok || col.Category != schema.CategoryTimestamp {
		t.Errorf("Lookup(ROW_VER) = %+v, %v", col, ok)
	}
	if _, ok := ts.Lookup("NOPE"); ok {
		t.Error("Lookup of unknown column should fail")
	}
}
