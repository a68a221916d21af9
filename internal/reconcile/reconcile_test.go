package reconcile_test

import (
	"reflect"
	"testing"

	"github.com/iancarlos335/table-sync/internal/reconcile"
	"github.com/iancarlos335/table-sync/internal/schema"
	"github.com/iancarlos335/table-sync/internal/source"
)

func customersSchema() *schema.TableSchema {
	return &schema.TableSchema{
		Table: "CUSTOMERS",
		Columns: []schema.ColumnInfo{
			{Name: "ID", Category: schema.CategoryNumeric, IsIdentity: true},
			{Name: "NAME", Category: schema.CategoryOther},
			{Name: "CREATED_AT", Category: schema.CategoryDate},
			{Name: "ROW_VER", Category: schema.CategoryTimestamp},
		},
	}
}

func TestReconcile_Scenario(t *testing.T) {
	rel := &source.Relation{
		Table:   "CUSTOMERS",
		Columns: []string{"ID", "NAME", "CREATED_AT", "ROW_VER"},
	}

	res := reconcile.Reconcile(customersSchema(), rel)

	names := make([]string, len(res.Usable))
	for i, c := range res.Usable {
		names[i] = c.Name
	}
	if !reflect.DeepEqual(names, []string{"ID", "NAME", "CREATED_AT"}) {
		t.Errorf("usable = %v, want [ID NAME CREATED_AT]", names)
	}
	if !reflect.DeepEqual(res.ExcludedTimestamp, []string{"ROW_VER"}) {
		t.Errorf("excluded = %v, want [ROW_VER]", res.ExcludedTimestamp)
	}
	if res.Empty() {
		t.Error("result should not be empty")
	}
}

func TestReconcile_CaseInsensitive(t *testing.T) {
	rel := &source.Relation{Table: "CUSTOMERS", Columns: []string{"Id", "name"}}

	res := reconcile.Reconcile(customersSchema(), rel)
	if len(res.Usable) != 2 || res.Usable[0].Name != "ID" || res.Usable[1].Name != "NAME" {
		t.Errorf("usable = %+v, want uppercased ID and NAME", res.Usable)
	}
}

func TestReconcile_SourceOrderWins(t *testing.T) {
	// Target ordinal order is ID, NAME, CREATED_AT; the source order must be
	// preserved instead.
	rel := &source.Relation{Table: "CUSTOMERS", Columns: []string{"NAME", "CREATED_AT", "ID"}}

	res := reconcile.Reconcile(customersSchema(), rel)
	names := make([]string, len(res.Usable))
	for i, c := range res.Usable {
		names[i] = c.Name
	}
	if !reflect.DeepEqual(names, []string{"NAME", "CREATED_AT", "ID"}) {
		t.Errorf("usable = %v, want source order [NAME CREATED_AT ID]", names)
	}
}

func TestReconcile_DuplicateFirstOccurrenceWins(t *testing.T) {
	rel := &source.Relation{Table: "CUSTOMERS", Columns: []string{"Name", "NAME", "ID"}}

	res := reconcile.Reconcile(customersSchema(), rel)

	if !reflect.DeepEqual(res.Duplicates, []string{"NAME"}) {
		t.Errorf("duplicates = %v, want [NAME]", res.Duplicates)
	}
	if len(res.Usable) != 2 {
		t.Fatalf("usable = %+v, want 2 columns", res.Usable)
	}
	if res.Usable[0].Name != "NAME" || res.Usable[0].Index != 0 {
		t.Errorf("first occurrence should win: %+v", res.Usable[0])
	}
	if res.Usable[1].Name != "ID" || res.Usable[1].Index != 2 {
		t.Errorf("ID should keep its physical index: %+v", res.Usable[1])
	}
}

func TestReconcile_NoCommonColumns(t *testing.T) {
	rel := &source.Relation{Table: "CUSTOMERS", Columns: []string{"FOO", "BAR"}}

	res := reconcile.Reconcile(customersSchema(), rel)
	if !res.Empty() {
		t.Errorf("expected empty result, got %+v", res.Usable)
	}
}

func TestReconcile_OnlyTimestampLeft(t *testing.T) {
	rel := &source.Relation{Table: "CUSTOMERS", Columns: []string{"ROW_VER"}}

	res := reconcile.Reconcile(customersSchema(), rel)
	if !res.Empty() {
		t.Errorf("expected empty result after timestamp filtering, got %+v", res.Usable)
	}
	if !reflect.DeepEqual(res.ExcludedTimestamp, []string{"ROW_VER"}) {
		t.Errorf("excluded = %v", res.ExcludedTimestamp)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	rel := &source.Relation{Table: "CUSTOMERS", Columns: []string{"ID", "Name", "NAME", "ROW_VER", "EXTRA"}}
	ts := customersSchema()

	first := reconcile.Reconcile(ts, rel)
	second := reconcile.Reconcile(ts, rel)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reconciliation not deterministic:\nfirst  %+v\nsecond %+v", first, second)
	}
}
