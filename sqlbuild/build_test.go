package sqlbuild

import (
	"testing"

	"github.com/ariyn/exprdag/runtime/columnrt"
)

func testSchema(t *testing.T) Schema {
	t.Helper()
	int32Type, err := columnrt.ScalarType("Int32")
	if err != nil {
		t.Fatal(err)
	}
	return Schema{
		{Name: "x", Type: int32Type},
		{Name: "y", Type: int32Type},
	}
}

func TestBuildPlainColumnProjection(t *testing.T) {
	d, err := Build("SELECT x, y FROM t", testSchema(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	names := d.Names()
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Fatalf("expected index [x y], got %v", names)
	}
}

func TestBuildArithmeticProjectionWithAlias(t *testing.T) {
	d, err := Build("SELECT x, y, x + y AS total FROM t", testSchema(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	names := d.Names()
	if len(names) != 3 || names[2] != "total" {
		t.Fatalf("expected index [x y total], got %v", names)
	}
	results := d.ResultColumns()
	if len(results) != 3 {
		t.Fatalf("expected 3 result columns, got %d", len(results))
	}
}

func TestBuildUnaliasedExpressionGetsDefaultName(t *testing.T) {
	d, err := Build("SELECT x + y FROM t", testSchema(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	names := d.Names()
	if len(names) != 1 || names[0] != "plus(x, y)" {
		t.Fatalf("expected index [plus(x, y)], got %v", names)
	}
}

func TestBuildWhereSurvivesAsATrailingIndexEntry(t *testing.T) {
	d, err := Build("SELECT x, y FROM t WHERE x > 0", testSchema(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	names := d.Names()
	if len(names) != 3 || names[0] != "x" || names[1] != "y" {
		t.Fatalf("expected x and y followed by the filter's own column, got %v", names)
	}
	if names[2] != "greater(x, _lit0)" {
		t.Fatalf("expected the filter's default name as the trailing entry, got %v", names)
	}
}

func TestBuildWhereOnlyReferencedColumnSurvivesPruning(t *testing.T) {
	d, err := Build("SELECT y FROM t WHERE x > 0", testSchema(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	names := d.Names()
	if len(names) != 2 || names[0] != "y" {
		t.Fatalf("expected y followed by the filter's column (keeping x alive), got %v", names)
	}
}

func TestBuildRejectsNonSelectStatement(t *testing.T) {
	if _, err := Build("UPDATE t SET x = 1", testSchema(t)); err == nil {
		t.Fatalf("expected Build to reject a non-SELECT statement")
	}
}

func TestBuildRejectsUnknownColumn(t *testing.T) {
	if _, err := Build("SELECT z FROM t", testSchema(t)); err == nil {
		t.Fatalf("expected Build to reject an unknown column reference")
	}
}

func TestBuildComparisonAndBooleanOperators(t *testing.T) {
	d, err := Build("SELECT x FROM t WHERE x > 0 AND y <= 10 OR NOT (x = y)", testSchema(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	names := d.Names()
	if len(names) != 2 || names[0] != "x" {
		t.Fatalf("expected x followed by the compound filter's column, got %v", names)
	}
}
