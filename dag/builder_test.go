package dag

import "testing"

func TestConstantFold(t *testing.T) {
	d := New()
	one, err := d.AddColumn("1", constCol(scalarType("Int32"), 1))
	if err != nil {
		t.Fatal(err)
	}
	two, err := d.AddColumn("2", constCol(scalarType("Int32"), 2))
	if err != nil {
		t.Fatal(err)
	}
	sum, err := d.AddFunction(fakePlusResolver{}, []*Node{one, two}, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Kind != Function {
		t.Fatalf("expected kind FUNCTION, got %s", sum.Kind)
	}
	if sum.Col == nil || !sum.Col.IsConstant() {
		t.Fatalf("expected a constant column")
	}
	if sum.Col.Size() != 1 {
		t.Fatalf("expected size 1, got %d", sum.Col.Size())
	}
	if got := sum.Col.GetScalarField().(int); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestArrayJoinRequiresArrayType(t *testing.T) {
	d := New()
	if _, err := d.AddInput("x", scalarType("Int32")); err != nil {
		t.Fatal(err)
	}
	_, err := d.AddArrayJoin("x", "y")
	if kind, ok := KindOf(err); !ok || kind != TypeMismatch {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
}

func TestArrayJoinOnArrayType(t *testing.T) {
	d := New()
	elem := scalarType("Int32")
	if _, err := d.AddInput("b", arrayType(elem)); err != nil {
		t.Fatal(err)
	}
	n, err := d.AddArrayJoin("b", "v")
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind != ArrayJoin {
		t.Fatalf("expected ARRAY_JOIN, got %s", n.Kind)
	}
	if !n.ResultType.Equal(elem) {
		t.Fatalf("expected element type, got %s", n.ResultType)
	}
	if n.AllowConstantFolding {
		t.Fatalf("array-join nodes must never allow constant folding")
	}
}

func TestDuplicateColumn(t *testing.T) {
	d := New()
	if _, err := d.AddInput("x", scalarType("Int32")); err != nil {
		t.Fatal(err)
	}
	_, err := d.AddInput("x", scalarType("Int32"))
	if kind, ok := KindOf(err); !ok || kind != DuplicateColumn {
		t.Fatalf("expected DuplicateColumn, got %v", err)
	}
}

func TestAddAliasUnknownIdentifier(t *testing.T) {
	d := New()
	_, err := d.AddAlias("missing", "m2")
	if kind, ok := KindOf(err); !ok || kind != UnknownIdentifier {
		t.Fatalf("expected UnknownIdentifier, got %v", err)
	}
}

func TestRenameOnlyProjectionIntroducesOneAlias(t *testing.T) {
	d := New()
	if _, err := d.AddInput("a", scalarType("Int32")); err != nil {
		t.Fatal(err)
	}
	before := d.NodeCount()
	if err := d.Project([]ProjectionPair{{ExistingName: "a", OutputName: "b"}}); err != nil {
		t.Fatal(err)
	}
	if got := d.NodeCount() - before; got != 1 {
		t.Fatalf("expected exactly one new node (the alias), got %d", got)
	}
	names := d.Names()
	if len(names) != 1 || names[0] != "b" {
		t.Fatalf("expected index [b], got %v", names)
	}
}
