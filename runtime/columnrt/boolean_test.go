package columnrt

import (
	"testing"

	"github.com/ariyn/exprdag/dag"
)

func buildBool(t *testing.T, op string, args []dag.FunctionArgument, cols ...Column) Column {
	t.Helper()
	r := NewRegistry()
	resolver, ok := r.Lookup(op)
	if !ok {
		t.Fatalf("no resolver registered for %q", op)
	}
	base, err := resolver.Build(args)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	inst, err := base.Prepare(args)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	n := 0
	for _, c := range cols {
		if c.Size() > n {
			n = c.Size()
		}
	}
	col, err := inst.Execute(args, base.ResultType(), n, false)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	return col.(Column)
}

func TestBooleanAnd(t *testing.T) {
	left := NewBoolVector([]bool{true, true, false})
	right := NewBoolVector([]bool{true, false, false})
	args := []dag.FunctionArgument{
		{Col: left, Type: left.Type(), Name: "l"},
		{Col: right, Type: right.Type(), Name: "r"},
	}
	out := buildBool(t, "and", args, left, right)
	for i, want := range []bool{true, false, false} {
		if v := valueAt(out.arr, i); v != want {
			t.Fatalf("row %d = %v, want %v", i, v, want)
		}
	}
}

func TestBooleanOr(t *testing.T) {
	left := NewBoolVector([]bool{true, false, false})
	right := NewBoolScalar(false)
	args := []dag.FunctionArgument{
		{Col: left, Type: left.Type(), Name: "l"},
		{Col: right, Type: right.Type(), Name: "r"},
	}
	out := buildBool(t, "or", args, left, right)
	for i, want := range []bool{true, false, false} {
		if v := valueAt(out.arr, i); v != want {
			t.Fatalf("row %d = %v, want %v", i, v, want)
		}
	}
}

func TestBooleanNot(t *testing.T) {
	src := NewBoolVector([]bool{true, false})
	r := NewRegistry()
	resolver, _ := r.Lookup("not")
	args := []dag.FunctionArgument{{Col: src, Type: src.Type(), Name: "x"}}
	base, err := resolver.Build(args)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	inst, err := base.Prepare(args)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	col, err := inst.Execute(args, base.ResultType(), 2, false)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	out := col.(Column)
	for i, want := range []bool{false, true} {
		if v := valueAt(out.arr, i); v != want {
			t.Fatalf("row %d = %v, want %v", i, v, want)
		}
	}
}

func TestBooleanRejectsNonBoolOperand(t *testing.T) {
	r := NewRegistry()
	resolver, _ := r.Lookup("and")
	left := NewInt32Scalar(1)
	right := NewBoolScalar(true)
	args := []dag.FunctionArgument{
		{Col: left, Type: left.Type(), Name: "l"},
		{Col: right, Type: right.Type(), Name: "r"},
	}
	if _, err := resolver.Build(args); err == nil {
		t.Fatalf("expected and(Int32, Bool) to fail to build")
	}
}
