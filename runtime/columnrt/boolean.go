package columnrt

import (
	"fmt"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"

	"github.com/ariyn/exprdag/dag"
)

type boolOp int

const (
	boolAnd boolOp = iota
	boolOr
)

// boolResolver is and/or over Bool columns.
type boolResolver struct {
	op   boolOp
	name string
}

func (r boolResolver) Name() string { return r.name }

func (r boolResolver) Build(args []dag.FunctionArgument) (dag.FunctionBase, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%s takes exactly 2 arguments, got %d", r.name, len(args))
	}
	for i, a := range args {
		t, ok := a.Type.(Type)
		if !ok || t.dt.ID() != arrow.BOOL {
			return nil, fmt.Errorf("%s: argument %d must be Bool, got %v", r.name, i, a.Type)
		}
	}
	boolType, _ := ScalarType("Bool")
	return &boolBase{op: r.op, name: r.name, resultType: boolType}, nil
}

type boolBase struct {
	op         boolOp
	name       string
	resultType Type
}

func (b *boolBase) Name() string             { return b.name }
func (b *boolBase) ResultType() dag.Type     { return b.resultType }
func (b *boolBase) IsSuitableForConstantFolding() bool { return true }
func (b *boolBase) IsDeterministic() bool    { return true }
func (b *boolBase) IsStateful() bool         { return false }
func (b *boolBase) ConstantIfAlwaysConstantWithArgs(args []dag.FunctionArgument) (dag.Column, bool) {
	return nil, false
}
func (b *boolBase) Prepare(args []dag.FunctionArgument) (dag.FunctionInstance, error) {
	return boolInstance{op: b.op, resultType: b.resultType}, nil
}

type boolInstance struct {
	op         boolOp
	resultType Type
}

func (in boolInstance) Execute(args []dag.FunctionArgument, resultType dag.Type, nRows int, dryRun bool) (dag.Column, error) {
	left, ok := args[0].Col.(Column)
	if !ok {
		return nil, fmt.Errorf("columnrt: boolean op requires a materialized left column")
	}
	right, ok := args[1].Col.(Column)
	if !ok {
		return nil, fmt.Errorf("columnrt: boolean op requires a materialized right column")
	}

	constant := left.IsConstant() && right.IsConstant()
	n := nRows
	if constant {
		n = 1
	}
	lb := left.CloneResized(n).(Column)
	rb := right.CloneResized(n).(Column)

	lArr := lb.arr.(*array.Boolean)
	rArr := rb.arr.(*array.Boolean)
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		switch in.op {
		case boolAnd:
			out[i] = lArr.Value(i) && rArr.Value(i)
		case boolOr:
			out[i] = lArr.Value(i) || rArr.Value(i)
		}
	}

	b := array.NewBooleanBuilder(allocator)
	defer b.Release()
	b.AppendValues(out, nil)
	return newColumn(b.NewArray(), in.resultType, "", constant), nil
}

// notResolver is the one-argument negation of a Bool column.
type notResolver struct{}

func (notResolver) Name() string { return "not" }

func (notResolver) Build(args []dag.FunctionArgument) (dag.FunctionBase, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("not takes exactly 1 argument, got %d", len(args))
	}
	t, ok := args[0].Type.(Type)
	if !ok || t.dt.ID() != arrow.BOOL {
		return nil, fmt.Errorf("not: argument must be Bool, got %v", args[0].Type)
	}
	boolType, _ := ScalarType("Bool")
	return &notBase{resultType: boolType}, nil
}

type notBase struct {
	resultType Type
}

func (b *notBase) Name() string             { return "not" }
func (b *notBase) ResultType() dag.Type     { return b.resultType }
func (b *notBase) IsSuitableForConstantFolding() bool { return true }
func (b *notBase) IsDeterministic() bool    { return true }
func (b *notBase) IsStateful() bool         { return false }
func (b *notBase) ConstantIfAlwaysConstantWithArgs(args []dag.FunctionArgument) (dag.Column, bool) {
	return nil, false
}
func (b *notBase) Prepare(args []dag.FunctionArgument) (dag.FunctionInstance, error) {
	return notInstance{resultType: b.resultType}, nil
}

type notInstance struct {
	resultType Type
}

func (in notInstance) Execute(args []dag.FunctionArgument, resultType dag.Type, nRows int, dryRun bool) (dag.Column, error) {
	src, ok := args[0].Col.(Column)
	if !ok {
		return nil, fmt.Errorf("columnrt: not requires a materialized column")
	}
	n := nRows
	if src.IsConstant() {
		n = 1
	}
	sb := src.CloneResized(n).(Column)
	sArr := sb.arr.(*array.Boolean)
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = !sArr.Value(i)
	}
	b := array.NewBooleanBuilder(allocator)
	defer b.Release()
	b.AppendValues(out, nil)
	return newColumn(b.NewArray(), in.resultType, "", src.IsConstant()), nil
}
