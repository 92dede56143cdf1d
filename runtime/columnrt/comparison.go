package columnrt

import (
	"fmt"
	"strings"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"

	"github.com/ariyn/exprdag/dag"
)

type cmpOp int

const (
	cmpEquals cmpOp = iota
	cmpNotEquals
	cmpLess
	cmpLessOrEquals
	cmpGreater
	cmpGreaterOrEquals
)

type operandKind int

const (
	kindNumeric operandKind = iota
	kindString
	kindBool
)

// cmpResolver is equals/notEquals/less/lessOrEquals/greater/greaterOrEquals,
// returning Bool columns over numeric, string, and bool operands.
type cmpResolver struct {
	op   cmpOp
	name string
}

func (r cmpResolver) Name() string { return r.name }

func (r cmpResolver) Build(args []dag.FunctionArgument) (dag.FunctionBase, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%s takes exactly 2 arguments, got %d", r.name, len(args))
	}
	lt, ok := args[0].Type.(Type)
	if !ok {
		return nil, fmt.Errorf("%s: argument 0 is not a columnrt.Type", r.name)
	}
	rt, ok := args[1].Type.(Type)
	if !ok {
		return nil, fmt.Errorf("%s: argument 1 is not a columnrt.Type", r.name)
	}

	kind, err := classifyOperands(r.name, lt, rt)
	if err != nil {
		return nil, err
	}
	if kind == kindBool && r.op != cmpEquals && r.op != cmpNotEquals {
		return nil, fmt.Errorf("%s: ordering comparison is not defined for Bool operands", r.name)
	}
	boolType, _ := ScalarType("Bool")
	return &cmpBase{op: r.op, name: r.name, kind: kind, resultType: boolType}, nil
}

func classifyOperands(name string, lt, rt Type) (operandKind, error) {
	if _, lok := lt.numericRank(); lok {
		if _, rok := rt.numericRank(); rok {
			return kindNumeric, nil
		}
	}
	if lt.dt.ID() == arrow.STRING && rt.dt.ID() == arrow.STRING {
		return kindString, nil
	}
	if lt.dt.ID() == arrow.BOOL && rt.dt.ID() == arrow.BOOL {
		return kindBool, nil
	}
	return 0, fmt.Errorf("%s: incomparable operand types %s and %s", name, lt, rt)
}

type cmpBase struct {
	op         cmpOp
	name       string
	kind       operandKind
	resultType Type
}

func (b *cmpBase) Name() string             { return b.name }
func (b *cmpBase) ResultType() dag.Type     { return b.resultType }
func (b *cmpBase) IsSuitableForConstantFolding() bool { return true }
func (b *cmpBase) IsDeterministic() bool    { return true }
func (b *cmpBase) IsStateful() bool         { return false }
func (b *cmpBase) ConstantIfAlwaysConstantWithArgs(args []dag.FunctionArgument) (dag.Column, bool) {
	return nil, false
}
func (b *cmpBase) Prepare(args []dag.FunctionArgument) (dag.FunctionInstance, error) {
	return cmpInstance{op: b.op, kind: b.kind, resultType: b.resultType}, nil
}

type cmpInstance struct {
	op         cmpOp
	kind       operandKind
	resultType Type
}

func (in cmpInstance) Execute(args []dag.FunctionArgument, resultType dag.Type, nRows int, dryRun bool) (dag.Column, error) {
	left, ok := args[0].Col.(Column)
	if !ok {
		return nil, fmt.Errorf("columnrt: comparison requires a materialized left column")
	}
	right, ok := args[1].Col.(Column)
	if !ok {
		return nil, fmt.Errorf("columnrt: comparison requires a materialized right column")
	}

	constant := left.IsConstant() && right.IsConstant()
	n := nRows
	if constant {
		n = 1
	}
	lb := left.CloneResized(n).(Column)
	rb := right.CloneResized(n).(Column)

	out := make([]bool, n)
	for i := 0; i < n; i++ {
		cmp := in.compareAt(lb, rb, i)
		out[i] = satisfies(in.op, cmp)
	}

	b := array.NewBooleanBuilder(allocator)
	defer b.Release()
	b.AppendValues(out, nil)
	return newColumn(b.NewArray(), in.resultType, "", constant), nil
}

// compareAt returns -1/0/1, except for kindBool where only 0 (equal) or a
// nonzero sentinel (not equal) is meaningful -- less/greater are undefined
// for booleans and never reached because Build only permits
// equals/notEquals over kindBool operands.
func (in cmpInstance) compareAt(l, r Column, i int) int {
	switch in.kind {
	case kindNumeric:
		lv, rv := asFloat64(l, i), asFloat64(r, i)
		switch {
		case lv < rv:
			return -1
		case lv > rv:
			return 1
		default:
			return 0
		}
	case kindString:
		lv := l.arr.(*array.String).Value(i)
		rv := r.arr.(*array.String).Value(i)
		return strings.Compare(lv, rv)
	case kindBool:
		lv := l.arr.(*array.Boolean).Value(i)
		rv := r.arr.(*array.Boolean).Value(i)
		if lv == rv {
			return 0
		}
		return 1
	default:
		panic("columnrt: unknown operand kind")
	}
}

func satisfies(op cmpOp, cmp int) bool {
	switch op {
	case cmpEquals:
		return cmp == 0
	case cmpNotEquals:
		return cmp != 0
	case cmpLess:
		return cmp < 0
	case cmpLessOrEquals:
		return cmp <= 0
	case cmpGreater:
		return cmp > 0
	case cmpGreaterOrEquals:
		return cmp >= 0
	default:
		panic("columnrt: unknown comparison op")
	}
}
