package columnrt

import (
	"fmt"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"

	"github.com/ariyn/exprdag/dag"
)

type arithOp int

const (
	opPlus arithOp = iota
	opMinus
	opMultiply
	opDivide
)

// arithResolver is plus/minus/multiply/divide over Int32/Int64/Float64,
// promoting mixed-width operands to the wider type. Permissive numeric
// coercion, rewritten here as columnar kernels operating on whole
// arrow.Arrays instead of per-row any values.
type arithResolver struct {
	op   arithOp
	name string
}

func (r arithResolver) Name() string { return r.name }

func (r arithResolver) Build(args []dag.FunctionArgument) (dag.FunctionBase, error) {
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
	result, err := widenNumeric(lt, rt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}
	return &arithBase{op: r.op, name: r.name, resultType: result}, nil
}

type arithBase struct {
	op         arithOp
	name       string
	resultType Type
}

func (b *arithBase) Name() string             { return b.name }
func (b *arithBase) ResultType() dag.Type     { return b.resultType }
func (b *arithBase) IsSuitableForConstantFolding() bool { return true }
func (b *arithBase) IsDeterministic() bool    { return true }
func (b *arithBase) IsStateful() bool         { return false }
func (b *arithBase) ConstantIfAlwaysConstantWithArgs(args []dag.FunctionArgument) (dag.Column, bool) {
	return nil, false
}
func (b *arithBase) Prepare(args []dag.FunctionArgument) (dag.FunctionInstance, error) {
	return arithInstance{op: b.op, resultType: b.resultType}, nil
}

type arithInstance struct {
	op         arithOp
	resultType Type
}

func (in arithInstance) Execute(args []dag.FunctionArgument, resultType dag.Type, nRows int, dryRun bool) (dag.Column, error) {
	left, ok := args[0].Col.(Column)
	if !ok {
		return nil, fmt.Errorf("columnrt: arithmetic requires a materialized left column")
	}
	right, ok := args[1].Col.(Column)
	if !ok {
		return nil, fmt.Errorf("columnrt: arithmetic requires a materialized right column")
	}

	constant := left.IsConstant() && right.IsConstant()
	n := nRows
	if constant {
		n = 1
	}
	lb := left.CloneResized(n).(Column)
	rb := right.CloneResized(n).(Column)

	arr := applyArith(in.op, in.resultType, lb, rb, n)
	return newColumn(arr, in.resultType, "", constant), nil
}

func asInt64(c Column, i int) int64 {
	switch a := c.arr.(type) {
	case *array.Int32:
		return int64(a.Value(i))
	case *array.Int64:
		return a.Value(i)
	case *array.Float64:
		return int64(a.Value(i))
	default:
		return 0
	}
}

func asFloat64(c Column, i int) float64 {
	switch a := c.arr.(type) {
	case *array.Int32:
		return float64(a.Value(i))
	case *array.Int64:
		return float64(a.Value(i))
	case *array.Float64:
		return a.Value(i)
	default:
		return 0
	}
}

func combineInt(op arithOp, l, r int64) int64 {
	switch op {
	case opPlus:
		return l + r
	case opMinus:
		return l - r
	case opMultiply:
		return l * r
	case opDivide:
		if r == 0 {
			return 0
		}
		return l / r
	default:
		panic("columnrt: unknown arithmetic op")
	}
}

func combineFloat(op arithOp, l, r float64) float64 {
	switch op {
	case opPlus:
		return l + r
	case opMinus:
		return l - r
	case opMultiply:
		return l * r
	case opDivide:
		return l / r
	default:
		panic("columnrt: unknown arithmetic op")
	}
}

func applyArith(op arithOp, rt Type, lc, rc Column, n int) arrow.Array {
	switch rt.dt.ID() {
	case arrow.INT32:
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(combineInt(op, asInt64(lc, i), asInt64(rc, i)))
		}
		b := array.NewInt32Builder(allocator)
		defer b.Release()
		b.AppendValues(out, nil)
		return b.NewArray()
	case arrow.INT64:
		out := make([]int64, n)
		for i := range out {
			out[i] = combineInt(op, asInt64(lc, i), asInt64(rc, i))
		}
		b := array.NewInt64Builder(allocator)
		defer b.Release()
		b.AppendValues(out, nil)
		return b.NewArray()
	case arrow.FLOAT64:
		out := make([]float64, n)
		for i := range out {
			out[i] = combineFloat(op, asFloat64(lc, i), asFloat64(rc, i))
		}
		b := array.NewFloat64Builder(allocator)
		defer b.Release()
		b.AppendValues(out, nil)
		return b.NewArray()
	default:
		panic(fmt.Sprintf("columnrt: arithmetic result type %s is not numeric", rt))
	}
}
