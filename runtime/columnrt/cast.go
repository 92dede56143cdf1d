package columnrt

import (
	"fmt"
	"strconv"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"

	"github.com/ariyn/exprdag/dag"
)

// castResolver is the two-argument resolver MakeConvertingActions step 2
// requires: argument 0 is the source column, argument 1 a constant String
// column holding the target type name. diag carries the source/result
// names a cast failure should mention.
type castResolver struct {
	diag dag.CastDiagnostic
}

func (r castResolver) Name() string { return "cast" }

func (r castResolver) Build(args []dag.FunctionArgument) (dag.FunctionBase, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("cast takes exactly 2 arguments, got %d", len(args))
	}
	if args[1].Col == nil {
		return nil, fmt.Errorf("cast %s -> %s: missing target-type column", r.diag.SourceName, r.diag.ResultName)
	}
	typeName, ok := args[1].Col.GetScalarField().(string)
	if !ok {
		return nil, fmt.Errorf("cast %s -> %s: target-type column is not a string", r.diag.SourceName, r.diag.ResultName)
	}
	target, err := parseTypeName(typeName)
	if err != nil {
		return nil, fmt.Errorf("cast %s -> %s: %w", r.diag.SourceName, r.diag.ResultName, err)
	}
	return &castBase{target: target, diag: r.diag}, nil
}

type castBase struct {
	target Type
	diag   dag.CastDiagnostic
}

func (b *castBase) Name() string             { return "cast" }
func (b *castBase) ResultType() dag.Type     { return b.target }
func (b *castBase) IsSuitableForConstantFolding() bool { return true }
func (b *castBase) IsDeterministic() bool    { return true }
func (b *castBase) IsStateful() bool         { return false }
func (b *castBase) ConstantIfAlwaysConstantWithArgs(args []dag.FunctionArgument) (dag.Column, bool) {
	return nil, false
}
func (b *castBase) Prepare(args []dag.FunctionArgument) (dag.FunctionInstance, error) {
	return castInstance{target: b.target, diag: b.diag}, nil
}

type castInstance struct {
	target Type
	diag   dag.CastDiagnostic
}

func (in castInstance) Execute(args []dag.FunctionArgument, resultType dag.Type, nRows int, dryRun bool) (dag.Column, error) {
	src, ok := args[0].Col.(Column)
	if !ok {
		return nil, fmt.Errorf("columnrt: cast %s -> %s requires a materialized source column", in.diag.SourceName, in.diag.ResultName)
	}

	n := nRows
	if src.IsConstant() {
		n = 1
	}
	sb := src.CloneResized(n).(Column)

	converted := make([]any, n)
	for i := 0; i < n; i++ {
		v, err := convertValue(valueAt(sb.arr, i), in.target.dt.ID())
		if err != nil {
			return nil, fmt.Errorf("cast %s -> %s: %w", in.diag.SourceName, in.diag.ResultName, err)
		}
		converted[i] = v
	}

	arr := buildFrom(in.target.dt, converted)
	return newColumn(arr, in.target, "", src.IsConstant()), nil
}

func convertValue(v any, to arrow.Type) (any, error) {
	switch to {
	case arrow.INT32:
		switch x := v.(type) {
		case int32:
			return x, nil
		case int64:
			return int32(x), nil
		case float64:
			return int32(x), nil
		case string:
			i, err := strconv.ParseInt(x, 10, 32)
			return int32(i), err
		}
	case arrow.INT64:
		switch x := v.(type) {
		case int32:
			return int64(x), nil
		case int64:
			return x, nil
		case float64:
			return int64(x), nil
		case string:
			return strconv.ParseInt(x, 10, 64)
		}
	case arrow.FLOAT64:
		switch x := v.(type) {
		case int32:
			return float64(x), nil
		case int64:
			return float64(x), nil
		case float64:
			return x, nil
		case string:
			return strconv.ParseFloat(x, 64)
		}
	case arrow.STRING:
		return fmt.Sprintf("%v", v), nil
	case arrow.BOOL:
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			return strconv.ParseBool(x)
		}
	}
	return nil, fmt.Errorf("unsupported conversion from %T to %s", v, to)
}

func buildFrom(dt arrow.DataType, vs []any) arrow.Array {
	switch dt.ID() {
	case arrow.INT32:
		b := array.NewInt32Builder(allocator)
		defer b.Release()
		for _, v := range vs {
			b.Append(v.(int32))
		}
		return b.NewArray()
	case arrow.INT64:
		b := array.NewInt64Builder(allocator)
		defer b.Release()
		for _, v := range vs {
			b.Append(v.(int64))
		}
		return b.NewArray()
	case arrow.FLOAT64:
		b := array.NewFloat64Builder(allocator)
		defer b.Release()
		for _, v := range vs {
			b.Append(v.(float64))
		}
		return b.NewArray()
	case arrow.STRING:
		b := array.NewStringBuilder(allocator)
		defer b.Release()
		for _, v := range vs {
			b.Append(v.(string))
		}
		return b.NewArray()
	case arrow.BOOL:
		b := array.NewBooleanBuilder(allocator)
		defer b.Release()
		for _, v := range vs {
			b.Append(v.(bool))
		}
		return b.NewArray()
	default:
		panic(fmt.Sprintf("columnrt: cannot build array of type %s", dt))
	}
}
