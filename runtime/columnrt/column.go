package columnrt

import (
	"fmt"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"
	"github.com/apache/arrow/go/v15/arrow/memory"

	"github.com/ariyn/exprdag/dag"
)

var allocator = memory.NewGoAllocator()

// Column wraps an Arrow array plus the constant flag the core relies on.
// A constant column, as in the source system, is represented as a
// size-1 array: IsConstant reports the flag, not the length.
type Column struct {
	arr      arrow.Array
	typ      Type
	name     string
	constant bool
}

func newColumn(arr arrow.Array, typ Type, name string, constant bool) Column {
	return Column{arr: arr, typ: typ, name: name, constant: constant}
}

func (c Column) Size() int        { return c.arr.Len() }
func (c Column) IsEmpty() bool    { return c.arr.Len() == 0 }
func (c Column) IsConstant() bool { return c.constant }
func (c Column) Name() string     { return c.name }
func (c Column) Type() dag.Type   { return c.typ }

// GetScalarField returns row 0 as a Go int32/int64/float64/string/bool.
func (c Column) GetScalarField() any {
	return valueAt(c.arr, 0)
}

// CloneResized broadcasts a constant column's single value into a fresh
// n-length array, or returns a non-constant column unchanged once its
// length is confirmed to already equal n.
func (c Column) CloneResized(n int) dag.Column {
	if !c.constant {
		if n != c.arr.Len() {
			panic(fmt.Sprintf("columnrt: CloneResized(%d) on non-constant column of length %d", n, c.arr.Len()))
		}
		return c
	}
	arr := broadcast(c.typ.dt, valueAt(c.arr, 0), n)
	return Column{arr: arr, typ: c.typ, name: c.name, constant: true}
}

func valueAt(arr arrow.Array, i int) any {
	switch a := arr.(type) {
	case *array.Int32:
		return a.Value(i)
	case *array.Int64:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.Boolean:
		return a.Value(i)
	default:
		return nil
	}
}

func broadcast(dt arrow.DataType, v any, n int) arrow.Array {
	switch dt.ID() {
	case arrow.INT32:
		b := array.NewInt32Builder(allocator)
		defer b.Release()
		vals := make([]int32, n)
		x := v.(int32)
		for i := range vals {
			vals[i] = x
		}
		b.AppendValues(vals, nil)
		return b.NewArray()
	case arrow.INT64:
		b := array.NewInt64Builder(allocator)
		defer b.Release()
		vals := make([]int64, n)
		x := v.(int64)
		for i := range vals {
			vals[i] = x
		}
		b.AppendValues(vals, nil)
		return b.NewArray()
	case arrow.FLOAT64:
		b := array.NewFloat64Builder(allocator)
		defer b.Release()
		vals := make([]float64, n)
		x := v.(float64)
		for i := range vals {
			vals[i] = x
		}
		b.AppendValues(vals, nil)
		return b.NewArray()
	case arrow.STRING:
		b := array.NewStringBuilder(allocator)
		defer b.Release()
		vals := make([]string, n)
		x := v.(string)
		for i := range vals {
			vals[i] = x
		}
		b.AppendValues(vals, nil)
		return b.NewArray()
	case arrow.BOOL:
		b := array.NewBooleanBuilder(allocator)
		defer b.Release()
		vals := make([]bool, n)
		x := v.(bool)
		for i := range vals {
			vals[i] = x
		}
		b.AppendValues(vals, nil)
		return b.NewArray()
	default:
		panic(fmt.Sprintf("columnrt: cannot broadcast type %s", dt))
	}
}

// NewInt32Scalar, NewInt64Scalar, NewFloat64Scalar, NewStringScalar and
// NewBoolScalar build size-1 constant columns, the shape add_column and
// add_input(column_with_meta) require.

func NewInt32Scalar(v int32) Column {
	t, _ := ScalarType("Int32")
	return newColumn(broadcast(t.dt, v, 1), t, "", true)
}

func NewInt64Scalar(v int64) Column {
	t, _ := ScalarType("Int64")
	return newColumn(broadcast(t.dt, v, 1), t, "", true)
}

func NewFloat64Scalar(v float64) Column {
	t, _ := ScalarType("Float64")
	return newColumn(broadcast(t.dt, v, 1), t, "", true)
}

func NewStringScalar(v string) Column {
	t, _ := ScalarType("String")
	return newColumn(broadcast(t.dt, v, 1), t, "", true)
}

func NewBoolScalar(v bool) Column {
	t, _ := ScalarType("Bool")
	return newColumn(broadcast(t.dt, v, 1), t, "", true)
}

// NewInt32Vector, NewInt64Vector, NewFloat64Vector, NewStringVector and
// NewBoolVector build full, non-constant columns from row data.

func NewInt32Vector(vs []int32) Column {
	t, _ := ScalarType("Int32")
	b := array.NewInt32Builder(allocator)
	defer b.Release()
	b.AppendValues(vs, nil)
	return newColumn(b.NewArray(), t, "", false)
}

func NewInt64Vector(vs []int64) Column {
	t, _ := ScalarType("Int64")
	b := array.NewInt64Builder(allocator)
	defer b.Release()
	b.AppendValues(vs, nil)
	return newColumn(b.NewArray(), t, "", false)
}

func NewFloat64Vector(vs []float64) Column {
	t, _ := ScalarType("Float64")
	b := array.NewFloat64Builder(allocator)
	defer b.Release()
	b.AppendValues(vs, nil)
	return newColumn(b.NewArray(), t, "", false)
}

func NewStringVector(vs []string) Column {
	t, _ := ScalarType("String")
	b := array.NewStringBuilder(allocator)
	defer b.Release()
	b.AppendValues(vs, nil)
	return newColumn(b.NewArray(), t, "", false)
}

func NewBoolVector(vs []bool) Column {
	t, _ := ScalarType("Bool")
	b := array.NewBooleanBuilder(allocator)
	defer b.Release()
	b.AppendValues(vs, nil)
	return newColumn(b.NewArray(), t, "", false)
}
