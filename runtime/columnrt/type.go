// Package columnrt is a concrete, Arrow-backed satisfier of the dag
// package's Execution Runtime contract: Type, Column, and the
// FunctionOverloadResolver/FunctionBase/FunctionInstance triad, plus a
// registry of the named overloads a SQL front end or CLI needs to resolve
// by string.
package columnrt

import (
	"fmt"

	"github.com/apache/arrow/go/v15/arrow"

	"github.com/ariyn/exprdag/dag"
)

// Type wraps an arrow.DataType and implements dag.Type.
type Type struct {
	dt arrow.DataType
}

// ScalarType resolves one of the five supported scalar type names.
func ScalarType(name string) (Type, error) {
	switch name {
	case "Int32":
		return Type{dt: arrow.PrimitiveTypes.Int32}, nil
	case "Int64":
		return Type{dt: arrow.PrimitiveTypes.Int64}, nil
	case "Float64":
		return Type{dt: arrow.PrimitiveTypes.Float64}, nil
	case "String":
		return Type{dt: arrow.BinaryTypes.String}, nil
	case "Bool":
		return Type{dt: arrow.FixedWidthTypes.Boolean}, nil
	default:
		return Type{}, fmt.Errorf("columnrt: unknown type name %q", name)
	}
}

// ArrayType builds Array(elem) from a scalar or nested element type.
func ArrayType(elem Type) Type {
	return Type{dt: arrow.ListOf(elem.dt)}
}

// parseTypeName is the inverse of String() for the five scalar types: it
// recovers a Type from the Arrow-native spelling a cast's target-type
// constant column carries (see MakeConvertingActions step 2 and the cast
// resolver in cast.go). List spellings are not recognized.
func parseTypeName(name string) (Type, error) {
	switch name {
	case "int32":
		return Type{dt: arrow.PrimitiveTypes.Int32}, nil
	case "int64":
		return Type{dt: arrow.PrimitiveTypes.Int64}, nil
	case "float64":
		return Type{dt: arrow.PrimitiveTypes.Float64}, nil
	case "utf8":
		return Type{dt: arrow.BinaryTypes.String}, nil
	case "bool":
		return Type{dt: arrow.FixedWidthTypes.Boolean}, nil
	default:
		return Type{}, fmt.Errorf("columnrt: cannot cast to %q", name)
	}
}

func (t Type) Equal(other dag.Type) bool {
	o, ok := other.(Type)
	return ok && arrow.TypeEqual(t.dt, o.dt)
}

// String returns the Arrow type's own textual spelling ("int32", "int64",
// "float64", "utf8", "bool", "list<item: int32, nullable>"), which is also what a
// cast's target-type constant column carries.
func (t Type) String() string {
	return t.dt.String()
}

// NestedElementType unwraps one level of list nesting.
func (t Type) NestedElementType() (dag.Type, bool) {
	lt, ok := t.dt.(*arrow.ListType)
	if !ok {
		return nil, false
	}
	return Type{dt: lt.Elem()}, true
}

func (t Type) numericRank() (int, bool) {
	switch t.dt.ID() {
	case arrow.INT32:
		return 0, true
	case arrow.INT64:
		return 1, true
	case arrow.FLOAT64:
		return 2, true
	default:
		return 0, false
	}
}

// widenNumeric picks the wider of two numeric types, following the same
// permissive Int32 < Int64 < Float64 widening used throughout arithmetic
// coercion.
func widenNumeric(a, b Type) (Type, error) {
	ra, oka := a.numericRank()
	rb, okb := b.numericRank()
	if !oka || !okb {
		return Type{}, fmt.Errorf("columnrt: arithmetic requires numeric operands, got %s and %s", a, b)
	}
	if ra >= rb {
		return a, nil
	}
	return b, nil
}
