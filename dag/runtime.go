package dag

// Type, Column and the function triad below are the Execution Runtime
// contract: the core never constructs or inspects a concrete column/type
// implementation, only calls through these interfaces. A concrete
// satisfier lives outside this package (see runtime/columnrt).
type Type interface {
	Equal(other Type) bool
	String() string

	// NestedElementType returns the element type of an array type, or
	// (nil, false) if this is not an array type.
	NestedElementType() (Type, bool)
}

// Column is an opaque materialized or constant value.
type Column interface {
	Size() int
	IsEmpty() bool
	IsConstant() bool

	// GetScalarField returns the value of row 0, for comparing constants.
	GetScalarField() any

	// CloneResized returns a column of length n. For a constant column
	// this broadcasts its single value; for a non-constant column n must
	// equal Size().
	CloneResized(n int) Column

	Name() string
	Type() Type
}

// FunctionOverloadResolver picks/instantiates a concrete overload given the
// actual argument descriptors.
type FunctionOverloadResolver interface {
	Name() string
	Build(args []FunctionArgument) (FunctionBase, error)
}

// FunctionArgument is what the builder surface hands to a resolver: the
// child node's current column (nil if not constant), its type and name.
type FunctionArgument struct {
	Col  Column
	Type Type
	Name string
}

// FunctionBase describes one resolved overload.
type FunctionBase interface {
	Name() string
	ResultType() Type
	Prepare(args []FunctionArgument) (FunctionInstance, error)
	IsSuitableForConstantFolding() bool
	IsDeterministic() bool
	IsStateful() bool

	// ConstantIfAlwaysConstantWithArgs returns a constant column if this
	// function always returns a (possibly argument-independent) constant,
	// without actually being foldable in the algebraic sense (ok is the
	// presence flag; a nil Column with ok==true is invalid).
	ConstantIfAlwaysConstantWithArgs(args []FunctionArgument) (Column, bool)
}

// FunctionInstance is a prepared, executable overload.
type FunctionInstance interface {
	Execute(args []FunctionArgument, resultType Type, nRows int, dryRun bool) (Column, error)
}
