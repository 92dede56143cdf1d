package dag

import "fmt"

// fakeType is the smallest Type satisfier needed to exercise the core
// without pulling in a real columnar runtime.
type fakeType struct {
	name string
	elem *fakeType // non-nil iff this is an array type
}

func scalarType(name string) *fakeType { return &fakeType{name: name} }
func arrayType(elem *fakeType) *fakeType {
	return &fakeType{name: "Array(" + elem.name + ")", elem: elem}
}

func (t *fakeType) Equal(other Type) bool {
	o, ok := other.(*fakeType)
	return ok && o.name == t.name
}
func (t *fakeType) String() string { return t.name }
func (t *fakeType) NestedElementType() (Type, bool) {
	if t.elem == nil {
		return nil, false
	}
	return t.elem, true
}

// fakeColumn holds Go values directly (one per row), with a constant flag.
type fakeColumn struct {
	typ      *fakeType
	name     string
	values   []any
	constant bool
}

func constCol(typ *fakeType, v any) *fakeColumn {
	return &fakeColumn{typ: typ, values: []any{v}, constant: true}
}
func vecCol(typ *fakeType, vs []any) *fakeColumn {
	return &fakeColumn{typ: typ, values: vs, constant: false}
}

func (c *fakeColumn) Size() int         { return len(c.values) }
func (c *fakeColumn) IsEmpty() bool     { return len(c.values) == 0 }
func (c *fakeColumn) IsConstant() bool  { return c.constant }
func (c *fakeColumn) GetScalarField() any {
	if len(c.values) == 0 {
		return nil
	}
	return c.values[0]
}
func (c *fakeColumn) CloneResized(n int) Column {
	if c.constant {
		vs := make([]any, n)
		var v any
		if len(c.values) > 0 {
			v = c.values[0]
		}
		for i := range vs {
			vs[i] = v
		}
		return &fakeColumn{typ: c.typ, values: vs, constant: true, name: c.name}
	}
	if n != len(c.values) {
		panic("CloneResized on non-constant column with mismatched length")
	}
	return c
}
func (c *fakeColumn) Name() string  { return c.name }
func (c *fakeColumn) Type() Type    { return c.typ }

// fakePlus is a constant-foldable, deterministic, non-stateful two-arg
// integer-add function -- enough to exercise §4.3's folding steps.
type fakePlusResolver struct{}

func (fakePlusResolver) Name() string { return "plus" }
func (fakePlusResolver) Build(args []FunctionArgument) (FunctionBase, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("plus takes 2 arguments, got %d", len(args))
	}
	return &fakePlusBase{resultType: args[0].Type}, nil
}

type fakePlusBase struct {
	resultType Type
}

func (b *fakePlusBase) Name() string                      { return "plus" }
func (b *fakePlusBase) ResultType() Type                  { return b.resultType }
func (b *fakePlusBase) IsSuitableForConstantFolding() bool { return true }
func (b *fakePlusBase) IsDeterministic() bool              { return true }
func (b *fakePlusBase) IsStateful() bool                   { return false }
func (b *fakePlusBase) ConstantIfAlwaysConstantWithArgs(args []FunctionArgument) (Column, bool) {
	return nil, false
}
func (b *fakePlusBase) Prepare(args []FunctionArgument) (FunctionInstance, error) {
	return fakePlusInstance{}, nil
}

type fakePlusInstance struct{}

func (fakePlusInstance) Execute(args []FunctionArgument, resultType Type, nRows int, dryRun bool) (Column, error) {
	allConst := true
	for _, a := range args {
		if a.Col == nil || !a.Col.IsConstant() {
			allConst = false
		}
	}
	if allConst {
		sum := 0
		for _, a := range args {
			sum += a.Col.GetScalarField().(int)
		}
		return constCol(resultType.(*fakeType), sum), nil
	}
	n := nRows
	out := make([]any, n)
	for i := 0; i < n; i++ {
		sum := 0
		for _, a := range args {
			sum += a.Col.CloneResized(n).(*fakeColumn).values[i].(int)
		}
		out[i] = sum
	}
	return vecCol(resultType.(*fakeType), out), nil
}

// fakeGreaterResolver builds a non-constant-folding-irrelevant ">" over
// ints, used by the split-for-filter scenario.
type fakeGreaterResolver struct{}

func (fakeGreaterResolver) Name() string { return "greater" }
func (fakeGreaterResolver) Build(args []FunctionArgument) (FunctionBase, error) {
	return &fakeGreaterBase{}, nil
}

type fakeGreaterBase struct{}

func (b *fakeGreaterBase) Name() string                      { return "greater" }
func (b *fakeGreaterBase) ResultType() Type                  { return scalarType("Bool") }
func (b *fakeGreaterBase) IsSuitableForConstantFolding() bool { return true }
func (b *fakeGreaterBase) IsDeterministic() bool              { return true }
func (b *fakeGreaterBase) IsStateful() bool                   { return false }
func (b *fakeGreaterBase) ConstantIfAlwaysConstantWithArgs(args []FunctionArgument) (Column, bool) {
	return nil, false
}
func (b *fakeGreaterBase) Prepare(args []FunctionArgument) (FunctionInstance, error) {
	return fakeGreaterInstance{}, nil
}

type fakeGreaterInstance struct{}

func (fakeGreaterInstance) Execute(args []FunctionArgument, resultType Type, nRows int, dryRun bool) (Column, error) {
	allConst := args[0].Col != nil && args[0].Col.IsConstant() && args[1].Col != nil && args[1].Col.IsConstant()
	if allConst {
		a := args[0].Col.GetScalarField().(int)
		b := args[1].Col.GetScalarField().(int)
		return constCol(scalarType("Bool"), a > b), nil
	}
	return vecCol(scalarType("Bool"), make([]any, nRows)), nil
}

// fakeCastResolver/fakeMaterializeResolver satisfy §4.6's two ConvertRuntime
// hooks for tests.
type fakeCastResolver struct {
	diag CastDiagnostic
}

func (r fakeCastResolver) Name() string { return "cast" }
func (r fakeCastResolver) Build(args []FunctionArgument) (FunctionBase, error) {
	typeName, _ := args[1].Col.GetScalarField().(string)
	return &fakeCastBase{target: scalarType(typeName)}, nil
}

type fakeCastBase struct {
	target *fakeType
}

func (b *fakeCastBase) Name() string                      { return "cast" }
func (b *fakeCastBase) ResultType() Type                  { return b.target }
func (b *fakeCastBase) IsSuitableForConstantFolding() bool { return true }
func (b *fakeCastBase) IsDeterministic() bool              { return true }
func (b *fakeCastBase) IsStateful() bool                   { return false }
func (b *fakeCastBase) ConstantIfAlwaysConstantWithArgs(args []FunctionArgument) (Column, bool) {
	return nil, false
}
func (b *fakeCastBase) Prepare(args []FunctionArgument) (FunctionInstance, error) {
	return fakeCastInstance{target: b.target}, nil
}

type fakeCastInstance struct{ target *fakeType }

func (c fakeCastInstance) Execute(args []FunctionArgument, resultType Type, nRows int, dryRun bool) (Column, error) {
	if args[0].Col != nil && args[0].Col.IsConstant() {
		return constCol(c.target, args[0].Col.GetScalarField()), nil
	}
	return vecCol(c.target, make([]any, nRows)), nil
}

type fakeMaterializeResolver struct{}

func (fakeMaterializeResolver) Name() string { return "materialize" }
func (fakeMaterializeResolver) Build(args []FunctionArgument) (FunctionBase, error) {
	return &fakeMaterializeBase{typ: args[0].Type}, nil
}

type fakeMaterializeBase struct{ typ Type }

func (b *fakeMaterializeBase) Name() string                      { return "materialize" }
func (b *fakeMaterializeBase) ResultType() Type                  { return b.typ }
func (b *fakeMaterializeBase) IsSuitableForConstantFolding() bool { return false }
func (b *fakeMaterializeBase) IsDeterministic() bool              { return true }
func (b *fakeMaterializeBase) IsStateful() bool                   { return false }
func (b *fakeMaterializeBase) ConstantIfAlwaysConstantWithArgs(args []FunctionArgument) (Column, bool) {
	return nil, false
}
func (b *fakeMaterializeBase) Prepare(args []FunctionArgument) (FunctionInstance, error) {
	return fakeMaterializeInstance{}, nil
}

type fakeMaterializeInstance struct{}

func (fakeMaterializeInstance) Execute(args []FunctionArgument, resultType Type, nRows int, dryRun bool) (Column, error) {
	return args[0].Col.CloneResized(nRows), nil
}

func testConvertRuntime() ConvertRuntime {
	return ConvertRuntime{
		Cast: func(diag CastDiagnostic) FunctionOverloadResolver {
			return fakeCastResolver{diag: diag}
		},
		Materialize: fakeMaterializeResolver{},
		TypeNameColumn: func(typeName string) Column {
			return constCol(scalarType("String"), typeName)
		},
	}
}
