package columnrt

import (
	"fmt"

	"github.com/ariyn/exprdag/dag"
)

// materializeResolver is the one-argument resolver MakeConvertingActions
// step 3 requires: expand a size-1 constant column to n_rows. It is never
// suitable for constant folding -- folding it at construction time would
// defeat its entire purpose, which is to defer the expansion until the
// consuming stage actually runs.
type materializeResolver struct{}

func (materializeResolver) Name() string { return "materialize" }

func (materializeResolver) Build(args []dag.FunctionArgument) (dag.FunctionBase, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("materialize takes exactly 1 argument, got %d", len(args))
	}
	t, ok := args[0].Type.(Type)
	if !ok {
		return nil, fmt.Errorf("materialize: argument is not a columnrt.Type")
	}
	return &materializeBase{typ: t}, nil
}

type materializeBase struct {
	typ Type
}

func (b *materializeBase) Name() string             { return "materialize" }
func (b *materializeBase) ResultType() dag.Type     { return b.typ }
func (b *materializeBase) IsSuitableForConstantFolding() bool { return false }
func (b *materializeBase) IsDeterministic() bool    { return true }
func (b *materializeBase) IsStateful() bool         { return false }
func (b *materializeBase) ConstantIfAlwaysConstantWithArgs(args []dag.FunctionArgument) (dag.Column, bool) {
	return nil, false
}
func (b *materializeBase) Prepare(args []dag.FunctionArgument) (dag.FunctionInstance, error) {
	return materializeInstance{}, nil
}

type materializeInstance struct{}

func (materializeInstance) Execute(args []dag.FunctionArgument, resultType dag.Type, nRows int, dryRun bool) (dag.Column, error) {
	if args[0].Col == nil {
		return nil, fmt.Errorf("columnrt: materialize requires a materialized input column")
	}
	return args[0].Col.CloneResized(nRows), nil
}
