package dag

import "fmt"

// ConvertMode selects how MakeConvertingActions pairs source columns with
// result columns.
type ConvertMode int

const (
	// ConvertByPosition requires |source| == |result|; the i-th source
	// maps to the i-th result.
	ConvertByPosition ConvertMode = iota
	// ConvertByName matches each result to the next unconsumed source
	// column carrying the same name.
	ConvertByName
)

// ConvertColumn describes one source or result slot for
// MakeConvertingActions: a name, a type, and (if the slot is constant) the
// constant value it must carry.
type ConvertColumn struct {
	Name  string
	Type  Type
	Const Column
}

// ConvertRuntime supplies the Execution Runtime pieces MakeConvertingActions
// needs beyond the generic function-resolver contract: a cast resolver
// (with a diagnostic carrying source/result names for error messages), a
// materialize resolver, and a way to build a constant string column
// holding a type's textual name.
type ConvertRuntime struct {
	Cast            func(diag CastDiagnostic) FunctionOverloadResolver
	Materialize     FunctionOverloadResolver
	TypeNameColumn  func(typeName string) Column
}

// CastDiagnostic carries the names a cast-resolver error message should
// mention.
type CastDiagnostic struct {
	SourceName string
	ResultName string
}

// MakeConvertingActions produces a fresh DAG that takes source columns as
// inputs and emits exactly result columns, in order, in type and
// constness.
func MakeConvertingActions(source, result []ConvertColumn, mode ConvertMode, ignoreConstantValues bool, rt ConvertRuntime) (*Dag, error) {
	d := New()

	inputs := make([]*Node, len(source))
	for i, s := range source {
		var n *Node
		var err error
		if s.Const != nil {
			n, err = d.AddInputColumn(s.Name, s.Const)
		} else {
			n, err = d.AddInput(s.Name, s.Type)
		}
		if err != nil {
			return nil, err
		}
		inputs[i] = n
	}

	chosen := make([]*Node, len(result))
	switch mode {
	case ConvertByPosition:
		if len(source) != len(result) {
			return nil, newErr(NumberOfColumnsDoesntMatch, "make_converting_actions",
				fmt.Sprintf("source has %d columns, result has %d", len(source), len(result)))
		}
		copy(chosen, inputs)
	case ConvertByName:
		queues := make(map[string][]*Node)
		for i, s := range source {
			queues[s.Name] = append(queues[s.Name], inputs[i])
		}
		for i, r := range result {
			q := queues[r.Name]
			if len(q) == 0 {
				return nil, newErr(ThereIsNoColumn, "make_converting_actions", "no such column: "+r.Name)
			}
			chosen[i] = q[0]
			queues[r.Name] = q[1:]
		}
	}

	projection := make([]*Node, len(result))
	for i, r := range result {
		src := chosen[i]

		srcConst := src.isConstant()
		if r.Const != nil {
			if srcConst {
				if ignoreConstantValues {
					replaced, err := d.addColumnNode(r.Name, r.Const, true)
					if err != nil {
						return nil, err
					}
					src = replaced
				} else if src.Col.GetScalarField() != r.Const.GetScalarField() {
					return nil, newErr(IllegalColumn, "make_converting_actions",
						"constant value mismatch for "+r.Name)
				}
			} else {
				return nil, newErr(IllegalColumn, "make_converting_actions",
					"result column "+r.Name+" is constant but source is not")
			}
		}

		if !r.Type.Equal(src.ResultType) {
			typeNameNode, err := d.addColumnNode(src.ResultType.String()+"->"+r.Type.String(), rt.TypeNameColumn(r.Type.String()), true)
			if err != nil {
				return nil, err
			}
			castResolver := rt.Cast(CastDiagnostic{SourceName: src.ResultName, ResultName: r.Name})
			cast, err := d.AddFunction(castResolver, []*Node{src, typeNameNode}, "", true)
			if err != nil {
				return nil, err
			}
			src = cast
		}

		if src.isConstant() && r.Const == nil {
			materialized, err := d.AddFunction(rt.Materialize, []*Node{src}, "", true)
			if err != nil {
				return nil, err
			}
			src = materialized
		}

		if src.ResultName != r.Name {
			alias, err := d.addAliasNode(src, r.Name, true)
			if err != nil {
				return nil, err
			}
			src = alias
		}

		projection[i] = src
	}

	if err := d.RemoveUnusedActionsNodes(projection); err != nil {
		return nil, err
	}
	d.Settings.ProjectInput = true
	return d, nil
}
