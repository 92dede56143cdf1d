package columnrt

import "github.com/ariyn/exprdag/dag"

// Registry is the named set of function overload resolvers a SQL front end
// or CLI looks functions up in by name.
type Registry struct {
	resolvers map[string]dag.FunctionOverloadResolver
}

// NewRegistry populates every arithmetic, comparison and boolean resolver
// plus not. Cast and materialize are not registered under a plain name:
// cast needs a per-call CastDiagnostic factory (see Runtime.ConvertRuntime),
// and materialize is an internal convert-step detail never named in SQL.
func NewRegistry() *Registry {
	r := &Registry{resolvers: make(map[string]dag.FunctionOverloadResolver)}
	all := []dag.FunctionOverloadResolver{
		arithResolver{op: opPlus, name: "plus"},
		arithResolver{op: opMinus, name: "minus"},
		arithResolver{op: opMultiply, name: "multiply"},
		arithResolver{op: opDivide, name: "divide"},
		cmpResolver{op: cmpEquals, name: "equals"},
		cmpResolver{op: cmpNotEquals, name: "notEquals"},
		cmpResolver{op: cmpLess, name: "less"},
		cmpResolver{op: cmpLessOrEquals, name: "lessOrEquals"},
		cmpResolver{op: cmpGreater, name: "greater"},
		cmpResolver{op: cmpGreaterOrEquals, name: "greaterOrEquals"},
		boolResolver{op: boolAnd, name: "and"},
		boolResolver{op: boolOr, name: "or"},
		notResolver{},
	}
	for _, res := range all {
		r.resolvers[res.Name()] = res
	}
	return r
}

// Lookup resolves a function name to its overload resolver.
func (r *Registry) Lookup(name string) (dag.FunctionOverloadResolver, bool) {
	res, ok := r.resolvers[name]
	return res, ok
}
