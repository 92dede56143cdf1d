package columnrt

import "github.com/ariyn/exprdag/dag"

// Runtime is the small helper surface the core needs beyond per-function
// resolution: a way to build the String constant a CAST's target-type
// argument requires, and a name->resolver lookup for the SQL front end.
type Runtime struct {
	registry *Registry
}

// NewRuntime builds a Runtime backed by a fresh Registry.
func NewRuntime() *Runtime {
	return &Runtime{registry: NewRegistry()}
}

// StringConstant builds a size-1 constant String column, the same shape
// ConvertRuntime's TypeNameColumn builds for a CAST's type-name argument.
func (rt *Runtime) StringConstant(s string) dag.Column {
	return NewStringScalar(s)
}

// Resolve backs the SQL front end's function-name lookup.
func (rt *Runtime) Resolve(name string) (dag.FunctionOverloadResolver, bool) {
	return rt.registry.Lookup(name)
}

// ConvertRuntime adapts this Runtime to the dag.ConvertRuntime shape
// MakeConvertingActions needs: a cast-resolver factory, the materialize
// resolver, and the type-name column builder.
func (rt *Runtime) ConvertRuntime() dag.ConvertRuntime {
	return dag.ConvertRuntime{
		Cast: func(diag dag.CastDiagnostic) dag.FunctionOverloadResolver {
			return castResolver{diag: diag}
		},
		Materialize: materializeResolver{},
		TypeNameColumn: func(typeName string) dag.Column {
			return NewStringScalar(typeName)
		},
	}
}
