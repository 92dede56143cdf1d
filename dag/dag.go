// Package dag implements the expression-action DAG: the physical
// expression program produced by query planning. A DAG takes a set of
// named input columns, applies a network of functions, aliases,
// array-unnesting and constant-producing nodes, and exposes a designated
// subset of nodes as its result columns.
//
// Construction is single-writer: a Dag must not be mutated from more than
// one goroutine at a time. Reads of a fully built, no-longer-mutated Dag
// are safe to share across goroutines as long as the Column/Type values it
// holds are themselves safe for concurrent use.
package dag

// Settings mirrors the tunables of the expression program this DAG
// belongs to. They are metadata the core itself mostly just carries and
// merges; only ProjectInput and CompileExpressions change core behavior.
type Settings struct {
	// ProjectInput, once set, means Merge fails with LogicalError when the
	// second DAG has an input that no entry of this DAG's index matches.
	ProjectInput bool

	// ProjectedOutput marks a DAG produced by Project.
	ProjectedOutput bool

	MaxTemporaryColumns            int
	MaxTemporaryNonConstColumns    int

	CompileExpressions           bool
	MinCountToCompileExpression int

	// CompileFunctions is the JIT hook: if set and CompileExpressions is
	// true, Compile invokes it instead of being a no-op. See jit.go.
	CompileFunctions func(d *Dag) error
}

func mergeSettings(a, b Settings) Settings {
	out := a
	if b.MaxTemporaryColumns > out.MaxTemporaryColumns {
		out.MaxTemporaryColumns = b.MaxTemporaryColumns
	}
	if b.MaxTemporaryNonConstColumns > out.MaxTemporaryNonConstColumns {
		out.MaxTemporaryNonConstColumns = b.MaxTemporaryNonConstColumns
	}
	out.ProjectedOutput = b.ProjectedOutput
	if b.CompileFunctions != nil {
		out.CompileFunctions = b.CompileFunctions
	}
	out.CompileExpressions = a.CompileExpressions || b.CompileExpressions
	if b.MinCountToCompileExpression > out.MinCountToCompileExpression {
		out.MinCountToCompileExpression = b.MinCountToCompileExpression
	}
	return out
}

// Dag is the expression-action DAG itself.
type Dag struct {
	store    *store
	inputs   []*Node
	index    *nameIndex
	Settings Settings
}

// New returns an empty DAG.
func New() *Dag {
	return &Dag{
		store:  newStore(),
		index:  newNameIndex(),
		inputs: nil,
	}
}

// NodeCount returns the number of nodes currently owned by the DAG
// (including nodes not reachable from the index).
func (d *Dag) NodeCount() int {
	return d.store.len()
}

// Inputs returns the DAG's INPUT nodes in declaration order.
func (d *Dag) Inputs() []*Node {
	out := make([]*Node, len(d.inputs))
	copy(out, d.inputs)
	return out
}

// IndexNodes returns the DAG's currently exposed nodes in index order.
func (d *Dag) IndexNodes() []*Node {
	return d.index.nodes()
}

// ColumnWithType is one {name, type} pair, as returned by RequiredColumns.
type ColumnWithType struct {
	Name string
	Type Type
}

// RequiredColumns returns {name, type} for every input, in declaration
// order.
func (d *Dag) RequiredColumns() []ColumnWithType {
	out := make([]ColumnWithType, 0, len(d.inputs))
	for _, n := range d.inputs {
		out = append(out, ColumnWithType{Name: n.ResultName, Type: n.ResultType})
	}
	return out
}

// ResultColumn is one {column?, type, name} triple, as returned by
// ResultColumns.
type ResultColumn struct {
	Name string
	Type Type
	Col  Column // nil unless this node carries a constant
}

// ResultColumns returns the full index contents, in order.
func (d *Dag) ResultColumns() []ResultColumn {
	nodes := d.index.nodes()
	out := make([]ResultColumn, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ResultColumn{Name: n.ResultName, Type: n.ResultType, Col: n.Col})
	}
	return out
}

// Names returns the index's names, in order (duplicates preserved).
func (d *Dag) Names() []string {
	nodes := d.index.nodes()
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ResultName)
	}
	return out
}

// NamesAndTypes returns the index's {name, type} pairs, in order.
func (d *Dag) NamesAndTypes() []ColumnWithType {
	nodes := d.index.nodes()
	out := make([]ColumnWithType, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ColumnWithType{Name: n.ResultName, Type: n.ResultType})
	}
	return out
}
