package dag

// Compile is the JIT hook: if Settings.CompileExpressions is set and a
// CompileFunctions callback is installed, it is invoked (it may replace
// function nodes with compiled equivalents), and the DAG is re-pruned to
// drop any sub-expressions the compiled replacement made dead. The
// compiler itself lives outside this package; a compilation cache, if
// any, is held by reference in the callback's closure and survives Merge
// because Settings.CompileFunctions carries across it.
func (d *Dag) Compile() error {
	if !d.Settings.CompileExpressions || d.Settings.CompileFunctions == nil {
		return nil
	}
	if err := d.Settings.CompileFunctions(d); err != nil {
		return err
	}
	return d.RemoveUnusedActions()
}
