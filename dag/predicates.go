package dag

// Empty reports whether every node owned by the DAG is an INPUT.
func (d *Dag) Empty() bool {
	empty := true
	d.store.forEach(func(n *Node) {
		if n.Kind != Input {
			empty = false
		}
	})
	return empty
}

// HasArrayJoin reports whether any node in the store is an ARRAY_JOIN.
func (d *Dag) HasArrayJoin() bool {
	found := false
	d.store.forEach(func(n *Node) {
		if n.Kind == ArrayJoin {
			found = true
		}
	})
	return found
}

// HasStatefulFunctions reports whether any FUNCTION node's FuncBase
// reports itself stateful.
func (d *Dag) HasStatefulFunctions() bool {
	found := false
	d.store.forEach(func(n *Node) {
		if n.Kind == Function && n.FuncBase != nil && n.FuncBase.IsStateful() {
			found = true
		}
	})
	return found
}

// TryRestoreColumn re-exposes a node named name in the index, if one
// exists in the store. It scans the store in reverse insertion order and
// re-indexes the first match via replace, so if multiple nodes share the
// name, the most recently added one wins -- callers cannot pick a
// different match (see SPEC_FULL.md §9).
func (d *Dag) TryRestoreColumn(name string) bool {
	var found *Node
	d.store.forEachReverse(func(n *Node) {
		if found == nil && n.ResultName == name {
			found = n
		}
	})
	if found == nil {
		return false
	}
	d.index.replace(found)
	return true
}
