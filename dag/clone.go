package dag

// Clone returns a deep structural copy of d: all new nodes, in one pass,
// with children, inputs, and the index rewired to point at the copies.
// Sharing is preserved (two references to the same original node end up
// referencing the same copy).
func (d *Dag) Clone() *Dag {
	orig2copy := make(map[*Node]*Node, d.store.len())

	clone := New()
	d.store.forEach(func(n *Node) {
		children := make([]*Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = orig2copy[c]
		}
		c := &Node{
			Kind:                 n.Kind,
			ResultName:           n.ResultName,
			ResultType:           n.ResultType,
			Col:                  n.Col,
			Children:             children,
			FuncBuilder:          n.FuncBuilder,
			FuncBase:             n.FuncBase,
			FuncInstance:         n.FuncInstance,
			AllowConstantFolding: n.AllowConstantFolding,
		}
		orig2copy[n] = c
		clone.store.push(c)
	})

	for _, in := range d.inputs {
		clone.inputs = append(clone.inputs, orig2copy[in])
	}
	for _, n := range d.IndexNodes() {
		clone.index.insert(orig2copy[n])
	}
	clone.Settings = d.Settings

	return clone
}
