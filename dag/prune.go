package dag

// RemoveUnusedActionsNames resolves each name via the index, deduplicates,
// and prunes to exactly that required set.
func (d *Dag) RemoveUnusedActionsNames(names []string) error {
	seen := make(map[*Node]bool, len(names))
	nodes := make([]*Node, 0, len(names))
	for _, name := range names {
		n, err := d.FindNode(name)
		if err != nil {
			return err
		}
		if !seen[n] {
			seen[n] = true
			nodes = append(nodes, n)
		}
	}
	return d.RemoveUnusedActionsNodes(nodes)
}

// RemoveUnusedActionsNodes rebuilds the index from exactly the given
// nodes, then runs the full prune.
func (d *Dag) RemoveUnusedActionsNodes(nodes []*Node) error {
	d.index.clear()
	for _, n := range nodes {
		d.index.insert(n)
	}
	return d.RemoveUnusedActions()
}

// RemoveUnusedActions prunes the DAG down to what is reachable from the
// current index (plus every ARRAY_JOIN anywhere in the store, which is
// never silently dropped because it affects row count).
func (d *Dag) RemoveUnusedActions() error {
	visited := make(map[*Node]bool)
	var stack []*Node

	push := func(n *Node) {
		if n != nil && !visited[n] {
			visited[n] = true
			stack = append(stack, n)
		}
	}

	for _, n := range d.index.nodes() {
		push(n)
	}
	d.store.forEach(func(n *Node) {
		if n.Kind == ArrayJoin {
			push(n)
		}
	})

	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(v.Children) > 0 && v.Col != nil && v.AllowConstantFolding {
			v.Kind = ColumnKind
			v.Children = nil
			continue
		}

		for _, c := range v.Children {
			push(c)
		}
	}

	d.store.removeIf(func(n *Node) bool { return visited[n] })

	survivingInputs := d.inputs[:0]
	for _, n := range d.inputs {
		if visited[n] {
			survivingInputs = append(survivingInputs, n)
		}
	}
	d.inputs = survivingInputs

	return nil
}

// RemoveUnusedInput excises a single input that nothing else references.
func (d *Dag) RemoveUnusedInput(name string) error {
	var target *Node
	idx := -1
	for i, n := range d.inputs {
		if n.ResultName == name {
			target = n
			idx = i
			break
		}
	}
	if target == nil {
		return newErr(LogicalError, "remove_unused_input", "no such input: "+name)
	}

	stillUsed := false
	d.store.forEach(func(n *Node) {
		for _, c := range n.Children {
			if c == target {
				stillUsed = true
			}
		}
	})
	if stillUsed {
		return newErr(LogicalError, "remove_unused_input", "input still referenced: "+name)
	}

	d.index.removeNode(target)
	d.store.removeIf(func(n *Node) bool { return n != target })
	d.inputs = append(d.inputs[:idx], d.inputs[idx+1:]...)
	return nil
}
