package dag

// Split partitions d into two DAGs, first and second, such that
// Merge(first, second) reproduces d's semantics (modulo pruning).
// splitNodes must land in first; every node d's children-closure requires
// to compute one of splitNodes also lands in first.
func Split(d *Dag, splitNodes []*Node) (*Dag, *Dag, error) {
	// Pass 1 -- classify: a node is needed-by-first if it is in
	// splitNodes or is reachable from one of them by following children
	// (an explicit stack, not recursion, since expression trees can be
	// deep).
	neededByFirst := make(map[*Node]bool, len(splitNodes))
	var stack []*Node
	for _, n := range splitNodes {
		if !neededByFirst[n] {
			neededByFirst[n] = true
			stack = append(stack, n)
		}
	}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range v.Children {
			if !neededByFirst[c] {
				neededByFirst[c] = true
				stack = append(stack, c)
			}
		}
	}

	inOriginalIndex := make(map[*Node]bool)
	for _, n := range d.IndexNodes() {
		inOriginalIndex[n] = true
	}

	firstCopy := make(map[*Node]*Node)
	secondCopy := make(map[*Node]*Node)
	var firstStoreOrder []*Node
	var secondStoreOrder []*Node
	var firstBoundaryOutputs []*Node
	boundaryAdded := make(map[*Node]bool)

	newFirst := func(n *Node) *Node {
		firstStoreOrder = append(firstStoreOrder, n)
		return n
	}
	newSecond := func(n *Node) *Node {
		secondStoreOrder = append(secondStoreOrder, n)
		return n
	}

	// boundaryInputFor returns the second-side INPUT node standing in for
	// the already-classified-needed-by-first node n, creating it (and
	// the matching first-side boundary output) on first use.
	boundaryInputFor := func(n *Node) *Node {
		if sc, ok := secondCopy[n]; ok {
			return sc
		}
		sn := newSecond(&Node{Kind: Input, ResultName: n.ResultName, ResultType: n.ResultType})
		secondCopy[n] = sn
		fn := firstCopy[n]
		if !boundaryAdded[fn] {
			boundaryAdded[fn] = true
			firstBoundaryOutputs = append(firstBoundaryOutputs, fn)
		}
		return sn
	}

	copyShallow := func(n *Node, children []*Node) *Node {
		return &Node{
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
	}

	// Pass 2 -- materialize. Node construction invariant (3.4) guarantees
	// children always precede their parent in store order, so a single
	// forward scan of the store already visits every node in post-order;
	// no separate traversal or recursion is needed.
	d.store.forEach(func(n *Node) {
		if neededByFirst[n] {
			children := make([]*Node, len(n.Children))
			for i, c := range n.Children {
				children[i] = firstCopy[c]
			}
			fn := newFirst(copyShallow(n, children))
			firstCopy[n] = fn
			if inOriginalIndex[n] {
				boundaryInputFor(n)
			}
			return
		}

		children := make([]*Node, len(n.Children))
		for i, c := range n.Children {
			if sc, ok := secondCopy[c]; ok {
				children[i] = sc
			} else if c.Kind == ColumnKind {
				children[i] = newSecond(copyShallow(c, nil))
			} else {
				children[i] = boundaryInputFor(c)
			}
		}
		sn := newSecond(copyShallow(n, children))
		secondCopy[n] = sn

		if n.Kind == Input {
			fn := newFirst(copyShallow(n, nil))
			firstCopy[n] = fn
			if !boundaryAdded[fn] {
				boundaryAdded[fn] = true
				firstBoundaryOutputs = append(firstBoundaryOutputs, fn)
			}
		}
	})

	first := New()
	first.store = &store{nodes: firstStoreOrder}
	for _, in := range d.inputs {
		if fc, ok := firstCopy[in]; ok {
			first.inputs = append(first.inputs, fc)
		}
	}
	for _, n := range firstBoundaryOutputs {
		first.index.insert(n)
	}

	second := New()
	second.store = &store{nodes: secondStoreOrder}
	// second.inputs is every Input-kind node in second, in discovery
	// order -- both the ones synthesized as boundary inputs by
	// boundaryInputFor and the ones that are direct copies of original
	// Input nodes that weren't needed-by-first.
	for _, n := range secondStoreOrder {
		if n.Kind == Input {
			second.inputs = append(second.inputs, n)
		}
	}
	for _, n := range d.IndexNodes() {
		second.index.insert(secondCopy[n])
	}

	return first, second, nil
}

// SplitBeforeArrayJoin partitions d so that every node depending on an
// array-join frontier (directly, as an INPUT named in arrayJoinedColumns,
// or transitively through a child) lands in second, and everything else
// lands in first. Array-joined columns must survive through first even if
// otherwise unused, so first.Settings.ProjectInput is left false.
func SplitBeforeArrayJoin(d *Dag, arrayJoinedColumns map[string]bool) (*Dag, *Dag, error) {
	dependsOnArrayJoin := make(map[*Node]bool)
	d.store.forEach(func(n *Node) {
		dep := false
		if n.Kind == Input && arrayJoinedColumns[n.ResultName] {
			dep = true
		}
		for _, c := range n.Children {
			if dependsOnArrayJoin[c] {
				dep = true
			}
		}
		dependsOnArrayJoin[n] = dep
	})

	var splitNodes []*Node
	d.store.forEach(func(n *Node) {
		if !dependsOnArrayJoin[n] {
			splitNodes = append(splitNodes, n)
		}
	})

	first, second, err := Split(d, splitNodes)
	if err != nil {
		return nil, nil, err
	}
	first.Settings.ProjectInput = false
	return first, second, nil
}

// SplitForFilter splits d so that first computes exactly columnName (and
// its prerequisites) and second computes everything else on top of it.
func SplitForFilter(d *Dag, columnName string) (*Dag, *Dag, error) {
	n, ok := d.index.find(columnName)
	if !ok {
		return nil, nil, newErr(LogicalError, "split_for_filter", "no such column: "+columnName)
	}
	return Split(d, []*Node{n})
}
