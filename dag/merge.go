package dag

// Merge composes first and second into a single DAG computing
// second∘first: second's inputs are resolved against first's currently
// exposed outputs where names match, and whatever second does not
// consume from first passes through as first's surviving output. Both
// input DAGs are consumed; only the returned DAG (reusing first's
// storage) remains valid.
func Merge(first, second *Dag) (*Dag, error) {
	firstOutputs := make(map[string][]*Node)
	for _, n := range first.IndexNodes() {
		firstOutputs[n.ResultName] = append(firstOutputs[n.ResultName], n)
	}

	inputsMap := make(map[*Node]*Node) // second INPUT -> first node it resolves to
	removedFirstResult := make(map[*Node]int)
	var newInputsFromSecond []*Node

	for _, in := range second.inputs {
		q := firstOutputs[in.ResultName]
		if len(q) > 0 {
			p := q[0]
			firstOutputs[in.ResultName] = q[1:]
			inputsMap[in] = p
			removedFirstResult[p]++
		} else {
			if first.Settings.ProjectInput {
				return nil, newErr(LogicalError, "merge",
					"second input "+in.ResultName+" has no match in first's outputs, and first.project_input is set")
			}
			newInputsFromSecond = append(newInputsFromSecond, in)
		}
	}

	// Rewrite every child reference in second that pointed at a mapped
	// INPUT, so it points at the corresponding first node instead.
	second.store.forEach(func(n *Node) {
		for i, c := range n.Children {
			if p, ok := inputsMap[c]; ok {
				n.Children[i] = p
			}
		}
	})

	rewrite := func(n *Node) *Node {
		if p, ok := inputsMap[n]; ok {
			return p
		}
		return n
	}

	secondIdx := second.IndexNodes()
	secondIdxRewritten := make([]*Node, len(secondIdx))
	for i, n := range secondIdx {
		secondIdxRewritten[i] = rewrite(n)
	}

	var mergedIndexNodes []*Node
	combinedProjectInput := first.Settings.ProjectInput

	if second.Settings.ProjectInput {
		mergedIndexNodes = secondIdxRewritten
		combinedProjectInput = true
	} else {
		removedSoFar := make(map[*Node]int)
		var survivors []*Node
		for _, n := range first.IndexNodes() {
			need := removedFirstResult[n]
			if removedSoFar[n] < need {
				removedSoFar[n]++
				continue
			}
			survivors = append(survivors, n)
		}
		mergedIndexNodes = append(append([]*Node{}, secondIdxRewritten...), survivors...)
	}

	first.store.spliceAppend(second.store)
	first.inputs = append(first.inputs, newInputsFromSecond...)

	first.index.clear()
	for _, n := range mergedIndexNodes {
		first.index.insert(n)
	}

	first.Settings = mergeSettings(first.Settings, second.Settings)
	first.Settings.ProjectInput = combinedProjectInput

	if err := first.RemoveUnusedActions(); err != nil {
		return nil, err
	}
	return first, nil
}
