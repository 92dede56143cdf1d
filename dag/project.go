package dag

// ProjectionPair names an existing node and, optionally, the name it
// should be exposed as.
type ProjectionPair struct {
	ExistingName string
	OutputName   string
}

// Project resolves each pair, aliasing where the output name differs, and
// prunes the DAG so the projection becomes the new index.
func (d *Dag) Project(projection []ProjectionPair) error {
	result, err := d.buildProjectionList(projection)
	if err != nil {
		return err
	}
	if err := d.RemoveUnusedActionsNodes(result); err != nil {
		return err
	}
	d.Settings.ProjectInput = true
	d.Settings.ProjectedOutput = true
	return nil
}

// AddAliases performs the resolve-and-maybe-alias step of Project without
// pruning; used for non-projecting renames.
func (d *Dag) AddAliases(projection []ProjectionPair) ([]*Node, error) {
	return d.buildProjectionList(projection)
}

func (d *Dag) buildProjectionList(projection []ProjectionPair) ([]*Node, error) {
	result := make([]*Node, 0, len(projection))
	for _, p := range projection {
		src, err := d.FindNode(p.ExistingName)
		if err != nil {
			return nil, err
		}
		if p.OutputName != "" && p.OutputName != p.ExistingName {
			alias, err := d.addAliasNode(src, p.OutputName, true)
			if err != nil {
				return nil, err
			}
			result = append(result, alias)
		} else {
			result = append(result, src)
		}
	}
	return result, nil
}
