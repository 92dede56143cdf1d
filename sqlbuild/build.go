package sqlbuild

import (
	"fmt"

	"github.com/xwb1989/sqlparser"

	"github.com/ariyn/exprdag/dag"
	"github.com/ariyn/exprdag/runtime/columnrt"
)

// Build parses query as a single SELECT over schema and returns the
// resulting projection/filter graph.
func Build(query string, schema Schema) (*dag.Dag, error) {
	stmt, err := sqlparser.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("sqlbuild: parse: %w", err)
	}
	sel, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil, fmt.Errorf("sqlbuild: only SELECT is supported, got %T", stmt)
	}

	d := dag.New()
	for _, col := range schema {
		if _, err := d.AddInput(col.Name, col.Type); err != nil {
			return nil, fmt.Errorf("sqlbuild: declaring input %s: %w", col.Name, err)
		}
	}

	c := &compiler{dag: d, runtime: columnrt.NewRuntime()}

	var projection []dag.ProjectionPair
	for _, expr := range sel.SelectExprs {
		ae, ok := expr.(*sqlparser.AliasedExpr)
		if !ok {
			return nil, fmt.Errorf("sqlbuild: unsupported select expression %T", expr)
		}

		var existingName string
		if col, ok := ae.Expr.(*sqlparser.ColName); ok {
			existingName = col.Name.String()
		} else {
			node, err := c.compile(ae.Expr)
			if err != nil {
				return nil, err
			}
			existingName = node.ResultName
		}

		projection = append(projection, dag.ProjectionPair{
			ExistingName: existingName,
			OutputName:   ae.As.String(),
		})
	}

	// A WHERE clause's result column has to survive the pruning Project
	// performs below even though it is never one of the select list's
	// output columns: fold it into the accumulated pairs under its own
	// compiled name, unaliased, so it rides along as an extra index entry
	// rather than getting silently dropped as unreachable.
	if sel.Where != nil {
		required := make([]*dag.Node, 0, len(projection))
		for _, p := range projection {
			n, err := d.FindNode(p.ExistingName)
			if err != nil {
				return nil, err
			}
			required = append(required, n)
		}

		filterNode, err := c.compile(sel.Where.Expr)
		if err != nil {
			return nil, fmt.Errorf("sqlbuild: compiling WHERE: %w", err)
		}
		if err := d.RemoveUnusedActionsNodes(append(required, filterNode)); err != nil {
			return nil, err
		}
		projection = append(projection, dag.ProjectionPair{ExistingName: filterNode.ResultName})
	}

	if err := d.Project(projection); err != nil {
		return nil, fmt.Errorf("sqlbuild: projecting: %w", err)
	}
	return d, nil
}
