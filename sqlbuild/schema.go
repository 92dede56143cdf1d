// Package sqlbuild turns a SELECT statement plus a column schema into a
// *dag.Dag, using the Builder Surface directly: there is no relational
// logical-plan tree here, no joins, no group-by, no windows -- just inputs,
// a projection, and an optional filter kept reachable by name.
package sqlbuild

import "github.com/ariyn/exprdag/dag"

// ColumnDef names one input column and its type.
type ColumnDef struct {
	Name string
	Type dag.Type
}

// Schema is an ordered list of input columns, in the order dag.AddInput
// should declare them.
type Schema []ColumnDef
