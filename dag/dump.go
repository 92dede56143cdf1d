package dag

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a deterministic textual form of the DAG: one numbered line
// per node (kind, name, type, constant value if any, and the numbers of
// its children), followed by a trailing Index: line. It is used as an
// identity for tests and error messages, not as a wire format.
func (d *Dag) Dump() string {
	position := make(map[*Node]int, d.store.len())
	i := 0
	d.store.forEach(func(n *Node) {
		position[n] = i
		i++
	})

	var b strings.Builder
	d.store.forEach(func(n *Node) {
		fmt.Fprintf(&b, "%d : %s %s", position[n], n.Kind, n.ResultName)
		if n.ResultType != nil {
			fmt.Fprintf(&b, " %s", n.ResultType.String())
		}
		if n.Col != nil {
			fmt.Fprintf(&b, " = %v", n.Col.GetScalarField())
		}
		if len(n.Children) > 0 {
			idxs := make([]string, len(n.Children))
			for j, c := range n.Children {
				idxs[j] = strconv.Itoa(position[c])
			}
			fmt.Fprintf(&b, " : (%s)", strings.Join(idxs, ", "))
		}
		b.WriteByte('\n')
	})

	idxNodes := d.IndexNodes()
	idxs := make([]string, len(idxNodes))
	for j, n := range idxNodes {
		idxs[j] = strconv.Itoa(position[n])
	}
	fmt.Fprintf(&b, "Index: %s\n", strings.Join(idxs, ", "))

	return b.String()
}
