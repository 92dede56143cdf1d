package dag

import "container/list"

// nameIndex is the ordered multimap name -> *Node that holds a DAG's
// exposed columns: a doubly linked list carries insertion order, a hash map from name
// to that name's chain of list elements gives O(1) find/insert/remove.
type nameIndex struct {
	order *list.List                  // of *Node, in insertion order
	byName map[string][]*list.Element // name -> elements in insertion order
}

func newNameIndex() *nameIndex {
	return &nameIndex{
		order:  list.New(),
		byName: make(map[string][]*list.Element),
	}
}

// insert appends a new entry for n, even if its name already exists.
func (ix *nameIndex) insert(n *Node) {
	el := ix.order.PushBack(n)
	ix.byName[n.ResultName] = append(ix.byName[n.ResultName], el)
}

// prepend inserts a new entry for n at the front of iteration order.
func (ix *nameIndex) prepend(n *Node) {
	el := ix.order.PushFront(n)
	ix.byName[n.ResultName] = append([]*list.Element{el}, ix.byName[n.ResultName]...)
}

// replace removes every existing entry named n.ResultName, then inserts n.
func (ix *nameIndex) replace(n *Node) {
	ix.removeName(n.ResultName)
	ix.insert(n)
}

// find returns the first entry for name, in insertion order.
func (ix *nameIndex) find(name string) (*Node, bool) {
	els := ix.byName[name]
	if len(els) == 0 {
		return nil, false
	}
	return els[0].Value.(*Node), true
}

func (ix *nameIndex) contains(name string) bool {
	return len(ix.byName[name]) > 0
}

// removeName deletes every entry named name.
func (ix *nameIndex) removeName(name string) {
	for _, el := range ix.byName[name] {
		ix.order.Remove(el)
	}
	delete(ix.byName, name)
}

// removeNode deletes at most one entry pointing at n (the first found).
func (ix *nameIndex) removeNode(n *Node) {
	els := ix.byName[n.ResultName]
	for i, el := range els {
		if el.Value.(*Node) == n {
			ix.order.Remove(el)
			ix.byName[n.ResultName] = append(els[:i], els[i+1:]...)
			if len(ix.byName[n.ResultName]) == 0 {
				delete(ix.byName, n.ResultName)
			}
			return
		}
	}
}

func (ix *nameIndex) size() int {
	return ix.order.Len()
}

// nodes returns the index contents in insertion order.
func (ix *nameIndex) nodes() []*Node {
	out := make([]*Node, 0, ix.order.Len())
	for el := ix.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*Node))
	}
	return out
}

// countNode returns how many entries currently point at n.
func (ix *nameIndex) countNode(n *Node) int {
	c := 0
	for el := ix.order.Front(); el != nil; el = el.Next() {
		if el.Value.(*Node) == n {
			c++
		}
	}
	return c
}

// removeNodeOccurrences deletes up to k entries pointing at n.
func (ix *nameIndex) removeNodeOccurrences(n *Node, k int) {
	for i := 0; i < k; i++ {
		ix.removeNode(n)
	}
}

// clear empties the index.
func (ix *nameIndex) clear() {
	ix.order = list.New()
	ix.byName = make(map[string][]*list.Element)
}
