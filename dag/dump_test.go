package dag

import "strings"

import "testing"

func TestDumpIsDeterministic(t *testing.T) {
	d := buildFilterDag(t)
	a := d.Dump()
	b := d.Dump()
	if a != b {
		t.Fatalf("Dump() is not deterministic:\n%s\n---\n%s", a, b)
	}
	if !strings.Contains(a, "Index:") {
		t.Fatalf("expected a trailing Index: line, got:\n%s", a)
	}
	if !strings.Contains(a, "FUNCTION") || !strings.Contains(a, "INPUT") || !strings.Contains(a, "COLUMN") {
		t.Fatalf("expected all three kinds represented, got:\n%s", a)
	}
}

func TestCloneProducesIndependentEqualDump(t *testing.T) {
	d := buildFilterDag(t)
	clone := d.Clone()
	if d.Dump() != clone.Dump() {
		t.Fatalf("clone dump differs from original:\n%s\n---\n%s", d.Dump(), clone.Dump())
	}
	// The clone's y must reference the clone's own x (not the original's),
	// so removing x from the clone is refused as still referenced.
	if err := clone.RemoveUnusedInput("x"); err == nil {
		t.Fatalf("expected x to still be referenced in the clone")
	}
	if d.NodeCount() != clone.NodeCount() {
		t.Fatalf("expected equal node counts before mutation")
	}
}

func TestTryRestoreColumnPicksMostRecent(t *testing.T) {
	d := New()
	first, err := d.AddColumn("dup", constCol(scalarType("Int32"), 1))
	if err != nil {
		t.Fatal(err)
	}
	// Push a second node also named "dup" straight into the store, bypassing
	// add_node's duplicate check, to exercise the documented "most recently
	// added wins, no tie-break" behavior without ever indexing it.
	second := &Node{Kind: ColumnKind, ResultName: "dup", ResultType: scalarType("Int32"), Col: constCol(scalarType("Int32"), 2), AllowConstantFolding: true}
	d.store.push(second)
	d.index.removeName("dup")

	if d.index.contains("dup") {
		t.Fatalf("expected dup to be unindexed before restore")
	}
	if !d.TryRestoreColumn("dup") {
		t.Fatalf("expected TryRestoreColumn to find dup")
	}
	n, err := d.FindNode("dup")
	if err != nil {
		t.Fatal(err)
	}
	if n != second {
		t.Fatalf("expected the most-recently-added node (%p) to win, got %p (first=%p)", second, n, first)
	}
}
