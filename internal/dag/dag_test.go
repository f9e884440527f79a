package dag

import (
	"errors"
	"testing"
)

func ids[T any](nodes []*Node[T]) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGraph_AddNodeAndEdge(t *testing.T) {
	g := NewGraph[string]()

	g.AddNode("color.base.blue", "#00f")
	g.AddNode("color.brand", "{color.base.blue}")
	g.AddNode("button.bg", "{color.brand}")

	if g.Len() != 3 {
		t.Errorf("expected 3 nodes, got %d", g.Len())
	}

	if err := g.AddEdge("color.base.blue", "color.brand"); err != nil {
		t.Errorf("failed to add edge: %v", err)
	}
	if err := g.AddEdge("color.brand", "button.bg"); err != nil {
		t.Errorf("failed to add edge: %v", err)
	}
	if err := g.AddEdge("color.brand", "button.bg"); err != nil {
		t.Errorf("duplicate edge should be ignored: %v", err)
	}

	if g.EdgeCount() != 2 {
		t.Errorf("expected 2 edges, got %d", g.EdgeCount())
	}

	if deps := g.Dependencies("button.bg"); !equal(deps, []string{"color.brand"}) {
		t.Errorf("Dependencies(button.bg) = %v", deps)
	}
	if deps := g.Dependents("color.base.blue"); !equal(deps, []string{"color.brand"}) {
		t.Errorf("Dependents(color.base.blue) = %v", deps)
	}
}

func TestGraph_AddNode_ReplacesData(t *testing.T) {
	g := NewGraph[int]()
	g.AddNode("a", 1)
	g.AddNode("a", 2)

	n, ok := g.Node("a")
	if !ok || n.Data != 2 {
		t.Errorf("expected replaced data 2, got %+v", n)
	}
	if g.Len() != 1 {
		t.Errorf("expected 1 node, got %d", g.Len())
	}
}

func TestGraph_AddEdge_InvalidNodes(t *testing.T) {
	g := NewGraph[any]()
	g.AddNode("a", nil)

	if err := g.AddEdge("a", "nonexistent"); err == nil {
		t.Error("expected error for nonexistent child node")
	}
	if err := g.AddEdge("nonexistent", "a"); err == nil {
		t.Error("expected error for nonexistent parent node")
	}
}

func TestGraph_FindCycle(t *testing.T) {
	tests := []struct {
		name  string
		edges [][2]string
		want  []string
	}{
		{
			name:  "no cycle",
			edges: [][2]string{{"a", "b"}, {"b", "c"}},
			want:  nil,
		},
		{
			name:  "self reference",
			edges: [][2]string{{"a", "a"}},
			want:  []string{"a", "a"},
		},
		{
			name:  "two nodes",
			edges: [][2]string{{"a", "b"}, {"b", "a"}},
			want:  []string{"a", "b", "a"},
		},
		{
			name:  "three nodes",
			edges: [][2]string{{"b", "a"}, {"c", "b"}, {"a", "c"}},
			want:  []string{"a", "b", "c", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph[any]()
			for _, id := range []string{"a", "b", "c"} {
				g.AddNode(id, nil)
			}
			for _, e := range tt.edges {
				if err := g.AddEdge(e[0], e[1]); err != nil {
					t.Fatalf("AddEdge: %v", err)
				}
			}

			got := g.FindCycle()
			if !equal(got, tt.want) {
				t.Errorf("FindCycle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGraph_Sort_KeepsInsertionOrder(t *testing.T) {
	g := NewGraph[any]()
	// button.bg is declared first but depends on color.brand.
	g.AddNode("button.bg", nil)
	g.AddNode("spacing.md", nil)
	g.AddNode("color.brand", nil)
	g.AddNode("color.base.blue", nil)

	_ = g.AddEdge("color.brand", "button.bg")
	_ = g.AddEdge("color.base.blue", "color.brand")

	sorted, err := g.Sort()
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}

	want := []string{"color.base.blue", "color.brand", "button.bg", "spacing.md"}
	if got := ids(sorted); !equal(got, want) {
		t.Errorf("Sort() = %v, want %v", got, want)
	}
}

func TestGraph_Sort_Diamond(t *testing.T) {
	g := NewGraph[any]()
	for _, id := range []string{"d", "b", "c", "a"} {
		g.AddNode(id, nil)
	}
	_ = g.AddEdge("a", "b")
	_ = g.AddEdge("a", "c")
	_ = g.AddEdge("b", "d")
	_ = g.AddEdge("c", "d")

	sorted, err := g.Sort()
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}

	pos := make(map[string]int)
	for i, n := range sorted {
		pos[n.ID] = i
	}
	if pos["a"] > pos["b"] || pos["a"] > pos["c"] {
		t.Error("a should come before b and c")
	}
	if pos["b"] > pos["d"] || pos["c"] > pos["d"] {
		t.Error("b and c should come before d")
	}
}

func TestGraph_Sort_WithCycle(t *testing.T) {
	g := NewGraph[any]()
	g.AddNode("a", nil)
	g.AddNode("b", nil)
	_ = g.AddEdge("a", "b")
	_ = g.AddEdge("b", "a")

	_, err := g.Sort()
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CycleError, got %v", err)
	}
	if want := "cycle detected: a -> b -> a"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestGraph_Downstream(t *testing.T) {
	g := NewGraph[any]()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		g.AddNode(id, nil)
	}
	_ = g.AddEdge("a", "b")
	_ = g.AddEdge("b", "c")
	_ = g.AddEdge("a", "d")

	if got := g.Downstream("a"); !equal(got, []string{"b", "c", "d"}) {
		t.Errorf("Downstream(a) = %v", got)
	}
	if got := g.Downstream("e"); len(got) != 0 {
		t.Errorf("Downstream(e) = %v, want empty", got)
	}
}
