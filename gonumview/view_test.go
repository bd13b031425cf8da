package gonumview

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/graph/topo"

	"chprep/prepgraph"
)

func buildRing(t *testing.T) *prepgraph.PreparationGraph {
	t.Helper()
	g := prepgraph.NewPreparationGraph(4, 4, prepgraph.NodeBased)
	g.AddEdge(0, 1, 1, 1)
	g.AddEdge(1, 2, 1, 1)
	g.AddEdge(2, 3, 1, 1)
	g.AddEdge(3, 0, 1, 1)
	g.PrepareForContraction()
	return g
}

func TestConnectedComponentsMatchesRing(t *testing.T) {
	g := buildRing(t)
	v := New(g)

	components := topo.ConnectedComponents(v)
	if len(components) != 1 {
		t.Fatalf("expected 1 connected component, got %d", len(components))
	}
}

func TestPathExistsAcrossRing(t *testing.T) {
	g := buildRing(t)
	v := New(g)
	if !topo.PathExistsIn(v, Node(0), Node(2)) {
		t.Fatal("expected a path from 0 to 2 around the ring")
	}
}

func TestWeightReflectsDirection(t *testing.T) {
	g := prepgraph.NewPreparationGraph(2, 1, prepgraph.NodeBased)
	g.AddEdge(0, 1, 1, math.Inf(1))
	g.PrepareForContraction()
	v := New(g)

	if w, ok := v.Weight(0, 1); !ok || w != 1 {
		t.Fatalf("Weight(0,1) = (%v, %v), want (1, true)", w, ok)
	}
	if _, ok := v.Weight(1, 0); ok {
		t.Fatal("Weight(1,0) should report no edge: weightBA is +Inf")
	}
}
