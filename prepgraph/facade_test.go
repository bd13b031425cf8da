package prepgraph

import (
	"math"
	"testing"
)

// S1 — Node-based load-and-enumerate.
func TestNodeBasedLoadAndEnumerate(t *testing.T) {
	g := NewPreparationGraph(4, 4, NodeBased)
	g.AddEdge(0, 1, 1, 1)
	g.AddEdge(1, 2, 1, math.Inf(1))
	g.AddEdge(2, 3, 1, 1)
	g.AddEdge(3, 0, 1, 1)
	g.PrepareForContraction()

	fwd := g.CreateOutEdgeExplorer()
	fwd.SetBaseNode(1)
	got := map[Node]float64{}
	for fwd.Next() {
		got[fwd.AdjNode()] = fwd.Weight()
	}
	if got[0] != 1 || got[2] != 1 {
		t.Fatalf("forward explorer at 1: got %v", got)
	}

	rev := g.CreateInEdgeExplorer()
	rev.SetBaseNode(2)
	got = map[Node]float64{}
	for rev.Next() {
		got[rev.AdjNode()] = rev.Weight()
	}
	if !math.IsInf(got[1], 1) || got[3] != 1 {
		t.Fatalf("reverse explorer at 2: got %v", got)
	}
}

// S2 — Shortcut insertion.
func TestShortcutInsertion(t *testing.T) {
	g := NewPreparationGraph(4, 4, NodeBased)
	e01 := g.AddEdge(0, 1, 1, 1)
	e12 := g.AddEdge(1, 2, 1, math.Inf(1))
	g.AddEdge(2, 3, 1, 1)
	g.AddEdge(3, 0, 1, 1)
	g.PrepareForContraction()

	sc := g.AddShortcut(0, 2, 2.0, e01, e12, 2, 0, 0)
	if sc != 4 {
		t.Fatalf("expected shortcut id 4, got %d", sc)
	}

	fwd := g.CreateOutEdgeExplorer()
	fwd.SetBaseNode(0)
	found := false
	for fwd.Next() {
		if fwd.IsShortcut() && fwd.AdjNode() == 2 {
			found = true
			if fwd.Weight() != 2.0 {
				t.Fatalf("shortcut weight from 0: got %v", fwd.Weight())
			}
		}
	}
	if !found {
		t.Fatal("forward explorer at 0 did not yield the shortcut")
	}

	rev := g.CreateInEdgeExplorer()
	rev.SetBaseNode(2)
	found = false
	for rev.Next() {
		if rev.IsShortcut() && rev.AdjNode() == 0 {
			found = true
			if rev.Weight() != 2.0 {
				t.Fatalf("shortcut weight from 2: got %v", rev.Weight())
			}
		}
	}
	if !found {
		t.Fatal("reverse explorer at 2 did not yield the shortcut")
	}

	fwd2 := g.CreateOutEdgeExplorer()
	fwd2.SetBaseNode(2)
	for fwd2.Next() {
		if fwd2.IsShortcut() {
			t.Fatal("forward explorer at 2 must not yield the shortcut")
		}
	}
}

// S3 — Disconnect determinism.
func TestDisconnectDeterminism(t *testing.T) {
	g := NewPreparationGraph(4, 4, NodeBased)
	g.AddEdge(0, 1, 1, 1)
	g.AddEdge(1, 2, 1, math.Inf(1))
	g.AddEdge(2, 3, 1, 1)
	g.AddEdge(3, 0, 1, 1)
	g.PrepareForContraction()

	neighbors := g.Disconnect(1)
	if len(neighbors) != 2 || neighbors[0] != 0 || neighbors[1] != 2 {
		t.Fatalf("expected [0 2], got %v", neighbors)
	}
	if g.GetDegree(1) != 0 {
		t.Fatalf("degree(1) = %d, want 0", g.GetDegree(1))
	}
	if g.GetDegree(0) != 1 {
		t.Fatalf("degree(0) = %d, want 1 (lost (0,1))", g.GetDegree(0))
	}
	if g.GetDegree(2) != 1 {
		t.Fatalf("degree(2) = %d, want 1 (lost (1,2))", g.GetDegree(2))
	}
}

// S4 — Self-loop.
func TestSelfLoop(t *testing.T) {
	g := NewPreparationGraph(6, 1, NodeBased)
	g.AddEdge(5, 5, 3, 3)
	g.PrepareForContraction()

	if g.GetDegree(5) != 1 {
		t.Fatalf("degree(5) = %d, want 1", g.GetDegree(5))
	}
	neighbors := g.Disconnect(5)
	if len(neighbors) != 0 {
		t.Fatalf("expected empty neighbor list for self-loop disconnect, got %v", neighbors)
	}
	if g.GetDegree(5) != 0 {
		t.Fatalf("degree(5) after disconnect = %d, want 0", g.GetDegree(5))
	}
}

// S5 — Edge-based original graph.
func TestEdgeBasedOriginalGraph(t *testing.T) {
	g := NewPreparationGraph(3, 2, EdgeBased)
	g.AddEdge(0, 1, 1, 1)
	g.AddEdge(1, 2, 1, math.Inf(1))
	g.PrepareForContraction()

	out := g.CreateOutOrigEdgeExplorer()
	out.SetBaseNode(1)
	adj := map[Node]bool{}
	for out.Next() {
		adj[out.AdjNode()] = true
	}
	if !adj[0] || !adj[2] {
		t.Fatalf("out-explorer at 1: got %v", adj)
	}

	in := g.CreateInOrigEdgeExplorer()
	in.SetBaseNode(2)
	adj = map[Node]bool{}
	for in.Next() {
		adj[in.AdjNode()] = true
	}
	if !adj[1] {
		t.Fatalf("in-explorer at 2: got %v", adj)
	}
}

// S6 — Turn-cost table.
type constantTurnWeighter struct{ uTurn float64 }

func (c constantTurnWeighter) TurnWeight(EdgeID, Node, EdgeID) float64 { return c.uTurn }

func TestTurnCostTable(t *testing.T) {
	entries := []TurnCostEntry{
		{FromEdge: 0, ToEdge: 1, Via: 1, Cost: 3},
		{FromEdge: 0, ToEdge: 2, Via: 1, Cost: 5},
		{FromEdge: 4, ToEdge: 5, Via: 3, Cost: 7},
	}
	table := CompileTurnCosts(entries, 6, constantTurnWeighter{uTurn: 99})

	cases := []struct {
		in, via, out EdgeID
		want         float64
	}{
		{0, 1, 1, 3},
		{0, 1, 2, 5},
		{0, 1, 7, 0},
		{4, 3, 5, 7},
		{4, 2, 5, 0},
		{9, 1, 9, 99},
	}
	for _, c := range cases {
		if got := table.Query(c.in, Node(c.via), c.out); got != c.want {
			t.Errorf("Query(%d, %d, %d) = %v, want %v", c.in, c.via, c.out, got, c.want)
		}
	}
}

// Universal invariant 5: origEdgeKeyFirst/Last for edge-based shortcuts
// are independent of the base node.
func TestEdgeBasedShortcutKeysIndependentOfBase(t *testing.T) {
	g := NewPreparationGraph(3, 2, EdgeBased)
	e01 := g.AddEdge(0, 1, 1, 1)
	e12 := g.AddEdge(1, 2, 1, 1)
	g.PrepareForContraction()

	keyFirst := g.OrigEdgeKeyFirst(e01, 0)
	keyLast := g.OrigEdgeKeyLast(e12, 2)
	sc := g.AddShortcut(0, 2, 2.0, e01, e12, 2, keyFirst, keyLast)

	if g.OrigEdgeKeyFirst(sc, 0) != g.OrigEdgeKeyFirst(sc, 2) {
		t.Fatal("origEdgeKeyFirst depends on base node")
	}
	if g.OrigEdgeKeyLast(sc, 0) != g.OrigEdgeKeyLast(sc, 2) {
		t.Fatal("origEdgeKeyLast depends on base node")
	}
}

// Round-trip: setWeight/setOrigEdgeCount/setSkippedEdges followed by
// re-enumeration returns the stored values.
func TestShortcutSetterRoundTrip(t *testing.T) {
	g := NewPreparationGraph(3, 2, NodeBased)
	e0 := g.AddEdge(0, 1, 1, 1)
	e1 := g.AddEdge(1, 2, 1, 1)
	g.PrepareForContraction()

	sc := g.AddShortcut(0, 2, 2.0, e0, e1, 2, 0, 0)
	g.SetWeight(sc, 4.5)
	g.SetOrigEdgeCount(sc, 9)
	g.SetSkippedEdges(sc, e1, e0)

	fwd := g.CreateOutEdgeExplorer()
	fwd.SetBaseNode(0)
	for fwd.Next() {
		if fwd.EdgeID() != sc {
			continue
		}
		if fwd.Weight() != 4.5 {
			t.Fatalf("weight = %v, want 4.5", fwd.Weight())
		}
		if fwd.OrigEdgeCount() != 9 {
			t.Fatalf("origEdgeCount = %d, want 9", fwd.OrigEdgeCount())
		}
		if fwd.Skipped1() != e1 || fwd.Skipped2() != e0 {
			t.Fatalf("skipped = (%d, %d), want (%d, %d)", fwd.Skipped1(), fwd.Skipped2(), e1, e0)
		}
	}
}

// Phase violations panic with FatalError.
func TestPhaseViolation(t *testing.T) {
	g := NewPreparationGraph(2, 1, NodeBased)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic calling AddShortcut during Building phase")
		}
		if _, ok := r.(*FatalError); !ok {
			t.Fatalf("expected *FatalError, got %T", r)
		}
	}()
	g.AddShortcut(0, 1, 1, NoEdge, NoEdge, 0, 0, 0)
}

// Capability violation: querying skipped edges on a base edge panics.
func TestCapabilityViolationOnBaseEdge(t *testing.T) {
	g := NewPreparationGraph(2, 1, NodeBased)
	e0 := g.AddEdge(0, 1, 1, 1)
	g.PrepareForContraction()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic querying Skipped1 on a base edge")
		}
	}()
	g.Skipped1(e0)
}

// Shape mismatch is caught before any mutation.
type fakeView struct {
	numNodes uint32
	numEdges int
}

func (v fakeView) NumNodes() uint32 { return v.numNodes }
func (v fakeView) NumEdges() int    { return v.numEdges }
func (v fakeView) Edges(cb func(from, to Node, weightFwd, weightBwd float64)) {
	cb(0, 1, 1, 1)
}

func TestBuildFromGraphShapeMismatch(t *testing.T) {
	defer func() {
		r := recover()
		fe, ok := r.(*FatalError)
		if !ok || fe.Category != CategoryShape {
			t.Fatalf("expected CategoryShape FatalError, got %v", r)
		}
	}()
	BuildFromGraph(2, 5, fakeView{numNodes: 2, numEdges: 1}, NodeBased)
}
