package prepgraph

import "math"

// phase is the preparation graph's lifecycle state (spec.md §5): Building
// accepts AddEdge calls; Ready accepts AddShortcut/Disconnect/explorer
// creation and turn-cost queries; Closed accepts nothing.
type phase uint8

const (
	phaseBuilding phase = iota
	phaseReady
	phaseClosed
)

func (p phase) String() string {
	switch p {
	case phaseBuilding:
		return "building"
	case phaseReady:
		return "ready"
	default:
		return "closed"
	}
}

// PreparationGraph is the mutable graph a contraction driver contracts
// node by node: a compact store of base edges and shortcuts, gated by a
// phase state machine (spec.md §5), with optional edge-based turn-cost
// support (spec.md §4.3, §4.4).
type PreparationGraph struct {
	numNodes     uint32
	numBaseEdges EdgeID
	mode         Mode
	phase        phase

	edges     *edgeList
	base      []edgeRecord
	shortcuts []edgeRecord

	origBuilder *origGraphBuilder
	orig        *originalGraph

	turnCosts *TurnCostTable
}

// NewPreparationGraph allocates an empty preparation graph in phase
// Building for numNodes nodes and expectedBaseEdges base edges (a
// capacity hint, not a hard limit — spec.md §4.1, §9).
func NewPreparationGraph(numNodes uint32, expectedBaseEdges int, mode Mode) *PreparationGraph {
	g := &PreparationGraph{
		numNodes: numNodes,
		mode:     mode,
		edges:    newEdgeList(numNodes),
		base:     make([]edgeRecord, 0, expectedBaseEdges),
	}
	if mode == EdgeBased {
		g.origBuilder = newOrigGraphBuilder()
	}
	return g
}

// BaseGraphView is the shape an external source graph must present to
// seed a preparation graph in one pass (spec.md §6): nodes are assumed
// numbered [0, NumNodes()), and Edges streams each base edge exactly once
// with both directional weights (either may be +Inf, never both).
type BaseGraphView interface {
	NumNodes() uint32
	NumEdges() int
	Edges(cb func(from, to Node, weightFwd, weightBwd float64))
}

// BuildFromGraph constructs a preparation graph from g in a single pass,
// validating g's reported shape against expectedNodes/expectedEdges before
// any mutation happens (spec.md §6: "shape mismatches must be caught
// before the first edge is written, not discovered half-way through").
func BuildFromGraph(expectedNodes uint32, expectedEdges int, g BaseGraphView, mode Mode) *PreparationGraph {
	if g.NumNodes() != expectedNodes {
		fatal(CategoryShape, "build from graph: expected %d nodes, source graph reports %d", expectedNodes, g.NumNodes())
	}
	if g.NumEdges() != expectedEdges {
		fatal(CategoryShape, "build from graph: expected %d edges, source graph reports %d", expectedEdges, g.NumEdges())
	}

	pg := NewPreparationGraph(expectedNodes, expectedEdges, mode)
	g.Edges(func(from, to Node, weightFwd, weightBwd float64) {
		pg.AddEdge(from, to, weightFwd, weightBwd)
	})
	return pg
}

func (g *PreparationGraph) requirePhase(want phase, op string) {
	if g.phase != want {
		fatal(CategoryPhase, "%s: requires phase %s, graph is %s", op, want, g.phase)
	}
}

func (g *PreparationGraph) requireShortcut(id EdgeID, op string) {
	if !g.IsShortcut(id) {
		fatal(CategoryCapability, "%s: edge %d is a base edge, not a shortcut", op, id)
	}
}

func (g *PreparationGraph) requireEdgeBased(op string) {
	if g.mode != EdgeBased {
		fatal(CategoryCapability, "%s: graph is node-based", op)
	}
}

// NumNodes returns the node count.
func (g *PreparationGraph) NumNodes() uint32 { return g.numNodes }

// Mode returns the graph's node-based/edge-based mode.
func (g *PreparationGraph) Mode() Mode { return g.mode }

// IsShortcut reports whether id names a shortcut rather than a base edge
// (spec.md §3: the only distinction derivable from the id alone).
func (g *PreparationGraph) IsShortcut(id EdgeID) bool {
	return id >= g.numBaseEdges
}

func (g *PreparationGraph) recordFor(id EdgeID) *edgeRecord {
	if g.IsShortcut(id) {
		return &g.shortcuts[id-g.numBaseEdges]
	}
	return &g.base[id]
}

// AddEdge adds a new base edge (from, to) with the given directional
// weights while the graph is in phase Building (spec.md §4.2 E1: at most
// one of weightFwd/weightBwd may be +Inf meaning the edge is absent in
// that direction; both infinite is rejected as a degenerate edge).
func (g *PreparationGraph) AddEdge(from, to Node, weightFwd, weightBwd float64) EdgeID {
	g.requirePhase(phaseBuilding, "add edge")
	if math.IsInf(weightFwd, 1) && math.IsInf(weightBwd, 1) {
		fatal(CategoryOrder, "add edge: both directions infinite for (%d, %d)", from, to)
	}

	id := EdgeID(len(g.base))
	g.base = append(g.base, edgeRecord{
		id:       id,
		nodeA:    from,
		nodeB:    to,
		weightAB: weightFwd,
		weightBA: weightBwd,
	})
	g.edges.add(from, id)
	if to != from {
		g.edges.add(to, id)
	}

	if g.mode == EdgeBased {
		g.origBuilder.addBase(from, to, id, !math.IsInf(weightFwd, 1), !math.IsInf(weightBwd, 1))
	}
	return id
}

// PrepareForContraction closes off the Building phase: in edge-based mode
// it freezes the original graph from the accumulated base edges (spec.md
// §4.3), then transitions to Ready.
func (g *PreparationGraph) PrepareForContraction() {
	g.requirePhase(phaseBuilding, "prepare for contraction")
	g.numBaseEdges = EdgeID(len(g.base))
	if g.mode == EdgeBased {
		g.orig = g.origBuilder.build(g.numNodes)
		g.origBuilder = nil
	}
	g.phase = phaseReady
}

// AddShortcut adds a shortcut (from, to) with the given weight, recording
// which two edges it skips and, in edge-based mode, the fixed pair of
// original-edge keys it represents (spec.md §3, §4.2 E2, E4). The caller
// — the contraction driver — supplies origKeyFirst/origKeyLast directly,
// taken from the explorer that discovered the two skipped edges; this
// graph does not re-derive them, since by the time a shortcut replaces
// skipped1/skipped2 those edges may themselves already be shortcuts whose
// keys are not recoverable from id and endpoints alone.
//
// A self-loop shortcut (from == to) is legal: it is stored once in from's
// slot and yielded by both the forward and the reverse explorer at that
// node, with AdjNode equal to the base node itself.
func (g *PreparationGraph) AddShortcut(from, to Node, weight float64, skipped1, skipped2 EdgeID, origEdgeCount uint32, origKeyFirst, origKeyLast int32) EdgeID {
	g.requirePhase(phaseReady, "add shortcut")
	if math.IsInf(weight, 1) || math.IsNaN(weight) {
		fatal(CategoryOrder, "add shortcut: non-finite weight %v for (%d, %d)", weight, from, to)
	}

	id := g.numBaseEdges + EdgeID(len(g.shortcuts))
	rec := edgeRecord{
		id:            id,
		nodeA:         from,
		nodeB:         to,
		weightAB:      weight,
		weightBA:      weight,
		skipped1:      skipped1,
		skipped2:      skipped2,
		origEdgeCount: origEdgeCount,
	}
	if g.mode == EdgeBased {
		rec.origKeyFirst = origKeyFirst
		rec.origKeyLast = origKeyLast
	}
	g.shortcuts = append(g.shortcuts, rec)

	g.edges.add(from, id)
	if to != from {
		g.edges.add(to, id)
	}
	return id
}

// Disconnect removes node v and every edge touching it, returning v's
// former neighbors in first-seen order (spec.md §4.2 E6, universal
// property 3 — this is what the contraction loop calls once a node has
// been fully contracted). Self-loops touching v are dropped without
// appearing in the result.
func (g *PreparationGraph) Disconnect(v Node) []Node {
	g.requirePhase(phaseReady, "disconnect")

	slot := g.edges.slots[v]
	neighbors := make([]Node, 0, len(slot))
	seen := make(map[Node]bool, len(slot))
	for _, id := range slot {
		r := g.recordFor(id)
		var other Node
		switch {
		case r.nodeA == v && r.nodeB == v:
			continue // self-loop
		case r.nodeA == v:
			other = r.nodeB
		default:
			other = r.nodeA
		}
		g.edges.remove(other, id)
		if !seen[other] {
			seen[other] = true
			neighbors = append(neighbors, other)
		}
	}
	g.edges.clear(v)
	return neighbors
}

// Close releases the graph's buffers and transitions to phase Closed
// (spec.md §5): no further operations are valid afterward.
func (g *PreparationGraph) Close() {
	g.requirePhase(phaseReady, "close")
	g.edges = nil
	g.base = nil
	g.shortcuts = nil
	g.orig = nil
	g.turnCosts = nil
	g.phase = phaseClosed
}

// GetDegree returns the current number of edges incident to v (including
// shortcuts and self-loops counted once).
func (g *PreparationGraph) GetDegree(v Node) int {
	return g.edges.size(v)
}

// SetTurnCostTable installs the compiled turn-cost table a Ready,
// edge-based graph's GetTurnWeight delegates to.
func (g *PreparationGraph) SetTurnCostTable(t *TurnCostTable) {
	g.requireEdgeBased("set turn cost table")
	g.turnCosts = t
}

// GetTurnWeight returns the cost of transitioning from inEdge through via
// to outEdge (spec.md §4.4). Requires edge-based mode and an installed
// turn-cost table.
func (g *PreparationGraph) GetTurnWeight(inEdge EdgeID, via Node, outEdge EdgeID) float64 {
	g.requireEdgeBased("get turn weight")
	if g.turnCosts == nil {
		fatal(CategoryCapability, "get turn weight: no turn cost table installed")
	}
	return g.turnCosts.Query(inEdge, via, outEdge)
}

// CreateOutEdgeExplorer returns a forward explorer over a Ready graph.
func (g *PreparationGraph) CreateOutEdgeExplorer() *EdgeExplorer {
	g.requirePhase(phaseReady, "create out edge explorer")
	return newEdgeExplorer(g, true)
}

// CreateInEdgeExplorer returns a reverse explorer over a Ready graph.
func (g *PreparationGraph) CreateInEdgeExplorer() *EdgeExplorer {
	g.requirePhase(phaseReady, "create in edge explorer")
	return newEdgeExplorer(g, false)
}

// CreateOutOrigEdgeExplorer returns a forward original-edge explorer over
// a Ready, edge-based graph's frozen original graph.
func (g *PreparationGraph) CreateOutOrigEdgeExplorer() *OrigEdgeExplorer {
	g.requirePhase(phaseReady, "create out orig edge explorer")
	g.requireEdgeBased("create out orig edge explorer")
	return g.orig.newExplorer(true)
}

// CreateInOrigEdgeExplorer returns a reverse original-edge explorer over a
// Ready, edge-based graph's frozen original graph.
func (g *PreparationGraph) CreateInOrigEdgeExplorer() *OrigEdgeExplorer {
	g.requirePhase(phaseReady, "create in orig edge explorer")
	g.requireEdgeBased("create in orig edge explorer")
	return g.orig.newExplorer(false)
}

// NodeA returns an edge's first stored endpoint.
func (g *PreparationGraph) NodeA(id EdgeID) Node { return g.recordFor(id).nodeA }

// NodeB returns an edge's second stored endpoint.
func (g *PreparationGraph) NodeB(id EdgeID) Node { return g.recordFor(id).nodeB }

// WeightAB returns a base edge's raw A→B weight (may be +Inf).
func (g *PreparationGraph) WeightAB(id EdgeID) float64 { return g.recordFor(id).weightAB }

// WeightBA returns a base edge's raw B→A weight (may be +Inf).
func (g *PreparationGraph) WeightBA(id EdgeID) float64 { return g.recordFor(id).weightBA }

// Skipped1 returns a shortcut's first skipped edge.
func (g *PreparationGraph) Skipped1(id EdgeID) EdgeID {
	g.requireShortcut(id, "skipped1")
	return g.recordFor(id).skipped1
}

// Skipped2 returns a shortcut's second skipped edge.
func (g *PreparationGraph) Skipped2(id EdgeID) EdgeID {
	g.requireShortcut(id, "skipped2")
	return g.recordFor(id).skipped2
}

// OrigEdgeCount returns a shortcut's count of original edges it represents.
func (g *PreparationGraph) OrigEdgeCount(id EdgeID) uint32 {
	g.requireShortcut(id, "orig edge count")
	return g.recordFor(id).origEdgeCount
}

// SetWeight overwrites a shortcut's weight (spec.md §4.2 E3: base edges
// are immutable once added; only shortcuts may be reweighted).
func (g *PreparationGraph) SetWeight(id EdgeID, w float64) {
	g.requireShortcut(id, "set weight")
	if math.IsInf(w, 1) || math.IsNaN(w) {
		fatal(CategoryOrder, "set weight: non-finite weight %v for shortcut %d", w, id)
	}
	r := g.recordFor(id)
	r.weightAB = w
	r.weightBA = w
}

// SetOrigEdgeCount overwrites a shortcut's original-edge count.
func (g *PreparationGraph) SetOrigEdgeCount(id EdgeID, n uint32) {
	g.requireShortcut(id, "set orig edge count")
	g.recordFor(id).origEdgeCount = n
}

// SetSkippedEdges overwrites a shortcut's two skipped edges.
func (g *PreparationGraph) SetSkippedEdges(id EdgeID, a, b EdgeID) {
	g.requireShortcut(id, "set skipped edges")
	r := g.recordFor(id)
	r.skipped1 = a
	r.skipped2 = b
}

// OrigEdgeKeyFirst returns id's first original-edge key viewed from base
// (spec.md §3, §4.6): derived on the fly for a base edge (flips with
// orientation), stored and direction-independent for an edge-based
// shortcut (E4: a fixed pair that does not flip when viewed from the
// other endpoint).
func (g *PreparationGraph) OrigEdgeKeyFirst(id EdgeID, base Node) int32 {
	if !g.IsShortcut(id) {
		r := g.recordFor(id)
		return baseOrigEdgeKey(id, r.nodeA, r.nodeB, base)
	}
	g.requireEdgeBased("orig edge key first")
	return g.recordFor(id).origKeyFirst
}

// OrigEdgeKeyLast returns id's last original-edge key viewed from base.
func (g *PreparationGraph) OrigEdgeKeyLast(id EdgeID, base Node) int32 {
	if !g.IsShortcut(id) {
		r := g.recordFor(id)
		return baseOrigEdgeKey(id, r.nodeA, r.nodeB, base)
	}
	g.requireEdgeBased("orig edge key last")
	return g.recordFor(id).origKeyLast
}
