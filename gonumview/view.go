// Package gonumview adapts a Ready-phase preparation graph to
// gonum.org/v1/gonum/graph's Directed/Weighted interfaces, so generic
// graph algorithms (connectivity checks, path existence) can run over it
// without prepgraph depending on gonum itself.
package gonumview

import (
	"math"

	"gonum.org/v1/gonum/graph"

	"chprep/prepgraph"
)

// View wraps a Ready *prepgraph.PreparationGraph as a gonum graph.Directed
// and graph.Weighted. It is read-only: no gonum algorithm mutates the
// underlying preparation graph through this adapter.
type View struct {
	g *prepgraph.PreparationGraph
}

// New wraps g, which must already be in phase Ready.
func New(g *prepgraph.PreparationGraph) *View {
	return &View{g: g}
}

// Node is the graph.Node implementation this package hands out.
type Node int64

// ID satisfies graph.Node.
func (n Node) ID() int64 { return int64(n) }

// Node satisfies graph.Graph, returning nil for any id outside [0, NumNodes).
func (v *View) Node(id int64) graph.Node {
	if id < 0 || uint32(id) >= v.g.NumNodes() {
		return nil
	}
	return Node(id)
}

// Nodes satisfies graph.Graph.
func (v *View) Nodes() graph.Nodes {
	nodes := make([]graph.Node, v.g.NumNodes())
	for i := range nodes {
		nodes[i] = Node(i)
	}
	return &nodeIterator{nodes: nodes}
}

// From satisfies graph.Graph, listing u's adjacent nodes in either
// direction. This view is used both as a graph.Directed (via
// HasEdgeFromTo/To) and as a graph.Undirected (via EdgeBetween) by
// different topo algorithms, so From reports the union rather than only
// forward neighbors — the directed-specific algorithms that care about
// direction use HasEdgeFromTo/To instead.
func (v *View) From(id int64) graph.Nodes {
	seen := map[int64]bool{}
	var nodes []graph.Node
	add := func(n prepgraph.Node) {
		id := int64(n)
		if !seen[id] {
			seen[id] = true
			nodes = append(nodes, Node(id))
		}
	}

	out := v.g.CreateOutEdgeExplorer()
	out.SetBaseNode(prepgraph.Node(id))
	for out.Next() {
		add(out.AdjNode())
	}
	in := v.g.CreateInEdgeExplorer()
	in.SetBaseNode(prepgraph.Node(id))
	for in.Next() {
		add(in.AdjNode())
	}
	return &nodeIterator{nodes: nodes}
}

// To satisfies graph.Directed, listing u's reverse-explorer predecessors.
func (v *View) To(id int64) graph.Nodes {
	exp := v.g.CreateInEdgeExplorer()
	exp.SetBaseNode(prepgraph.Node(id))
	var nodes []graph.Node
	for exp.Next() {
		nodes = append(nodes, Node(exp.AdjNode()))
	}
	return &nodeIterator{nodes: nodes}
}

// HasEdgeBetween satisfies graph.Graph.
func (v *View) HasEdgeBetween(xid, yid int64) bool {
	return v.HasEdgeFromTo(xid, yid) || v.HasEdgeFromTo(yid, xid)
}

// HasEdgeFromTo satisfies graph.Directed. A base edge absent in this
// direction (weight +Inf) does not count as present — prepgraph always
// stores it in both endpoints' slots and leaves filtering to the caller.
func (v *View) HasEdgeFromTo(uid, vid int64) bool {
	exp := v.g.CreateOutEdgeExplorer()
	exp.SetBaseNode(prepgraph.Node(uid))
	for exp.Next() {
		if int64(exp.AdjNode()) == vid && !math.IsInf(exp.Weight(), 1) {
			return true
		}
	}
	return false
}

// EdgeBetween satisfies graph.Undirected, treating the preparation graph
// as undirected for connectivity checks: an edge exists in either
// direction's explorer.
func (v *View) EdgeBetween(xid, yid int64) graph.Edge {
	if e := v.WeightedEdge(xid, yid); e != nil {
		return e
	}
	return v.WeightedEdge(yid, xid)
}

// Edge satisfies graph.Graph.
func (v *View) Edge(uid, vid int64) graph.Edge {
	return v.WeightedEdge(uid, vid)
}

// WeightedEdge satisfies graph.Weighted. Same +Inf-means-absent filtering
// as HasEdgeFromTo.
func (v *View) WeightedEdge(uid, vid int64) graph.WeightedEdge {
	exp := v.g.CreateOutEdgeExplorer()
	exp.SetBaseNode(prepgraph.Node(uid))
	for exp.Next() {
		if int64(exp.AdjNode()) == vid {
			if w := exp.Weight(); !math.IsInf(w, 1) {
				return weightedEdge{from: Node(uid), to: Node(vid), weight: w}
			}
		}
	}
	return nil
}

// Weight satisfies graph.Weighted.
func (v *View) Weight(xid, yid int64) (w float64, ok bool) {
	e := v.WeightedEdge(xid, yid)
	if e == nil {
		return math.Inf(1), false
	}
	return e.Weight(), true
}

type weightedEdge struct {
	from, to Node
	weight   float64
}

func (e weightedEdge) From() graph.Node         { return e.from }
func (e weightedEdge) To() graph.Node           { return e.to }
func (e weightedEdge) ReversedEdge() graph.Edge { return weightedEdge{from: e.to, to: e.from, weight: e.weight} }
func (e weightedEdge) Weight() float64          { return e.weight }

type nodeIterator struct {
	nodes []graph.Node
	pos   int
}

func (it nodeIterator) Len() int { return len(it.nodes) - it.pos }

func (it *nodeIterator) Next() bool {
	if it.pos >= len(it.nodes) {
		return false
	}
	it.pos++
	return true
}

func (it *nodeIterator) Node() graph.Node { return it.nodes[it.pos-1] }

func (it *nodeIterator) Reset() { it.pos = 0 }
