package prepgraph

// EdgeExplorer is a stateful cursor over one node's incident edges,
// projecting every per-edge quantity (weight, original-edge key) from that
// node's point of view (spec.md §4.5, §4.6). Base edges are always yielded
// from both endpoints; shortcuts are yielded selectively — a forward
// explorer only when base is the shortcut's nodeA endpoint, a reverse
// explorer only when base is its nodeB endpoint — which is what keeps a
// shortcut's stored directionality (E4) meaningful regardless of which of
// its two endpoints it is currently being viewed from.
type EdgeExplorer struct {
	g       *PreparationGraph
	forward bool
	base    Node
	slot    []EdgeID
	pos     int
	cur     EdgeID
}

func newEdgeExplorer(g *PreparationGraph, forward bool) *EdgeExplorer {
	return &EdgeExplorer{g: g, forward: forward}
}

// SetBaseNode resets the cursor to iterate base's incident edges.
func (e *EdgeExplorer) SetBaseNode(v Node) *EdgeExplorer {
	e.base = v
	e.slot = e.g.edges.slots[v]
	e.pos = -1
	return e
}

// Next advances to the next edge satisfying this explorer's direction,
// returning false once the slot is exhausted. The direction filter applies
// only to shortcuts (spec.md §4.6, E4, universal property 6): a base edge
// lives in both endpoints' slots unconditionally and is always yielded,
// with weightFor projecting the direction-appropriate weight (which may be
// +Inf for an edge absent in that direction — callers filter on that, the
// explorer does not).
func (e *EdgeExplorer) Next() bool {
	for {
		e.pos++
		if e.pos >= len(e.slot) {
			return false
		}
		id := e.slot[e.pos]
		if e.g.IsShortcut(id) {
			r := e.g.recordFor(id)
			if e.forward && e.base != r.nodeA {
				continue
			}
			if !e.forward && e.base != r.nodeB {
				continue
			}
		}
		e.cur = id
		return true
	}
}

// EdgeID returns the current edge's id.
func (e *EdgeExplorer) EdgeID() EdgeID {
	return e.cur
}

// AdjNode returns the endpoint of the current edge opposite base.
func (e *EdgeExplorer) AdjNode() Node {
	r := e.g.recordFor(e.cur)
	if e.base == r.nodeA {
		return r.nodeB
	}
	return r.nodeA
}

// Weight returns the current edge's weight from base's point of view,
// for this explorer's direction.
func (e *EdgeExplorer) Weight() float64 {
	return weightFor(e.g.recordFor(e.cur), e.base, e.forward)
}

// IsShortcut reports whether the current edge is a shortcut.
func (e *EdgeExplorer) IsShortcut() bool {
	return e.g.IsShortcut(e.cur)
}

// OrigEdgeKeyFirst returns the current edge's first original-edge key from
// base's point of view.
func (e *EdgeExplorer) OrigEdgeKeyFirst() int32 {
	return e.g.OrigEdgeKeyFirst(e.cur, e.base)
}

// OrigEdgeKeyLast returns the current edge's last original-edge key from
// base's point of view.
func (e *EdgeExplorer) OrigEdgeKeyLast() int32 {
	return e.g.OrigEdgeKeyLast(e.cur, e.base)
}

// Skipped1 returns the current shortcut's first skipped edge.
func (e *EdgeExplorer) Skipped1() EdgeID {
	return e.g.Skipped1(e.cur)
}

// Skipped2 returns the current shortcut's second skipped edge.
func (e *EdgeExplorer) Skipped2() EdgeID {
	return e.g.Skipped2(e.cur)
}

// OrigEdgeCount returns the current shortcut's original-edge count.
func (e *EdgeExplorer) OrigEdgeCount() uint32 {
	return e.g.OrigEdgeCount(e.cur)
}

// SetWeight overwrites the current shortcut's weight.
func (e *EdgeExplorer) SetWeight(w float64) {
	e.g.SetWeight(e.cur, w)
}

// SetOrigEdgeCount overwrites the current shortcut's original-edge count.
func (e *EdgeExplorer) SetOrigEdgeCount(n uint32) {
	e.g.SetOrigEdgeCount(e.cur, n)
}

// SetSkippedEdges overwrites the current shortcut's two skipped edges.
func (e *EdgeExplorer) SetSkippedEdges(a, b EdgeID) {
	e.g.SetSkippedEdges(e.cur, a, b)
}
