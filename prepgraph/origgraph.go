package prepgraph

import "sort"

// maxPackedEdgeID is the largest original edge id that fits in the 30 bits
// reserved for it inside a packed original-graph entry (spec.md §4.3, §9).
const maxPackedEdgeID = 1<<30 - 1

// origGraphBuilder accumulates the two directed entries each base edge
// contributes (spec.md §4.3 step 1) while the facade is in phase Building.
// It is discarded once origGraphBuilder.build runs at prepareForContraction.
type origGraphBuilder struct {
	fromNodes []Node
	toNodes   []Node
	packed    []uint32 // edgeId<<2 | reverseAllowed<<1 | thisAllowed
}

func newOrigGraphBuilder() *origGraphBuilder {
	return &origGraphBuilder{}
}

// addBase records the two directed entries for one base edge: (from, to)
// with access flags (fwdAllowed, bwdAllowed), and its mirror (to, from)
// with the flags swapped.
func (b *origGraphBuilder) addBase(from, to Node, edgeID EdgeID, fwdAllowed, bwdAllowed bool) {
	if edgeID < 0 || int64(edgeID) > maxPackedEdgeID {
		fatal(CategoryOverflow, "original graph: edge id %d exceeds the 30-bit packed range", edgeID)
	}
	pack := func(thisAllowed, reverseAllowed bool) uint32 {
		p := uint32(edgeID) << 2
		if thisAllowed {
			p |= 1
		}
		if reverseAllowed {
			p |= 2
		}
		return p
	}
	b.fromNodes = append(b.fromNodes, from, to)
	b.toNodes = append(b.toNodes, to, from)
	b.packed = append(b.packed, pack(fwdAllowed, bwdAllowed), pack(bwdAllowed, fwdAllowed))
}

// build produces the frozen, immutable original graph (spec.md §4.3 steps
// 2–3): sort the accumulated entries by fromNodes ascending (stable, so
// entries sharing a source node keep their insertion order), then derive
// the firstEdgeByNode prefix table by scanning the sorted fromNodes.
func (b *origGraphBuilder) build(numNodes uint32) *originalGraph {
	n := len(b.fromNodes)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return b.fromNodes[order[i]] < b.fromNodes[order[j]]
	})

	fromNodes := make([]Node, n)
	toNodes := make([]Node, n)
	packed := make([]uint32, n)
	for i, idx := range order {
		fromNodes[i] = b.fromNodes[idx]
		toNodes[i] = b.toNodes[idx]
		packed[i] = b.packed[idx]
	}

	firstEdgeByNode := make([]int32, numNodes+1)
	pos := 0
	for v := uint32(0); v < numNodes; v++ {
		for pos < n && fromNodes[pos] < v {
			pos++
		}
		firstEdgeByNode[v] = int32(pos)
	}
	firstEdgeByNode[numNodes] = int32(n)

	return &originalGraph{
		fromNodes:       fromNodes,
		toNodes:         toNodes,
		packed:          packed,
		firstEdgeByNode: firstEdgeByNode,
	}
}

// originalGraph is the frozen CSR-like structure of spec.md §4.3, built
// once at prepareForContraction in edge-based mode and never mutated
// afterward (E3's sibling for the original-graph side: it has no setters
// at all).
type originalGraph struct {
	fromNodes       []Node
	toNodes         []Node
	packed          []uint32
	firstEdgeByNode []int32
}

func (og *originalGraph) newExplorer(out bool) *OrigEdgeExplorer {
	return &OrigEdgeExplorer{og: og, out: out}
}

// OrigEdgeExplorer iterates the original (pre-contraction) directed edges
// touching a base node, filtered by direction (spec.md §4.3 explorer
// contract): the out explorer requires the this-direction-allowed bit, the
// in explorer requires the reverse-direction-allowed bit.
type OrigEdgeExplorer struct {
	og   *originalGraph
	out  bool
	base Node
	pos  int32
	end  int32
}

// SetBaseNode resets the cursor to iterate base's original edges.
func (e *OrigEdgeExplorer) SetBaseNode(v Node) *OrigEdgeExplorer {
	e.base = v
	e.pos = e.og.firstEdgeByNode[v] - 1
	e.end = e.og.firstEdgeByNode[v+1]
	return e
}

// Next advances to the next yieldable entry, returning false once the
// range is exhausted.
func (e *OrigEdgeExplorer) Next() bool {
	for {
		e.pos++
		if e.pos >= e.end {
			return false
		}
		p := e.og.packed[e.pos]
		thisAllowed := p&1 != 0
		reverseAllowed := p&2 != 0
		if e.out && !thisAllowed {
			continue
		}
		if !e.out && !reverseAllowed {
			continue
		}
		return true
	}
}

// AdjNode returns the current entry's other endpoint.
func (e *OrigEdgeExplorer) AdjNode() Node {
	return e.og.toNodes[e.pos]
}

// OrigEdgeID returns the current entry's original (base) edge id.
func (e *OrigEdgeExplorer) OrigEdgeID() EdgeID {
	return EdgeID(e.og.packed[e.pos] >> 2)
}

// OrigEdgeKey returns the canonical directed key for the current entry:
// (edgeId<<1) | (base > adj ? 1 : 0), per spec.md §4.3.
func (e *OrigEdgeExplorer) OrigEdgeKey() int32 {
	id := int32(e.og.packed[e.pos] >> 2)
	adj := e.og.toNodes[e.pos]
	if e.base > adj {
		return id<<1 | 1
	}
	return id << 1
}
