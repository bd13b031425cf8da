package prepgraph

// edgeList is the compact variable-length 2D store of spec.md §4.1: a
// fixed outer array of length numNodes, each slot holding a growable inner
// slice of edge handles. This is chosen over an array of general-purpose
// list objects (e.g. a slice of *[]EdgeID behind an interface) to avoid
// paying one object header and pointer per node at |V| scale — at millions
// of nodes that overhead dominates.
//
// First insertion into a slot lazily allocates its inner buffer with a
// small initial capacity; growth beyond that rides Go's own append growth
// strategy (amortized doubling for the small slice sizes road-network
// degree distributions produce), so there is no hand-rolled growth curve
// to get wrong.
type edgeList struct {
	slots [][]EdgeID
}

func newEdgeList(numNodes uint32) *edgeList {
	return &edgeList{slots: make([][]EdgeID, numNodes)}
}

// size returns the current element count in slot i.
func (l *edgeList) size(i Node) int {
	return len(l.slots[i])
}

// add appends e to slot i.
func (l *edgeList) add(i Node, e EdgeID) {
	if l.slots[i] == nil {
		l.slots[i] = make([]EdgeID, 0, 4)
	}
	l.slots[i] = append(l.slots[i], e)
}

// get returns the element at position k of slot i; undefined if k is out
// of range, matching spec.md §4.1.
func (l *edgeList) get(i Node, k int) EdgeID {
	return l.slots[i][k]
}

// remove does a swap-with-last removal of the first occurrence of e from
// slot i. The relative order of the remaining elements is not preserved.
// A no-op if e is absent.
func (l *edgeList) remove(i Node, e EdgeID) {
	s := l.slots[i]
	for k, v := range s {
		if v == e {
			last := len(s) - 1
			s[k] = s[last]
			l.slots[i] = s[:last]
			return
		}
	}
}

// clear drops the inner buffer for slot i entirely.
func (l *edgeList) clear(i Node) {
	l.slots[i] = nil
}
