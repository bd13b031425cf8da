package source

// UnionFind implements a disjoint-set data structure with path halving and
// union by rank.
type UnionFind struct {
	parent []uint32
	rank   []byte
	size   []uint32
}

// NewUnionFind creates a UnionFind for n elements.
func NewUnionFind(n uint32) *UnionFind {
	parent := make([]uint32, n)
	size := make([]uint32, n)
	for i := range n {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{parent: parent, rank: make([]byte, n), size: size}
}

// Find returns the representative of the set containing x.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already joined.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx, ry := uf.Find(x), uf.Find(y)
	if rx == ry {
		return false
	}
	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// LargestComponent returns the node indices of g's largest weakly
// connected component, treating each segment as undirected regardless of
// its directional weights.
func LargestComponent(g *BaseGraph) []uint32 {
	if g.NumNodesField == 0 {
		return nil
	}

	uf := NewUnionFind(g.NumNodesField)
	for i := range g.From {
		uf.Union(g.From[i], g.To[i])
	}

	bestRoot, bestSize := uint32(0), uint32(0)
	for i := uint32(0); i < g.NumNodesField; i++ {
		root := uf.Find(i)
		if uf.size[root] > bestSize {
			bestRoot, bestSize = root, uf.size[root]
		}
	}

	nodes := make([]uint32, 0, bestSize)
	for i := uint32(0); i < g.NumNodesField; i++ {
		if uf.Find(i) == bestRoot {
			nodes = append(nodes, i)
		}
	}
	return nodes
}

// FilterToComponent returns a new BaseGraph containing only nodes and
// restricted to segments with both endpoints inside the given node set.
func FilterToComponent(g *BaseGraph, nodes []uint32) *BaseGraph {
	if len(nodes) == 0 {
		return &BaseGraph{}
	}

	oldToNew := make(map[uint32]uint32, len(nodes))
	for newIdx, oldIdx := range nodes {
		oldToNew[oldIdx] = uint32(newIdx)
	}

	from := make([]uint32, 0, len(g.From))
	to := make([]uint32, 0, len(g.From))
	wf := make([]float64, 0, len(g.From))
	wb := make([]float64, 0, len(g.From))
	hw := make([]string, 0, len(g.From))
	length := make([]float64, 0, len(g.From))
	for i := range g.From {
		newU, uok := oldToNew[g.From[i]]
		newV, vok := oldToNew[g.To[i]]
		if !uok || !vok {
			continue
		}
		from = append(from, newU)
		to = append(to, newV)
		wf = append(wf, g.WeightFwd[i])
		wb = append(wb, g.WeightBwd[i])
		hw = append(hw, g.HighwayClass[i])
		length = append(length, g.LengthMeters[i])
	}

	nodeLat := make([]float64, len(nodes))
	nodeLon := make([]float64, len(nodes))
	for newIdx, oldIdx := range nodes {
		nodeLat[newIdx] = g.NodeLat[oldIdx]
		nodeLon[newIdx] = g.NodeLon[oldIdx]
	}

	return &BaseGraph{
		NumNodesField: uint32(len(nodes)),
		From:          from,
		To:            to,
		LengthMeters:  length,
		WeightFwd:     wf,
		WeightBwd:     wb,
		HighwayClass:  hw,
		NodeLat:       nodeLat,
		NodeLon:       nodeLon,
	}
}
