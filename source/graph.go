// Package source assembles a flat edge-list base graph from parsed,
// deduplicated OSM segments and exposes it to prepgraph.BuildFromGraph.
package source

import (
	"sort"

	"github.com/paulmach/osm"

	"chprep/prepgraph"
	"chprep/source/dedup"
	"chprep/source/osmload"
)

// BaseGraph is a set of parallel arrays holding one entry per undirected
// segment, in segment order (not sorted by source node, no prefix table),
// in the (weightFwd, weightBwd) shape prepgraph.BaseGraphView requires:
// each index i carries both directional weights for the single edge
// (From[i], To[i]).
type BaseGraph struct {
	NumNodesField uint32
	From          []uint32
	To            []uint32
	LengthMeters  []float64
	WeightFwd     []float64 // meters, +Inf if forbidden
	WeightBwd     []float64
	HighwayClass  []string
	NodeLat       []float64
	NodeLon       []float64
}

// Build deduplicates parse result nodes and compacts its segments into a
// BaseGraph, dropping segments whose endpoints collapsed onto each other
// after dedup (self-loops introduced by coordinate merging, not by the
// source data).
func Build(result *osmload.ParseResult) *BaseGraph {
	if len(result.Segments) == 0 {
		return &BaseGraph{}
	}

	ids := make([]osm.NodeID, 0, len(result.NodeLat))
	for id := range result.NodeLat {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	idx := dedup.NewIndex(ids, result.NodeLat, result.NodeLon)
	numNodes := idx.NumNodes()

	nodeLat := make([]float64, numNodes)
	nodeLon := make([]float64, numNodes)
	seen := make([]bool, numNodes)
	for _, id := range ids {
		v, ok := idx.Lookup(id)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		nodeLat[v] = result.NodeLat[id]
		nodeLon[v] = result.NodeLon[id]
	}

	from := make([]uint32, 0, len(result.Segments))
	to := make([]uint32, 0, len(result.Segments))
	wf := make([]float64, 0, len(result.Segments))
	wb := make([]float64, 0, len(result.Segments))
	hw := make([]string, 0, len(result.Segments))
	length := make([]float64, 0, len(result.Segments))
	for _, seg := range result.Segments {
		u, uok := idx.Lookup(seg.FromNodeID)
		v, vok := idx.Lookup(seg.ToNodeID)
		if !uok || !vok || u == v {
			continue
		}
		from = append(from, u)
		to = append(to, v)
		wf = append(wf, seg.WeightFwd)
		wb = append(wb, seg.WeightBwd)
		hw = append(hw, seg.HighwayClass)
		length = append(length, seg.LengthMeters)
	}

	return &BaseGraph{
		NumNodesField: numNodes,
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

// NumNodes satisfies prepgraph.BaseGraphView.
func (g *BaseGraph) NumNodes() uint32 { return g.NumNodesField }

// NumEdges satisfies prepgraph.BaseGraphView.
func (g *BaseGraph) NumEdges() int { return len(g.From) }

// Edges satisfies prepgraph.BaseGraphView, streaming each segment once.
func (g *BaseGraph) Edges(cb func(from, to uint32, weightFwd, weightBwd float64)) {
	for i := range g.From {
		cb(g.From[i], g.To[i], g.WeightFwd[i], g.WeightBwd[i])
	}
}

// EdgeLengthMeters satisfies weighting.Source.
func (g *BaseGraph) EdgeLengthMeters(edgeID prepgraph.EdgeID) float64 {
	return g.LengthMeters[edgeID]
}

// EdgeHighwayClass satisfies weighting.Source.
func (g *BaseGraph) EdgeHighwayClass(edgeID prepgraph.EdgeID) string {
	return g.HighwayClass[edgeID]
}
