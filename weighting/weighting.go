// Package weighting supplies the edge-weight and turn-weight functions a
// preparation graph's contraction driver and turn-cost compilation
// consume only through these abstract operations.
package weighting

import "chprep/prepgraph"

// Weighting projects a base edge's traversal cost and a via-node's turn
// cost. It satisfies prepgraph.TurnWeighter structurally, so
// prepgraph.CompileTurnCosts can probe TurnWeight(1, 0, 1) for the
// U-turn cost without prepgraph importing this package.
type Weighting interface {
	EdgeWeight(edgeID prepgraph.EdgeID, reverse bool) float64
	TurnWeight(fromEdge prepgraph.EdgeID, via prepgraph.Node, toEdge prepgraph.EdgeID) float64
}

// Source is the minimal base-edge view a Weighting reads from: length and
// highway class addressed by base edge id, in the same order base edges
// were fed to prepgraph.AddEdge.
type Source interface {
	EdgeLengthMeters(edgeID prepgraph.EdgeID) float64
	EdgeHighwayClass(edgeID prepgraph.EdgeID) string
}
