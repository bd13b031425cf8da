package weighting

import "chprep/prepgraph"

// ShortestWeighting weighs every base edge by its physical length,
// ignoring road class — the simplest Weighting a contraction driver can
// run against.
type ShortestWeighting struct {
	src Source
}

// NewShortestWeighting wraps src for shortest-path-by-distance weighting.
func NewShortestWeighting(src Source) *ShortestWeighting {
	return &ShortestWeighting{src: src}
}

// EdgeWeight returns edgeID's length, independent of reverse (distance has
// no direction; a forbidden direction is already +Inf in the graph's
// stored weight, not here).
func (w *ShortestWeighting) EdgeWeight(edgeID prepgraph.EdgeID, _ bool) float64 {
	return w.src.EdgeLengthMeters(edgeID)
}

// TurnWeight reports no turn cost: shortest-distance routing ignores
// maneuver penalties entirely.
func (w *ShortestWeighting) TurnWeight(prepgraph.EdgeID, prepgraph.Node, prepgraph.EdgeID) float64 {
	return 0
}
