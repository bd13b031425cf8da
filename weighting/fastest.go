package weighting

import "chprep/prepgraph"

// speedKmh is the assumed free-flow speed per highway class, grounded on
// the same class list the source parser uses to decide car accessibility.
var speedKmh = map[string]float64{
	"motorway":       100,
	"motorway_link":  60,
	"trunk":          80,
	"trunk_link":     50,
	"primary":        65,
	"primary_link":   45,
	"secondary":      55,
	"secondary_link": 40,
	"tertiary":       45,
	"tertiary_link":  35,
	"unclassified":   35,
	"residential":    30,
	"living_street":  15,
	"service":        15,
}

const defaultSpeedKmh = 30

// FastestWeighting weighs a base edge by estimated travel time: length
// divided by its highway class's free-flow speed. A fixed uTurnPenalty is
// applied whenever TurnWeight is probed for a U-turn.
type FastestWeighting struct {
	src          Source
	uTurnPenalty float64
}

// NewFastestWeighting wraps src for travel-time weighting, applying
// uTurnPenalty (seconds) to every U-turn probe.
func NewFastestWeighting(src Source, uTurnPenalty float64) *FastestWeighting {
	return &FastestWeighting{src: src, uTurnPenalty: uTurnPenalty}
}

// EdgeWeight returns edgeID's estimated travel time in seconds.
func (w *FastestWeighting) EdgeWeight(edgeID prepgraph.EdgeID, _ bool) float64 {
	speed := speedKmh[w.src.EdgeHighwayClass(edgeID)]
	if speed == 0 {
		speed = defaultSpeedKmh
	}
	lengthKm := w.src.EdgeLengthMeters(edgeID) / 1000
	return lengthKm / speed * 3600
}

// TurnWeight returns uTurnPenalty for a U-turn (fromEdge == toEdge) and 0
// otherwise; this is the probe prepgraph.CompileTurnCosts calls with
// (1, 0, 1) to derive the precomputed U-turn cost.
func (w *FastestWeighting) TurnWeight(fromEdge prepgraph.EdgeID, _ prepgraph.Node, toEdge prepgraph.EdgeID) float64 {
	if fromEdge == toEdge {
		return w.uTurnPenalty
	}
	return 0
}
