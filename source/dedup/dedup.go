// Package dedup collapses OSM nodes that sit within a small tolerance of
// each other (common at bridge/tunnel junctions and import seams) into a
// single prepgraph node index before base edges are built.
package dedup

import (
	"math"

	"github.com/paulmach/osm"
	"github.com/tidwall/rtree"

	"chprep/source/geo"
)

// toleranceMeters is the radius within which two distinct OSM node ids are
// considered the same physical junction.
const toleranceMeters = 0.5

// degPerMeterLat converts a meter radius to an approximate degree radius
// for the rtree's planar bounding box query; good enough as an over-wide
// candidate filter, refined with Haversine below. Degrees of longitude per
// meter grow toward the poles by 1/cos(lat) and must be scaled
// separately — see lonRadiusDeg.
const degPerMeterLat = 1.0 / 111_320.0

// lonRadiusDeg converts a meter radius to a degree-of-longitude radius at
// the given latitude. Longitude lines converge toward the poles, so the
// same meter distance spans more degrees there than at the equator;
// without this scaling the rtree search box is too narrow at high
// latitudes and misses candidates that are within tolerance.
func lonRadiusDeg(latDeg, meters float64) float64 {
	cos := math.Cos(latDeg * math.Pi / 180)
	if cos < 0.01 {
		cos = 0.01
	}
	return degPerMeterLat * meters / cos
}

// Index deduplicates a set of OSM node coordinates, returning the dense
// [0, n) index each original node id maps to.
type Index struct {
	tree    rtree.RTreeG[osm.NodeID]
	toIndex map[osm.NodeID]uint32
	lat     map[osm.NodeID]float64
	lon     map[osm.NodeID]float64
	next    uint32
}

// NewIndex builds a deduplication index over lat/lon, processing node ids
// in the order given so merges are deterministic.
func NewIndex(ids []osm.NodeID, lat, lon map[osm.NodeID]float64) *Index {
	idx := &Index{
		toIndex: make(map[osm.NodeID]uint32, len(ids)),
		lat:     lat,
		lon:     lon,
	}

	for _, id := range ids {
		la, lo := lat[id], lon[id]
		latR := degPerMeterLat * toleranceMeters
		lonR := lonRadiusDeg(la, toleranceMeters)
		var mergeWith osm.NodeID
		found := false
		idx.tree.Search(
			[2]float64{la - latR, lo - lonR},
			[2]float64{la + latR, lo + lonR},
			func(min, max [2]float64, candidate osm.NodeID) bool {
				if found {
					return false
				}
				cLat, cLon := lat[candidate], lon[candidate]
				if geo.EquirectangularDist(la, lo, cLat, cLon) > toleranceMeters {
					return true
				}
				if geo.Haversine(la, lo, cLat, cLon) <= toleranceMeters {
					mergeWith = candidate
					found = true
					return false
				}
				return true
			},
		)

		if found {
			idx.toIndex[id] = idx.toIndex[mergeWith]
			continue
		}

		idx.tree.Insert([2]float64{la, lo}, [2]float64{la, lo}, id)
		idx.toIndex[id] = idx.next
		idx.next++
	}

	return idx
}

// Lookup returns the dense node index a raw OSM node id was assigned to.
func (idx *Index) Lookup(id osm.NodeID) (uint32, bool) {
	v, ok := idx.toIndex[id]
	return v, ok
}

// NumNodes returns the number of distinct dense node indices produced.
func (idx *Index) NumNodes() uint32 {
	return idx.next
}
