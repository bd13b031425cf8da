package weighting

import (
	"testing"

	"chprep/prepgraph"
)

type fakeSource struct {
	length []float64
	class  []string
}

func (s fakeSource) EdgeLengthMeters(id prepgraph.EdgeID) float64 { return s.length[id] }
func (s fakeSource) EdgeHighwayClass(id prepgraph.EdgeID) string  { return s.class[id] }

func TestShortestWeighting(t *testing.T) {
	src := fakeSource{length: []float64{100, 250}}
	w := NewShortestWeighting(src)
	if got := w.EdgeWeight(0, false); got != 100 {
		t.Fatalf("EdgeWeight(0) = %v, want 100", got)
	}
	if got := w.EdgeWeight(1, true); got != 250 {
		t.Fatalf("EdgeWeight(1, reverse) = %v, want 250", got)
	}
	if w.TurnWeight(1, 0, 1) != 0 {
		t.Fatal("shortest weighting must report zero turn cost")
	}
}

func TestFastestWeighting(t *testing.T) {
	src := fakeSource{length: []float64{1000}, class: []string{"motorway"}}
	w := NewFastestWeighting(src, 12)
	want := (1.0 / 100) * 3600 // 1 km at 100 km/h
	if got := w.EdgeWeight(0, false); got != want {
		t.Fatalf("EdgeWeight = %v, want %v", got, want)
	}
	if got := w.TurnWeight(1, 0, 1); got != 12 {
		t.Fatalf("TurnWeight(1,0,1) = %v, want 12", got)
	}
	if got := w.TurnWeight(1, 0, 2); got != 0 {
		t.Fatalf("TurnWeight(1,0,2) = %v, want 0", got)
	}
}

func TestFastestWeightingUnknownClass(t *testing.T) {
	src := fakeSource{length: []float64{1000}, class: []string{"mystery"}}
	w := NewFastestWeighting(src, 0)
	want := (1.0 / defaultSpeedKmh) * 3600
	if got := w.EdgeWeight(0, false); got != want {
		t.Fatalf("EdgeWeight = %v, want %v", got, want)
	}
}
