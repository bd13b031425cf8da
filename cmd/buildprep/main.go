// Command buildprep parses an OSM extract, builds a preparation graph,
// and drives it through a full Building -> Ready -> Closed lifecycle.
//
// The contraction loop here is intentionally naive: it visits nodes in
// id order and inserts a shortcut for every neighbor pair without a
// witness search, so it does not produce a correct or space-efficient
// Contraction Hierarchy. The priority heuristic and witness-path search
// that make contraction useful are a separate, out-of-scope collaborator;
// this command exists to exercise the preparation graph's full lifecycle
// end to end, not to produce a usable CH.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"chprep/prepgraph"
	"chprep/source"
	"chprep/source/osmload"
	"chprep/weighting"
)

func main() {
	input := flag.String("input", "", "path to .osm.pbf file")
	fastest := flag.Bool("fastest", false, "weigh edges by estimated travel time instead of distance")
	bbox := flag.String("bbox", "", "bounding box filter: minLat,minLng,maxLat,maxLng")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: buildprep --input <file.osm.pbf> [--fastest] [--bbox minLat,minLng,maxLat,maxLng]")
		os.Exit(1)
	}

	var opts osmload.ParseOptions
	if *bbox != "" {
		var minLat, minLng, maxLat, maxLng float64
		if _, err := fmt.Sscanf(*bbox, "%f,%f,%f,%f", &minLat, &minLng, &maxLat, &maxLng); err != nil {
			log.Fatalf("invalid bbox: %v", err)
		}
		opts.BBox = osmload.BBox{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}
	}

	start := time.Now()

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	defer f.Close()

	log.Println("parsing OSM data...")
	parsed, err := osmload.Parse(context.Background(), f, opts)
	if err != nil {
		log.Fatalf("parse OSM data: %v", err)
	}

	log.Println("building base graph...")
	g := source.Build(parsed)
	log.Printf("base graph: %d nodes, %d segments", g.NumNodes(), g.NumEdges())

	log.Println("extracting largest connected component...")
	component := source.LargestComponent(g)
	g = source.FilterToComponent(g, component)
	log.Printf("filtered graph: %d nodes, %d segments", g.NumNodes(), g.NumEdges())

	var w weighting.Weighting
	if *fastest {
		w = weighting.NewFastestWeighting(g, 20)
	} else {
		w = weighting.NewShortestWeighting(g)
	}

	log.Println("building preparation graph...")
	pg := prepgraph.NewPreparationGraph(g.NumNodes(), g.NumEdges(), prepgraph.NodeBased)
	for i := range g.From {
		id := prepgraph.EdgeID(i)
		fwd, bwd := math.Inf(1), math.Inf(1)
		if !math.IsInf(g.WeightFwd[i], 1) {
			fwd = w.EdgeWeight(id, false)
		}
		if !math.IsInf(g.WeightBwd[i], 1) {
			bwd = w.EdgeWeight(id, true)
		}
		pg.AddEdge(g.From[i], g.To[i], fwd, bwd)
	}
	pg.PrepareForContraction()

	log.Println("contracting (naive order, no witness search)...")
	shortcuts := naiveContract(pg, w)
	log.Printf("contraction complete: %d shortcuts inserted", shortcuts)

	pg.Close()
	log.Printf("done in %s", time.Since(start).Round(time.Millisecond))
}

// naiveContract visits every node once in id order, replaces its
// incident pairs with shortcuts (no witness suppression — see package
// doc; pairs where either weight is +Inf are skipped), and disconnects it.
// It returns the number of shortcuts inserted.
func naiveContract(pg *prepgraph.PreparationGraph, w weighting.Weighting) int {
	shortcuts := 0
	for v := prepgraph.Node(0); v < pg.NumNodes(); v++ {
		out := pg.CreateOutEdgeExplorer()
		in := pg.CreateInEdgeExplorer()

		var preds, succs []struct {
			node   prepgraph.Node
			edge   prepgraph.EdgeID
			weight float64
		}
		in.SetBaseNode(v)
		for in.Next() {
			preds = append(preds, struct {
				node   prepgraph.Node
				edge   prepgraph.EdgeID
				weight float64
			}{in.AdjNode(), in.EdgeID(), in.Weight()})
		}
		out.SetBaseNode(v)
		for out.Next() {
			succs = append(succs, struct {
				node   prepgraph.Node
				edge   prepgraph.EdgeID
				weight float64
			}{out.AdjNode(), out.EdgeID(), out.Weight()})
		}

		for _, p := range preds {
			for _, s := range succs {
				if p.node == s.node || math.IsInf(p.weight, 1) || math.IsInf(s.weight, 1) {
					continue
				}
				pg.AddShortcut(p.node, s.node, p.weight+s.weight, p.edge, s.edge, 2, 0, 0)
				shortcuts++
			}
		}

		pg.Disconnect(v)
	}
	return shortcuts
}
