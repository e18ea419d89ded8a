// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"sort"

	"github.com/nbatista0630/su2edu-go/ferr"
)

// Geometry is the static, immutable description of a preprocessed mesh:
// dual control volumes, their connecting edges and boundary faces, laid out
// as struct-of-arrays so the assembly loops see plain slices instead of
// per-cell objects.
type Geometry struct {
	NDim int

	coords     [][]float64 // [cell] -> position (cell == point, one-to-one)
	cellVolume []float64   // [cell]
	cellEdges  [][]int     // [cell] -> incident edge indices
	wallDist   []float64   // [cell]

	edges []Edge

	boundaryFaces []BoundaryFace
	markerIndex   map[string][]int // marker -> indices into boundaryFaces
}

// NewGeometry constructs a Geometry from raw mesh data by the median-dual
// construction rule. knownMarkers, if non-nil, is used to validate
// that every boundary marker tag is recognized; pass nil to skip that check.
func NewGeometry(raw RawMesh, knownMarkers map[string]bool) (*Geometry, error) {
	if raw.NDim != 2 && raw.NDim != 3 {
		return nil, ferr.New(ferr.InputInvalid, "nDim must be 2 or 3, got %d", raw.NDim)
	}
	if len(raw.Points) == 0 || len(raw.Elements) == 0 {
		return nil, ferr.New(ferr.InputInvalid, "mesh must have at least one point and one element")
	}

	g := &Geometry{NDim: raw.NDim}
	g.coords = make([][]float64, len(raw.Points))
	for i, p := range raw.Points {
		if len(p.Coords) != raw.NDim {
			return nil, ferr.New(ferr.InputInvalid, "point %d has %d coords, expected %d", i, len(p.Coords), raw.NDim)
		}
		g.coords[i] = append([]float64(nil), p.Coords...)
	}
	g.cellVolume = make([]float64, len(raw.Points))

	edgeNormal := make(map[[2]int][]float64)
	edgeOrder := make([]([2]int), 0)

	addEdge := func(ga, gb int, raw []float64) {
		lo, hi := ga, gb
		if lo > hi {
			lo, hi = hi, lo
		}
		key := [2]int{lo, hi}
		contrib := raw
		if ga > gb {
			contrib = vscale(raw, -1)
		}
		if acc, ok := edgeNormal[key]; ok {
			edgeNormal[key] = vadd(acc, contrib)
		} else {
			edgeNormal[key] = append([]float64(nil), contrib...)
			edgeOrder = append(edgeOrder, key)
		}
	}

	for _, el := range raw.Elements {
		topo, ok := refTopologies[el.Kind]
		if !ok || topo.ndim != raw.NDim {
			return nil, ferr.New(ferr.InputInvalid, "element kind %s is not valid for nDim=%d", el.Kind, raw.NDim)
		}
		if len(el.Verts) != topo.nverts {
			return nil, ferr.New(ferr.InputInvalid, "element kind %s needs %d vertices, got %d", el.Kind, topo.nverts, len(el.Verts))
		}

		coords := make([][]float64, len(el.Verts))
		for k, gv := range el.Verts {
			coords[k] = g.coords[gv]
		}
		vol := elemVolume(el.Kind, coords)
		if vol <= 0 {
			return nil, ferr.New(ferr.GeometryDegenerate, "element with verts %v has non-positive volume %g", el.Verts, vol)
		}
		share := vol / float64(topo.nverts)
		for _, gv := range el.Verts {
			g.cellVolume[gv] += share
		}

		c := centroid(coords)
		if raw.NDim == 2 {
			for _, e := range topo.edges {
				a, b := e[0], e[1]
				m := vscale(vadd(coords[a], coords[b]), 0.5)
				// rotating the midpoint->centroid segment by -90 deg points
				// the dual-face normal from a to b for CCW-wound elements
				seg := vsub(c, m)
				n := rot90(vscale(seg, -1))
				addEdge(el.Verts[a], el.Verts[b], n)
			}
		} else {
			for _, e := range topo.edges {
				a, b := e[0], e[1]
				faces := topo.facesContaining(a, b)
				if len(faces) != 2 {
					return nil, ferr.New(ferr.GeometryDegenerate, "edge (%d,%d) of element touches %d faces, expected 2", a, b, len(faces))
				}
				m := vscale(vadd(coords[a], coords[b]), 0.5)
				f1c := faceCentroidOf(faces[0], coords)
				f2c := faceCentroidOf(faces[1], coords)
				n := vscale(vadd(triArea2Vec(m, f1c, c), triArea2Vec(m, c, f2c)), 0.5)
				addEdge(el.Verts[a], el.Verts[b], n)
			}
		}
	}

	for _, v := range g.cellVolume {
		if v <= 0 {
			return nil, ferr.New(ferr.GeometryDegenerate, "dual volume non-positive after assembly: %g", v)
		}
	}

	sort.Slice(edgeOrder, func(i, j int) bool {
		if edgeOrder[i][0] != edgeOrder[j][0] {
			return edgeOrder[i][0] < edgeOrder[j][0]
		}
		return edgeOrder[i][1] < edgeOrder[j][1]
	})

	g.cellEdges = make([][]int, len(raw.Points))
	g.edges = make([]Edge, 0, len(edgeOrder))
	for _, key := range edgeOrder {
		n := edgeNormal[key]
		if vnorm(n) < 1e-300 {
			return nil, ferr.New(ferr.GeometryDegenerate, "zero-vector normal on edge (%d,%d)", key[0], key[1])
		}
		mid := vscale(vadd(g.coords[key[0]], g.coords[key[1]]), 0.5)
		idx := len(g.edges)
		g.edges = append(g.edges, Edge{I: key[0], J: key[1], Normal: n, Midpoint: mid})
		g.cellEdges[key[0]] = append(g.cellEdges[key[0]], idx)
		g.cellEdges[key[1]] = append(g.cellEdges[key[1]], idx)
	}

	if err := g.buildBoundary(raw, knownMarkers); err != nil {
		return nil, err
	}
	g.computeWallDistances(raw)

	return g, nil
}

func faceCentroidOf(face []int, coords [][]float64) []float64 {
	pts := make([][]float64, len(face))
	for i, v := range face {
		pts[i] = coords[v]
	}
	return centroid(pts)
}
