// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "github.com/nbatista0630/su2edu-go/ferr"

// buildBoundary splits every raw boundary face into one BoundaryFace per
// incident vertex, following the same median-dual partition used for
// interior edges: in 2D each boundary segment splits in half at its
// midpoint; in 3D each boundary polygon splits into one sub-quad per vertex
// fanned from the face centroid. Vertex ordering of a raw face is assumed
// consistent with an outward-pointing orientation (2D: rotating edge
// direction by -90°; 3D: CCW winding viewed from outside the domain).
func (g *Geometry) buildBoundary(raw RawMesh, knownMarkers map[string]bool) error {
	g.markerIndex = make(map[string][]int)

	add := func(cell int, marker string, normal, midpoint []float64) {
		idx := len(g.boundaryFaces)
		g.boundaryFaces = append(g.boundaryFaces, BoundaryFace{
			Cell: cell, Marker: marker, Normal: normal, Midpoint: midpoint,
		})
		g.markerIndex[marker] = append(g.markerIndex[marker], idx)
	}

	for _, bf := range raw.Boundary {
		if knownMarkers != nil && !knownMarkers[bf.Marker] {
			return ferr.New(ferr.InputInvalid, "boundary marker %q is not a recognized tag", bf.Marker)
		}
		if raw.NDim == 2 {
			if len(bf.Verts) != 2 {
				return ferr.New(ferr.InputInvalid, "2D boundary face must have 2 vertices, got %d", len(bf.Verts))
			}
			a, b := bf.Verts[0], bf.Verts[1]
			pa, pb := g.coords[a], g.coords[b]
			d := vsub(pb, pa)
			full := []float64{d[1], -d[0]} // outward = rotate edge vector by -90deg
			m := vscale(vadd(pa, pb), 0.5)
			add(a, bf.Marker, vscale(full, 0.5), vscale(vadd(pa, m), 0.5))
			add(b, bf.Marker, vscale(full, 0.5), vscale(vadd(m, pb), 0.5))
			continue
		}

		n := len(bf.Verts)
		if n < 3 {
			return ferr.New(ferr.InputInvalid, "3D boundary face must have >= 3 vertices, got %d", n)
		}
		pts := make([][]float64, n)
		for i, v := range bf.Verts {
			pts[i] = g.coords[v]
		}
		c := centroid(pts)
		for k := 0; k < n; k++ {
			prev := pts[(k-1+n)%n]
			curr := pts[k]
			next := pts[(k+1)%n]
			prevMid := vscale(vadd(prev, curr), 0.5)
			nextMid := vscale(vadd(curr, next), 0.5)
			sub := vscale(vadd(triArea2Vec(curr, nextMid, c), triArea2Vec(curr, c, prevMid)), 0.5)
			subMid := centroid([][]float64{prevMid, curr, nextMid, c})
			add(bf.Verts[k], bf.Marker, sub, subMid)
		}
	}
	return nil
}

// BoundaryFacesByMarker iterates boundary faces tagged with marker.
func (g *Geometry) BoundaryFacesByMarker(marker string) []BoundaryFace {
	idxs := g.markerIndex[marker]
	out := make([]BoundaryFace, len(idxs))
	for i, idx := range idxs {
		out[i] = g.boundaryFaces[idx]
	}
	return out
}

// Markers returns all distinct marker tags present on the boundary.
func (g *Geometry) Markers() []string {
	out := make([]string, 0, len(g.markerIndex))
	for m := range g.markerIndex {
		out = append(out, m)
	}
	return out
}
