// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

// cross2 returns the scalar (z-component) 2D cross product a x b.
func cross2(a, b []float64) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

func tetVolume(a, b, c, d []float64) float64 {
	v := triArea2Vec(a, b, c) // (b-a) x (c-a)
	h := vsub(d, a)
	vol := vdot(v, h) / 6.0
	if vol < 0 {
		vol = -vol
	}
	return vol
}

// elemVolume computes the (always positive) volume/area of a primal element
// by fan-triangulating from local vertex 0: every face (2D: the boundary
// edge loop; 3D: each polyhedron face) not incident to vertex 0 contributes
// a triangle (2D) or a tet (3D) with apex 0. This generalizes uniformly to
// any convex element star-shaped about vertex 0, which holds for every
// topology in refTopologies.
func elemVolume(kind ElemKind, coords [][]float64) float64 {
	topo := refTopologies[kind]
	total := 0.0
	if topo.ndim == 2 {
		for _, e := range topo.edges {
			if e[0] == 0 || e[1] == 0 {
				continue
			}
			tri := cross2(vsub(coords[e[0]], coords[0]), vsub(coords[e[1]], coords[0]))
			if tri < 0 {
				tri = -tri
			}
			total += 0.5 * tri
		}
		return total
	}
	for _, f := range topo.faces {
		hasZero := false
		for _, v := range f {
			if v == 0 {
				hasZero = true
				break
			}
		}
		if hasZero {
			continue
		}
		apex := f[0]
		for k := 1; k+1 < len(f); k++ {
			total += tetVolume(coords[0], coords[apex], coords[f[k]], coords[f[k+1]])
		}
	}
	return total
}
