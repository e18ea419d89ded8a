// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

// refTopology is the reference-element description used to derive the dual
// mesh: for 2D kinds only Edges is populated (the element's boundary
// edge loop); for 3D kinds Faces holds each face as an ordered local vertex
// loop, and Edges is derived from consecutive pairs within those faces.
type refTopology struct {
	ndim    int
	nverts  int
	faces   [][]int // 3D only; ordered local vertex loops, consistently wound (inward for every kind)
	edges   [][2]int
}

func edgesFromFaces(faces [][]int) [][2]int {
	seen := make(map[[2]int]bool)
	var out [][2]int
	for _, f := range faces {
		n := len(f)
		for k := 0; k < n; k++ {
			a, b := f[k], f[(k+1)%n]
			key := [2]int{a, b}
			if a > b {
				key = [2]int{b, a}
			}
			if !seen[key] {
				seen[key] = true
				out = append(out, key)
			}
		}
	}
	return out
}

// refTopologies maps each ElemKind to its reference topology.
var refTopologies = map[ElemKind]refTopology{
	Triangle: {
		ndim: 2, nverts: 3,
		edges: [][2]int{{0, 1}, {1, 2}, {2, 0}},
	},
	Quadrilateral: {
		ndim: 2, nverts: 4,
		edges: [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
	},
	Tetrahedron: {
		ndim: 3, nverts: 4,
		faces: [][]int{
			{0, 1, 2},
			{0, 3, 1},
			{1, 3, 2},
			{2, 3, 0},
		},
	},
	Hexahedron: {
		ndim: 3, nverts: 8,
		faces: [][]int{
			{0, 1, 2, 3},
			{4, 7, 6, 5},
			{0, 4, 5, 1},
			{1, 5, 6, 2},
			{2, 6, 7, 3},
			{3, 7, 4, 0},
		},
	},
	Prism: {
		ndim: 3, nverts: 6,
		faces: [][]int{
			{0, 1, 2},
			{3, 5, 4},
			{0, 3, 4, 1},
			{1, 4, 5, 2},
			{2, 5, 3, 0},
		},
	},
	Pyramid: {
		ndim: 3, nverts: 5,
		faces: [][]int{
			{0, 1, 2, 3},
			{0, 4, 1},
			{1, 4, 2},
			{2, 4, 3},
			{3, 4, 0},
		},
	},
}

func init() {
	for k, t := range refTopologies {
		if t.ndim == 3 {
			t.edges = edgesFromFaces(t.faces)
			refTopologies[k] = t
		}
	}
}

// facesContaining returns the local faces (as vertex loops) that contain
// both local vertices a and b, ordered so that the face traversing a->b in
// its winding comes first. The dual-face normal built from (edge midpoint,
// first-face centroid, element centroid, second-face centroid) then always
// points from a to b; without this ordering the sign would depend on the
// face list order.
func (t refTopology) facesContaining(a, b int) [][]int {
	var out [][]int
	for _, f := range t.faces {
		hasA, hasB := false, false
		for _, v := range f {
			if v == a {
				hasA = true
			}
			if v == b {
				hasB = true
			}
		}
		if hasA && hasB {
			out = append(out, f)
		}
	}
	if len(out) == 2 && !windsThrough(out[0], a, b) {
		out[0], out[1] = out[1], out[0]
	}
	return out
}

// windsThrough reports whether the vertex loop visits a immediately before
// b.
func windsThrough(face []int, a, b int) bool {
	n := len(face)
	for k := 0; k < n; k++ {
		if face[k] == a && face[(k+1)%n] == b {
			return true
		}
	}
	return false
}
