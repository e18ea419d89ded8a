// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "math"

func vadd(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

func vsub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func vscale(a []float64, s float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] * s
	}
	return out
}

func vdot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func vnorm(a []float64) float64 {
	return math.Sqrt(vdot(a, a))
}

func centroid(pts [][]float64) []float64 {
	nd := len(pts[0])
	c := make([]float64, nd)
	for _, p := range pts {
		for i := 0; i < nd; i++ {
			c[i] += p[i]
		}
	}
	n := float64(len(pts))
	for i := 0; i < nd; i++ {
		c[i] /= n
	}
	return c
}

// rot90 rotates a 2D vector by +90 degrees: (x,y) -> (-y,x).
func rot90(v []float64) []float64 {
	return []float64{-v[1], v[0]}
}

// cross3 returns the 3D cross product a x b.
func cross3(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// triArea2Vec returns twice the signed area vector of the triangle (p0,p1,p2)
// in 3D, i.e. (p1-p0) x (p2-p0).
func triArea2Vec(p0, p1, p2 []float64) []float64 {
	return cross3(vsub(p1, p0), vsub(p2, p0))
}
