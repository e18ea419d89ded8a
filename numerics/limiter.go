// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import (
	"math"

	"github.com/nbatista0630/su2edu-go/geom"
	"github.com/nbatista0630/su2edu-go/state"
)

// LimiterKind selects the slope limiter applied to MUSCL reconstruction.
type LimiterKind int

const (
	LimiterNone LimiterKind = iota
	LimiterVenkat
	LimiterBarth
)

// venkatPhi is the smooth Venkatakrishnan function of the admissible jump
// d1 (to the neighborhood extremum) and the reconstructed jump d2, with
// eps2 the mesh-dependent smoothing threshold.
func venkatPhi(d1, d2, eps2 float64) float64 {
	num := (d1*d1+eps2)*d2 + 2*d2*d2*d1
	den := d2 * (d1*d1 + 2*d2*d2 + d1*d2 + eps2)
	if den == 0 {
		return 1
	}
	return num / den
}

// ComputeLimiters fills v.Limiter for every cell and variable. Gradients
// and neighborhood extrema must be current. K is the Venkatakrishnan
// coefficient; it is unused by Barth-Jespersen.
func ComputeLimiters(g *geom.Geometry, v *state.Variables, kind LimiterKind, K float64) {
	if kind == LimiterNone {
		parallelCells(v.NCells, func(c int) {
			for k := 0; k < v.NVar; k++ {
				v.Limiter[c][k] = 1
			}
		})
		return
	}
	nd := v.NDim
	parallelCells(v.NCells, func(c int) {
		h := math.Pow(g.Volume(c), 1/float64(nd))
		eps2 := 0.0
		if kind == LimiterVenkat {
			kh := K * h
			eps2 = kh * kh * kh
		}
		xi := g.Position(c)
		for k := 0; k < v.NVar; k++ {
			phi := 1.0
			for _, e := range g.EdgesOfCell(c) {
				ed := g.Edge(e)
				d2 := 0.0
				for d := 0; d < nd; d++ {
					d2 += v.GradV[c][k][d] * (ed.Midpoint[d] - xi[d])
				}
				if d2 == 0 {
					continue
				}
				var d1 float64
				if d2 > 0 {
					d1 = v.Vmax[c][k] - v.V[c][k]
				} else {
					d1 = v.Vmin[c][k] - v.V[c][k]
				}
				var p float64
				if kind == LimiterVenkat {
					p = venkatPhi(d1, d2, eps2)
				} else {
					p = math.Min(1, d1/d2)
				}
				if p < phi {
					phi = p
				}
			}
			if phi < 0 {
				phi = 0
			}
			v.Limiter[c][k] = phi
		}
	})
}

// Reconstruct extrapolates the primitive states of cells i and j to the
// face midpoint xf using the limited MUSCL slopes, writing into VL and VR.
// With muscl false the cell values are copied unchanged (first order).
func Reconstruct(g *geom.Geometry, v *state.Variables, i, j int, xf []float64, muscl bool, VL, VR []float64) {
	copy(VL, v.V[i])
	copy(VR, v.V[j])
	if !muscl {
		return
	}
	xi, xj := g.Position(i), g.Position(j)
	for k := 0; k < v.NVar; k++ {
		dl, dr := 0.0, 0.0
		for d := 0; d < v.NDim; d++ {
			dl += v.GradV[i][k][d] * (xf[d] - xi[d])
			dr += v.GradV[j][k][d] * (xf[d] - xj[d])
		}
		VL[k] += v.Limiter[i][k] * dl
		VR[k] += v.Limiter[j][k] * dr
	}
	// an aggressive reconstruction can undershoot density or pressure near
	// strong gradients; fall back to the cell values there
	nvar := v.NVar
	if VL[0] <= 0 || VL[nvar-1] <= 0 {
		copy(VL, v.V[i])
	}
	if VR[0] <= 0 || VR[nvar-1] <= 0 {
		copy(VR, v.V[j])
	}
}
