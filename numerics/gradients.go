// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/nbatista0630/su2edu-go/geom"
	"github.com/nbatista0630/su2edu-go/state"
)

// minCellsPerWorker keeps the cell loops single-threaded on small meshes,
// where goroutine overhead exceeds the arithmetic.
const minCellsPerWorker = 1024

// parallelCells runs fn(c) over every cell, split across a bounded worker
// pool. fn must only write cell-local data.
func parallelCells(ncells int, fn func(c int)) {
	workers := runtime.GOMAXPROCS(0)
	if ncells < minCellsPerWorker || workers <= 1 {
		for c := 0; c < ncells; c++ {
			fn(c)
		}
		return
	}
	chunk := (ncells + workers - 1) / workers
	g, _ := errgroup.WithContext(context.Background())
	for start := 0; start < ncells; start += chunk {
		end := start + chunk
		if end > ncells {
			end = ncells
		}
		start, end := start, end
		g.Go(func() error {
			for c := start; c < end; c++ {
				fn(c)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// GreenGaussGradients fills v.GradV with the area-weighted face-average
// gradient: grad_i = (1/vol_i) * sum_faces Vbar_f * n_f, including the
// boundary faces closing each dual volume with the cell's own value.
func GreenGaussGradients(g *geom.Geometry, v *state.Variables) {
	v.ZeroGradients()
	parallelCells(v.NCells, func(c int) {
		grad := v.GradV[c]
		for _, e := range g.EdgesOfCell(c) {
			ed := g.Edge(e)
			other := ed.J
			sign := 1.0
			if c == ed.J {
				other = ed.I
				sign = -1.0
			}
			for k := 0; k < v.NVar; k++ {
				avg := 0.5 * (v.V[c][k] + v.V[other][k])
				for d := 0; d < v.NDim; d++ {
					grad[k][d] += sign * avg * ed.Normal[d]
				}
			}
		}
		vol := g.Volume(c)
		for k := 0; k < v.NVar; k++ {
			for d := 0; d < v.NDim; d++ {
				grad[k][d] /= vol
			}
		}
	})
	addBoundaryClosure(g, v)
	computeExtrema(g, v)
}

// addBoundaryClosure adds the boundary-face terms of the Green-Gauss sum,
// using the owning cell's value on the face.
func addBoundaryClosure(g *geom.Geometry, v *state.Variables) {
	for _, bf := range g.BoundaryFaces() {
		c := bf.Cell
		vol := g.Volume(c)
		for k := 0; k < v.NVar; k++ {
			for d := 0; d < v.NDim; d++ {
				v.GradV[c][k][d] += v.V[c][k] * bf.Normal[d] / vol
			}
		}
	}
}

// LeastSquaresGradients fills v.GradV with inverse-distance-weighted
// least-squares gradients over each cell's edge neighborhood. On a linear
// field the result is exact regardless of mesh distortion.
func LeastSquaresGradients(g *geom.Geometry, v *state.Variables) {
	v.ZeroGradients()
	nd := v.NDim
	parallelCells(v.NCells, func(c int) {
		xi := g.Position(c)
		A := mat.NewSymDense(nd, nil)
		rhs := make([]*mat.VecDense, v.NVar)
		for k := range rhs {
			rhs[k] = mat.NewVecDense(nd, nil)
		}
		for _, e := range g.EdgesOfCell(c) {
			ed := g.Edge(e)
			other := ed.J
			if c == ed.J {
				other = ed.I
			}
			xj := g.Position(other)
			dx := make([]float64, nd)
			dist2 := 0.0
			for d := 0; d < nd; d++ {
				dx[d] = xj[d] - xi[d]
				dist2 += dx[d] * dx[d]
			}
			w := 1 / dist2
			for r := 0; r < nd; r++ {
				for s := r; s < nd; s++ {
					A.SetSym(r, s, A.At(r, s)+w*dx[r]*dx[s])
				}
			}
			for k := 0; k < v.NVar; k++ {
				dv := v.V[other][k] - v.V[c][k]
				for d := 0; d < nd; d++ {
					rhs[k].SetVec(d, rhs[k].AtVec(d)+w*dx[d]*dv)
				}
			}
		}
		var chol mat.Cholesky
		if !chol.Factorize(A) {
			// degenerate neighborhood (e.g. all neighbors collinear); fall
			// back to zero gradient, which is first-order but safe
			return
		}
		var sol mat.VecDense
		for k := 0; k < v.NVar; k++ {
			if err := chol.SolveVecTo(&sol, rhs[k]); err != nil {
				continue
			}
			for d := 0; d < nd; d++ {
				v.GradV[c][k][d] = sol.AtVec(d)
			}
		}
	})
	computeExtrema(g, v)
}

// computeExtrema fills Vmin/Vmax with each cell's edge-neighborhood extrema
// (including the cell itself), consumed by the limiters.
func computeExtrema(g *geom.Geometry, v *state.Variables) {
	parallelCells(v.NCells, func(c int) {
		for k := 0; k < v.NVar; k++ {
			v.Vmin[c][k] = v.V[c][k]
			v.Vmax[c][k] = v.V[c][k]
		}
		for _, e := range g.EdgesOfCell(c) {
			ed := g.Edge(e)
			other := ed.J
			if c == ed.J {
				other = ed.I
			}
			for k := 0; k < v.NVar; k++ {
				val := v.V[other][k]
				if val < v.Vmin[c][k] {
					v.Vmin[c][k] = val
				}
				if val > v.Vmax[c][k] {
					v.Vmax[c][k] = val
				}
			}
		}
	})
}

// PressureSensorAndLaplacian fills v.Undiv2 with the normalized pressure
// sensor s_i = |sum_j (p_j - p_i)| / sum_j (p_j + p_i) and v.LapU with the
// undivided Laplacian of the conservative state, both over the edge
// neighborhood. The JST dissipation consumes them through the Face.
func PressureSensorAndLaplacian(g *geom.Geometry, v *state.Variables) {
	ip := v.NVar - 1
	parallelCells(v.NCells, func(c int) {
		num, den := 0.0, 0.0
		for k := 0; k < v.NVar; k++ {
			v.LapU[c][k] = 0
		}
		for _, e := range g.EdgesOfCell(c) {
			ed := g.Edge(e)
			other := ed.J
			if c == ed.J {
				other = ed.I
			}
			num += v.V[other][ip] - v.V[c][ip]
			den += v.V[other][ip] + v.V[c][ip]
			for k := 0; k < v.NVar; k++ {
				v.LapU[c][k] += v.U[other][k] - v.U[c][k]
			}
		}
		if den <= 0 {
			v.Undiv2[c] = 0
			return
		}
		if num < 0 {
			num = -num
		}
		v.Undiv2[c] = num / den
	})
}
