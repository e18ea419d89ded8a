// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/nbatista0630/su2edu-go/numerics"
)

// minEdgesParallel keeps the edge loop single-threaded on small meshes.
const minEdgesParallel = 2048

// AssembleResidual zeroes the residual (and Jacobian when implicit) and
// accumulates the convective and viscous contributions of every interior
// edge plus the boundary fluxes. Gradients and limiters must be current
// (PrepareGradients).
func (o *MeanSolver) AssembleResidual(implicit bool) error {
	for i := range o.Res {
		o.Res[i] = 0
	}
	if implicit && o.Mat != nil {
		o.Mat.Zero()
	}

	parallel := o.Geo.EdgeCount() >= minEdgesParallel && runtime.GOMAXPROCS(0) > 1
	for _, group := range o.edgeColors {
		if !parallel {
			o.assembleEdges(group, implicit)
			continue
		}
		workers := runtime.GOMAXPROCS(0)
		chunk := (len(group) + workers - 1) / workers
		g, _ := errgroup.WithContext(context.Background())
		for start := 0; start < len(group); start += chunk {
			end := start + chunk
			if end > len(group) {
				end = len(group)
			}
			sub := group[start:end]
			g.Go(func() error {
				o.assembleEdges(sub, implicit)
				return nil
			})
		}
		_ = g.Wait()
	}

	return o.applyBoundary(implicit)
}

// assembleEdges processes a set of edges with disjoint cell footprints.
func (o *MeanSolver) assembleEdges(edges []int, implicit bool) {
	nvar := o.nvar
	v := o.Vars
	F := make([]float64, nvar)
	JL := make([]float64, nvar*nvar)
	JR := make([]float64, nvar*nvar)
	VL := make([]float64, nvar)
	VR := make([]float64, nvar)
	face := numerics.Face{}
	viscous := o.Cfg.Viscous()
	useJST := o.Scheme.Name() == "jst"
	muscl := o.Cfg.Num.MUSCL && !useJST

	for _, e := range edges {
		ed := o.Geo.Edge(e)
		i, j := ed.I, ed.J

		numerics.Reconstruct(o.Geo, v, i, j, ed.Midpoint, muscl, VL, VR)
		face.Normal = ed.Normal
		face.VL, face.VR = VL, VR
		if useJST {
			face.SensL, face.SensR = v.Undiv2[i], v.Undiv2[j]
			face.LapUL, face.LapUR = v.LapU[i], v.LapU[j]
			face.DegL, face.DegR = len(o.Geo.EdgesOfCell(i)), len(o.Geo.EdgesOfCell(j))
		}

		o.Scheme.Flux(&face, F)
		for k := 0; k < nvar; k++ {
			o.Res[i*nvar+k] += F[k]
			o.Res[j*nvar+k] -= F[k]
		}
		if implicit {
			o.Scheme.Jacobian(&face, JL, JR)
			o.Mat.AddAt(i, i, JL)
			o.Mat.AddAt(i, j, JR)
			scaleNeg(JL)
			scaleNeg(JR)
			o.Mat.AddAt(j, i, JL)
			o.Mat.AddAt(j, j, JR)
		}

		if viscous {
			o.assembleViscousEdge(i, j, ed.Normal, F, JL, JR, implicit)
		}
	}
}

// assembleViscousEdge adds the viscous flux of one edge. The viscous flux
// acts with the opposite sign of the convective residual convention: it
// relaxes gradients instead of transporting them.
func (o *MeanSolver) assembleViscousEdge(i, j int, normal, F, JI, JJ []float64, implicit bool) {
	nvar := o.nvar
	v := o.Vars
	vf := numerics.ViscousFace{
		Normal: normal,
		Vi:     v.V[i], Vj: v.V[j],
		Ti: v.Temperature[i], Tj: v.Temperature[j],
		GradI: v.GradV[i], GradJ: v.GradV[j],
		GradTi: o.temperatureGradient(i),
		GradTj: o.temperatureGradient(j),
		Xi:     o.Geo.Position(i), Xj: o.Geo.Position(j),
		MuLam:  0.5 * (v.MuLaminar[i] + v.MuLaminar[j]),
		MuTurb: 0.5 * (v.MuTurb[i] + v.MuTurb[j]),
	}
	numerics.ViscousFlux(&vf, o.Gas, o.ndim, F)
	for k := 0; k < nvar; k++ {
		o.Res[i*nvar+k] -= F[k]
		o.Res[j*nvar+k] += F[k]
	}
	if implicit {
		numerics.ViscousJacobian(&vf, o.Gas, o.ndim, JI, JJ)
		// R_i -= Fv: d/dU_i = -JI, d/dU_j = -JJ; R_j += Fv mirrors it
		o.Mat.AddAt(j, i, JI)
		o.Mat.AddAt(j, j, JJ)
		scaleNeg(JI)
		scaleNeg(JJ)
		o.Mat.AddAt(i, i, JI)
		o.Mat.AddAt(i, j, JJ)
	}
}

// temperatureGradient derives grad T from the primitive gradients using
// T = p/(rho R): grad T = (grad p - T grad rho) / (rho R).
func (o *MeanSolver) temperatureGradient(c int) []float64 {
	v := o.Vars
	nvar := o.nvar
	rho := v.V[c][0]
	T := v.Temperature[c]
	out := make([]float64, o.ndim)
	for d := 0; d < o.ndim; d++ {
		out[d] = (v.GradV[c][nvar-1][d] - T*v.GradV[c][0][d]) / (rho * o.Gas.Rgas)
	}
	return out
}

func scaleNeg(J []float64) {
	for i := range J {
		J[i] = -J[i]
	}
}

// ComputeTimeSteps fills the per-cell local time step
// dt_c = CFL * vol_c / (lambda_conv + C * lambda_visc).
func (o *MeanSolver) ComputeTimeSteps(cfl float64) {
	v := o.Vars
	for c := range v.Dt {
		v.LambdaInv[c] = 0
		v.LambdaVis[c] = 0
	}
	viscous := o.Cfg.Viscous()
	for e := 0; e < o.Geo.EdgeCount(); e++ {
		ed := o.Geo.Edge(e)
		for _, c := range []int{ed.I, ed.J} {
			v.LambdaInv[c] += numerics.SpectralRadiusConv(v.V[c], ed.Normal, o.Gas, o.ndim)
			if viscous {
				mu := v.MuLaminar[c] + v.MuTurb[c]
				v.LambdaVis[c] += numerics.SpectralRadiusVisc(v.V[c][0], mu, ed.Normal, o.ndim)
			}
		}
	}
	for _, bf := range o.Geo.BoundaryFaces() {
		c := bf.Cell
		v.LambdaInv[c] += numerics.SpectralRadiusConv(v.V[c], bf.Normal, o.Gas, o.ndim)
		if viscous {
			mu := v.MuLaminar[c] + v.MuTurb[c]
			v.LambdaVis[c] += numerics.SpectralRadiusVisc(v.V[c][0], mu, bf.Normal, o.ndim)
		}
	}
	for c := range v.Dt {
		vol := o.Geo.Volume(c)
		den := v.LambdaInv[c] + 4*v.LambdaVis[c]/vol
		if den < 1e-300 {
			den = 1e-300
		}
		v.Dt[c] = cfl * vol / den
	}
}
