// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/nbatista0630/su2edu-go/config"
	"github.com/nbatista0630/su2edu-go/numerics"
	"github.com/nbatista0630/su2edu-go/state"
)

// assemble builds the turbulence residual and Jacobian: first-order upwind
// convection on the face-averaged normal velocity, two-point diffusion, and
// the model source terms on the cell diagonal.
func (o *TurbSolver) assemble() {
	for i := range o.Res {
		o.Res[i] = 0
	}
	o.Mat.Zero()

	v := o.Mean.Vars
	nvar := o.nvar
	jbuf := make([]float64, nvar*nvar)

	addJ := func(row, col int, entries []float64) {
		o.Mat.AddAt(row, col, entries)
	}

	for e := 0; e < o.Geo.EdgeCount(); e++ {
		ed := o.Geo.Edge(e)
		i, j := ed.I, ed.J
		area, unit := normalSplit(ed.Normal)

		vnf := 0.0
		for d := 0; d < o.ndim; d++ {
			vnf += 0.5 * (v.V[i][1+d] + v.V[j][1+d]) * unit[d]
		}
		vnf *= area

		xi, xj := o.Geo.Position(i), o.Geo.Position(j)
		dist := 0.0
		for d := 0; d < o.ndim; d++ {
			dx := xj[d] - xi[d]
			dist += dx * dx
		}
		dist = math.Sqrt(dist)

		rhoF := 0.5 * (v.V[i][0] + v.V[j][0])
		muF := 0.5 * (v.MuLaminar[i] + v.MuLaminar[j])
		mutF := 0.5 * (v.MuTurb[i] + v.MuTurb[j])

		for k := 0; k < nvar; k++ {
			ti, tj := o.TS.T[i][k], o.TS.T[j][k]

			// upwind convection
			fc, dfI, dfJ := numerics.SAConvFlux(vnf, ti, tj)

			// diffusion coefficient by model and variable
			var coef float64
			switch o.TS.Model {
			case state.TurbSA:
				nuF := muF / rhoF
				ntF := 0.5 * (ti + tj)
				fv, _, dvJ := numerics.SAViscFlux(nuF, ntF, ti, tj, area, dist)
				coef = dvJ
				fc -= fv
			case state.TurbSST:
				f1 := 0.5 * (o.TS.F1[i] + o.TS.F1[j])
				dk, dw := numerics.SSTDiffusivity(muF, mutF, f1)
				if k == 0 {
					coef = dk / rhoF * area / dist
				} else {
					coef = dw / rhoF * area / dist
				}
				fc -= coef * (tj - ti)
			}

			o.Res[i*nvar+k] += fc
			o.Res[j*nvar+k] -= fc

			// Jacobian entries of the k-th scalar: convection + diffusion
			dI := dfI + coef
			dJ := dfJ - coef
			zeroBlock(jbuf)
			jbuf[k*nvar+k] = dI
			addJ(i, i, jbuf)
			zeroBlock(jbuf)
			jbuf[k*nvar+k] = dJ
			addJ(i, j, jbuf)
			zeroBlock(jbuf)
			jbuf[k*nvar+k] = -dI
			addJ(j, i, jbuf)
			zeroBlock(jbuf)
			jbuf[k*nvar+k] = -dJ
			addJ(j, j, jbuf)
		}
	}

	o.assembleSources()
	o.applyTurbBoundary()
}

func zeroBlock(b []float64) {
	for i := range b {
		b[i] = 0
	}
}

// assembleSources subtracts the volumetric sources from the residual and
// adds their (stabilizing) diagonal to the Jacobian.
func (o *TurbSolver) assembleSources() {
	v := o.Mean.Vars
	nvar := o.nvar
	for c := 0; c < o.Geo.CellCount(); c++ {
		vol := o.Geo.Volume(c)
		rho := v.V[c][0]
		diag := o.Mat.DiagBlock(c)
		switch o.TS.Model {
		case state.TurbSA:
			src, dS := numerics.SASource(numerics.SASourceIn{
				NuTilde:   o.TS.T[c][0],
				NuLam:     v.MuLaminar[c] / rho,
				WallDist:  o.Geo.WallDistance(c),
				Vorticity: numerics.VorticityMagnitude(velocityGradient(v, c, o.ndim), o.ndim),
				GradNu:    o.TS.GradT[c][0],
			})
			o.Res[c*nvar] -= src * vol
			diag[0] -= dS * vol
		case state.TurbSST:
			strain := numerics.StrainMagnitude(velocityGradient(v, c, o.ndim), o.ndim)
			_, _, cdkw := numerics.SSTBlending(numerics.SSTBlendingIn{
				K: o.TS.T[c][0], Omega: o.TS.T[c][1],
				Rho: rho, MuLam: v.MuLaminar[c],
				WallDist:  o.Geo.WallDistance(c),
				GradK:     o.TS.GradT[c][0],
				GradOmega: o.TS.GradT[c][1],
			})
			src, dS := numerics.SSTSource(numerics.SSTSourceIn{
				K: o.TS.T[c][0], Omega: o.TS.T[c][1],
				Rho: rho, MuTurb: v.MuTurb[c],
				StrainMag: strain,
				F1:        o.TS.F1[c],
				CDkw:      cdkw,
			})
			// the transported variables are specific (k, omega); the model
			// sources are per unit rho-volume
			o.Res[c*nvar+0] -= src[0] / rho * vol
			o.Res[c*nvar+1] -= src[1] / rho * vol
			diag[0] -= dS[0] / rho * vol
			diag[nvar+1] -= dS[1] / rho * vol
		}
	}
}

// applyTurbBoundary adds the boundary contributions: walls drive the
// variables to their wall values by two-point diffusion; inflow boundaries
// convect the freestream levels in; outflow extrapolates.
func (o *TurbSolver) applyTurbBoundary() {
	v := o.Mean.Vars
	nvar := o.nvar
	for _, marker := range o.Geo.Markers() {
		bc := o.Cfg.BCs[marker]
		if bc == nil {
			continue
		}
		wall := bc.Kind == config.BCWallHeatflux || bc.Kind == config.BCWallIsothermal
		for _, bf := range o.Geo.BoundaryFacesByMarker(marker) {
			c := bf.Cell
			area, unit := normalSplit(bf.Normal)
			diag := o.Mat.DiagBlock(c)

			if wall {
				x := o.Geo.Position(c)
				dist := 0.0
				for d := 0; d < o.ndim; d++ {
					dist += (bf.Midpoint[d] - x[d]) * unit[d]
				}
				dist = math.Abs(dist)
				if dist < 1e-12 {
					dist = 1e-12
				}
				rho := v.V[c][0]
				nu := v.MuLaminar[c] / rho
				switch o.TS.Model {
				case state.TurbSA:
					// nuTilde(wall) = 0
					coef := nu / (2.0 / 3.0) * area / dist
					o.Res[c*nvar] += coef * o.TS.T[c][0]
					diag[0] += coef
				case state.TurbSST:
					// k(wall) = 0; omega(wall) from Menter's smooth-wall value
					coefK := nu * area / dist
					o.Res[c*nvar] += coefK * o.TS.T[c][0]
					diag[0] += coefK
					wOmega := 60 * nu / (0.075 * dist * dist)
					coefW := nu * area / dist
					o.Res[c*nvar+1] += coefW * (o.TS.T[c][1] - wOmega)
					diag[nvar+1] += coefW
				}
				continue
			}

			// far boundaries: upwind against the freestream levels
			vn := 0.0
			for d := 0; d < o.ndim; d++ {
				vn += v.V[c][1+d] * unit[d]
			}
			vn *= area
			for k := 0; k < nvar; k++ {
				free := o.freestreamValue(c, k)
				f, dI, _ := numerics.SAConvFlux(vn, o.TS.T[c][k], free)
				o.Res[c*nvar+k] += f
				diag[k*nvar+k] += dI
			}
		}
	}
}

// freestreamValue returns the far-field level of turbulence variable k.
func (o *TurbSolver) freestreamValue(c, k int) float64 {
	v := o.Mean.Vars
	rho := v.V[c][0]
	switch o.TS.Model {
	case state.TurbSA:
		return 3 * v.MuLaminar[c] / rho
	case state.TurbSST:
		if k == 0 {
			vinf2 := 0.0
			for d := 0; d < o.ndim; d++ {
				vinf2 += o.Mean.Freestream[1+d] * o.Mean.Freestream[1+d]
			}
			return math.Max(1.5*1e-4*vinf2, 1e-10)
		}
		kfree := o.freestreamValue(c, 0)
		return rho * kfree / (10 * v.MuLaminar[c])
	}
	return 0
}
