// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import (
	"math"

	"github.com/nbatista0630/su2edu-go/state"
)

// ViscousFace carries the inputs of the viscous flux at one dual face:
// cell-centered primitives and gradients on both sides, the geometric edge
// vector, and the transport coefficients.
type ViscousFace struct {
	Normal []float64 // area-scaled

	Vi, Vj     []float64   // primitives of the two cells
	Ti, Tj     float64     // temperatures
	GradI      [][]float64 // [var][dim] primitive gradients, vars = [rho, u.., p]
	GradJ      [][]float64
	GradTi     []float64 // temperature gradient of cell i
	GradTj     []float64
	Xi, Xj     []float64 // cell positions
	MuLam      float64   // face-averaged laminar viscosity
	MuTurb     float64   // face-averaged eddy viscosity
}

// faceGradient averages the two cell gradients and applies the
// edge-direction correction: the component of the averaged gradient along
// the edge is replaced by the two-point difference, which suppresses the
// odd-even decoupling a plain average allows.
func faceGradient(gi, gj []float64, vi, vj float64, tHat []float64, dist float64, out []float64) {
	nd := len(tHat)
	proj := 0.0
	for d := 0; d < nd; d++ {
		out[d] = 0.5 * (gi[d] + gj[d])
		proj += out[d] * tHat[d]
	}
	corr := proj - (vj-vi)/dist
	for d := 0; d < nd; d++ {
		out[d] -= corr * tHat[d]
	}
}

// ViscousFlux computes the viscous flux through the face, to be subtracted
// from the convective residual of cell i and added to cell j's. The stress
// tensor uses the Stokes hypothesis; the heat flux uses the composite
// laminar/turbulent conductivity mu*cp/Pr + mut*cp/Prt.
func ViscousFlux(f *ViscousFace, gas state.GasModel, ndim int, F []float64) {
	nvar := ndim + 2
	area, unit := unitNormal(f.Normal)

	tHat := make([]float64, ndim)
	dist := 0.0
	for d := 0; d < ndim; d++ {
		tHat[d] = f.Xj[d] - f.Xi[d]
		dist += tHat[d] * tHat[d]
	}
	dist = math.Sqrt(dist)
	for d := 0; d < ndim; d++ {
		tHat[d] /= dist
	}

	// corrected face gradients of the velocity components and temperature
	gradU := make([][]float64, ndim)
	for k := 0; k < ndim; k++ {
		gradU[k] = make([]float64, ndim)
		faceGradient(f.GradI[1+k], f.GradJ[1+k], f.Vi[1+k], f.Vj[1+k], tHat, dist, gradU[k])
	}
	gradT := make([]float64, ndim)
	faceGradient(f.GradTi, f.GradTj, f.Ti, f.Tj, tHat, dist, gradT)

	muTot := f.MuLam + f.MuTurb
	div := 0.0
	for d := 0; d < ndim; d++ {
		div += gradU[d][d]
	}

	// tau_kd = mu (du_k/dx_d + du_d/dx_k) - 2/3 mu div(u) delta_kd
	tau := make([][]float64, ndim)
	for k := 0; k < ndim; k++ {
		tau[k] = make([]float64, ndim)
		for d := 0; d < ndim; d++ {
			tau[k][d] = muTot * (gradU[k][d] + gradU[d][k])
			if k == d {
				tau[k][d] -= 2.0 / 3.0 * muTot * div
			}
		}
	}

	cp := gas.Cp()
	kTot := cp * (f.MuLam/gas.PrLam + f.MuTurb/gas.PrTurb)

	uf := make([]float64, ndim)
	for d := 0; d < ndim; d++ {
		uf[d] = 0.5 * (f.Vi[1+d] + f.Vj[1+d])
	}

	F[0] = 0
	for k := 0; k < ndim; k++ {
		s := 0.0
		for d := 0; d < ndim; d++ {
			s += tau[k][d] * unit[d]
		}
		F[1+k] = area * s
	}
	e := 0.0
	for k := 0; k < ndim; k++ {
		for d := 0; d < ndim; d++ {
			e += uf[k] * tau[k][d] * unit[d]
		}
	}
	qn := 0.0
	for d := 0; d < ndim; d++ {
		qn += kTot * gradT[d] * unit[d]
	}
	F[nvar-1] = area * (e + qn)
}

// ViscousJacobian writes the thin-shear-layer approximation of the viscous
// flux derivatives into Ji and Jj: only the dominant edge-normal diffusion
// of velocity and temperature is retained, which keeps the implicit
// left-hand side diagonally dominant without the cost of the full tensor
// derivative. The convention matches ViscousFlux's sign (flux added to cell
// j's residual, subtracted from i's is handled by the caller).
func ViscousJacobian(f *ViscousFace, gas state.GasModel, ndim int, Ji, Jj []float64) {
	nvar := ndim + 2
	area, _ := unitNormal(f.Normal)
	dist := 0.0
	for d := 0; d < ndim; d++ {
		dx := f.Xj[d] - f.Xi[d]
		dist += dx * dx
	}
	dist = math.Sqrt(dist)

	muTot := f.MuLam + f.MuTurb
	cp := gas.Cp()
	cv := cp / gas.Gamma
	kTot := cp * (f.MuLam/gas.PrLam + f.MuTurb/gas.PrTurb)

	thetaM := muTot * area / dist
	thetaE := kTot * area / dist

	fill := func(J, V []float64, T float64, sign float64) {
		rho := V[0]
		ke := 0.0
		for d := 0; d < ndim; d++ {
			ke += 0.5 * V[1+d] * V[1+d]
		}
		for i := 0; i < nvar*nvar; i++ {
			J[i] = 0
		}
		// momentum rows: d(theta * u_k)/dU
		for k := 0; k < ndim; k++ {
			J[(1+k)*nvar+0] = sign * thetaM * (-V[1+k] / rho)
			J[(1+k)*nvar+1+k] = sign * thetaM / rho
		}
		// energy row: d(theta_e * T)/dU, T = (E - ke)/cv
		Et := T*cv + ke
		J[(nvar-1)*nvar+0] = sign * thetaE * (ke - Et + ke) / (rho * cv)
		for d := 0; d < ndim; d++ {
			J[(nvar-1)*nvar+1+d] = sign * thetaE * (-V[1+d] / (rho * cv))
		}
		J[(nvar-1)*nvar+nvar-1] = sign * thetaE / (rho * cv)
	}

	fill(Jj, f.Vj, f.Tj, 1)
	fill(Ji, f.Vi, f.Ti, -1)
}
