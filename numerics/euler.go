// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import (
	"math"

	"github.com/nbatista0630/su2edu-go/state"
)

// unitNormal splits an area-scaled normal into its magnitude and direction.
func unitNormal(n []float64) (area float64, unit []float64) {
	s := 0.0
	for _, v := range n {
		s += v * v
	}
	area = math.Sqrt(s)
	unit = make([]float64, len(n))
	if area > 0 {
		for i, v := range n {
			unit[i] = v / area
		}
	}
	return
}

// projVel returns the velocity of primitive state V projected on the unit
// normal.
func projVel(V, unit []float64, ndim int) float64 {
	vn := 0.0
	for d := 0; d < ndim; d++ {
		vn += V[1+d] * unit[d]
	}
	return vn
}

// EulerFlux writes the physical convective flux of primitive state V through
// an area-scaled normal n into F: F = area * [rho vn, rho vn u + p n^, rho vn H].
func EulerFlux(V, n []float64, gas state.GasModel, ndim int, F []float64) {
	area, unit := unitNormal(n)
	nvar := ndim + 2
	rho := V[0]
	p := V[nvar-1]
	vn := projVel(V, unit, ndim)
	ke := 0.0
	for d := 0; d < ndim; d++ {
		ke += 0.5 * V[1+d] * V[1+d]
	}
	rhoE := p/(gas.Gamma-1) + rho*ke
	H := (rhoE + p) / rho
	F[0] = area * rho * vn
	for d := 0; d < ndim; d++ {
		F[1+d] = area * (rho*vn*V[1+d] + p*unit[d])
	}
	F[nvar-1] = area * rho * vn * H
}

// EulerJacobian writes dF/dU of the physical convective flux (projected on
// the area-scaled normal n) into J, row-major nVar x nVar, for the primitive
// state V.
func EulerJacobian(V, n []float64, gas state.GasModel, ndim int, J []float64) {
	area, unit := unitNormal(n)
	nvar := ndim + 2
	g1 := gas.Gamma - 1
	vn := projVel(V, unit, ndim)
	ke := 0.0
	for d := 0; d < ndim; d++ {
		ke += 0.5 * V[1+d] * V[1+d]
	}
	rho := V[0]
	p := V[nvar-1]
	rhoE := p/g1 + rho*ke
	H := (rhoE + p) / rho

	// mass row
	J[0*nvar+0] = 0
	for d := 0; d < ndim; d++ {
		J[0*nvar+1+d] = unit[d]
	}
	J[0*nvar+nvar-1] = 0

	// momentum rows
	for r := 0; r < ndim; r++ {
		ur := V[1+r]
		J[(1+r)*nvar+0] = g1*ke*unit[r] - ur*vn
		for c := 0; c < ndim; c++ {
			v := ur*unit[c] - g1*V[1+c]*unit[r]
			if r == c {
				v += vn
			}
			J[(1+r)*nvar+1+c] = v
		}
		J[(1+r)*nvar+nvar-1] = g1 * unit[r]
	}

	// energy row
	J[(nvar-1)*nvar+0] = vn * (g1*ke - H)
	for c := 0; c < ndim; c++ {
		J[(nvar-1)*nvar+1+c] = H*unit[c] - g1*V[1+c]*vn
	}
	J[(nvar-1)*nvar+nvar-1] = gas.Gamma * vn

	for i := range J[:nvar*nvar] {
		J[i] *= area
	}
}

// SpectralRadiusConv returns the inviscid spectral radius |vn| + c of state
// V across an area-scaled normal (scaled by the face area).
func SpectralRadiusConv(V, n []float64, gas state.GasModel, ndim int) float64 {
	area, unit := unitNormal(n)
	vn := projVel(V, unit, ndim)
	nvar := ndim + 2
	c := math.Sqrt(gas.Gamma * V[nvar-1] / V[0])
	return area * (math.Abs(vn) + c)
}

// SpectralRadiusVisc returns the viscous spectral radius contribution of a
// face: (mu/rho) * area^2 scaling, later divided by the volume when the time
// step is formed.
func SpectralRadiusVisc(rho, muTot float64, n []float64, ndim int) float64 {
	area, _ := unitNormal(n)
	return muTot / rho * area * area
}
