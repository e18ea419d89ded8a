// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

// NVar returns the number of conserved/gradient-tracked primitive variables
// for a given spatial dimension: density, ndim momentum/velocity components,
// and total energy/pressure: nVar=4 in 2D, 5 in 3D.
func NVar(ndim int) int { return ndim + 2 }

// PrimitivesFromConservative computes the gradient-tracked primitive vector
// V = [rho, u_1..u_ndim, p] from the conservative vector
// U = [rho, rho*u_1..rho*u_ndim, rho*E]. It is a pure function of U and the
// gas model.
func PrimitivesFromConservative(U []float64, gas GasModel, ndim int) (V []float64, ok bool) {
	n := NVar(ndim)
	V = make([]float64, n)
	rho := U[0]
	if rho <= 0 {
		return V, false
	}
	V[0] = rho
	ke := 0.0
	for d := 0; d < ndim; d++ {
		u := U[1+d] / rho
		V[1+d] = u
		ke += 0.5 * u * u
	}
	rhoE := U[n-1]
	p := (gas.Gamma - 1) * (rhoE - rho*ke)
	V[n-1] = p
	return V, p > 0
}

// ConservativeFromPrimitives computes U from V = [rho, u.., p]. It is the
// exact inverse of PrimitivesFromConservative for admissible states.
func ConservativeFromPrimitives(V []float64, gas GasModel, ndim int) []float64 {
	n := NVar(ndim)
	U := make([]float64, n)
	rho := V[0]
	U[0] = rho
	ke := 0.0
	for d := 0; d < ndim; d++ {
		u := V[1+d]
		U[1+d] = rho * u
		ke += 0.5 * u * u
	}
	p := V[n-1]
	U[n-1] = p/(gas.Gamma-1) + rho*ke
	return U
}

// Temperature returns T = p/(rho*R) for a primitive vector V.
func Temperature(V []float64, gas GasModel) float64 {
	n := len(V)
	rho, p := V[0], V[n-1]
	return p / (rho * gas.Rgas)
}

// Enthalpy returns the specific total enthalpy H = (rhoE + p)/rho, computed
// from the conservative vector and pressure.
func Enthalpy(U []float64, p float64) float64 {
	rho := U[0]
	rhoE := U[len(U)-1]
	return (rhoE + p) / rho
}
