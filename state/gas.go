// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package state holds per-cell solution variables: the conservative vector,
// its cached primitive view, reconstructed gradients and limiters, per-cell
// time steps and spectral radii, and the turbulence closure's own state.
// Conservatives are the canonical state; primitives are always a derived,
// recomputed view.
package state

import "math"

// GasModel is the equation of state and transport-property closure: a
// calorically perfect gas with Sutherland's law for laminar viscosity.
type GasModel struct {
	Gamma  float64 // ratio of specific heats
	Rgas   float64 // specific gas constant
	PrLam  float64 // laminar Prandtl number
	PrTurb float64 // turbulent Prandtl number

	// Sutherland's law constants: mu(T) = Mu0 * (T0+S)/(T+S) * (T/T0)^1.5
	SuthMu0 float64
	SuthT0  float64
	SuthS   float64
}

// DefaultAirGasModel returns Sutherland-law air at standard reference
// conditions.
func DefaultAirGasModel() GasModel {
	return GasModel{
		Gamma:   1.4,
		Rgas:    287.05,
		PrLam:   0.72,
		PrTurb:  0.9,
		SuthMu0: 1.716e-5,
		SuthT0:  273.15,
		SuthS:   110.4,
	}
}

// Cp returns the specific heat at constant pressure, gamma*R/(gamma-1).
func (g GasModel) Cp() float64 {
	return g.Gamma * g.Rgas / (g.Gamma - 1)
}

// ViscosityLaminar evaluates Sutherland's law at temperature T (Kelvin).
func (g GasModel) ViscosityLaminar(T float64) float64 {
	return g.SuthMu0 * (g.SuthT0 + g.SuthS) / (T + g.SuthS) * math.Pow(T/g.SuthT0, 1.5)
}

// SoundSpeed returns sqrt(gamma*R*T).
func (g GasModel) SoundSpeed(T float64) float64 {
	return math.Sqrt(g.Gamma * g.Rgas * T)
}
