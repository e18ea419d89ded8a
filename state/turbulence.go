// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

// TurbModel selects the turbulence closure, per the `turbulence` config key.
type TurbModel int

const (
	TurbNone TurbModel = iota
	TurbSA             // Spalart-Allmaras, 1 equation
	TurbSST            // Menter SST, 2 equations
)

// NVar returns the number of turbulence equations for the model.
func (m TurbModel) NVar() int {
	switch m {
	case TurbSA:
		return 1
	case TurbSST:
		return 2
	}
	return 0
}

// TurbulenceState holds the per-cell turbulence closure variables:
// one or two transported variables, their gradients, the derived eddy
// viscosity, and (SST only) the blending functions F1, F2.
type TurbulenceState struct {
	Model  TurbModel
	NDim   int
	NVar   int
	NCells int

	T     [][]float64   // turbulence variables, [cell][var]
	GradT [][][]float64 // [cell][var][dim]
	TOld  [][]float64

	F1, F2 []float64 // SST blending functions, nil unless Model==TurbSST
}

// NewTurbulenceState allocates turbulence state for the given model.
func NewTurbulenceState(model TurbModel, ndim, ncells int) *TurbulenceState {
	nv := model.NVar()
	t := &TurbulenceState{Model: model, NDim: ndim, NVar: nv, NCells: ncells}
	if nv == 0 {
		return t
	}
	alloc := func() [][]float64 {
		s := make([][]float64, ncells)
		for i := range s {
			s[i] = make([]float64, nv)
		}
		return s
	}
	t.T = alloc()
	t.TOld = alloc()
	t.GradT = make([][][]float64, ncells)
	for i := range t.GradT {
		g := make([][]float64, nv)
		for k := range g {
			g[k] = make([]float64, ndim)
		}
		t.GradT[i] = g
	}
	if model == TurbSST {
		t.F1 = make([]float64, ncells)
		t.F2 = make([]float64, ncells)
	}
	return t
}

// SaveOld copies T into TOld.
func (t *TurbulenceState) SaveOld() {
	for c := 0; c < t.NCells; c++ {
		copy(t.TOld[c], t.T[c])
	}
}

// EddyViscosity computes mu_t for a single cell given the model-specific
// transported variable(s), the laminar viscosity, and density. For SA, the
// usual near-wall damping function fv1 is applied; for SST,
// mu_t = rho*k/omega with Menter's realizability limiter applied upstream in
// numerics (this function only evaluates the base closure relation).
func (t *TurbulenceState) EddyViscosity(c int, rho, muLam float64) float64 {
	switch t.Model {
	case TurbSA:
		nuTilde := t.T[c][0]
		if nuTilde <= 0 {
			return 0
		}
		const cv1 = 7.1
		nu := muLam / rho
		chi := nuTilde / nu
		chi3 := chi * chi * chi
		fv1 := chi3 / (chi3 + cv1*cv1*cv1)
		return rho * nuTilde * fv1
	case TurbSST:
		k, omega := t.T[c][0], t.T[c][1]
		if k <= 0 || omega <= 0 {
			return 0
		}
		return rho * k / omega
	}
	return 0
}
