// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import (
	"math"

	"github.com/cpmech/gosl/fun"

	"github.com/nbatista0630/su2edu-go/state"
)

func init() {
	convAllocators["jst"] = func() ConvScheme { return new(JST) }
}

// JST implements the Jameson-Schmidt-Turkel central scheme: an arithmetic
// average of the physical fluxes plus blended second- and fourth-difference
// scalar dissipation driven by a pressure sensor. The cell-centered sensor
// values and undivided Laplacians of the conservative state are provided on
// the Face by the assembly loop; this kernel only blends them.
type JST struct {
	ndim int
	nvar int
	gas  state.GasModel

	kappa2 float64
	kappa4 float64
}

// Init reads "kappa2" (default 1/2) and "kappa4" (default 1/64).
func (o *JST) Init(ndim int, gas state.GasModel, prms fun.Prms) error {
	o.ndim = ndim
	o.nvar = ndim + 2
	o.gas = gas
	o.kappa2 = 0.5
	o.kappa4 = 1.0 / 64.0
	for _, p := range prms {
		switch p.N {
		case "kappa2":
			o.kappa2 = p.V
		case "kappa4":
			o.kappa4 = p.V
		}
	}
	return nil
}

// Name returns "jst".
func (o *JST) Name() string { return "jst" }

// faceLambda returns the face spectral radius used to scale the scalar
// dissipation.
func (o *JST) faceLambda(f *Face) float64 {
	lamL := SpectralRadiusConv(f.VL, f.Normal, o.gas, o.ndim)
	lamR := SpectralRadiusConv(f.VR, f.Normal, o.gas, o.ndim)
	return 0.5 * (lamL + lamR)
}

// Flux computes the central flux plus dissipation
// d = eps2*(U_R - U_L) - eps4*(Lap U_R - Lap U_L), both scaled by the face
// spectral radius, with eps2 = k2*max(s_L, s_R) and
// eps4 = max(0, k4 - eps2).
func (o *JST) Flux(f *Face, F []float64) {
	nvar := o.nvar
	FL := make([]float64, nvar)
	FR := make([]float64, nvar)
	EulerFlux(f.VL, f.Normal, o.gas, o.ndim, FL)
	EulerFlux(f.VR, f.Normal, o.gas, o.ndim, FR)

	lam := o.faceLambda(f)
	eps2 := o.kappa2 * math.Max(f.SensL, f.SensR)
	eps4 := math.Max(0, o.kappa4-eps2)

	// stretch the fourth difference by the average stencil degree so the
	// dissipation scaling stays mesh-independent on unstructured duals
	deg := 0.5 * float64(f.DegL+f.DegR)
	if deg < 1 {
		deg = 1
	}

	UL := state.ConservativeFromPrimitives(f.VL, o.gas, o.ndim)
	UR := state.ConservativeFromPrimitives(f.VR, o.gas, o.ndim)
	for k := 0; k < nvar; k++ {
		d2 := eps2 * (UR[k] - UL[k])
		d4 := 0.0
		if f.LapUL != nil && f.LapUR != nil {
			d4 = eps4 / deg * (f.LapUR[k] - f.LapUL[k])
		}
		F[k] = 0.5*(FL[k]+FR[k]) - lam*(d2-d4)
	}
}

// Jacobian uses the scalar first-order approximation: the central part is
// differentiated exactly and the dissipation is replaced by the face
// spectral radius times max(eps2, kappa4) on the block diagonal.
func (o *JST) Jacobian(f *Face, JL, JR []float64) {
	nvar := o.nvar
	EulerJacobian(f.VL, f.Normal, o.gas, o.ndim, JL)
	EulerJacobian(f.VR, f.Normal, o.gas, o.ndim, JR)
	lam := o.faceLambda(f)
	eps2 := o.kappa2 * math.Max(f.SensL, f.SensR)
	d := lam * math.Max(eps2, o.kappa4)
	for i := 0; i < nvar*nvar; i++ {
		JL[i] *= 0.5
		JR[i] *= 0.5
	}
	for k := 0; k < nvar; k++ {
		JL[k*nvar+k] += d
		JR[k*nvar+k] -= d
	}
}
