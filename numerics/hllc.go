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
	convAllocators["hllc"] = func() ConvScheme { return new(HLLC) }
}

// HLLC implements the Harten-Lax-van Leer-Contact approximate Riemann
// solver with Roe-averaged wave-speed estimates.
type HLLC struct {
	ndim int
	nvar int
	gas  state.GasModel
}

// Init stores the dimension and gas model; HLLC has no tunable parameters.
func (o *HLLC) Init(ndim int, gas state.GasModel, prms fun.Prms) error {
	o.ndim = ndim
	o.nvar = ndim + 2
	o.gas = gas
	return nil
}

// Name returns "hllc".
func (o *HLLC) Name() string { return "hllc" }

// Flux evaluates the HLLC interface flux.
func (o *HLLC) Flux(f *Face, F []float64) {
	nvar := o.nvar
	area, unit := unitNormal(f.Normal)
	rL, rR := f.VL[0], f.VR[0]
	pL, pR := f.VL[nvar-1], f.VR[nvar-1]
	vnL := projVel(f.VL, unit, o.ndim)
	vnR := projVel(f.VR, unit, o.ndim)
	cL := math.Sqrt(o.gas.Gamma * pL / rL)
	cR := math.Sqrt(o.gas.Gamma * pR / rR)

	// Roe-averaged normal velocity and sound speed for the outer estimates
	sL, sR := math.Sqrt(rL), math.Sqrt(rR)
	w := 1 / (sL + sR)
	vnRoe := (sL*vnL + sR*vnR) * w
	keL, keR := 0.0, 0.0
	for d := 0; d < o.ndim; d++ {
		keL += 0.5 * f.VL[1+d] * f.VL[1+d]
		keR += 0.5 * f.VR[1+d] * f.VR[1+d]
	}
	HL := o.gas.Gamma/(o.gas.Gamma-1)*pL/rL + keL
	HR := o.gas.Gamma/(o.gas.Gamma-1)*pR/rR + keR
	HRoe := (sL*HL + sR*HR) * w
	keRoe := 0.0
	for d := 0; d < o.ndim; d++ {
		uRoe := (sL*f.VL[1+d] + sR*f.VR[1+d]) * w
		keRoe += 0.5 * uRoe * uRoe
	}
	cRoe := math.Sqrt(math.Max((o.gas.Gamma-1)*(HRoe-keRoe), 1e-30))

	SLw := math.Min(vnL-cL, vnRoe-cRoe)
	SRw := math.Max(vnR+cR, vnRoe+cRoe)
	denom := rL*(SLw-vnL) - rR*(SRw-vnR)
	var Sstar float64
	if math.Abs(denom) < 1e-300 {
		Sstar = 0
	} else {
		Sstar = (pR - pL + rL*vnL*(SLw-vnL) - rR*vnR*(SRw-vnR)) / denom
	}

	switch {
	case SLw >= 0:
		EulerFlux(f.VL, f.Normal, o.gas, o.ndim, F)
	case SRw <= 0:
		EulerFlux(f.VR, f.Normal, o.gas, o.ndim, F)
	case Sstar >= 0:
		o.starFlux(f.VL, unit, area, SLw, Sstar, F)
	default:
		o.starFlux(f.VR, unit, area, SRw, Sstar, F)
	}
}

// starFlux computes F_K + S_K (U*_K - U_K) for the side K described by V.
func (o *HLLC) starFlux(V, unit []float64, area, SK, Sstar float64, F []float64) {
	nvar := o.nvar
	rho := V[0]
	p := V[nvar-1]
	vn := projVel(V, unit, o.ndim)

	U := state.ConservativeFromPrimitives(V, o.gas, o.ndim)
	n := make([]float64, o.ndim)
	for d := range n {
		n[d] = unit[d] * area
	}
	EulerFlux(V, n, o.gas, o.ndim, F)

	fac := rho * (SK - vn) / (SK - Sstar)
	Ustar := make([]float64, nvar)
	Ustar[0] = fac
	for d := 0; d < o.ndim; d++ {
		Ustar[1+d] = fac * (V[1+d] + (Sstar-vn)*unit[d])
	}
	E := U[nvar-1] / rho
	Ustar[nvar-1] = fac * (E + (Sstar-vn)*(Sstar+p/(rho*(SK-vn))))

	for k := 0; k < nvar; k++ {
		F[k] += area * SK * (Ustar[k] - U[k])
	}
}

// Jacobian uses the shared scalar first-order approximation.
func (o *HLLC) Jacobian(f *Face, JL, JR []float64) {
	scalarUpwindJacobian(f, o.gas, o.ndim, JL, JR)
}
