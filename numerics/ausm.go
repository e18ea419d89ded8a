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
	convAllocators["ausm"] = func() ConvScheme { return new(AUSM) }
}

// AUSM implements the AUSM+-up flux-vector splitting of Liou: a pressure
// flux from polynomial splittings of the face Mach numbers plus an upwinded
// convective flux from the interface mass flow, with the velocity- and
// pressure-diffusion terms that keep the scheme accurate at low speed.
type AUSM struct {
	ndim int
	nvar int
	gas  state.GasModel

	kp, ku, sigma float64
	beta, alpha   float64
	machInf       float64 // freestream Mach for the fa scaling; 1 disables
}

// Init reads "mach_inf" (default 1, i.e. no low-speed scaling).
func (o *AUSM) Init(ndim int, gas state.GasModel, prms fun.Prms) error {
	o.ndim = ndim
	o.nvar = ndim + 2
	o.gas = gas
	o.kp, o.ku, o.sigma = 0.25, 0.75, 1.0
	o.beta, o.alpha = 1.0/8.0, 3.0/16.0
	o.machInf = 1
	for _, p := range prms {
		if p.N == "mach_inf" {
			o.machInf = p.V
		}
	}
	return nil
}

// Name returns "ausm".
func (o *AUSM) Name() string { return "ausm" }

// splitM4 is the fourth-degree Mach polynomial M4+(m) / M4-(m).
func (o *AUSM) splitM4(m float64, plus bool) float64 {
	if math.Abs(m) >= 1 {
		if plus {
			return 0.5 * (m + math.Abs(m))
		}
		return 0.5 * (m - math.Abs(m))
	}
	if plus {
		return 0.25*(m+1)*(m+1) + o.beta*(m*m-1)*(m*m-1)
	}
	return -0.25*(m-1)*(m-1) - o.beta*(m*m-1)*(m*m-1)
}

// splitP5 is the fifth-degree pressure polynomial P5+(m) / P5-(m).
func (o *AUSM) splitP5(m float64, plus bool) float64 {
	if math.Abs(m) >= 1 {
		if (plus && m >= 0) || (!plus && m <= 0) {
			return 1
		}
		return 0
	}
	q := (m*m - 1) * (m*m - 1)
	if plus {
		return 0.25*(m+1)*(m+1)*(2-m) + o.alpha*m*q
	}
	return 0.25*(m-1)*(m-1)*(2+m) - o.alpha*m*q
}

// Flux evaluates the AUSM+-up interface flux.
func (o *AUSM) Flux(f *Face, F []float64) {
	nvar := o.nvar
	area, unit := unitNormal(f.Normal)
	rL, rR := f.VL[0], f.VR[0]
	pL, pR := f.VL[nvar-1], f.VR[nvar-1]
	vnL := projVel(f.VL, unit, o.ndim)
	vnR := projVel(f.VR, unit, o.ndim)
	aL := math.Sqrt(o.gas.Gamma * pL / rL)
	aR := math.Sqrt(o.gas.Gamma * pR / rR)
	a := 0.5 * (aL + aR)
	rhoA := 0.5 * (rL + rR)

	mL := vnL / a
	mR := vnR / a
	mBar2 := 0.5 * (vnL*vnL + vnR*vnR) / (a * a)

	m02 := math.Min(1, math.Max(mBar2, o.machInf*o.machInf))
	m0 := math.Sqrt(m02)
	fa := m0 * (2 - m0)
	if fa < 1e-10 {
		fa = 1e-10
	}

	mHalf := o.splitM4(mL, true) + o.splitM4(mR, false) -
		o.kp/fa*math.Max(1-o.sigma*mBar2, 0)*(pR-pL)/(rhoA*a*a)

	pHalf := o.splitP5(mL, true)*pL + o.splitP5(mR, false)*pR -
		o.ku*o.splitP5(mL, true)*o.splitP5(mR, false)*(rL+rR)*fa*a*(vnR-vnL)

	mdot := a * mHalf
	var V []float64
	if mdot > 0 {
		mdot *= rL
		V = f.VL
	} else {
		mdot *= rR
		V = f.VR
	}

	ke := 0.0
	for d := 0; d < o.ndim; d++ {
		ke += 0.5 * V[1+d] * V[1+d]
	}
	p := V[nvar-1]
	H := o.gas.Gamma/(o.gas.Gamma-1)*p/V[0] + ke

	F[0] = area * mdot
	for d := 0; d < o.ndim; d++ {
		F[1+d] = area * (mdot*V[1+d] + pHalf*unit[d])
	}
	F[nvar-1] = area * mdot * H
}

// Jacobian uses the scalar first-order approximation shared by the
// non-Roe schemes: exact central part plus the face spectral radius on the
// diagonal.
func (o *AUSM) Jacobian(f *Face, JL, JR []float64) {
	scalarUpwindJacobian(f, o.gas, o.ndim, JL, JR)
}

// scalarUpwindJacobian fills JL/JR with 1/2 dF/dU(V) +/- 1/2 lambda I, the
// spectrally correct left-hand side used when the exact flux derivative is
// not worth its cost.
func scalarUpwindJacobian(f *Face, gas state.GasModel, ndim int, JL, JR []float64) {
	nvar := ndim + 2
	EulerJacobian(f.VL, f.Normal, gas, ndim, JL)
	EulerJacobian(f.VR, f.Normal, gas, ndim, JR)
	lam := 0.5 * (SpectralRadiusConv(f.VL, f.Normal, gas, ndim) +
		SpectralRadiusConv(f.VR, f.Normal, gas, ndim))
	for i := 0; i < nvar*nvar; i++ {
		JL[i] *= 0.5
		JR[i] *= 0.5
	}
	for k := 0; k < nvar; k++ {
		JL[k*nvar+k] += 0.5 * lam
		JR[k*nvar+k] -= 0.5 * lam
	}
}
