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
	convAllocators["roe"] = func() ConvScheme { return new(Roe) }
}

// Roe implements the Roe approximate Riemann solver with a Harten-Hyman
// entropy fix and optional Weiss-Smith low-Mach preconditioning of the
// acoustic eigenvalues.
type Roe struct {
	ndim int
	nvar int
	gas  state.GasModel

	epsEntropy  float64 // eigenvalue fix parameter, fraction of (|vn|+c)
	lowMach     bool
	machCutoff  float64 // floor of the preconditioning parameter theta
}

// Init reads the scheme parameters: "eps_entropy" (default 0.1), "low_mach"
// (nonzero enables preconditioning) and "mach_cutoff".
func (o *Roe) Init(ndim int, gas state.GasModel, prms fun.Prms) error {
	o.ndim = ndim
	o.nvar = ndim + 2
	o.gas = gas
	o.epsEntropy = 0.1
	o.machCutoff = 1e-10
	for _, p := range prms {
		switch p.N {
		case "eps_entropy":
			o.epsEntropy = p.V
		case "low_mach":
			o.lowMach = p.V != 0
		case "mach_cutoff":
			o.machCutoff = p.V
		}
	}
	return nil
}

// Name returns "roe".
func (o *Roe) Name() string { return "roe" }

// roeAvg holds the Roe-averaged face state.
type roeAvg struct {
	rho  float64
	u    []float64
	H    float64
	c    float64
	vn   float64
	ke   float64
	unit []float64
	area float64
}

func (o *Roe) average(f *Face) roeAvg {
	area, unit := unitNormal(f.Normal)
	rL, rR := f.VL[0], f.VR[0]
	sL, sR := math.Sqrt(rL), math.Sqrt(rR)
	w := 1 / (sL + sR)

	a := roeAvg{rho: sL * sR, unit: unit, area: area, u: make([]float64, o.ndim)}
	keL, keR := 0.0, 0.0
	for d := 0; d < o.ndim; d++ {
		keL += 0.5 * f.VL[1+d] * f.VL[1+d]
		keR += 0.5 * f.VR[1+d] * f.VR[1+d]
		a.u[d] = (sL*f.VL[1+d] + sR*f.VR[1+d]) * w
	}
	pL, pR := f.VL[o.nvar-1], f.VR[o.nvar-1]
	HL := o.gas.Gamma/(o.gas.Gamma-1)*pL/rL + keL
	HR := o.gas.Gamma/(o.gas.Gamma-1)*pR/rR + keR
	a.H = (sL*HL + sR*HR) * w
	for d := 0; d < o.ndim; d++ {
		a.ke += 0.5 * a.u[d] * a.u[d]
		a.vn += a.u[d] * unit[d]
	}
	c2 := (o.gas.Gamma - 1) * (a.H - a.ke)
	if c2 < 1e-30 {
		c2 = 1e-30
	}
	a.c = math.Sqrt(c2)
	return a
}

// eigenvalues returns the three wave speeds (vn-c', vn', vn+c') after
// low-Mach preconditioning (identity when disabled) and the Harten-Hyman
// entropy fix, plus the preconditioned sound speed used in the wave
// strengths.
func (o *Roe) eigenvalues(a roeAvg) (lam1, lam2, lam3, cp float64) {
	vn, c := a.vn, a.c
	vnp, cp := vn, c
	if o.lowMach {
		m2 := 2 * a.ke / (c * c)
		theta := m2
		if theta < o.machCutoff {
			theta = o.machCutoff
		}
		if theta > 1 {
			theta = 1
		}
		vnp = 0.5 * vn * (1 + theta)
		cp = 0.5 * math.Sqrt(vn*vn*(1-theta)*(1-theta)+4*theta*c*c)
	}
	lam1 = math.Abs(vnp - cp)
	lam2 = math.Abs(vn)
	lam3 = math.Abs(vnp + cp)
	delta := o.epsEntropy * (math.Abs(vn) + c)
	fix := func(lam float64) float64 {
		if lam < delta {
			return (lam*lam + delta*delta) / (2 * delta)
		}
		return lam
	}
	return fix(lam1), fix(lam2), fix(lam3), cp
}

// dissipation writes |A~| applied to the jump described by (dRho, dU, dP)
// into D (length nVar). The jump components are primitive differences; the
// map is linear in them for frozen Roe averages.
func (o *Roe) dissipation(a roeAvg, dRho float64, dU []float64, dP float64, D []float64) {
	lam1, lam2, lam3, cp := o.eigenvalues(a)
	dVn := 0.0
	for d := 0; d < o.ndim; d++ {
		dVn += dU[d] * a.unit[d]
	}
	c2 := cp * cp
	alpha1 := (dP - a.rho*cp*dVn) / (2 * c2)
	alpha3 := (dP + a.rho*cp*dVn) / (2 * c2)
	alpha2 := dRho - dP/c2

	D[0] = lam1*alpha1 + lam2*alpha2 + lam3*alpha3
	for d := 0; d < o.ndim; d++ {
		shear := a.rho * (dU[d] - dVn*a.unit[d])
		D[1+d] = lam1*alpha1*(a.u[d]-cp*a.unit[d]) +
			lam2*(alpha2*a.u[d]+shear) +
			lam3*alpha3*(a.u[d]+cp*a.unit[d])
	}
	udu := 0.0
	for d := 0; d < o.ndim; d++ {
		udu += a.u[d] * dU[d]
	}
	D[o.nvar-1] = lam1*alpha1*(a.H-cp*a.vn) +
		lam2*(alpha2*a.ke+a.rho*(udu-a.vn*dVn)) +
		lam3*alpha3*(a.H+cp*a.vn)
}

// Flux computes F = 1/2 (F_L + F_R) - 1/2 |A~| (U_R - U_L).
func (o *Roe) Flux(f *Face, F []float64) {
	nvar := o.nvar
	FL := make([]float64, nvar)
	FR := make([]float64, nvar)
	EulerFlux(f.VL, f.Normal, o.gas, o.ndim, FL)
	EulerFlux(f.VR, f.Normal, o.gas, o.ndim, FR)

	a := o.average(f)
	dU := make([]float64, o.ndim)
	for d := 0; d < o.ndim; d++ {
		dU[d] = f.VR[1+d] - f.VL[1+d]
	}
	D := make([]float64, nvar)
	o.dissipation(a, f.VR[0]-f.VL[0], dU, f.VR[nvar-1]-f.VL[nvar-1], D)

	for k := 0; k < nvar; k++ {
		F[k] = 0.5*(FL[k]+FR[k]) - 0.5*a.area*D[k]
	}
}

// Jacobian approximates dF/dU_L and dF/dU_R with the dissipation matrix
// frozen at the current Roe average: the central part is differentiated
// exactly, |A~| is treated as a constant.
func (o *Roe) Jacobian(f *Face, JL, JR []float64) {
	nvar := o.nvar
	EulerJacobian(f.VL, f.Normal, o.gas, o.ndim, JL)
	EulerJacobian(f.VR, f.Normal, o.gas, o.ndim, JR)
	for i := 0; i < nvar*nvar; i++ {
		JL[i] *= 0.5
		JR[i] *= 0.5
	}

	a := o.average(f)
	absA := make([]float64, nvar*nvar)
	o.absMatrix(a, absA)
	for i := 0; i < nvar*nvar; i++ {
		JL[i] += 0.5 * a.area * absA[i]
		JR[i] -= 0.5 * a.area * absA[i]
	}
}

// absMatrix builds |A~| column by column: each unit conservative jump e_k is
// converted to primitive jumps with the linearization frozen at the Roe
// average, then run through the wave decomposition.
func (o *Roe) absMatrix(a roeAvg, out []float64) {
	nvar := o.nvar
	g1 := o.gas.Gamma - 1
	dU := make([]float64, o.ndim)
	D := make([]float64, nvar)
	col := make([]float64, nvar)
	for k := 0; k < nvar; k++ {
		for i := range col {
			col[i] = 0
		}
		col[k] = 1

		dRho := col[0]
		udm := 0.0
		for d := 0; d < o.ndim; d++ {
			dU[d] = (col[1+d] - a.u[d]*dRho) / a.rho
			udm += a.u[d] * col[1+d]
		}
		dP := g1 * (col[nvar-1] - udm + a.ke*dRho)

		o.dissipation(a, dRho, dU, dP, D)
		for r := 0; r < nvar; r++ {
			out[r*nvar+k] = D[r]
		}
	}
}
