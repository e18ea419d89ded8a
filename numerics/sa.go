// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import "math"

// Spalart-Allmaras closure constants.
const (
	saCb1   = 0.1355
	saCb2   = 0.622
	saSigma = 2.0 / 3.0
	saKappa = 0.41
	saCw2   = 0.3
	saCw3   = 2.0
	saCv1   = 7.1
)

// saCw1 is derived: cb1/kappa^2 + (1+cb2)/sigma.
var saCw1 = saCb1/(saKappa*saKappa) + (1+saCb2)/saSigma

// SAConvFlux upwinds the working variable across a face with normal
// velocity vn (area-scaled projected velocity). Returns the flux and its
// derivatives with respect to the left and right values.
func SAConvFlux(vn, nuL, nuR float64) (f, dfL, dfR float64) {
	if vn >= 0 {
		return vn * nuL, vn, 0
	}
	return vn * nuR, 0, vn
}

// SAViscFlux computes the diffusion (1/sigma)(nu + nuTilde)_f dnu/dn
// through a face, with the two-point difference along the edge as the
// normal derivative (the averaged-gradient correction collapses to this on
// the scalar equation). Returns the flux and the derivative with respect to
// the jump endpoints.
func SAViscFlux(nuLamFace, nuTildeFace float64, nuI, nuJ, area, dist float64) (f, dfI, dfJ float64) {
	coef := (nuLamFace + nuTildeFace) / saSigma * area / dist
	return coef * (nuJ - nuI), -coef, coef
}

// SASourceIn bundles the cell-local inputs of the SA source term.
type SASourceIn struct {
	NuTilde   float64
	NuLam     float64   // molecular kinematic viscosity
	WallDist  float64
	Vorticity float64   // magnitude of the mean-flow vorticity
	GradNu    []float64 // gradient of the working variable
}

// SASource evaluates the volumetric source (production - destruction +
// cross diffusion) and a destruction-dominated derivative suitable for the
// implicit diagonal. Both are per unit volume; the caller multiplies by the
// cell volume.
func SASource(in SASourceIn) (src, dSrcDNu float64) {
	nu := in.NuLam
	nt := in.NuTilde
	d := in.WallDist
	if d < 1e-10 {
		d = 1e-10
	}
	if nt < 0 {
		// negative working variable: keep only a restoring destruction
		return -saCw1 * nt * nt / (d * d), -2 * saCw1 * nt / (d * d)
	}

	chi := nt / nu
	chi3 := chi * chi * chi
	fv1 := chi3 / (chi3 + saCv1*saCv1*saCv1)
	fv2 := 1 - chi/(1+chi*fv1)

	kd2 := saKappa * saKappa * d * d
	sHat := in.Vorticity + nt/kd2*fv2
	if sHat < 1e-10 {
		sHat = 1e-10
	}

	r := nt / (sHat * kd2)
	if r > 10 {
		r = 10
	}
	g := r + saCw2*(math.Pow(r, 6)-r)
	cw36 := math.Pow(saCw3, 6)
	fw := g * math.Pow((1+cw36)/(math.Pow(g, 6)+cw36), 1.0/6.0)

	prod := saCb1 * sHat * nt
	dest := saCw1 * fw * nt * nt / (d * d)
	cross := 0.0
	for _, gk := range in.GradNu {
		cross += gk * gk
	}
	cross *= saCb2 / saSigma

	src = prod - dest + cross
	// frozen fw/sHat derivative: destruction grows linearly, production is
	// taken on the diagonal only when it stabilizes the solve
	dSrcDNu = saCb1*sHat - 2*saCw1*fw*nt/(d*d)
	if dSrcDNu > 0 {
		dSrcDNu = -2 * saCw1 * fw * nt / (d * d)
	}
	return src, dSrcDNu
}

// SAFv1 exposes the near-wall damping function used when converting the
// working variable to an eddy viscosity.
func SAFv1(nuTilde, nuLam float64) float64 {
	if nuTilde <= 0 {
		return 0
	}
	chi := nuTilde / nuLam
	chi3 := chi * chi * chi
	return chi3 / (chi3 + saCv1*saCv1*saCv1)
}
