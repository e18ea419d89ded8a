// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import "math"

// Menter SST closure constants (2003 formulation).
const (
	sstBetaStar = 0.09
	sstA1       = 0.31
	sstSigmaK1  = 0.85
	sstSigmaK2  = 1.0
	sstSigmaW1  = 0.5
	sstSigmaW2  = 0.856
	sstBeta1    = 0.075
	sstBeta2    = 0.0828
	sstKappa    = 0.41
)

// sstGamma1 and sstGamma2 follow from the other constants.
var (
	sstGamma1 = sstBeta1/sstBetaStar - sstSigmaW1*sstKappa*sstKappa/math.Sqrt(sstBetaStar)
	sstGamma2 = sstBeta2/sstBetaStar - sstSigmaW2*sstKappa*sstKappa/math.Sqrt(sstBetaStar)
)

// sstBlend interpolates a constant between its inner (1) and outer (2)
// values with the blending function F1.
func sstBlend(f1, c1, c2 float64) float64 { return f1*c1 + (1-f1)*c2 }

// SSTBlendingIn bundles the cell-local inputs of the blending functions.
type SSTBlendingIn struct {
	K, Omega  float64
	Rho       float64
	MuLam     float64
	WallDist  float64
	GradK     []float64
	GradOmega []float64
}

// SSTBlending evaluates F1, F2 and the cross-diffusion term CDkw.
func SSTBlending(in SSTBlendingIn) (F1, F2, CDkw float64) {
	d := in.WallDist
	if d < 1e-10 {
		d = 1e-10
	}
	k := math.Max(in.K, 1e-30)
	w := math.Max(in.Omega, 1e-30)
	nu := in.MuLam / in.Rho

	gradDot := 0.0
	for i := range in.GradK {
		gradDot += in.GradK[i] * in.GradOmega[i]
	}
	CDkw = math.Max(2*in.Rho*sstSigmaW2/w*gradDot, 1e-10)

	sqrtKbwd := math.Sqrt(k) / (sstBetaStar * w * d)
	nuByD2w := 500 * nu / (d * d * w)

	arg1 := math.Min(math.Max(sqrtKbwd, nuByD2w), 4*in.Rho*sstSigmaW2*k/(CDkw*d*d))
	F1 = math.Tanh(arg1 * arg1 * arg1 * arg1)

	arg2 := math.Max(2*sqrtKbwd, nuByD2w)
	F2 = math.Tanh(arg2 * arg2)
	return
}

// SSTEddyViscosity applies Menter's shear-limited closure
// mu_t = rho a1 k / max(a1 w, S F2).
func SSTEddyViscosity(rho, k, omega, strainMag, F2 float64) float64 {
	if k <= 0 || omega <= 0 {
		return 0
	}
	den := math.Max(sstA1*omega, strainMag*F2)
	return rho * sstA1 * k / den
}

// SSTSourceIn bundles the cell-local inputs of the SST source terms.
type SSTSourceIn struct {
	K, Omega  float64
	Rho       float64
	MuTurb    float64
	StrainMag float64
	F1        float64
	CDkw      float64
}

// SSTSource evaluates the per-unit-volume sources of the k and omega
// equations and the (negative semi-definite) diagonal derivatives used for
// the implicit 2x2 block.
func SSTSource(in SSTSourceIn) (src [2]float64, diag [2]float64) {
	k := math.Max(in.K, 1e-30)
	w := math.Max(in.Omega, 1e-30)

	beta := sstBlend(in.F1, sstBeta1, sstBeta2)
	gamma := sstBlend(in.F1, sstGamma1, sstGamma2)

	// production with Menter's 10 beta* rho k w limiter
	pk := in.MuTurb * in.StrainMag * in.StrainMag
	pkLim := 10 * sstBetaStar * in.Rho * k * w
	if pk > pkLim {
		pk = pkLim
	}
	dk := sstBetaStar * in.Rho * w * k

	pw := 0.0
	if in.MuTurb > 1e-30 {
		pw = gamma * in.Rho / in.MuTurb * pk
	}
	dw := beta * in.Rho * w * w
	cross := (1 - in.F1) * in.CDkw

	src[0] = pk - dk
	src[1] = pw - dw + cross
	diag[0] = -sstBetaStar * in.Rho * w
	diag[1] = -2 * beta * in.Rho * w
	return
}

// SSTDiffusivity returns the blended diffusion coefficients
// (mu + sigma_k mu_t, mu + sigma_w mu_t) at a face.
func SSTDiffusivity(muLam, muTurb, F1 float64) (dk, dw float64) {
	sk := sstBlend(F1, sstSigmaK1, sstSigmaK2)
	sw := sstBlend(F1, sstSigmaW1, sstSigmaW2)
	return muLam + sk*muTurb, muLam + sw*muTurb
}

// StrainMagnitude returns sqrt(2 S_ij S_ij) of the velocity-gradient
// tensor gradU ([component][dim]).
func StrainMagnitude(gradU [][]float64, ndim int) float64 {
	s := 0.0
	for i := 0; i < ndim; i++ {
		for j := 0; j < ndim; j++ {
			sij := 0.5 * (gradU[i][j] + gradU[j][i])
			s += 2 * sij * sij
		}
	}
	return math.Sqrt(s)
}

// VorticityMagnitude returns |curl u| of the velocity-gradient tensor.
func VorticityMagnitude(gradU [][]float64, ndim int) float64 {
	if ndim == 2 {
		return math.Abs(gradU[1][0] - gradU[0][1])
	}
	wx := gradU[2][1] - gradU[1][2]
	wy := gradU[0][2] - gradU[2][0]
	wz := gradU[1][0] - gradU[0][1]
	return math.Sqrt(wx*wx + wy*wy + wz*wz)
}
