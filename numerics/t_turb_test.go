// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_turb01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("turb01. SA convective flux upwinds on the sign of vn")

	f, dL, dR := SAConvFlux(2.5, 1.0, 3.0)
	chk.Scalar(tst, "downwind value ignored", 1e-15, f, 2.5)
	chk.Scalar(tst, "dfL", 1e-15, dL, 2.5)
	chk.Scalar(tst, "dfR", 1e-15, dR, 0)

	f, dL, dR = SAConvFlux(-2.5, 1.0, 3.0)
	chk.Scalar(tst, "reverse flux", 1e-15, f, -7.5)
	chk.Scalar(tst, "dfL reverse", 1e-15, dL, 0)
	chk.Scalar(tst, "dfR reverse", 1e-15, dR, -2.5)
}

func Test_turb02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("turb02. SA source balances production and destruction at equilibrium scales")

	in := SASourceIn{
		NuTilde:   1e-4,
		NuLam:     1.5e-5,
		WallDist:  0.01,
		Vorticity: 100,
		GradNu:    []float64{0, 0},
	}
	src, dS := SASource(in)
	// production must dominate at this vorticity: cb1*S*nu ~ 0.1355*100*1e-4
	if src <= 0 {
		tst.Errorf("expected net production, got %g", src)
	}
	// implicit diagonal must be non-positive (destruction-dominated)
	if dS > 0 {
		tst.Errorf("source diagonal must stabilize the solve, got %g", dS)
	}

	// negative working variable only feels restoring destruction
	in.NuTilde = -1e-5
	src, _ = SASource(in)
	if src >= 0 {
		tst.Errorf("negative nuTilde must decay, got source %g", src)
	}
}

func Test_turb03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("turb03. SST blending: F1 -> 1 at the wall, -> 0 far away")

	near := SSTBlendingIn{
		K: 1e-3, Omega: 5000, Rho: 1.2, MuLam: 1.8e-5,
		WallDist: 1e-4,
		GradK:    []float64{0, 0}, GradOmega: []float64{0, 0},
	}
	F1n, F2n, _ := SSTBlending(near)
	chk.Scalar(tst, "F1 near wall", 1e-6, F1n, 1)
	chk.Scalar(tst, "F2 near wall", 1e-6, F2n, 1)

	far := SSTBlendingIn{
		K: 1e-6, Omega: 10, Rho: 1.2, MuLam: 1.8e-5,
		WallDist: 10,
		GradK:    []float64{0, 0}, GradOmega: []float64{0, 0},
	}
	F1f, _, _ := SSTBlending(far)
	if F1f > 0.01 {
		tst.Errorf("F1 far from wall should vanish, got %g", F1f)
	}
}

func Test_turb04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("turb04. SST production limiter caps Pk at 10 beta* rho k w")

	in := SSTSourceIn{
		K: 1.0, Omega: 10, Rho: 1.0,
		MuTurb:    1e3, // absurdly high so raw production exceeds the cap
		StrainMag: 100,
		F1:        1.0,
		CDkw:      0,
	}
	src, diag := SSTSource(in)
	pkCap := 10 * sstBetaStar * in.Rho * in.K * in.Omega
	dest := sstBetaStar * in.Rho * in.Omega * in.K
	chk.Scalar(tst, "k source capped", 1e-12, src[0], pkCap-dest)
	if diag[0] >= 0 || diag[1] >= 0 {
		tst.Errorf("source diagonals must be negative, got %v", diag)
	}
}

func Test_turb05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("turb05. strain and vorticity magnitudes on simple shear")

	// du/dy = 2: S = |du/dy| (sqrt(2*2*(1/2*2)^2) = 2), Omega = 2
	gradU := [][]float64{{0, 2}, {0, 0}}
	chk.Scalar(tst, "strain", 1e-13, StrainMagnitude(gradU, 2), 2)
	chk.Scalar(tst, "vorticity", 1e-13, VorticityMagnitude(gradU, 2), 2)

	// solid-body rotation: strain vanishes, vorticity does not
	rot := [][]float64{{0, -3}, {3, 0}}
	chk.Scalar(tst, "rotation strain", 1e-13, StrainMagnitude(rot, 2), 0)
	chk.Scalar(tst, "rotation vorticity", 1e-13, VorticityMagnitude(rot, 2), 6)
}
