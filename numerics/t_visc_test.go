// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_visc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("visc01. Couette shear: linear u(y) gives tau = mu du/dy")

	gas := testGas()
	ndim := 2
	dudy := 150.0
	mu := 1.8e-5
	T := 300.0

	// two cells one above the other, face normal +y, velocity u = dudy*y
	f := &ViscousFace{
		Normal: []float64{0, 0.1}, // area 0.1
		Vi:     []float64{1.0, 0, 0, 101325},
		Vj:     []float64{1.0, dudy * 0.01, 0, 101325},
		Ti:     T, Tj: T,
		GradI:  [][]float64{{0, 0}, {0, dudy}, {0, 0}, {0, 0}},
		GradJ:  [][]float64{{0, 0}, {0, dudy}, {0, 0}, {0, 0}},
		GradTi: []float64{0, 0},
		GradTj: []float64{0, 0},
		Xi:     []float64{0, 0},
		Xj:     []float64{0, 0.01},
		MuLam:  mu,
	}
	F := make([]float64, 4)
	ViscousFlux(f, gas, ndim, F)

	chk.Scalar(tst, "mass", 1e-15, F[0], 0)
	chk.Scalar(tst, "tau_xy", 1e-12, F[1], 0.1*mu*dudy)
	// tau_yy for this flow: -2/3 mu du/dx = 0
	chk.Scalar(tst, "tau_yy", 1e-12, F[2], 0)
	// energy flux = u_face * tau_xy
	uface := 0.5 * dudy * 0.01
	chk.Scalar(tst, "work", 1e-12, F[3], 0.1*uface*mu*dudy)
}

func Test_visc02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("visc02. pure conduction: linear T gives q = k dT/dn")

	gas := testGas()
	ndim := 2
	dTdy := -50.0
	mu := 2.0e-5

	f := &ViscousFace{
		Normal: []float64{0, 1},
		Vi:     []float64{1.0, 0, 0, 101325},
		Vj:     []float64{1.0, 0, 0, 101325},
		Ti:     300, Tj: 300 + dTdy*0.01,
		GradI:  [][]float64{{0, 0}, {0, 0}, {0, 0}, {0, 0}},
		GradJ:  [][]float64{{0, 0}, {0, 0}, {0, 0}, {0, 0}},
		GradTi: []float64{0, dTdy},
		GradTj: []float64{0, dTdy},
		Xi:     []float64{0, 0},
		Xj:     []float64{0, 0.01},
		MuLam:  mu,
	}
	F := make([]float64, 4)
	ViscousFlux(f, gas, ndim, F)

	k := gas.Cp() * mu / gas.PrLam
	chk.Scalar(tst, "heat flux", 1e-10*(1+mathAbs(k*dTdy)), F[3], k*dTdy)
}

func Test_visc03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("visc03. edge-direction correction recovers two-point differences")

	// feed inconsistent averaged gradients: the correction must replace the
	// along-edge component by (vj-vi)/dist
	tHat := []float64{1, 0}
	out := make([]float64, 2)
	gi := []float64{999, 3} // wildly wrong along-edge component
	gj := []float64{-999, 3}
	faceGradient(gi, gj, 1.0, 2.0, tHat, 0.5, out)
	chk.Scalar(tst, "along edge", 1e-13, out[0], (2.0-1.0)/0.5)
	chk.Scalar(tst, "transverse", 1e-13, out[1], 3)
}
