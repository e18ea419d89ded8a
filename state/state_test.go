// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestPrimitivesIdempotence(tst *testing.T) {
	chk.PrintTitle("state01. primitivesFrom(conservativesFrom(V)) == V")
	gas := DefaultAirGasModel()
	ndim := 3
	Vin := []float64{1.2, 50.0, -3.0, 2.0, 101325.0}
	U := ConservativeFromPrimitives(Vin, gas, ndim)
	Vout, ok := PrimitivesFromConservative(U, gas, ndim)
	if !ok {
		tst.Fatalf("expected admissible round trip")
	}
	for i := range Vin {
		chk.Scalar(tst, "V component", 1e-9, Vout[i], Vin[i])
	}
}

func TestNVar(tst *testing.T) {
	chk.PrintTitle("state02. nVar is ndim+2")
	if NVar(2) != 4 {
		tst.Fatalf("expected nVar=4 in 2D, got %d", NVar(2))
	}
	if NVar(3) != 5 {
		tst.Fatalf("expected nVar=5 in 3D, got %d", NVar(3))
	}
}

func TestClipNonAdmissible(tst *testing.T) {
	chk.PrintTitle("state03. non-admissible density/pressure gets clipped, not crashed")
	gas := DefaultAirGasModel()
	v := NewVariables(2, 1, gas)
	v.U[0] = []float64{-1.0, 0, 0, -500}
	n := v.CheckAdmissible()
	if n != 1 {
		tst.Fatalf("expected 1 clip, got %d", n)
	}
	if v.U[0][0] <= 0 {
		tst.Fatalf("density still non-positive after clip")
	}
}

func TestFreestreamRoundTrip(tst *testing.T) {
	chk.PrintTitle("state04. SetFreestream populates U and V consistently")
	gas := DefaultAirGasModel()
	v := NewVariables(2, 5, gas)
	Vinf := []float64{1.225, 100.0, 0.0, 101325.0}
	v.SetFreestream(Vinf)
	for c := 0; c < v.NCells; c++ {
		for k := range Vinf {
			chk.Scalar(tst, "freestream V", 1e-9, v.V[c][k], Vinf[k])
		}
	}
}

func TestSuthlerlandMonotone(tst *testing.T) {
	chk.PrintTitle("state05. Sutherland's law viscosity increases with temperature")
	gas := DefaultAirGasModel()
	mu1 := gas.ViscosityLaminar(250)
	mu2 := gas.ViscosityLaminar(400)
	if mu2 <= mu1 {
		tst.Fatalf("expected mu(400K) > mu(250K): %g vs %g", mu2, mu1)
	}
}

func TestTurbulenceSAAllocation(tst *testing.T) {
	chk.PrintTitle("state06. SA turbulence state has 1 equation")
	ts := NewTurbulenceState(TurbSA, 3, 10)
	if ts.NVar != 1 {
		tst.Fatalf("expected 1 SA equation, got %d", ts.NVar)
	}
	if ts.F1 != nil {
		tst.Fatalf("SA model should not allocate SST blending functions")
	}
}

func TestTurbulenceSSTAllocation(tst *testing.T) {
	chk.PrintTitle("state07. SST turbulence state has 2 equations and blending functions")
	ts := NewTurbulenceState(TurbSST, 3, 10)
	if ts.NVar != 2 {
		tst.Fatalf("expected 2 SST equations, got %d", ts.NVar)
	}
	if ts.F1 == nil || ts.F2 == nil {
		tst.Fatalf("SST model should allocate blending function buffers")
	}
}
