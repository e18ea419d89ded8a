// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/nbatista0630/su2edu-go/geom"
	"github.com/nbatista0630/su2edu-go/state"
)

// gridMesh builds an nx x ny triangulated rectangle on [0,1]^2.
func gridMesh(nx, ny int) geom.RawMesh {
	raw := geom.RawMesh{NDim: 2}
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			raw.Points = append(raw.Points, geom.RawPoint{Coords: []float64{
				float64(i) / float64(nx), float64(j) / float64(ny),
			}})
		}
	}
	id := func(i, j int) int { return j*(nx+1) + i }
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			a, b, c, d := id(i, j), id(i+1, j), id(i+1, j+1), id(i, j+1)
			raw.Elements = append(raw.Elements,
				geom.RawElement{Kind: geom.Triangle, Verts: []int{a, b, c}},
				geom.RawElement{Kind: geom.Triangle, Verts: []int{a, c, d}},
			)
		}
	}
	for i := 0; i < nx; i++ {
		raw.Boundary = append(raw.Boundary,
			geom.RawBoundaryFace{Marker: "bottom", Verts: []int{id(i, 0), id(i+1, 0)}},
			geom.RawBoundaryFace{Marker: "top", Verts: []int{id(i+1, ny), id(i, ny)}},
		)
	}
	for j := 0; j < ny; j++ {
		raw.Boundary = append(raw.Boundary,
			geom.RawBoundaryFace{Marker: "right", Verts: []int{id(nx, j), id(nx, j+1)}},
			geom.RawBoundaryFace{Marker: "left", Verts: []int{id(0, j+1), id(0, j)}},
		)
	}
	return raw
}

// linearField fills the primitive state with a linear function of position:
// V_k = a_k + b_k.x
func linearField(g *geom.Geometry, v *state.Variables) (a, bx, by []float64) {
	a = []float64{1.0, 50, 10, 100000}
	bx = []float64{0.05, 8, -3, 2000}
	by = []float64{-0.02, 4, 6, -1500}
	for c := 0; c < v.NCells; c++ {
		x := g.Position(c)
		for k := 0; k < v.NVar; k++ {
			v.V[c][k] = a[k] + bx[k]*x[0] + by[k]*x[1]
		}
		copy(v.U[c], state.ConservativeFromPrimitives(v.V[c], v.Gas, v.NDim))
	}
	return
}

func Test_grad01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grad01. least-squares gradients are exact on a linear field")

	g, err := geom.NewGeometry(gridMesh(6, 5), nil)
	if err != nil {
		tst.Errorf("mesh: %v", err)
		return
	}
	v := state.NewVariables(2, g.CellCount(), testGas())
	_, bx, by := linearField(g, v)

	LeastSquaresGradients(g, v)
	for c := 0; c < v.NCells; c++ {
		for k := 0; k < v.NVar; k++ {
			chk.Scalar(tst, "ddx", 1e-9*(1+mathAbs(bx[k])), v.GradV[c][k][0], bx[k])
			chk.Scalar(tst, "ddy", 1e-9*(1+mathAbs(by[k])), v.GradV[c][k][1], by[k])
		}
	}
}

func Test_grad02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grad02. no limiter clipping on a linear field")

	g, err := geom.NewGeometry(gridMesh(5, 5), nil)
	if err != nil {
		tst.Errorf("mesh: %v", err)
		return
	}
	v := state.NewVariables(2, g.CellCount(), testGas())
	linearField(g, v)
	LeastSquaresGradients(g, v)
	ComputeLimiters(g, v, LimiterBarth, 0)

	// interior cells see both extrema of the linear field in their stencil;
	// the reconstruction to any face midpoint stays inside them
	for c := 0; c < v.NCells; c++ {
		interior := true
		x := g.Position(c)
		if x[0] < 1e-9 || x[0] > 1-1e-9 || x[1] < 1e-9 || x[1] > 1-1e-9 {
			interior = false
		}
		if !interior {
			continue
		}
		for k := 0; k < v.NVar; k++ {
			chk.Scalar(tst, "phi", 1e-9, v.Limiter[c][k], 1.0)
		}
	}
}

func Test_grad03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grad03. MUSCL face states reproduce the linear field exactly")

	g, err := geom.NewGeometry(gridMesh(4, 4), nil)
	if err != nil {
		tst.Errorf("mesh: %v", err)
		return
	}
	v := state.NewVariables(2, g.CellCount(), testGas())
	a, bx, by := linearField(g, v)
	LeastSquaresGradients(g, v)
	ComputeLimiters(g, v, LimiterNone, 0)

	VL := make([]float64, v.NVar)
	VR := make([]float64, v.NVar)
	for e := 0; e < g.EdgeCount(); e++ {
		ed := g.Edge(e)
		Reconstruct(g, v, ed.I, ed.J, ed.Midpoint, true, VL, VR)
		for k := 0; k < v.NVar; k++ {
			want := a[k] + bx[k]*ed.Midpoint[0] + by[k]*ed.Midpoint[1]
			chk.Scalar(tst, "VL", 1e-9*(1+mathAbs(want)), VL[k], want)
			chk.Scalar(tst, "VR", 1e-9*(1+mathAbs(want)), VR[k], want)
		}
	}
}

func Test_grad04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grad04. Green-Gauss gradients are exact on uniform fields")

	g, err := geom.NewGeometry(gridMesh(5, 4), nil)
	if err != nil {
		tst.Errorf("mesh: %v", err)
		return
	}
	v := state.NewVariables(2, g.CellCount(), testGas())
	Vinf := []float64{1.2, 60, -20, 101325}
	v.SetFreestream(Vinf)

	GreenGaussGradients(g, v)
	for c := 0; c < v.NCells; c++ {
		for k := 0; k < v.NVar; k++ {
			chk.Scalar(tst, "ddx", 1e-9*(1+mathAbs(Vinf[k])), v.GradV[c][k][0], 0)
			chk.Scalar(tst, "ddy", 1e-9*(1+mathAbs(Vinf[k])), v.GradV[c][k][1], 0)
		}
	}
}

func Test_grad05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grad05. pressure sensor vanishes on smooth fields")

	g, err := geom.NewGeometry(gridMesh(4, 4), nil)
	if err != nil {
		tst.Errorf("mesh: %v", err)
		return
	}
	v := state.NewVariables(2, g.CellCount(), testGas())
	v.SetFreestream([]float64{1.0, 100, 0, 101325})
	PressureSensorAndLaplacian(g, v)
	for c := 0; c < v.NCells; c++ {
		chk.Scalar(tst, "sensor", 1e-13, v.Undiv2[c], 0)
	}
}
