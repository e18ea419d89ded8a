// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/nbatista0630/su2edu-go/config"
	"github.com/nbatista0630/su2edu-go/geom"
)

// channelMesh builds an nx x ny triangulated rectangle with the standard
// marker set: walls bottom/top, inlet left, outlet right.
func channelMesh(nx, ny int) geom.RawMesh {
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
			geom.RawBoundaryFace{Marker: "outlet", Verts: []int{id(nx, j), id(nx, j+1)}},
			geom.RawBoundaryFace{Marker: "inlet", Verts: []int{id(0, j+1), id(0, j)}},
		)
	}
	raw.WallMarks = map[string]bool{"bottom": true, "top": true}
	return raw
}

// farfieldConfig configures an inviscid run with farfield on every marker.
func farfieldConfig(scheme string) *config.Config {
	cfg := &config.Config{NDim: 2}
	cfg.SetDefaults()
	cfg.Num.Scheme = scheme
	cfg.BCs = map[string]*config.BC{
		"bottom": {Kind: config.BCFarfield},
		"top":    {Kind: config.BCFarfield},
		"inlet":  {Kind: config.BCFarfield},
		"outlet": {Kind: config.BCFarfield},
	}
	return cfg
}

func buildSolver(tst *testing.T, cfg *config.Config) *MeanSolver {
	if err := cfg.Validate(); err != nil {
		tst.Fatalf("config: %v", err)
	}
	g, err := geom.NewGeometry(channelMesh(6, 4), nil)
	if err != nil {
		tst.Fatalf("mesh: %v", err)
	}
	s, err := NewMeanSolver(g, cfg)
	if err != nil {
		tst.Fatalf("solver: %v", err)
	}
	return s
}

func Test_solver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver01. uniform freestream produces zero residual (Roe)")

	s := buildSolver(tst, farfieldConfig(config.SchemeRoe))
	s.PrepareGradients()
	if err := s.AssembleResidual(false); err != nil {
		tst.Errorf("assemble: %v", err)
		return
	}
	// reference magnitude: the flux scale of a single face
	scale := s.Freestream[0] * 340 * 340
	for i, r := range s.Res {
		if math.Abs(r) > 1e-10*scale {
			tst.Errorf("residual entry %d = %g, want roundoff", i, r)
			return
		}
	}
}

func Test_solver02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver02. freestream preservation holds for every scheme")

	for _, scheme := range []string{config.SchemeRoe, config.SchemeJST, config.SchemeAUSM, config.SchemeHLLC} {
		s := buildSolver(tst, farfieldConfig(scheme))
		s.PrepareGradients()
		if err := s.AssembleResidual(false); err != nil {
			tst.Errorf("assemble %s: %v", scheme, err)
			return
		}
		scale := s.Freestream[0] * 340 * 340
		worst := 0.0
		for _, r := range s.Res {
			if a := math.Abs(r); a > worst {
				worst = a
			}
		}
		if worst > 1e-9*scale {
			tst.Errorf("%s: max residual %g on freestream", scheme, worst)
		}
	}
}

func Test_solver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver03. edge assembly conserves: residual sums to boundary flux only")

	cfg := farfieldConfig(config.SchemeRoe)
	s := buildSolver(tst, cfg)

	// perturb the interior state so edge fluxes are nontrivial
	for c := 0; c < s.Vars.NCells; c++ {
		x := s.Geo.Position(c)
		s.Vars.V[c][0] *= 1 + 0.05*math.Sin(7*x[0]+3*x[1])
		s.Vars.V[c][3] *= 1 + 0.05*math.Cos(5*x[0]-2*x[1])
		copy(s.Vars.U[c], stateConservative(s, c))
	}
	s.PrepareGradients()

	// assemble twice: once full, once with boundary contributions alone
	if err := s.AssembleResidual(false); err != nil {
		tst.Errorf("assemble: %v", err)
		return
	}
	total := make([]float64, s.nvar)
	for c := 0; c < s.Vars.NCells; c++ {
		for k := 0; k < s.nvar; k++ {
			total[k] += s.Res[c*s.nvar+k]
		}
	}

	for i := range s.Res {
		s.Res[i] = 0
	}
	if err := s.applyBoundary(false); err != nil {
		tst.Errorf("boundary: %v", err)
		return
	}
	bnd := make([]float64, s.nvar)
	for c := 0; c < s.Vars.NCells; c++ {
		for k := 0; k < s.nvar; k++ {
			bnd[k] += s.Res[c*s.nvar+k]
		}
	}

	for k := 0; k < s.nvar; k++ {
		chk.Scalar(tst, "interior fluxes cancel", 1e-8*(1+math.Abs(bnd[k])), total[k], bnd[k])
	}
}

func stateConservative(s *MeanSolver, c int) []float64 {
	U := make([]float64, s.nvar)
	V := s.Vars.V[c]
	U[0] = V[0]
	ke := 0.0
	for d := 0; d < s.ndim; d++ {
		U[1+d] = V[0] * V[1+d]
		ke += 0.5 * V[1+d] * V[1+d]
	}
	U[s.nvar-1] = V[s.nvar-1]/(s.Gas.Gamma-1) + V[0]*ke
	return U
}

func Test_solver04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver04. implicit update on freestream leaves the state unchanged")

	s := buildSolver(tst, farfieldConfig(config.SchemeRoe))
	before := make([]float64, s.nvar)
	copy(before, s.Vars.U[10])

	s.PrepareGradients()
	if err := s.AssembleResidual(true); err != nil {
		tst.Errorf("assemble: %v", err)
		return
	}
	if _, err := s.ImplicitUpdate(10); err != nil {
		tst.Errorf("update: %v", err)
		return
	}
	for k := 0; k < s.nvar; k++ {
		chk.Scalar(tst, "U unchanged", 1e-8*(1+math.Abs(before[k])), s.Vars.U[10][k], before[k])
	}
}

func Test_solver05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver05. local time steps are positive and CFL-linear")

	s := buildSolver(tst, farfieldConfig(config.SchemeRoe))
	s.PrepareGradients()
	s.ComputeTimeSteps(5)
	dt5 := append([]float64(nil), s.Vars.Dt...)
	s.ComputeTimeSteps(10)
	for c := range dt5 {
		if dt5[c] <= 0 {
			tst.Errorf("dt[%d] = %g", c, dt5[c])
			return
		}
		chk.Scalar(tst, "dt doubles with CFL", 1e-12*dt5[c], s.Vars.Dt[c], 2*dt5[c])
	}
}

func Test_solver06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver06. slip wall touches only the momentum residual")

	cfg := farfieldConfig(config.SchemeRoe)
	cfg.BCs["bottom"] = &config.BC{Kind: config.BCWallHeatflux}
	s := buildSolver(tst, cfg)

	for i := range s.Res {
		s.Res[i] = 0
	}
	for _, bf := range s.Geo.BoundaryFacesByMarker("bottom") {
		s.slipWallFlux(bf, false)
	}
	for c := 0; c < s.Vars.NCells; c++ {
		if s.Res[c*s.nvar] != 0 || s.Res[c*s.nvar+s.nvar-1] != 0 {
			tst.Errorf("wall flux leaked into mass/energy at cell %d", c)
			return
		}
	}
}

func Test_solver07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver07. uniform pressure on the walls gives zero force coefficients")

	cfg := farfieldConfig(config.SchemeRoe)
	cfg.BCs["bottom"] = &config.BC{Kind: config.BCWallHeatflux}
	cfg.BCs["top"] = &config.BC{Kind: config.BCWallHeatflux}
	s := buildSolver(tst, cfg)

	f := s.ComputeForces()
	chk.Scalar(tst, "CL", 1e-12, f.CL, 0)
	chk.Scalar(tst, "CD", 1e-12, f.CD, 0)
}

func Test_solver08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver08. RANS-SA turbulence subiteration stays finite and positive")

	cfg := farfieldConfig(config.SchemeRoe)
	cfg.Solver = config.RANS
	cfg.Turbulence = config.TurbSA
	s := buildSolver(tst, cfg)
	s.PrepareGradients()

	ts, err := NewTurbSolver(s)
	if err != nil {
		tst.Errorf("turb solver: %v", err)
		return
	}
	if err := ts.Iterate(5); err != nil {
		tst.Errorf("iterate: %v", err)
		return
	}
	for c := 0; c < s.Vars.NCells; c++ {
		nt := ts.TS.T[c][0]
		if math.IsNaN(nt) || nt < 0 {
			tst.Errorf("nuTilde[%d] = %g", c, nt)
			return
		}
		if math.IsNaN(s.Vars.MuTurb[c]) || s.Vars.MuTurb[c] < 0 {
			tst.Errorf("muTurb[%d] = %g", c, s.Vars.MuTurb[c])
			return
		}
	}
}

func Test_solver09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver09. explicit RK stage preserves freestream")

	cfg := farfieldConfig(config.SchemeRoe)
	cfg.Time.Integration = config.ExplicitRK
	s := buildSolver(tst, cfg)

	s.Vars.SaveOld()
	s.PrepareGradients()
	if err := s.AssembleResidual(false); err != nil {
		tst.Errorf("assemble: %v", err)
		return
	}
	if err := s.ExplicitStage(0.5, 1.0); err != nil {
		tst.Errorf("stage: %v", err)
		return
	}
	for k := 0; k < s.nvar; k++ {
		chk.Scalar(tst, "stage keeps freestream", 1e-8*(1+math.Abs(s.Vars.UOld[5][k])), s.Vars.U[5][k], s.Vars.UOld[5][k])
	}
}
