// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/nbatista0630/su2edu-go/config"
	"github.com/nbatista0630/su2edu-go/ferr"
	"github.com/nbatista0630/su2edu-go/geom"
	"github.com/nbatista0630/su2edu-go/numerics"
)

// applyBoundary accumulates the boundary-face fluxes into the residual and
// (when implicit) the diagonal Jacobian blocks. Every marker present in the
// geometry must have a condition in the config.
func (o *MeanSolver) applyBoundary(implicit bool) error {
	for _, marker := range o.Geo.Markers() {
		bc, ok := o.Cfg.BCs[marker]
		if !ok {
			return ferr.New(ferr.InputInvalid, "boundary marker %q has no condition configured", marker)
		}
		for _, bf := range o.Geo.BoundaryFacesByMarker(marker) {
			if err := o.boundaryFlux(bf, bc, implicit); err != nil {
				return err
			}
		}
	}
	return nil
}

// boundaryFlux dispatches one boundary face to its condition kind.
func (o *MeanSolver) boundaryFlux(bf geom.BoundaryFace, bc *config.BC, implicit bool) error {
	switch bc.Kind {
	case config.BCSymmetry:
		o.slipWallFlux(bf, implicit)
	case config.BCWallHeatflux:
		o.slipWallFlux(bf, implicit)
		if o.Cfg.Viscous() {
			o.noSlipViscous(bf, implicit, false, 0)
		}
	case config.BCWallIsothermal:
		o.slipWallFlux(bf, implicit)
		if o.Cfg.Viscous() {
			o.noSlipViscous(bf, implicit, true, bc.Prms.Find("Twall").V)
		}
	case config.BCFarfield:
		o.ghostFlux(bf, o.Freestream, implicit)
	case config.BCInletTotal:
		o.ghostFlux(bf, o.totalInletGhost(bf, bc), implicit)
	case config.BCOutletPressure:
		o.ghostFlux(bf, o.pressureOutletGhost(bf, bc), implicit)
	default:
		return ferr.New(ferr.InputInvalid, "unknown boundary kind %q", bc.Kind)
	}
	return nil
}

// slipWallFlux adds the zero-mass-flux wall contribution: only the
// pressure acts on the momentum equations.
func (o *MeanSolver) slipWallFlux(bf geom.BoundaryFace, implicit bool) {
	nvar := o.nvar
	c := bf.Cell
	V := o.Vars.V[c]
	p := V[nvar-1]
	for d := 0; d < o.ndim; d++ {
		o.Res[c*nvar+1+d] += p * bf.Normal[d]
	}
	if !implicit || o.Mat == nil {
		return
	}
	// dp/dU = (gamma-1) [ke, -u_1.., 1]
	g1 := o.Gas.Gamma - 1
	ke := 0.0
	for d := 0; d < o.ndim; d++ {
		ke += 0.5 * V[1+d] * V[1+d]
	}
	diag := o.Mat.DiagBlock(c)
	for d := 0; d < o.ndim; d++ {
		row := (1 + d) * nvar
		diag[row+0] += bf.Normal[d] * g1 * ke
		for s := 0; s < o.ndim; s++ {
			diag[row+1+s] -= bf.Normal[d] * g1 * V[1+s]
		}
		diag[row+nvar-1] += bf.Normal[d] * g1
	}
}

// noSlipViscous adds the wall shear (and conduction, for isothermal walls)
// using the two-point normal derivative between the cell center and the
// wall face.
func (o *MeanSolver) noSlipViscous(bf geom.BoundaryFace, implicit, isothermal bool, Twall float64) {
	nvar := o.nvar
	c := bf.Cell
	V := o.Vars.V[c]
	area, unit := normalSplit(bf.Normal)

	x := o.Geo.Position(c)
	dist := 0.0
	for d := 0; d < o.ndim; d++ {
		dist += (bf.Midpoint[d] - x[d]) * unit[d]
	}
	dist = math.Abs(dist)
	if dist < 1e-12 {
		dist = 1e-12
	}

	mu := o.Vars.MuLaminar[c] + o.Vars.MuTurb[c]
	coefM := mu * area / dist
	for d := 0; d < o.ndim; d++ {
		o.Res[c*nvar+1+d] += coefM * V[1+d]
	}

	coefE := 0.0
	if isothermal {
		cp := o.Gas.Cp()
		k := cp * (o.Vars.MuLaminar[c]/o.Gas.PrLam + o.Vars.MuTurb[c]/o.Gas.PrTurb)
		coefE = k * area / dist
		o.Res[c*nvar+nvar-1] += coefE * (o.Vars.Temperature[c] - Twall)
	}

	if !implicit || o.Mat == nil {
		return
	}
	rho := V[0]
	diag := o.Mat.DiagBlock(c)
	for d := 0; d < o.ndim; d++ {
		row := (1 + d) * nvar
		diag[row+0] += coefM * (-V[1+d] / rho)
		diag[row+1+d] += coefM / rho
	}
	if isothermal {
		cv := o.Gas.Cp() / o.Gas.Gamma
		ke := 0.0
		for d := 0; d < o.ndim; d++ {
			ke += 0.5 * V[1+d] * V[1+d]
		}
		E := o.Vars.Temperature[c]*cv + ke
		row := (nvar - 1) * nvar
		diag[row+0] += coefE * (2*ke - E) / (rho * cv)
		for d := 0; d < o.ndim; d++ {
			diag[row+1+d] += coefE * (-V[1+d] / (rho * cv))
		}
		diag[row+nvar-1] += coefE / (rho * cv)
	}
}

// ghostFlux evaluates the characteristic Roe flux between the interior
// state and a ghost state, adding it to the owning cell's residual. Only
// the interior-side Jacobian is kept; the ghost is frozen.
func (o *MeanSolver) ghostFlux(bf geom.BoundaryFace, ghost []float64, implicit bool) {
	nvar := o.nvar
	c := bf.Cell
	face := numerics.Face{
		Normal: bf.Normal,
		VL:     o.Vars.V[c],
		VR:     ghost,
	}
	F := make([]float64, nvar)
	o.farfield.Flux(&face, F)
	for k := 0; k < nvar; k++ {
		o.Res[c*nvar+k] += F[k]
	}
	if !implicit || o.Mat == nil {
		return
	}
	JL := make([]float64, nvar*nvar)
	JR := make([]float64, nvar*nvar)
	o.farfield.Jacobian(&face, JL, JR)
	o.Mat.AddAt(c, c, JL)
}

// totalInletGhost builds the inlet state from total pressure/temperature
// and the configured flow direction, taking the static pressure from the
// interior (subsonic inflow carries one outgoing characteristic).
func (o *MeanSolver) totalInletGhost(bf geom.BoundaryFace, bc *config.BC) []float64 {
	nvar := o.nvar
	c := bf.Cell
	ptot := bc.Prms.Find("Ptot").V
	ttot := bc.Prms.Find("Ttot").V
	p := o.Vars.V[c][nvar-1]
	if p > ptot {
		p = ptot
	}

	gam := o.Gas.Gamma
	T := ttot * math.Pow(p/ptot, (gam-1)/gam)
	m2 := 2 / (gam - 1) * (ttot/T - 1)
	if m2 < 0 {
		m2 = 0
	}
	speed := math.Sqrt(m2) * o.Gas.SoundSpeed(T)
	rho := p / (o.Gas.Rgas * T)

	// inflow direction: configured "dir_*" parameters, else inward normal
	dir := make([]float64, o.ndim)
	names := []string{"dir_x", "dir_y", "dir_z"}
	have := false
	for d := 0; d < o.ndim; d++ {
		if prm := bc.Prms.Find(names[d]); prm != nil {
			dir[d] = prm.V
			have = true
		}
	}
	if !have {
		_, unit := normalSplit(bf.Normal)
		for d := 0; d < o.ndim; d++ {
			dir[d] = -unit[d]
		}
	}
	norm := 0.0
	for d := 0; d < o.ndim; d++ {
		norm += dir[d] * dir[d]
	}
	norm = math.Sqrt(norm)

	ghost := make([]float64, nvar)
	ghost[0] = rho
	for d := 0; d < o.ndim; d++ {
		ghost[1+d] = speed * dir[d] / norm
	}
	ghost[nvar-1] = p
	return ghost
}

// pressureOutletGhost imposes the back pressure on subsonic outflow and
// extrapolates everything for supersonic outflow.
func (o *MeanSolver) pressureOutletGhost(bf geom.BoundaryFace, bc *config.BC) []float64 {
	nvar := o.nvar
	c := bf.Cell
	V := o.Vars.V[c]
	ghost := append([]float64(nil), V...)

	_, unit := normalSplit(bf.Normal)
	vn := 0.0
	for d := 0; d < o.ndim; d++ {
		vn += V[1+d] * unit[d]
	}
	cs := math.Sqrt(o.Gas.Gamma * V[nvar-1] / V[0])
	if vn < cs { // subsonic: back pressure wins
		ghost[nvar-1] = bc.Prms.Find("Pback").V
	}
	return ghost
}

func normalSplit(n []float64) (area float64, unit []float64) {
	for _, v := range n {
		area += v * v
	}
	area = math.Sqrt(area)
	unit = make([]float64, len(n))
	if area > 0 {
		for i, v := range n {
			unit[i] = v / area
		}
	}
	return
}
