// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import "github.com/cpmech/gosl/chk"

// Variables holds the per-cell mean-flow solution state
// as struct-of-arrays: one slice per physical quantity, indexed by cell.
// Gradient and limiter buffers are written by Numerics and read by Solver;
// Variables itself only maintains the conservative<->primitive duality and
// the admissibility clip.
type Variables struct {
	NDim   int
	NVar   int
	NCells int
	Gas    GasModel

	U [][]float64 // conservative, canonical state
	V [][]float64 // cached primitives [rho, u.., p], derived from U

	// auxiliary primitives not tracked by gradients/limiters
	Temperature []float64
	Enthalpy    []float64
	SoundSpeed  []float64
	MuLaminar   []float64
	MuTurb      []float64 // written by the turbulence solver; read here only

	GradV   [][][]float64 // [cell][var][dim]
	Vmin    [][]float64   // [cell][var], min over edge-neighborhood
	Vmax    [][]float64   // [cell][var], max over edge-neighborhood
	Limiter [][]float64   // [cell][var], phi in [0,1]

	Dt        []float64
	LambdaInv []float64 // inviscid spectral radius
	LambdaVis []float64 // viscous spectral radius
	Undiv2    []float64   // normalized pressure sensor (JST second difference)
	LapU      [][]float64 // undivided Laplacian of U (JST fourth difference)

	UOld    [][]float64 // previous physical-time level (RK stage 0 / BDF2 n)
	UOldOld [][]float64 // two levels back (BDF2 n-1)

	// NonAdmissibleClips counts clip events since the solver last set it to
	// zero (at the start of each implicit update or explicit stage).
	NonAdmissibleClips int
}

// NewVariables allocates a Variables store for ncells cells in ndim
// dimensions.
func NewVariables(ndim, ncells int, gas GasModel) *Variables {
	nv := NVar(ndim)
	v := &Variables{NDim: ndim, NVar: nv, NCells: ncells, Gas: gas}
	alloc := func() [][]float64 {
		s := make([][]float64, ncells)
		for i := range s {
			s[i] = make([]float64, nv)
		}
		return s
	}
	v.U = alloc()
	v.V = alloc()
	v.Vmin = alloc()
	v.Vmax = alloc()
	v.Limiter = alloc()
	v.UOld = alloc()
	v.UOldOld = alloc()
	v.Temperature = make([]float64, ncells)
	v.Enthalpy = make([]float64, ncells)
	v.SoundSpeed = make([]float64, ncells)
	v.MuLaminar = make([]float64, ncells)
	v.MuTurb = make([]float64, ncells)
	v.Dt = make([]float64, ncells)
	v.LambdaInv = make([]float64, ncells)
	v.LambdaVis = make([]float64, ncells)
	v.Undiv2 = make([]float64, ncells)
	v.LapU = alloc()
	v.GradV = make([][][]float64, ncells)
	for i := range v.GradV {
		g := make([][]float64, nv)
		for k := range g {
			g[k] = make([]float64, ndim)
		}
		v.GradV[i] = g
	}
	return v
}

// SetFreestream fills every cell with the given primitive state, used to
// initialize a run.
func (v *Variables) SetFreestream(Vinf []float64) {
	for c := 0; c < v.NCells; c++ {
		copy(v.V[c], Vinf)
		copy(v.U[c], ConservativeFromPrimitives(Vinf, v.Gas, v.NDim))
	}
	v.RefreshPrimitives()
}

// RefreshPrimitives recomputes V and the auxiliary primitives from U for
// every cell. It must be called whenever U changes; it never
// mutates U.
func (v *Variables) RefreshPrimitives() {
	for c := 0; c < v.NCells; c++ {
		v.refreshOne(c)
	}
}

func (v *Variables) refreshOne(c int) {
	V, ok := PrimitivesFromConservative(v.U[c], v.Gas, v.NDim)
	if !ok {
		// Should not happen: Solver clips admissibility before accepting an
		// update. Defensive clamp keeps RefreshPrimitives total.
		v.clipCell(c)
		V, _ = PrimitivesFromConservative(v.U[c], v.Gas, v.NDim)
	}
	copy(v.V[c], V)
	p := V[v.NVar-1]
	v.Temperature[c] = Temperature(V, v.Gas)
	v.Enthalpy[c] = Enthalpy(v.U[c], p)
	v.SoundSpeed[c] = v.Gas.SoundSpeed(v.Temperature[c])
	v.MuLaminar[c] = v.Gas.ViscosityLaminar(v.Temperature[c])
}

// admissFloorRho and admissFloorP bound the clip applied to a non-admissible
// cell: rather than crashing, a tiny positive floor is substituted so
// the outer loop's CFL cutback gets a chance to recover the iteration.
const (
	admissFloorRho = 1e-6
	admissFloorP   = 1e-3
)

// clipCell clips cell c's conservative state to a minimally admissible one
// (positive density and pressure), preserving velocity. Returns true if a
// clip was necessary.
func (v *Variables) clipCell(c int) bool {
	U := v.U[c]
	rho := U[0]
	clipped := false
	if rho <= 0 {
		rho = admissFloorRho
		clipped = true
	}
	vel := make([]float64, v.NDim)
	for d := 0; d < v.NDim; d++ {
		vel[d] = U[1+d] / U[0]
		if U[0] <= 0 {
			vel[d] = 0
		}
	}
	ke := 0.0
	for _, u := range vel {
		ke += 0.5 * u * u
	}
	p := (v.Gas.Gamma - 1) * (U[v.NVar-1] - U[0]*ke)
	if p <= 0 {
		p = admissFloorP
		clipped = true
	}
	if !clipped {
		return false
	}
	Vnew := make([]float64, v.NVar)
	Vnew[0] = rho
	copy(Vnew[1:1+v.NDim], vel)
	Vnew[v.NVar-1] = p
	copy(U, ConservativeFromPrimitives(Vnew, v.Gas, v.NDim))
	v.NonAdmissibleClips++
	return true
}

// CheckAdmissible scans every cell for non-positive density/pressure,
// clipping in place and returning the number of cells that required it.
// The solver calls this once per candidate update; a nonzero count should
// trigger a CFL cutback in the outer loop.
func (v *Variables) CheckAdmissible() int {
	n := 0
	for c := 0; c < v.NCells; c++ {
		if v.clipCell(c) {
			n++
		}
	}
	return n
}

// SaveOld copies the current conservative state into UOld, rotating the
// previous UOld into UOldOld (used by BDF2 dual-time and as the RK base
// state).
func (v *Variables) SaveOld() {
	// after the swap UOldOld holds the previous UOld data; only the new
	// UOld buffer needs filling
	v.UOldOld, v.UOld = v.UOld, v.UOldOld
	for c := 0; c < v.NCells; c++ {
		copy(v.UOld[c], v.U[c])
	}
}

// ZeroGradients clears gradient, limiter and extrema buffers before a fresh
// reconstruction pass.
func (v *Variables) ZeroGradients() {
	for c := 0; c < v.NCells; c++ {
		for k := 0; k < v.NVar; k++ {
			for d := 0; d < v.NDim; d++ {
				v.GradV[c][k][d] = 0
			}
			v.Limiter[c][k] = 1
			v.Vmin[c][k] = v.V[c][k]
			v.Vmax[c][k] = v.V[c][k]
		}
	}
}

// checkShapes panics if two per-cell buffers disagree in length; setup-time
// use only, never in the hot loop.
func checkShapes(name string, got, want int) {
	if got != want {
		chk.Panic("%s: length mismatch: got %d want %d", name, got, want)
	}
}
