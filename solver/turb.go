// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/nbatista0630/su2edu-go/config"
	"github.com/nbatista0630/su2edu-go/ferr"
	"github.com/nbatista0630/su2edu-go/geom"
	"github.com/nbatista0630/su2edu-go/linsolve"
	"github.com/nbatista0630/su2edu-go/numerics"
	"github.com/nbatista0630/su2edu-go/sparse"
	"github.com/nbatista0630/su2edu-go/state"
)

// TurbSolver advances the turbulence transport equations. It shares the
// mean-flow Variables read-only and owns the TurbulenceState; coupling is
// loose: the mean flow sees the previous eddy viscosity, the turbulence
// solve sees the current mean primitives.
type TurbSolver struct {
	Geo  *geom.Geometry
	Cfg  *config.Config
	Mean *MeanSolver
	TS   *state.TurbulenceState

	Res []float64
	Mat *sparse.Matrix

	krylov  linsolve.Krylov
	precond linsolve.Preconditioner
	linOpts linsolve.Options

	ndim, nvar int
}

// NewTurbSolver wires a turbulence solver next to an existing mean-flow
// solver.
func NewTurbSolver(mean *MeanSolver) (*TurbSolver, error) {
	var model state.TurbModel
	switch mean.Cfg.Turbulence {
	case config.TurbSA:
		model = state.TurbSA
	case config.TurbSST:
		model = state.TurbSST
	default:
		return nil, ferr.New(ferr.InputInvalid, "turbulence solver requested with model %q", mean.Cfg.Turbulence)
	}

	o := &TurbSolver{
		Geo:  mean.Geo,
		Cfg:  mean.Cfg,
		Mean: mean,
		ndim: mean.ndim,
		nvar: model.NVar(),
	}
	o.TS = state.NewTurbulenceState(model, o.ndim, o.Geo.CellCount())
	o.Res = make([]float64, o.Geo.CellCount()*o.nvar)
	o.Mat = sparse.NewFromPattern(geoEdges{o.Geo}, o.nvar)

	var err error
	o.krylov, err = linsolve.NewKrylov(mean.Cfg.Lin.Name)
	if err != nil {
		return nil, err
	}
	o.precond, err = linsolve.NewPreconditioner(mean.Cfg.Lin.Precond)
	if err != nil {
		return nil, err
	}
	o.linOpts = linsolve.Options{
		RelTol:  mean.Cfg.Lin.Tol,
		MaxIter: mean.Cfg.Lin.MaxIter,
		Restart: mean.Cfg.Lin.Restart,
	}

	o.initFreestream()
	return o, nil
}

// initFreestream seeds the turbulence variables from the freestream
// viscosity: nuTilde ~ 3 nu for SA; k and omega from a 1% intensity and a
// viscosity ratio of 10 for SST.
func (o *TurbSolver) initFreestream() {
	v := o.Mean.Vars
	for c := 0; c < o.Geo.CellCount(); c++ {
		rho := v.V[c][0]
		nu := v.MuLaminar[c] / rho
		switch o.TS.Model {
		case state.TurbSA:
			o.TS.T[c][0] = 3 * nu
		case state.TurbSST:
			vinf2 := 0.0
			for d := 0; d < o.ndim; d++ {
				vinf2 += v.V[c][1+d] * v.V[c][1+d]
			}
			k := 1.5 * 1e-4 * vinf2 // 1% intensity
			if k < 1e-10 {
				k = 1e-10
			}
			omega := rho * k / (10 * v.MuLaminar[c])
			o.TS.T[c][0] = k
			o.TS.T[c][1] = omega
		}
	}
	o.UpdateEddyViscosity()
}

// gradients computes Green-Gauss gradients of the turbulence variables.
func (o *TurbSolver) gradients() {
	for c := 0; c < o.Geo.CellCount(); c++ {
		for k := 0; k < o.nvar; k++ {
			for d := 0; d < o.ndim; d++ {
				o.TS.GradT[c][k][d] = 0
			}
		}
	}
	for e := 0; e < o.Geo.EdgeCount(); e++ {
		ed := o.Geo.Edge(e)
		for k := 0; k < o.nvar; k++ {
			avg := 0.5 * (o.TS.T[ed.I][k] + o.TS.T[ed.J][k])
			for d := 0; d < o.ndim; d++ {
				o.TS.GradT[ed.I][k][d] += avg * ed.Normal[d]
				o.TS.GradT[ed.J][k][d] -= avg * ed.Normal[d]
			}
		}
	}
	for _, bf := range o.Geo.BoundaryFaces() {
		c := bf.Cell
		for k := 0; k < o.nvar; k++ {
			for d := 0; d < o.ndim; d++ {
				o.TS.GradT[c][k][d] += o.TS.T[c][k] * bf.Normal[d]
			}
		}
	}
	for c := 0; c < o.Geo.CellCount(); c++ {
		vol := o.Geo.Volume(c)
		for k := 0; k < o.nvar; k++ {
			for d := 0; d < o.ndim; d++ {
				o.TS.GradT[c][k][d] /= vol
			}
		}
	}
}

// refreshBlending recomputes the SST blending functions per cell.
func (o *TurbSolver) refreshBlending() {
	if o.TS.Model != state.TurbSST {
		return
	}
	v := o.Mean.Vars
	for c := 0; c < o.Geo.CellCount(); c++ {
		F1, F2, _ := numerics.SSTBlending(numerics.SSTBlendingIn{
			K: o.TS.T[c][0], Omega: o.TS.T[c][1],
			Rho: v.V[c][0], MuLam: v.MuLaminar[c],
			WallDist:  o.Geo.WallDistance(c),
			GradK:     o.TS.GradT[c][0],
			GradOmega: o.TS.GradT[c][1],
		})
		o.TS.F1[c], o.TS.F2[c] = F1, F2
	}
}

// Iterate performs one implicit turbulence subiteration at the given CFL.
func (o *TurbSolver) Iterate(cfl float64) error {
	o.gradients()
	o.refreshBlending()
	o.assemble()

	// pseudo-time diagonal reuses the mean-flow time step
	o.Mean.ComputeTimeSteps(cfl)
	for c := 0; c < o.Geo.CellCount(); c++ {
		d := o.Mat.DiagBlock(c)
		vdt := o.Geo.Volume(c) / o.Mean.Vars.Dt[c]
		for k := 0; k < o.nvar; k++ {
			d[k*o.nvar+k] += vdt
		}
	}

	if err := o.precond.Setup(o.Mat); err != nil {
		return err
	}
	b := make([]float64, len(o.Res))
	for i, r := range o.Res {
		b[i] = -r
	}
	dT := make([]float64, len(b))
	res, err := o.krylov.Solve(o.Mat, b, dT, o.precond, o.linOpts)
	if err != nil {
		return err
	}
	if res.Stagnated {
		return ferr.New(ferr.LinearSolverDiverged, "turbulence linear solve stagnated at %g", res.Residual)
	}

	for c := 0; c < o.Geo.CellCount(); c++ {
		for k := 0; k < o.nvar; k++ {
			o.TS.T[c][k] += dT[c*o.nvar+k]
		}
	}
	o.clip()
	o.UpdateEddyViscosity()
	return nil
}

// clip enforces positivity of the transported variables.
func (o *TurbSolver) clip() {
	for c := 0; c < o.Geo.CellCount(); c++ {
		switch o.TS.Model {
		case state.TurbSA:
			// the SA working variable may go slightly negative; a hard
			// floor well below freestream keeps the update stable
			if o.TS.T[c][0] < 0 {
				o.TS.T[c][0] = 0
			}
		case state.TurbSST:
			if o.TS.T[c][0] < 1e-10 {
				o.TS.T[c][0] = 1e-10
			}
			if o.TS.T[c][1] < 1e-6 {
				o.TS.T[c][1] = 1e-6
			}
		}
	}
}

// UpdateEddyViscosity writes mu_t into the mean-flow Variables, closing the
// loose coupling loop.
func (o *TurbSolver) UpdateEddyViscosity() {
	v := o.Mean.Vars
	for c := 0; c < o.Geo.CellCount(); c++ {
		rho := v.V[c][0]
		switch o.TS.Model {
		case state.TurbSA:
			v.MuTurb[c] = rho * o.TS.T[c][0] * numerics.SAFv1(o.TS.T[c][0], v.MuLaminar[c]/rho)
		case state.TurbSST:
			strain := numerics.StrainMagnitude(velocityGradient(v, c, o.ndim), o.ndim)
			v.MuTurb[c] = numerics.SSTEddyViscosity(rho, o.TS.T[c][0], o.TS.T[c][1], strain, o.TS.F2[c])
		}
	}
}

// velocityGradient views the velocity block of the primitive gradient.
func velocityGradient(v *state.Variables, c, ndim int) [][]float64 {
	return v.GradV[c][1 : 1+ndim]
}

// ResidualNorms returns the RMS residual per turbulence variable.
func (o *TurbSolver) ResidualNorms() []float64 {
	norms := make([]float64, o.nvar)
	n := o.Geo.CellCount()
	for c := 0; c < n; c++ {
		for k := 0; k < o.nvar; k++ {
			r := o.Res[c*o.nvar+k]
			norms[k] += r * r
		}
	}
	for k := range norms {
		norms[k] = math.Sqrt(norms[k] / float64(n))
	}
	return norms
}
