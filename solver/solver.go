// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver assembles and advances the nonlinear systems: one solver
// for the mean flow, one for the turbulence closure, loosely coupled
// through the shared primitives and the eddy viscosity. Each nonlinear
// iteration refreshes primitives, reconstructs gradients and limiters,
// assembles the residual (and Jacobian, when implicit) by an edge loop plus
// boundary contributions, and updates the state.
package solver

import (
	"math"

	"github.com/cpmech/gosl/fun"

	"github.com/nbatista0630/su2edu-go/config"
	"github.com/nbatista0630/su2edu-go/ferr"
	"github.com/nbatista0630/su2edu-go/geom"
	"github.com/nbatista0630/su2edu-go/linsolve"
	"github.com/nbatista0630/su2edu-go/numerics"
	"github.com/nbatista0630/su2edu-go/sparse"
	"github.com/nbatista0630/su2edu-go/state"
)

// MeanSolver advances the mean-flow equations.
type MeanSolver struct {
	Geo  *geom.Geometry
	Cfg  *config.Config
	Gas  state.GasModel
	Vars *state.Variables

	Scheme   numerics.ConvScheme
	farfield numerics.ConvScheme // Roe flux used by the characteristic BCs

	Res []float64      // residual, cell-major [cell*nvar+k]
	Mat *sparse.Matrix // nil for explicit runs

	krylov  linsolve.Krylov
	precond linsolve.Preconditioner
	linOpts linsolve.Options

	Freestream []float64 // primitive freestream state

	ndim, nvar int

	edgeColors [][]int // edge groups with disjoint cell footprints
}

// geoEdges adapts Geometry to the sparse pattern contract.
type geoEdges struct{ g *geom.Geometry }

func (o geoEdges) CellCount() int        { return o.g.CellCount() }
func (o geoEdges) EdgeCount() int        { return o.g.EdgeCount() }
func (o geoEdges) Edge(e int) (int, int) { ed := o.g.Edge(e); return ed.I, ed.J }

// NewMeanSolver wires a mean-flow solver from the geometry and config. The
// config must already be validated.
func NewMeanSolver(g *geom.Geometry, cfg *config.Config) (*MeanSolver, error) {
	gas := state.GasModel{
		Gamma:   cfg.Gas.Gamma,
		Rgas:    cfg.Gas.GasConstant,
		PrLam:   cfg.Gas.PrandtlLaminar,
		PrTurb:  cfg.Gas.PrandtlTurb,
		SuthMu0: state.DefaultAirGasModel().SuthMu0,
		SuthT0:  state.DefaultAirGasModel().SuthT0,
		SuthS:   state.DefaultAirGasModel().SuthS,
	}

	o := &MeanSolver{
		Geo:  g,
		Cfg:  cfg,
		Gas:  gas,
		ndim: cfg.NDim,
		nvar: cfg.NDim + 2,
	}
	o.Vars = state.NewVariables(cfg.NDim, g.CellCount(), gas)
	o.Res = make([]float64, g.CellCount()*o.nvar)

	prms := fun.Prms{
		&fun.Prm{N: "eps_entropy", V: cfg.Num.EntropyFixEps},
		&fun.Prm{N: "kappa2", V: cfg.Num.JSTkappa2},
		&fun.Prm{N: "kappa4", V: cfg.Num.JSTkappa4},
		&fun.Prm{N: "mach_cutoff", V: cfg.Num.LowMachCutoff},
		&fun.Prm{N: "mach_inf", V: cfg.Free.Mach},
	}
	if cfg.Num.LowMachPrec {
		prms = append(prms, &fun.Prm{N: "low_mach", V: 1})
	}
	var err error
	o.Scheme, err = numerics.NewConvScheme(cfg.Num.Scheme, cfg.NDim, gas, prms)
	if err != nil {
		return nil, err
	}
	o.farfield, err = numerics.NewConvScheme(config.SchemeRoe, cfg.NDim, gas, prms)
	if err != nil {
		return nil, err
	}

	if cfg.Time.Integration != config.ExplicitRK {
		o.Mat = sparse.NewFromPattern(geoEdges{g}, o.nvar)
		o.krylov, err = linsolve.NewKrylov(cfg.Lin.Name)
		if err != nil {
			return nil, err
		}
		o.precond, err = linsolve.NewPreconditioner(cfg.Lin.Precond)
		if err != nil {
			return nil, err
		}
		o.linOpts = linsolve.Options{
			AbsTol:  0,
			RelTol:  cfg.Lin.Tol,
			MaxIter: cfg.Lin.MaxIter,
			Restart: cfg.Lin.Restart,
		}
	}

	o.Freestream = freestreamPrimitives(cfg, gas)
	o.Vars.SetFreestream(o.Freestream)

	o.edgeColors = g.ColorEdges()
	return o, nil
}

// freestreamPrimitives builds [rho, u.., p] from the freestream config.
func freestreamPrimitives(cfg *config.Config, gas state.GasModel) []float64 {
	nvar := cfg.NDim + 2
	V := make([]float64, nvar)
	T := cfg.Free.Temperature
	p := cfg.Free.Pressure
	rho := p / (gas.Rgas * T)
	c := gas.SoundSpeed(T)
	speed := cfg.Free.Mach * c
	dir := cfg.FlowAngles()
	V[0] = rho
	for d := 0; d < cfg.NDim; d++ {
		V[1+d] = speed * dir[d]
	}
	V[nvar-1] = p
	return V
}

// PrepareGradients refreshes primitives, reconstructs gradients, computes
// the neighborhood extrema, the limiters, and (for JST) the pressure sensor
// and undivided Laplacian.
func (o *MeanSolver) PrepareGradients() {
	o.Vars.RefreshPrimitives()
	switch o.Cfg.Num.Gradient {
	case config.GradLeastSquares:
		numerics.LeastSquaresGradients(o.Geo, o.Vars)
	default:
		numerics.GreenGaussGradients(o.Geo, o.Vars)
	}
	kind := numerics.LimiterNone
	switch o.Cfg.Num.Limiter {
	case config.LimiterVenkat:
		kind = numerics.LimiterVenkat
	case config.LimiterBarth:
		kind = numerics.LimiterBarth
	}
	numerics.ComputeLimiters(o.Geo, o.Vars, kind, o.Cfg.Num.LimiterCoeff)
	if o.Cfg.Num.Scheme == config.SchemeJST {
		numerics.PressureSensorAndLaplacian(o.Geo, o.Vars)
	}
}

// ResidualNorms returns the RMS of the residual per variable.
func (o *MeanSolver) ResidualNorms() []float64 {
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

// ResidualNaN reports whether any residual entry is NaN or Inf.
func (o *MeanSolver) ResidualNaN() bool {
	for _, r := range o.Res {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return true
		}
	}
	return false
}

// ImplicitUpdate adds the pseudo-time diagonal, solves M dU = -R and
// applies the full update (omega = 1). The update is not under-relaxed:
// cells that come out with non-positive density or pressure are clipped and
// NumericNonAdmissible is returned. Returns the linear-solve result.
func (o *MeanSolver) ImplicitUpdate(cfl float64) (linsolve.Result, error) {
	if o.Mat == nil {
		return linsolve.Result{}, ferr.New(ferr.InputInvalid, "implicit update requested on an explicit solver")
	}
	o.ComputeTimeSteps(cfl)
	n := o.Geo.CellCount()
	for c := 0; c < n; c++ {
		d := o.Mat.DiagBlock(c)
		vdt := o.Geo.Volume(c) / o.Vars.Dt[c]
		for k := 0; k < o.nvar; k++ {
			d[k*o.nvar+k] += vdt
		}
	}

	if err := o.precond.Setup(o.Mat); err != nil {
		return linsolve.Result{}, err
	}
	b := make([]float64, len(o.Res))
	for i, r := range o.Res {
		b[i] = -r
	}
	du := make([]float64, len(b))
	res, err := o.krylov.Solve(o.Mat, b, du, o.precond, o.linOpts)
	if err != nil {
		return res, err
	}
	if res.Stagnated {
		return res, ferr.New(ferr.LinearSolverDiverged, "linear solver stagnated at residual %g after %d iterations", res.Residual, res.Iterations)
	}

	omega := 1.0
	o.Vars.NonAdmissibleClips = 0
	for c := 0; c < n; c++ {
		for k := 0; k < o.nvar; k++ {
			o.Vars.U[c][k] += omega * du[c*o.nvar+k]
		}
	}
	if bad := o.Vars.CheckAdmissible(); bad > 0 {
		return res, ferr.New(ferr.NumericNonAdmissible, "%d cells clipped after implicit update", bad)
	}
	o.Vars.RefreshPrimitives()
	return res, nil
}

// ExplicitStage applies one Runge-Kutta stage: U = Uold - alpha*dt/V * R.
// The caller saves Uold before the first stage and recomputes the residual
// between stages.
func (o *MeanSolver) ExplicitStage(alpha, cfl float64) error {
	o.ComputeTimeSteps(cfl)
	n := o.Geo.CellCount()
	o.Vars.NonAdmissibleClips = 0
	for c := 0; c < n; c++ {
		f := alpha * o.Vars.Dt[c] / o.Geo.Volume(c)
		for k := 0; k < o.nvar; k++ {
			o.Vars.U[c][k] = o.Vars.UOld[c][k] - f*o.Res[c*o.nvar+k]
		}
	}
	if bad := o.Vars.CheckAdmissible(); bad > 0 {
		return ferr.New(ferr.NumericNonAdmissible, "%d cells clipped after explicit stage", bad)
	}
	o.Vars.RefreshPrimitives()
	return nil
}
