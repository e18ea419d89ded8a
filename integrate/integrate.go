// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package integrate drives the outer iteration: steady pseudo-time
// marching with CFL adaptation, explicit multi-stage Runge-Kutta, and the
// dual-time wrapper for unsteady runs.
package integrate

import (
	"errors"
	"math"

	"github.com/nbatista0630/su2edu-go/config"
	"github.com/nbatista0630/su2edu-go/ferr"
	"github.com/nbatista0630/su2edu-go/monitor"
	"github.com/nbatista0630/su2edu-go/solver"
)

// maxAdmissibleRetries bounds how many consecutive iterations may fail
// recoverably before the run is declared diverged.
const maxAdmissibleRetries = 10

// Integrator owns the outer loop state.
type Integrator struct {
	Mean *solver.MeanSolver
	Turb *solver.TurbSolver // nil for laminar/inviscid runs
	Cfg  *config.Config
	Sink monitor.Sink

	CFL       float64
	Iteration int

	// Stop is polled at every outer-iteration boundary; set it from
	// another goroutine for cooperative cancellation.
	Stop func() bool

	badStreak int
	ref       []float64 // residual norms of the first iteration
}

// New builds an Integrator over an assembled solver pair.
func New(mean *solver.MeanSolver, turb *solver.TurbSolver, sink monitor.Sink) *Integrator {
	if sink == nil {
		sink = monitor.Discard{}
	}
	return &Integrator{
		Mean: mean,
		Turb: turb,
		Cfg:  mean.Cfg,
		Sink: sink,
		CFL:  mean.Cfg.Time.CFLinit,
	}
}

// Outcome summarizes a finished run.
type Outcome struct {
	Converged  bool
	Iterations int
	FinalDrop  float64 // log10 reduction of the density residual
	Forces     solver.Forces
}

// Run marches the steady problem until the residual target, the iteration
// cap, or divergence. Dual-time unsteady runs go through RunUnsteady.
func (o *Integrator) Run() (Outcome, error) {
	var out Outcome
	for o.Iteration < o.Cfg.Time.MaxIter {
		if o.Stop != nil && o.Stop() {
			break
		}
		drop, err := o.step(0)
		if err != nil {
			if recoverable(err) {
				if kerr := o.cutback(err); kerr != nil {
					out.Iterations = o.Iteration
					return out, kerr
				}
				continue
			}
			out.Iterations = o.Iteration
			return out, err
		}
		o.grow()
		out.FinalDrop = drop
		if drop >= o.Cfg.Time.ResidTarget {
			out.Converged = true
			break
		}
	}
	out.Iterations = o.Iteration
	out.Forces = o.Mean.ComputeForces()
	return out, nil
}

// step performs one nonlinear iteration (implicit solve or one RK sweep),
// then the turbulence subiteration, and returns the cumulative log10
// residual drop. physDt > 0 adds the BDF2 physical-time term.
func (o *Integrator) step(physDt float64) (drop float64, err error) {
	m := o.Mean
	m.PrepareGradients()

	linIters := 0
	if o.Cfg.Time.Integration == config.ExplicitRK {
		if err = o.rkSweep(); err != nil {
			return 0, err
		}
	} else {
		if err = m.AssembleResidual(true); err != nil {
			return 0, err
		}
		if physDt > 0 {
			o.addPhysicalTimeTerm(physDt)
		}
		lin, uerr := m.ImplicitUpdate(o.CFL)
		if uerr != nil {
			return 0, uerr
		}
		linIters = lin.Iterations
	}

	if o.Turb != nil {
		if terr := o.Turb.Iterate(o.CFL); terr != nil {
			return 0, terr
		}
	}
	if m.ResidualNaN() {
		return 0, ferr.New(ferr.Diverged, "residual NaN at iteration %d", o.Iteration)
	}

	norms := m.ResidualNorms()
	if o.ref == nil {
		o.ref = append([]float64(nil), norms...)
		for k, r := range o.ref {
			if r < 1e-300 {
				o.ref[k] = 1e-300
			}
		}
	}
	o.Iteration++
	o.report(linIters)
	return math.Log10(o.ref[0] / math.Max(norms[0], 1e-300)), nil
}

// rkSweep runs the multi-stage explicit scheme over one pseudo-time step.
func (o *Integrator) rkSweep() error {
	m := o.Mean
	m.Vars.SaveOld()
	for s, alpha := range o.Cfg.Time.RKAlphas {
		if s > 0 {
			m.PrepareGradients()
		}
		if err := m.AssembleResidual(false); err != nil {
			return err
		}
		if err := m.ExplicitStage(alpha, o.CFL); err != nil {
			return err
		}
	}
	return nil
}

// report pushes the current iteration record to the sink.
func (o *Integrator) report(linIters int) {
	f := o.Mean.ComputeForces()
	r := monitor.Record{
		Iteration: o.Iteration,
		CFL:       o.CFL,
		Residuals: o.Mean.ResidualNorms(),
		CL:        f.CL,
		CD:        f.CD,
		LinIters:  linIters,
	}
	if o.Turb != nil {
		r.TurbRes = o.Turb.ResidualNorms()
	}
	o.Sink.Report(r)
}

// recoverable reports whether the error is of a kind the outer loop may
// retry after a CFL cutback.
func recoverable(err error) bool {
	return errors.Is(err, ferr.Sentinel(ferr.NumericNonAdmissible)) ||
		errors.Is(err, ferr.Sentinel(ferr.LinearSolverDiverged))
}

// cutback shrinks the CFL after a recoverable failure; repeated failures
// or a CFL below the floor become a Diverged error.
func (o *Integrator) cutback(cause error) error {
	o.badStreak++
	o.CFL *= o.Cfg.Time.CFLcutback
	if o.CFL < o.Cfg.Time.CFLfloor {
		return ferr.New(ferr.Diverged, "CFL %g fell below the floor %g (last failure: %v)", o.CFL, o.Cfg.Time.CFLfloor, cause)
	}
	if o.badStreak > maxAdmissibleRetries {
		return ferr.New(ferr.Diverged, "%d consecutive failed iterations (last: %v)", o.badStreak, cause)
	}
	return nil
}

// grow ramps the CFL after a clean iteration.
func (o *Integrator) grow() {
	o.badStreak = 0
	o.CFL = math.Min(o.Cfg.Time.CFLmax, o.CFL*o.Cfg.Time.CFLgrowth)
}
