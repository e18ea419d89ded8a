// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"github.com/nbatista0630/su2edu-go/ferr"
)

// addPhysicalTimeTerm augments the assembled residual and Jacobian with the
// BDF2 derivative vol*(3U - 4U^n + U^{n-1})/(2 dt), turning the steady
// residual into the unsteady one of the current physical step.
func (o *Integrator) addPhysicalTimeTerm(dt float64) {
	m := o.Mean
	v := m.Vars
	nvar := len(v.U[0])
	for c := 0; c < v.NCells; c++ {
		vol := m.Geo.Volume(c)
		coef := vol / (2 * dt)
		for k := 0; k < nvar; k++ {
			m.Res[c*nvar+k] += coef * (3*v.U[c][k] - 4*v.UOld[c][k] + v.UOldOld[c][k])
		}
		if m.Mat != nil {
			d := m.Mat.DiagBlock(c)
			for k := 0; k < nvar; k++ {
				d[k*nvar+k] += 3 * coef
			}
		}
	}
}

// RunUnsteady advances the physical time with dual time stepping: each
// physical step converges the BDF2-augmented residual by inner pseudo-time
// iterations, then rotates the solution history.
func (o *Integrator) RunUnsteady() (Outcome, error) {
	var out Outcome
	dt := o.Cfg.Time.PhysDt
	if dt <= 0 {
		return out, ferr.New(ferr.InputInvalid, "unsteady run needs physical_dt > 0")
	}

	// seed the history so the first BDF2 step degrades to backward Euler
	o.Mean.Vars.SaveOld()
	o.Mean.Vars.SaveOld()

	for step := 0; step < o.Cfg.Time.PhysSteps; step++ {
		if o.Stop != nil && o.Stop() {
			break
		}
		o.ref = nil // residual reference restarts per physical step
		inner := 0
		for ; inner < o.Cfg.Time.InnerIter; inner++ {
			drop, err := o.step(dt)
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
				break
			}
		}
		o.Mean.Vars.SaveOld()
		if o.Turb != nil {
			o.Turb.TS.SaveOld()
		}
	}
	out.Converged = true
	out.Iterations = o.Iteration
	out.Forces = o.Mean.ComputeForces()
	return out, nil
}
