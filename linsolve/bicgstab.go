// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsolve

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/nbatista0630/su2edu-go/sparse"
)

// BiCGStab implements the right-preconditioned stabilized bi-conjugate
// gradient method.
type BiCGStab struct{}

// Name returns "bicgstab".
func (o *BiCGStab) Name() string { return "bicgstab" }

// Solve iterates until the residual target or the iteration cap. Breakdown
// of the recurrence (vanishing rho or omega) is reported as stagnation.
func (o *BiCGStab) Solve(A *sparse.Matrix, b, x []float64, P Preconditioner, opts Options) (Result, error) {
	n := len(b)
	normb := floats.Norm(b, 2)
	if normb == 0 {
		for i := range x {
			x[i] = 0
		}
		return Result{Converged: true}, nil
	}
	target := math.Max(opts.AbsTol, opts.RelTol*normb)
	maxit := opts.MaxIter
	if maxit <= 0 {
		maxit = n
	}

	r := make([]float64, n)
	A.SpMV(x, r)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	rhat := append([]float64(nil), r...)

	p := make([]float64, n)
	v := make([]float64, n)
	s := make([]float64, n)
	t := make([]float64, n)
	ph := make([]float64, n)
	sh := make([]float64, n)

	rho, alpha, omega := 1.0, 1.0, 1.0
	var res Result
	res.Residual = floats.Norm(r, 2)
	if res.Residual <= target {
		res.Converged = true
		return res, nil
	}

	for it := 1; it <= maxit; it++ {
		rhoNew := floats.Dot(rhat, r)
		if math.Abs(rhoNew) < 1e-300 {
			res.Stagnated = true
			return res, nil
		}
		beta := (rhoNew / rho) * (alpha / omega)
		rho = rhoNew
		for i := range p {
			p[i] = r[i] + beta*(p[i]-omega*v[i])
		}
		P.Apply(ph, p)
		A.SpMV(ph, v)
		den := floats.Dot(rhat, v)
		if math.Abs(den) < 1e-300 {
			res.Stagnated = true
			return res, nil
		}
		alpha = rho / den
		for i := range s {
			s[i] = r[i] - alpha*v[i]
		}
		if sn := floats.Norm(s, 2); sn <= target {
			floats.AddScaled(x, alpha, ph)
			res.Iterations = it
			res.Residual = sn
			res.Converged = true
			return res, nil
		}
		P.Apply(sh, s)
		A.SpMV(sh, t)
		tt := floats.Dot(t, t)
		if tt < 1e-300 {
			res.Stagnated = true
			return res, nil
		}
		omega = floats.Dot(t, s) / tt
		if math.Abs(omega) < 1e-300 {
			res.Stagnated = true
			return res, nil
		}
		floats.AddScaled(x, alpha, ph)
		floats.AddScaled(x, omega, sh)
		for i := range r {
			r[i] = s[i] - omega*t[i]
		}
		res.Iterations = it
		res.Residual = floats.Norm(r, 2)
		if res.Residual <= target {
			res.Converged = true
			return res, nil
		}
	}
	return res, nil
}
