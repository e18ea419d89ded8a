// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsolve

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/nbatista0630/su2edu-go/ferr"
	"github.com/nbatista0630/su2edu-go/sparse"
)

// Options bundles the convergence controls of a Krylov solve.
type Options struct {
	AbsTol  float64 // absolute residual target
	RelTol  float64 // relative residual target (vs ||b||)
	MaxIter int     // total inner-iteration cap
	Restart int     // GMRES restart length m
}

// Result reports the outcome of a Krylov solve.
type Result struct {
	Iterations int
	Residual   float64 // final true-residual estimate
	Converged  bool
	Stagnated  bool // residual reduction below 1% over a restart cycle
}

// Krylov is the contract of the iterative solvers: solve A x = b with the
// given preconditioner, starting from the x passed in (normally zero).
type Krylov interface {
	Solve(A *sparse.Matrix, b, x []float64, P Preconditioner, opts Options) (Result, error)
	Name() string
}

// NewKrylov allocates the named Krylov method.
func NewKrylov(name string) (Krylov, error) {
	switch name {
	case "gmres":
		return new(GMRES), nil
	case "bicgstab":
		return new(BiCGStab), nil
	}
	return nil, ferr.New(ferr.InputInvalid, "unknown linear solver %q", name)
}

// GMRES implements right-preconditioned restarted GMRES(m) with modified
// Gram-Schmidt orthogonalization and Givens rotations on the Hessenberg
// matrix.
type GMRES struct{}

// Name returns "gmres".
func (o *GMRES) Name() string { return "gmres" }

// Solve runs restarted cycles until the residual target, the iteration
// cap, or stagnation. On stagnation the best iterate found so far is left
// in x and Stagnated is set; the caller decides whether to cut back CFL.
func (o *GMRES) Solve(A *sparse.Matrix, b, x []float64, P Preconditioner, opts Options) (Result, error) {
	n := len(b)
	m := opts.Restart
	if m <= 0 {
		m = 30
	}
	if m > opts.MaxIter && opts.MaxIter > 0 {
		m = opts.MaxIter
	}

	normb := floats.Norm(b, 2)
	if normb == 0 {
		for i := range x {
			x[i] = 0
		}
		return Result{Converged: true}, nil
	}
	target := math.Max(opts.AbsTol, opts.RelTol*normb)

	r := make([]float64, n)
	w := make([]float64, n)
	z := make([]float64, n)
	V := make([][]float64, m+1)
	for i := range V {
		V[i] = make([]float64, n)
	}
	H := make([][]float64, m+1)
	for i := range H {
		H[i] = make([]float64, m)
	}
	cs := make([]float64, m)
	sn := make([]float64, m)
	g := make([]float64, m+1)
	y := make([]float64, m)

	total := 0
	var res Result
	for {
		// true residual at the head of each cycle
		A.SpMV(x, r)
		for i := range r {
			r[i] = b[i] - r[i]
		}
		beta := floats.Norm(r, 2)
		res.Residual = beta
		if beta <= target {
			res.Converged = true
			res.Iterations = total
			return res, nil
		}
		if opts.MaxIter > 0 && total >= opts.MaxIter {
			res.Iterations = total
			return res, nil
		}
		cycleStart := beta

		for i := range g {
			g[i] = 0
		}
		g[0] = beta
		for i := range r {
			V[0][i] = r[i] / beta
		}

		k := 0
		for ; k < m && (opts.MaxIter == 0 || total < opts.MaxIter); k++ {
			P.Apply(z, V[k])
			A.SpMV(z, w)
			// modified Gram-Schmidt
			for j := 0; j <= k; j++ {
				H[j][k] = floats.Dot(w, V[j])
				floats.AddScaled(w, -H[j][k], V[j])
			}
			H[k+1][k] = floats.Norm(w, 2)
			if H[k+1][k] > 1e-300 {
				for i := range w {
					V[k+1][i] = w[i] / H[k+1][k]
				}
			}
			// apply the accumulated Givens rotations, then form a new one
			for j := 0; j < k; j++ {
				t := cs[j]*H[j][k] + sn[j]*H[j+1][k]
				H[j+1][k] = -sn[j]*H[j][k] + cs[j]*H[j+1][k]
				H[j][k] = t
			}
			denom := math.Hypot(H[k][k], H[k+1][k])
			if denom < 1e-300 {
				denom = 1e-300
			}
			cs[k] = H[k][k] / denom
			sn[k] = H[k+1][k] / denom
			H[k][k] = denom
			H[k+1][k] = 0
			g[k+1] = -sn[k] * g[k]
			g[k] = cs[k] * g[k]
			total++
			res.Residual = math.Abs(g[k+1])
			if res.Residual <= target {
				k++
				break
			}
		}

		// back substitution for the Krylov coefficients
		for i := k - 1; i >= 0; i-- {
			y[i] = g[i]
			for j := i + 1; j < k; j++ {
				y[i] -= H[i][j] * y[j]
			}
			y[i] /= H[i][i]
		}
		// x += M^-1 (V y)
		for i := range w {
			w[i] = 0
		}
		for j := 0; j < k; j++ {
			floats.AddScaled(w, y[j], V[j])
		}
		P.Apply(z, w)
		floats.Add(x, z)

		res.Iterations = total
		if res.Residual <= target {
			res.Converged = true
			return res, nil
		}
		if opts.MaxIter > 0 && total >= opts.MaxIter {
			return res, nil
		}
		// stagnation: less than 1% reduction over the whole cycle
		if res.Residual > 0.99*cycleStart {
			res.Stagnated = true
			return res, nil
		}
	}
}
