// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsolve

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"

	"github.com/nbatista0630/su2edu-go/sparse"
)

// chainEdges is a path graph 0-1-2-...-(n-1), the simplest dual mesh.
type chainEdges struct{ n int }

func (c chainEdges) CellCount() int          { return c.n }
func (c chainEdges) EdgeCount() int          { return c.n - 1 }
func (c chainEdges) Edge(e int) (int, int)   { return e, e + 1 }

// laplacian1D builds the block tridiagonal system from a 1D diffusion
// stencil: diag 2.1 I (plus a 0.2 entry in the first row of each diagonal
// block when bsz > 1), off-diagonals -I. The 0.2 entry makes it nonsymmetric
// and not diagonally dominant in every row, but all eigenvalues lie in
// (0.1, 4.1), so every solver/preconditioner pair must converge.
func laplacian1D(n, bsz int) *sparse.Matrix {
	m := sparse.NewFromPattern(chainEdges{n: n}, bsz)
	for r := 0; r < n; r++ {
		d := m.DiagBlock(r)
		for k := 0; k < bsz; k++ {
			d[k*bsz+k] = 2.1
		}
		// a small off-diagonal coupling inside the block
		if bsz > 1 {
			d[1] = 0.2
		}
		for _, c := range []int{r - 1, r + 1} {
			if c < 0 || c >= n {
				continue
			}
			if b, ok := m.Block(r, c); ok {
				for k := 0; k < bsz; k++ {
					b[k*bsz+k] = -1
				}
			}
		}
	}
	return m
}

func residualNorm(m *sparse.Matrix, x, b []float64) float64 {
	r := make([]float64, len(b))
	m.SpMV(x, r)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	return floats.Norm(r, 2)
}

func Test_lin01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lin01. every Krylov/preconditioner pair solves the block Laplacian")

	n, bsz := 40, 4
	m := laplacian1D(n, bsz)
	b := make([]float64, n*bsz)
	for i := range b {
		b[i] = 1 + float64(i%7)
	}

	for _, kname := range []string{"gmres", "bicgstab"} {
		for _, pname := range []string{"jacobi", "ilu0", "sgs"} {
			k, err := NewKrylov(kname)
			if err != nil {
				tst.Errorf("alloc %s: %v", kname, err)
				return
			}
			p, err := NewPreconditioner(pname)
			if err != nil {
				tst.Errorf("alloc %s: %v", pname, err)
				return
			}
			if err := p.Setup(m); err != nil {
				tst.Errorf("setup %s: %v", pname, err)
				return
			}
			x := make([]float64, n*bsz)
			res, err := k.Solve(m, b, x, p, Options{RelTol: 1e-10, MaxIter: 500, Restart: 20})
			if err != nil {
				tst.Errorf("%s+%s: %v", kname, pname, err)
				return
			}
			if !res.Converged {
				tst.Errorf("%s+%s did not converge: %+v", kname, pname, res)
				return
			}
			nb := floats.Norm(b, 2)
			if rn := residualNorm(m, x, b); rn > 1e-8*nb {
				tst.Errorf("%s+%s: reported convergence but ||b-Ax|| = %g", kname, pname, rn)
			}
		}
	}
}

func Test_lin02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lin02. ILU(0) is exact on a block tridiagonal matrix")

	// with no fill-in to discard, ILU(0) of a tridiagonal matrix is a full
	// LU: a single preconditioner application must solve the system
	n, bsz := 25, 2
	m := laplacian1D(n, bsz)
	b := make([]float64, n*bsz)
	for i := range b {
		b[i] = float64(i + 1)
	}
	var p BlockILU0
	if err := p.Setup(m); err != nil {
		tst.Errorf("setup: %v", err)
		return
	}
	x := make([]float64, n*bsz)
	p.Apply(x, b)
	nb := floats.Norm(b, 2)
	if rn := residualNorm(m, x, b); rn > 1e-10*nb {
		tst.Errorf("ILU(0) should be exact here, residual %g", rn)
	}
}

func Test_lin03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lin03. zero right-hand side returns the zero solution")

	m := laplacian1D(10, 1)
	b := make([]float64, 10)
	x := make([]float64, 10)
	x[3] = 99 // stale initial guess must be cleared
	var k GMRES
	var p BlockJacobi
	p.Setup(m)
	res, err := k.Solve(m, b, x, &p, Options{RelTol: 1e-8, MaxIter: 50, Restart: 10})
	if err != nil {
		tst.Errorf("solve: %v", err)
		return
	}
	if !res.Converged {
		tst.Errorf("expected convergence")
	}
	chk.Scalar(tst, "x stays zero", 1e-15, floats.Norm(x, 2), 0)
}

func Test_lin04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lin04. GMRES honors a tiny iteration cap and returns unconverged")

	// 3 iterations of Jacobi-preconditioned GMRES cannot reach 1e-14 on this
	// system; the solver must return unconverged within the cap, not hang
	m := laplacian1D(30, 2)
	b := make([]float64, 60)
	for i := range b {
		b[i] = 1
	}
	var k GMRES
	var p BlockJacobi
	p.Setup(m)
	x := make([]float64, 60)
	res, err := k.Solve(m, b, x, &p, Options{RelTol: 1e-14, MaxIter: 3, Restart: 2})
	if err != nil {
		tst.Errorf("solve: %v", err)
		return
	}
	if res.Converged {
		tst.Errorf("3 iterations cannot hit 1e-14 here")
	}
	if res.Iterations > 3 {
		tst.Errorf("iteration cap not honored: %d", res.Iterations)
	}
}
