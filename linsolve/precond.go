// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linsolve implements the preconditioned Krylov solvers applied to
// the block-sparse implicit system: restarted GMRES and BiCGStab, with
// block-Jacobi, block ILU(0) and symmetric block Gauss-Seidel
// preconditioners. Solves are deliberately loose; the nonlinear outer loop
// only needs a modest residual reduction per step.
package linsolve

import (
	"github.com/nbatista0630/su2edu-go/ferr"
	"github.com/nbatista0630/su2edu-go/sparse"
)

// Preconditioner approximates the inverse of the system matrix: Apply
// writes z = M^-1 r. Setup is called once per nonlinear iteration, after
// the matrix has been refilled.
type Preconditioner interface {
	Setup(m *sparse.Matrix) error
	Apply(z, r []float64)
	Name() string
}

// NewPreconditioner allocates the named preconditioner.
func NewPreconditioner(name string) (Preconditioner, error) {
	switch name {
	case "jacobi":
		return new(BlockJacobi), nil
	case "sgs":
		return new(BlockSGS), nil
	case "ilu0":
		return new(BlockILU0), nil
	}
	return nil, ferr.New(ferr.InputInvalid, "unknown preconditioner %q", name)
}

// blockMatVec computes y (+)= A*x for an n x n row-major block.
func blockMatVec(y, A, x []float64, n int, accumulate bool) {
	for r := 0; r < n; r++ {
		s := 0.0
		row := A[r*n : r*n+n]
		for c := 0; c < n; c++ {
			s += row[c] * x[c]
		}
		if accumulate {
			y[r] += s
		} else {
			y[r] = s
		}
	}
}

// BlockJacobi applies the inverse of the block diagonal.
type BlockJacobi struct {
	m       *sparse.Matrix
	diagInv [][]float64
}

// Setup inverts every diagonal block.
func (o *BlockJacobi) Setup(m *sparse.Matrix) error {
	o.m = m
	o.diagInv = m.InvertDiagonals()
	return nil
}

// Apply computes z = D^-1 r, row by row.
func (o *BlockJacobi) Apply(z, r []float64) {
	n := o.m.BlockSize
	for row := 0; row < o.m.NRows; row++ {
		blockMatVec(z[row*n:row*n+n], o.diagInv[row], r[row*n:row*n+n], n, false)
	}
}

// Name returns "jacobi".
func (o *BlockJacobi) Name() string { return "jacobi" }

// BlockSGS applies one symmetric block Gauss-Seidel sweep:
// (D+L) D^-1 (D+U) z = r, via a forward solve, a diagonal scaling, and a
// backward solve.
type BlockSGS struct {
	m       *sparse.Matrix
	diagInv [][]float64
	work    []float64
}

// Setup inverts the diagonal blocks and sizes the intermediate buffer.
func (o *BlockSGS) Setup(m *sparse.Matrix) error {
	o.m = m
	o.diagInv = m.InvertDiagonals()
	o.work = make([]float64, m.NRows*m.BlockSize)
	return nil
}

// Apply runs the forward then backward sweep.
func (o *BlockSGS) Apply(z, r []float64) {
	n := o.m.BlockSize
	o.m.ForwardSubstitute(o.work, r, o.diagInv)
	// scale by D so the diagonal is not applied twice across the sweeps
	for row := 0; row < o.m.NRows; row++ {
		blockMatVec(z[row*n:row*n+n], o.m.DiagBlock(row), o.work[row*n:row*n+n], n, false)
	}
	o.m.BackwardSubstitute(z, append([]float64(nil), z...), o.diagInv)
}

// Name returns "sgs".
func (o *BlockSGS) Name() string { return "sgs" }

// BlockILU0 holds the incomplete block LU factorization with zero fill-in:
// L and U share the sparsity pattern of the original matrix.
type BlockILU0 struct {
	fac     *sparse.Matrix // factored copy, L strictly below, U on and above
	diagInv [][]float64
}

// Setup copies the matrix and factors it in place. The factorization
// processes rows in increasing order; by the time row i needs inv(U_kk)
// for k < i, that inverse is final.
func (o *BlockILU0) Setup(m *sparse.Matrix) error {
	n := m.BlockSize
	o.fac = m.CloneStructureAndValues()
	o.diagInv = make([][]float64, m.NRows)

	tmp := make([]float64, n*n)
	for row := 0; row < m.NRows; row++ {
		for pos := o.fac.RowPtr[row]; pos < o.fac.RowPtr[row+1]; pos++ {
			k := o.fac.ColIdx[pos]
			if k >= row {
				break
			}
			// L_ik = A_ik * inv(U_kk)
			lik := o.fac.Blocks[pos]
			blockMatMul(tmp, lik, o.diagInv[k], n)
			copy(lik, tmp)
			// A_ij -= L_ik * U_kj for every j > k present in both rows
			for kpos := o.fac.RowPtr[k]; kpos < o.fac.RowPtr[k+1]; kpos++ {
				j := o.fac.ColIdx[kpos]
				if j <= k {
					continue
				}
				if dst, ok := o.fac.Block(row, j); ok {
					blockMatMul(tmp, lik, o.fac.Blocks[kpos], n)
					for i := range dst {
						dst[i] -= tmp[i]
					}
				}
			}
		}
		inv, err := sparse.InvertBlock(o.fac.DiagBlock(row), n)
		if err != nil {
			return ferr.New(ferr.LinearSolverDiverged, "ilu0: singular pivot block at row %d", row)
		}
		o.diagInv[row] = inv
	}
	return nil
}

// Apply solves L y = r (unit lower) then U z = y.
func (o *BlockILU0) Apply(z, r []float64) {
	y := make([]float64, len(r))
	o.fac.ForwardSubstitute(y, r, nil)
	o.fac.BackwardSubstitute(z, y, o.diagInv)
}

// Name returns "ilu0".
func (o *BlockILU0) Name() string { return "ilu0" }

// blockMatMul computes C = A*B for n x n row-major blocks. C must not alias
// A or B.
func blockMatMul(C, A, B []float64, n int) {
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			s := 0.0
			for k := 0; k < n; k++ {
				s += A[r*n+k] * B[k*n+c]
			}
			C[r*n+c] = s
		}
	}
}
