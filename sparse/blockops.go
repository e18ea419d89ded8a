// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// blockMatVec computes y += A*x (or y = A*x if accumulate is false) for an
// n x n dense block A (row-major) and length-n vectors x, y.
func blockMatVec(y []float64, A, x []float64, n int, accumulate bool) {
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

// InvertBlock computes the inverse of an n x n dense block via gonum's
// pivoted LU factorization (mat.Dense.Inverse, LAPACK Dgetrf/Dgetri
// equivalent).
func InvertBlock(block []float64, n int) ([]float64, error) {
	a := mat.NewDense(n, n, append([]float64(nil), block...))
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return nil, fmt.Errorf("sparse: singular block: %w", err)
	}
	out := make([]float64, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			out[r*n+c] = inv.At(r, c)
		}
	}
	return out, nil
}

// InvertDiagonals returns the inverse of every diagonal block, in row
// order, for use by block-Jacobi and as the pivot inverses of block SGS/
// ILU(0). Rows whose diagonal block is (near-)singular get the identity
// block substituted, which degrades the preconditioner gracefully rather
// than propagating NaN into the Krylov iteration.
func (m *Matrix) InvertDiagonals() [][]float64 {
	n := m.BlockSize
	out := make([][]float64, m.NRows)
	for row := 0; row < m.NRows; row++ {
		inv, err := InvertBlock(m.DiagBlock(row), n)
		if err != nil {
			inv = make([]float64, n*n)
			for k := 0; k < n; k++ {
				inv[k*n+k] = 1
			}
		}
		out[row] = inv
	}
	return out
}

// ForwardSubstitute solves, row by row in increasing order, the block
// triangular system built from the strictly-lower part of m plus a
// diagonal: x_row = diagInv[row] * (b_row - sum_{col<row} m[row,col]*x_col).
// If diagInv is nil, the diagonal is treated as the identity (unit-lower
// solve, as used by ILU(0)'s L factor).
func (m *Matrix) ForwardSubstitute(x, b []float64, diagInv [][]float64) {
	n := m.BlockSize
	for row := 0; row < m.NRows; row++ {
		clean := make([]float64, n)
		copy(clean, b[row*n:row*n+n])
		for pos := m.RowPtr[row]; pos < m.RowPtr[row+1]; pos++ {
			col := m.ColIdx[pos]
			if col >= row {
				continue
			}
			sub := make([]float64, n)
			blockMatVec(sub, m.Blocks[pos], x[col*n:col*n+n], n, false)
			for k := 0; k < n; k++ {
				clean[k] -= sub[k]
			}
		}
		if diagInv != nil {
			blockMatVec(x[row*n:row*n+n], diagInv[row], clean, n, false)
		} else {
			copy(x[row*n:row*n+n], clean)
		}
	}
}

// BackwardSubstitute solves, row by row in decreasing order, the block
// triangular system built from the strictly-upper part of m plus a
// diagonal inverse: x_row = diagInv[row] * (b_row - sum_{col>row} m[row,col]*x_col).
func (m *Matrix) BackwardSubstitute(x, b []float64, diagInv [][]float64) {
	n := m.BlockSize
	for row := m.NRows - 1; row >= 0; row-- {
		clean := make([]float64, n)
		copy(clean, b[row*n:row*n+n])
		for pos := m.RowPtr[row]; pos < m.RowPtr[row+1]; pos++ {
			col := m.ColIdx[pos]
			if col <= row {
				continue
			}
			sub := make([]float64, n)
			blockMatVec(sub, m.Blocks[pos], x[col*n:col*n+n], n, false)
			for k := 0; k < n; k++ {
				clean[k] -= sub[k]
			}
		}
		blockMatVec(x[row*n:row*n+n], diagInv[row], clean, n, false)
	}
}
