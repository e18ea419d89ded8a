// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sparse implements the block-sparse Jacobian storage: a matrix of
// fixed-size dense nVar x nVar blocks, stored as CSR-of-blocks with a
// connectivity pattern isomorphic to the mesh's dual graph plus diagonals.
// The pattern is fixed once at construction and never changes; only block
// values are zeroed and refilled every implicit iteration, mirroring gosl's
// la.Triplet assembly pattern generalized from scalar to block entries
// because gosl itself has no block-sparse type.
package sparse

import "sort"

// Matrix is a CSR-of-blocks sparse matrix with block size BlockSize.
type Matrix struct {
	NRows     int // number of block rows == number of cells
	BlockSize int

	RowPtr []int       // length NRows+1
	ColIdx []int       // length RowPtr[NRows], sorted within each row
	Blocks [][]float64 // length RowPtr[NRows], each BlockSize*BlockSize, row-major

	diagPos []int // length NRows: index into ColIdx/Blocks of the diagonal entry
}

// EdgeList is the minimal connectivity contract sparse needs from geom: for
// every interior edge, the pair of cell indices it connects.
type EdgeList interface {
	CellCount() int
	EdgeCount() int
	Edge(e int) (i, j int)
}

// NewFromPattern builds the fixed CSR-of-blocks pattern from a mesh's dual
// connectivity: row i has a diagonal entry plus one off-diagonal column for
// every cell adjacent to i via an edge.
func NewFromPattern(edges EdgeList, blockSize int) *Matrix {
	n := edges.CellCount()
	neighbors := make([][]int, n)
	for c := 0; c < n; c++ {
		neighbors[c] = append(neighbors[c], c) // diagonal always present
	}
	for e := 0; e < edges.EdgeCount(); e++ {
		i, j := edges.Edge(e)
		neighbors[i] = append(neighbors[i], j)
		neighbors[j] = append(neighbors[j], i)
	}

	m := &Matrix{NRows: n, BlockSize: blockSize}
	m.RowPtr = make([]int, n+1)
	m.diagPos = make([]int, n)
	total := 0
	for c := 0; c < n; c++ {
		sort.Ints(neighbors[c])
		total += len(neighbors[c])
	}
	m.ColIdx = make([]int, 0, total)
	m.Blocks = make([][]float64, 0, total)
	bsz := blockSize * blockSize
	for c := 0; c < n; c++ {
		m.RowPtr[c] = len(m.ColIdx)
		for _, col := range neighbors[c] {
			if col == c {
				m.diagPos[c] = len(m.ColIdx)
			}
			m.ColIdx = append(m.ColIdx, col)
			m.Blocks = append(m.Blocks, make([]float64, bsz))
		}
	}
	m.RowPtr[n] = len(m.ColIdx)
	return m
}

// Zero clears every block to zero, ready for reassembly.
func (m *Matrix) Zero() {
	for _, b := range m.Blocks {
		for i := range b {
			b[i] = 0
		}
	}
}

// findPos locates the CSR position of block (row,col) via binary search
// over the row's sorted column range. It panics if the pattern does not
// contain (row,col): the pattern is fixed at construction and an assembly
// bug that writes off-pattern is a programming error, not a runtime
// condition to recover from.
func (m *Matrix) findPos(row, col int) int {
	lo, hi := m.RowPtr[row], m.RowPtr[row+1]
	for lo < hi {
		mid := (lo + hi) / 2
		c := m.ColIdx[mid]
		switch {
		case c == col:
			return mid
		case c < col:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	panic("sparse: (row,col) not in pattern")
}

// AddAt accumulates block into the (row,col) entry: M[row,col] += block.
func (m *Matrix) AddAt(row, col int, block []float64) {
	pos := m.findPos(row, col)
	dst := m.Blocks[pos]
	for i := range block {
		dst[i] += block[i]
	}
}

// DiagBlock returns the diagonal block of row, as a live slice (mutate in
// place to add, e.g., the local time-step term V_i/dt_i * I).
func (m *Matrix) DiagBlock(row int) []float64 {
	return m.Blocks[m.diagPos[row]]
}

// Block returns the block at (row,col) and whether the pattern contains it.
func (m *Matrix) Block(row, col int) ([]float64, bool) {
	lo, hi := m.RowPtr[row], m.RowPtr[row+1]
	for lo < hi {
		mid := (lo + hi) / 2
		c := m.ColIdx[mid]
		switch {
		case c == col:
			return m.Blocks[mid], true
		case c < col:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return nil, false
}

// NNZBlocks returns the total number of nonzero blocks.
func (m *Matrix) NNZBlocks() int { return len(m.Blocks) }

// CloneStructureAndValues deep-copies the matrix. The pattern slices are
// shared read-only data in principle, but copying them keeps the clone
// fully independent (ILU factorizations mutate their copy in place every
// nonlinear iteration).
func (m *Matrix) CloneStructureAndValues() *Matrix {
	out := &Matrix{NRows: m.NRows, BlockSize: m.BlockSize}
	out.RowPtr = append([]int(nil), m.RowPtr...)
	out.ColIdx = append([]int(nil), m.ColIdx...)
	out.diagPos = append([]int(nil), m.diagPos...)
	out.Blocks = make([][]float64, len(m.Blocks))
	for i, b := range m.Blocks {
		out.Blocks[i] = append([]float64(nil), b...)
	}
	return out
}
