// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minRowsPerWorker bounds how finely SpMV splits work: below this many
// block rows, running single-threaded avoids goroutine overhead dominating
// the sparse matrix-vector product.
const minRowsPerWorker = 512

// SpMV computes y = M*x (block-sparse matrix-vector product). x and y have
// length NRows*BlockSize; y must not alias x. Row ranges are independent, so
// the product is split across a bounded worker pool via errgroup.
func (m *Matrix) SpMV(x, y []float64) {
	n := m.BlockSize
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if m.NRows < minRowsPerWorker || workers == 1 {
		m.spmvRange(0, m.NRows, x, y, n)
		return
	}

	chunk := (m.NRows + workers - 1) / workers
	g, _ := errgroup.WithContext(context.Background())
	for start := 0; start < m.NRows; start += chunk {
		end := start + chunk
		if end > m.NRows {
			end = m.NRows
		}
		start, end := start, end
		g.Go(func() error {
			m.spmvRange(start, end, x, y, n)
			return nil
		})
	}
	_ = g.Wait() // spmvRange never errors; Wait only serves as the barrier
}

func (m *Matrix) spmvRange(rowLo, rowHi int, x, y []float64, n int) {
	for row := rowLo; row < rowHi; row++ {
		out := y[row*n : row*n+n]
		for k := range out {
			out[k] = 0
		}
		for pos := m.RowPtr[row]; pos < m.RowPtr[row+1]; pos++ {
			col := m.ColIdx[pos]
			blockMatVec(out, m.Blocks[pos], x[col*n:col*n+n], n, true)
		}
	}
}
