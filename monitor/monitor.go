// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package monitor defines the per-iteration reporting contract and a plain
// console sink.
package monitor

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// Record is one outer iteration's worth of convergence data.
type Record struct {
	Iteration int
	CFL       float64
	Residuals []float64 // RMS per mean-flow variable
	TurbRes   []float64 // RMS per turbulence variable, nil when laminar
	CL, CD    float64
	LinIters  int
}

// Sink receives per-iteration records. Implementations must not retain the
// slices beyond the call.
type Sink interface {
	Report(r Record)
}

// Console prints a terse one-line summary per iteration, with a header
// every 25 lines.
type Console struct {
	Every int // print every n-th iteration; 0 means every iteration
	count int
}

// Report implements Sink.
func (o *Console) Report(r Record) {
	if o.Every > 1 && r.Iteration%o.Every != 0 {
		return
	}
	if o.count%25 == 0 {
		io.Pf("%8s%10s%14s%14s%12s%12s%8s\n", "iter", "cfl", "log10(rho)", "log10(rhoE)", "CL", "CD", "lin")
	}
	o.count++
	lr := math.Log10(math.Max(r.Residuals[0], 1e-300))
	le := math.Log10(math.Max(r.Residuals[len(r.Residuals)-1], 1e-300))
	io.Pf("%8d%10.2f%14.6f%14.6f%12.6f%12.6f%8d\n", r.Iteration, r.CFL, lr, le, r.CL, r.CD, r.LinIters)
}

// Discard is a Sink that drops every record; useful in tests and library
// embeddings.
type Discard struct{}

// Report implements Sink.
func (Discard) Report(Record) {}
