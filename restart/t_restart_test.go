// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package restart

import (
	"bytes"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_restart01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("restart01. save/load round trip with turbulence state")

	s := &Snapshot{
		NVar: 4, TurbNVar: 1, NCells: 3,
		Iteration: 420, CFL: 35.5,
		U: [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}},
		T: [][]float64{{0.1}, {0.2}, {0.3}},
	}
	var buf bytes.Buffer
	if err := Save(&buf, s); err != nil {
		tst.Errorf("save: %v", err)
		return
	}
	got, err := Load(&buf)
	if err != nil {
		tst.Errorf("load: %v", err)
		return
	}
	chk.IntAssert(got.Iteration, 420)
	chk.Scalar(tst, "cfl", 1e-15, got.CFL, 35.5)
	for c := 0; c < 3; c++ {
		chk.Vector(tst, "U row", 1e-15, got.U[c], s.U[c])
		chk.Vector(tst, "T row", 1e-15, got.T[c], s.T[c])
	}
}

func Test_restart02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("restart02. corrupted header is rejected")

	s := &Snapshot{NVar: 4, NCells: 1, U: [][]float64{{1, 2, 3, 4}}}
	var buf bytes.Buffer
	if err := Save(&buf, s); err != nil {
		tst.Errorf("save: %v", err)
		return
	}
	raw := buf.Bytes()
	raw[0] ^= 0xFF
	if _, err := Load(bytes.NewReader(raw)); err == nil {
		tst.Errorf("expected a bad-magic error")
	}
}
