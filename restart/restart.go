// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package restart reads and writes solution snapshots as a versioned
// binary record: magic header, endian marker, layout counts, then the raw
// conservative and turbulence variables.
package restart

import (
	"encoding/binary"
	"io"

	"github.com/cpmech/gosl/utl"

	"github.com/nbatista0630/su2edu-go/ferr"
)

const (
	magic       = "SU2EDUGO"
	version     = uint32(1)
	endianMark  = uint16(0x0102) // written little-endian; reads as 0x0201 on a big-endian writer
)

// Snapshot is the persisted state of a run.
type Snapshot struct {
	NVar      int
	TurbNVar  int // 0 when no turbulence model is active
	NCells    int
	Iteration int
	CFL       float64

	U [][]float64 // conservative state, [cell][var]
	T [][]float64 // turbulence state, nil when TurbNVar == 0
}

// Save writes the snapshot.
func Save(w io.Writer, s *Snapshot) error {
	if _, err := w.Write([]byte(magic)); err != nil {
		return ferr.New(ferr.InputInvalid, "restart write: %v", err)
	}
	le := binary.LittleEndian
	hdr := []interface{}{
		endianMark,
		version,
		uint32(s.NVar),
		uint32(s.TurbNVar),
		uint64(s.NCells),
		uint64(s.Iteration),
		s.CFL,
	}
	for _, h := range hdr {
		if err := binary.Write(w, le, h); err != nil {
			return ferr.New(ferr.InputInvalid, "restart write: %v", err)
		}
	}
	for c := 0; c < s.NCells; c++ {
		if err := binary.Write(w, le, s.U[c]); err != nil {
			return ferr.New(ferr.InputInvalid, "restart write: %v", err)
		}
	}
	for c := 0; c < s.NCells && s.TurbNVar > 0; c++ {
		if err := binary.Write(w, le, s.T[c]); err != nil {
			return ferr.New(ferr.InputInvalid, "restart write: %v", err)
		}
	}
	return nil
}

// Load reads a snapshot and validates its header.
func Load(r io.Reader) (*Snapshot, error) {
	buf := make([]byte, len(magic))
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ferr.New(ferr.InputInvalid, "restart read: %v", err)
	}
	if string(buf) != magic {
		return nil, ferr.New(ferr.InputInvalid, "restart read: bad magic %q", string(buf))
	}
	le := binary.LittleEndian
	var em uint16
	if err := binary.Read(r, le, &em); err != nil {
		return nil, ferr.New(ferr.InputInvalid, "restart read: %v", err)
	}
	if em != endianMark {
		return nil, ferr.New(ferr.InputInvalid, "restart read: endian marker %#04x (snapshot written on an incompatible platform)", em)
	}
	var ver, nvar, tnvar uint32
	var ncells, iter uint64
	var cfl float64
	for _, dst := range []interface{}{&ver, &nvar, &tnvar, &ncells, &iter, &cfl} {
		if err := binary.Read(r, le, dst); err != nil {
			return nil, ferr.New(ferr.InputInvalid, "restart read: %v", err)
		}
	}
	if ver != version {
		return nil, ferr.New(ferr.InputInvalid, "restart read: unsupported version %d", ver)
	}

	s := &Snapshot{
		NVar:      int(nvar),
		TurbNVar:  int(tnvar),
		NCells:    int(ncells),
		Iteration: int(iter),
		CFL:       cfl,
	}
	s.U = utl.Alloc(s.NCells, s.NVar)
	for c := 0; c < s.NCells; c++ {
		if err := binary.Read(r, le, s.U[c]); err != nil {
			return nil, ferr.New(ferr.InputInvalid, "restart read: %v", err)
		}
	}
	if s.TurbNVar > 0 {
		s.T = utl.Alloc(s.NCells, s.TurbNVar)
		for c := 0; c < s.NCells; c++ {
			if err := binary.Read(r, le, s.T[c]); err != nil {
				return nil, ferr.New(ferr.InputInvalid, "restart read: %v", err)
			}
		}
	}
	return s, nil
}
