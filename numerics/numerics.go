// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package numerics implements the stencil-local kernels of the flow solver:
// convective flux schemes and their approximate Jacobians, viscous fluxes,
// gradient reconstruction, slope limiters, and the turbulence-closure
// kernels. Every function here is pure with respect to the mesh: it sees one
// edge (or one cell stencil) at a time and writes into caller-provided
// buffers, so the assembly loops above stay free to parallelize.
package numerics

import (
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/nbatista0630/su2edu-go/ferr"
	"github.com/nbatista0630/su2edu-go/state"
)

// Face carries everything a convective scheme may need at one dual face.
// VL/VR are the (possibly MUSCL-reconstructed) primitive states on either
// side; the remaining fields feed the JST dissipation and the scalar
// first-order Jacobians.
type Face struct {
	Normal []float64 // area-scaled, oriented left -> right

	VL, VR []float64 // primitives [rho, u_1..u_d, p]

	// JST sensor and undivided-Laplacian data of the two adjacent cells
	SensL, SensR float64
	LapUL, LapUR []float64

	// number of edge neighbors of the two adjacent cells, used to scale the
	// fourth-difference dissipation consistently on unstructured stencils
	DegL, DegR int
}

// ConvScheme is the contract every convective flux scheme satisfies. Flux
// writes the area-scaled flux through the face into F (length nVar);
// Jacobian writes the approximate derivatives of F with respect to the
// left and right conservative states into JL and JR (row-major nVar*nVar).
// Dispatch happens once at setup; the edge loop calls are monomorphic.
type ConvScheme interface {
	Init(ndim int, gas state.GasModel, prms fun.Prms) error
	Name() string
	Flux(f *Face, F []float64)
	Jacobian(f *Face, JL, JR []float64)
}

// convAllocators holds the available convective schemes, keyed by the
// `convective_scheme` config value.
var convAllocators = make(map[string]func() ConvScheme)

// NewConvScheme allocates and initialises the named convective scheme.
func NewConvScheme(name string, ndim int, gas state.GasModel, prms fun.Prms) (ConvScheme, error) {
	alloc, ok := convAllocators[name]
	if !ok {
		return nil, ferr.New(ferr.InputInvalid, "unknown convective scheme %q (have %v)", name, convSchemeNames())
	}
	s := alloc()
	if err := s.Init(ndim, gas, prms); err != nil {
		return nil, err
	}
	return s, nil
}

func convSchemeNames() []string {
	names := make([]string, 0, len(convAllocators))
	for n := range convAllocators {
		names = append(names, io.Sf("%q", n))
	}
	return names
}
