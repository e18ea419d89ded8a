// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command su2edu-go runs the compressible-flow solver: it loads a JSON
// configuration and mesh, wires the numerical core, and marches to steady
// state (or through physical time for dual-time runs).
//
//	su2edu-go case.json
//
// Exit codes: 0 converged, 1 diverged, 2 input error, 3 I/O error.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/nbatista0630/su2edu-go/config"
	"github.com/nbatista0630/su2edu-go/ferr"
	"github.com/nbatista0630/su2edu-go/geom"
	"github.com/nbatista0630/su2edu-go/integrate"
	"github.com/nbatista0630/su2edu-go/monitor"
	"github.com/nbatista0630/su2edu-go/solver"
)

// caseFile is the on-disk run description: the core's option bag plus the
// raw mesh handed over by the (external) mesh loader.
type caseFile struct {
	Config config.Config `json:"config"`
	Mesh   geom.RawMesh  `json:"mesh"`
}

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.PfRed("ERROR: %v\n", err)
			os.Exit(2)
		}
	}()

	// message
	io.PfWhite("\nSU2EDU-Go -- compressible finite-volume solver\n\n")

	// case filenamepath
	flag.Parse()
	if len(flag.Args()) < 1 {
		chk.Panic("please provide a case file. Ex.: naca0012.json")
	}
	fnamepath := flag.Arg(0)

	buf, err := os.ReadFile(fnamepath)
	if err != nil {
		io.PfRed("cannot read case file: %v\n", err)
		os.Exit(3)
	}

	var cs caseFile
	if err := json.Unmarshal(buf, &cs); err != nil {
		io.PfRed("cannot parse case file: %v\n", err)
		os.Exit(2)
	}
	cs.Config.SetDefaults()
	if err := cs.Config.Validate(); err != nil {
		io.PfRed("invalid configuration: %v\n", err)
		os.Exit(2)
	}

	g, err := geom.NewGeometry(cs.Mesh, markerSet(&cs.Config))
	if err != nil {
		io.PfRed("invalid mesh: %v\n", err)
		os.Exit(2)
	}
	io.Pf("mesh: %d cells, %d edges, %d boundary faces\n", g.CellCount(), g.EdgeCount(), g.BoundaryFaceCount())

	mean, err := solver.NewMeanSolver(g, &cs.Config)
	if err != nil {
		io.PfRed("cannot build solver: %v\n", err)
		os.Exit(2)
	}
	var turb *solver.TurbSolver
	if cs.Config.Solver == config.RANS {
		turb, err = solver.NewTurbSolver(mean)
		if err != nil {
			io.PfRed("cannot build turbulence solver: %v\n", err)
			os.Exit(2)
		}
	}

	it := integrate.New(mean, turb, &monitor.Console{})
	var out integrate.Outcome
	if cs.Config.Time.Integration == config.DualTimeBDF2 {
		out, err = it.RunUnsteady()
	} else {
		out, err = it.Run()
	}
	if err != nil {
		if errors.Is(err, ferr.Sentinel(ferr.InputInvalid)) {
			io.PfRed("input error: %v\n", err)
			os.Exit(2)
		}
		io.PfRed("run diverged: %v\n", err)
		os.Exit(1)
	}

	io.Pf("\nfinished after %d iterations, residual drop %.2f orders\n", out.Iterations, out.FinalDrop)
	io.Pf("CL = %.6f  CD = %.6f\n", out.Forces.CL, out.Forces.CD)
	if !out.Converged {
		io.Pfyel("residual target not reached\n")
		os.Exit(1)
	}
	os.Exit(0)
}

// markerSet collects the configured marker tags so geometry construction
// can reject faces referencing unknown markers.
func markerSet(cfg *config.Config) map[string]bool {
	if len(cfg.BCs) == 0 {
		return nil
	}
	out := make(map[string]bool, len(cfg.BCs))
	for m := range cfg.BCs {
		out[m] = true
	}
	return out
}
