// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/nbatista0630/su2edu-go/config"
)

// Forces holds the aerodynamic force and moment coefficients integrated
// over the wall markers.
type Forces struct {
	CL, CD, CSF float64   // lift, drag, side force
	CMz         float64   // pitching moment about the reference point
	CF          []float64 // raw body-axis force coefficients (len ndim)
}

// ComputeForces integrates pressure and (for viscous runs) wall shear over
// every wall marker and rotates the result into wind axes.
func (o *MeanSolver) ComputeForces() Forces {
	nvar := o.nvar
	pinf := o.Freestream[nvar-1]
	rhoinf := o.Freestream[0]
	vinf2 := 0.0
	for d := 0; d < o.ndim; d++ {
		vinf2 += o.Freestream[1+d] * o.Freestream[1+d]
	}
	qinf := 0.5 * rhoinf * vinf2 * o.Cfg.Free.RefArea
	if qinf < 1e-300 {
		qinf = 1e-300
	}

	force := make([]float64, o.ndim)
	moment := 0.0
	xref := make([]float64, o.ndim) // moment about the origin of the mesh

	for marker, bc := range o.Cfg.BCs {
		if bc.Kind != config.BCWallHeatflux && bc.Kind != config.BCWallIsothermal {
			continue
		}
		for _, bf := range o.Geo.BoundaryFacesByMarker(marker) {
			c := bf.Cell
			V := o.Vars.V[c]
			p := V[nvar-1]
			df := make([]float64, o.ndim)
			for d := 0; d < o.ndim; d++ {
				df[d] = (p - pinf) * bf.Normal[d]
			}
			if o.Cfg.Viscous() {
				area, unit := normalSplit(bf.Normal)
				x := o.Geo.Position(c)
				dist := 0.0
				for d := 0; d < o.ndim; d++ {
					dist += (bf.Midpoint[d] - x[d]) * unit[d]
				}
				dist = math.Abs(dist)
				if dist < 1e-12 {
					dist = 1e-12
				}
				mu := o.Vars.MuLaminar[c]
				for d := 0; d < o.ndim; d++ {
					// wall shear opposes the near-wall velocity
					df[d] += mu * area / dist * V[1+d]
				}
			}
			for d := 0; d < o.ndim; d++ {
				force[d] += df[d]
			}
			if o.ndim == 2 {
				rx := bf.Midpoint[0] - xref[0]
				ry := bf.Midpoint[1] - xref[1]
				moment += rx*df[1] - ry*df[0]
			}
		}
	}

	f := Forces{CF: make([]float64, o.ndim)}
	for d := 0; d < o.ndim; d++ {
		f.CF[d] = force[d] / qinf
	}
	f.CMz = moment / (qinf * o.Cfg.Free.RefLength)

	// rotate body axes into wind axes
	a := o.Cfg.Free.AoA * math.Pi / 180
	if o.ndim == 2 {
		f.CD = f.CF[0]*math.Cos(a) + f.CF[1]*math.Sin(a)
		f.CL = -f.CF[0]*math.Sin(a) + f.CF[1]*math.Cos(a)
		return f
	}
	b := o.Cfg.Free.Sideslip * math.Pi / 180
	f.CD = f.CF[0]*math.Cos(a)*math.Cos(b) - f.CF[1]*math.Sin(b) + f.CF[2]*math.Sin(a)*math.Cos(b)
	f.CSF = f.CF[0]*math.Cos(a)*math.Sin(b) + f.CF[1]*math.Cos(b) + f.CF[2]*math.Sin(a)*math.Sin(b)
	f.CL = -f.CF[0]*math.Sin(a) + f.CF[2]*math.Cos(a)
	return f
}
