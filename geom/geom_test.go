// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// unitSquare builds two triangles forming a 1x1 square:
//
//	3---2
//	|  /|
//	| / |
//	0---1
func unitSquare() RawMesh {
	return RawMesh{
		NDim: 2,
		Points: []RawPoint{
			{Coords: []float64{0, 0}},
			{Coords: []float64{1, 0}},
			{Coords: []float64{1, 1}},
			{Coords: []float64{0, 1}},
		},
		Elements: []RawElement{
			{Kind: Triangle, Verts: []int{0, 1, 2}},
			{Kind: Triangle, Verts: []int{0, 2, 3}},
		},
		Boundary: []RawBoundaryFace{
			{Marker: "bottom", Verts: []int{0, 1}},
			{Marker: "right", Verts: []int{1, 2}},
			{Marker: "top", Verts: []int{2, 3}},
			{Marker: "left", Verts: []int{3, 0}},
		},
		WallMarks: map[string]bool{"bottom": true},
	}
}

func TestUnitSquareVolumes(tst *testing.T) {
	chk.PrintTitle("geom01. unit square dual volumes sum to mesh area")
	g, err := NewGeometry(unitSquare(), nil)
	if err != nil {
		tst.Fatalf("NewGeometry failed: %v", err)
	}
	sum := 0.0
	for c := 0; c < g.CellCount(); c++ {
		sum += g.Volume(c)
	}
	chk.Scalar(tst, "sum(dual volumes)", 1e-13, sum, 1.0)
}

func TestUnitSquareEdgeCount(tst *testing.T) {
	chk.PrintTitle("geom02. unit square has 5 edges (4 sides + 1 diagonal)")
	g, err := NewGeometry(unitSquare(), nil)
	if err != nil {
		tst.Fatalf("NewGeometry failed: %v", err)
	}
	if g.EdgeCount() != 5 {
		tst.Fatalf("expected 5 edges, got %d", g.EdgeCount())
	}
}

func TestUnitSquareBoundaryFaceCount(tst *testing.T) {
	chk.PrintTitle("geom03. each boundary segment splits into 2 vertex faces")
	g, err := NewGeometry(unitSquare(), nil)
	if err != nil {
		tst.Fatalf("NewGeometry failed: %v", err)
	}
	if g.BoundaryFaceCount() != 8 {
		tst.Fatalf("expected 8 boundary faces, got %d", g.BoundaryFaceCount())
	}
}

func TestEdgeOrientationLowToHigh(tst *testing.T) {
	chk.PrintTitle("geom04. edges are always oriented I<J")
	g, err := NewGeometry(unitSquare(), nil)
	if err != nil {
		tst.Fatalf("NewGeometry failed: %v", err)
	}
	for e := 0; e < g.EdgeCount(); e++ {
		edge := g.Edge(e)
		if edge.I >= edge.J {
			tst.Fatalf("edge %d not oriented low->high: I=%d J=%d", e, edge.I, edge.J)
		}
	}
}

func TestUnknownMarkerRejected(tst *testing.T) {
	chk.PrintTitle("geom05. unknown boundary marker is InputInvalid")
	raw := unitSquare()
	_, err := NewGeometry(raw, map[string]bool{"bottom": true})
	if err == nil {
		tst.Fatalf("expected error for unrecognized markers right/top/left")
	}
}

func TestDegenerateElementRejected(tst *testing.T) {
	chk.PrintTitle("geom06. a zero-area triangle is GeometryDegenerate")
	raw := RawMesh{
		NDim: 2,
		Points: []RawPoint{
			{Coords: []float64{0, 0}},
			{Coords: []float64{1, 0}},
			{Coords: []float64{2, 0}}, // collinear: zero area
		},
		Elements: []RawElement{
			{Kind: Triangle, Verts: []int{0, 1, 2}},
		},
	}
	_, err := NewGeometry(raw, nil)
	if err == nil {
		tst.Fatalf("expected GeometryDegenerate error for collinear triangle")
	}
}

func TestWallDistanceOrdering(tst *testing.T) {
	chk.PrintTitle("geom07. cells nearer the wall marker have smaller wall distance")
	g, err := NewGeometry(unitSquare(), nil)
	if err != nil {
		tst.Fatalf("NewGeometry failed: %v", err)
	}
	// "bottom" marker spans y=0; cells 0,1 sit on it, cells 2,3 sit at y=1.
	if g.WallDistance(0) >= g.WallDistance(2) {
		tst.Fatalf("expected cell 0 (on wall) closer than cell 2 (away): %g vs %g",
			g.WallDistance(0), g.WallDistance(2))
	}
}
