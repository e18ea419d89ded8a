// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

// CellCount returns the number of dual control volumes (== number of
// points).
func (g *Geometry) CellCount() int { return len(g.coords) }

// EdgeCount returns the number of interior edges.
func (g *Geometry) EdgeCount() int { return len(g.edges) }

// BoundaryFaceCount returns the number of (post-split) boundary faces.
func (g *Geometry) BoundaryFaceCount() int { return len(g.boundaryFaces) }

// Edge returns edge e by index.
func (g *Geometry) Edge(e int) Edge { return g.edges[e] }

// Normal returns the area-scaled outward normal of edge e, oriented I->J.
func (g *Geometry) Normal(e int) []float64 { return g.edges[e].Normal }

// Volume returns the dual volume of cell c.
func (g *Geometry) Volume(c int) float64 { return g.cellVolume[c] }

// WallDistance returns the precomputed nearest-wall distance of cell c.
func (g *Geometry) WallDistance(c int) float64 { return g.wallDist[c] }

// Position returns the coordinates of cell c (its associated point).
func (g *Geometry) Position(c int) []float64 { return g.coords[c] }

// EdgesOfCell returns the indices of edges incident to cell c.
func (g *Geometry) EdgesOfCell(c int) []int { return g.cellEdges[c] }

// BoundaryFace returns boundary face f by index.
func (g *Geometry) BoundaryFace(f int) BoundaryFace { return g.boundaryFaces[f] }

// BoundaryFaces returns all boundary faces.
func (g *Geometry) BoundaryFaces() []BoundaryFace { return g.boundaryFaces }
