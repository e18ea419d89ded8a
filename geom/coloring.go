// Copyright 2024 The SU2EDU-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

// ColorEdges greedily partitions the edges into groups such that no two
// edges in a group share a cell. Assembly loops process one group at a
// time with all edges of a group in parallel; the group boundary is the
// only synchronization needed to keep residual and Jacobian accumulation
// race-free.
func (g *Geometry) ColorEdges() [][]int {
	ncells := g.CellCount()
	taken := make([][]bool, 0) // taken[color][cell]

	usedBy := func(c, color int) bool {
		return color < len(taken) && taken[color][c]
	}
	mark := func(c, color int) {
		for color >= len(taken) {
			taken = append(taken, make([]bool, ncells))
		}
		taken[color][c] = true
	}

	colorOf := make([]int, g.EdgeCount())
	ncolors := 0
	for e := range colorOf {
		ed := g.edges[e]
		color := 0
		for usedBy(ed.I, color) || usedBy(ed.J, color) {
			color++
		}
		colorOf[e] = color
		mark(ed.I, color)
		mark(ed.J, color)
		if color+1 > ncolors {
			ncolors = color + 1
		}
	}

	groups := make([][]int, ncolors)
	for e, c := range colorOf {
		groups[c] = append(groups[c], e)
	}
	return groups
}
