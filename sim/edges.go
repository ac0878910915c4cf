package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Edge is a proximity line between particles I < J.
type Edge struct {
	I, J  int
	Dist  float64
	Alpha float64 // 1 - Dist/maxDistance
}

func edgeBetween(ps []Particle, i, j int, maxDistance float64) (Edge, bool) {
	dist := r2.Norm(r2.Sub(ps[i].Pos, ps[j].Pos))
	if dist >= maxDistance {
		return Edge{}, false
	}
	if i > j {
		i, j = j, i
	}
	return Edge{I: i, J: j, Dist: dist, Alpha: 1 - dist/maxDistance}, true
}

// bruteForceEdges checks every unordered pair.
func bruteForceEdges(ps []Particle, maxDistance float64, fn func(Edge)) {
	if maxDistance <= 0 {
		return
	}
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if e, ok := edgeBetween(ps, i, j, maxDistance); ok {
				fn(e)
			}
		}
	}
}

// grid bins particles into square cells at least maxDistance wide so only
// neighbouring cells are compared. Buffers are reused between frames.
type grid struct {
	cells      [][]int
	cols, rows int
}

const maxGridSide = 1024

// Half of the 8-neighbourhood; with the cell itself every pair of cells is
// visited exactly once.
var forwardNeighbours = [...][2]int{{1, 0}, {-1, 1}, {0, 1}, {1, 1}}

func (g *grid) edges(ps []Particle, maxDistance float64, fn func(Edge)) {
	if maxDistance <= 0 || len(ps) < 2 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range ps {
		minX = math.Min(minX, ps[i].Pos.X)
		minY = math.Min(minY, ps[i].Pos.Y)
		maxX = math.Max(maxX, ps[i].Pos.X)
		maxY = math.Max(maxY, ps[i].Pos.Y)
	}
	// Cells may be larger than maxDistance, never smaller.
	size := math.Max(maxDistance, math.Max(maxX-minX, maxY-minY)/maxGridSide)
	g.reset(int((maxX-minX)/size)+1, int((maxY-minY)/size)+1)

	for i := range ps {
		cx := int((ps[i].Pos.X - minX) / size)
		cy := int((ps[i].Pos.Y - minY) / size)
		k := cy*g.cols + cx
		g.cells[k] = append(g.cells[k], i)
	}

	for cy := 0; cy < g.rows; cy++ {
		for cx := 0; cx < g.cols; cx++ {
			bin := g.cells[cy*g.cols+cx]
			for a := 0; a < len(bin); a++ {
				for b := a + 1; b < len(bin); b++ {
					if e, ok := edgeBetween(ps, bin[a], bin[b], maxDistance); ok {
						fn(e)
					}
				}
			}
			for _, n := range forwardNeighbours {
				nx, ny := cx+n[0], cy+n[1]
				if nx < 0 || ny < 0 || nx >= g.cols || ny >= g.rows {
					continue
				}
				other := g.cells[ny*g.cols+nx]
				for _, i := range bin {
					for _, j := range other {
						if e, ok := edgeBetween(ps, i, j, maxDistance); ok {
							fn(e)
						}
					}
				}
			}
		}
	}
}

func (g *grid) reset(cols, rows int) {
	g.cols, g.rows = cols, rows
	n := cols * rows
	if cap(g.cells) < n {
		g.cells = make([][]int, n)
	}
	g.cells = g.cells[:n]
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}
