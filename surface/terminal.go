package surface

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// Default pixel size of one terminal cell. Cells are roughly twice as tall as
// they are wide, so the field keeps its proportions.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellLine
	cellDisc
)

type cell struct {
	kind cellKind
	ch   rune
	c    Color
}

// Terminal is a Surface backed by a tcell screen. Surface pixels are mapped
// onto character cells; a disc always wins its cell over a line, and among
// lines the most opaque one is kept. Nothing reaches the screen until Present.
type Terminal struct {
	screen        tcell.Screen
	cellW, cellH  float64
	width, height int
	cols, rows    int
	cells         []cell
	background    Color
}

var _ Surface = (*Terminal)(nil)

// NewTerminal wraps an initialised tcell screen. Non-positive cell sizes fall
// back to the defaults.
func NewTerminal(screen tcell.Screen, cellW, cellH float64) *Terminal {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	return &Terminal{
		screen:     screen,
		cellW:      cellW,
		cellH:      cellH,
		background: Color{A: 1},
	}
}

// PixelSize converts a screen size in cells to surface pixels.
func (t *Terminal) PixelSize(cols, rows int) (int, int) {
	return int(float64(cols) * t.cellW), int(float64(rows) * t.cellH)
}

// CellCenter returns the surface position of the centre of a cell, used to
// turn mouse events into pointer coordinates.
func (t *Terminal) CellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * t.cellW, (float64(row) + 0.5) * t.cellH
}

// Resize reallocates the cell buffer for a width x height pixel surface.
func (t *Terminal) Resize(width, height int) {
	t.width, t.height = width, height
	t.cols = int(math.Ceil(float64(width) / t.cellW))
	t.rows = int(math.Ceil(float64(height) / t.cellH))
	t.cells = make([]cell, t.cols*t.rows)
}

// Clear empties every cell.
func (t *Terminal) Clear() {
	for i := range t.cells {
		t.cells[i] = cell{}
	}
}

// DrawDisc marks the cell holding the disc centre.
func (t *Terminal) DrawDisc(x, y, radius float64, c Color) {
	col, row, ok := t.cellAt(x, y)
	if !ok {
		return
	}
	ch := '•'
	if radius >= 2 {
		ch = '●'
	}
	p := &t.cells[row*t.cols+col]
	if p.kind == cellDisc && p.c.A >= c.A {
		return
	}
	*p = cell{kind: cellDisc, ch: ch, c: c}
}

// DrawLine plots the cells the line passes through. Width is ignored.
func (t *Terminal) DrawLine(x1, y1, x2, y2 float64, c Color, _ float64) {
	c0 := int(math.Floor(x1 / t.cellW))
	r0 := int(math.Floor(y1 / t.cellH))
	c1 := int(math.Floor(x2 / t.cellW))
	r1 := int(math.Floor(y2 / t.cellH))
	ch := lineRune(c1-c0, r1-r0)

	// Bresenham over cells
	dx := abs(c1 - c0)
	dy := -abs(r1 - r0)
	sx, sy := 1, 1
	if c0 > c1 {
		sx = -1
	}
	if r0 > r1 {
		sy = -1
	}
	err := dx + dy
	for {
		t.plotLine(c0, r0, ch, c)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			c0 += sx
		}
		if e2 <= dx {
			err += dx
			r0 += sy
		}
	}
}

// Present flushes the cell buffer to the tcell screen.
func (t *Terminal) Present() {
	bgStyle := tcell.StyleDefault.Background(t.background.tcell())
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			p := t.cells[row*t.cols+col]
			if p.kind == cellEmpty {
				t.screen.SetContent(col, row, ' ', nil, bgStyle)
				continue
			}
			fg := p.c.Over(t.background)
			t.screen.SetContent(col, row, p.ch, nil, bgStyle.Foreground(fg.tcell()))
		}
	}
	t.screen.Show()
}

func (t *Terminal) plotLine(col, row int, ch rune, c Color) {
	if col < 0 || row < 0 || col >= t.cols || row >= t.rows {
		return
	}
	p := &t.cells[row*t.cols+col]
	switch p.kind {
	case cellDisc:
		return
	case cellLine:
		if p.c.A >= c.A {
			return
		}
	}
	*p = cell{kind: cellLine, ch: ch, c: c}
}

func (t *Terminal) cellAt(x, y float64) (int, int, bool) {
	col := int(math.Floor(x / t.cellW))
	row := int(math.Floor(y / t.cellH))
	if col < 0 || row < 0 || col >= t.cols || row >= t.rows {
		return 0, 0, false
	}
	return col, row, true
}

func (c Color) tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// lineRune picks a glyph from the slope in cell space (y grows downwards).
func lineRune(dc, dr int) rune {
	adc, adr := abs(dc), abs(dr)
	switch {
	case adc == 0 && adr == 0:
		return '·'
	case adr*2 < adc:
		return '-'
	case adc*2 < adr:
		return '|'
	case (dc > 0) == (dr > 0):
		return '\\'
	default:
		return '/'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
