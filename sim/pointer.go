package sim

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r2"
)

// Pointer tracks the pointer position in surface-local coordinates. Hosts
// may write from event goroutines; the driver reads one snapshot per tick.
//
// The offset is zero unless a host reports one with a SetOffset event. The
// ebiten and terminal hosts both fill their window, so they never do.
type Pointer struct {
	mu     sync.Mutex
	pos    r2.Vec
	offset r2.Vec
	moved  bool
}

// NewPointer starts at the centre of a width x height surface.
func NewPointer(width, height float64) *Pointer {
	return &Pointer{pos: r2.Vec{X: width / 2, Y: height / 2}}
}

// OnPointerMove stores a host-window position, converted to surface space by
// subtracting the surface's on-screen offset.
func (p *Pointer) OnPointerMove(clientX, clientY float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = r2.Vec{X: clientX - p.offset.X, Y: clientY - p.offset.Y}
	p.moved = true
}

// SetOffset records where the surface's top-left corner sits in host-window
// coordinates.
func (p *Pointer) SetOffset(x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.offset = r2.Vec{X: x, Y: y}
}

// Recenter moves the pointer to the surface centre unless a move event has
// already been seen.
func (p *Pointer) Recenter(width, height float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.moved {
		p.pos = r2.Vec{X: width / 2, Y: height / 2}
	}
}

// Position returns the current pointer position.
func (p *Pointer) Position() r2.Vec {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}
