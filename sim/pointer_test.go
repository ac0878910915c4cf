package sim

import (
	"sync"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestPointerStartsAtCentre(t *testing.T) {
	p := NewPointer(800, 600)
	if got := p.Position(); got != (r2.Vec{X: 400, Y: 300}) {
		t.Errorf("Position = %v, want (400,300)", got)
	}
}

func TestPointerSubtractsSurfaceOffset(t *testing.T) {
	p := NewPointer(800, 600)
	p.SetOffset(20, 64)
	p.OnPointerMove(120, 164)
	if got := p.Position(); got != (r2.Vec{X: 100, Y: 100}) {
		t.Errorf("Position = %v, want (100,100)", got)
	}
}

func TestPointerRecenterOnlyBeforeFirstMove(t *testing.T) {
	p := NewPointer(800, 600)
	p.Recenter(1000, 500)
	if got := p.Position(); got != (r2.Vec{X: 500, Y: 250}) {
		t.Fatalf("Position = %v, want (500,250)", got)
	}

	p.OnPointerMove(10, 20)
	p.Recenter(200, 200)
	if got := p.Position(); got != (r2.Vec{X: 10, Y: 20}) {
		t.Errorf("Recenter after a move changed Position to %v", got)
	}
}

func TestPointerConcurrentWriters(t *testing.T) {
	p := NewPointer(800, 600)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				p.OnPointerMove(float64(i), float64(j))
				_ = p.Position()
			}
		}(i)
	}
	wg.Wait()

	got := p.Position()
	if got.Y != 999 {
		t.Errorf("last write per goroutine ends at y=999, got %v", got)
	}
}
