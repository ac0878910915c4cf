package sim

import "sync"

// Event is an input delivered by the host and consumed by the driver at the
// start of the next tick.
type Event interface {
	isEvent()
}

// Resize reports a new viewport size in pixels.
type Resize struct{ Width, Height int }

// PointerMove reports a pointer position in host-window coordinates.
type PointerMove struct{ X, Y float64 }

// PointerPress reports a pointer press at the current pointer position.
type PointerPress struct{}

// SetOffset reports where the surface sits in host-window coordinates.
type SetOffset struct{ X, Y float64 }

// SwapProfile replaces the active profile and respawns the field.
type SwapProfile struct{ Profile Profile }

// TogglePause freezes or resumes the simulation; rendering continues.
type TogglePause struct{}

func (Resize) isEvent()       {}
func (PointerMove) isEvent()  {}
func (PointerPress) isEvent() {}
func (SetOffset) isEvent()    {}
func (SwapProfile) isEvent()  {}
func (TogglePause) isEvent()  {}

// Events is a FIFO queue safe for concurrent producers.
type Events struct {
	mu    sync.Mutex
	queue []Event
}

// Push appends an event.
func (q *Events) Push(e Event) {
	q.mu.Lock()
	q.queue = append(q.queue, e)
	q.mu.Unlock()
}

// Drain moves every queued event into buf (reset to length zero) and returns it.
func (q *Events) Drain(buf []Event) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	buf = append(buf[:0], q.queue...)
	clear(q.queue)
	q.queue = q.queue[:0]
	return buf
}

// Len returns the number of pending events.
func (q *Events) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}
