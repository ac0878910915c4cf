package sim

import (
	"context"
	"log"
	"time"

	"github.com/olivierh59500/particle-field-go/surface"
)

// Stats describes the most recent tick.
type Stats struct {
	Frame     uint64
	Profile   string
	Particles int
	Edges     int
	Respawns  int
	Paused    bool
}

// Driver runs the frame loop: drain host events, update the field with one
// pointer snapshot, then clear the surface and render. The field, follower and
// surface belong to the goroutine calling Step/Render/Tick/Run.
type Driver struct {
	field    *Field
	surface  surface.Surface
	pointer  *Pointer
	events   Events
	follower *Follower
	logger   *log.Logger

	pending []Event
	paused  bool
	stats   Stats
}

// NewDriver binds field to s and sizes s to the field bounds.
func NewDriver(field *Field, s surface.Surface) *Driver {
	w, h := field.Size()
	s.Resize(int(w), int(h))
	return &Driver{
		field:   field,
		surface: s,
		pointer: NewPointer(w, h),
		logger:  field.logger,
	}
}

// Events returns the queue hosts push input into.
func (d *Driver) Events() *Events {
	return &d.events
}

// Pointer returns the pointer tracker.
func (d *Driver) Pointer() *Pointer {
	return d.pointer
}

// Field returns the driven field.
func (d *Driver) Field() *Field {
	return d.field
}

// SetFollower attaches a cursor follower; nil detaches it.
func (d *Driver) SetFollower(f *Follower) {
	d.follower = f
}

// Stats returns counters from the last Step and Render.
func (d *Driver) Stats() Stats {
	return d.stats
}

// Step applies pending events and advances the simulation one frame.
func (d *Driver) Step() {
	d.pending = d.events.Drain(d.pending)
	for _, ev := range d.pending {
		d.handle(ev)
	}
	clear(d.pending)

	pointer := d.pointer.Position()
	d.stats.Respawns = 0
	if !d.paused {
		d.stats.Respawns = d.field.Update(pointer)
	}
	d.follower.Update(pointer)

	d.stats.Frame++
	d.stats.Paused = d.paused
	d.stats.Profile = d.field.profile.Name
	d.stats.Particles = len(d.field.particles)
}

// Render clears the surface and draws the field and the follower.
func (d *Driver) Render() {
	d.surface.Clear()
	d.stats.Edges = d.field.Render(d.surface)
	d.follower.Draw(d.surface)
}

// Tick is one full frame.
func (d *Driver) Tick() {
	d.Step()
	d.Render()
}

// Run ticks once per value received from frames and calls present after each
// tick, until ctx is cancelled. It returns ctx.Err().
func (d *Driver) Run(ctx context.Context, frames <-chan time.Time, present func()) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-frames:
			d.Tick()
			if present != nil {
				present()
			}
		}
	}
}

func (d *Driver) handle(ev Event) {
	switch ev := ev.(type) {
	case Resize:
		if ev.Width <= 0 || ev.Height <= 0 {
			d.logger.Printf("ignoring resize to %dx%d", ev.Width, ev.Height)
			return
		}
		d.surface.Resize(ev.Width, ev.Height)
		d.field.Resize(float64(ev.Width), float64(ev.Height))
		d.pointer.Recenter(float64(ev.Width), float64(ev.Height))
	case PointerMove:
		d.pointer.OnPointerMove(ev.X, ev.Y)
	case SetOffset:
		d.pointer.SetOffset(ev.X, ev.Y)
	case PointerPress:
		d.field.Burst(d.pointer.Position())
		d.follower.Press()
	case SwapProfile:
		if err := d.field.SetProfile(ev.Profile, d.pointer.Position()); err != nil {
			d.logger.Printf("%v", err)
			return
		}
		if d.follower != nil {
			d.follower.Color = ev.Profile.Color
		}
	case TogglePause:
		d.paused = !d.paused
	}
}
