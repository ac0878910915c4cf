package surface

// Op identifies a recorded surface call.
type Op int

const (
	OpDisc Op = iota
	OpLine
)

// Call is one recorded draw primitive.
type Call struct {
	Op             Op
	X1, Y1, X2, Y2 float64
	Radius         float64
	Width          float64
	Color          Color
}

// Recorder is a Surface that keeps every draw call since the last Clear.
// It backs tests and headless runs.
type Recorder struct {
	Width, Height int
	Resizes       int
	Clears        int
	Calls         []Call
}

var _ Surface = (*Recorder)(nil)

// Resize records the new size.
func (r *Recorder) Resize(width, height int) {
	r.Width, r.Height = width, height
	r.Resizes++
	r.Calls = r.Calls[:0]
}

// Clear drops the calls recorded so far.
func (r *Recorder) Clear() {
	r.Clears++
	r.Calls = r.Calls[:0]
}

// DrawDisc records a disc call.
func (r *Recorder) DrawDisc(x, y, radius float64, c Color) {
	r.Calls = append(r.Calls, Call{Op: OpDisc, X1: x, Y1: y, Radius: radius, Color: c})
}

// DrawLine records a line call.
func (r *Recorder) DrawLine(x1, y1, x2, y2 float64, c Color, width float64) {
	r.Calls = append(r.Calls, Call{Op: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Color: c})
}

// Discs returns the recorded disc calls in draw order.
func (r *Recorder) Discs() []Call {
	return r.filter(OpDisc)
}

// Lines returns the recorded line calls in draw order.
func (r *Recorder) Lines() []Call {
	return r.filter(OpLine)
}

func (r *Recorder) filter(op Op) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}
