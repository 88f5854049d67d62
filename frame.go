package blochsphere

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

/*
Frame is what a renderer receives on every state change: the direction to
draw the arrow along, the two outcome probabilities, and the state label to
display verbatim.
*/
type Frame struct {
	Sequence  uint64
	Direction r3.Vec
	Angles    Angles
	P0        float64
	P1        float64
	Label     string
	Animating bool
	EmittedAt time.Time
}

// Renderer consumes frames. Implementations must not block.
type Renderer interface {
	Render(Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame)

func (f RendererFunc) Render(frame Frame) { f(frame) }

func newFrame(q *QubitState, seq uint64, animating bool, at time.Time) Frame {
	p0, p1 := q.Probabilities()

	return Frame{
		Sequence:  seq,
		Direction: q.Direction(),
		Angles:    q.Angles(),
		P0:        p0,
		P1:        p1,
		Label:     q.FormatState(),
		Animating: animating,
		EmittedAt: at,
	}
}
