package blochsphere

import (
	"math"
	"math/rand/v2"
)

// Outcome is a computational basis measurement result, 0 or 1.
type Outcome int

const (
	Zero Outcome = 0
	One  Outcome = 1
)

// Angles of the basis state this outcome collapses to.
func (o Outcome) Angles() Angles {
	if o == One {
		return Angles{Theta: math.Pi, Phi: 0}
	}
	return Angles{Theta: 0, Phi: 0}
}

/*
Measurer samples computational basis outcomes with the Born rule. The
random source is injected so tests and replays can fix the seed.
*/
type Measurer struct {
	rng *rand.Rand
}

// NewMeasurer seeds a PCG source; a zero seed draws a random one.
func NewMeasurer(seed uint64) *Measurer {
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &Measurer{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NewMeasurerWithSource uses src as-is.
func NewMeasurerWithSource(src rand.Source) *Measurer {
	return &Measurer{rng: rand.New(src)}
}

// Measure draws one sample against p0. q is not modified; the collapse is
// the caller's transition to Outcome.Angles.
func (m *Measurer) Measure(q *QubitState) Outcome {
	p0, _ := q.Probabilities()
	r := m.rng.Float64()

	outcome := One
	if r < p0 {
		outcome = Zero
	}

	// Rounding leaves |1⟩ with p0 ≈ 1e-33, which a zero draw would beat.
	if p0 < Epsilon {
		outcome = One
	}

	return outcome
}
