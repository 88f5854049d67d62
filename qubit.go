package blochsphere

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const twoPi = 2 * math.Pi

// Angles is a (θ, φ) pair on the Bloch sphere, in radians.
type Angles struct {
	Theta float64
	Phi   float64
}

/*
QubitState holds the two spherical angles that parameterize a pure
single-qubit state. Theta is kept in [0, π] and Phi in [0, 2π); every
other quantity (direction, amplitudes, probabilities) is derived on demand.

The zero value is the |0⟩ state.
*/
type QubitState struct {
	theta float64
	phi   float64
}

func NewQubitState() *QubitState {
	return &QubitState{}
}

// SetAngles normalizes rather than rejects: theta is clamped, phi wraps.
func (q *QubitState) SetAngles(theta, phi float64) {
	q.theta = clampTheta(theta)
	q.phi = normalizePhi(phi)
}

// SetDegrees is SetAngles for slider input in degrees.
func (q *QubitState) SetDegrees(thetaDeg, phiDeg float64) {
	q.SetAngles(thetaDeg*math.Pi/180, phiDeg*math.Pi/180)
}

func (q *QubitState) Theta() float64 { return q.theta }

func (q *QubitState) Phi() float64 { return q.phi }

func (q *QubitState) Angles() Angles {
	return Angles{Theta: q.theta, Phi: q.phi}
}

// Direction returns the unit Cartesian vector pointing at the state.
func (q *QubitState) Direction() r3.Vec {
	return direction(q.theta, q.phi)
}

// Amplitudes returns (α, β) = (cos(θ/2), e^{iφ}·sin(θ/2)).
func (q *QubitState) Amplitudes() (complex128, complex128) {
	alpha := complex(math.Cos(q.theta/2), 0)
	beta := Scale(ExpI(q.phi), math.Sin(q.theta/2))
	return alpha, beta
}

// Probabilities applies the Born rule to both basis states.
func (q *QubitState) Probabilities() (float64, float64) {
	c := math.Cos(q.theta / 2)
	p0 := c * c
	return p0, 1 - p0
}

// AmplitudeStrings formats α and β as coefficients, e.g. ("1.000", "0.000").
func (q *QubitState) AmplitudeStrings() (string, string) {
	alpha, beta := q.Amplitudes()
	return FormatComplex(alpha), FormatComplex(beta)
}

// PhaseFactor formats the relative phase e^{iφ} carried by β.
func (q *QubitState) PhaseFactor() string {
	return FormatComplex(ExpI(q.phi))
}

/*
FormatState renders the state as "α|0⟩ + β|1⟩". A term whose magnitude is
below Epsilon is left out. β is written as its relative phase factor
followed by its magnitude, so (π/2, π/2) reads "0.707|0⟩ + i·0.707|1⟩".
*/
func (q *QubitState) FormatState() string {
	a := math.Cos(q.theta / 2)
	b := math.Sin(q.theta / 2)
	hasA := math.Abs(a) >= Epsilon
	hasB := math.Abs(b) >= Epsilon

	zero := fmt.Sprintf("%.3f|0⟩", a)
	if !hasB {
		return zero
	}

	sign, one := q.betaTerm(b)

	if !hasA {
		if sign < 0 {
			return "-" + one
		}
		return one
	}

	if sign < 0 {
		return zero + " - " + one
	}

	return zero + " + " + one
}

// betaTerm pulls a negative real or negative imaginary phase factor out
// as a sign so the caller can join terms with "+" or "-". Phases on the
// imaginary axis render as a bare i.
func (q *QubitState) betaTerm(magnitude float64) (int, string) {
	pf := ExpI(q.phi)
	mag := fmt.Sprintf("%.3f|1⟩", magnitude)

	if math.Abs(imag(pf)) < Epsilon {
		if real(pf) < 0 {
			return -1, mag
		}
		return 1, mag
	}

	if math.Abs(real(pf)) < Epsilon {
		if imag(pf) < 0 {
			return -1, "i·" + mag
		}
		return 1, "i·" + mag
	}

	return 1, "(" + FormatComplex(pf) + ")·" + mag
}

func (q *QubitState) String() string {
	return fmt.Sprintf("θ=%.3f φ=%.3f", q.theta, q.phi)
}

func direction(theta, phi float64) r3.Vec {
	s := math.Sin(theta)
	return r3.Vec{
		X: s * math.Cos(phi),
		Y: s * math.Sin(phi),
		Z: math.Cos(theta),
	}
}

func clampTheta(theta float64) float64 {
	switch {
	case math.IsNaN(theta), theta < 0:
		return 0
	case theta > math.Pi:
		return math.Pi
	}
	return theta
}

func normalizePhi(phi float64) float64 {
	if math.IsNaN(phi) || math.IsInf(phi, 0) {
		return 0
	}

	phi = math.Mod(phi, twoPi)
	if phi < 0 {
		phi += twoPi
	}

	// -tiny + 2π rounds to 2π itself.
	if phi >= twoPi {
		phi = 0
	}

	return phi
}
