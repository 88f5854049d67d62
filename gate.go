package blochsphere

import (
	"math"
	"strings"
)

/*
Gate maps a point on the Bloch sphere to its image under a single-qubit
unitary. Gates work directly on the (θ, φ) pair instead of multiplying
2×2 matrices, and never touch a QubitState: the result is a target for
the Animator.
*/
type Gate func(theta, phi float64) (float64, float64)

// poleTolerance decides when θ is close enough to a pole for Hadamard to
// use its fixed images.
const poleTolerance = 1e-9

// PauliX is the bit flip, a π rotation about the X axis.
func PauliX(theta, phi float64) (float64, float64) {
	return math.Pi - theta, normalizePhi(phi + math.Pi)
}

// PauliY is a π rotation about the Y axis.
func PauliY(theta, phi float64) (float64, float64) {
	return math.Pi - theta, normalizePhi(math.Pi - phi)
}

// PauliZ is the phase flip, a π rotation about the Z axis.
func PauliZ(theta, phi float64) (float64, float64) {
	return theta, normalizePhi(phi + math.Pi)
}

/*
Hadamard swaps the X and Z components of the direction and negates Y,
then reads the angles back off the resulting vector. The poles are
special-cased: |0⟩ goes to |+⟩ and |1⟩ goes to |−⟩ exactly.
*/
func Hadamard(theta, phi float64) (float64, float64) {
	if theta < poleTolerance {
		return math.Pi / 2, 0
	}

	if math.Pi-theta < poleTolerance {
		return math.Pi / 2, math.Pi
	}

	d := direction(theta, phi)
	x, y, z := d.Z, -d.Y, d.X

	return math.Acos(math.Max(-1, math.Min(1, z))), normalizePhi(math.Atan2(y, x))
}

// PhaseS rotates φ by π/2.
func PhaseS(theta, phi float64) (float64, float64) {
	return theta, normalizePhi(phi + math.Pi/2)
}

func PhaseSDagger(theta, phi float64) (float64, float64) {
	return theta, normalizePhi(phi - math.Pi/2)
}

// PhaseT rotates φ by π/4.
func PhaseT(theta, phi float64) (float64, float64) {
	return theta, normalizePhi(phi + math.Pi/4)
}

var gates = map[string]Gate{
	"x":   PauliX,
	"y":   PauliY,
	"z":   PauliZ,
	"h":   Hadamard,
	"s":   PhaseS,
	"sdg": PhaseSDagger,
	"t":   PhaseT,
}

var gateOrder = []string{"x", "y", "z", "h", "s", "sdg", "t"}

// LookupGate resolves a gate identifier. Unknown ids report false.
func LookupGate(id string) (Gate, bool) {
	g, ok := gates[normalizeID(id)]
	return g, ok
}

// Gates lists the recognized gate identifiers.
func Gates() []string {
	out := make([]string, len(gateOrder))
	copy(out, gateOrder)
	return out
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
