package blochsphere

import (
	"math"
	"strings"
)

// Easing maps linear progress in [0, 1] to an interpolation factor.
type Easing func(t float64) float64

// EaseOutCubic is 1 − (1 − t)³: fast start, gentle landing.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func Linear(t float64) float64 { return t }

func Smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EasingByName falls back to EaseOutCubic for unknown names.
func EasingByName(name string) Easing {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return Linear
	case "smoothstep":
		return Smoothstep
	case "ease-in-out", "ease-in-out-cubic":
		return EaseInOutCubic
	default:
		return EaseOutCubic
	}
}
