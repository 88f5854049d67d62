package blochsphere

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	tolerance = 1e-9
	epoch     = 1700000000
)

func testConfig() *Config {
	cfg := NewConfig()
	cfg.TransitionDuration = 100 * time.Millisecond
	cfg.MeasurementDelay = 50 * time.Millisecond
	cfg.Seed = 7
	return cfg
}

func testClock() *ManualClock {
	return NewManualClock(time.Unix(epoch, 0))
}

func approx(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, tolerance)
}

// samePoint compares angle pairs by the point they name, so φ is free at
// the poles and 0 ≡ 2π.
func samePoint(a, b Angles) bool {
	return r3.Norm(r3.Sub(direction(a.Theta, a.Phi), direction(b.Theta, b.Phi))) < 1e-7
}

// phiDistance is the unsigned angular gap between two azimuths.
func phiDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), twoPi)
	return math.Min(d, twoPi-d)
}
