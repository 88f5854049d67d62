package blochsphere

import (
	"time"

	"github.com/theapemachine/errnie"
)

// AnimatorState is the animator's lifecycle phase.
type AnimatorState int

const (
	Idle AnimatorState = iota
	Animating
)

func (s AnimatorState) String() string {
	if s == Animating {
		return "animating"
	}
	return "idle"
}

// TransitionRequest describes one interpolation from a start to a target.
type TransitionRequest struct {
	FromTheta float64
	FromPhi   float64
	ToTheta   float64
	ToPhi     float64
	Duration  time.Duration
}

/*
Animator interpolates a QubitState toward a target over time.

At most one transition is in flight. A request made while animating is
dropped, not queued and not merged, and an accepted transition always
runs to completion. θ and φ are interpolated linearly in their raw values,
so a φ move across the 0/2π seam takes the long way around.

The animator never reads a clock: the caller advances it with Tick.
*/
type Animator struct {
	state   AnimatorState
	easing  Easing
	current TransitionRequest
	elapsed time.Duration
	dropped int
}

func NewAnimator(easing Easing) *Animator {
	if easing == nil {
		easing = EaseOutCubic
	}

	return &Animator{
		easing: easing,
	}
}

// Request starts a transition from q's current angles, or reports false
// when one is already running.
func (a *Animator) Request(q *QubitState, to Angles, duration time.Duration) bool {
	if a.state == Animating {
		a.dropped++
		errnie.Info(
			"Animator.Request - dropped, in flight toward θ=%.3f φ=%.3f",
			a.current.ToTheta,
			a.current.ToPhi,
		)
		return false
	}

	if duration < 0 {
		duration = 0
	}

	a.current = TransitionRequest{
		FromTheta: q.Theta(),
		FromPhi:   q.Phi(),
		ToTheta:   clampTheta(to.Theta),
		ToPhi:     normalizePhi(to.Phi),
		Duration:  duration,
	}
	a.elapsed = 0
	a.state = Animating

	return true
}

/*
Tick advances the in-flight transition by dt and writes the interpolated
angles into q. It reports whether q changed. When progress reaches 1 the
target is written exactly and the animator returns to Idle.
*/
func (a *Animator) Tick(q *QubitState, dt time.Duration) bool {
	if a.state != Animating {
		return false
	}

	if dt > 0 {
		a.elapsed += dt
	}

	progress := a.Progress()

	if progress >= 1 {
		q.SetAngles(a.current.ToTheta, a.current.ToPhi)
		a.state = Idle
		return true
	}

	eased := a.easing(progress)
	q.SetAngles(
		a.current.FromTheta+(a.current.ToTheta-a.current.FromTheta)*eased,
		a.current.FromPhi+(a.current.ToPhi-a.current.FromPhi)*eased,
	)

	return true
}

// Progress is the linear, un-eased completion of the current transition.
func (a *Animator) Progress() float64 {
	if a.state != Animating {
		return 0
	}

	if a.current.Duration <= 0 {
		return 1
	}

	p := float64(a.elapsed) / float64(a.current.Duration)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}

	return p
}

func (a *Animator) State() AnimatorState { return a.state }

func (a *Animator) Animating() bool { return a.state == Animating }

// Current returns the in-flight request, if any.
func (a *Animator) Current() (TransitionRequest, bool) {
	return a.current, a.state == Animating
}

// Target is the in-flight destination.
func (a *Animator) Target() (Angles, bool) {
	return Angles{Theta: a.current.ToTheta, Phi: a.current.ToPhi}, a.state == Animating
}

// Dropped counts requests rejected while animating.
func (a *Animator) Dropped() int { return a.dropped }
