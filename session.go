package blochsphere

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/theapemachine/errnie"
)

// SessionOption configures a Session at construction.
type SessionOption func(*Session)

// WithRenderer adds a renderer that receives every emitted frame.
func WithRenderer(r Renderer) SessionOption {
	return func(s *Session) {
		s.renderers = append(s.renderers, r)
	}
}

// WithMeasurer replaces the seeded measurer, e.g. with a fixed source.
func WithMeasurer(m *Measurer) SessionOption {
	return func(s *Session) {
		s.measurer = m
	}
}

// WithClock sets the clock used to timestamp frames and history.
func WithClock(c Clock) SessionOption {
	return func(s *Session) {
		s.clock = c
	}
}

// WithRegisterer registers the session's Prometheus collectors on reg.
func WithRegisterer(reg prometheus.Registerer) SessionOption {
	return func(s *Session) {
		s.registerer = reg
	}
}

type pendingMeasurement struct {
	remaining time.Duration
	callback  func(Outcome)
}

/*
Session is the control surface of the visualization. It owns the one
QubitState and hands it explicitly to the animator and measurer; nothing
else writes to it.

A Session is not safe for concurrent use. It is driven from a single
logical thread: control calls arrive from UI glue, and Tick is called once
per frame by whatever owns the timing source (see Loop).

Control calls other than SetAngles fail quiet. Unknown ids, requests
made while a transition is in flight and a second pending measurement are
ignored and reported through the boolean result only.
*/
type Session struct {
	config   *Config
	state    *QubitState
	animator *Animator
	measurer *Measurer
	clock    Clock

	renderers  []Renderer
	group      *BroadcastGroup
	metrics    *Metrics
	registerer prometheus.Registerer
	ledger     *Ledger

	pending  *pendingMeasurement
	sequence uint64
	last     Frame
}

func NewSession(config *Config, opts ...SessionOption) *Session {
	if config == nil {
		config = NewConfig()
	}

	s := &Session{
		config:   config,
		state:    NewQubitState(),
		animator: NewAnimator(EasingByName(config.Easing)),
		ledger:   NewLedger(config.HistoryLimit),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.measurer == nil {
		s.measurer = NewMeasurer(config.Seed)
	}

	if s.clock == nil {
		s.clock = NewSystemClock()
	}

	s.group = NewBroadcastGroup("frames", s.clock)
	s.metrics = NewMetrics(s.registerer)
	s.renderers = append(s.renderers, s.group)
	s.last = newFrame(s.state, 0, false, s.clock.Now())

	errnie.Info(
		"NewSession - duration %s, easing %s, measurement delay %s",
		config.TransitionDuration,
		config.Easing,
		config.MeasurementDelay,
	)

	return s
}

/*
SetAngles assigns the state directly from slider input in degrees and
emits a frame. It always applies, even mid-transition; the animator keeps
its own endpoints, so its next tick writes over the assignment.
*/
func (s *Session) SetAngles(thetaDeg, phiDeg float64) {
	from := s.state.Angles()
	s.state.SetDegrees(thetaDeg, phiDeg)

	s.ledger.Record(Entry{
		Timestamp: s.clock.Now(),
		Kind:      KindAngles,
		From:      from,
		To:        s.state.Angles(),
	})

	s.emit()
}

// ApplyPreset animates toward a named preset.
func (s *Session) ApplyPreset(id string) bool {
	return s.applyPreset(id, KindPreset)
}

// ApplyGate animates toward the image of the current state under a gate.
func (s *Session) ApplyGate(id string) bool {
	gate, ok := LookupGate(id)
	if !ok {
		s.metrics.recordUnknown()
		errnie.Info("Session.ApplyGate - unknown gate %q ignored", id)
		return false
	}

	theta, phi := gate(s.state.Theta(), s.state.Phi())
	if !s.transition(KindGate, normalizeID(id), Angles{Theta: theta, Phi: phi}, nil) {
		return false
	}

	s.metrics.recordGate(normalizeID(id))
	return true
}

// Reset is ApplyPreset("ground").
func (s *Session) Reset() bool {
	return s.applyPreset("ground", KindReset)
}

/*
Measure schedules a computational basis measurement. After the configured
delay of ticked time, and once no transition is in flight, it samples the
state as it is then, starts the collapse toward the matching pole and
hands the outcome to callback. It reports false when a measurement is
already pending.
*/
func (s *Session) Measure(callback func(Outcome)) bool {
	if s.pending != nil {
		errnie.Info("Session.Measure - measurement already pending, ignored")
		return false
	}

	s.pending = &pendingMeasurement{
		remaining: s.config.MeasurementDelay,
		callback:  callback,
	}

	return true
}

// MeasurementPending reports whether a measurement is waiting to resolve.
func (s *Session) MeasurementPending() bool {
	return s.pending != nil
}

/*
Tick advances the session by dt: it steps the animator, emits a frame if
the state moved, and resolves a pending measurement whose delay has run out.
*/
func (s *Session) Tick(dt time.Duration) {
	if s.animator.Tick(s.state, dt) {
		s.emit()
	}

	if s.pending == nil {
		return
	}

	if dt > 0 {
		s.pending.remaining -= dt
	}

	if s.pending.remaining > 0 || s.animator.Animating() {
		return
	}

	pending := s.pending
	s.pending = nil

	p0, p1 := s.state.Probabilities()
	outcome := s.measurer.Measure(s.state)
	s.metrics.recordMeasurement(outcome)

	errnie.Info(
		"Session.Tick - measured %d with p0 %.4f, p1 %.4f",
		outcome, p0, p1,
	)

	s.transition(KindMeasure, "", outcome.Angles(), &outcome)

	if pending.callback != nil {
		pending.callback(outcome)
	}
}

func (s *Session) applyPreset(id string, kind EntryKind) bool {
	preset, ok := LookupPreset(id)
	if !ok {
		s.metrics.recordUnknown()
		errnie.Info("Session.ApplyPreset - unknown preset %q ignored", id)
		return false
	}

	if !s.transition(kind, preset.ID, preset.Angles, nil) {
		return false
	}

	s.metrics.recordPreset(preset.ID)
	return true
}

func (s *Session) transition(kind EntryKind, id string, to Angles, outcome *Outcome) bool {
	from := s.state.Angles()

	accepted := s.animator.Request(s.state, to, s.config.TransitionDuration)
	s.metrics.recordTransition(accepted)

	if !accepted {
		return false
	}

	target, _ := s.animator.Target()
	s.ledger.Record(Entry{
		Timestamp: s.clock.Now(),
		Kind:      kind,
		ID:        id,
		From:      from,
		To:        target,
		Outcome:   outcome,
	})

	return true
}

func (s *Session) emit() {
	s.sequence++
	s.last = newFrame(s.state, s.sequence, s.animator.Animating(), s.clock.Now())
	s.metrics.recordFrame(s.last)

	for _, r := range s.renderers {
		r.Render(s.last)
	}
}

// Frame returns the most recently emitted frame.
func (s *Session) Frame() Frame { return s.last }

// State returns a snapshot of the current angles.
func (s *Session) State() Angles { return s.state.Angles() }

// Label is the formatted state, as shown by renderers.
func (s *Session) Label() string { return s.state.FormatState() }

func (s *Session) Animating() bool { return s.animator.Animating() }

// Target is the in-flight transition's destination, if any.
func (s *Session) Target() (Angles, bool) { return s.animator.Target() }

func (s *Session) History() []Entry { return s.ledger.Entries() }

func (s *Session) Metrics() *Metrics { return s.metrics }

func (s *Session) Config() *Config { return s.config }

// Subscribe attaches a frame channel to the session's broadcast group.
func (s *Session) Subscribe(id string, buffer int, filters ...FilterFunc) <-chan Frame {
	return s.group.Subscribe(id, buffer, filters...)
}

func (s *Session) Unsubscribe(id string) {
	s.group.Unsubscribe(id)
}

// Close releases subscriber channels.
func (s *Session) Close() {
	s.group.Close()
	errnie.Info("Session.Close - %d history entries", s.ledger.Sequence())
}
