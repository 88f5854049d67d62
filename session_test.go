package blochsphere

import (
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSession(t *testing.T) {
	Convey("Given a session with a recording renderer", t, func() {
		var frames []Frame
		clock := testClock()

		s := NewSession(
			testConfig(),
			WithClock(clock),
			WithRenderer(RendererFunc(func(f Frame) { frames = append(frames, f) })),
			WithRegisterer(prometheus.NewRegistry()),
		)

		Reset(func() {
			s.Close()
		})

		So(s.State(), ShouldResemble, Angles{})
		So(s.Frame().Label, ShouldEqual, "1.000|0⟩")

		Convey("When a gate is applied", func() {
			So(s.ApplyGate("h"), ShouldBeTrue)
			So(s.Animating(), ShouldBeTrue)

			Convey("Nothing moves until the session is ticked", func() {
				So(s.State(), ShouldResemble, Angles{})
				So(frames, ShouldBeEmpty)
			})

			Convey("Ticking emits intermediate frames and lands on |+⟩", func() {
				s.Tick(50 * time.Millisecond)
				So(len(frames), ShouldEqual, 1)
				So(frames[0].Animating, ShouldBeTrue)

				s.Tick(50 * time.Millisecond)
				So(len(frames), ShouldEqual, 2)

				last := frames[1]
				So(last.Animating, ShouldBeFalse)
				So(last.Sequence, ShouldEqual, 2)
				So(last.P0, ShouldAlmostEqual, 0.5, tolerance)
				So(last.P1, ShouldAlmostEqual, 0.5, tolerance)
				So(last.Direction.X, ShouldAlmostEqual, 1, tolerance)
				So(last.Label, ShouldEqual, "0.707|0⟩ + 0.707|1⟩")
				So(s.Frame(), ShouldResemble, last)
			})

			Convey("A second gate during the transition is dropped", func() {
				s.Tick(10 * time.Millisecond)
				So(s.ApplyGate("x"), ShouldBeFalse)
				So(s.ApplyPreset("excited"), ShouldBeFalse)

				target, ok := s.Target()
				So(ok, ShouldBeTrue)
				So(target, ShouldResemble, Angles{Theta: math.Pi / 2, Phi: 0})
				So(s.Metrics().TransitionsDropped, ShouldEqual, 2)
			})

			Convey("Angle input applies at once and the next tick resumes the transition", func() {
				s.Tick(10 * time.Millisecond)
				before := len(frames)

				s.SetAngles(45, 45)
				So(len(frames), ShouldEqual, before+1)
				So(frames[before].Angles.Theta, ShouldAlmostEqual, math.Pi/4, tolerance)
				So(frames[before].Angles.Phi, ShouldAlmostEqual, math.Pi/4, tolerance)
				So(frames[before].Animating, ShouldBeTrue)
				So(s.Animating(), ShouldBeTrue)

				s.Tick(time.Second)
				So(s.Animating(), ShouldBeFalse)
				So(s.State().Theta, ShouldAlmostEqual, math.Pi/2, tolerance)
				So(s.State().Phi, ShouldAlmostEqual, 0.0, tolerance)
			})
		})

		Convey("When unknown ids are used nothing happens", func() {
			So(s.ApplyGate("cnot"), ShouldBeFalse)
			So(s.ApplyPreset("bell"), ShouldBeFalse)
			So(s.Animating(), ShouldBeFalse)
			So(s.History(), ShouldBeEmpty)
			So(s.Metrics().UnknownRequests, ShouldEqual, 2)
		})

		Convey("When angles are set directly", func() {
			s.SetAngles(90, 90)

			So(len(frames), ShouldEqual, 1)
			So(frames[0].Label, ShouldEqual, "0.707|0⟩ + i·0.707|1⟩")
			So(frames[0].Direction.Y, ShouldAlmostEqual, 1, tolerance)

			history := s.History()
			So(len(history), ShouldEqual, 1)
			So(history[0].Kind, ShouldEqual, KindAngles)
			So(history[0].Timestamp, ShouldEqual, clock.Now())
		})

		Convey("When reset from an excited state", func() {
			s.ApplyPreset("excited")
			s.Tick(time.Second)
			So(s.State().Theta, ShouldEqual, math.Pi)

			So(s.Reset(), ShouldBeTrue)
			s.Tick(time.Second)
			So(s.State(), ShouldResemble, Angles{})

			history := s.History()
			So(len(history), ShouldEqual, 2)
			So(history[0].Kind, ShouldEqual, KindPreset)
			So(history[0].ID, ShouldEqual, "excited")
			So(history[1].Kind, ShouldEqual, KindReset)
			So(history[1].ID, ShouldEqual, "ground")
		})

		Convey("When measuring |0⟩", func() {
			var outcomes []Outcome
			So(s.Measure(func(o Outcome) { outcomes = append(outcomes, o) }), ShouldBeTrue)
			So(s.MeasurementPending(), ShouldBeTrue)

			Convey("A second measurement is refused while one is pending", func() {
				So(s.Measure(nil), ShouldBeFalse)
			})

			Convey("The result waits for the delay", func() {
				s.Tick(25 * time.Millisecond)
				So(outcomes, ShouldBeEmpty)

				s.Tick(25 * time.Millisecond)
				So(outcomes, ShouldResemble, []Outcome{Zero})
				So(s.MeasurementPending(), ShouldBeFalse)

				So(s.Animating(), ShouldBeTrue)
				s.Tick(100 * time.Millisecond)
				So(s.State(), ShouldResemble, Angles{})

				history := s.History()
				So(len(history), ShouldEqual, 1)
				So(history[0].Kind, ShouldEqual, KindMeasure)
				So(*history[0].Outcome, ShouldEqual, Zero)
				So(s.Metrics().Measurements[Zero], ShouldEqual, 1)
			})
		})

		Convey("When measuring during a transition to |1⟩", func() {
			var outcomes []Outcome
			s.ApplyPreset("excited")
			s.Measure(func(o Outcome) { outcomes = append(outcomes, o) })

			Convey("The measurement waits for the transition to land", func() {
				s.Tick(60 * time.Millisecond)
				So(outcomes, ShouldBeEmpty)
				So(s.MeasurementPending(), ShouldBeTrue)

				s.Tick(40 * time.Millisecond)
				So(outcomes, ShouldResemble, []Outcome{One})

				target, ok := s.Target()
				So(ok, ShouldBeTrue)
				So(target, ShouldResemble, Angles{Theta: math.Pi, Phi: 0})
			})
		})

		Convey("When an equal superposition is measured many times", func() {
			zeros := 0
			for i := 0; i < 400; i++ {
				s.ApplyPreset("plus")
				s.Tick(time.Second)
				s.Measure(func(o Outcome) {
					if o == Zero {
						zeros++
					}
				})
				s.Tick(time.Second)
				s.Tick(time.Second)
			}

			So(s.Metrics().Measurements[Zero]+s.Metrics().Measurements[One], ShouldEqual, 400)
			So(float64(zeros)/400, ShouldAlmostEqual, 0.5, 0.1)
		})
	})
}

func TestSessionSubscribers(t *testing.T) {
	Convey("Given a session with subscribers", t, func() {
		s := NewSession(testConfig(), WithClock(testClock()))

		all := s.Subscribe("all", 16)
		settled := s.Subscribe("settled", 16, SettledOnly)

		Reset(func() {
			s.Close()
		})

		Convey("Settled subscribers only see landed frames", func() {
			s.ApplyGate("x")
			s.Tick(30 * time.Millisecond)
			s.Tick(30 * time.Millisecond)
			s.Tick(40 * time.Millisecond)

			So(len(all), ShouldEqual, 3)
			So(len(settled), ShouldEqual, 1)

			frame := <-settled
			So(frame.Angles.Theta, ShouldEqual, math.Pi)
			So(frame.Label, ShouldEqual, "-1.000|1⟩")
		})

		Convey("Unsubscribed channels are closed", func() {
			s.Unsubscribe("all")
			_, open := <-all
			So(open, ShouldBeFalse)
		})
	})
}
