package blochsphere

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

/*
Metrics tracks what a session has done. Counts are kept in-process for
ExportMetrics and mirrored into Prometheus collectors, which are only
registered when a Registerer is supplied.
*/
type Metrics struct {
	mu sync.RWMutex

	GatesApplied        map[string]int64
	PresetsApplied      map[string]int64
	UnknownRequests     int64
	TransitionsAccepted int64
	TransitionsDropped  int64
	Measurements        [2]int64
	FramesEmitted       int64

	gates        *prometheus.CounterVec
	presetsVec   *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	measurements *prometheus.CounterVec
	frames       prometheus.Counter
	p0           prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GatesApplied:   make(map[string]int64),
		PresetsApplied: make(map[string]int64),
		gates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bloch",
			Name:      "gates_applied_total",
			Help:      "Gate requests accepted by the animator, by gate id",
		}, []string{"gate"}),
		presetsVec: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bloch",
			Name:      "presets_applied_total",
			Help:      "Preset requests accepted by the animator, by preset id",
		}, []string{"preset"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bloch",
			Name:      "transitions_total",
			Help:      "Transition requests, by result (accepted or dropped)",
		}, []string{"result"}),
		measurements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bloch",
			Name:      "measurements_total",
			Help:      "Completed measurements, by outcome",
		}, []string{"outcome"}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bloch",
			Name:      "frames_emitted_total",
			Help:      "Frames handed to renderers",
		}),
		p0: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bloch",
			Name:      "probability_zero",
			Help:      "Probability of measuring |0⟩ in the last emitted frame",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.gates, m.presetsVec, m.transitions, m.measurements, m.frames, m.p0)
	}

	return m
}

func (m *Metrics) recordGate(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GatesApplied[id]++
	m.gates.WithLabelValues(id).Inc()
}

func (m *Metrics) recordPreset(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PresetsApplied[id]++
	m.presetsVec.WithLabelValues(id).Inc()
}

func (m *Metrics) recordUnknown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnknownRequests++
}

func (m *Metrics) recordTransition(accepted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if accepted {
		m.TransitionsAccepted++
		m.transitions.WithLabelValues("accepted").Inc()
		return
	}

	m.TransitionsDropped++
	m.transitions.WithLabelValues("dropped").Inc()
}

func (m *Metrics) recordMeasurement(o Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Measurements[o]++
	m.measurements.WithLabelValues(strconv.Itoa(int(o))).Inc()
}

func (m *Metrics) recordFrame(f Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FramesEmitted++
	m.frames.Inc()
	m.p0.Set(f.P0)
}

// ExportMetrics returns a flat snapshot of the in-process counts.
func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	gates := make(map[string]int64, len(m.GatesApplied))
	for k, v := range m.GatesApplied {
		gates[k] = v
	}

	presets := make(map[string]int64, len(m.PresetsApplied))
	for k, v := range m.PresetsApplied {
		presets[k] = v
	}

	return map[string]interface{}{
		"gates_applied":        gates,
		"presets_applied":      presets,
		"unknown_requests":     m.UnknownRequests,
		"transitions_accepted": m.TransitionsAccepted,
		"transitions_dropped":  m.TransitionsDropped,
		"measured_zero":        m.Measurements[Zero],
		"measured_one":         m.Measurements[One],
		"frames_emitted":       m.FramesEmitted,
	}
}
