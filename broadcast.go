package blochsphere

import (
	"sync"
	"time"
)

/*
FilterFunc decides whether a frame is delivered.

Returning false drops the frame for the subscriber (or, for a group-wide
filter, for everyone) and counts it as dropped.
*/
type FilterFunc func(*Frame) bool

/*
BroadcastGroup fans frames out to any number of subscriber channels.

Sends never block: a subscriber whose buffer is full misses the frame and
the miss shows up in the metrics. A renderer that falls behind therefore
skips intermediate animation frames instead of stalling the session.
*/
type BroadcastGroup struct {
	mu sync.RWMutex

	ID          string
	subscribers map[string]chan Frame
	filters     []FilterFunc
	routes      map[string][]FilterFunc
	metrics     *BroadcastMetrics
	clock       Clock
	LastUsed    time.Time
}

// BroadcastMetrics tracks delivery for a broadcast group.
type BroadcastMetrics struct {
	FramesSent        int64
	FramesDropped     int64
	ActiveSubscribers int
	LastBroadcastTime time.Time
}

// NewBroadcastGroup stamps sends with clock; nil means the system clock.
func NewBroadcastGroup(id string, clock Clock) *BroadcastGroup {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &BroadcastGroup{
		ID:          id,
		subscribers: make(map[string]chan Frame),
		routes:      make(map[string][]FilterFunc),
		metrics:     &BroadcastMetrics{},
		clock:       clock,
		LastUsed:    clock.Now(),
	}
}

/*
Subscribe registers a buffered channel for subscriberID. Re-subscribing
an existing id closes and replaces its previous channel. Optional filters
apply to this subscriber only; a frame is delivered if any of them pass.
*/
func (bg *BroadcastGroup) Subscribe(subscriberID string, bufferSize int, filters ...FilterFunc) <-chan Frame {
	bg.mu.Lock()
	defer bg.mu.Unlock()

	if bufferSize < 1 {
		bufferSize = 1
	}

	if old, exists := bg.subscribers[subscriberID]; exists {
		close(old)
		bg.metrics.ActiveSubscribers--
	}

	ch := make(chan Frame, bufferSize)
	bg.subscribers[subscriberID] = ch

	if len(filters) > 0 {
		bg.routes[subscriberID] = filters
	} else {
		delete(bg.routes, subscriberID)
	}

	bg.metrics.ActiveSubscribers++
	return ch
}

// Unsubscribe closes and removes a subscriber's channel.
func (bg *BroadcastGroup) Unsubscribe(subscriberID string) {
	bg.mu.Lock()
	defer bg.mu.Unlock()

	if ch, exists := bg.subscribers[subscriberID]; exists {
		close(ch)
		delete(bg.subscribers, subscriberID)
		delete(bg.routes, subscriberID)
		bg.metrics.ActiveSubscribers--
	}
}

// Send delivers frame to every subscriber that accepts it.
func (bg *BroadcastGroup) Send(frame Frame) {
	bg.mu.Lock()
	defer bg.mu.Unlock()

	bg.LastUsed = bg.clock.Now()

	for _, filter := range bg.filters {
		if !filter(&frame) {
			bg.metrics.FramesDropped++
			return
		}
	}

	for subID, ch := range bg.subscribers {
		if rules, ok := bg.routes[subID]; ok && !anyPass(rules, &frame) {
			continue
		}

		select {
		case ch <- frame:
			bg.metrics.FramesSent++
		default:
			bg.metrics.FramesDropped++
		}
	}

	bg.metrics.LastBroadcastTime = bg.LastUsed
}

// Render lets a BroadcastGroup stand in wherever a Renderer is expected.
func (bg *BroadcastGroup) Render(frame Frame) {
	bg.Send(frame)
}

// AddFilter adds a group-wide filter applied before routing.
func (bg *BroadcastGroup) AddFilter(filter FilterFunc) {
	bg.mu.Lock()
	defer bg.mu.Unlock()
	bg.filters = append(bg.filters, filter)
}

func (bg *BroadcastGroup) Metrics() BroadcastMetrics {
	bg.mu.RLock()
	defer bg.mu.RUnlock()
	return *bg.metrics
}

// Close closes and forgets every subscriber channel.
func (bg *BroadcastGroup) Close() {
	bg.mu.Lock()
	defer bg.mu.Unlock()

	for _, ch := range bg.subscribers {
		close(ch)
	}

	bg.subscribers = make(map[string]chan Frame)
	bg.routes = make(map[string][]FilterFunc)
	bg.filters = nil
	bg.metrics.ActiveSubscribers = 0
}

// SettledOnly passes only frames emitted outside an animation.
func SettledOnly(f *Frame) bool {
	return !f.Animating
}

func anyPass(rules []FilterFunc, frame *Frame) bool {
	for _, rule := range rules {
		if rule(frame) {
			return true
		}
	}
	return false
}
