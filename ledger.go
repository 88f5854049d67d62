package blochsphere

import (
	"sync"
	"time"
)

// EntryKind names the control operation an Entry records.
type EntryKind string

const (
	KindAngles  EntryKind = "angles"
	KindPreset  EntryKind = "preset"
	KindGate    EntryKind = "gate"
	KindMeasure EntryKind = "measure"
	KindReset   EntryKind = "reset"
)

/*
Entry is an immutable record of one accepted operation. Sequence numbers
increase monotonically for the lifetime of the ledger, even after old
entries have been evicted.
*/
type Entry struct {
	Sequence  uint64
	Timestamp time.Time
	Kind      EntryKind
	ID        string
	From      Angles
	To        Angles
	Outcome   *Outcome
}

/*
Ledger keeps the ordered history of a session. It is bounded: once limit
entries are held, the oldest is evicted for each new one. A limit of zero
keeps everything.
*/
type Ledger struct {
	mu       sync.RWMutex
	entries  []Entry
	limit    int
	sequence uint64
}

func NewLedger(limit int) *Ledger {
	if limit < 0 {
		limit = 0
	}

	return &Ledger{
		entries: make([]Entry, 0),
		limit:   limit,
	}
}

// Record stamps and appends an entry, returning the stored copy.
func (l *Ledger) Record(entry Entry) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sequence++
	entry.Sequence = l.sequence

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	l.entries = append(l.entries, entry)

	if l.limit > 0 && len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}

	return entry
}

// Entries returns a copy of the retained history, oldest first.
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Since returns retained entries with a sequence greater than seq.
func (l *Ledger) Since(seq uint64) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, 0)
	for _, e := range l.entries {
		if e.Sequence > seq {
			out = append(out, e)
		}
	}
	return out
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Sequence is the number of entries ever recorded.
func (l *Ledger) Sequence() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sequence
}
