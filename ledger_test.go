package blochsphere

import (
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLedger(t *testing.T) {
	Convey("Given a bounded ledger", t, func() {
		l := NewLedger(3)

		Convey("Entries are sequenced in order", func() {
			first := l.Record(Entry{Kind: KindGate, ID: "h"})
			second := l.Record(Entry{Kind: KindPreset, ID: "plus"})

			So(first.Sequence, ShouldEqual, 1)
			So(second.Sequence, ShouldEqual, 2)
			So(first.Timestamp.IsZero(), ShouldBeFalse)

			entries := l.Entries()
			So(len(entries), ShouldEqual, 2)
			So(entries[0].ID, ShouldEqual, "h")
			So(entries[1].ID, ShouldEqual, "plus")

			dump := spew.Sdump(entries)
			So(dump, ShouldContainSubstring, "blochsphere.Entry")
			So(dump, ShouldContainSubstring, `"plus"`)
		})

		Convey("Supplied timestamps are kept", func() {
			at := time.Unix(epoch, 0)
			e := l.Record(Entry{Kind: KindAngles, Timestamp: at})
			So(e.Timestamp, ShouldEqual, at)
		})

		Convey("Old entries are evicted past the limit", func() {
			for _, id := range []string{"x", "y", "z", "h", "s"} {
				l.Record(Entry{Kind: KindGate, ID: id})
			}

			So(l.Len(), ShouldEqual, 3)
			So(l.Sequence(), ShouldEqual, 5)

			entries := l.Entries()
			So(entries[0].ID, ShouldEqual, "z")
			So(entries[0].Sequence, ShouldEqual, 3)
			So(entries[2].ID, ShouldEqual, "s")
		})

		Convey("Since returns only newer entries", func() {
			for _, id := range []string{"x", "y", "z"} {
				l.Record(Entry{Kind: KindGate, ID: id})
			}

			since := l.Since(1)
			So(len(since), ShouldEqual, 2)
			So(since[0].ID, ShouldEqual, "y")
			So(l.Since(3), ShouldBeEmpty)
		})

		Convey("Returned slices are copies", func() {
			l.Record(Entry{Kind: KindGate, ID: "x"})
			entries := l.Entries()
			entries[0].ID = "tampered"
			So(l.Entries()[0].ID, ShouldEqual, "x")
		})
	})

	Convey("Given an unbounded ledger", t, func() {
		l := NewLedger(0)
		for i := 0; i < 1000; i++ {
			l.Record(Entry{Kind: KindMeasure})
		}
		So(l.Len(), ShouldEqual, 1000)
	})
}
