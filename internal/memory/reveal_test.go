package memory

import (
	"testing"
	"time"
)

func TestPlanRevealPacing(t *testing.T) {
	timing := DefaultTiming()
	cells := []Cell{C(2, 1), C(0, 3)}

	events := PlanReveal(cells, timing)

	want := []RevealEvent{
		{Kind: RevealActivate, Cell: C(2, 1), At: 500 * time.Millisecond},
		{Kind: RevealDeactivate, Cell: C(2, 1), At: 2000 * time.Millisecond},
		{Kind: RevealActivate, Cell: C(0, 3), At: 2300 * time.Millisecond},
		{Kind: RevealDeactivate, Cell: C(0, 3), At: 3800 * time.Millisecond},
		{Kind: RevealDone, At: 4100 * time.Millisecond},
	}

	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}
	if d := RevealDuration(len(cells), timing); d != want[len(want)-1].At {
		t.Errorf("RevealDuration = %v, want %v", d, want[len(want)-1].At)
	}
}

func TestPlanRevealNeverOverlaps(t *testing.T) {
	cells := []Cell{C(1, 1), C(1, 1), C(2, 2), C(1, 1)}
	events := PlanReveal(cells, DefaultTiming())

	active := 0
	last := time.Duration(-1)
	for _, e := range events {
		if e.At < last {
			t.Fatalf("events out of order at %+v", e)
		}
		last = e.At

		switch e.Kind {
		case RevealActivate:
			active++
			if active > 1 {
				t.Fatalf("two cells active at %v", e.At)
			}
		case RevealDeactivate:
			active--
		}
	}
	if active != 0 {
		t.Errorf("reveal ended with %d active cells", active)
	}
	if events[len(events)-1].Kind != RevealDone {
		t.Error("last event must be Done")
	}
}

func TestPlanRevealEmpty(t *testing.T) {
	events := PlanReveal(nil, DefaultTiming())
	if len(events) != 1 || events[0].Kind != RevealDone || events[0].At != 500*time.Millisecond {
		t.Errorf("empty reveal = %+v, want single Done after settle", events)
	}
}
