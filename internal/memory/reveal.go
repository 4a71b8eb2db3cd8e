package memory

import "time"

// Timing holds the pacing of reveals and post-outcome delays.
type Timing struct {
	Settle        time.Duration // before the first activation
	Display       time.Duration // how long each cell stays lit
	Pause         time.Duration // gap after each cell goes dark
	BetweenRounds time.Duration // after a completed round
	RetryDelay    time.Duration // after a wrong click, before the retry
}

// DefaultTiming returns the standard pacing.
func DefaultTiming() Timing {
	return Timing{
		Settle:        500 * time.Millisecond,
		Display:       1500 * time.Millisecond,
		Pause:         300 * time.Millisecond,
		BetweenRounds: 2 * time.Second,
		RetryDelay:    2 * time.Second,
	}
}

// RevealKind is the type of a reveal event.
type RevealKind int

const (
	RevealActivate RevealKind = iota
	RevealDeactivate
	RevealDone
)

// String returns a human-readable name for the kind.
func (k RevealKind) String() string {
	switch k {
	case RevealActivate:
		return "Activate"
	case RevealDeactivate:
		return "Deactivate"
	case RevealDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// RevealEvent is one step of a reveal, At is the offset from the reveal start.
type RevealEvent struct {
	Kind RevealKind
	Cell Cell
	At   time.Duration
}

// PlanReveal lays out the playback of cells as a strictly sequential series
// of activate/deactivate pairs followed by a single Done event.
// At most one cell is active at any instant.
func PlanReveal(cells []Cell, t Timing) []RevealEvent {
	events := make([]RevealEvent, 0, 2*len(cells)+1)
	at := t.Settle

	for _, c := range cells {
		events = append(events, RevealEvent{Kind: RevealActivate, Cell: c, At: at})
		at += t.Display
		events = append(events, RevealEvent{Kind: RevealDeactivate, Cell: c, At: at})
		at += t.Pause
	}

	events = append(events, RevealEvent{Kind: RevealDone, At: at})
	return events
}

// RevealDuration is the total length of a reveal of n cells.
func RevealDuration(n int, t Timing) time.Duration {
	return t.Settle + time.Duration(n)*(t.Display+t.Pause)
}
