package memory

// RoundState is the phase of the current round.
type RoundState int

const (
	StateIdle RoundState = iota
	StateRevealing
	StateAwaitingInput
	StateEvaluating
	StateRoundSucceeded
	StateRoundFailed
)

// String returns a human-readable name for the state.
func (s RoundState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRevealing:
		return "revealing"
	case StateAwaitingInput:
		return "awaiting_input"
	case StateEvaluating:
		return "evaluating"
	case StateRoundSucceeded:
		return "round_succeeded"
	case StateRoundFailed:
		return "round_failed"
	default:
		return "unknown"
	}
}

// Snapshot captures the session state for rendering, tests and replay checks.
type Snapshot struct {
	State           RoundState
	Level           int
	Lives           int
	Width           int
	Height          int
	GameOver        bool
	Pattern         []Cell
	Progress        []Cell
	RoundsCompleted int
	RoundsInLevel   int
	Longest         int
	Epoch           uint64
}
