package memory

import "fmt"

// Outcome is the result of submitting one cell.
type Outcome int

const (
	OutcomeIgnored   Outcome = iota // input was not accepted
	OutcomeCorrect                  // matched, more cells remain
	OutcomeComplete                 // matched the final cell
	OutcomeIncorrect                // mismatch, attempt over
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "Ignored"
	case OutcomeCorrect:
		return "Correct"
	case OutcomeComplete:
		return "Complete"
	case OutcomeIncorrect:
		return "Incorrect"
	default:
		return "Unknown"
	}
}

// Verifier checks player selections against a pattern, one at a time.
type Verifier struct {
	progress []Cell
	enabled  bool
}

// Enable starts accepting submissions.
func (v *Verifier) Enable() {
	v.enabled = true
}

// Disable stops accepting submissions.
func (v *Verifier) Disable() {
	v.enabled = false
}

// Enabled reports whether submissions are accepted.
func (v *Verifier) Enabled() bool {
	return v.enabled
}

// ResetProgress clears the cells entered in the current attempt.
func (v *Verifier) ResetProgress() {
	v.progress = v.progress[:0]
}

// Progress returns a copy of the cells entered so far.
func (v *Verifier) Progress() []Cell {
	out := make([]Cell, len(v.progress))
	copy(out, v.progress)
	return out
}

// Submit records c and compares it with the pattern element at the position
// just filled. Incorrect and Complete both end the attempt and disable input.
func (v *Verifier) Submit(p *Pattern, c Cell) (Outcome, error) {
	if !v.enabled {
		return OutcomeIgnored, ErrInputDisabled
	}

	v.progress = append(v.progress, c)
	want, err := p.At(len(v.progress) - 1)
	if err != nil {
		// More clicks than pattern elements; the attempt cannot continue.
		v.enabled = false
		return OutcomeIgnored, fmt.Errorf("verify click %d: %w", len(v.progress), err)
	}

	switch {
	case c != want:
		v.enabled = false
		return OutcomeIncorrect, nil
	case len(v.progress) == p.Len():
		v.enabled = false
		return OutcomeComplete, nil
	default:
		return OutcomeCorrect, nil
	}
}
