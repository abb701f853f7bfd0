// Package srs implements the spaced-repetition scheduling algorithm that
// drives per-question review timing. It is a pure state machine: given a
// quality rating and the current memory state it produces the next state,
// with no I/O and no side effects.
package srs

// hardDailyCeiling is the absolute upper bound on reviews scheduled for a
// single day, regardless of time budget or backlog size.
const hardDailyCeiling = 50

// Params defines the configurable parameters of the scheduling algorithm.
// They are injected rather than read from package globals so alternative
// budgets can be exercised in tests.
type Params struct {
	// MinEaseFactor is the floor below which ease never drops.
	MinEaseFactor float64

	// FirstInterval is the interval in days after the first successful
	// recall of a question.
	FirstInterval int

	// SecondInterval is the interval in days after the second consecutive
	// successful recall.
	SecondInterval int

	// TargetReviewMinutes is the default daily time budget for review
	// sessions, used by the load estimator.
	TargetReviewMinutes int

	// SecondsPerCard is the expected time to answer a single review card,
	// used by the load estimator.
	SecondsPerCard int
}

// NewDefaultParams creates a Params instance with the standard values.
//
// Note there is deliberately no upper bound on ease factor growth: a
// question rated easy many times in a row keeps getting easier without
// limit.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:       1.3,
		FirstInterval:       1,
		SecondInterval:      6,
		TargetReviewMinutes: 30,
		SecondsPerCard:      30,
	}
}
