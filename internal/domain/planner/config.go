// Package planner builds the day-by-day task schedule of a study plan. It is
// pure: callers supply readiness scores, the learning-path cursor and the due
// review count, and the planner returns candidate tasks per day without
// touching storage.
package planner

// Config defines the time budgets and fixed task costs used when filling a
// day. It is injected rather than read from package globals so alternative
// budgets and catalogs can be exercised in tests.
type Config struct {
	// Per-day time budgets by phase, in minutes.
	EarlyBudgetMinutes  int
	MiddleBudgetMinutes int
	LateBudgetMinutes   int

	// Fixed per-task costs, in minutes.
	LearningMinutes int
	PracticeMinutes int
	ReviewMinutes   int
	DrillMinutes    int

	// Phase ratios. Early and middle day counts are floor(totalDays*ratio);
	// the late phase takes the remainder.
	EarlyRatio  float64
	MiddleRatio float64
}

// DefaultConfig returns the standard planning configuration.
func DefaultConfig() Config {
	return Config{
		EarlyBudgetMinutes:  45,
		MiddleBudgetMinutes: 60,
		LateBudgetMinutes:   120,
		LearningMinutes:     45,
		PracticeMinutes:     30,
		ReviewMinutes:       15,
		DrillMinutes:        15,
		EarlyRatio:          0.4,
		MiddleRatio:         0.3,
	}
}
