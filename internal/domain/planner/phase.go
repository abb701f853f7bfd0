package planner

import "math"

// Phase identifies which segment of the plan a day belongs to. Each phase
// has its own task-mix policy and time budget.
type Phase int

const (
	PhaseEarly Phase = iota
	PhaseMiddle
	PhaseLate
)

// String implements fmt.Stringer for logging.
func (p Phase) String() string {
	switch p {
	case PhaseEarly:
		return "early"
	case PhaseMiddle:
		return "middle"
	case PhaseLate:
		return "late"
	default:
		return "unknown"
	}
}

// Bounds partitions a span of days into the three contiguous phases.
type Bounds struct {
	EarlyDays  int
	MiddleDays int
	LateDays   int
}

// PhaseBounds splits totalDays by the configured ratios: early and middle
// take their floored shares, the late phase takes whatever remains.
func PhaseBounds(totalDays int, cfg Config) Bounds {
	early := int(math.Floor(float64(totalDays) * cfg.EarlyRatio))
	middle := int(math.Floor(float64(totalDays) * cfg.MiddleRatio))
	return Bounds{
		EarlyDays:  early,
		MiddleDays: middle,
		LateDays:   totalDays - early - middle,
	}
}

// PhaseFor returns the phase of the given zero-based day index.
func (b Bounds) PhaseFor(dayIndex int) Phase {
	switch {
	case dayIndex < b.EarlyDays:
		return PhaseEarly
	case dayIndex < b.EarlyDays+b.MiddleDays:
		return PhaseMiddle
	default:
		return PhaseLate
	}
}

// BudgetFor returns the per-day time budget for a phase.
func (cfg Config) BudgetFor(phase Phase) int {
	switch phase {
	case PhaseEarly:
		return cfg.EarlyBudgetMinutes
	case PhaseMiddle:
		return cfg.MiddleBudgetMinutes
	default:
		return cfg.LateBudgetMinutes
	}
}
