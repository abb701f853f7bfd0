package planner

import (
	"math"
	"sort"

	"github.com/jwhitaker/certprep-api/internal/domain"
)

// Context carries everything a phase policy needs to fill a day. One Context
// spans the whole planning run: the item cursor advances as days consume
// learning-path items.
type Context struct {
	// Weak is the rotating weak-domain pool: the lower-scoring half of the
	// readiness list, ascending.
	Weak []domain.DomainReadiness

	// DueReviews is the number of review cards due at planning time.
	DueReviews int

	// Items walks the incomplete learning-path items in catalog order.
	Items *ItemCursor

	Config Config
}

// NewContext derives a planning context from the raw generation inputs.
func NewContext(
	readiness []domain.DomainReadiness,
	incomplete []domain.LearningPathItem,
	dueReviews int,
	cfg Config,
) *Context {
	return &Context{
		Weak:       WeakDomains(readiness),
		DueReviews: dueReviews,
		Items:      NewItemCursor(incomplete),
		Config:     cfg,
	}
}

// WeakDomains returns the lower half of the readiness list, sorted by score
// ascending: ceil(n/2) domains, so a single domain is always "weak". The
// input slice is not modified.
func WeakDomains(readiness []domain.DomainReadiness) []domain.DomainReadiness {
	if len(readiness) == 0 {
		return nil
	}

	sorted := make([]domain.DomainReadiness, len(readiness))
	copy(sorted, readiness)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })

	half := int(math.Ceil(float64(len(sorted)) / 2))
	return sorted[:half]
}

// BuildDay produces the accepted task list for one day. Candidates come from
// the day's phase policy; they are then admitted in order as long as the
// running total stays within budget — a candidate that would overflow stops
// consideration entirely. The learning-path cursor advances only when a
// learning task survives admission.
//
// During initial generation budget equals the phase budget, so every policy
// candidate is admitted. Regeneration passes the residual budget left after
// completed tasks, which may truncate the list.
func BuildDay(ctx *Context, phase Phase, dayIndex, budget int) []Task {
	var candidates []Task
	switch phase {
	case PhaseEarly:
		candidates = earlyTasks(ctx, dayIndex)
	case PhaseMiddle:
		candidates = middleTasks(ctx, dayIndex)
	default:
		candidates = lateTasks(ctx, dayIndex)
	}

	accepted := admit(candidates, budget)

	for _, t := range accepted {
		if t.Type == domain.TaskTypeLearning {
			ctx.Items.Advance()
			break
		}
	}

	return accepted
}

// admit accepts candidates in order while the running total fits in budget.
// The first candidate that would exceed it ends the day.
func admit(candidates []Task, budget int) []Task {
	var accepted []Task
	remaining := budget
	for _, t := range candidates {
		if t.EstimatedMinutes > remaining {
			break
		}
		remaining -= t.EstimatedMinutes
		accepted = append(accepted, t)
	}
	return accepted
}
