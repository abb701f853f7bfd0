package planner

import (
	"fmt"
	"strconv"

	"github.com/jwhitaker/certprep-api/internal/domain"
)

// Task is a candidate task produced by a phase policy. It carries no storage
// identity; the caller attaches it to a concrete plan day.
type Task struct {
	Type             domain.TaskType
	TargetID         *string
	EstimatedMinutes int
	Notes            string
}

// dayBuilder accumulates tasks for one day, enforcing the per-day time
// budget. A task is added only if its full cost fits in what remains.
type dayBuilder struct {
	remaining int
	tasks     []Task
}

func newDayBuilder(budget int) *dayBuilder {
	return &dayBuilder{remaining: budget}
}

func (b *dayBuilder) add(t Task) bool {
	if t.EstimatedMinutes > b.remaining {
		return false
	}
	b.remaining -= t.EstimatedMinutes
	b.tasks = append(b.tasks, t)
	return true
}

// earlyTasks fills an early-phase day: content acquisition first, with a
// short review session every other day to start building the habit.
func earlyTasks(ctx *Context, dayIndex int) []Task {
	b := newDayBuilder(ctx.Config.BudgetFor(PhaseEarly))

	if item, ok := ctx.Items.Peek(); ok {
		b.add(learningTask(item, ctx.Config))
	}

	if dayIndex%2 == 0 && ctx.DueReviews > 0 {
		b.add(reviewTask(ctx.Config))
	}

	return b.tasks
}

// middleTasks fills a middle-phase day: learning continues at half pace
// while weak-domain practice ramps up.
func middleTasks(ctx *Context, dayIndex int) []Task {
	b := newDayBuilder(ctx.Config.BudgetFor(PhaseMiddle))

	if dayIndex%2 == 0 {
		if item, ok := ctx.Items.Peek(); ok {
			b.add(learningTask(item, ctx.Config))
		}
	}

	if n := len(ctx.Weak); n > 0 {
		b.add(practiceTask(ctx.Weak[dayIndex%n], ctx.Config))
	}

	if ctx.DueReviews > 0 {
		b.add(reviewTask(ctx.Config))
	}

	return b.tasks
}

// lateTasks fills a late-phase day: heavy rotation over weak domains with
// drills alternating between targeted and mixed.
func lateTasks(ctx *Context, dayIndex int) []Task {
	b := newDayBuilder(ctx.Config.BudgetFor(PhaseLate))
	n := len(ctx.Weak)

	if n > 0 {
		b.add(practiceTask(ctx.Weak[dayIndex%n], ctx.Config))
	}

	// Rotate drills across the weak domains plus one mixed slot.
	if idx := dayIndex % (n + 1); idx < n {
		b.add(domainDrillTask(ctx.Weak[idx], ctx.Config))
	} else {
		b.add(mixedDrillTask(ctx.Config))
	}

	if n > 1 {
		b.add(practiceTask(ctx.Weak[(dayIndex+1)%n], ctx.Config))
	}

	if ctx.DueReviews > 0 {
		b.add(reviewTask(ctx.Config))
	}

	return b.tasks
}

func learningTask(item domain.LearningPathItem, cfg Config) Task {
	target := strconv.Itoa(item.Order)
	notes := fmt.Sprintf("Complete learning path item %d", item.Order)
	if item.Title != "" {
		notes = fmt.Sprintf("Complete learning path item %d: %s", item.Order, item.Title)
	}
	return Task{
		Type:             domain.TaskTypeLearning,
		TargetID:         &target,
		EstimatedMinutes: cfg.LearningMinutes,
		Notes:            notes,
	}
}

func practiceTask(d domain.DomainReadiness, cfg Config) Task {
	target := d.DomainID.String()
	return Task{
		Type:             domain.TaskTypePractice,
		TargetID:         &target,
		EstimatedMinutes: cfg.PracticeMinutes,
		Notes:            fmt.Sprintf("Practice questions in %s (readiness %.0f%%)", d.DomainName, d.Score),
	}
}

func reviewTask(cfg Config) Task {
	return Task{
		Type:             domain.TaskTypeReview,
		EstimatedMinutes: cfg.ReviewMinutes,
		Notes:            "Review due questions in your spaced-repetition queue",
	}
}

func domainDrillTask(d domain.DomainReadiness, cfg Config) Task {
	target := d.DomainID.String()
	return Task{
		Type:             domain.TaskTypeDrill,
		TargetID:         &target,
		EstimatedMinutes: cfg.DrillMinutes,
		Notes:            fmt.Sprintf("Timed drill on %s", d.DomainName),
	}
}

func mixedDrillTask(cfg Config) Task {
	return Task{
		Type:             domain.TaskTypeDrill,
		EstimatedMinutes: cfg.DrillMinutes,
		Notes:            "Timed mixed drill across all domains",
	}
}
