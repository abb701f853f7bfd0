package domain

import "github.com/google/uuid"

// DomainReadiness is the per-domain proficiency score supplied by the
// readiness scorer. The scheduling engine consumes these read-only; it never
// computes or stores them.
type DomainReadiness struct {
	DomainID   uuid.UUID `json:"domain_id"`
	DomainName string    `json:"domain_name"`
	Score      float64   `json:"score"` // 0-100
}

// Validate checks that the score is within the 0-100 range.
func (r DomainReadiness) Validate() error {
	if r.Score < 0 || r.Score > 100 {
		return ErrInvalidReadinessScore
	}
	return nil
}

// LearningPathItem is one unit of the static, externally defined learning
// path for a certification. The engine schedules items by ordinal only and
// never inspects their content.
type LearningPathItem struct {
	Order int    `json:"order"`
	Title string `json:"title"`
}
