package studyplan

import (
	"sort"

	"github.com/google/uuid"
	"github.com/jwhitaker/certprep-api/internal/domain"
)

// Catalog maps a certification to its static learning path. The catalog is
// part of deployment configuration; the engine only schedules ordinals and
// never inspects item content.
type Catalog map[uuid.UUID][]domain.LearningPathItem

// ItemsFor returns the learning path for a certification in ordinal order.
// An unknown certification has an empty path.
func (c Catalog) ItemsFor(certificationID uuid.UUID) []domain.LearningPathItem {
	items := c[certificationID]
	if len(items) == 0 {
		return nil
	}

	sorted := make([]domain.LearningPathItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	return sorted
}

// incompleteItems filters the path down to items the user has not completed,
// preserving catalog order.
func incompleteItems(items []domain.LearningPathItem, completed map[int]bool) []domain.LearningPathItem {
	var remaining []domain.LearningPathItem
	for _, item := range items {
		if !completed[item.Order] {
			remaining = append(remaining, item)
		}
	}
	return remaining
}
