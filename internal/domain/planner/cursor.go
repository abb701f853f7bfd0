package planner

import "github.com/jwhitaker/certprep-api/internal/domain"

// ItemCursor walks the incomplete learning-path items in catalog order. It
// is shared across every day of a plan so each item is scheduled at most
// once.
type ItemCursor struct {
	items []domain.LearningPathItem
	pos   int
}

// NewItemCursor creates a cursor over the given items. The slice must
// already be in catalog order.
func NewItemCursor(items []domain.LearningPathItem) *ItemCursor {
	return &ItemCursor{items: items}
}

// Peek returns the next item without consuming it.
func (c *ItemCursor) Peek() (domain.LearningPathItem, bool) {
	if c.pos >= len(c.items) {
		return domain.LearningPathItem{}, false
	}
	return c.items[c.pos], true
}

// Advance consumes the item returned by Peek. Called once a learning task
// for it has actually been admitted into a day.
func (c *ItemCursor) Advance() {
	if c.pos < len(c.items) {
		c.pos++
	}
}

// Remaining returns how many items are left on the cursor.
func (c *ItemCursor) Remaining() int {
	return len(c.items) - c.pos
}
