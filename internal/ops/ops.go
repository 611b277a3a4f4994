// Package ops implements the operations behind the CLI, web UI, and MCP
// tools. Each operation validates its input, talks to the store, and returns
// a JSON-taggable output struct.
package ops

import (
	"time"

	"github.com/hpark/clipvault/internal/entry"
)

// Listing limits
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
	MaxSearchChars   = 200
)

// Item is the external representation of a history entry.
type Item struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	CapturedAt int64  `json:"captured_at"` // Unix milliseconds
	Captured   string `json:"captured"`    // RFC 3339, for humans
	CharCount  int    `json:"char_count"`
}

// itemFromEntry converts a stored entry to its external representation.
func itemFromEntry(e *entry.Entry) Item {
	return Item{
		ID:         e.ID,
		Content:    e.Content,
		Category:   string(e.Category),
		CapturedAt: e.CapturedAt,
		Captured:   time.UnixMilli(e.CapturedAt).UTC().Format(time.RFC3339),
		CharCount:  e.CharCount,
	}
}

// itemsFromEntries converts a result set, preserving order.
func itemsFromEntries(entries []*entry.Entry) []Item {
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = itemFromEntry(e)
	}
	return items
}

// clampLimit caps an explicit limit at MaxListLimit. limit <= 0 means
// "all entries" and is passed through as 0.
func clampLimit(limit int) int {
	if limit <= 0 {
		return 0
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
