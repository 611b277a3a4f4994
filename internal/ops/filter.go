package ops

import (
	"context"
	"database/sql"

	"github.com/hpark/clipvault/internal/db"
	"github.com/hpark/clipvault/internal/entry"
	"github.com/hpark/clipvault/internal/errors"
)

// FilterInput contains parameters for the Filter operation.
type FilterInput struct {
	Category string // required, must be a known label
	Limit    int
}

// FilterOutput contains the result of the Filter operation.
type FilterOutput struct {
	Category string `json:"category"`
	Items    []Item `json:"items"`
	Count    int    `json:"count"`
}

// Filter returns history entries of one category, most-recent-first.
func Filter(ctx context.Context, database *sql.DB, input FilterInput) (*FilterOutput, error) {
	if !entry.ValidCategory(input.Category) {
		return nil, errors.NewInvalidRequest("unknown category: " + input.Category)
	}

	entries, err := db.ListByCategory(ctx, database, entry.Category(input.Category), clampLimit(input.Limit))
	if err != nil {
		return nil, err
	}

	items := itemsFromEntries(entries)
	return &FilterOutput{Category: input.Category, Items: items, Count: len(items)}, nil
}
