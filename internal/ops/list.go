package ops

import (
	"context"
	"database/sql"

	"github.com/hpark/clipvault/internal/db"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit int // 0 returns all entries; explicit values capped at MaxListLimit
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items []Item `json:"items"`
	Count int    `json:"count"`
}

// List returns history entries, most-recent-first.
func List(ctx context.Context, database *sql.DB, input ListInput) (*ListOutput, error) {
	entries, err := db.List(ctx, database, clampLimit(input.Limit))
	if err != nil {
		return nil, err
	}

	items := itemsFromEntries(entries)
	return &ListOutput{Items: items, Count: len(items)}, nil
}
