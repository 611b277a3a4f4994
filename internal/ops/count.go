package ops

import (
	"context"
	"database/sql"

	"github.com/hpark/clipvault/internal/db"
	"github.com/hpark/clipvault/internal/entry"
)

// CountOutput contains the result of the CountEntries operation.
type CountOutput struct {
	Total int `json:"total"`
}

// CountEntries returns the total number of history entries.
func CountEntries(ctx context.Context, database *sql.DB) (*CountOutput, error) {
	total, err := db.Count(ctx, database)
	if err != nil {
		return nil, err
	}
	return &CountOutput{Total: total}, nil
}

// CategoryCount pairs a category with its entry count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// StatsOutput contains the result of the Stats operation.
type StatsOutput struct {
	Total      int             `json:"total"`
	Categories []CategoryCount `json:"categories"`
}

// Stats returns per-category entry counts in display order, plus the total.
// Categories with no entries are included with a zero count.
func Stats(ctx context.Context, database *sql.DB) (*StatsOutput, error) {
	counts, err := db.CountByCategory(ctx, database)
	if err != nil {
		return nil, err
	}

	out := &StatsOutput{
		Categories: make([]CategoryCount, 0, len(entry.Categories)),
	}
	for _, c := range entry.Categories {
		n := counts[c]
		out.Categories = append(out.Categories, CategoryCount{Category: string(c), Count: n})
		out.Total += n
	}
	return out, nil
}
