package ops

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hpark/clipvault/internal/db"
)

// ClearOutput contains the result of the Clear operation.
type ClearOutput struct {
	Removed int    `json:"removed"`
	Message string `json:"message"`
}

// Clear atomically empties the history. This is the only way entries are
// ever destroyed.
func Clear(ctx context.Context, database *sql.DB) (*ClearOutput, error) {
	removed, err := db.DeleteAll(ctx, database)
	if err != nil {
		return nil, err
	}

	return &ClearOutput{
		Removed: removed,
		Message: fmt.Sprintf("cleared %d entries", removed),
	}, nil
}
