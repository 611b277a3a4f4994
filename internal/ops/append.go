package ops

import (
	"context"
	"database/sql"

	"github.com/hpark/clipvault/internal/db"
	"github.com/hpark/clipvault/internal/entry"
	"github.com/hpark/clipvault/internal/errors"
)

// AppendInput contains parameters for the Append operation.
type AppendInput struct {
	Content  string         // required, non-empty
	Category entry.Category // required, must be a known label
}

// AppendOutput contains the result of the Append operation.
type AppendOutput struct {
	Item Item `json:"item"`
}

// Append records one captured entry. The entry is durable before Append
// returns; a failure leaves existing history untouched.
func Append(ctx context.Context, database *sql.DB, input AppendInput) (*AppendOutput, error) {
	if input.Content == "" {
		return nil, errors.NewInvalidRequest("content is required")
	}
	if !entry.ValidCategory(string(input.Category)) {
		return nil, errors.NewInvalidRequest("unknown category: " + string(input.Category))
	}

	e := entry.New(input.Content, input.Category)
	if err := db.Insert(ctx, database, e); err != nil {
		return nil, err
	}

	return &AppendOutput{Item: itemFromEntry(e)}, nil
}
