package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpark/clipvault/internal/clipboard"
	"github.com/hpark/clipvault/internal/db"
	"github.com/hpark/clipvault/internal/errors"
)

// RecopyInput contains parameters for the Recopy operation.
type RecopyInput struct {
	ID string // required
}

// RecopyOutput contains the result of the Recopy operation.
type RecopyOutput struct {
	ID        string `json:"id"`
	CharCount int    `json:"char_count"`
	Message   string `json:"message"`
}

// Recopy restores the content of a stored entry to the OS clipboard.
// History is not touched here; if the monitor is running it will observe the
// restored value on its next poll and record it as a new entry unless it
// matches the last accepted content.
func Recopy(ctx context.Context, database *sql.DB, clip clipboard.Clipboard, input RecopyInput) (*RecopyOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	e, err := db.GetByID(ctx, database, id)
	if err != nil {
		return nil, err
	}

	if err := clip.Write(e.Content); err != nil {
		return nil, errors.NewClipboardWrite(err)
	}

	return &RecopyOutput{
		ID:        e.ID,
		CharCount: e.CharCount,
		Message:   "copied to clipboard",
	}, nil
}
