package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpark/clipvault/internal/db"
	"github.com/hpark/clipvault/internal/errors"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID string // required
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	Item Item `json:"item"`
}

// Fetch returns a single entry by id.
func Fetch(ctx context.Context, database *sql.DB, input FetchInput) (*FetchOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	e, err := db.GetByID(ctx, database, id)
	if err != nil {
		return nil, err
	}

	return &FetchOutput{Item: itemFromEntry(e)}, nil
}
