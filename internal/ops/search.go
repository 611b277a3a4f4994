package ops

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hpark/clipvault/internal/db"
	"github.com/hpark/clipvault/internal/errors"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Term  string // required
	Limit int
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Term  string `json:"term"`
	Items []Item `json:"items"`
	Count int    `json:"count"`
}

// Search returns entries whose content contains term, case-insensitively,
// most-recent-first.
func Search(ctx context.Context, database *sql.DB, input SearchInput) (*SearchOutput, error) {
	term := strings.TrimSpace(input.Term)
	if term == "" {
		return nil, errors.NewInvalidRequest("search term is required")
	}
	if utf8.RuneCountInString(term) > MaxSearchChars {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("search term exceeds maximum length of %d characters", MaxSearchChars))
	}

	entries, err := db.SearchContent(ctx, database, term, clampLimit(input.Limit))
	if err != nil {
		return nil, err
	}

	items := itemsFromEntries(entries)
	return &SearchOutput{Term: term, Items: items, Count: len(items)}, nil
}
