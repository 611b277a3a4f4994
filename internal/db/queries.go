package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpark/clipvault/internal/entry"
	"github.com/hpark/clipvault/internal/errors"
)

const selectColumns = "id, content, category, captured_at, char_count"

// Insert stores a new entry. A failed insert leaves existing history
// untouched (single statement, all-or-nothing).
func Insert(ctx context.Context, db *sql.DB, e *entry.Entry) error {
	query := `
		INSERT INTO entries (id, content, category, captured_at, char_count)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := db.ExecContext(ctx, query,
		e.ID, e.Content, string(e.Category), e.CapturedAt, e.CharCount,
	)
	if err != nil {
		return errors.NewStoreWrite(err)
	}
	return nil
}

// GetByID retrieves a single entry by its ULID.
func GetByID(ctx context.Context, db *sql.DB, id string) (*entry.Entry, error) {
	query := "SELECT " + selectColumns + " FROM entries WHERE id = ?"

	row := db.QueryRowContext(ctx, query, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewStoreRead(err)
	}
	return e, nil
}

// List returns entries most-recent-first. limit <= 0 returns all entries.
func List(ctx context.Context, db *sql.DB, limit int) ([]*entry.Entry, error) {
	query := "SELECT " + selectColumns + ` FROM entries
		ORDER BY captured_at DESC, id DESC`

	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return queryEntries(ctx, db, query, args...)
}

// ListByCategory returns entries of one category, most-recent-first.
func ListByCategory(ctx context.Context, db *sql.DB, category entry.Category, limit int) ([]*entry.Entry, error) {
	query := "SELECT " + selectColumns + ` FROM entries
		WHERE category = ?
		ORDER BY captured_at DESC, id DESC`

	args := []any{string(category)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return queryEntries(ctx, db, query, args...)
}

// SearchContent returns entries whose content contains term
// (case-insensitive), most-recent-first. The term is escaped so LIKE
// metacharacters match literally.
func SearchContent(ctx context.Context, db *sql.DB, term string, limit int) ([]*entry.Entry, error) {
	query := "SELECT " + selectColumns + ` FROM entries
		WHERE LOWER(content) LIKE ? ESCAPE '\'
		ORDER BY captured_at DESC, id DESC`

	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	args := []any{pattern}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return queryEntries(ctx, db, query, args...)
}

// Count returns the total number of entries.
func Count(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, errors.NewStoreRead(err)
	}
	return n, nil
}

// CountByCategory returns entry counts grouped by category.
func CountByCategory(ctx context.Context, db *sql.DB) (map[entry.Category]int, error) {
	rows, err := db.QueryContext(ctx, "SELECT category, COUNT(*) FROM entries GROUP BY category")
	if err != nil {
		return nil, errors.NewStoreRead(err)
	}
	defer rows.Close()

	counts := make(map[entry.Category]int)
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, errors.NewStoreRead(err)
		}
		counts[entry.Category(cat)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreRead(err)
	}
	return counts, nil
}

// DeleteAll removes every entry in one transaction, so a reader sees either
// the full history or none of it.
func DeleteAll(ctx context.Context, db *sql.DB) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.NewStoreWrite(err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM entries")
	if err != nil {
		return 0, errors.NewStoreWrite(err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewStoreWrite(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.NewStoreWrite(err)
	}
	return int(removed), nil
}

// LatestContent returns the content of the most recent entry, or "" if the
// history is empty. The monitor seeds its duplicate suppression with this so
// a restart does not re-record the entry already at the head of history.
func LatestContent(ctx context.Context, db *sql.DB) (string, error) {
	query := `SELECT content FROM entries ORDER BY captured_at DESC, id DESC LIMIT 1`

	var content string
	err := db.QueryRowContext(ctx, query).Scan(&content)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.NewStoreRead(err)
	}
	return content, nil
}

// queryEntries runs a multi-row entry query and scans the results.
func queryEntries(ctx context.Context, db *sql.DB, query string, args ...any) ([]*entry.Entry, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStoreRead(err)
	}
	defer rows.Close()

	entries := make([]*entry.Entry, 0)
	for rows.Next() {
		var e entry.Entry
		var cat string
		if err := rows.Scan(&e.ID, &e.Content, &cat, &e.CapturedAt, &e.CharCount); err != nil {
			return nil, errors.NewStoreRead(err)
		}
		e.Category = entry.Category(cat)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreRead(err)
	}
	return entries, nil
}

// scanEntry scans a single row into an Entry.
func scanEntry(row *sql.Row) (*entry.Entry, error) {
	var e entry.Entry
	var cat string
	if err := row.Scan(&e.ID, &e.Content, &cat, &e.CapturedAt, &e.CharCount); err != nil {
		return nil, err
	}
	e.Category = entry.Category(cat)
	return &e, nil
}

// escapeLike escapes LIKE metacharacters so they match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
