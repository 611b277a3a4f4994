package entry

import (
	"crypto/rand"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
)

// Category is the classification label assigned to an entry's content.
type Category string

const (
	CategoryURL           Category = "URL"
	CategoryCode          Category = "Code"
	CategoryLaTeX         Category = "LaTeX"
	CategoryQuote         Category = "Quote"
	CategoryPlaintext     Category = "Plaintext"
	CategoryMiscellaneous Category = "Miscellaneous"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryURL,
	CategoryCode,
	CategoryLaTeX,
	CategoryQuote,
	CategoryPlaintext,
	CategoryMiscellaneous,
}

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Entry represents one recorded clipboard capture.
// Entries are immutable once stored; history is append-only except for
// the explicit clear-all operation.
type Entry struct {
	// ID is a ULID that uniquely identifies this entry. ULIDs sort by
	// generation time, which provides the tie-break ordering for entries
	// captured within the same millisecond.
	ID string

	// Content is the raw captured clipboard text, never empty
	Content string

	// Category is the classification label assigned at capture time
	Category Category

	// CapturedAt is the capture instant as Unix milliseconds (UTC)
	CapturedAt int64

	// CharCount is the rune count of Content, stored for query convenience
	CharCount int
}

// New constructs an entry for freshly captured content, assigning an ID,
// timestamp, and derived char count.
func New(content string, category Category) *Entry {
	now := time.Now().UTC()
	return &Entry{
		ID:         NewID(now),
		Content:    content,
		Category:   category,
		CapturedAt: now.UnixMilli(),
		CharCount:  CountChars(content),
	}
}

// Monotonic entropy keeps IDs generated within the same millisecond in
// insertion order, which is the ordering tie-break for entries.
var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID generates a ULID for the given time.
func NewID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// CountChars returns the character count of s (runes, not bytes).
func CountChars(s string) int {
	return utf8.RuneCountInString(s)
}
