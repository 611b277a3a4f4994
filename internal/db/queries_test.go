package db

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/hpark/clipvault/internal/entry"
	"github.com/hpark/clipvault/internal/errors"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// makeEntry builds an entry with an explicit capture instant so ordering is
// deterministic in tests.
func makeEntry(content string, cat entry.Category, at time.Time) *entry.Entry {
	return &entry.Entry{
		ID:         entry.NewID(at),
		Content:    content,
		Category:   cat,
		CapturedAt: at.UnixMilli(),
		CharCount:  entry.CountChars(content),
	}
}

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func seedEntries(t *testing.T, database *sql.DB, entries ...*entry.Entry) {
	t.Helper()
	ctx := context.Background()
	for _, e := range entries {
		if err := Insert(ctx, database, e); err != nil {
			t.Fatalf("Insert(%q) failed: %v", e.Content, err)
		}
	}
}

func TestInsertAndGetByID(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	e := makeEntry("hello world.", entry.CategoryPlaintext, base)
	seedEntries(t, database, e)

	got, err := GetByID(ctx, database, e.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Content != e.Content {
		t.Errorf("Content = %q, want %q", got.Content, e.Content)
	}
	if got.Category != entry.CategoryPlaintext {
		t.Errorf("Category = %q, want %q", got.Category, entry.CategoryPlaintext)
	}
	if got.CapturedAt != e.CapturedAt {
		t.Errorf("CapturedAt = %d, want %d", got.CapturedAt, e.CapturedAt)
	}
	if got.CharCount != 12 {
		t.Errorf("CharCount = %d, want 12", got.CharCount)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	database := testDB(t)

	_, err := GetByID(context.Background(), database, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestList_OrderAndLimit(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	seedEntries(t, database,
		makeEntry("first", entry.CategoryMiscellaneous, base),
		makeEntry("second", entry.CategoryMiscellaneous, base.Add(time.Second)),
		makeEntry("third", entry.CategoryMiscellaneous, base.Add(2*time.Second)),
	)

	all, err := List(ctx, database, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	want := []string{"third", "second", "first"}
	for i, w := range want {
		if all[i].Content != w {
			t.Errorf("all[%d].Content = %q, want %q", i, all[i].Content, w)
		}
	}

	limited, err := List(ctx, database, 2)
	if err != nil {
		t.Fatalf("List(2) failed: %v", err)
	}
	if len(limited) != 2 || limited[0].Content != "third" {
		t.Errorf("List(2) = %v", limited)
	}
}

func TestList_TieBreakByID(t *testing.T) {
	database := testDB(t)

	// Same millisecond: ULIDs generated later sort higher
	e1 := makeEntry("older", entry.CategoryMiscellaneous, base)
	e2 := makeEntry("newer", entry.CategoryMiscellaneous, base)
	if e2.ID < e1.ID {
		e1.ID, e2.ID = e2.ID, e1.ID
	}
	seedEntries(t, database, e1, e2)

	all, err := List(context.Background(), database, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if all[0].Content != "newer" {
		t.Errorf("all[0].Content = %q, want %q", all[0].Content, "newer")
	}
}

func TestListByCategory(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	seedEntries(t, database,
		makeEntry("x := 1", entry.CategoryCode, base),
		makeEntry("hello there.", entry.CategoryPlaintext, base.Add(time.Second)),
		makeEntry("y := 2", entry.CategoryCode, base.Add(2*time.Second)),
	)

	code, err := ListByCategory(ctx, database, entry.CategoryCode, 0)
	if err != nil {
		t.Fatalf("ListByCategory failed: %v", err)
	}
	if len(code) != 2 {
		t.Fatalf("len(code) = %d, want 2", len(code))
	}
	if code[0].Content != "y := 2" || code[1].Content != "x := 1" {
		t.Errorf("wrong order: %q, %q", code[0].Content, code[1].Content)
	}
	for _, e := range code {
		if e.Category != entry.CategoryCode {
			t.Errorf("Category = %q, want Code", e.Category)
		}
	}

	none, err := ListByCategory(ctx, database, entry.CategoryLaTeX, 0)
	if err != nil {
		t.Fatalf("ListByCategory(LaTeX) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("len(none) = %d, want 0", len(none))
	}
}

func TestSearchContent_CaseInsensitive(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	seedEntries(t, database,
		makeEntry("Hello World", entry.CategoryMiscellaneous, base),
		makeEntry("goodbye world", entry.CategoryMiscellaneous, base.Add(time.Second)),
		makeEntry("unrelated", entry.CategoryMiscellaneous, base.Add(2*time.Second)),
	)

	got, err := SearchContent(ctx, database, "WORLD", 0)
	if err != nil {
		t.Fatalf("SearchContent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].Content != "goodbye world" || got[1].Content != "Hello World" {
		t.Errorf("wrong results: %q, %q", got[0].Content, got[1].Content)
	}
}

func TestSearchContent_EscapesLikeMetacharacters(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	seedEntries(t, database,
		makeEntry("100% done", entry.CategoryMiscellaneous, base),
		makeEntry("100 percent done", entry.CategoryMiscellaneous, base.Add(time.Second)),
		makeEntry("snake_case", entry.CategoryMiscellaneous, base.Add(2*time.Second)),
		makeEntry("snakeXcase", entry.CategoryMiscellaneous, base.Add(3*time.Second)),
	)

	pct, err := SearchContent(ctx, database, "100%", 0)
	if err != nil {
		t.Fatalf("SearchContent failed: %v", err)
	}
	if len(pct) != 1 || pct[0].Content != "100% done" {
		t.Errorf("%% not treated literally: %v", pct)
	}

	und, err := SearchContent(ctx, database, "snake_", 0)
	if err != nil {
		t.Fatalf("SearchContent failed: %v", err)
	}
	if len(und) != 1 || und[0].Content != "snake_case" {
		t.Errorf("_ not treated literally: %v", und)
	}
}

func TestCountAndDeleteAll(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	n, err := Count(ctx, database)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}

	seedEntries(t, database,
		makeEntry("a", entry.CategoryMiscellaneous, base),
		makeEntry("b", entry.CategoryMiscellaneous, base.Add(time.Second)),
	)

	n, err = Count(ctx, database)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}

	removed, err := DeleteAll(ctx, database)
	if err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	n, err = Count(ctx, database)
	if err != nil {
		t.Fatalf("Count after clear failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Count after clear = %d, want 0", n)
	}

	all, err := List(ctx, database, 0)
	if err != nil {
		t.Fatalf("List after clear failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("List after clear has %d entries, want 0", len(all))
	}
}

func TestCountByCategory(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	seedEntries(t, database,
		makeEntry("x := 1", entry.CategoryCode, base),
		makeEntry("y := 2", entry.CategoryCode, base.Add(time.Second)),
		makeEntry("hello.", entry.CategoryPlaintext, base.Add(2*time.Second)),
	)

	counts, err := CountByCategory(ctx, database)
	if err != nil {
		t.Fatalf("CountByCategory failed: %v", err)
	}
	if counts[entry.CategoryCode] != 2 {
		t.Errorf("Code count = %d, want 2", counts[entry.CategoryCode])
	}
	if counts[entry.CategoryPlaintext] != 1 {
		t.Errorf("Plaintext count = %d, want 1", counts[entry.CategoryPlaintext])
	}
}

func TestLatestContent(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	content, err := LatestContent(ctx, database)
	if err != nil {
		t.Fatalf("LatestContent on empty store failed: %v", err)
	}
	if content != "" {
		t.Errorf("LatestContent = %q, want empty", content)
	}

	seedEntries(t, database,
		makeEntry("older", entry.CategoryMiscellaneous, base),
		makeEntry("newest", entry.CategoryMiscellaneous, base.Add(time.Second)),
	)

	content, err = LatestContent(ctx, database)
	if err != nil {
		t.Fatalf("LatestContent failed: %v", err)
	}
	if content != "newest" {
		t.Errorf("LatestContent = %q, want %q", content, "newest")
	}
}

// One writer appending while N readers list concurrently: readers must never
// observe a partial entry and no write may be lost.
func TestConcurrentReadersSingleWriter(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	const total = 1000
	const readers = 4

	done := make(chan struct{})
	readErr := make(chan error, readers)

	for range readers {
		go func() {
			for {
				select {
				case <-done:
					readErr <- nil
					return
				default:
				}
				entries, err := List(ctx, database, 0)
				if err != nil {
					readErr <- err
					return
				}
				for _, e := range entries {
					if e.Content == "" || e.ID == "" {
						readErr <- fmt.Errorf("partial entry observed: %+v", e)
						return
					}
				}
			}
		}()
	}

	at := base
	for i := range total {
		at = at.Add(time.Millisecond)
		e := makeEntry(fmt.Sprintf("entry-%04d", i), entry.CategoryMiscellaneous, at)
		if err := Insert(ctx, database, e); err != nil {
			t.Fatalf("Insert %d failed: %v", i, err)
		}
	}
	close(done)

	for range readers {
		if err := <-readErr; err != nil {
			t.Fatalf("reader failed: %v", err)
		}
	}

	n, err := Count(ctx, database)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != total {
		t.Errorf("Count = %d, want %d (lost writes)", n, total)
	}
}
