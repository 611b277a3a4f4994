package ops

import (
	"context"
	"strings"
	"testing"

	"github.com/hpark/clipvault/internal/errors"
)

func TestSearch_CaseInsensitiveContainment(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	appendContent(t, database, "Meeting notes for Monday", "meeting agenda", "shopping list")

	out, err := Search(ctx, database, SearchInput{Term: "MEETING"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if out.Count != 2 {
		t.Fatalf("Count = %d, want 2", out.Count)
	}
	// Most-recent-first
	if out.Items[0].Content != "meeting agenda" {
		t.Errorf("items[0].Content = %q", out.Items[0].Content)
	}
	for _, item := range out.Items {
		if !strings.Contains(strings.ToLower(item.Content), "meeting") {
			t.Errorf("item %q does not contain term", item.Content)
		}
	}
}

func TestSearch_NoMatches(t *testing.T) {
	database := testDB(t)
	appendContent(t, database, "alpha", "beta")

	out, err := Search(context.Background(), database, SearchInput{Term: "gamma"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if out.Count != 0 {
		t.Errorf("Count = %d, want 0", out.Count)
	}
}

func TestSearch_EmptyTerm(t *testing.T) {
	database := testDB(t)

	_, err := Search(context.Background(), database, SearchInput{Term: "   "})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestSearch_TermTooLong(t *testing.T) {
	database := testDB(t)

	_, err := Search(context.Background(), database, SearchInput{Term: strings.Repeat("x", MaxSearchChars+1)})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}
