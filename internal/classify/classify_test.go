package classify

import (
	"testing"

	"github.com/hpark/clipvault/internal/entry"
)

func TestCategorize(t *testing.T) {
	c := New()

	tests := []struct {
		name    string
		content string
		want    entry.Category
	}{
		{"empty", "", entry.CategoryMiscellaneous},
		{"whitespace only", "   \n\t ", entry.CategoryMiscellaneous},

		{"http url", "check http://example.com for details", entry.CategoryURL},
		{"https url", "https://go.dev/doc/", entry.CategoryURL},
		{"www url", "www.example.com", entry.CategoryURL},
		{"www mid-text", "see www.example.com today", entry.CategoryURL},

		{"latex frac", `\frac{a}{b}`, entry.CategoryLaTeX},
		{"latex begin", `\begin{align} x &= 1 \end{align}`, entry.CategoryLaTeX},
		{"latex integral", `\int_0^1 x^2 dx`, entry.CategoryLaTeX},
		{"latex beats code", `\frac{a}{b} def foo()`, entry.CategoryLaTeX},

		{"python def", "def handler(req):", entry.CategoryCode},
		{"c include", `#include <stdio.h>`, entry.CategoryCode},
		{"braces", "if (ok) { return nil }", entry.CategoryCode},
		{"go assign", "count := len(items)", entry.CategoryCode},
		{"operator expr", "x = y + 1", entry.CategoryCode},
		{"import stmt", "import os", entry.CategoryCode},

		{"double quote", `"To be or not to be"`, entry.CategoryQuote},
		{"single quote", "'hello there'", entry.CategoryQuote},

		{"sentence", "The quick brown fox jumps over the lazy dog.", entry.CategoryPlaintext},
		{"question", "Is this working?", entry.CategoryPlaintext},
		{"many tokens no punctuation", "one two three four five", entry.CategoryPlaintext},
		// A sentence containing '=' still reads as prose because it ends
		// with terminal punctuation.
		{"sentence with equals", "The result was x = 4 after all.", entry.CategoryPlaintext},

		{"short fragment", "hello there", entry.CategoryMiscellaneous},
		{"single word", "clipboard", entry.CategoryMiscellaneous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Categorize(tt.content); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestCategorize_Deterministic(t *testing.T) {
	c := New()
	content := "func main() { fmt.Println() }"
	first := c.Categorize(content)
	for range 10 {
		if got := c.Categorize(content); got != first {
			t.Fatalf("Categorize not deterministic: %q then %q", first, got)
		}
	}
}
