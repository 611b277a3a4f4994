package classify

import (
	"regexp"
	"strings"

	"github.com/hpark/clipvault/internal/entry"
)

// Classifier assigns a category to clipboard content using cheap indicator
// matching. It is stateless and safe for concurrent use; construct once and
// pass it to whoever needs it.
type Classifier struct{}

// New returns a Classifier.
func New() *Classifier {
	return &Classifier{}
}

// urlPattern matches http(s) URLs anywhere in the text, or a www.-prefixed
// token.
var urlPattern = regexp.MustCompile(`(?i)https?://|(^|\s)www\.\S`)

// latexIndicators are backslash commands that unambiguously mark LaTeX.
// Checked before code indicators: a fraction like \frac{a}{b} also contains
// braces, which would otherwise match as code.
var latexIndicators = []string{
	`\begin{`, `\end{`, `\frac`, `\sum`, `\int`,
	`\lim`, `\mathbb`, `\alpha`, `\cdot`, `\text{`,
}

// codeIndicators mark source code across common languages.
var codeIndicators = []string{
	"def ", "function", "class ", "{", "};", "import ",
	"from ", "public ", "private ", "#include", ":=", "=>", "();",
}

// operatorPattern matches word or digit tokens joined by arithmetic or
// assignment operators, e.g. "x = y + 1".
var operatorPattern = regexp.MustCompile(`[\w)\]]\s*[=+\-*/^]\s*[\w(\[]`)

// Categorize maps content to exactly one category. It never fails and is
// deterministic; precedence follows the order of the checks below, first
// match wins.
func (c *Classifier) Categorize(content string) entry.Category {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return entry.CategoryMiscellaneous
	}

	if urlPattern.MatchString(trimmed) {
		return entry.CategoryURL
	}

	for _, ind := range latexIndicators {
		if strings.Contains(trimmed, ind) {
			return entry.CategoryLaTeX
		}
	}

	for _, ind := range codeIndicators {
		if strings.Contains(trimmed, ind) {
			return entry.CategoryCode
		}
	}
	if operatorPattern.MatchString(trimmed) && !endsSentence(trimmed) {
		return entry.CategoryCode
	}

	if isQuoted(trimmed) {
		return entry.CategoryQuote
	}

	if endsSentence(trimmed) || len(strings.Fields(trimmed)) > 3 {
		return entry.CategoryPlaintext
	}

	return entry.CategoryMiscellaneous
}

// endsSentence reports whether s ends in sentence-terminal punctuation.
func endsSentence(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}

// isQuoted reports whether s is entirely wrapped in one matching pair of
// double or single quotation marks.
func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '"' && last == '"') || (first == '\'' && last == '\'')
}
