package extractor

import (
	"regexp"
	"strings"
)

var (
	// Pattern: /* ... */ including multi-line bodies
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)

	// Pattern: // to end of line (the newline itself is untouched)
	lineCommentPattern = regexp.MustCompile(`//[^\n]*`)

	// Pattern: sized/based numeric literals: 4'b0101, 8'hFF, 12'o77, 'd42
	numericLiteralPattern = regexp.MustCompile(`[0-9]*'[bBoOdDhH][0-9a-fA-FxXzZ_]+`)
)

// Normalize prepares raw Verilog source for lexical scanning. Comments are
// removed and based numeric literals are blanked so that digit/letter runs
// like 8'hFF can never be mistaken for identifiers. Every newline of the
// input survives, so line numbers computed on the normalized text match
// the original source.
func Normalize(text string) string {
	text = blockCommentPattern.ReplaceAllStringFunc(text, func(m string) string {
		return strings.Repeat("\n", strings.Count(m, "\n"))
	})
	text = lineCommentPattern.ReplaceAllString(text, "")
	return numericLiteralPattern.ReplaceAllStringFunc(text, func(m string) string {
		return strings.Repeat(" ", len(m))
	})
}
