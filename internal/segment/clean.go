package segment

import (
	"regexp"
	"strings"
)

// pageLineRe matches a line holding only a page number, including the line
// breaks and blank lines on either side of it.
var pageLineRe = regexp.MustCompile(`\n(\s*)\d+(\s*)\n`)

// Clean strips standalone page-number lines from a span of extracted text and
// trims the result. A page number flush against text on both sides collapses
// to a single line break; one surrounded by blank lines leaves one blank line
// behind so the paragraph break survives.
func Clean(span string) string {
	for {
		next := pageLineRe.ReplaceAllStringFunc(span, replacePageLine)
		if next == span {
			break
		}
		span = next
	}
	return strings.TrimSpace(span)
}

func replacePageLine(m string) string {
	sub := pageLineRe.FindStringSubmatch(m)
	if strings.Contains(sub[1], "\n") || strings.Contains(sub[2], "\n") {
		return "\n\n"
	}
	return "\n"
}
