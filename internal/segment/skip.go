package segment

import "strings"

// DefaultAnchor is the first chapter heading of the .NET interview compendium
// the tool was written for. Everything before it is the table of contents.
const DefaultAnchor = "Chapter 1 – OOPS/ C#"

// SkipFrontMatter returns text from the first occurrence of anchor onward,
// along with the number of bytes dropped. When anchor is empty or missing the
// full text comes back and found is false.
func SkipFrontMatter(text, anchor string) (content string, offset int, found bool) {
	if anchor == "" {
		return text, 0, false
	}
	i := strings.Index(text, anchor)
	if i < 0 {
		return text, 0, false
	}
	return text[i:], i, true
}
