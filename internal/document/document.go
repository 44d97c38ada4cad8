package document

// RawDocument is the decoded text of a source document.
type RawDocument struct {
	Title     string // Document title (from metadata or filename)
	Text      string // Full extracted text, pages joined by line breaks
	PageCount int    // Number of source pages (0 if N/A)
}

// Len returns the length of the extracted text in bytes.
func (d *RawDocument) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Text)
}
