package parser

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/dgallion1/qaseg/internal/document"
)

// CSVParser handles CSV files. Each row becomes one line of text with its
// cells separated by spaces, so a sheet with a "Q1." column segments like a
// text dump.
type CSVParser struct{}

func (p *CSVParser) Extract(ctx context.Context, r io.Reader, filename string) (*document.RawDocument, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var text strings.Builder
	for {
		if err := ctx.Err(); err != nil {
			return nil, extractionError("csv", err)
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, extractionError("csv", err)
		}
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			if c := strings.TrimSpace(cell); c != "" {
				cells = append(cells, c)
			}
		}
		if len(cells) == 0 {
			continue
		}
		text.WriteString(strings.Join(cells, " "))
		text.WriteString("\n")
	}

	return &document.RawDocument{
		Title: titleFrom(filename),
		Text:  text.String(),
	}, nil
}
