package segment

import "iter"

// Record is one question with its answer.
type Record struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// openRecord is the question whose answer is still being collected.
type openRecord struct {
	ordinal int
	label   string
	offset  int
	open    bool
}

func (o *openRecord) capture(b Boundary) {
	o.ordinal = b.Ordinal
	o.label = b.Label
	o.offset = b.End
	o.open = true
}

func (o *openRecord) close(answer string) Record {
	return Record{ID: o.ordinal, Question: o.label, Answer: answer}
}

// Assemble pairs every boundary with the text running up to the next boundary
// (or the end of text for the last one) and returns one record per boundary,
// in scan order. clean is applied to each answer span; nil keeps spans as is.
func Assemble(text string, boundaries iter.Seq[Boundary], clean func(string) string) []Record {
	if clean == nil {
		clean = func(s string) string { return s }
	}

	records := []Record{}
	var cur openRecord
	for b := range boundaries {
		if cur.open {
			records = append(records, cur.close(clean(text[cur.offset:b.Start])))
		}
		cur.capture(b)
	}
	if cur.open {
		records = append(records, cur.close(clean(text[cur.offset:])))
	}
	return records
}
