package reportparser

import "strings"

// SkipReason explains why a candidate row did not become a record.
type SkipReason string

const (
	SkipTooFewColumns SkipReason = "too_few_columns"
	SkipEmptyRow      SkipReason = "empty_row"
	SkipPanic         SkipReason = "extraction_panic"
)

// Skip records a row that was dropped without failing the parse.
type Skip struct {
	Line   int        `json:"line"`
	Text   string     `json:"text"`
	Reason SkipReason `json:"reason"`
}

// Extraction is the outcome of running one strategy over a section.
type Extraction[T any] struct {
	Records []T
	Skips   []Skip
}

func (e *Extraction[T]) skip(line int, text string, reason SkipReason) {
	e.Skips = append(e.Skips, Skip{Line: line, Text: strings.TrimSpace(text), Reason: reason})
}

// Strategy extracts records of type T from the text of a single section.
// Applies is a cheap probe telling whether the strategy recognises the
// layout of the section at all.
type Strategy[T any] interface {
	Name() string
	Applies(section string) bool
	Extract(section string) Extraction[T]
}

// schema describes how positional cells map onto a record type.
type schema[T any] struct {
	// minColumns is the smallest acceptable table row; the optional trailing
	// citation column is not counted.
	minColumns int
	// columns is the full positional width of the record.
	columns int
	// numbered records carry the list ordinal in their first column.
	numbered bool
	// splitAction splits prose at the first action marker unless delimiters
	// already reach the action column.
	splitAction bool
	build       func(cells []string) T
}

func (s schema[T]) record(cells []string) T {
	padded := make([]string, s.columns)
	copy(padded, cells)
	return s.build(padded)
}

// cellsFromText turns the text of a numbered line into positional cells.
func (s schema[T]) cellsFromText(ordinal, text string) []string {
	var cells []string
	if s.numbered {
		cells = append(cells, ordinal)
	}

	fields := s.columns
	if s.numbered {
		fields--
	}

	switch {
	case hasDelimiter(text) && !s.actionOutsideFields(text, fields):
		cells = append(cells, splitDelimited(text, fields)...)
	case s.splitAction:
		description, action, ok := splitAtAction(text)
		if !ok {
			cells = append(cells, description)
			break
		}
		// description, medication, data, action
		lead := []string{description}
		if description != text && hasDelimiter(description) {
			lead = splitDelimited(description, 3)
		}
		padded := make([]string, 3)
		copy(padded, lead)
		cells = append(cells, padded...)
		cells = append(cells, action)
	default:
		cells = append(cells, text)
	}
	return cells
}

// actionOutsideFields reports whether delimited text is too short to reach
// the action column while still naming an action.
func (s schema[T]) actionOutsideFields(text string, fields int) bool {
	if !s.splitAction {
		return false
	}
	if len(splitDelimited(text, fields)) >= s.minColumns-1 {
		return false
	}
	return actionMarkerPattern.MatchString(text)
}

// tableStrategy reads lightweight markdown tables: a header row, a separator
// row of dashes, then one record per pipe-delimited row.
type tableStrategy[T any] struct {
	schema schema[T]
}

func (t tableStrategy[T]) Name() string { return "table" }

func (t tableStrategy[T]) Applies(section string) bool {
	lines := strings.Split(section, "\n")
	for i := 0; i+1 < len(lines); i++ {
		if isPipeRow(lines[i]) && isSeparatorRow(lines[i+1]) {
			return true
		}
	}
	return false
}

func (t tableStrategy[T]) Extract(section string) Extraction[T] {
	var ext Extraction[T]
	lines := strings.Split(section, "\n")
	inTable := false

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		// A header and separator open a table, also directly after another one
		if isPipeRow(line) && i+1 < len(lines) && isSeparatorRow(lines[i+1]) {
			inTable = true
			i++
			continue
		}
		if !inTable {
			continue
		}

		switch {
		case isBlank(line), isSeparatorRow(line):
			continue
		case !isPipeRow(line):
			inTable = false
			continue
		}

		cells := splitCells(line)
		if len(cells) < t.schema.minColumns {
			ext.skip(i+1, line, SkipTooFewColumns)
			continue
		}
		if allEmpty(cells) {
			ext.skip(i+1, line, SkipEmptyRow)
			continue
		}
		ext.Records = append(ext.Records, t.schema.record(cells))
	}

	return ext
}

// lineStrategy reads "<n>. <text>" lines when the model did not produce a
// table. The first line of the section is its heading and is ignored.
type lineStrategy[T any] struct {
	schema schema[T]
}

func (l lineStrategy[T]) Name() string { return "numbered_lines" }

func (l lineStrategy[T]) Applies(string) bool { return true }

func (l lineStrategy[T]) Extract(section string) Extraction[T] {
	var ext Extraction[T]
	lines := strings.Split(section, "\n")

	for i := 1; i < len(lines); i++ {
		ordinal, text, ok := numberedLine(lines[i])
		if !ok {
			continue
		}
		ext.Records = append(ext.Records, l.schema.record(l.schema.cellsFromText(ordinal, text)))
	}

	return ext
}

// extractor runs the first strategy whose probe accepts the section.
type extractor[T any] struct {
	section    Section
	strategies []Strategy[T]
}

func newExtractor[T any](section Section, s schema[T]) extractor[T] {
	return extractor[T]{
		section:    section,
		strategies: []Strategy[T]{tableStrategy[T]{schema: s}, lineStrategy[T]{schema: s}},
	}
}

func (e extractor[T]) extract(text string) (Extraction[T], string) {
	for _, strategy := range e.strategies {
		if strategy.Applies(text) {
			return strategy.Extract(text), strategy.Name()
		}
	}
	return Extraction[T]{}, ""
}
