package reportparser

import (
	"regexp"
	"strings"
)

var (
	// "3. text", "**3.** text", "12. text"; a digit right after the period
	// ("2.5 mg") is a decimal, not a list item.
	numberedLinePattern = regexp.MustCompile(`^[ \t]*(?:\*\*|__)?(\d{1,3})[ \t]*\.(?:\*\*|__)?[ \t]*(\D.*)$`)

	delimiterPattern = regexp.MustCompile(`\s*[|;:]\s*`)

	actionMarkerPattern = regexp.MustCompile(`\b(?:STOP|START|CONSIDER|OVERWEEG|AANPASSEN|SWITCH)\b`)
)

// splitCells splits a pipe-delimited row into trimmed cells. Only the empty
// cells produced by a leading or trailing pipe are dropped; empty interior
// cells are kept so that column positions stay aligned.
func splitCells(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), "|")

	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells
}

// isSeparatorRow reports whether line is a table header separator such as
// "|---|:--:|" or "--- | ---".
func isSeparatorRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.Contains(trimmed, "|") || !strings.Contains(trimmed, "-") {
		return false
	}
	for _, r := range trimmed {
		switch r {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}

func isPipeRow(line string) bool {
	return strings.Contains(line, "|") && !isSeparatorRow(line)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// numberedLine returns the ordinal and remaining text of a "<n>. <text>" line.
func numberedLine(line string) (ordinal, text string, ok bool) {
	m := numberedLinePattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	text = strings.TrimSpace(m[2])
	if text == "" {
		return "", "", false
	}
	return m[1], text, true
}

func hasDelimiter(text string) bool {
	return strings.ContainsAny(text, "|;:")
}

// splitDelimited splits text on "|", ";" and ":" into at most n fields. The
// last field keeps the unsplit remainder.
func splitDelimited(text string, n int) []string {
	parts := delimiterPattern.Split(strings.TrimSpace(text), n)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// splitAtAction splits prose at the first action marker. The prefix is the
// description and the marker onwards is the action. When the marker opens the
// text, both halves carry the whole text.
func splitAtAction(text string) (description, action string, ok bool) {
	loc := actionMarkerPattern.FindStringIndex(text)
	if loc == nil {
		return text, "", false
	}
	action = strings.TrimSpace(text[loc[0]:])
	description = strings.TrimRight(strings.TrimSpace(text[:loc[0]]), " -–—,;:|")
	if description == "" {
		description = text
	}
	return description, action, true
}

func allEmpty(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
