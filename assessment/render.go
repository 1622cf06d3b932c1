package assessment

import (
	"bytes"

	"github.com/giygas/medreview-api/logging"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown renders report text the way the result page shows it when the
// structured tables are empty. Raw HTML in the report is not passed through.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough),
)

// RenderHTML converts report markdown to an HTML fragment
func RenderHTML(report string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(report), &buf); err != nil {
		logging.Warn("Failed to render report markdown", "error", err)
		return ""
	}
	return buf.String()
}
