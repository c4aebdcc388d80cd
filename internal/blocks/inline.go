package blocks

import (
	"html"
	"strings"
)

const lineBreak = "<br>\n"

// FormatRuns converts runs into an inline markup string. Every run is
// transformed in place and concatenated; an empty sequence yields "".
func FormatRuns(runs []TextRun) string {
	if len(runs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, run := range runs {
		b.WriteString(formatRun(run))
	}
	return b.String()
}

// formatRun wraps, innermost first: code, bold, italic, strikethrough,
// underline, then the link.
func formatRun(run TextRun) string {
	text := html.EscapeString(run.PlainText)
	text = strings.ReplaceAll(text, "\n", lineBreak)

	ann := run.Annotations
	if ann.Code {
		text = wrapTag("code", text)
	}
	if ann.Bold {
		text = wrapTag("strong", text)
	}
	if ann.Italic {
		text = wrapTag("em", text)
	}
	if ann.Strikethrough {
		text = wrapTag("s", text)
	}
	if ann.Underline {
		text = wrapTag("u", text)
	}
	if run.Href != "" {
		text = `<a href="` + html.EscapeString(run.Href) + `">` + text + "</a>"
	}
	return text
}

func wrapTag(tag, text string) string {
	return "<" + tag + ">" + text + "</" + tag + ">"
}

// PlainText joins the unformatted text of runs.
func PlainText(runs []TextRun) string {
	if len(runs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, run := range runs {
		b.WriteString(run.PlainText)
	}
	return b.String()
}
