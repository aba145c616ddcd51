// Package report renders a session's question/answer history as a
// downloadable HTML document.
package report

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/spigell/interview-coach/internal/session"
)

const (
	// ContentType is the media type of a rendered report.
	ContentType = "text/html; charset=utf-8"

	dateLayout = "January 2, 2006"
	timeLayout = "2006-01-02 15:04:05 MST"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// Filename is the suggested download name for a session report.
func Filename(sessionID string) string {
	return fmt.Sprintf("interview-report-%s.html", sessionID)
}

// Duration is the whole-minute span between the first and the last record.
// Fewer than two records, or out-of-order timestamps, give zero.
func Duration(records []session.QARecord) int {
	if len(records) < 2 {
		return 0
	}

	span := records[len(records)-1].Timestamp.Sub(records[0].Timestamp)
	if span <= 0 {
		return 0
	}
	return int(math.Round(span.Minutes()))
}

// Render builds the report. It does not touch the store; callers pass the
// records and the generation time.
func Render(sessionID string, records []session.QARecord, now time.Time) ([]byte, error) {
	source := Markdown(sessionID, records, now)

	var body bytes.Buffer
	if err := markdown.Convert([]byte(source), &body); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	var doc bytes.Buffer
	title := html.EscapeString(fmt.Sprintf("Interview Report - %s", sessionID))
	fmt.Fprintf(&doc, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>%s</style>\n</head>\n<body>\n", title, stylesheet)
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")

	return doc.Bytes(), nil
}

// Markdown returns the report source before HTML conversion.
func Markdown(sessionID string, records []session.QARecord, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Interview Report\n\n")
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Session ID | %s |\n", inline(sessionID))
	fmt.Fprintf(&b, "| Date | %s |\n", now.Format(dateLayout))
	fmt.Fprintf(&b, "| Duration | %d minutes |\n", Duration(records))
	fmt.Fprintf(&b, "| Total Questions | %d |\n\n", len(records))

	b.WriteString("## Questions and Answers\n\n")
	if len(records) == 0 {
		b.WriteString("_No answers were recorded for this session._\n\n")
	}
	for i, rec := range records {
		fmt.Fprintf(&b, "### Question %d\n\n", i+1)
		fmt.Fprintf(&b, "**Q:** %s\n\n", inline(rec.Question))
		fmt.Fprintf(&b, "**A:** %s\n\n", inline(rec.Answer))
		fmt.Fprintf(&b, "_Answered at %s_\n\n", rec.Timestamp.Format(timeLayout))
	}

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "Generated on %s\n", now.Format(timeLayout))

	return b.String()
}

// asciiPunctuation is every character CommonMark allows to be backslash-escaped.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// inline keeps multi-line answers inside their paragraph and escapes every
// punctuation character, so candidate text renders exactly as typed.
func inline(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(asciiPunctuation, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

const stylesheet = `body{font-family:-apple-system,Segoe UI,Roboto,sans-serif;max-width:800px;margin:2rem auto;line-height:1.5;color:#222}` +
	`table{border-collapse:collapse}td,th{padding:.25rem .75rem;border-bottom:1px solid #ddd;text-align:left}` +
	`h3{margin-top:2rem;color:#2563eb}hr{margin-top:2rem}`
