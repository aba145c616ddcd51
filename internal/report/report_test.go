package report

import (
	"strings"
	"testing"
	"time"

	"github.com/spigell/interview-coach/internal/session"
)

var generatedAt = time.Date(2026, time.March, 4, 10, 30, 0, 0, time.UTC)

func TestDuration(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	at := func(d time.Duration) session.QARecord { return session.QARecord{Timestamp: start.Add(d)} }

	tests := []struct {
		name    string
		records []session.QARecord
		expect  int
	}{
		{name: "empty", records: nil, expect: 0},
		{name: "single record", records: []session.QARecord{at(0)}, expect: 0},
		{name: "rounds down", records: []session.QARecord{at(0), at(2*time.Minute + 29*time.Second)}, expect: 2},
		{name: "rounds up", records: []session.QARecord{at(0), at(time.Minute), at(2*time.Minute + 30*time.Second)}, expect: 3},
		{name: "uses first and last only", records: []session.QARecord{at(0), at(time.Hour), at(5 * time.Minute)}, expect: 5},
		{name: "out of order clamps", records: []session.QARecord{at(10 * time.Minute), at(0)}, expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Duration(tt.records); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestRenderEmptySession(t *testing.T) {
	doc, err := Render("s-empty", nil, generatedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := string(doc)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Interview Report - s-empty</title>",
		"<td>s-empty</td>",
		"<td>0 minutes</td>",
		"<td>Total Questions</td>\n<td>0</td>",
		"No answers were recorded",
		"</html>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected report to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Question 1") {
		t.Fatalf("did not expect question blocks")
	}
}

func TestRenderKeepsRecordOrder(t *testing.T) {
	start := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	records := []session.QARecord{
		{Question: "Tell me about yourself", Answer: "I am an engineer...", Timestamp: start},
		{Question: "Why this role?", Answer: "Growth.", Timestamp: start.Add(4 * time.Minute)},
	}

	doc, err := Render("s1", records, generatedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(doc)

	first := strings.Index(out, "Tell me about yourself")
	second := strings.Index(out, "Why this role?")
	if first == -1 || second == -1 || first > second {
		t.Fatalf("records must appear in order:\n%s", out)
	}
	if !strings.Contains(out, "<td>4 minutes</td>") {
		t.Fatalf("expected duration of 4 minutes:\n%s", out)
	}
	if !strings.Contains(out, "Answered at 2026-03-04 10:04:00 UTC") {
		t.Fatalf("expected per-record timestamp:\n%s", out)
	}
	if !strings.Contains(out, "Generated on 2026-03-04 10:30:00 UTC") {
		t.Fatalf("expected footer timestamp:\n%s", out)
	}
}

func TestRenderEscapesCandidateMarkup(t *testing.T) {
	records := []session.QARecord{{
		Question:  "Favourite tag?",
		Answer:    "<script>alert(1)</script>\nsecond line",
		Timestamp: generatedAt,
	}}

	doc, err := Render("s<1>", records, generatedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(doc)

	if strings.Contains(out, "<script>") {
		t.Fatalf("candidate markup must not be rendered:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;alert(1)&lt;/script&gt; second line") {
		t.Fatalf("expected escaped answer on one line:\n%s", out)
	}
	if !strings.Contains(out, "<title>Interview Report - s&lt;1&gt;</title>") {
		t.Fatalf("expected escaped title:\n%s", out)
	}
}

func TestMarkdownHeader(t *testing.T) {
	md := Markdown("s|1", nil, generatedAt)

	if !strings.Contains(md, `| Session ID | s\|1 |`) {
		t.Fatalf("pipes in the session id must be escaped:\n%s", md)
	}
	if !strings.Contains(md, "| Date | March 4, 2026 |") {
		t.Fatalf("unexpected date line:\n%s", md)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("abc"); got != "interview-report-abc.html" {
		t.Fatalf("unexpected filename: %q", got)
	}
}

func TestRenderKeepsMarkdownPunctuationLiteral(t *testing.T) {
	records := []session.QARecord{{
		Question:  "Complexity of _merge_ # step?",
		Answer:    "It is n*m*k overall, see `cache` and \\*literal\\* [link](http://x)",
		Timestamp: generatedAt,
	}}

	doc, err := Render("s1", records, generatedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(doc)

	for _, want := range []string{
		"It is n*m*k overall, see `cache` and \\*literal\\* [link](http://x)",
		"Complexity of _merge_ # step?",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q to survive rendering:\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"n<em>m", "<em>merge</em>", "<code>", "<a href", "<h1>step"} {
		if strings.Contains(out, unwanted) {
			t.Fatalf("candidate text must not be interpreted as markdown (%s):\n%s", unwanted, out)
		}
	}
}
