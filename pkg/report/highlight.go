package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/entrhq/pagekit/pkg/mockserver"
)

// RenderRequests renders recorded mock server requests. In styled mode JSON
// bodies are syntax highlighted; plain mode emits raw text for CI logs.
func RenderRequests(records []mockserver.RecordedRequest, format Format) string {
	var b strings.Builder

	if len(records) == 0 {
		return "No requests recorded.\n"
	}

	for i, rec := range records {
		header := fmt.Sprintf("%d. %s %s", i+1, rec.Method, rec.Path)
		if rec.Matched != "" {
			header += fmt.Sprintf("  (matched %s)", rec.Matched)
		} else {
			header += "  (unmatched)"
		}

		if format == FormatPlain {
			b.WriteString(header)
		} else if rec.Matched != "" {
			b.WriteString(passStyle.Render(header))
		} else {
			b.WriteString(failStyle.Render(header))
		}
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(fmt.Sprintf("   at %s", rec.ReceivedAt.Format(time.RFC3339))))
		b.WriteString("\n")

		if len(rec.Body) > 0 {
			b.WriteString(renderBody(rec.Body, format))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderBody pretty-prints and, in styled mode, highlights a request body.
func renderBody(body []byte, format Format) string {
	text := prettyJSON(body)

	if format == FormatPlain {
		return indent(text, "   ") + "\n"
	}

	var highlighted strings.Builder
	if err := quick.Highlight(&highlighted, text, "json", "terminal256", "monokai"); err != nil {
		// Non-JSON or highlighter failure: fall back to plain text
		return indent(text, "   ") + "\n"
	}
	return indent(highlighted.String(), "   ") + "\n"
}

// prettyJSON re-indents a JSON body, returning the original text when the
// body is not valid JSON.
func prettyJSON(body []byte) string {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return string(body)
	}

	pretty, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return string(body)
	}
	return string(pretty)
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func clip(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}

// timeUnit picks a sensible rounding unit for durations.
func timeUnit(d time.Duration) time.Duration {
	switch {
	case d >= time.Second:
		return 10 * time.Millisecond
	case d >= time.Millisecond:
		return time.Millisecond
	default:
		return time.Microsecond
	}
}
