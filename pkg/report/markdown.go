package report

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldhtml "github.com/yuin/goldmark/renderer/html"
)

// Markdown renders d as GitHub-flavored Markdown.
func Markdown(d Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Title())
	if !d.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "_Generated %s_\n\n", d.GeneratedAt.Format("2006-01-02 15:04"))
	}
	for _, s := range d.sections() {
		fmt.Fprintf(&b, "## %s\n\n", s.Title)
		for _, line := range s.Lines {
			b.WriteString(escapeCell(line))
			b.WriteString("\n\n")
		}
		if len(s.Header) > 0 {
			writeTable(&b, s.Header, s.Rows)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = escapeCell(c)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(goldhtml.WithXHTML()),
)

// HTML renders d as a standalone HTML page.
func HTML(d Document) ([]byte, error) {
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(Markdown(d)), &body); err != nil {
		return nil, fmt.Errorf("rendering report html: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&out, "<title>%s</title>\n", html.EscapeString(d.Title()))
	out.WriteString(pageStyle)
	out.WriteString("</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

const pageStyle = `<style>
body { font-family: sans-serif; max-width: 960px; margin: 2em auto; color: #222; }
table { border-collapse: collapse; margin-bottom: 1em; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
th { background: #eee; }
</style>
`
