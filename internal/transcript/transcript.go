// Package transcript renders a coaching thread as Markdown or a standalone
// HTML page.
package transcript

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/ziadkadry99/scenecoach/internal/thread"
)

// md leaves raw HTML escaped: message bodies are untrusted.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

var page = template.Must(template.New("page").Parse(pageTemplate))

// RenderMarkdown writes the thread as Markdown, oldest message first.
func RenderMarkdown(title string, msgs []thread.Message) string {
	if strings.TrimSpace(title) == "" {
		title = "Untitled"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Coaching notes: %s\n\n", title)
	if len(msgs) == 0 {
		b.WriteString("_No messages yet._\n")
		return b.String()
	}

	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		fmt.Fprintf(&b, "### %s · %s\n\n", speaker(m.Role), m.CreatedAt.UTC().Format("2006-01-02 15:04"))
		if m.Role == thread.RoleUser {
			for _, line := range strings.Split(strings.TrimSpace(m.Content), "\n") {
				b.WriteString("> " + line + "\n")
			}
			continue
		}
		b.WriteString(strings.TrimSpace(m.Content) + "\n")
	}
	return b.String()
}

// RenderHTML converts the Markdown transcript into a standalone page.
func RenderHTML(title string, msgs []thread.Message) (string, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(RenderMarkdown(title, msgs)), &body); err != nil {
		return "", fmt.Errorf("converting transcript markdown: %w", err)
	}

	if strings.TrimSpace(title) == "" {
		title = "Untitled"
	}
	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body.String())})
	if err != nil {
		return "", fmt.Errorf("rendering transcript page: %w", err)
	}
	return out.String(), nil
}

func speaker(r thread.Role) string {
	if r == thread.RoleUser {
		return "Writer"
	}
	return "Coach"
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} · coaching notes</title>
<style>
body { font-family: Georgia, serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.55; color: #222; }
h3 { font-family: "Courier Prime", Courier, monospace; font-size: 0.95rem; color: #555; }
blockquote { border-left: 3px solid #c9c2b6; margin: 0; padding-left: 1rem; color: #444; }
hr { border: none; border-top: 1px solid #e4e0d8; margin: 1.5rem 0; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`
