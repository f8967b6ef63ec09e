package doc

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Renderer formats a Document for an output stream.
type Renderer interface {
	Render(document *Document, w io.Writer) error
}

// MarkdownRenderer renders a Document as Markdown.
type MarkdownRenderer struct{}

// Render renders a document as Markdown.
func (r *MarkdownRenderer) Render(document *Document, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", document.Title)
	_, _ = fmt.Fprintf(w, "**Generated:** %s\n", document.GeneratedAt.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "**Source:** %s\n\n", document.Source)

	_, _ = fmt.Fprintf(w, "## Summary\n\n")
	_, _ = fmt.Fprintf(w, "- Total Reminders: %d\n\n", document.Metadata.TotalReminders)

	_, _ = fmt.Fprintf(w, "## Reminders\n\n")
	_, _ = fmt.Fprintf(w, "| Name | Schedule | Description |\n")
	_, _ = fmt.Fprintf(w, "|------|----------|-------------|\n")
	for _, rd := range document.Reminders {
		_, _ = fmt.Fprintf(w, "| %s | `%s` | %s |\n", rd.Name, rd.Expression, rd.Description)
	}
	_, _ = fmt.Fprintf(w, "\n")

	for _, rd := range document.Reminders {
		_, _ = fmt.Fprintf(w, "### %s\n\n", rd.Name)
		_, _ = fmt.Fprintf(w, "**Expression:** `%s`\n\n", rd.Expression)
		_, _ = fmt.Fprintf(w, "**Description:** %s\n\n", rd.Description)
		if rd.Icon != "" {
			_, _ = fmt.Fprintf(w, "**Icon:** `%s`\n\n", rd.Icon)
		}

		if len(rd.NextRuns) > 0 {
			_, _ = fmt.Fprintf(w, "**Next Runs:**\n\n")
			for i, t := range rd.NextRuns {
				if i >= 10 {
					break
				}
				_, _ = fmt.Fprintf(w, "- %s\n", t.Format(time.RFC3339))
			}
			_, _ = fmt.Fprintf(w, "\n")
		}

		if rd.Stats != nil {
			_, _ = fmt.Fprintf(w, "**Statistics:**\n\n")
			_, _ = fmt.Fprintf(w, "- Runs per day: %d\n", rd.Stats.RunsPerDay)
			_, _ = fmt.Fprintf(w, "- Runs per hour: %d\n\n", rd.Stats.RunsPerHour)
		}
	}

	return nil
}

// HTMLRenderer renders a Document as a standalone HTML page.
type HTMLRenderer struct{}

// Render renders a document as HTML.
func (r *HTMLRenderer) Render(document *Document, w io.Writer) error {
	_, _ = fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 40px; }
        h1 { color: #333; }
        h2 { color: #666; margin-top: 30px; }
        table { border-collapse: collapse; width: 100%%; margin: 20px 0; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
        code { background-color: #f4f4f4; padding: 2px 4px; border-radius: 3px; }
    </style>
</head>
<body>
`, document.Title)

	_, _ = fmt.Fprintf(w, "<h1>%s</h1>\n", document.Title)
	_, _ = fmt.Fprintf(w, "<p><strong>Generated:</strong> %s</p>\n", document.GeneratedAt.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "<p><strong>Source:</strong> %s</p>\n", document.Source)

	_, _ = fmt.Fprintf(w, "<h2>Summary</h2>\n<ul>\n")
	_, _ = fmt.Fprintf(w, "<li>Total Reminders: %d</li>\n</ul>\n", document.Metadata.TotalReminders)

	_, _ = fmt.Fprintf(w, "<h2>Reminders</h2>\n<table>\n<thead>\n<tr><th>Name</th><th>Schedule</th><th>Description</th></tr>\n</thead>\n<tbody>\n")
	for _, rd := range document.Reminders {
		_, _ = fmt.Fprintf(w, "<tr><td>%s</td><td><code>%s</code></td><td>%s</td></tr>\n", rd.Name, rd.Expression, rd.Description)
	}
	_, _ = fmt.Fprintf(w, "</tbody>\n</table>\n")

	for _, rd := range document.Reminders {
		_, _ = fmt.Fprintf(w, "<h3>%s</h3>\n", rd.Name)
		_, _ = fmt.Fprintf(w, "<p><strong>Expression:</strong> <code>%s</code></p>\n", rd.Expression)
		_, _ = fmt.Fprintf(w, "<p><strong>Description:</strong> %s</p>\n", rd.Description)

		if len(rd.NextRuns) > 0 {
			_, _ = fmt.Fprintf(w, "<p><strong>Next Runs:</strong></p><ul>\n")
			for i, t := range rd.NextRuns {
				if i >= 10 {
					break
				}
				_, _ = fmt.Fprintf(w, "<li>%s</li>\n", t.Format(time.RFC3339))
			}
			_, _ = fmt.Fprintf(w, "</ul>\n")
		}

		if rd.Stats != nil {
			_, _ = fmt.Fprintf(w, "<p><strong>Statistics:</strong></p><ul>\n")
			_, _ = fmt.Fprintf(w, "<li>Runs per day: %d</li>\n", rd.Stats.RunsPerDay)
			_, _ = fmt.Fprintf(w, "<li>Runs per hour: %d</li>\n</ul>\n", rd.Stats.RunsPerHour)
		}
	}

	_, _ = fmt.Fprintf(w, "</body>\n</html>\n")
	return nil
}

// JSONRenderer renders a Document as JSON.
type JSONRenderer struct{}

// Render renders a document as JSON.
func (r *JSONRenderer) Render(document *Document, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(document)
}

// NewRenderer creates a renderer based on format name.
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "markdown", "md", "":
		return &MarkdownRenderer{}, nil
	case "html":
		return &HTMLRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: markdown, html, json)", format)
	}
}
