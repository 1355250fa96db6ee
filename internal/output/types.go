package output

import (
	"strings"
	"time"

	"github.com/lox/notion-ingest/internal/notion"
)

// Document is the terminal artifact for one page: its flattened text and a
// flat metadata map. Immutable once produced.
type Document struct {
	PageContent string         `json:"page_content"`
	Metadata    map[string]any `json:"metadata"`
}

// RenderPage flattens a fetched page into a Document. The text is the page
// title followed by every non-empty top-level block fragment in document
// order; the metadata is the page's identity fields plus each non-empty
// scalar-typed property.
func RenderPage(p *notion.Page) Document {
	title := p.Title()

	var fragments []string
	for _, b := range p.Content {
		if fragment := RenderBlock(b); fragment != "" {
			fragments = append(fragments, fragment)
		}
	}
	content := strings.Join(fragments, "\n")

	metadata := map[string]any{
		"page_id":          p.ID,
		"title":            title,
		"url":              p.URL,
		"created_time":     formatTime(p.CreatedTime),
		"last_edited_time": formatTime(p.LastEditedTime),
	}
	for name, prop := range p.Properties {
		if value, ok := prop.Scalar(); ok {
			metadata[name] = value
		}
	}

	return Document{
		PageContent: title + "\n\n" + content,
		Metadata:    metadata,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
