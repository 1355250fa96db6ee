package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lox/notion-ingest/internal/notion"
	"github.com/lox/notion-ingest/internal/output"
)

// NoContentText is returned as the combined text when no root produced a
// document.
const NoContentText = "No content found or processed."

// Ingestor turns a set of root identifiers (databases and pages) into
// rendered documents. Root failures are isolated: one bad id never stops the
// others.
type Ingestor struct {
	fetcher *notion.Fetcher
	log     zerolog.Logger
}

func New(fetcher *notion.Fetcher, log zerolog.Logger) *Ingestor {
	return &Ingestor{fetcher: fetcher, log: log}
}

// RootFailure records a requested root that could not be processed.
type RootFailure struct {
	Kind string // "database" or "page"
	ID   string
	Err  error
}

func (f RootFailure) String() string {
	return fmt.Sprintf("%s %s: %v", f.Kind, f.ID, f.Err)
}

// Result is the outcome of one ingest run.
type Result struct {
	Documents []output.Document
	Failures  []RootFailure
}

// CombinedText joins every document's text with blank lines, or the
// no-content placeholder when nothing was produced.
func (r *Result) CombinedText() string {
	if len(r.Documents) == 0 {
		return NoContentText
	}
	texts := make([]string, 0, len(r.Documents))
	for _, doc := range r.Documents {
		texts = append(texts, doc.PageContent)
	}
	return strings.Join(texts, "\n\n")
}

// Run processes every requested database and page. Each root gets its own
// fresh visited scope; failures are collected, not propagated.
func (ing *Ingestor) Run(ctx context.Context, databaseIDs, pageIDs []string) *Result {
	result := &Result{}

	for _, raw := range databaseIDs {
		id, err := notion.NormalizeID(raw)
		if err != nil {
			result.Failures = append(result.Failures, RootFailure{Kind: "database", ID: raw, Err: err})
			continue
		}
		docs, err := ing.ExportDatabase(ctx, id)
		if err != nil {
			ing.log.Warn().Err(err).Str("database_id", id).Msg("database export failed")
			result.Failures = append(result.Failures, RootFailure{Kind: "database", ID: id, Err: err})
			continue
		}
		result.Documents = append(result.Documents, docs...)
	}

	for _, raw := range pageIDs {
		id, err := notion.NormalizeID(raw)
		if err != nil {
			result.Failures = append(result.Failures, RootFailure{Kind: "page", ID: raw, Err: err})
			continue
		}
		doc, err := ing.ExportPage(ctx, id)
		if err != nil {
			ing.log.Warn().Err(err).Str("page_id", id).Msg("page export failed")
			result.Failures = append(result.Failures, RootFailure{Kind: "page", ID: id, Err: err})
			continue
		}
		result.Documents = append(result.Documents, doc)
	}

	return result
}

// ExportDatabase renders every page of a database into documents.
func (ing *Ingestor) ExportDatabase(ctx context.Context, databaseID string) ([]output.Document, error) {
	pages, err := ing.fetcher.FetchDatabasePages(ctx, databaseID)
	if err != nil {
		return nil, err
	}

	docs := make([]output.Document, 0, len(pages))
	for _, page := range pages {
		page.Content = ing.fetcher.FetchChildren(ctx, page.ID, notion.NewVisited())
		doc := output.RenderPage(page)
		docs = append(docs, doc)
		ing.log.Info().Str("page_id", page.ID).Str("title", page.Title()).Msg("processed page")
	}
	return docs, nil
}

// ExportPage resolves a page by id, fetches its content tree, and renders it.
func (ing *Ingestor) ExportPage(ctx context.Context, pageID string) (output.Document, error) {
	page, err := ing.fetcher.ResolvePage(ctx, pageID)
	if err != nil {
		return output.Document{}, err
	}

	page.Content = ing.fetcher.FetchChildren(ctx, page.ID, notion.NewVisited())
	doc := output.RenderPage(page)
	ing.log.Info().Str("page_id", page.ID).Str("title", page.Title()).Msg("processed page")
	return doc, nil
}
