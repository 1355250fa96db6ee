package notion

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// BlockPage is one page of a paginated block-children listing.
type BlockPage struct {
	Results    []*Block
	HasMore    bool
	NextCursor string
}

// PageList is one page of a paginated database query.
type PageList struct {
	Results    []*Page
	HasMore    bool
	NextCursor string
}

// Source is the remote API surface the Fetcher depends on. Implemented by
// api.Client; tests substitute fakes.
type Source interface {
	ListBlockChildren(ctx context.Context, blockID, cursor string) (*BlockPage, error)
	QueryDatabase(ctx context.Context, databaseID, cursor string) (*PageList, error)
	GetDatabase(ctx context.Context, databaseID string) (*Database, error)
	GetPage(ctx context.Context, pageID string) (*Page, error)
}

// Fetcher materializes a block tree from the paginated children API. It runs
// strictly sequentially; the Visited set threaded through every call bounds
// recursion through synced blocks and database back-references.
type Fetcher struct {
	src   Source
	pacer Pacer
	log   zerolog.Logger
}

func NewFetcher(src Source, pacer Pacer, log zerolog.Logger) *Fetcher {
	if pacer == nil {
		pacer = NopPacer{}
	}
	return &Fetcher{src: src, pacer: pacer, log: log}
}

// ResolvePage fetches a page's descriptive metadata. The returned page has
// empty Content; callers run FetchChildren with a fresh Visited to fill it.
// A NotFoundError from the source is passed through so callers can report
// invalid root identifiers distinctly.
func (f *Fetcher) ResolvePage(ctx context.Context, pageID string) (*Page, error) {
	page, err := f.src.GetPage(ctx, pageID)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve page %s: %w", pageID, err)
	}
	return page, nil
}

// FetchChildren returns the fully expanded ordered children of blockID.
// Failures below the root degrade to missing subtrees and are never
// propagated; whatever was accumulated before a failure is kept.
func (f *Fetcher) FetchChildren(ctx context.Context, blockID string, visited *Visited) []*Block {
	if visited.Seen(blockID) {
		f.log.Debug().Str("block_id", blockID).Msg("skipping already visited block")
		return nil
	}
	visited.Add(blockID)

	blocks := f.listChildren(ctx, blockID)

	for _, b := range blocks {
		if b.Type == TypeChildDatabase {
			f.expandDatabase(ctx, b, visited)
		}
	}

	for _, b := range blocks {
		if b.Type == TypeChildDatabase || !b.HasChildren {
			continue
		}
		switch b.Type {
		case TypeSyncedBlock:
			if b.SyncedFrom != "" {
				// Reference copy: substitute the original block's content.
				if !visited.Seen(b.SyncedFrom) {
					f.log.Debug().Str("block_id", b.ID).Str("synced_from", b.SyncedFrom).Msg("fetching synced block original")
					b.Children = append(b.Children, f.FetchChildren(ctx, b.SyncedFrom, visited)...)
				}
			} else {
				b.Children = append(b.Children, f.FetchChildren(ctx, b.ID, visited)...)
			}
		case TypeColumnList:
			b.Children = append(b.Children, f.FetchChildren(ctx, b.ID, visited)...)
			// The first pass only surfaces the columns themselves; each
			// column's content needs its own fetch.
			for _, col := range b.Children {
				if col.Type == TypeColumn && col.HasChildren {
					col.Children = append(col.Children, f.FetchChildren(ctx, col.ID, visited)...)
				}
			}
		default:
			b.Children = append(b.Children, f.FetchChildren(ctx, b.ID, visited)...)
		}
	}

	return blocks
}

// FetchDatabasePages lists every page of a database, following the cursor
// until the API reports no more. An error is returned only when nothing was
// accumulated; a mid-walk failure keeps the partial listing.
func (f *Fetcher) FetchDatabasePages(ctx context.Context, databaseID string) ([]*Page, error) {
	var pages []*Page
	cursor := ""
	for {
		if err := f.pacer.Wait(ctx); err != nil {
			return pages, nil
		}
		list, err := f.src.QueryDatabase(ctx, databaseID, cursor)
		if err != nil {
			if len(pages) == 0 {
				return nil, fmt.Errorf("query database %s: %w", databaseID, err)
			}
			f.log.Warn().Err(err).Str("database_id", databaseID).Int("pages", len(pages)).Msg("database query failed mid-walk, keeping partial listing")
			return pages, nil
		}
		pages = append(pages, list.Results...)
		if !list.HasMore {
			break
		}
		cursor = list.NextCursor
	}
	f.log.Debug().Str("database_id", databaseID).Int("pages", len(pages)).Msg("fetched database pages")
	return pages, nil
}

func (f *Fetcher) listChildren(ctx context.Context, blockID string) []*Block {
	var blocks []*Block
	cursor := ""
	for {
		if err := f.pacer.Wait(ctx); err != nil {
			return blocks
		}
		page, err := f.src.ListBlockChildren(ctx, blockID, cursor)
		if err != nil {
			f.log.Warn().Err(err).Str("block_id", blockID).Int("blocks", len(blocks)).Msg("listing children failed, keeping partial results")
			return blocks
		}
		blocks = append(blocks, page.Results...)
		if !page.HasMore {
			return blocks
		}
		cursor = page.NextCursor
	}
}

// expandDatabase attaches a child_database block's schema and its fully
// fetched page listing. Each listed page's content is fetched inline unless
// its id was already expanded in this walk.
func (f *Fetcher) expandDatabase(ctx context.Context, b *Block, visited *Visited) {
	db, err := f.src.GetDatabase(ctx, b.ID)
	if err != nil {
		f.log.Warn().Err(err).Str("database_id", b.ID).Msg("fetching database info failed")
	} else {
		b.Database = db
	}

	pages, err := f.FetchDatabasePages(ctx, b.ID)
	if err != nil {
		f.log.Warn().Err(err).Str("database_id", b.ID).Msg("fetching database pages failed")
		return
	}
	for _, page := range pages {
		b.Pages = append(b.Pages, page)
		if page.ID != "" && !visited.Seen(page.ID) {
			page.Content = f.FetchChildren(ctx, page.ID, visited)
		}
	}
}
