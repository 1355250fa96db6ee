package notion

import (
	"strings"
	"time"
)

// BlockType is the closed set of block kinds the pipeline understands. Values
// match the Notion API's type tags. Anything else still round-trips through
// Block.Type and renders via the fallback path.
type BlockType string

const (
	TypeParagraph        BlockType = "paragraph"
	TypeHeading1         BlockType = "heading_1"
	TypeHeading2         BlockType = "heading_2"
	TypeHeading3         BlockType = "heading_3"
	TypeBulletedListItem BlockType = "bulleted_list_item"
	TypeNumberedListItem BlockType = "numbered_list_item"
	TypeQuote            BlockType = "quote"
	TypeCode             BlockType = "code"
	TypeImage            BlockType = "image"
	TypeToDo             BlockType = "to_do"
	TypeToggle           BlockType = "toggle"
	TypeCallout          BlockType = "callout"
	TypeTable            BlockType = "table"
	TypeTableRow         BlockType = "table_row"
	TypeDivider          BlockType = "divider"
	TypeBookmark         BlockType = "bookmark"
	TypeEquation         BlockType = "equation"
	TypeFile             BlockType = "file"
	TypeColumnList       BlockType = "column_list"
	TypeColumn           BlockType = "column"
	TypeSyncedBlock      BlockType = "synced_block"
	TypeTableOfContents  BlockType = "table_of_contents"
	TypeEmbed            BlockType = "embed"
	TypeLinkPreview      BlockType = "link_preview"
	TypeLinkToPage       BlockType = "link_to_page"
	TypeChildPage        BlockType = "child_page"
	TypeChildDatabase    BlockType = "child_database"
)

// RichText is a single rich-text run. Only the plain-text projection matters
// to this pipeline; annotations are dropped on decode.
type RichText struct {
	PlainText string
}

// PlainText joins the plain-text segments of a rich-text run sequence with
// single spaces.
func PlainText(runs []RichText) string {
	if len(runs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(runs))
	for _, r := range runs {
		parts = append(parts, r.PlainText)
	}
	return strings.Join(parts, " ")
}

// Block is one node in the content tree. The payload fields are populated
// per type on decode; fields that do not apply to a block's type stay zero.
// Children is filled in by the Fetcher; Database and Pages are only set on
// child_database blocks after expansion.
type Block struct {
	ID          string
	Type        BlockType
	HasChildren bool

	Text            []RichText // paragraph, headings, list items, quote, code, to_do, toggle, callout
	Caption         []RichText // image, file, bookmark
	Language        string     // code
	Checked         bool       // to_do
	Emoji           string     // callout icon
	URL             string     // image, file, bookmark, embed, link_preview
	Expression      string     // equation
	Cells           [][]RichText // table_row
	HasColumnHeader bool         // table
	SyncedFrom      string       // synced_block: referenced original, empty for originals
	LinkedPageID    string       // link_to_page
	LinkedDBID      string       // link_to_page (database variant)
	Title           string       // child_page, child_database

	Children []*Block

	// child_database expansion, attached by the Fetcher.
	Database *Database
	Pages    []*Page
}

// PropertyValue is one typed page property value.
type PropertyValue struct {
	Type        string
	Title       []RichText
	RichText    []RichText
	Number      *float64
	Select      string
	MultiSelect []string
	DateStart   string
	Checkbox    *bool
	URL         string
	Email       string
	PhoneNumber string
}

// Scalar projects the value to its natural scalar form for document metadata.
// The second return is false for empty values and for types that have no
// scalar projection (title, relations, rollups and so on).
func (v PropertyValue) Scalar() (any, bool) {
	switch v.Type {
	case "rich_text":
		if s := PlainText(v.RichText); s != "" {
			return s, true
		}
	case "number":
		if v.Number != nil {
			return *v.Number, true
		}
	case "select":
		if v.Select != "" {
			return v.Select, true
		}
	case "multi_select":
		if len(v.MultiSelect) > 0 {
			return v.MultiSelect, true
		}
	case "date":
		if v.DateStart != "" {
			return v.DateStart, true
		}
	case "checkbox":
		if v.Checkbox != nil {
			return *v.Checkbox, true
		}
	case "url":
		if v.URL != "" {
			return v.URL, true
		}
	case "email":
		if v.Email != "" {
			return v.Email, true
		}
	case "phone_number":
		if v.PhoneNumber != "" {
			return v.PhoneNumber, true
		}
	}
	return nil, false
}

// Page is a root-level content container. Content stays empty until the
// Fetcher is run against the page's ID.
type Page struct {
	ID             string
	URL            string
	CreatedTime    time.Time
	LastEditedTime time.Time
	Properties     map[string]PropertyValue
	Content        []*Block
}

// Title returns the plain text of whichever property has type "title".
func (p *Page) Title() string {
	for _, prop := range p.Properties {
		if prop.Type == "title" {
			return PlainText(prop.Title)
		}
	}
	return ""
}

// Database is a database's descriptive metadata: its title and property
// schema (property name to property type).
type Database struct {
	ID         string
	Title      string
	Properties map[string]string
}
