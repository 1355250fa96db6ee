package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/notion-ingest/internal/notion"
)

func runs(texts ...string) []notion.RichText {
	out := make([]notion.RichText, 0, len(texts))
	for _, t := range texts {
		out = append(out, notion.RichText{PlainText: t})
	}
	return out
}

func TestRenderBlockFragments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block *notion.Block
		want  string
	}{
		{"paragraph", &notion.Block{Type: notion.TypeParagraph, Text: runs("hello", "world")}, "hello world"},
		{"heading 1", &notion.Block{Type: notion.TypeHeading1, Text: runs("Title")}, "# Title"},
		{"heading 2", &notion.Block{Type: notion.TypeHeading2, Text: runs("Sub")}, "## Sub"},
		{"heading 3", &notion.Block{Type: notion.TypeHeading3, Text: runs("Deep")}, "### Deep"},
		{"bulleted item", &notion.Block{Type: notion.TypeBulletedListItem, Text: runs("point")}, "• point"},
		{"numbered item uses fixed marker", &notion.Block{Type: notion.TypeNumberedListItem, Text: runs("step")}, "1. step"},
		{"quote", &notion.Block{Type: notion.TypeQuote, Text: runs("wise words")}, "> wise words"},
		{"code", &notion.Block{Type: notion.TypeCode, Language: "go", Text: runs("fmt.Println()")}, "Code (go): fmt.Println()"},
		{"code without language", &notion.Block{Type: notion.TypeCode, Text: runs("x")}, "Code (unknown): x"},
		{"image with caption", &notion.Block{Type: notion.TypeImage, Caption: runs("diagram")}, "Image: diagram"},
		{"image without caption", &notion.Block{Type: notion.TypeImage, URL: "https://img.example/x.png"}, "Image: https://img.example/x.png"},
		{"todo unchecked", &notion.Block{Type: notion.TypeToDo, Text: runs("buy milk")}, "☐ buy milk"},
		{"todo checked", &notion.Block{Type: notion.TypeToDo, Checked: true, Text: runs("done")}, "☑ done"},
		{"toggle", &notion.Block{Type: notion.TypeToggle, Text: runs("details")}, "Toggle: details"},
		{"callout", &notion.Block{Type: notion.TypeCallout, Emoji: "💡", Text: runs("tip")}, "Callout 💡: tip"},
		{"divider", &notion.Block{Type: notion.TypeDivider}, "---"},
		{"bookmark", &notion.Block{Type: notion.TypeBookmark, URL: "https://example.com", Caption: runs("site")}, "Bookmark: https://example.com - site"},
		{"equation", &notion.Block{Type: notion.TypeEquation, Expression: "e=mc^2"}, "e=mc^2"},
		{"file", &notion.Block{Type: notion.TypeFile, Caption: runs("report.pdf")}, "File: report.pdf"},
		{"table of contents", &notion.Block{Type: notion.TypeTableOfContents}, "Table of Contents"},
		{"embed", &notion.Block{Type: notion.TypeEmbed, URL: "https://embed.example"}, "Embedded content: https://embed.example"},
		{"link preview", &notion.Block{Type: notion.TypeLinkPreview, URL: "https://preview.example"}, "Link preview: https://preview.example"},
		{"link to page", &notion.Block{Type: notion.TypeLinkToPage, LinkedPageID: "page-1"}, "Link to page: page-1"},
		{"link to database", &notion.Block{Type: notion.TypeLinkToPage, LinkedDBID: "db-1"}, "Link to database: db-1"},
		{"child page", &notion.Block{Type: notion.TypeChildPage, Title: "Notes"}, "Child page: Notes"},
		{"synced original", &notion.Block{Type: notion.TypeSyncedBlock}, "Synced content (original):"},
		{"synced reference", &notion.Block{Type: notion.TypeSyncedBlock, SyncedFrom: "orig-1"}, "Synced content (from block orig-1):"},
		{"unknown type falls back", &notion.Block{Type: "unsupported_widget"}, "[unsupported_widget]"},
		{"empty paragraph renders nothing", &notion.Block{Type: notion.TypeParagraph}, ""},
		{"empty table row", &notion.Block{Type: notion.TypeTableRow}, "| Empty row |"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RenderBlock(tt.block))
		})
	}
}

func TestRenderBlockIsPure(t *testing.T) {
	t.Parallel()

	block := &notion.Block{
		Type: notion.TypeToggle,
		Text: runs("details"),
		Children: []*notion.Block{
			{Type: notion.TypeParagraph, Text: runs("nested")},
		},
	}

	first := RenderBlock(block)
	second := RenderBlock(block)

	assert.Equal(t, first, second)
	assert.Equal(t, "Toggle: details\n  nested", first)
}

func TestRenderBlockIndentsChildren(t *testing.T) {
	t.Parallel()

	block := &notion.Block{
		Type: notion.TypeBulletedListItem,
		Text: runs("outer"),
		Children: []*notion.Block{
			{Type: notion.TypeBulletedListItem, Text: runs("inner"), Children: []*notion.Block{
				{Type: notion.TypeBulletedListItem, Text: runs("innermost")},
			}},
		},
	}

	assert.Equal(t, "• outer\n  • inner\n    • innermost", RenderBlock(block))
}

func TestRenderTableWithHeader(t *testing.T) {
	t.Parallel()

	table := &notion.Block{
		Type:            notion.TypeTable,
		HasColumnHeader: true,
		Children: []*notion.Block{
			{Type: notion.TypeTableRow, Cells: [][]notion.RichText{runs("A"), runs("B")}},
			{Type: notion.TypeTableRow, Cells: [][]notion.RichText{runs("1"), runs("2")}},
		},
	}

	assert.Equal(t, "| A | B |\n| --- | --- |\n| 1 | 2 |", RenderBlock(table))
}

func TestRenderTableWithoutHeader(t *testing.T) {
	t.Parallel()

	table := &notion.Block{
		Type: notion.TypeTable,
		Children: []*notion.Block{
			{Type: notion.TypeTableRow, Cells: [][]notion.RichText{runs("x"), runs("y")}},
			{Type: notion.TypeTableRow, Cells: [][]notion.RichText{runs("z"), runs("w")}},
		},
	}

	assert.Equal(t, "| x | y |\n| z | w |", RenderBlock(table))
}

func TestRenderTableWithoutRowsKeepsLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Table:", RenderBlock(&notion.Block{Type: notion.TypeTable}))
}

func TestRenderColumnListConcatenatesColumns(t *testing.T) {
	t.Parallel()

	cols := &notion.Block{
		Type: notion.TypeColumnList,
		Children: []*notion.Block{
			{Type: notion.TypeColumn, Children: []*notion.Block{
				{Type: notion.TypeParagraph, Text: runs("left")},
			}},
			{Type: notion.TypeColumn, Children: []*notion.Block{
				{Type: notion.TypeParagraph, Text: runs("right")},
			}},
		},
	}

	got := RenderBlock(cols)

	assert.NotContains(t, got, "Column List:")
	assert.NotContains(t, got, "Column:")
	assert.Equal(t, "  left\n  right", got)
}

func TestRenderChildDatabase(t *testing.T) {
	t.Parallel()

	block := &notion.Block{
		Type:  notion.TypeChildDatabase,
		Title: "Tasks",
		Database: &notion.Database{
			Title:      "Tasks",
			Properties: map[string]string{"Status": "select"},
		},
		Pages: []*notion.Page{
			{
				ID: "task-1",
				Properties: map[string]notion.PropertyValue{
					"Name": {Type: "title", Title: runs("Task 1")},
				},
				Content: []*notion.Block{
					{Type: notion.TypeParagraph, Text: runs("do it")},
				},
			},
		},
	}

	got := RenderBlock(block)

	assert.Contains(t, got, "Database: Tasks")
	assert.Contains(t, got, "Columns: Status")
	assert.Contains(t, got, "Contains 1 pages:")
	assert.Contains(t, got, "- Task 1")
	assert.Contains(t, got, "--- Page 1: Task 1 ---")
	assert.Contains(t, got, "    do it")
}

func TestRenderChildDatabaseWithoutExpansion(t *testing.T) {
	t.Parallel()

	got := RenderBlock(&notion.Block{Type: notion.TypeChildDatabase, Title: "Raw"})
	assert.Equal(t, "Child database: Raw", got)
}

func TestRenderPage(t *testing.T) {
	t.Parallel()

	checked := true
	score := 42.0

	page := &notion.Page{
		ID:  "page-1",
		URL: "https://notion.so/page-1",
		Properties: map[string]notion.PropertyValue{
			"Name":   {Type: "title", Title: runs("My Page")},
			"Status": {Type: "select", Select: "Active"},
			"Tags":   {Type: "multi_select", MultiSelect: []string{"a", "b"}},
			"Score":  {Type: "number", Number: &score},
			"Done":   {Type: "checkbox", Checkbox: &checked},
			"Notes":  {Type: "rich_text", RichText: runs("extra")},
			"Empty":  {Type: "rich_text"},
		},
		Content: []*notion.Block{
			{Type: notion.TypeHeading1, Text: runs("Intro")},
			{Type: notion.TypeParagraph}, // empty, skipped
			{Type: notion.TypeParagraph, Text: runs("body")},
		},
	}

	doc := RenderPage(page)

	assert.Equal(t, "My Page\n\n# Intro\nbody", doc.PageContent)
	assert.Equal(t, "page-1", doc.Metadata["page_id"])
	assert.Equal(t, "My Page", doc.Metadata["title"])
	assert.Equal(t, "Active", doc.Metadata["Status"])
	assert.Equal(t, []string{"a", "b"}, doc.Metadata["Tags"])
	assert.Equal(t, 42.0, doc.Metadata["Score"])
	assert.Equal(t, true, doc.Metadata["Done"])
	assert.Equal(t, "extra", doc.Metadata["Notes"])

	_, hasEmpty := doc.Metadata["Empty"]
	assert.False(t, hasEmpty)

	require.NotContains(t, doc.Metadata, "Name")
}
