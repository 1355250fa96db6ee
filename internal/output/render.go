package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/notion-ingest/internal/notion"
)

// RenderBlock converts one block (and its attached children) into its
// flattened text fragment. It is a pure function of the block: no network
// access, no state. An empty string means the block contributes nothing.
func RenderBlock(b *notion.Block) string {
	return composeChildren(b, blockText(b))
}

// blockText produces a block's own fragment, before child composition.
func blockText(b *notion.Block) string {
	text := notion.PlainText(b.Text)

	switch b.Type {
	case notion.TypeParagraph:
		return text
	case notion.TypeHeading1:
		return "# " + text
	case notion.TypeHeading2:
		return "## " + text
	case notion.TypeHeading3:
		return "### " + text
	case notion.TypeBulletedListItem:
		return "• " + text
	case notion.TypeNumberedListItem:
		// Every numbered item gets the same marker; positions are not tracked.
		return "1. " + text
	case notion.TypeQuote:
		return "> " + text

	case notion.TypeCode:
		lang := b.Language
		if lang == "" {
			lang = "unknown"
		}
		return fmt.Sprintf("Code (%s): %s", lang, text)

	case notion.TypeImage:
		if caption := notion.PlainText(b.Caption); caption != "" {
			return "Image: " + caption
		}
		return "Image: " + b.URL

	case notion.TypeToDo:
		checked := "☐"
		if b.Checked {
			checked = "☑"
		}
		return checked + " " + text

	case notion.TypeToggle:
		return "Toggle: " + text

	case notion.TypeCallout:
		return fmt.Sprintf("Callout %s: %s", b.Emoji, text)

	case notion.TypeTable:
		// Placeholder label; replaced entirely once rows are composed.
		return "Table:"

	case notion.TypeTableRow:
		return renderTableRow(b)

	case notion.TypeDivider:
		return "---"

	case notion.TypeBookmark:
		caption := notion.PlainText(b.Caption)
		return fmt.Sprintf("Bookmark: %s - %s", b.URL, caption)

	case notion.TypeEquation:
		return b.Expression

	case notion.TypeFile:
		if caption := notion.PlainText(b.Caption); caption != "" {
			return "File: " + caption
		}
		return "File: " + b.URL

	case notion.TypeColumnList:
		// Structural container; label discarded during composition.
		return "Column List:"

	case notion.TypeColumn:
		return "Column:"

	case notion.TypeSyncedBlock:
		if b.SyncedFrom != "" {
			return fmt.Sprintf("Synced content (from block %s):", b.SyncedFrom)
		}
		return "Synced content (original):"

	case notion.TypeTableOfContents:
		return "Table of Contents"

	case notion.TypeEmbed:
		return "Embedded content: " + b.URL

	case notion.TypeLinkPreview:
		return "Link preview: " + b.URL

	case notion.TypeLinkToPage:
		if b.LinkedPageID != "" {
			return "Link to page: " + b.LinkedPageID
		}
		if b.LinkedDBID != "" {
			return "Link to database: " + b.LinkedDBID
		}
		return ""

	case notion.TypeChildPage:
		return "Child page: " + b.Title

	case notion.TypeChildDatabase:
		return renderChildDatabase(b)

	default:
		return "[" + string(b.Type) + "]"
	}
}

func renderTableRow(b *notion.Block) string {
	if len(b.Cells) == 0 {
		return "| Empty row |"
	}
	cells := make([]string, 0, len(b.Cells))
	for _, cell := range b.Cells {
		cells = append(cells, notion.PlainText(cell))
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

// renderChildDatabase builds the composite fragment for an embedded database:
// resolved title, schema columns, the page title listing, and a full inline
// section per expanded page.
func renderChildDatabase(b *notion.Block) string {
	text := "Child database: " + b.Title

	if b.Database != nil {
		if b.Database.Title != "" {
			text = "Database: " + b.Database.Title
		}
		if len(b.Database.Properties) > 0 {
			names := make([]string, 0, len(b.Database.Properties))
			for name := range b.Database.Properties {
				names = append(names, name)
			}
			sort.Strings(names)
			text += "\nColumns: " + strings.Join(names, ", ")
		}
	}

	if len(b.Pages) == 0 {
		return text
	}

	text += fmt.Sprintf("\nContains %d pages:", len(b.Pages))

	var titles []string
	for _, page := range b.Pages {
		if title := page.Title(); title != "" {
			titles = append(titles, title)
		}
	}
	if len(titles) > 0 {
		text += "\n- " + strings.Join(titles, "\n- ")
	}

	var sections []string
	for i, page := range b.Pages {
		if len(page.Content) == 0 {
			continue
		}
		section := fmt.Sprintf("\n--- Page %d: %s ---\n", i+1, page.Title())
		for _, block := range page.Content {
			if fragment := RenderBlock(block); fragment != "" {
				section += indent(fragment, "    ") + "\n"
			}
		}
		sections = append(sections, section)
	}
	if len(sections) > 0 {
		text += "\n\nDetailed page content:\n" + strings.Join(sections, "\n")
	}

	return text
}

// composeChildren appends a block's rendered children beneath its own
// fragment. Tables are rebuilt from their rows, column lists concatenate
// their columns' bodies, and everything else nests with two-space indent.
func composeChildren(b *notion.Block, text string) string {
	if len(b.Children) == 0 {
		return text
	}

	switch b.Type {
	case notion.TypeTable:
		rows := composeTableRows(b)
		if len(rows) == 0 {
			return text
		}
		// Rows stand on their own, unindented; the "Table:" label goes away.
		return strings.Join(rows, "\n")

	case notion.TypeColumnList:
		var columns []string
		for _, child := range b.Children {
			if child.Type != notion.TypeColumn {
				continue
			}
			if body := RenderBlock(child); body != "" && body != "Column:" {
				columns = append(columns, body)
			}
		}
		if len(columns) == 0 {
			return text
		}
		return strings.Join(columns, "\n")

	case notion.TypeColumn:
		// A column is pure layout: its output is exactly its children's
		// composed text.
		childText := composeDefault(b.Children)
		if childText == "" {
			return text
		}
		return childText

	default:
		childText := composeDefault(b.Children)
		if childText == "" {
			return text
		}
		if text == "" {
			return childText
		}
		return text + "\n" + childText
	}
}

func composeDefault(children []*notion.Block) string {
	var fragments []string
	for _, child := range children {
		if fragment := RenderBlock(child); fragment != "" {
			fragments = append(fragments, fragment)
		}
	}
	if len(fragments) == 0 {
		return ""
	}
	return indent(strings.Join(fragments, "\n"), "  ")
}

// composeTableRows renders a table's rows in order, inserting a dash
// separator after the header row when the table declares one. Cell count for
// the separator is inferred from the header row itself.
func composeTableRows(b *notion.Block) []string {
	var rows []string
	for _, child := range b.Children {
		if child.Type != notion.TypeTableRow {
			continue
		}
		if row := RenderBlock(child); row != "" {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 || !b.HasColumnHeader {
		return rows
	}

	out := []string{rows[0]}
	if len(rows) > 1 {
		cellCount := strings.Count(rows[0], "|") - 1
		if cellCount < 1 {
			cellCount = 1
		}
		dashes := make([]string, cellCount)
		for i := range dashes {
			dashes[i] = "---"
		}
		out = append(out, "| "+strings.Join(dashes, " | ")+" |")
		out = append(out, rows[1:]...)
	}
	return out
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
