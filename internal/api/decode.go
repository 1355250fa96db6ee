package api

import (
	"encoding/json"
	"time"

	"github.com/lox/notion-ingest/internal/notion"
)

// Decoding is deliberately defensive: payload shapes vary by block type and
// API revision, so every lookup tolerates missing fields and an unrecognized
// type still yields a Block with its id, type tag and has_children flag.

type richTextRaw struct {
	PlainText string `json:"plain_text"`
}

func decodeRichText(raw []richTextRaw) []notion.RichText {
	if len(raw) == 0 {
		return nil
	}
	runs := make([]notion.RichText, 0, len(raw))
	for _, r := range raw {
		runs = append(runs, notion.RichText{PlainText: r.PlainText})
	}
	return runs
}

func decodeBlock(raw json.RawMessage) *notion.Block {
	var env struct {
		ID          string `json:"id"`
		Type        string `json:"type"`
		HasChildren bool   `json:"has_children"`
	}
	_ = json.Unmarshal(raw, &env)

	b := &notion.Block{
		ID:          env.ID,
		Type:        notion.BlockType(env.Type),
		HasChildren: env.HasChildren,
	}

	var fields map[string]json.RawMessage
	_ = json.Unmarshal(raw, &fields)
	payload, ok := fields[env.Type]
	if !ok {
		return b
	}

	switch b.Type {
	case notion.TypeParagraph, notion.TypeHeading1, notion.TypeHeading2, notion.TypeHeading3,
		notion.TypeBulletedListItem, notion.TypeNumberedListItem, notion.TypeQuote, notion.TypeToggle:
		var p struct {
			RichText []richTextRaw `json:"rich_text"`
		}
		_ = json.Unmarshal(payload, &p)
		b.Text = decodeRichText(p.RichText)

	case notion.TypeCode:
		var p struct {
			RichText []richTextRaw `json:"rich_text"`
			Language string        `json:"language"`
		}
		_ = json.Unmarshal(payload, &p)
		b.Text = decodeRichText(p.RichText)
		b.Language = p.Language

	case notion.TypeToDo:
		var p struct {
			RichText []richTextRaw `json:"rich_text"`
			Checked  bool          `json:"checked"`
		}
		_ = json.Unmarshal(payload, &p)
		b.Text = decodeRichText(p.RichText)
		b.Checked = p.Checked

	case notion.TypeCallout:
		var p struct {
			RichText []richTextRaw `json:"rich_text"`
			Icon     struct {
				Emoji string `json:"emoji"`
			} `json:"icon"`
		}
		_ = json.Unmarshal(payload, &p)
		b.Text = decodeRichText(p.RichText)
		b.Emoji = p.Icon.Emoji

	case notion.TypeImage, notion.TypeFile:
		var p struct {
			Caption  []richTextRaw `json:"caption"`
			External struct {
				URL string `json:"url"`
			} `json:"external"`
			File struct {
				URL string `json:"url"`
			} `json:"file"`
		}
		_ = json.Unmarshal(payload, &p)
		b.Caption = decodeRichText(p.Caption)
		b.URL = p.External.URL
		if b.URL == "" {
			b.URL = p.File.URL
		}

	case notion.TypeBookmark, notion.TypeEmbed, notion.TypeLinkPreview:
		var p struct {
			URL     string        `json:"url"`
			Caption []richTextRaw `json:"caption"`
		}
		_ = json.Unmarshal(payload, &p)
		b.URL = p.URL
		b.Caption = decodeRichText(p.Caption)

	case notion.TypeEquation:
		var p struct {
			Expression string `json:"expression"`
		}
		_ = json.Unmarshal(payload, &p)
		b.Expression = p.Expression

	case notion.TypeTable:
		var p struct {
			HasColumnHeader bool `json:"has_column_header"`
		}
		_ = json.Unmarshal(payload, &p)
		b.HasColumnHeader = p.HasColumnHeader

	case notion.TypeTableRow:
		var p struct {
			Cells [][]richTextRaw `json:"cells"`
		}
		_ = json.Unmarshal(payload, &p)
		for _, cell := range p.Cells {
			b.Cells = append(b.Cells, decodeRichText(cell))
		}

	case notion.TypeSyncedBlock:
		var p struct {
			SyncedFrom *struct {
				BlockID string `json:"block_id"`
			} `json:"synced_from"`
		}
		_ = json.Unmarshal(payload, &p)
		if p.SyncedFrom != nil {
			b.SyncedFrom = p.SyncedFrom.BlockID
		}

	case notion.TypeLinkToPage:
		var p struct {
			PageID     string `json:"page_id"`
			DatabaseID string `json:"database_id"`
		}
		_ = json.Unmarshal(payload, &p)
		b.LinkedPageID = p.PageID
		b.LinkedDBID = p.DatabaseID

	case notion.TypeChildPage, notion.TypeChildDatabase:
		var p struct {
			Title string `json:"title"`
		}
		_ = json.Unmarshal(payload, &p)
		b.Title = p.Title
	}

	return b
}

type propertyRaw struct {
	Type     string        `json:"type"`
	Title    []richTextRaw `json:"title"`
	RichText []richTextRaw `json:"rich_text"`
	Number   *float64      `json:"number"`
	Select   *struct {
		Name string `json:"name"`
	} `json:"select"`
	MultiSelect []struct {
		Name string `json:"name"`
	} `json:"multi_select"`
	Date *struct {
		Start string `json:"start"`
	} `json:"date"`
	Checkbox    *bool  `json:"checkbox"`
	URL         string `json:"url"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

func decodeProperty(raw propertyRaw) notion.PropertyValue {
	v := notion.PropertyValue{
		Type:        raw.Type,
		Title:       decodeRichText(raw.Title),
		RichText:    decodeRichText(raw.RichText),
		Number:      raw.Number,
		Checkbox:    raw.Checkbox,
		URL:         raw.URL,
		Email:       raw.Email,
		PhoneNumber: raw.PhoneNumber,
	}
	if raw.Select != nil {
		v.Select = raw.Select.Name
	}
	for _, m := range raw.MultiSelect {
		v.MultiSelect = append(v.MultiSelect, m.Name)
	}
	if raw.Date != nil {
		v.DateStart = raw.Date.Start
	}
	return v
}

func decodePage(raw json.RawMessage) *notion.Page {
	var env struct {
		ID             string                 `json:"id"`
		URL            string                 `json:"url"`
		CreatedTime    string                 `json:"created_time"`
		LastEditedTime string                 `json:"last_edited_time"`
		Properties     map[string]propertyRaw `json:"properties"`
	}
	_ = json.Unmarshal(raw, &env)

	page := &notion.Page{
		ID:         env.ID,
		URL:        env.URL,
		Properties: make(map[string]notion.PropertyValue, len(env.Properties)),
	}
	if t, err := time.Parse(time.RFC3339, env.CreatedTime); err == nil {
		page.CreatedTime = t
	}
	if t, err := time.Parse(time.RFC3339, env.LastEditedTime); err == nil {
		page.LastEditedTime = t
	}
	for name, prop := range env.Properties {
		page.Properties[name] = decodeProperty(prop)
	}
	return page
}

func decodeDatabase(raw json.RawMessage) *notion.Database {
	var env struct {
		ID         string        `json:"id"`
		Title      []richTextRaw `json:"title"`
		Properties map[string]struct {
			Type string `json:"type"`
		} `json:"properties"`
	}
	_ = json.Unmarshal(raw, &env)

	db := &notion.Database{
		ID:         env.ID,
		Title:      notion.PlainText(decodeRichText(env.Title)),
		Properties: make(map[string]string, len(env.Properties)),
	}
	for name, prop := range env.Properties {
		db.Properties[name] = prop.Type
	}
	return db
}
