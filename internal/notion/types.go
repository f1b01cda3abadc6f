// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package notion

// Wire types for the subset of the Notion API (version 2022-06-28) used here.

// Property type names.
const (
	PropertyTitle       = "title"
	PropertyRichText    = "rich_text"
	PropertyNumber      = "number"
	PropertySelect      = "select"
	PropertyMultiSelect = "multi_select"
	PropertyStatus      = "status"
	PropertyDate        = "date"
	PropertyURL         = "url"
	PropertyEmail       = "email"
	PropertyPhone       = "phone_number"
	PropertyCheckbox    = "checkbox"
	PropertyFiles       = "files"
	PropertyFormula     = "formula"
)

// RichText is one rich text fragment.
type RichText struct {
	Type      string `json:"type"`
	PlainText string `json:"plain_text"`
	Href      string `json:"href,omitempty"`
}

// SelectOption is a select, status or multi-select value.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// DateValue is a date property value. End is optional.
type DateValue struct {
	Start    string  `json:"start"`
	End      *string `json:"end"`
	TimeZone *string `json:"time_zone"`
}

// FileURL carries the URL of a hosted or external file.
type FileURL struct {
	URL string `json:"url"`
}

// File is a files-property entry or a page cover.
type File struct {
	Name     string   `json:"name,omitempty"`
	Type     string   `json:"type"`
	File     *FileURL `json:"file,omitempty"`
	External *FileURL `json:"external,omitempty"`
}

// URL returns the hosted or external URL, whichever is set.
func (f File) URL() string {
	switch {
	case f.File != nil && f.File.URL != "":
		return f.File.URL
	case f.External != nil:
		return f.External.URL
	default:
		return ""
	}
}

// FormulaValue is the computed value of a formula property.
type FormulaValue struct {
	Type    string     `json:"type"`
	String  *string    `json:"string,omitempty"`
	Number  *float64   `json:"number,omitempty"`
	Boolean *bool      `json:"boolean,omitempty"`
	Date    *DateValue `json:"date,omitempty"`
}

// Property is a page property value. Only the field named by Type is set.
type Property struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Status      *SelectOption  `json:"status,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	URL         *string        `json:"url,omitempty"`
	Email       *string        `json:"email,omitempty"`
	PhoneNumber *string        `json:"phone_number,omitempty"`
	Checkbox    bool           `json:"checkbox,omitempty"`
	Files       []File         `json:"files,omitempty"`
	Formula     *FormulaValue  `json:"formula,omitempty"`
}

// Page is a database row.
type Page struct {
	Object     string              `json:"object"`
	ID         string              `json:"id"`
	URL        string              `json:"url,omitempty"`
	Archived   bool                `json:"archived,omitempty"`
	Cover      *File               `json:"cover,omitempty"`
	Properties map[string]Property `json:"properties"`
}

// ChildDatabase is the payload of a child_database block.
type ChildDatabase struct {
	Title string `json:"title"`
}

// Block is a child block of a page.
type Block struct {
	Object        string         `json:"object"`
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	HasChildren   bool           `json:"has_children"`
	ChildDatabase *ChildDatabase `json:"child_database,omitempty"`
}

// SelectConfig lists the options of a select or multi-select column.
type SelectConfig struct {
	Options []SelectOption `json:"options"`
}

// DatabaseProperty is a column definition of a database schema.
type DatabaseProperty struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	Select      *SelectConfig `json:"select,omitempty"`
	MultiSelect *SelectConfig `json:"multi_select,omitempty"`
}

// Database is a database object with its schema.
type Database struct {
	Object     string                      `json:"object"`
	ID         string                      `json:"id"`
	Title      []RichText                  `json:"title"`
	Properties map[string]DatabaseProperty `json:"properties"`
}

// PlainTitle joins the title fragments.
func (d *Database) PlainTitle() string {
	return plainText(d.Title)
}

// Options returns the option names of a select or multi-select column.
// ok is false when the column does not exist or has no options list.
func (d *Database) Options(property string) ([]string, bool) {
	prop, ok := d.Properties[property]
	if !ok {
		return nil, false
	}
	var cfg *SelectConfig
	switch {
	case prop.MultiSelect != nil:
		cfg = prop.MultiSelect
	case prop.Select != nil:
		cfg = prop.Select
	default:
		return nil, false
	}
	names := make([]string, 0, len(cfg.Options))
	for _, opt := range cfg.Options {
		if opt.Name != "" {
			names = append(names, opt.Name)
		}
	}
	return names, true
}

// listResponse is the paginated envelope shared by list endpoints.
type listResponse[T any] struct {
	Object     string  `json:"object"`
	Results    []T     `json:"results"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

type queryRequest struct {
	PageSize    int    `json:"page_size"`
	StartCursor string `json:"start_cursor,omitempty"`
}

type searchFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

type searchRequest struct {
	Query       string       `json:"query"`
	Filter      searchFilter `json:"filter"`
	PageSize    int          `json:"page_size"`
	StartCursor string       `json:"start_cursor,omitempty"`
}
