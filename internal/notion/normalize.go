// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package notion

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/tomtom215/momentmillionaer/internal/models"
)

// Candidate property names, German first.
var (
	titleProps       = []string{"Name", "Titel", "Title", "Veranstaltung"}
	subtitleProps    = []string{"Untertitel", "Subtitle"}
	descriptionProps = []string{"Beschreibung", "Description", "Details", "Text"}
	categoryProps    = []string{"Kategorie", "Kategorien", "Category", "Categories"}
	locationProps    = []string{"Ort", "Veranstaltungsort", "Location", "Adresse"}
	dateProps        = []string{"Datum", "Date", "Termin"}
	timeProps        = []string{"Uhrzeit", "Zeit", "Time"}
	priceProps       = []string{"Preis", "Eintritt", "Kosten", "Price"}
	websiteProps     = []string{"Website", "Webseite", "Link", "URL"}
	organizerProps   = []string{"Veranstalter", "Organisator", "Organizer"}
	audienceProps    = []string{"Audience", "Audiences"}
	fileProps        = []string{"Bilder", "Bild", "Dateien", "Anhänge", "Images", "Image", "Files"}
	favoriteProps    = []string{"Favorit", "Favorite", "Highlight"}
)

// freeWords mark an event as free of charge when they appear as whole words.
var freeWords = map[string]struct{}{
	"kostenlos":     {},
	"kostenfrei":    {},
	"eintrittsfrei": {},
	"gratis":        {},
	"frei":          {},
	"free":          {},
}

// Normalizer converts database pages into events.
type Normalizer struct {
	classifier       *Classifier
	audienceProperty string
	loc              *time.Location
}

// NewNormalizer creates a normalizer. audienceProperty is tried before the
// built-in audience names; loc is used to render dates that carry a time.
func NewNormalizer(classifier *Classifier, audienceProperty string, loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{classifier: classifier, audienceProperty: audienceProperty, loc: loc}
}

// NormalizeAll converts every page, preserving order.
func (n *Normalizer) NormalizeAll(pages []Page) []models.Event {
	events := make([]models.Event, 0, len(pages))
	for i := range pages {
		events = append(events, n.Normalize(&pages[i]))
	}
	return events
}

// Normalize converts one page. It never fails; unreadable values become
// their defaults.
func (n *Normalizer) Normalize(page *Page) models.Event {
	props := page.Properties

	e := models.Event{
		ID:          page.ID,
		Title:       firstText(props, titleProps),
		Subtitle:    firstText(props, subtitleProps),
		Description: firstText(props, descriptionProps),
		Location:    firstText(props, locationProps),
		Organizer:   firstText(props, organizerProps),
		Website:     firstText(props, websiteProps),
		Categories:  firstList(props, categoryProps),
		Audiences:   firstList(props, append([]string{n.audienceProperty}, audienceProps...)),
		Price:       ParsePrice(props),
		Favorite:    firstCheckbox(props, favoriteProps),
	}
	if e.Title == "" {
		e.Title = titleOfAnyKind(props)
	}
	if len(e.Categories) > 0 {
		e.Category = e.Categories[0]
	}

	if p, ok := lookup(props, dateProps); ok {
		e.StartDate, e.EndDate, e.Time = n.dates(p)
	}
	if t := firstText(props, timeProps); t != "" {
		e.Time = t
	}

	e.ImageURL, e.DocumentURLs = n.classifier.Attachments(collectFiles(props), page.Cover)
	return e
}

// dates renders a date property as start date, end date and start time.
func (n *Normalizer) dates(p Property) (start, end, clock string) {
	var d *DateValue
	switch {
	case p.Date != nil:
		d = p.Date
	case p.Formula != nil && p.Formula.Date != nil:
		d = p.Formula.Date
	default:
		return "", "", ""
	}
	start, clock = n.splitDate(d.Start)
	if d.End != nil {
		end, _ = n.splitDate(*d.End)
	}
	return start, end, clock
}

// splitDate returns the date part and, for timestamps, the HH:MM time in
// the configured location.
func (n *Normalizer) splitDate(value string) (date, clock string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ""
	}
	if !strings.Contains(value, "T") {
		if _, err := time.Parse(models.DateLayout, value); err != nil {
			return "", ""
		}
		return value, ""
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		if len(value) >= len(models.DateLayout) {
			if _, err := time.Parse(models.DateLayout, value[:len(models.DateLayout)]); err == nil {
				return value[:len(models.DateLayout)], ""
			}
		}
		return "", ""
	}
	t = t.In(n.loc)
	return t.Format(models.DateLayout), t.Format("15:04")
}

// ParsePrice resolves the price from the first present candidate property.
//
// Numbers are formatted as-is. Text mentioning a free-of-charge word
// yields "0"; otherwise it is stripped to digits, '.' and ',' with the
// comma read as decimal separator. Anything unparseable yields "0".
//
//	"12,50 €"         -> "12.50"
//	"Eintritt frei"   -> "0"
//	"auf Anfrage"     -> "0"
func ParsePrice(props map[string]Property) string {
	p, ok := lookup(props, priceProps)
	if !ok {
		return models.FreePrice
	}
	if num, ok := numberOf(p); ok {
		if num <= 0 {
			return models.FreePrice
		}
		return strconv.FormatFloat(num, 'f', -1, 64)
	}
	return ParsePriceText(propertyText(p))
}

// ParsePriceText applies the text rules of ParsePrice. A free word only
// counts as a whole word, so "Freitag" or "Fr." do not zero a price. The
// first run of digits (with '.' or ',' as decimal mark) is the amount.
func ParsePriceText(text string) string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if _, ok := freeWords[w]; ok {
			return models.FreePrice
		}
	}

	cleaned := firstAmount(text)
	v, err := strconv.ParseFloat(cleaned, 64)
	if cleaned == "" || err != nil || v <= 0 {
		return models.FreePrice
	}
	return cleaned
}

// firstAmount returns the first numeric run of text with ',' mapped to '.'.
func firstAmount(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case (r == '.' || r == ',') && b.Len() > 0:
			b.WriteRune('.')
		case b.Len() > 0:
			return strings.TrimRight(b.String(), ".")
		}
	}
	return strings.TrimRight(b.String(), ".")
}

// lookup returns the first candidate property present on the page.
func lookup(props map[string]Property, names []string) (Property, bool) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if p, ok := props[name]; ok {
			return p, true
		}
	}
	return Property{}, false
}

func firstText(props map[string]Property, names []string) string {
	for _, name := range names {
		if p, ok := props[name]; ok {
			if s := strings.TrimSpace(propertyText(p)); s != "" {
				return s
			}
		}
	}
	return ""
}

// firstList returns the option names of the first candidate with values.
// The result is never nil.
func firstList(props map[string]Property, names []string) []string {
	for _, name := range names {
		p, ok := props[name]
		if !ok {
			continue
		}
		if list := propertyList(p); len(list) > 0 {
			return list
		}
	}
	return []string{}
}

func firstCheckbox(props map[string]Property, names []string) bool {
	p, ok := lookup(props, names)
	if !ok {
		return false
	}
	if p.Type == PropertyFormula && p.Formula != nil && p.Formula.Boolean != nil {
		return *p.Formula.Boolean
	}
	return p.Checkbox
}

// titleOfAnyKind returns the text of the page's title-typed property,
// whatever its name.
func titleOfAnyKind(props map[string]Property) string {
	for _, p := range props {
		if p.Type == PropertyTitle {
			return strings.TrimSpace(plainText(p.Title))
		}
	}
	return ""
}

// collectFiles gathers files properties: known names first, then any other
// files property in name order.
func collectFiles(props map[string]Property) []File {
	var files []File
	seen := make(map[string]bool)
	for _, name := range fileProps {
		if p, ok := props[name]; ok && p.Type == PropertyFiles {
			files = append(files, p.Files...)
			seen[name] = true
		}
	}
	var rest []string
	for name, p := range props {
		if p.Type == PropertyFiles && !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		files = append(files, props[name].Files...)
	}
	return files
}

func numberOf(p Property) (float64, bool) {
	switch {
	case p.Type == PropertyNumber && p.Number != nil:
		return *p.Number, true
	case p.Type == PropertyFormula && p.Formula != nil && p.Formula.Number != nil:
		return *p.Formula.Number, true
	default:
		return 0, false
	}
}

// propertyText renders any scalar property as text.
func propertyText(p Property) string {
	switch p.Type {
	case PropertyTitle:
		return plainText(p.Title)
	case PropertyRichText:
		return plainText(p.RichText)
	case PropertyNumber:
		if p.Number != nil {
			return strconv.FormatFloat(*p.Number, 'f', -1, 64)
		}
	case PropertySelect:
		if p.Select != nil {
			return p.Select.Name
		}
	case PropertyStatus:
		if p.Status != nil {
			return p.Status.Name
		}
	case PropertyMultiSelect:
		return strings.Join(propertyList(p), ", ")
	case PropertyURL:
		return deref(p.URL)
	case PropertyEmail:
		return deref(p.Email)
	case PropertyPhone:
		return deref(p.PhoneNumber)
	case PropertyDate:
		if p.Date != nil {
			return p.Date.Start
		}
	case PropertyFormula:
		if p.Formula != nil {
			switch {
			case p.Formula.String != nil:
				return *p.Formula.String
			case p.Formula.Number != nil:
				return strconv.FormatFloat(*p.Formula.Number, 'f', -1, 64)
			}
		}
	}
	return ""
}

// propertyList renders multi-select, select and comma-separated text as a list.
func propertyList(p Property) []string {
	var out []string
	switch p.Type {
	case PropertyMultiSelect:
		for _, opt := range p.MultiSelect {
			if name := strings.TrimSpace(opt.Name); name != "" {
				out = append(out, name)
			}
		}
	case PropertySelect, PropertyStatus:
		if s := strings.TrimSpace(propertyText(p)); s != "" {
			out = append(out, s)
		}
	default:
		for _, part := range strings.Split(propertyText(p), ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func plainText(parts []RichText) string {
	var b strings.Builder
	for _, rt := range parts {
		b.WriteString(rt.PlainText)
	}
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
