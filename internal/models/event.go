// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package models

import (
	"sort"
	"strings"
	"time"
)

// DateLayout is the layout of StartDate and EndDate.
const DateLayout = "2006-01-02"

// FreePrice is the only price value the frontend treats as "free".
const FreePrice = "0"

// Event is a normalized event record.
//
// Slices are never nil so the JSON output always contains arrays.
type Event struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle,omitempty"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Categories   []string `json:"categories"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	Time         string   `json:"time"`
	Price        string   `json:"price"`
	Website      string   `json:"website,omitempty"`
	Organizer    string   `json:"organizer"`
	Audiences    []string `json:"audiences"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	DocumentURLs []string `json:"documentsUrls"`
	Favorite     bool     `json:"favorite"`
}

// IsFree reports whether the normalized price marks the event as free.
func (e *Event) IsFree() bool {
	return e.Price == FreePrice
}

// Start parses StartDate in loc. ok is false for undated events.
func (e *Event) Start(loc *time.Location) (time.Time, bool) {
	return parseDate(e.StartDate, loc)
}

// End parses EndDate, falling back to StartDate for single-day events.
func (e *Event) End(loc *time.Location) (time.Time, bool) {
	if end, ok := parseDate(e.EndDate, loc); ok {
		return end, true
	}
	return e.Start(loc)
}

func parseDate(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if len(value) > len(DateLayout) {
		value = value[:len(DateLayout)]
	}
	t, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// UniqueCategories returns the sorted union of every event's categories.
// Blank tags are ignored; comparison is exact after trimming.
func UniqueCategories(events []Event) []string {
	seen := make(map[string]struct{})
	for i := range events {
		for _, c := range events[i].Categories {
			if c = strings.TrimSpace(c); c != "" {
				seen[c] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
