// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

// Package categories maps category tags to the emoji shown next to them.
//
// The table is the single source for every view; lookups are pure and safe
// for concurrent use.
package categories

import "strings"

// DefaultEmoji is used for tags that match no entry.
const DefaultEmoji = "📅"

// exact maps normalized tags to emojis.
var exact = map[string]string{
	"musik":           "🎵",
	"konzert":         "🎶",
	"theater":         "🎭",
	"kabarett":        "🎤",
	"comedy":          "😂",
	"kino":            "🎬",
	"film":            "🎬",
	"lesung":          "📖",
	"literatur":       "📚",
	"ausstellung":     "🖼️",
	"kunst":           "🎨",
	"museum":          "🏛️",
	"führung":         "🚶",
	"vortrag":         "🎙️",
	"workshop":        "🛠️",
	"kurs":            "✏️",
	"bildung":         "🎓",
	"kinder":          "🧸",
	"familie":         "👨‍👩‍👧",
	"jugend":          "🛹",
	"senioren":        "👵",
	"sport":           "⚽",
	"natur":           "🌳",
	"wandern":         "🥾",
	"markt":           "🛍️",
	"flohmarkt":       "🧺",
	"fest":            "🎉",
	"feier":           "🎉",
	"party":           "🥳",
	"tanz":            "💃",
	"essen":           "🍽️",
	"kulinarik":       "🍷",
	"gottesdienst":    "⛪",
	"religion":        "🕊️",
	"politik":         "🗳️",
	"ehrenamt":        "🤝",
	"gesundheit":      "🩺",
	"online":          "💻",
	"weihnachten":     "🎄",
	"ostern":          "🐣",
	"karneval":        "🎊",
	"stadtgeschichte": "🏰",
}

// keywords are tried in order against tags without an exact entry.
var keywords = []struct {
	substr string
	emoji  string
}{
	{"konzert", "🎶"},
	{"musik", "🎵"},
	{"theater", "🎭"},
	{"kinder", "🧸"},
	{"famil", "👨‍👩‍👧"},
	{"ausstellung", "🖼️"},
	{"kunst", "🎨"},
	{"markt", "🛍️"},
	{"sport", "⚽"},
	{"lauf", "🏃"},
	{"fest", "🎉"},
	{"workshop", "🛠️"},
	{"vortrag", "🎙️"},
	{"lesung", "📖"},
	{"film", "🎬"},
	{"natur", "🌳"},
}

// Emoji returns the emoji for a category tag. Matching ignores case and
// surrounding space, then falls back to keyword containment.
func Emoji(category string) string {
	key := strings.ToLower(strings.TrimSpace(category))
	if key == "" {
		return DefaultEmoji
	}
	if e, ok := exact[key]; ok {
		return e
	}
	for _, kw := range keywords {
		if strings.Contains(key, kw.substr) {
			return kw.emoji
		}
	}
	return DefaultEmoji
}

// Lookup returns the emoji for every given tag, keyed by the tag as given.
func Lookup(categories []string) map[string]string {
	out := make(map[string]string, len(categories))
	for _, c := range categories {
		out[c] = Emoji(c)
	}
	return out
}
