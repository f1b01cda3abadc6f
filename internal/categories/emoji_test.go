// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package categories

import "testing"

func TestEmoji(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Musik", "🎵"},
		{"  THEATER ", "🎭"},
		{"Kinderprogramm", "🧸"},
		{"Sommerfest", "🎉"},
		{"Jazzkonzert", "🎶"},
		{"Unbekannt", DefaultEmoji},
		{"", DefaultEmoji},
	}
	for _, tt := range tests {
		if got := Emoji(tt.in); got != tt.want {
			t.Errorf("Emoji(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	got := Lookup([]string{"Musik", "Sport", "Sonstiges"})
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	if got["Musik"] != "🎵" || got["Sport"] != "⚽" || got["Sonstiges"] != DefaultEmoji {
		t.Errorf("Lookup = %v", got)
	}
	if len(Lookup(nil)) != 0 {
		t.Error("nil input should give empty map")
	}
}
