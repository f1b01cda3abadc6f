// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package cache

import (
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Entry is a stored value together with its freshness window.
type Entry struct {
	Value    []byte        `msgpack:"v"`
	StoredAt time.Time     `msgpack:"s"`
	TTL      time.Duration `msgpack:"t"`
}

// ExpiresAt is the instant the entry stops being fresh.
func (e Entry) ExpiresAt() time.Time {
	return e.StoredAt.Add(e.TTL)
}

// Fresh reports whether now - StoredAt <= TTL.
func (e Entry) Fresh(now time.Time) bool {
	return now.Sub(e.StoredAt) <= e.TTL
}

// Stale reports how long the entry has been expired at now (0 while fresh).
func (e Entry) Stale(now time.Time) time.Duration {
	if e.Fresh(now) {
		return 0
	}
	return now.Sub(e.ExpiresAt())
}

// encodeEntry is the wire format used by the remote stores.
func encodeEntry(e Entry) ([]byte, error) {
	return msgpack.Marshal(&e)
}

func decodeEntry(body []byte) (Entry, error) {
	var e Entry
	if err := msgpack.Unmarshal(body, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
