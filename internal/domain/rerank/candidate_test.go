package rerank

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParsedTime_StringLayouts(t *testing.T) {
	cases := map[string]time.Time{
		"2026-08-29T12:30:00Z":      time.Date(2026, 8, 29, 12, 30, 0, 0, time.UTC),
		"2026-08-29T12:30:00+02:00": time.Date(2026, 8, 29, 12, 30, 0, 0, time.FixedZone("", 2*3600)),
		"2026-08-29T12:30:00":       time.Date(2026, 8, 29, 12, 30, 0, 0, time.UTC),
		"2026-08-29 12:30:00":       time.Date(2026, 8, 29, 12, 30, 0, 0, time.UTC),
		"2026-08-29":                time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
	}
	for input, want := range cases {
		c := Candidate{Timestamp: input}
		got, ok := c.ParsedTime()
		if !ok {
			t.Errorf("ParsedTime(%q): not parsed", input)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParsedTime(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestParsedTime_EpochSeconds(t *testing.T) {
	c := Candidate{Timestamp: float64(1788000000)} // JSON numbers decode as float64
	got, ok := c.ParsedTime()
	if !ok {
		t.Fatal("epoch seconds not parsed")
	}
	if got.Unix() != 1788000000 {
		t.Errorf("got %d, want 1788000000", got.Unix())
	}
}

func TestParsedTime_EpochMilliseconds(t *testing.T) {
	c := Candidate{Timestamp: float64(1788000000000)}
	got, ok := c.ParsedTime()
	if !ok {
		t.Fatal("epoch milliseconds not parsed")
	}
	if got.Unix() != 1788000000 {
		t.Errorf("got %d, want 1788000000", got.Unix())
	}
}

func TestParsedTime_JSONNumber(t *testing.T) {
	c := Candidate{Timestamp: json.Number("1788000000")}
	got, ok := c.ParsedTime()
	if !ok {
		t.Fatal("json.Number not parsed")
	}
	if got.Unix() != 1788000000 {
		t.Errorf("got %d, want 1788000000", got.Unix())
	}
}

func TestParsedTime_Invalid(t *testing.T) {
	for _, ts := range []any{nil, "not a date", "", []any{1}, map[string]any{}} {
		c := Candidate{Timestamp: ts}
		if _, ok := c.ParsedTime(); ok {
			t.Errorf("ParsedTime(%v) parsed, want failure", ts)
		}
	}
}
