package task

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		seriesID string
		date     string
	}{
		{"abc123", "2025-01-15"},
		{"water-weekly", "2024-12-31"},
		{"s", "2025-06-01"},
	}
	for _, tc := range cases {
		id := EncodeOccurrenceID(tc.seriesID, tc.date)
		seriesID, date, ok := DecodeOccurrenceID(id)
		if !ok {
			t.Fatalf("decode(%q) not ok", id)
		}
		if seriesID != tc.seriesID || date != tc.date {
			t.Fatalf("decode(%q) = %q, %q; want %q, %q", id, seriesID, date, tc.seriesID, tc.date)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []string{
		"series:abc",                      // two segments
		"series:abc:2025-01-15:extra",     // four segments
		"abc123",                          // no prefix
		"serie:abc:2025-01-15",            // wrong prefix
		"series:a:b:c:2025-01-15",         // colon inside series id
		"",
	}
	for _, id := range cases {
		if _, _, ok := DecodeOccurrenceID(id); ok {
			t.Fatalf("decode(%q) ok, want malformed", id)
		}
	}
}

func TestIsEphemeral(t *testing.T) {
	if !IsEphemeral(Task{ID: "series:abc:2025-01-15"}) {
		t.Fatal("composite id should be ephemeral")
	}
	if !IsEphemeral(Task{ID: "t1", Meta: Meta{Ephemeral: true}}) {
		t.Fatal("metadata flag should mark ephemeral")
	}
	if IsEphemeral(Task{ID: "t1"}) {
		t.Fatal("plain id should not be ephemeral")
	}
	// Malformed composite ids are still ephemeral by prefix; the ref layer
	// decides how to route them.
	if !IsEphemeral(Task{ID: "series:abc"}) {
		t.Fatal("prefix match should be ephemeral even when malformed")
	}
}

func TestNewRef(t *testing.T) {
	r := NewRef(Task{ID: "series:abc123:2025-01-15"})
	if !r.IsOccurrence() {
		t.Fatal("expected occurrence ref")
	}
	if r.SeriesID != "abc123" || r.Date != "2025-01-15" {
		t.Fatalf("unexpected ref: %+v", r)
	}

	r = NewRef(Task{ID: "series:abc"})
	if r.IsOccurrence() {
		t.Fatal("malformed composite id should resolve to a concrete ref")
	}
	if r.ID != "series:abc" {
		t.Fatalf("expected raw id fallback, got %q", r.ID)
	}

	r = NewRef(Task{ID: "t1"})
	if r.IsOccurrence() || r.ID != "t1" {
		t.Fatalf("unexpected ref: %+v", r)
	}
}
