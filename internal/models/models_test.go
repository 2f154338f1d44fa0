package models

import (
	"encoding/json"
	"testing"
)

func TestFlexID_UnmarshalNumber(t *testing.T) {
	var c Candidate
	if err := json.Unmarshal([]byte(`{"id": 7, "full_name": "Maria Santos", "position": 1}`), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if c.ID != "7" {
		t.Errorf("expected id '7', got %q", c.ID)
	}
	if !c.Position.Equals("1") {
		t.Errorf("numeric position should equal string '1', got %q", c.Position)
	}
}

func TestFlexID_UnmarshalString(t *testing.T) {
	var c Candidate
	if err := json.Unmarshal([]byte(`{"id": "7", "position": "1"}`), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if c.ID != "7" || c.Position != "1" {
		t.Errorf("unexpected ids: id=%q position=%q", c.ID, c.Position)
	}
}

func TestFlexID_UnmarshalNull(t *testing.T) {
	var c Candidate
	if err := json.Unmarshal([]byte(`{"id": null}`), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if c.ID != "" {
		t.Errorf("expected empty id for null, got %q", c.ID)
	}
}

func TestFlexID_MarshalNumericStaysNumeric(t *testing.T) {
	out, err := json.Marshal(FlexID("42"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != "42" {
		t.Errorf("numeric id should marshal as a bare number, got %s", out)
	}
}

func TestFlexID_MarshalNonNumericStaysString(t *testing.T) {
	out, err := json.Marshal(FlexID("pos-senior-president"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `"pos-senior-president"` {
		t.Errorf("non-numeric id should marshal as a string, got %s", out)
	}
}

func TestFlexID_Equals(t *testing.T) {
	cases := []struct {
		id    FlexID
		raw   string
		equal bool
	}{
		{"1", "1", true},
		{"1", " 1 ", true},
		{"1", "2", false},
		{"", "", true},
		{"abc", "abc", true},
	}
	for _, tc := range cases {
		if got := tc.id.Equals(tc.raw); got != tc.equal {
			t.Errorf("FlexID(%q).Equals(%q) = %v, want %v", tc.id, tc.raw, got, tc.equal)
		}
	}
}

func TestFlexID_LargeNumericPrecision(t *testing.T) {
	// Ids larger than float64 precision must survive a round trip.
	var p Position
	if err := json.Unmarshal([]byte(`{"id": 9007199254740993}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if p.ID != "9007199254740993" {
		t.Errorf("expected full precision preserved, got %q", p.ID)
	}
}
