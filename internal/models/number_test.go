package models

import (
	"encoding/json"
	"testing"
)

// TestNumber_UnmarshalJSON verifies that numeric fields decode permissively: numbers and numeric
// strings are valid, anything else becomes absent without an error.
func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in        string
		wantValid bool
		want      float64
	}{
		{`12.5`, true, 12.5},
		{`-3`, true, -3},
		{`1704610800`, true, 1704610800},
		{`"7.25"`, true, 7.25},
		{`" 8 "`, true, 8},
		{`null`, false, 0},
		{`"abc"`, false, 0},
		{`"NaN"`, false, 0},
		{`"Inf"`, false, 0},
		{`true`, false, 0},
		{`{}`, false, 0},
		{`[1]`, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var n Number
			if err := json.Unmarshal([]byte(tt.in), &n); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.in, err)
			}
			got, ok := n.Float()
			if ok != tt.wantValid {
				t.Fatalf("Float() ok = %v, want %v", ok, tt.wantValid)
			}
			if ok && got != tt.want {
				t.Errorf("Float() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestNumber_MissingField verifies that an absent key leaves the field invalid.
func TestNumber_MissingField(t *testing.T) {
	var h Hour
	if err := json.Unmarshal([]byte(`{"datetime":"14:00:00"}`), &h); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if h.DatetimeEpoch.Valid || h.Temp.Valid {
		t.Errorf("missing fields decoded as valid: %+v", h)
	}
}

// TestNumber_MarshalJSON verifies that invalid numbers encode as null.
func TestNumber_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Number `json:"a"`
		B Number `json:"b"`
	}{A: NewNumber(4.5)})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(out), `{"a":4.5,"b":null}`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}

// TestParseUnitSystem verifies unit names, upstream aliases and the default.
func TestParseUnitSystem(t *testing.T) {
	tests := []struct {
		in        string
		want      UnitSystem
		wantGroup string
		wantErr   bool
	}{
		{"", UnitsMetric, "metric", false},
		{"metric", UnitsMetric, "metric", false},
		{"Imperial", UnitsImperial, "us", false},
		{"us", UnitsImperial, "us", false},
		{"scientific", UnitsScientific, "base", false},
		{" base ", UnitsScientific, "base", false},
		{"kelvin", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnitSystem(tt.in, UnitsMetric)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseUnitSystem(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("ParseUnitSystem(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if got.UnitGroup() != tt.wantGroup {
				t.Errorf("UnitGroup() = %q, want %q", got.UnitGroup(), tt.wantGroup)
			}
		})
	}
}
