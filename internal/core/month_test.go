package core

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in      string
		want    Month
		wantErr bool
	}{
		{in: "2024-01", want: Month{Year: 2024, Mon: time.January}},
		{in: "2023-12", want: Month{Year: 2023, Mon: time.December}},
		{in: "2024-13", wantErr: true},
		{in: "not-a-month", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseMonth(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMonth(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMonth(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMonth(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMonthNext(t *testing.T) {
	m := Month{Year: 2023, Mon: time.December}
	if got := m.Next(); got != (Month{Year: 2024, Mon: time.January}) {
		t.Errorf("December.Next() = %v, want 2024-01", got)
	}
	m = Month{Year: 2024, Mon: time.January}
	if got := m.Next(); got != (Month{Year: 2024, Mon: time.February}) {
		t.Errorf("January.Next() = %v, want 2024-02", got)
	}
}

func TestMonthOrdering(t *testing.T) {
	jan := Month{Year: 2024, Mon: time.January}
	feb := Month{Year: 2024, Mon: time.February}
	dec23 := Month{Year: 2023, Mon: time.December}

	if !jan.Before(feb) {
		t.Error("2024-01 should be before 2024-02")
	}
	if !dec23.Before(jan) {
		t.Error("2023-12 should be before 2024-01")
	}
	if jan.Before(jan) {
		t.Error("a month is not before itself")
	}
	if !feb.After(jan) {
		t.Error("2024-02 should be after 2024-01")
	}
}

func TestMonthString(t *testing.T) {
	if got := (Month{Year: 2024, Mon: time.March}).String(); got != "2024-03" {
		t.Errorf("String() = %q, want 2024-03", got)
	}
}

func TestMonthContains(t *testing.T) {
	m := Month{Year: 2024, Mon: time.January}
	in := time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC)
	out := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	if !m.Contains(in) {
		t.Error("2024-01-31 should be inside 2024-01")
	}
	if m.Contains(out) {
		t.Error("2024-02-01 should not be inside 2024-01")
	}
}
