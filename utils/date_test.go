package utils

import (
	"testing"
	"time"
)

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "ISO format",
			input: "2024-01-08",
			want:  time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "short US format",
			input: "1/8/24",
			want:  time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "unsupported format",
			input:   "08.01.2024",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlexibleDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseUSDate(t *testing.T) {
	got, err := ParseUSDate("03/15/2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got %v", got)
	}

	got, err = ParseUSDate("3/15/24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got %v", got)
	}

	if _, err := ParseUSDate("2024-03-15"); err == nil {
		t.Error("expected error for ISO date in cargo manifest")
	}
}

func TestParseClockTime(t *testing.T) {
	base := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	got, err := ParseClockTime(base, "09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := ParseClockTime(base, "9:30 AM"); err == nil {
		t.Error("expected error for 12-hour time")
	}
	if _, err := ParseClockTime(base, "25:00"); err == nil {
		t.Error("expected error for out-of-range hour")
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)); got != "2024-03" {
		t.Errorf("got %q", got)
	}
}
