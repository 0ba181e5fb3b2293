package time

import (
	"testing"
	"time"
)

func TestParseFlexibleTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"socrata floating timestamp", "2024-03-15T00:00:00.000", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2024-03-15T10:30:00Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"plain date", "2023-12-01", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)},
		{"space separated", "2023-12-01 08:15:00", time.Date(2023, 12, 1, 8, 15, 0, 0, time.UTC)},
		{"day first", "05/02/2024", time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)},
		{"padded", "  2022-01-31  ", time.Date(2022, 1, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFlexibleTime(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("ParseFlexibleTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFlexibleTime_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not a date", "pendent"} {
		if got := ParseFlexibleTime(input); !got.IsZero() {
			t.Errorf("ParseFlexibleTime(%q) = %v, want zero time", input, got)
		}
	}
}

func TestParseDate_Truncates(t *testing.T) {
	got, ok := ParseDate("2024-06-30T23:59:59.000")
	if !ok {
		t.Fatal("ParseDate should succeed")
	}
	want := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate() = %v, want %v", got, want)
	}

	if _, ok := ParseDate("abc"); ok {
		t.Error("ParseDate(abc) should fail")
	}
}
