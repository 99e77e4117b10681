package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone America/New_York", timezone: "America/New_York", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestNowInTimezone(t *testing.T) {
	now, err := NowInTimezone("UTC")
	if err != nil {
		t.Fatalf("NowInTimezone() error = %v", err)
	}
	if now.Location() != time.UTC {
		t.Errorf("NowInTimezone() location = %v, want UTC", now.Location())
	}

	if _, err := NowInTimezone("Nowhere/Special"); err == nil {
		t.Error("NowInTimezone() expected error for invalid timezone")
	}
}

func TestDay(t *testing.T) {
	ts := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)
	got := Day(ts)
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Day() = %v, want %v", got, want)
	}
}

func TestIsSameDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want bool
	}{
		{
			name: "same date different hours",
			a:    time.Date(2024, 5, 1, 0, 5, 0, 0, time.UTC),
			b:    time.Date(2024, 5, 1, 23, 55, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "consecutive dates",
			a:    time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC),
			b:    time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "b is converted into a's location",
			a:    time.Date(2024, 5, 1, 21, 0, 0, 0, ny),
			b:    time.Date(2024, 5, 2, 1, 0, 0, 0, time.UTC),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSameDay(tt.a, tt.b); got != tt.want {
				t.Errorf("IsSameDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 2024-03-10 is a 23 hour day in New York
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, ny)
	got := AddDays(day, -1)
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, ny)
	if !got.Equal(want) {
		t.Errorf("AddDays() = %v, want %v", got, want)
	}
	if got.Hour() != 0 {
		t.Errorf("AddDays() hour = %d, want 0", got.Hour())
	}

	if got := FormatDate(AddDays(day, -6)); got != "2024-03-05" {
		t.Errorf("FormatDate(AddDays(-6)) = %q, want 2024-03-05", got)
	}
}

func TestValidateTimeFormat(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"07:30", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"7:30", false},
		{"07:60", false},
		{"0730", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ValidateTimeFormat(tt.input); got != tt.want {
				t.Errorf("ValidateTimeFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	got, err := ParseTimeToMinutes("09:15")
	if err != nil {
		t.Fatalf("ParseTimeToMinutes() error = %v", err)
	}
	if got != 555 {
		t.Errorf("ParseTimeToMinutes() = %d, want 555", got)
	}
}
