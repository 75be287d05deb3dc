package display

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "0s"},
		{"sub-second rounds", 400 * time.Millisecond, "0s"},
		{"seconds", 45 * time.Second, "45s"},
		{"exactly one minute", time.Minute, "1m 0s"},
		{"minutes and seconds", 92 * time.Second, "1m 32s"},
		{"hours and minutes", time.Hour + 2*time.Minute + 30*time.Second, "1h 2m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDuration(tt.d)
			if got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
