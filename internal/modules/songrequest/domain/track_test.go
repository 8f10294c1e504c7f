package domain

import (
	"testing"
	"time"
)

func TestTrack_FullName(t *testing.T) {
	track := Track{Title: "Mr. Brightside", Artist: "The Killers"}

	if got := track.FullName(); got != "Mr. Brightside - The Killers" {
		t.Errorf("FullName() = %q, want %q", got, "Mr. Brightside - The Killers")
	}
}

func TestTrack_FormattedDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{
			name:     "under a minute",
			duration: 42 * time.Second,
			want:     "00:42",
		},
		{
			name:     "minutes and seconds",
			duration: 3*time.Minute + 7*time.Second,
			want:     "03:07",
		},
		{
			name:     "over an hour",
			duration: time.Hour + 2*time.Minute + 3*time.Second,
			want:     "01:02:03",
		},
		{
			name:     "zero",
			duration: 0,
			want:     "00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track := Track{Duration: tt.duration}
			if got := track.FormattedDuration(); got != tt.want {
				t.Errorf("FormattedDuration() = %q, want %q", got, tt.want)
			}
		})
	}
}
