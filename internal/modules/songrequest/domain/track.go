package domain

import (
	"strconv"
	"time"
)

// Track represents a playable track from the music backend.
// Identity is the backend URI; two tracks with the same URI are the same track.
type Track struct {
	Title    string
	Artist   string
	URI      string
	Duration time.Duration
	CoverURL string
}

// FullName returns the track title with its artist, e.g. "Title - Artist".
func (t Track) FullName() string {
	return t.Title + " - " + t.Artist
}

// FormattedDuration returns the duration as a human-readable string (mm:ss or hh:mm:ss).
func (t Track) FormattedDuration() string {
	totalSeconds := int(t.Duration.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return pad(hours) + ":" + pad(minutes) + ":" + pad(seconds)
	}
	return pad(minutes) + ":" + pad(seconds)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
