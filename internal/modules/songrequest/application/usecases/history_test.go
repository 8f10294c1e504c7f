package usecases

import (
	"testing"
	"time"

	"github.com/streamdj/streamdj/internal/modules/songrequest/domain"
)

func historyEntry(id, requester string, skipped bool, age time.Duration) domain.HistoryEntry {
	track := mockTrack(id)
	entry := domain.NewHistoryEntry(*track, requester, skipped)
	entry.Timestamp = time.Now().UTC().Add(-age)
	return entry
}

func TestHistoryService_Record(t *testing.T) {
	store := &mockHistoryStore{}
	service := NewHistoryService(store)

	service.Record(*mockTrack("a"), "alice", false)
	service.Record(*mockTrack("b"), domain.AutopilotRequester, false)

	if len(store.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(store.entries))
	}
	if store.entries[0].Requester != "alice" {
		t.Errorf("requester = %q, want alice", store.entries[0].Requester)
	}
	if !store.entries[1].IsAutopilot() {
		t.Error("second entry should be autopilot")
	}
}

func TestHistoryService_TopTracks(t *testing.T) {
	store := &mockHistoryStore{}
	service := NewHistoryService(store)

	for i := 0; i < 3; i++ {
		service.Record(*mockTrack("hit"), "alice", false)
	}
	service.Record(*mockTrack("other"), "bob", false)

	top := service.TopTracks(10, 0)
	if len(top) != 2 {
		t.Fatalf("TopTracks = %d entries, want 2", len(top))
	}
	if top[0].URI != mockTrack("hit").URI || top[0].Plays != 3 {
		t.Errorf("top = %+v, want hit with 3 plays", top[0])
	}

	limited := service.TopTracks(1, 0)
	if len(limited) != 1 {
		t.Errorf("TopTracks(1) = %d entries, want 1", len(limited))
	}
}

func TestHistoryService_TopRequesters_ExcludesAutopilot(t *testing.T) {
	store := &mockHistoryStore{}
	service := NewHistoryService(store)

	service.Record(*mockTrack("a"), "alice", false)
	service.Record(*mockTrack("b"), "alice", false)
	service.Record(*mockTrack("c"), "bob", false)
	service.Record(*mockTrack("d"), domain.AutopilotRequester, false)

	top := service.TopRequesters(10, 0)
	if len(top) != 2 {
		t.Fatalf("TopRequesters = %d entries, want 2 (autopilot excluded)", len(top))
	}
	if top[0].Requester != "alice" || top[0].Requests != 2 {
		t.Errorf("top = %+v, want alice with 2", top[0])
	}
}

func TestHistoryService_TopArtists(t *testing.T) {
	store := &mockHistoryStore{}
	service := NewHistoryService(store)

	service.Record(*mockTrack("a"), "alice", false)
	duplicateArtist := *mockTrack("b")
	duplicateArtist.Artist = mockTrack("a").Artist
	service.Record(duplicateArtist, "bob", false)
	service.Record(*mockTrack("c"), "carol", false)

	top := service.TopArtists(10, 0)
	if top[0].Artist != mockTrack("a").Artist || top[0].Plays != 2 {
		t.Errorf("top = %+v, want %q with 2 plays", top[0], mockTrack("a").Artist)
	}
}

func TestHistoryService_Stats(t *testing.T) {
	store := &mockHistoryStore{}
	service := NewHistoryService(store)

	service.Record(*mockTrack("a"), "alice", false)
	service.Record(*mockTrack("a"), "bob", true)
	service.Record(*mockTrack("b"), domain.AutopilotRequester, false)
	service.Record(*mockTrack("c"), "alice", false)

	stats := service.Stats(0)

	if stats.TotalPlays != 4 {
		t.Errorf("TotalPlays = %d, want 4", stats.TotalPlays)
	}
	if stats.UniqueTracks != 3 {
		t.Errorf("UniqueTracks = %d, want 3", stats.UniqueTracks)
	}
	if stats.UniqueRequesters != 2 {
		t.Errorf("UniqueRequesters = %d, want 2", stats.UniqueRequesters)
	}
	if stats.SkipRate != 25 {
		t.Errorf("SkipRate = %v, want 25", stats.SkipRate)
	}
	if stats.AutopilotShare != 25 {
		t.Errorf("AutopilotShare = %v, want 25", stats.AutopilotShare)
	}
	if stats.TotalPlayTime != 4*3*time.Minute {
		t.Errorf("TotalPlayTime = %v, want %v", stats.TotalPlayTime, 4*3*time.Minute)
	}
}

func TestHistoryService_Stats_Empty(t *testing.T) {
	service := NewHistoryService(&mockHistoryStore{})

	stats := service.Stats(0)
	if stats.TotalPlays != 0 || stats.SkipRate != 0 {
		t.Errorf("Stats() = %+v, want zero value", stats)
	}
}

func TestHistoryService_WindowFilter(t *testing.T) {
	store := &mockHistoryStore{
		entries: []domain.HistoryEntry{
			historyEntry("old", "alice", false, 48*time.Hour),
			historyEntry("recent", "bob", false, time.Hour),
		},
	}
	service := NewHistoryService(store)

	all := service.TopTracks(10, 0)
	if len(all) != 2 {
		t.Errorf("all-time = %d entries, want 2", len(all))
	}

	recent := service.TopTracks(10, 24*time.Hour)
	if len(recent) != 1 {
		t.Fatalf("24h window = %d entries, want 1", len(recent))
	}
	if recent[0].URI != mockTrack("recent").URI {
		t.Errorf("windowed track = %s, want %s", recent[0].URI, mockTrack("recent").URI)
	}
}
