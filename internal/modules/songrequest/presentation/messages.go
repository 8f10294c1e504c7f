package presentation

import (
	"fmt"
	"strings"
	"time"

	"github.com/streamdj/streamdj/internal/modules/songrequest/application/usecases"
	"github.com/streamdj/streamdj/internal/modules/songrequest/domain"
)

func requestReply(result usecases.RequestResult) string {
	name := result.Track.FullName()

	switch result.Outcome {
	case domain.OutcomeAccepted:
		return fmt.Sprintf("%s added to the queue at position %d (about %s until it plays).",
			name, result.Position, waitText(result.Wait))
	case domain.OutcomeVoted:
		return fmt.Sprintf("%s is already queued, your vote counts! It now has %d votes.",
			name, result.Votes)
	case domain.OutcomeDuplicate:
		return name + " is already in the queue."
	case domain.OutcomeFull:
		return "The queue is full right now, try again later."
	case domain.OutcomeUserLimit:
		return "You already have the maximum number of requests queued."
	case domain.OutcomeTooLong:
		return name + " is too long for a request."
	case domain.OutcomeOnCooldown:
		return name + " was played recently, try again later."
	case domain.OutcomeUserCooldown:
		return "You requested a song recently, give it a moment."
	case domain.OutcomeBlacklisted:
		return fmt.Sprintf("%s can't be requested (matches \"%s\").", name, result.MatchedRule)
	case domain.OutcomePaused:
		return "Song requests are paused right now."
	default:
		return "Couldn't find that song, try a different search or a Spotify link."
	}
}

func nowPlayingReply(current *domain.QueueEntry) string {
	reply := "Now playing: " + current.Track.FullName()
	if requesters := current.RequesterList(); requesters != "" {
		reply += " (requested by " + requesters + ")"
	}
	return reply + "."
}

func queueReply(entries []domain.QueueEntry, total time.Duration) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d in queue (%s): ", len(entries), waitText(total))

	shown := entries
	if len(shown) > queuePreview {
		shown = shown[:queuePreview]
	}
	parts := make([]string, 0, len(shown))
	for i, entry := range shown {
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, entry.Track.FullName()))
	}
	sb.WriteString(strings.Join(parts, " | "))

	if rest := len(entries) - len(shown); rest > 0 {
		fmt.Fprintf(&sb, " (+%d more)", rest)
	}
	return sb.String()
}

func topTracksReply(top []usecases.TrackCount) string {
	parts := make([]string, 0, len(top))
	for i, tc := range top {
		parts = append(parts, fmt.Sprintf("%d. %s - %s (%d plays)", i+1, tc.Title, tc.Artist, tc.Plays))
	}
	return "Top tracks: " + strings.Join(parts, " | ")
}

func topRequestersReply(top []usecases.RequesterCount) string {
	parts := make([]string, 0, len(top))
	for i, rc := range top {
		parts = append(parts, fmt.Sprintf("%d. %s (%d requests)", i+1, rc.Requester, rc.Requests))
	}
	return "Top requesters: " + strings.Join(parts, " | ")
}

func statsReply(summary usecases.Summary) string {
	return fmt.Sprintf(
		"%d plays, %d unique tracks, %d requesters, %.0f%% skipped, %.0f%% autopilot, %s of music.",
		summary.TotalPlays,
		summary.UniqueTracks,
		summary.UniqueRequesters,
		summary.SkipRate,
		summary.AutopilotShare,
		waitText(summary.TotalPlayTime),
	)
}

// waitText renders a duration as whole minutes, with a floor of one minute
// for anything shorter.
func waitText(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 1 {
		return "1 min"
	}
	return fmt.Sprintf("%d min", minutes)
}
