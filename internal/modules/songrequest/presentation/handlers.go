package presentation

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/streamdj/streamdj/internal/bot"
	"github.com/streamdj/streamdj/internal/modules/songrequest/application/usecases"
)

const (
	statsLimit   = 3
	queuePreview = 5
)

// Handlers holds all the command handlers.
type Handlers struct {
	orchestrator *usecases.Orchestrator
	history      *usecases.HistoryService
}

// NewHandlers creates new Handlers.
func NewHandlers(orchestrator *usecases.Orchestrator, history *usecases.HistoryService) *Handlers {
	return &Handlers{
		orchestrator: orchestrator,
		history:      history,
	}
}

// CommandHandlers maps canonical command names to their handlers. Every
// command returned by Commands has an entry here.
func CommandHandlers(h *Handlers) map[string]bot.CommandHandler {
	return map[string]bot.CommandHandler{
		"songrequest":   h.HandleSongRequest,
		"song":          h.HandleSong,
		"queue":         h.HandleQueue,
		"toptracks":     h.HandleTopTracks,
		"toprequesters": h.HandleTopRequesters,
		"skip":          h.HandleSkip,
		"playnext":      h.HandlePlayNext,
		"clearqueue":    h.HandleClearQueue,
		"pausereq":      h.HandlePauseRequests,
		"resumereq":     h.HandleResumeRequests,
		"move":          h.HandleMove,
		"remove":        h.HandleRemove,
		"pin":           h.HandlePin,
		"unpin":         h.HandleUnpin,
		"srstats":       h.HandleStats,
		"smartvoting":   h.HandleSmartVoting,
		"resetfallback": h.HandleResetFallback,
	}
}

// HandleSongRequest handles !sr / !songrequest.
func (h *Handlers) HandleSongRequest(msg bot.ChatMessage, r bot.Responder) error {
	if msg.Args == "" {
		return r.Reply("Usage: !sr <song name or Spotify link>")
	}

	result := h.orchestrator.Request(context.Background(), msg.Args, msg.Username)
	return r.Reply(requestReply(result))
}

// HandleSong handles !song: the currently attributed track.
func (h *Handlers) HandleSong(msg bot.ChatMessage, r bot.Responder) error {
	current := h.orchestrator.CurrentTrack()
	if current == nil {
		return r.Reply("Nothing is playing right now.")
	}
	return r.Reply(nowPlayingReply(current))
}

// HandleQueue handles !queue: a short preview of upcoming entries.
func (h *Handlers) HandleQueue(msg bot.ChatMessage, r bot.Responder) error {
	queue := h.orchestrator.Queue()
	entries := queue.Entries()
	if len(entries) == 0 {
		return r.Reply("The queue is empty.")
	}
	return r.Reply(queueReply(entries, queue.TotalDuration()))
}

// HandleSkip handles !skip.
func (h *Handlers) HandleSkip(msg bot.ChatMessage, r bot.Responder) error {
	skipped, err := h.orchestrator.Skip(context.Background())
	if err != nil {
		if errors.Is(err, usecases.ErrStopped) {
			return r.Reply("Song requests are not running.")
		}
		return err
	}
	if skipped == nil {
		return r.Reply("Skipped.")
	}
	return r.Reply("Skipped " + skipped.FullName() + ".")
}

// HandlePlayNext handles !playnext: force-start the queue head.
func (h *Handlers) HandlePlayNext(msg bot.ChatMessage, r bot.Responder) error {
	err := h.orchestrator.PlayNext(context.Background())
	if err != nil {
		if errors.Is(err, usecases.ErrQueueEmpty) {
			return r.Reply("The queue is empty.")
		}
		if errors.Is(err, usecases.ErrStopped) {
			return r.Reply("Song requests are not running.")
		}
		return err
	}
	return r.Reply("Playing the next request.")
}

// HandleClearQueue handles !clearqueue.
func (h *Handlers) HandleClearQueue(msg bot.ChatMessage, r bot.Responder) error {
	count := h.orchestrator.ClearQueue()
	if count == 0 {
		return r.Reply("The queue was already empty.")
	}
	return r.Reply("Cleared " + strconv.Itoa(count) + " requests from the queue.")
}

// HandlePauseRequests handles !pausereq.
func (h *Handlers) HandlePauseRequests(msg bot.ChatMessage, r bot.Responder) error {
	h.orchestrator.PauseRequests(true)
	return r.Announce("Song requests are paused.")
}

// HandleResumeRequests handles !resumereq.
func (h *Handlers) HandleResumeRequests(msg bot.ChatMessage, r bot.Responder) error {
	h.orchestrator.PauseRequests(false)
	return r.Announce("Song requests are open again!")
}

// HandleMove handles !move <from> <to> (1-indexed in chat).
func (h *Handlers) HandleMove(msg bot.ChatMessage, r bot.Responder) error {
	fields := strings.Fields(msg.Args)
	if len(fields) != 2 {
		return r.Reply("Usage: !move <from> <to>")
	}
	from, err1 := strconv.Atoi(fields[0])
	to, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return r.Reply("Usage: !move <from> <to>")
	}

	if !h.orchestrator.MoveEntry(from-1, to-1) {
		return r.Reply("No queue entry at that position.")
	}
	return r.Reply("Moved request to position " + strconv.Itoa(to) + ".")
}

// HandleRemove handles !remove <position> (1-indexed in chat).
func (h *Handlers) HandleRemove(msg bot.ChatMessage, r bot.Responder) error {
	position, err := strconv.Atoi(msg.Args)
	if err != nil {
		return r.Reply("Usage: !remove <position>")
	}

	if !h.orchestrator.RemoveEntry(position - 1) {
		return r.Reply("No queue entry at that position.")
	}
	return r.Reply("Removed request at position " + strconv.Itoa(position) + ".")
}

// HandlePin handles !pin <position> (1-indexed in chat).
func (h *Handlers) HandlePin(msg bot.ChatMessage, r bot.Responder) error {
	position, err := strconv.Atoi(msg.Args)
	if err != nil {
		return r.Reply("Usage: !pin <position>")
	}

	if !h.orchestrator.PinEntry(position - 1) {
		return r.Reply("No queue entry at that position.")
	}
	return r.Reply("Pinned request at position " + strconv.Itoa(position) + ".")
}

// HandleUnpin handles !unpin <position> (1-indexed in chat).
func (h *Handlers) HandleUnpin(msg bot.ChatMessage, r bot.Responder) error {
	position, err := strconv.Atoi(msg.Args)
	if err != nil {
		return r.Reply("Usage: !unpin <position>")
	}

	if !h.orchestrator.UnpinEntry(position - 1) {
		return r.Reply("No queue entry at that position.")
	}
	return r.Reply("Unpinned request at position " + strconv.Itoa(position) + ".")
}

// HandleTopTracks handles !toptracks.
func (h *Handlers) HandleTopTracks(msg bot.ChatMessage, r bot.Responder) error {
	top := h.history.TopTracks(statsLimit, 0)
	if len(top) == 0 {
		return r.Reply("No plays recorded yet.")
	}
	return r.Reply(topTracksReply(top))
}

// HandleTopRequesters handles !toprequesters.
func (h *Handlers) HandleTopRequesters(msg bot.ChatMessage, r bot.Responder) error {
	top := h.history.TopRequesters(statsLimit, 0)
	if len(top) == 0 {
		return r.Reply("No requests recorded yet.")
	}
	return r.Reply(topRequestersReply(top))
}

// HandleStats handles !srstats.
func (h *Handlers) HandleStats(msg bot.ChatMessage, r bot.Responder) error {
	summary := h.history.Stats(0)
	if summary.TotalPlays == 0 {
		return r.Reply("No plays recorded yet.")
	}
	return r.Reply(statsReply(summary))
}

// HandleSmartVoting handles !smartvoting <on|off>.
func (h *Handlers) HandleSmartVoting(msg bot.ChatMessage, r bot.Responder) error {
	switch strings.ToLower(msg.Args) {
	case "on":
		h.orchestrator.SetSmartVoting(true)
		return r.Announce("Smart voting is on: duplicate requests now count as votes.")
	case "off":
		h.orchestrator.SetSmartVoting(false)
		return r.Announce("Smart voting is off.")
	default:
		return r.Reply("Usage: !smartvoting <on|off>")
	}
}

// HandleResetFallback handles !resetfallback: re-enables the fallback
// playlist after repeated errors disabled it.
func (h *Handlers) HandleResetFallback(msg bot.ChatMessage, r bot.Responder) error {
	h.orchestrator.ResetFallback()
	return r.Reply("Fallback playlist re-enabled.")
}
