package bot

import (
	"sync"

	twitch "github.com/gempir/go-twitch-irc/v4"
)

// Responder provides an abstraction for replying in chat.
// This interface enables testing handlers without a live IRC connection.
type Responder interface {
	// Reply sends a message to the channel, addressed to the invoking user.
	Reply(text string) error

	// Announce sends a message to the channel without addressing anyone.
	Announce(text string) error
}

// TwitchResponder implements Responder using a live IRC connection.
type TwitchResponder struct {
	client   *twitch.Client
	channel  string
	username string
}

// NewTwitchResponder creates a new TwitchResponder.
func NewTwitchResponder(client *twitch.Client, channel, username string) *TwitchResponder {
	return &TwitchResponder{
		client:   client,
		channel:  channel,
		username: username,
	}
}

// Reply sends a @username-addressed message to the channel.
func (r *TwitchResponder) Reply(text string) error {
	r.client.Say(r.channel, "@"+r.username+" "+text)
	return nil
}

// Announce sends a plain message to the channel.
func (r *TwitchResponder) Announce(text string) error {
	r.client.Say(r.channel, text)
	return nil
}

// MockResponder is a test double for Responder.
type MockResponder struct {
	mu        sync.Mutex
	Replies   []string
	Announced []string
	Err       error
}

// Reply records the reply for testing.
func (m *MockResponder) Reply(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Replies = append(m.Replies, text)
	return m.Err
}

// Announce records the announcement for testing.
func (m *MockResponder) Announce(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Announced = append(m.Announced, text)
	return m.Err
}

// LastReply returns the most recent reply, or "" when none was sent.
func (m *MockResponder) LastReply() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Replies) == 0 {
		return ""
	}
	return m.Replies[len(m.Replies)-1]
}
