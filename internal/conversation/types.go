// Package conversation implements the assistant's turn-taking engine: an
// append-only message history, a single-slot pending reply, and simulated
// reply latency driven by an injected scheduler.
package conversation

import "time"

// Author identifies who wrote a message.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// Message is a single entry in the conversation history.
type Message struct {
	ID          string    `json:"id" yaml:"id"`
	Content     string    `json:"content" yaml:"content"`
	Author      Author    `json:"author" yaml:"author"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	Suggestions []string  `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// IsUser reports whether the message was written by the user.
func (m Message) IsUser() bool { return m.Author == AuthorUser }

// HasSuggestions reports whether the message carries suggestion chips.
func (m Message) HasSuggestions() bool { return len(m.Suggestions) > 0 }

// State is an immutable snapshot of a conversation. Revision increases by
// one on every transition that changes the snapshot.
type State struct {
	History   []Message `json:"history"`
	Pending   bool      `json:"pending"`
	Listening bool      `json:"listening"`
	Revision  uint64    `json:"revision"`
}

// Len returns the number of messages in the history.
func (s State) Len() int { return len(s.History) }

// Last returns the most recent message.
func (s State) Last() (Message, bool) {
	if len(s.History) == 0 {
		return Message{}, false
	}
	return s.History[len(s.History)-1], true
}

// LatestSuggestions returns the suggestion chips of the most recent message
// that carries any, or nil.
func (s State) LatestSuggestions() []string {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].HasSuggestions() {
			return s.History[i].Suggestions
		}
	}
	return nil
}

func (s State) clone() State {
	out := s
	out.History = make([]Message, len(s.History))
	copy(out.History, s.History)
	return out
}
