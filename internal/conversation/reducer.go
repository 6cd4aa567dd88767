package conversation

import (
	"strings"
	"time"
)

// Action is a state transition understood by Reduce.
type Action interface {
	isAction()
}

// UserSubmitted appends a user message and opens the pending slot.
type UserSubmitted struct {
	Message Message
}

// ReplyDelivered appends the assistant reply and closes the pending slot.
type ReplyDelivered struct {
	Message Message
}

// VoiceToggled flips the voice capture flag.
type VoiceToggled struct{}

func (UserSubmitted) isAction()  {}
func (ReplyDelivered) isAction() {}
func (VoiceToggled) isAction()   {}

// Reduce applies a to s and returns the next state. s is never modified.
// Transitions that are not allowed from s return s unchanged:
//   - UserSubmitted with blank content or while a reply is pending
//   - ReplyDelivered while no reply is pending
//
// Timestamps are normalized so the history stays non-decreasing and a reply
// is always strictly newer than the message before it.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case UserSubmitted:
		if s.Pending || strings.TrimSpace(act.Message.Content) == "" {
			return s
		}
		msg := act.Message
		msg.Author = AuthorUser
		msg.Timestamp = notBefore(s, msg.Timestamp)
		next := s.clone()
		next.History = append(next.History, msg)
		next.Pending = true
		next.Revision++
		return next

	case ReplyDelivered:
		if !s.Pending {
			return s
		}
		msg := act.Message
		msg.Author = AuthorAssistant
		msg.Timestamp = after(s, msg.Timestamp)
		msg.Suggestions = append([]string(nil), msg.Suggestions...)
		next := s.clone()
		next.History = append(next.History, msg)
		next.Pending = false
		next.Revision++
		return next

	case VoiceToggled:
		next := s.clone()
		next.Listening = !s.Listening
		next.Revision++
		return next
	}
	return s
}

func notBefore(s State, ts time.Time) time.Time {
	last, ok := s.Last()
	if ok && ts.Before(last.Timestamp) {
		return last.Timestamp
	}
	return ts
}

func after(s State, ts time.Time) time.Time {
	last, ok := s.Last()
	if ok && !ts.After(last.Timestamp) {
		return last.Timestamp.Add(time.Nanosecond)
	}
	return ts
}
