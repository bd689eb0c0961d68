package session

import (
	"strings"
	"time"

	"github.com/diogo/funkychat/internal/models"
)

// Event is a user action or an external result fed to Reduce
type Event interface {
	isEvent()
}

// Submitted is the user sending the input box contents
type Submitted struct {
	Text string
	At   time.Time
}

// ReplyReceived is the dispatcher outcome for the pending message
type ReplyReceived struct {
	Reply models.Reply
	At    time.Time
}

// BackendSelected is the user picking a backend
type BackendSelected struct {
	Backend models.BackendID
}

// Cleared is the user clearing the conversation
type Cleared struct{}

// StatusProbed is the result of one liveness probe
type StatusProbed struct {
	Backend models.BackendID
	Status  models.Status
}

func (Submitted) isEvent()       {}
func (ReplyReceived) isEvent()   {}
func (BackendSelected) isEvent() {}
func (Cleared) isEvent()         {}
func (StatusProbed) isEvent()    {}

// Effect is work the caller must perform after a transition.
// A nil Effect means nothing to do.
type Effect interface {
	isEffect()
}

// Dispatch asks the caller to send Text to Backend and feed the outcome
// back as ReplyReceived
type Dispatch struct {
	Backend models.BackendID
	Text    string
}

func (Dispatch) isEffect() {}

// Reduce computes the next state for ev. It never mutates s.
func Reduce(s State, ev Event) (State, Effect) {
	switch ev := ev.(type) {
	case Submitted:
		text := strings.TrimSpace(ev.Text)
		if text == "" || s.Pending {
			return s, nil
		}
		next := s.clone()
		next.Transcript = append(next.Transcript, models.NewUserMessage(text, s.Active, at(ev.At)))
		next.Pending = true
		return next, Dispatch{Backend: s.Active, Text: text}

	case ReplyReceived:
		if !s.Pending {
			return s, nil
		}
		backend := ev.Reply.Backend
		if !backend.Valid() {
			backend = s.Active
		}
		next := s.clone()
		next.Transcript = append(next.Transcript, models.NewAssistantMessage(ev.Reply.Content(), backend, at(ev.At)))
		next.Pending = false
		return next, nil

	case BackendSelected:
		if s.Pending || !ev.Backend.Valid() || ev.Backend == s.Active {
			return s, nil
		}
		next := s.clone()
		next.Transcript = []models.Message{}
		next.Active = ev.Backend
		return next, nil

	case Cleared:
		if s.Pending || len(s.Transcript) == 0 {
			return s, nil
		}
		next := s.clone()
		next.Transcript = []models.Message{}
		return next, nil

	case StatusProbed:
		if !ev.Backend.Valid() {
			return s, nil
		}
		next := s.clone()
		next.Statuses[ev.Backend] = ev.Status
		return next, nil
	}

	return s, nil
}

func at(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
