// Package session holds the per-user conversation state and the reducer
// that drives every front-end.
package session

import (
	"maps"
	"slices"

	"github.com/diogo/funkychat/internal/models"
)

// State is an immutable view of one conversation
type State struct {
	Transcript []models.Message
	Active     models.BackendID
	Statuses   map[models.BackendID]models.Status
	// Pending is true while a message is awaiting its reply.
	Pending bool
}

// NewState returns the initial state: empty transcript, every backend
// Unknown and active set to the given backend (LangChain if invalid)
func NewState(active models.BackendID) State {
	if !active.Valid() {
		active = models.BackendLangChain
	}

	statuses := make(map[models.BackendID]models.Status, len(models.AllBackends()))
	for _, id := range models.AllBackends() {
		statuses[id] = models.StatusUnknown
	}

	return State{
		Transcript: []models.Message{},
		Active:     active,
		Statuses:   statuses,
	}
}

// Status returns the cached status of id
func (s State) Status(id models.BackendID) models.Status {
	return s.Statuses[id]
}

// LastReply returns the most recent assistant message
func (s State) LastReply() (models.Message, bool) {
	for i := len(s.Transcript) - 1; i >= 0; i-- {
		if s.Transcript[i].Role == models.RoleAssistant {
			return s.Transcript[i], true
		}
	}
	return models.Message{}, false
}

// Tip returns the sidebar tip for the current transcript length
func (s State) Tip() string {
	return TipFor(len(s.Transcript))
}

// clone returns a deep copy so callers can never alias internal slices
func (s State) clone() State {
	out := s
	out.Transcript = slices.Clone(s.Transcript)
	if out.Transcript == nil {
		out.Transcript = []models.Message{}
	}
	out.Statuses = maps.Clone(s.Statuses)
	return out
}
