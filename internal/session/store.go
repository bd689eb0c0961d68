package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	apierrors "github.com/diogo/funkychat/internal/errors"
	"github.com/diogo/funkychat/internal/models"
)

// Store owns the state of one user session. It is created when the
// session starts and discarded when it ends; nothing is persisted.
type Store struct {
	ID        string
	CreatedAt time.Time

	mu    sync.RWMutex
	state State
}

// NewStore creates a session with the given active backend
func NewStore(active models.BackendID) *Store {
	return &Store{
		ID:        "sess_" + uuid.New().String()[:8],
		CreatedAt: time.Now(),
		state:     NewState(active),
	}
}

// Apply runs ev through Reduce and stores the result
func (s *Store) Apply(ev Event) Effect {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, effect := Reduce(s.state, ev)
	s.state = next
	return effect
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// ActiveBackend returns the backend receiving messages
func (s *Store) ActiveBackend() models.BackendID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Active
}

// SetActiveBackend switches backend. Switching to a different backend
// clears the transcript in the same step; the same backend is a no-op.
func (s *Store) SetActiveBackend(id models.BackendID) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %s", apierrors.ErrUnknownBackend, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Active == id {
		return nil
	}
	s.state.Active = id
	s.state.Transcript = []models.Message{}
	return nil
}

// Append adds msg to the end of the transcript
func (s *Store) Append(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Transcript = append(s.state.Transcript, msg)
}

// ClearTranscript empties the transcript
func (s *Store) ClearTranscript() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Transcript = []models.Message{}
}

// Transcript returns a copy of the messages in insertion order
func (s *Store) Transcript() []models.Message {
	return s.Snapshot().Transcript
}

// Len returns the number of messages
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Transcript)
}

// Status returns the cached status of id
func (s *Store) Status(id models.BackendID) models.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Statuses[id]
}

// SetStatus records the status of id. Other backends are untouched.
func (s *Store) SetStatus(id models.BackendID, status models.Status) {
	s.Apply(StatusProbed{Backend: id, Status: status})
}

// Statuses returns a copy of every cached status
func (s *Store) Statuses() map[models.BackendID]models.Status {
	return s.Snapshot().Statuses
}

// Pending reports whether a reply is awaited
func (s *Store) Pending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Pending
}
