package session

import (
	"errors"
	"strings"
	"sync"
	"testing"

	apierrors "github.com/diogo/funkychat/internal/errors"
	"github.com/diogo/funkychat/internal/models"
)

func TestNewStore(t *testing.T) {
	s := NewStore(models.BackendLangChain)

	if !strings.HasPrefix(s.ID, "sess_") || len(s.ID) != len("sess_")+8 {
		t.Errorf("ID = %s, want sess_xxxxxxxx", s.ID)
	}
	if s.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if s.Len() != 0 || s.ActiveBackend() != models.BackendLangChain {
		t.Error("unexpected initial state")
	}

	other := NewStore(models.BackendLangChain)
	if other.ID == s.ID {
		t.Error("session IDs should be unique")
	}
}

func TestStore_AppendPreservesOrder(t *testing.T) {
	s := NewStore(models.BackendLangChain)
	const n = 4

	for i := 0; i < n; i++ {
		s.Append(models.NewUserMessage("u", models.BackendLangChain, testTime))
		s.Append(models.NewAssistantMessage("a", models.BackendLangChain, testTime))
	}

	transcript := s.Transcript()
	if len(transcript) != 2*n || s.Len() != 2*n {
		t.Fatalf("length = %d, want %d", len(transcript), 2*n)
	}
	for i, msg := range transcript {
		wantRole := models.RoleUser
		if i%2 == 1 {
			wantRole = models.RoleAssistant
		}
		if msg.Role != wantRole {
			t.Errorf("message %d role = %s, want %s", i, msg.Role, wantRole)
		}
	}

	// Returned slices are copies
	transcript[0].Content = "mutated"
	if s.Transcript()[0].Content != "u" {
		t.Error("Transcript() must return a copy")
	}
}

func TestStore_SetActiveBackend(t *testing.T) {
	s := NewStore(models.BackendLangChain)
	s.Append(models.NewUserMessage("hi", models.BackendLangChain, testTime))
	s.Append(models.NewAssistantMessage("hey", models.BackendLangChain, testTime))

	// Same backend: no-op
	if err := s.SetActiveBackend(models.BackendLangChain); err != nil {
		t.Fatalf("SetActiveBackend() returned error: %v", err)
	}
	if s.Len() != 2 {
		t.Error("selecting the active backend must keep the transcript")
	}

	if err := s.SetActiveBackend(models.BackendLlamaIndex); err != nil {
		t.Fatalf("SetActiveBackend() returned error: %v", err)
	}
	if s.ActiveBackend() != models.BackendLlamaIndex {
		t.Errorf("ActiveBackend() = %s", s.ActiveBackend())
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after switching", s.Len())
	}

	err := s.SetActiveBackend("Nope")
	if !errors.Is(err, apierrors.ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
	if s.ActiveBackend() != models.BackendLlamaIndex {
		t.Error("rejected switch must not change the backend")
	}
}

func TestStore_Statuses(t *testing.T) {
	s := NewStore(models.BackendLangChain)

	s.SetStatus(models.BackendLlamaIndex, models.StatusOffline)

	if s.Status(models.BackendLlamaIndex) != models.StatusOffline {
		t.Errorf("Status() = %v", s.Status(models.BackendLlamaIndex))
	}
	if s.Status(models.BackendLangChain) != models.StatusUnknown {
		t.Error("other backend must stay untouched")
	}

	statuses := s.Statuses()
	statuses[models.BackendLangChain] = models.StatusOnline
	if s.Status(models.BackendLangChain) != models.StatusUnknown {
		t.Error("Statuses() must return a copy")
	}
}

func TestStore_ApplyAndClear(t *testing.T) {
	s := NewStore(models.BackendLangChain)

	effect := s.Apply(Submitted{Text: "hello"})
	if _, ok := effect.(Dispatch); !ok {
		t.Fatalf("effect = %T, want Dispatch", effect)
	}
	if !s.Pending() {
		t.Error("expected Pending after submit")
	}

	s.Apply(ReplyReceived{Reply: models.Reply{Backend: models.BackendLangChain, Text: "X"}})
	if s.Pending() || s.Len() != 2 {
		t.Errorf("Pending = %v, Len = %d", s.Pending(), s.Len())
	}

	s.ClearTranscript()
	if s.Len() != 0 {
		t.Errorf("Len() = %d after ClearTranscript", s.Len())
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore(models.BackendLangChain)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetStatus(models.BackendLangChain, models.StatusOnline)
			s.Append(models.NewUserMessage("x", models.BackendLangChain, testTime))
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
			_ = s.Statuses()
		}()
	}
	wg.Wait()

	if s.Len() != 20 {
		t.Errorf("Len() = %d, want 20", s.Len())
	}
}
