package web

import (
	"time"

	"github.com/diogo/funkychat/internal/config"
	"github.com/diogo/funkychat/internal/models"
	"github.com/diogo/funkychat/internal/session"
)

// Message types from browser to server
const (
	TypeSubmit = "submit"
	TypeSwitch = "switch"
	TypeClear  = "clear"
)

// Message types from server to browser
const (
	TypeState = "state"
	TypeError = "error"
)

// BaseMessage contains common fields for all outbound messages.
type BaseMessage struct {
	Type      string `json:"type"`
	Ts        int64  `json:"ts"`
	SessionID string `json:"session_id,omitempty"`
}

// ClientMessage is any frame sent by the browser. Fields are used
// according to Type.
type ClientMessage struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Backend string `json:"backend,omitempty"`
}

// BackendView describes one backend in the status panel.
type BackendView struct {
	ID     models.BackendID `json:"id"`
	Port   int              `json:"port"`
	Status string           `json:"status"`
	Label  string           `json:"label"`
	Active bool             `json:"active"`
}

// MessageView is one transcript entry as shown in the browser.
type MessageView struct {
	Role      models.Role      `json:"role"`
	Content   string           `json:"content"`
	Timestamp string           `json:"timestamp"`
	Backend   models.BackendID `json:"backend"`
}

// StateMessage is the full snapshot pushed after every change.
type StateMessage struct {
	BaseMessage
	Active        models.BackendID `json:"active"`
	Backends      []BackendView    `json:"backends"`
	Transcript    []MessageView    `json:"transcript"`
	Pending       bool             `json:"pending"`
	Tip           string           `json:"tip"`
	APIKeyPresent bool             `json:"api_key_present"`
	APIKeyNotice  string           `json:"api_key_notice"`
}

// ErrorMessage reports a frame the server could not handle.
type ErrorMessage struct {
	BaseMessage
	Message string `json:"message"`
}

// NewStateMessage builds the snapshot frame for one session.
func NewStateMessage(sessionID string, st session.State, ports map[models.BackendID]int, key config.APIKey, now time.Time) StateMessage {
	backends := make([]BackendView, 0, len(models.AllBackends()))
	for _, id := range models.AllBackends() {
		status := st.Status(id)
		backends = append(backends, BackendView{
			ID:     id,
			Port:   ports[id],
			Status: status.String(),
			Label:  status.Label(),
			Active: id == st.Active,
		})
	}

	transcript := make([]MessageView, len(st.Transcript))
	for i, msg := range st.Transcript {
		transcript[i] = MessageView{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Clock(),
			Backend:   msg.Backend,
		}
	}

	return StateMessage{
		BaseMessage: BaseMessage{
			Type:      TypeState,
			Ts:        now.UnixMilli(),
			SessionID: sessionID,
		},
		Active:        st.Active,
		Backends:      backends,
		Transcript:    transcript,
		Pending:       st.Pending,
		Tip:           st.Tip(),
		APIKeyPresent: key.Present(),
		APIKeyNotice:  key.Notice(),
	}
}

// NewErrorMessage builds an error frame.
func NewErrorMessage(sessionID, message string, now time.Time) ErrorMessage {
	return ErrorMessage{
		BaseMessage: BaseMessage{
			Type:      TypeError,
			Ts:        now.UnixMilli(),
			SessionID: sessionID,
		},
		Message: message,
	}
}
