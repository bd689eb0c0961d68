package models

import "time"

// Role is the author of a transcript message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ClockFormat is the display format for message timestamps
const ClockFormat = "15:04:05"

// Message represents a single transcript entry
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Backend   BackendID `json:"backend"`
}

// Clock returns the HH:MM:SS wall-clock time of the message
func (m Message) Clock() string {
	return m.Timestamp.Format(ClockFormat)
}

// NewUserMessage creates a user message addressed to backend
func NewUserMessage(content string, backend BackendID, at time.Time) Message {
	return Message{Role: RoleUser, Content: content, Timestamp: at, Backend: backend}
}

// NewAssistantMessage creates a message produced by backend
func NewAssistantMessage(content string, backend BackendID, at time.Time) Message {
	return Message{Role: RoleAssistant, Content: content, Timestamp: at, Backend: backend}
}
