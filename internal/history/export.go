// Package history exports the transcript of a session on request.
// Nothing is ever read back: sessions are not persisted.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diogo/funkychat/internal/models"
	"github.com/diogo/funkychat/internal/session"
)

// ExportFormat represents the format for exporting conversations
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// ParseFormat resolves a format name; "md" is accepted for Markdown
func ParseFormat(name string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "md", "markdown":
		return ExportFormatMarkdown, nil
	case "json":
		return ExportFormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q (use markdown or json)", name)
	}
}

// Extension returns the file extension for the format
func (f ExportFormat) Extension() string {
	if f == ExportFormatJSON {
		return ".json"
	}
	return ".md"
}

// Transcript is the exportable view of one session
type Transcript struct {
	SessionID string
	Backend   models.BackendID
	StartedAt time.Time
	Messages  []models.Message
}

// FromStore captures the current transcript of store
func FromStore(store *session.Store) Transcript {
	snap := store.Snapshot()
	return Transcript{
		SessionID: store.ID,
		Backend:   snap.Active,
		StartedAt: store.CreatedAt,
		Messages:  snap.Transcript,
	}
}

// ToMarkdown renders the transcript as Markdown
func ToMarkdown(tr Transcript) string {
	var sb strings.Builder

	sb.WriteString("# Funky AI ChatBot transcript\n\n")
	sb.WriteString("**Backend:** ")
	sb.WriteString(string(tr.Backend))
	sb.WriteString("\n")
	sb.WriteString("**Session:** ")
	sb.WriteString(tr.SessionID)
	sb.WriteString("\n")
	if !tr.StartedAt.IsZero() {
		sb.WriteString("**Started:** ")
		sb.WriteString(tr.StartedAt.Format("2006-01-02 15:04:05"))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("**Messages:** %d", len(tr.Messages)))
	sb.WriteString("\n\n---\n\n")

	for i, msg := range tr.Messages {
		role := "You"
		if msg.Role == models.RoleAssistant {
			role = "🤖 " + string(msg.Backend)
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		sb.WriteString(" (")
		sb.WriteString(msg.Clock())
		sb.WriteString(")\n\n")

		sb.WriteString(msg.Content)
		sb.WriteString("\n")

		if i < len(tr.Messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

type exportMessage struct {
	Role      models.Role      `json:"role"`
	Content   string           `json:"content"`
	Timestamp string           `json:"timestamp"`
	Backend   models.BackendID `json:"backend"`
	Time      time.Time        `json:"time"`
}

type exportTranscript struct {
	SessionID string           `json:"session_id"`
	Backend   models.BackendID `json:"backend"`
	StartedAt time.Time        `json:"started_at"`
	Messages  []exportMessage  `json:"messages"`
}

// ToJSON renders the transcript as indented JSON
func ToJSON(tr Transcript) ([]byte, error) {
	export := exportTranscript{
		SessionID: tr.SessionID,
		Backend:   tr.Backend,
		StartedAt: tr.StartedAt,
		Messages:  make([]exportMessage, len(tr.Messages)),
	}

	for i, msg := range tr.Messages {
		export.Messages[i] = exportMessage{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Clock(),
			Backend:   msg.Backend,
			Time:      msg.Timestamp,
		}
	}

	return json.MarshalIndent(export, "", "  ")
}

// Write renders tr in format and writes it to a new file under dir.
// Returns the path of the written file.
func Write(dir string, tr Transcript, format ExportFormat, now time.Time) (string, error) {
	if len(tr.Messages) == 0 {
		return "", fmt.Errorf("nothing to export: the transcript is empty")
	}

	var data []byte
	switch format {
	case ExportFormatJSON:
		b, err := ToJSON(tr)
		if err != nil {
			return "", fmt.Errorf("failed to marshal transcript: %w", err)
		}
		data = b
	default:
		data = []byte(ToMarkdown(tr))
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	name := fmt.Sprintf("funkychat-%s-%s%s", tr.SessionID, now.Format("20060102-150405"), format.Extension())
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
