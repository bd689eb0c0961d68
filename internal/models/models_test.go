package models

import (
	"errors"
	"testing"
	"time"

	apierrors "github.com/diogo/funkychat/internal/errors"
)

func TestHealthURLFor(t *testing.T) {
	tests := []struct {
		chatURL string
		want    string
	}{
		{"http://localhost:8000/api/chat", "http://localhost:8000/docs"},
		{"http://localhost:8001/api/chat/", "http://localhost:8001/docs"},
		{"https://bots.example.com/langchain/api/chat", "https://bots.example.com/langchain/docs"},
		{"http://localhost:9000", "http://localhost:9000/docs"},
	}

	for _, tt := range tests {
		t.Run(tt.chatURL, func(t *testing.T) {
			if got := HealthURLFor(tt.chatURL); got != tt.want {
				t.Errorf("HealthURLFor() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEndpoint_Port(t *testing.T) {
	tests := []struct {
		name     string
		endpoint Endpoint
		want     int
	}{
		{"explicit port", NewEndpoint(BackendLangChain, "http://localhost:8000/api/chat", 1), 8000},
		{"fallback to default", NewEndpoint(BackendLlamaIndex, "http://llama.internal/api/chat", 8001), 8001},
		{"unparseable url", NewEndpoint(BackendLangChain, "://bad", 8000), 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.endpoint.Port(); got != tt.want {
				t.Errorf("Port() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDefaultEndpoints(t *testing.T) {
	endpoints := DefaultEndpoints()
	if len(endpoints) != 2 {
		t.Fatalf("expected 2 endpoints, got %d", len(endpoints))
	}

	if endpoints[0].ID != BackendLangChain || endpoints[0].Port() != 8000 {
		t.Errorf("first endpoint = %+v", endpoints[0])
	}
	if endpoints[1].ID != BackendLlamaIndex || endpoints[1].Port() != 8001 {
		t.Errorf("second endpoint = %+v", endpoints[1])
	}
	if endpoints[1].HealthURL != "http://localhost:8001/docs" {
		t.Errorf("HealthURL = %s", endpoints[1].HealthURL)
	}
}

func TestBackendFromName(t *testing.T) {
	tests := []struct {
		name   string
		want   BackendID
		wantOK bool
	}{
		{"LangChain", BackendLangChain, true},
		{"llamaindex", BackendLlamaIndex, true},
		{" B ", BackendLlamaIndex, true},
		{"gpt", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BackendFromName(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("BackendFromName(%q) = %q, %v", tt.name, got, ok)
			}
		})
	}
}

func TestBackendID_Other(t *testing.T) {
	if BackendLangChain.Other() != BackendLlamaIndex {
		t.Error("LangChain.Other() should be LlamaIndex")
	}
	if BackendLlamaIndex.Other() != BackendLangChain {
		t.Error("LlamaIndex.Other() should be LangChain")
	}
	if BackendID("nope").Valid() {
		t.Error("unknown backend should not be valid")
	}
}

func TestMessage_Clock(t *testing.T) {
	at := time.Date(2026, 10, 18, 9, 5, 7, 0, time.Local)
	msg := NewUserMessage("hi", BackendLangChain, at)

	if msg.Clock() != "09:05:07" {
		t.Errorf("Clock() = %s, want 09:05:07", msg.Clock())
	}
	if msg.Role != RoleUser {
		t.Errorf("Role = %s, want user", msg.Role)
	}
}

func TestStatus_Label(t *testing.T) {
	tests := []struct {
		status Status
		label  string
		name   string
	}{
		{StatusUnknown, "Unknown", "Unknown"},
		{StatusOnline, "🟢 Online", "Online"},
		{StatusOffline, "🔴 Offline", "Offline"},
	}

	for _, tt := range tests {
		if tt.status.Label() != tt.label {
			t.Errorf("Label() = %s, want %s", tt.status.Label(), tt.label)
		}
		if tt.status.String() != tt.name {
			t.Errorf("String() = %s, want %s", tt.status.String(), tt.name)
		}
	}
}

func TestReply_Content(t *testing.T) {
	ok := Reply{Backend: BackendLangChain, Text: "X"}
	if !ok.OK() || ok.Content() != "X" {
		t.Errorf("Content() = %q, want X", ok.Content())
	}
	if ok.Kind() != apierrors.KindNone {
		t.Errorf("Kind() = %v, want none", ok.Kind())
	}

	failed := Reply{Backend: BackendLangChain, Err: apierrors.NewStatusError(500, "")}
	if failed.OK() {
		t.Error("expected failed reply not to be OK")
	}
	if failed.Content() != "❌ Error: API returned status code 500" {
		t.Errorf("Content() = %q", failed.Content())
	}

	other := Reply{Err: apierrors.NewUnexpectedError("send", errors.New("boom"))}
	if other.Content() != "❌ Error: boom" {
		t.Errorf("Content() = %q", other.Content())
	}
}
