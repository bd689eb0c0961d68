// Package models contains data types and constants for the chat backends.
package models

import (
	"net/url"
	"strconv"
	"strings"
)

// BackendID identifies one of the two conversational backends
type BackendID string

// Known backends
const (
	BackendLangChain  BackendID = "LangChain"
	BackendLlamaIndex BackendID = "LlamaIndex"
)

// Default endpoints
const (
	DefaultLangChainURL  = "http://localhost:8000/api/chat"
	DefaultLlamaIndexURL = "http://localhost:8001/api/chat"

	ChatPath   = "/api/chat"
	HealthPath = "/docs"
)

// AllBackends returns the known backends in selector order
func AllBackends() []BackendID {
	return []BackendID{BackendLangChain, BackendLlamaIndex}
}

// Valid reports whether id names a known backend
func (id BackendID) Valid() bool {
	return id == BackendLangChain || id == BackendLlamaIndex
}

// Other returns the backend that is not id
func (id BackendID) Other() BackendID {
	if id == BackendLangChain {
		return BackendLlamaIndex
	}
	return BackendLangChain
}

// BackendFromName resolves a backend name case-insensitively.
// Returns false if the name is not a known backend.
func BackendFromName(name string) (BackendID, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "langchain", "a":
		return BackendLangChain, true
	case "llamaindex", "b":
		return BackendLlamaIndex, true
	default:
		return "", false
	}
}

// Endpoint is the static address configuration of a backend
type Endpoint struct {
	ID          BackendID
	ChatURL     string
	HealthURL   string
	DefaultPort int
}

// DefaultEndpoints returns the built-in endpoint configuration
func DefaultEndpoints() []Endpoint {
	return []Endpoint{
		NewEndpoint(BackendLangChain, DefaultLangChainURL, 8000),
		NewEndpoint(BackendLlamaIndex, DefaultLlamaIndexURL, 8001),
	}
}

// NewEndpoint builds an Endpoint with the health URL derived from chatURL
func NewEndpoint(id BackendID, chatURL string, defaultPort int) Endpoint {
	return Endpoint{
		ID:          id,
		ChatURL:     chatURL,
		HealthURL:   HealthURLFor(chatURL),
		DefaultPort: defaultPort,
	}
}

// HealthURLFor strips the chat path from chatURL and appends the docs path
func HealthURLFor(chatURL string) string {
	base := strings.TrimRight(chatURL, "/")
	base = strings.TrimSuffix(base, ChatPath)
	return base + HealthPath
}

// Port returns the port the backend is expected on: the explicit port of
// the chat URL when present, DefaultPort otherwise
func (e Endpoint) Port() int {
	u, err := url.Parse(e.ChatURL)
	if err == nil {
		if p, err := strconv.Atoi(u.Port()); err == nil {
			return p
		}
	}
	return e.DefaultPort
}
