// Package api provides the HTTP client for the chat backends.
package api

// GJSON paths and JSON keys of the backend wire format.
const (
	// Request body: {"message": "<text>"}
	FieldMessage = "message"

	// Successful reply body: {"response": "<text>"}
	PathResponse = "response"

	// Optional error description some backends send alongside non-200s
	PathDetail = "detail"
)
