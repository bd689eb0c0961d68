package models

// Status is the cached liveness classification of a backend
type Status int

const (
	StatusUnknown Status = iota
	StatusOnline
	StatusOffline
)

// String returns the plain status name
func (s Status) String() string {
	switch s {
	case StatusOnline:
		return "Online"
	case StatusOffline:
		return "Offline"
	default:
		return "Unknown"
	}
}

// Label returns the status as shown in the status panel
func (s Status) Label() string {
	switch s {
	case StatusOnline:
		return "🟢 Online"
	case StatusOffline:
		return "🔴 Offline"
	default:
		return "Unknown"
	}
}
