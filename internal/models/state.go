package models

// SessionState is the recording session's lifecycle state.
// Exactly one value holds at a time; transitions happen only
// through the session controller.
type SessionState int

const (
	// StateIdle means no capture or request is in flight
	StateIdle SessionState = iota
	// StateRecording means the capture device is held and accumulating chunks
	StateRecording
	// StateProcessing means a captured payload is being finalized or sent
	StateProcessing
)

// String returns the state name for logs and errors
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// transitions is the allowed-edge table for the session state machine.
// There is deliberately no processing -> recording edge: a new capture
// can only begin after the in-flight turn has resolved back to idle.
var transitions = map[SessionState][]SessionState{
	StateIdle:       {StateRecording, StateProcessing},
	StateRecording:  {StateProcessing},
	StateProcessing: {StateIdle},
}

// CanTransition reports whether moving from one state to another is legal
func CanTransition(from, to SessionState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
