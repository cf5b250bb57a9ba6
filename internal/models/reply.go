package models

// DefaultEndpoint is the chat endpoint of a locally running voice backend.
// Overridable via config or the --endpoint flag.
const DefaultEndpoint = "http://127.0.0.1:8000/api/chat"

// StatusSuccess is the status value the backend reports on a successful turn
const StatusSuccess = "success"

// TurnReply is the validated result of one successful chat turn.
// It is only constructed after the raw response has passed boundary
// validation; a response that fails validation never becomes a TurnReply.
type TurnReply struct {
	Transcript string // what the backend heard (or echoed, for text turns)
	Reply      string // the assistant's textual reply
	Audio      []byte // decoded reply audio, empty when the backend sent none
}

// HasAudio reports whether the reply carries playable audio
func (r *TurnReply) HasAudio() bool {
	return len(r.Audio) > 0
}
