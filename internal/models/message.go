// Package models defines the core data types shared across the voicechat client.
package models

// Message roles as they appear in the conversation log
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single entry in the conversation log.
// The log is append-only: messages are never mutated or removed,
// and their order is arrival order.
type Message struct {
	Role    string // "user" or "assistant"
	Content string

	// Transcribed marks user messages whose content is the backend's
	// transcript of a recording rather than typed text
	Transcribed bool
	// HadAudio marks assistant messages whose turn carried reply audio
	HadAudio bool
}

// UserMessage creates a user-role message
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage creates an assistant-role message
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
