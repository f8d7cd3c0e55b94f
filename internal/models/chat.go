package models

// Chat message roles as understood by the completion API.
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatReply is the assistant's answer. Fallback is true when the reply came
// from the canned-response table instead of the completion API.
type ChatReply struct {
	Message  string `json:"message"`
	Fallback bool   `json:"fallback"`
}
