// File: internal/domain/conversation.go
package domain

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is a single message of an assistant dialog.
type ConversationTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Conversation is the ordered transcript of a dialog. It always holds at least one turn.
type Conversation []ConversationTurn

// Clone copies the transcript.
func (c Conversation) Clone() Conversation {
	return append(Conversation(nil), c...)
}
