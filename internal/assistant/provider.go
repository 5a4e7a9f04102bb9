package assistant

import "context"

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Role identifies the author of a chat message.
type Role string

// Message is one turn of the conversation history relayed to the model.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Completer is the text-completion port. Implementations may be slow and may
// fail; callers bound them with a context deadline.
type Completer interface {
	Complete(ctx context.Context, systemInstruction string, messages []Message) (string, error)
}
