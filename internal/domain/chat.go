package domain

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is the provider-agnostic chat message shape used for model
// prompts and for the per-session conversation log.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
