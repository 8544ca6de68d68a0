package constant

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"

	// DefaultChatName is used until the first user message names the chat.
	DefaultChatName = "New Chat"

	// ChatNameMaxLen caps auto-generated chat names derived from the first
	// user message.
	ChatNameMaxLen = 80
)
