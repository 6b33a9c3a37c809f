package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	// Role name used on the wire for assistant messages.
	ChatMessageRoleAI = "ai"

	ChatApologyMessage = "I'm sorry, I couldn't generate an answer from the uploaded documents. Please try rephrasing your question."
)
