package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	// Returned when the conversation service replies with an empty or
	// unusable body.
	ChatFallbackReply = "Sorry, I was unable to find an answer to your question."
)
