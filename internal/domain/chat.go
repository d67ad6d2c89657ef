package domain

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type ReplySource string

const (
	SourceLive     ReplySource = "live"
	SourceFallback ReplySource = "fallback"
)

// ChatReply is either a LiveReply from the provider or a FallbackReply from the canned list.
type ChatReply struct {
	Text   string
	Source ReplySource
}

func LiveReply(text string) ChatReply {
	return ChatReply{Text: text, Source: SourceLive}
}

func FallbackReply(text string) ChatReply {
	return ChatReply{Text: text, Source: SourceFallback}
}
