package types

// ChatRole identifies the author of a conversation turn.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
	ChatRoleSystem    ChatRole = "system"
)

// ChatMessage is a single conversation turn.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatRequest is one chat turn from the frontend. History carries the prior
// turns so the completion endpoint sees the whole conversation; Coordinates,
// when present, switch the ranker to proximity ordering.
type ChatRequest struct {
	Message     string        `json:"message" binding:"required"`
	History     []ChatMessage `json:"history,omitempty"`
	Coordinates *Coordinates  `json:"coordinates,omitempty"`
}

// ChatResponse is the assistant's reply plus the ranked spaces it is talking
// about, for the map layer to render.
type ChatResponse struct {
	Reply       string            `json:"reply"`
	Suggestions []RankedCandidate `json:"suggestions"`
	Constraints SearchConstraints `json:"constraints"`
}
