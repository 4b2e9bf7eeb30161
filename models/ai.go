package models

// AIRequest is the payload coming from the frontend into /api/ai/chat.
type AIRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// AITurn is one exchange kept in the conversation context.
type AITurn struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// AIContext is the per-user conversation stored in Redis.
type AIContext struct {
	Turns []AITurn `json:"turns"`
}

// AIResponse is what the handler returns to the frontend.
type AIResponse struct {
	Reply                string   `json:"reply"`
	SuggestedSpecialties []string `json:"suggestedSpecialties,omitempty"`
}
