package handler

type SummarizeRequest struct {
	Link         string `json:"link"`
	CustomPrompt string `json:"customPrompt"`
	// Token belongs to the browser client; the discussion fetch uses the service credential.
	Token string `json:"token"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type CreateUserRequest struct {
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UserID    string `json:"userId"`
	CreatedAt string `json:"createdAt"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
