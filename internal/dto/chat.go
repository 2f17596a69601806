package dto

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the classified intent, a natural-language reply, and
// an intent-dependent structured payload (null when there is none).
type ChatResponse struct {
	Intent   string                 `json:"intent"`
	Response string                 `json:"response"`
	Data     map[string]interface{} `json:"data"`
}
