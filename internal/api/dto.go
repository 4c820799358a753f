package api

// GenerateRequest is the body of POST /generate. Pointer fields tell an
// absent value apart from a zero one.
type GenerateRequest struct {
	Prompt       *string  `json:"prompt"`
	MaxNewTokens *int     `json:"max_new_tokens,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
}

type GenerateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// ErrorResponse carries validation and generation failures.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
