package dto

// ErrorResponse is the uniform error body: a human message plus the
// underlying cause when one is safe to expose.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// PagedResponse wraps every list endpoint.
type PagedResponse struct {
	Data  any   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type RutCheckResponse struct {
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}
