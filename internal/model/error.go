package model

// ErrorResponse is the consistent JSON structure for all local API error
// responses. Code carries the failure kind so thin UI consumers can branch
// without parsing messages.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
