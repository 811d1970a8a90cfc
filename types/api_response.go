package types

// ErrorResponse is the JSON error body produced by the error-handler
// middleware and referenced from swagger annotations.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}
