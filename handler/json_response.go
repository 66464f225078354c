package handler

import (
	"encoding/json"
	"net/http"
)

// MessageBody is the success payload of the JSON API.
type MessageBody struct {
	Message string `json:"message"`
}

// ErrorBody is the failure payload of the JSON API.
type ErrorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// jsonResponse implements Response for JSON rendering
type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// JSON creates a 200 JSON response with options.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Message creates a 200 response with body {"message": msg}.
func Message(msg string) Response {
	return JSON(MessageBody{Message: msg})
}

// JSONError creates a failure response with body {"error": msg, "details": {...}}.
func JSONError(status int, msg string, details map[string]string) Response {
	return JSON(ErrorBody{Error: msg, Details: details}, WithJSONStatus(status))
}
