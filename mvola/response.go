package mvola

import (
	"encoding/json"
	"errors"
	"net/http"

	"encore.app/mvola/model"
)

// Response is the envelope shared by every JSON endpoint. HTTPStatus is not serialized;
// Encore uses it as the response status code.
type Response struct {
	HTTPStatus int             `json:"-" encore:"httpstatus"`
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Error      json.RawMessage `json:"error,omitempty"`
}

// Succeeded lets the idempotency middleware decide whether a response may be replayed.
func (r *Response) Succeeded() bool {
	return r.Success
}

func success(message string, data json.RawMessage) *Response {
	return &Response{
		HTTPStatus: http.StatusOK,
		Success:    true,
		Message:    message,
		Data:       data,
	}
}

func failure(message string, err error) *Response {
	return &Response{
		HTTPStatus: statusFor(err),
		Success:    false,
		Message:    message,
		Error:      diagnostic(err),
	}
}

// statusFor maps client input errors to 400. Every downstream failure is a 500, whatever
// the provider answered.
func statusFor(err error) int {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// diagnostic returns the provider's error document when there is one, else the error message.
func diagnostic(err error) json.RawMessage {
	var providerErr *model.ProviderError
	if errors.As(err, &providerErr) && len(providerErr.Body) > 0 {
		return providerErr.Body
	}

	message, _ := json.Marshal(err.Error())
	return message
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
