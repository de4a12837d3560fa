package mvola

import (
	"context"
	"encoding/json"
	"net/http"

	"encore.dev/rlog"
)

type AuthResponse struct {
	HTTPStatus int             `json:"-" encore:"httpstatus"`
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	HasToken   *bool           `json:"hasToken,omitempty"`
	Error      json.RawMessage `json:"error,omitempty"`
}

// Authenticate checks that the configured credentials can obtain an access token.
//
//encore:api public method=POST path=/mvola/auth
func (s *Service) Authenticate(ctx context.Context) (*AuthResponse, error) {
	if _, err := s.auth.Authenticate(ctx); err != nil {
		rlog.Error("mvola authentication check failed", "error", err)
		return &AuthResponse{
			HTTPStatus: http.StatusInternalServerError,
			Success:    false,
			Message:    "Échec de l'authentification MVola",
			Error:      diagnostic(err),
		}, nil
	}

	// hasToken is part of every success body, false included
	hasToken := s.auth.HasToken()
	return &AuthResponse{
		HTTPStatus: http.StatusOK,
		Success:    true,
		Message:    "Authentification MVola réussie",
		HasToken:   &hasToken,
	}, nil
}
