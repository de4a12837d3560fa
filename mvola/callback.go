package mvola

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"encore.dev/rlog"
)

const (
	callbackPath         = "/mvola/callback"
	callbackSecretHeader = "X-Callback-Secret"
	maxCallbackBytes     = 1 << 20

	callbackAckMessage     = "Callback traité avec succès"
	callbackFailureMessage = "Erreur lors du traitement du callback"
)

// Callback receives MVola notifications sent without a correlation id in the path.
//
//encore:api public raw method=PUT path=/mvola/callback
func (s *Service) Callback(w http.ResponseWriter, req *http.Request) {
	s.receiveCallback(w, req, "")
}

//encore:api public raw method=PUT path=/mvola/callback/:correlationId
func (s *Service) CallbackWithCorrelationID(w http.ResponseWriter, req *http.Request) {
	s.receiveCallback(w, req, correlationIDFromPath(req.URL.Path))
}

// receiveCallback logs the notification and acknowledges it. The payload is not interpreted.
func (s *Service) receiveCallback(w http.ResponseWriter, req *http.Request, correlationID string) {
	if !s.callbackAuthorized(req) {
		rlog.Warn("rejected mvola callback with invalid secret", "correlation_id", correlationID, "remote_addr", req.RemoteAddr)
		writeJSON(w, http.StatusUnauthorized, &Response{Success: false, Message: "Callback non autorisé"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, maxCallbackBytes))
	if err != nil {
		rlog.Error("failed to read mvola callback body", "correlation_id", correlationID, "error", err)
		writeJSON(w, http.StatusInternalServerError, &Response{Success: false, Message: callbackFailureMessage})
		return
	}

	body = bytes.TrimSpace(body)
	if len(body) > 0 && !json.Valid(body) {
		rlog.Error("malformed mvola callback body", "correlation_id", correlationID)
		writeJSON(w, http.StatusInternalServerError, &Response{Success: false, Message: callbackFailureMessage})
		return
	}

	rlog.Info("mvola callback received",
		"correlation_id", correlationID,
		"provider_correlation_id", req.Header.Get("X-CorrelationID"),
		"payload", string(body),
	)

	writeJSON(w, http.StatusOK, &Response{Success: true, Message: callbackAckMessage})
}

// callbackAuthorized accepts every caller unless a shared secret is configured.
func (s *Service) callbackAuthorized(req *http.Request) bool {
	if s.cfg.CallbackSecret == "" {
		return true
	}
	provided := req.Header.Get(callbackSecretHeader)
	return subtle.ConstantTimeCompare([]byte(provided), []byte(s.cfg.CallbackSecret)) == 1
}

func correlationIDFromPath(path string) string {
	return strings.Trim(strings.TrimPrefix(path, callbackPath), "/")
}
