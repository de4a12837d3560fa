package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"encore.dev/rlog"

	"encore.app/mvola/model"
)

// Do sends an authenticated merchantpay request and returns the provider body untouched.
func (c *client) Do(ctx context.Context, r *Request) (json.RawMessage, error) {
	var body io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, &model.ProviderError{Op: r.Op, Err: fmt.Errorf("encode payload: %w", err)}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+r.Path, body)
	if err != nil {
		return nil, &model.ProviderError{Op: r.Op, Err: err}
	}
	c.setHeaders(req, r)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		rlog.Error("mvola request failed", "op", r.Op, "correlation_id", r.CorrelationID, "error", err)
		return nil, &model.ProviderError{Op: r.Op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &model.ProviderError{Op: r.Op, StatusCode: resp.StatusCode, Err: err}
	}

	if !isSuccess(resp.StatusCode) {
		rlog.Warn("mvola request returned an error status",
			"op", r.Op,
			"correlation_id", r.CorrelationID,
			"status_code", resp.StatusCode,
		)
		return nil, &model.ProviderError{Op: r.Op, StatusCode: resp.StatusCode, Body: asJSON(respBody)}
	}

	rlog.Debug("mvola request succeeded", "op", r.Op, "correlation_id", r.CorrelationID, "status_code", resp.StatusCode)
	return asJSON(respBody), nil
}

func (c *client) setHeaders(req *http.Request, r *Request) {
	req.Header.Set("Authorization", "Bearer "+r.AccessToken)
	req.Header.Set("Version", APIVersion)
	req.Header.Set("X-CorrelationID", r.CorrelationID)
	req.Header.Set("UserLanguage", c.userLanguage)
	req.Header.Set("UserAccountIdentifier", "msisdn;"+c.partnerMSISDN)
	req.Header.Set("partnerName", c.partnerName)
	req.Header.Set("Cache-Control", "no-cache")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.CallbackURL != "" {
		req.Header.Set("X-Callback-URL", r.CallbackURL)
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// asJSON keeps valid JSON as is and wraps anything else (HTML error pages, plain text) in a JSON string.
func asJSON(b []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	quoted, _ := json.Marshal(string(trimmed))
	return quoted
}
