package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"encore.dev/rlog"

	"encore.app/mvola/model"
)

// RequestToken exchanges the partner credentials for an access token (client-credentials grant).
func (c *client) RequestToken(ctx context.Context, consumerKey, consumerSecret string) (*model.AccessToken, error) {
	const op = "request token"

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", TokenScope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+TokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &model.ProviderError{Op: op, Err: err}
	}
	req.SetBasicAuth(consumerKey, consumerSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &model.ProviderError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &model.ProviderError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if !isSuccess(resp.StatusCode) {
		rlog.Warn("mvola token endpoint rejected credentials", "status_code", resp.StatusCode)
		return nil, &model.ProviderError{Op: op, StatusCode: resp.StatusCode, Body: asJSON(body)}
	}

	var token model.AccessToken
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, &model.ProviderError{Op: op, StatusCode: resp.StatusCode, Body: asJSON(body), Err: fmt.Errorf("decode token response: %w", err)}
	}

	if token.AccessToken == "" {
		return nil, &model.ProviderError{Op: op, StatusCode: resp.StatusCode, Err: errors.New("token response has no access_token")}
	}
	if seconds, err := token.ExpiresIn.Int64(); err != nil || seconds <= 0 {
		return nil, &model.ProviderError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("token response has invalid expires_in %q", token.ExpiresIn)}
	}

	return &token, nil
}
