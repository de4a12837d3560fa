package auth

import (
	"context"
	"time"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"encore.app/mvola/model"
)

func (b *business) Authenticate(ctx context.Context) (string, error) {
	if value, ok := b.cache.Valid(); ok {
		return value, nil
	}

	if b.consumerKey == "" || b.consumerSecret == "" {
		return "", &model.AuthError{
			Err: &errs.Error{Code: errs.FailedPrecondition, Message: "MVOLA_CONSUMER_KEY and MVOLA_CONSUMER_SECRET must be set"},
		}
	}

	accessToken, err := b.client.RequestToken(ctx, b.consumerKey, b.consumerSecret)
	if err != nil {
		rlog.Error("failed to obtain mvola access token", "error", err)
		return "", &model.AuthError{Err: err}
	}

	// RequestToken only returns tokens with a positive expires_in.
	seconds, _ := accessToken.ExpiresIn.Int64()
	expiresAt := b.cache.Store(accessToken.AccessToken, time.Duration(seconds)*time.Second)

	rlog.Info("mvola access token refreshed", "expires_at", expiresAt)
	return accessToken.AccessToken, nil
}
