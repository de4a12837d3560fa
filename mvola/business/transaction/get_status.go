package transaction

import (
	"context"
	"encoding/json"
	"net/http"

	"encore.app/mvola/provider"
)

// GetStatus looks up a transaction by the serverCorrelationId returned at initiation.
func (b *business) GetStatus(ctx context.Context, correlationID string) (json.RawMessage, error) {
	return b.lookup(ctx, "get transaction status", provider.StatusPath(correlationID))
}

func (b *business) lookup(ctx context.Context, op, path string) (json.RawMessage, error) {
	accessToken, err := b.auth.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	return b.client.Do(ctx, &provider.Request{
		Op:            op,
		Method:        http.MethodGet,
		Path:          path,
		AccessToken:   accessToken,
		CorrelationID: NewReference(b.now()),
	})
}
