package transaction

import (
	"context"
	"encoding/json"

	"encore.app/mvola/provider"
)

// GetDetails fetches a completed transaction by its MVola transaction id.
func (b *business) GetDetails(ctx context.Context, transactionID string) (json.RawMessage, error) {
	return b.lookup(ctx, "get transaction details", provider.DetailsPath(transactionID))
}
