package mvola

import (
	"context"

	"encore.dev/rlog"
)

//encore:api public method=GET path=/mvola/transaction/status/:correlationId
func (s *Service) GetTransactionStatus(ctx context.Context, correlationId string) (*Response, error) {
	data, err := s.transactions.GetStatus(ctx, correlationId)
	if err != nil {
		rlog.Error("failed to get transaction status", "error", err, "correlation_id", correlationId)
		return failure("Erreur lors de la vérification du statut", err), nil
	}

	return success("", data), nil
}
