package mvola

import (
	"context"

	"encore.dev/rlog"
)

//encore:api public method=GET path=/mvola/transaction/details/:transactionId
func (s *Service) GetTransactionDetails(ctx context.Context, transactionId string) (*Response, error) {
	data, err := s.transactions.GetDetails(ctx, transactionId)
	if err != nil {
		rlog.Error("failed to get transaction details", "error", err, "transaction_id", transactionId)
		return failure("Erreur lors de la récupération des détails", err), nil
	}

	return success("", data), nil
}
