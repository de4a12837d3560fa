package mvola

import (
	"context"
	"errors"

	"encore.dev/rlog"

	"encore.app/mvola/model"
)

type InitiateTransactionRequest struct {
	IdempotencyKey string `header:"X-Idempotency-Key" json:"-"`

	Amount          int64  `json:"amount"`
	CustomerMSISDN  string `json:"customerMSISDN"`
	DescriptionText string `json:"descriptionText,omitempty"`
	CorrelationID   string `json:"correlationId,omitempty"`
}

//encore:api public method=POST path=/mvola/transaction/initiate tag:idempotency
func (s *Service) InitiateTransaction(ctx context.Context, req *InitiateTransactionRequest) (*Response, error) {
	data, err := s.transactions.Initiate(ctx, &model.PaymentRequest{
		Amount:          req.Amount,
		CustomerMSISDN:  req.CustomerMSISDN,
		DescriptionText: req.DescriptionText,
		CorrelationID:   req.CorrelationID,
	})
	if err != nil {
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			rlog.Warn("rejected payment request", "reason", validationErr.Reason, "field", validationErr.Field)
			return failure(validationErr.Message, err), nil
		}

		rlog.Error("failed to initiate transaction", "error", err)
		return failure("Erreur lors de l'initiation du paiement", err), nil
	}

	return success("Paiement initié avec succès", data), nil
}
