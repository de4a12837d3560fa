package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"encore.dev/rlog"

	"encore.app/mvola/model"
	"encore.app/mvola/provider"
	"encore.app/mvola/validation"
)

// Initiate validates req and submits a merchant payment. The customer confirms it on their phone;
// the provider only acknowledges here.
func (b *business) Initiate(ctx context.Context, req *model.PaymentRequest) (json.RawMessage, error) {
	if err := validation.ValidatePayment(req); err != nil {
		return nil, err
	}

	now := b.now()
	reference := req.CorrelationID
	if reference == "" {
		reference = NewReference(now)
	}

	accessToken, err := b.auth.Authenticate(ctx)
	if err != nil {
		rlog.Error("failed to authenticate before initiating transaction", "correlation_id", reference, "error", err)
		return nil, err
	}

	rlog.Info("initiating mvola transaction",
		"correlation_id", reference,
		"amount", req.Amount,
		"customer_msisdn", maskMSISDN(req.CustomerMSISDN),
	)

	ack, err := b.client.Do(ctx, &provider.Request{
		Op:            "initiate transaction",
		Method:        http.MethodPost,
		Path:          provider.MerchantPayPath,
		AccessToken:   accessToken,
		CorrelationID: reference,
		CallbackURL:   b.callbackURL,
		Body:          buildPayload(req, b.partner, reference, now),
	})
	if err != nil {
		rlog.Error("failed to initiate mvola transaction", "correlation_id", reference, "error", err)
		return nil, err
	}

	return ack, nil
}

// maskMSISDN keeps the operator prefix and the last two digits of a phone number.
func maskMSISDN(msisdn string) string {
	if len(msisdn) <= 5 {
		return strings.Repeat("*", len(msisdn))
	}
	return msisdn[:3] + strings.Repeat("*", len(msisdn)-5) + msisdn[len(msisdn)-2:]
}
