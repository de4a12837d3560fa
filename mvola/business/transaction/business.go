package transaction

//go:generate mockgen -source=business.go -destination=../../mocks/business/transaction_business/mock_business.go -package=transaction_business

import (
	"context"
	"encoding/json"
	"time"

	"encore.app/mvola/business/auth"
	"encore.app/mvola/model"
	"encore.app/mvola/provider"
)

type Business interface {
	Initiate(ctx context.Context, req *model.PaymentRequest) (json.RawMessage, error)
	GetStatus(ctx context.Context, correlationID string) (json.RawMessage, error)
	GetDetails(ctx context.Context, transactionID string) (json.RawMessage, error)
}

type Options struct {
	Partner     model.Partner
	CallbackURL string
}

type business struct {
	auth        auth.Business
	client      provider.Client
	partner     model.Partner
	callbackURL string
	now         func() time.Time
}

func NewTransactionBusiness(authBusiness auth.Business, client provider.Client, opts Options) Business {
	return &business{
		auth:        authBusiness,
		client:      client,
		partner:     opts.Partner,
		callbackURL: opts.CallbackURL,
		now:         time.Now,
	}
}
