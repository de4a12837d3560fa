package provider

//go:generate mockgen -source=client.go -destination=../mocks/provider_client/mock_client.go -package=provider_client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"encore.app/mvola/model"
)

const (
	TokenPath       = "/token"
	MerchantPayPath = "/mvola/mm/transactions/type/merchantpay/1.0.0/"

	// TokenScope is the only scope MVola grants merchant integrations.
	TokenScope = "EXT_INT_MVOLA_SCOPE"

	APIVersion = "1.0"

	maxResponseBytes = 1 << 20
)

// Client talks to the MVola REST API. It performs exactly one HTTP exchange per call and never retries.
type Client interface {
	RequestToken(ctx context.Context, consumerKey, consumerSecret string) (*model.AccessToken, error)
	Do(ctx context.Context, req *Request) (json.RawMessage, error)
}

// Request describes one authenticated merchantpay call.
type Request struct {
	Op            string
	Method        string
	Path          string
	AccessToken   string
	CorrelationID string
	CallbackURL   string
	Body          any
}

type Options struct {
	BaseURL       string
	PartnerMSISDN string
	PartnerName   string
	UserLanguage  string
	Timeout       time.Duration
	HTTPClient    *http.Client
}

type client struct {
	baseURL       string
	partnerMSISDN string
	partnerName   string
	userLanguage  string
	httpClient    *http.Client
}

func NewClient(opts Options) Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &client{
		baseURL:       opts.BaseURL,
		partnerMSISDN: opts.PartnerMSISDN,
		partnerName:   opts.PartnerName,
		userLanguage:  opts.UserLanguage,
		httpClient:    httpClient,
	}
}

func StatusPath(correlationID string) string {
	return MerchantPayPath + "status/" + url.PathEscape(correlationID)
}

func DetailsPath(transactionID string) string {
	return MerchantPayPath + url.PathEscape(transactionID)
}
