package auth

//go:generate mockgen -source=business.go -destination=../../mocks/business/auth_business/mock_business.go -package=auth_business

import (
	"context"

	"encore.app/mvola/business/token"
	"encore.app/mvola/provider"
)

type Business interface {
	// Authenticate returns a usable access token, refreshing it from MVola on a cache miss.
	Authenticate(ctx context.Context) (string, error)
	HasToken() bool
}

type business struct {
	client         provider.Client
	cache          *token.Cache
	consumerKey    string
	consumerSecret string
}

// NewAuthBusiness creates the authenticator. It owns cache for the lifetime of the process.
func NewAuthBusiness(client provider.Client, cache *token.Cache, consumerKey, consumerSecret string) Business {
	return &business{
		client:         client,
		cache:          cache,
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
	}
}

func (b *business) HasToken() bool {
	_, ok := b.cache.Valid()
	return ok
}
