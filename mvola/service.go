package mvola

import (
	"encore.dev/rlog"

	"encore.app/mvola/business/auth"
	"encore.app/mvola/business/token"
	"encore.app/mvola/business/transaction"
	"encore.app/mvola/config"
	"encore.app/mvola/model"
	"encore.app/mvola/provider"
)

//encore:service
type Service struct {
	cfg          *config.Config
	auth         auth.Business
	transactions transaction.Business
}

func initService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	rlog.Info("Initializing MVola gateway",
		"environment", cfg.Environment,
		"base_url", cfg.BaseURL,
		"partner_name", cfg.PartnerName,
		"allowed_origins", cfg.AllowedOrigins,
	)
	if !cfg.HasCredentials() {
		rlog.Warn("MVola credentials are not configured, authentication will fail")
	}
	if len(cfg.AllowedOrigins) > 0 {
		rlog.Warn("ALLOWED_ORIGINS does not change CORS, edit global_cors in encore.app instead",
			"allowed_origins", cfg.AllowedOrigins)
	}
	if cfg.CallbackSecret == "" {
		rlog.Warn("MVOLA_CALLBACK_SECRET is not set, callbacks are accepted from any caller")
	}

	return newService(cfg), nil
}

func newService(cfg *config.Config) *Service {
	client := provider.NewClient(provider.Options{
		BaseURL:       cfg.BaseURL,
		PartnerMSISDN: cfg.PartnerMSISDN,
		PartnerName:   cfg.PartnerName,
		UserLanguage:  cfg.UserLanguage,
		Timeout:       cfg.HTTPTimeout,
	})

	authBusiness := auth.NewAuthBusiness(client, token.NewCache(), cfg.ConsumerKey, cfg.ConsumerSecret)
	transactionBusiness := transaction.NewTransactionBusiness(authBusiness, client, transaction.Options{
		Partner:     model.Partner{MSISDN: cfg.PartnerMSISDN, Name: cfg.PartnerName},
		CallbackURL: cfg.CallbackURL,
	})

	return &Service{
		cfg:          cfg,
		auth:         authBusiness,
		transactions: transactionBusiness,
	}
}
